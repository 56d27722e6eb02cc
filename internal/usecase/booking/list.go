package booking

import (
	"context"

	"github.com/glowbook/salon-api/internal/clock"
	domain "github.com/glowbook/salon-api/internal/domain/booking"
	"github.com/glowbook/salon-api/internal/httperr"
	"github.com/glowbook/salon-api/internal/identity"
	"github.com/glowbook/salon-api/internal/models"
)

type ListBookings struct {
	repo domain.Repository
	clk  clock.Clock
}

func NewListBookings(repo domain.Repository, clk clock.Clock) *ListBookings {
	return &ListBookings{repo: repo, clk: clk}
}

// Execute returns the role-scoped booking list. Stale pending bookings are
// expired first, so no caller ever sees a pending booking whose date has
// passed.
func (uc *ListBookings) Execute(
	ctx context.Context,
	actor identity.Actor,
	f domain.ListFilters,
) ([]models.Booking, error) {

	if err := uc.repo.ExpireOldPending(ctx, clock.Today(uc.clk)); err != nil {
		return nil, err
	}

	switch actor.Role {
	case identity.RoleAdmin:
		return uc.repo.ListAll(ctx, f)

	case identity.RoleAesthetician:
		// Role scoping only; supplied filters are intentionally not applied.
		return uc.repo.ListForAesthetician(ctx, actor.ID)

	case identity.RoleClient:
		if f.AvailabilityRequested() {
			// Availability-check mode: every confirmed booking for the
			// requested aesthetician and range, the caller's own included.
			return uc.repo.ListConfirmedForAesthetician(
				ctx, *f.AestheticianID, f.DateFrom, f.DateTo,
			)
		}
		return uc.repo.ListForClient(ctx, actor.ID)
	}

	return nil, httperr.ErrBusiness("unknown_role")
}
