package booking

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/glowbook/salon-api/internal/audit"
	domain "github.com/glowbook/salon-api/internal/domain/booking"
	"github.com/glowbook/salon-api/internal/httperr"
	"github.com/glowbook/salon-api/internal/identity"
)

type DeleteBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteBooking {
	return &DeleteBooking{
		repo:  repo,
		audit: audit,
	}
}

// Execute hard-deletes a booking. Admin only, unconditional, irreversible:
// the state machine has no say here.
func (uc *DeleteBooking) Execute(
	ctx context.Context,
	actor identity.Actor,
	bookingID uint,
) error {

	if !actor.IsAdmin() {
		return httperr.ErrBusiness("only_admin_can_delete")
	}

	if _, err := uc.repo.GetByID(ctx, bookingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.ErrBusiness("booking_not_found")
		}
		return err
	}

	if err := uc.repo.Delete(ctx, bookingID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &actor.ID,
		Action:   "booking_deleted",
		Entity:   "booking",
		EntityID: &bookingID,
	})

	return nil
}
