package booking

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/glowbook/salon-api/internal/audit"
	domain "github.com/glowbook/salon-api/internal/domain/booking"
	"github.com/glowbook/salon-api/internal/httperr"
	"github.com/glowbook/salon-api/internal/identity"
	"github.com/glowbook/salon-api/internal/models"
)

type CancelBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelBooking {
	return &CancelBooking{
		repo:  repo,
		audit: audit,
	}
}

// Execute cancels a booking on behalf of its owning client. Only the owner,
// and only while the booking is still pending.
func (uc *CancelBooking) Execute(
	ctx context.Context,
	actor identity.Actor,
	bookingID uint,
) (*models.Booking, error) {

	b, err := uc.repo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("booking_not_found")
		}
		return nil, err
	}

	if !actor.IsClient() || b.ClientID != actor.ID {
		return nil, httperr.ErrBusiness("cannot_cancel_booking")
	}

	if domain.Status(b.Status) != domain.StatusPending {
		return nil, httperr.ErrBusiness("only_pending_cancellable")
	}

	b.Status = string(domain.StatusCancelled)
	if err := uc.repo.Save(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &actor.ID,
		Action:   "booking_cancelled",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
