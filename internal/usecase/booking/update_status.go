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

// ======================================================
// INPUT
// ======================================================

type UpdateBookingStatusInput struct {
	BookingID uint
	Status    string

	// nil means "leave the note alone"
	AestheticianNote *string
}

// ======================================================
// USE CASE
// ======================================================

type UpdateBookingStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateBookingStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateBookingStatus {
	return &UpdateBookingStatus{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *UpdateBookingStatus) Execute(
	ctx context.Context,
	actor identity.Actor,
	in UpdateBookingStatusInput,
) (*models.Booking, error) {

	if !actor.IsAdmin() && !actor.IsAesthetician() {
		return nil, httperr.ErrBusiness("status_change_forbidden")
	}

	b, err := uc.repo.GetByID(ctx, in.BookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("booking_not_found")
		}
		return nil, err
	}

	// An aesthetician only manages their own bookings.
	if actor.IsAesthetician() {
		if b.AestheticianID == nil || *b.AestheticianID != actor.ID {
			return nil, httperr.ErrBusiness("not_your_booking")
		}
	}

	next, ok := domain.ParseStatus(in.Status)
	if !ok {
		return nil, httperr.ErrBusiness("invalid_status")
	}

	current := domain.Status(b.Status)
	if err := domain.ValidateTransition(current, next); err != nil {
		return nil, err
	}

	b.Status = string(next)
	if in.AestheticianNote != nil {
		b.AestheticianNote = *in.AestheticianNote
	}

	// Approval carries the cascade: competing pendings for the same slot are
	// rejected in the same transaction.
	if next == domain.StatusApproved && b.AestheticianID != nil {
		err = uc.repo.ApproveAndRejectCompeting(ctx, b)
	} else {
		err = uc.repo.Save(ctx, b)
	}
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &actor.ID,
		Action:   "booking_status_updated",
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]any{
			"from": string(current),
			"to":   string(next),
		},
	})

	return b, nil
}
