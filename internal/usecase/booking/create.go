package booking

import (
	"context"
	"time"

	"github.com/glowbook/salon-api/internal/audit"
	"github.com/glowbook/salon-api/internal/clock"
	domain "github.com/glowbook/salon-api/internal/domain/booking"
	"github.com/glowbook/salon-api/internal/httperr"
	"github.com/glowbook/salon-api/internal/identity"
	"github.com/glowbook/salon-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	ServiceID       uint
	AestheticianID  uint
	AppointmentDate string
	AppointmentTime string
	ClientNote      string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo    domain.Repository
	catalog domain.Catalog
	clk     clock.Clock
	audit   *audit.Dispatcher
}

func NewCreateBooking(
	repo domain.Repository,
	catalog domain.Catalog,
	clk clock.Clock,
	audit *audit.Dispatcher,
) *CreateBooking {
	return &CreateBooking{
		repo:    repo,
		catalog: catalog,
		clk:     clk,
		audit:   audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	actor identity.Actor,
	in CreateBookingInput,
) (*models.Booking, error) {

	if !actor.IsClient() {
		return nil, httperr.ErrBusiness("only_clients_can_book")
	}

	// --------------------------------------------------
	// Referenced service must exist and take bookings
	// --------------------------------------------------
	active, err := uc.catalog.ServiceIsActive(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	// --------------------------------------------------
	// Assigned staff member must carry the role
	// --------------------------------------------------
	isStaff, err := uc.catalog.UserHasRole(ctx, in.AestheticianID, string(identity.RoleAesthetician))
	if err != nil {
		return nil, err
	}
	if !isStaff {
		return nil, httperr.ErrBusiness("aesthetician_not_found")
	}

	// --------------------------------------------------
	// Date strictly after today, minute-granular time
	// --------------------------------------------------
	if _, err := time.Parse(clock.DateLayout, in.AppointmentDate); err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}
	if in.AppointmentDate <= clock.Today(uc.clk) {
		return nil, httperr.ErrBusiness("same_day_not_allowed")
	}
	// time.Parse is lenient about the hour ("9:30" parses), but the stored
	// string is the slot key, so only the canonical zero-padded form is valid.
	tt, err := time.Parse("15:04", in.AppointmentTime)
	if err != nil || tt.Format("15:04") != in.AppointmentTime {
		return nil, httperr.ErrBusiness("invalid_time")
	}

	// --------------------------------------------------
	// Conflict checks + insert, one transaction
	// --------------------------------------------------
	aestheticianID := in.AestheticianID
	b := &models.Booking{
		ClientID:        actor.ID,
		AestheticianID:  &aestheticianID,
		ServiceID:       in.ServiceID,
		AppointmentDate: in.AppointmentDate,
		AppointmentTime: in.AppointmentTime,
		Status:          string(domain.StatusPending),
		ClientNote:      in.ClientNote,
	}

	if err := uc.repo.Create(ctx, b); err != nil {
		if code := httperr.BusinessCode(err); code == "client_slot_taken" || code == "aesthetician_slot_taken" {
			uc.audit.Dispatch(audit.Event{
				ActorID: &actor.ID,
				Action:  "booking_conflict",
				Entity:  "booking",
				Metadata: map[string]any{
					"date": in.AppointmentDate,
					"time": in.AppointmentTime,
					"code": code,
				},
			})
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &actor.ID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return uc.repo.GetByID(ctx, b.ID)
}
