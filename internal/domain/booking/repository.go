package booking

import (
	"context"

	"github.com/glowbook/salon-api/internal/models"
)

// ListFilters are the admin-facing query filters. Date bounds are inclusive
// YYYY-MM-DD strings.
type ListFilters struct {
	Status         string
	DateFrom       string
	DateTo         string
	ClientID       *uint
	AestheticianID *uint
}

// AvailabilityRequested reports whether a client listing asked for the
// availability-check mode: all three of aesthetician, date_from and date_to
// must be present, otherwise the listing stays identity-scoped.
func (f ListFilters) AvailabilityRequested() bool {
	return f.AestheticianID != nil && f.DateFrom != "" && f.DateTo != ""
}

type Repository interface {
	// -------- Sweeper --------
	ExpireOldPending(ctx context.Context, today string) error

	// -------- Listing --------
	ListAll(ctx context.Context, f ListFilters) ([]models.Booking, error)

	ListForAesthetician(ctx context.Context, aestheticianID uint) ([]models.Booking, error)

	ListForClient(ctx context.Context, clientID uint) ([]models.Booking, error)

	// ListConfirmedForAesthetician returns approved/completed bookings for an
	// aesthetician in a date range, regardless of who owns them.
	ListConfirmedForAesthetician(ctx context.Context, aestheticianID uint, dateFrom, dateTo string) ([]models.Booking, error)

	// -------- Single booking --------
	GetByID(ctx context.Context, id uint) (*models.Booking, error)

	// Create runs both conflict checks and the insert in one transaction.
	Create(ctx context.Context, b *models.Booking) error

	// ApproveAndRejectCompeting persists b as approved and, in the same
	// transaction, rejects every other pending booking for the same
	// (aesthetician, date, time) slot.
	ApproveAndRejectCompeting(ctx context.Context, b *models.Booking) error

	Save(ctx context.Context, b *models.Booking) error

	Delete(ctx context.Context, id uint) error
}

// Catalog resolves referential checks against entities the booking core does
// not own.
type Catalog interface {
	ServiceIsActive(ctx context.Context, serviceID uint) (bool, error)
	UserHasRole(ctx context.Context, userID uint, role string) (bool, error)
}
