package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domain "github.com/glowbook/salon-api/internal/domain/booking"
	"github.com/glowbook/salon-api/internal/httperr"
	"github.com/glowbook/salon-api/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Sweeper
// --------------------------------------------------

// ExpireOldPending moves every pending booking whose date is strictly before
// today to expired. Running it twice changes nothing further.
func (r *BookingGormRepository) ExpireOldPending(
	ctx context.Context,
	today string,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("status = ? AND appointment_date < ?", string(domain.StatusPending), today).
		Update("status", string(domain.StatusExpired)).Error
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *BookingGormRepository) ListAll(
	ctx context.Context,
	f domain.ListFilters,
) ([]models.Booking, error) {

	q := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Aesthetician").
		Preload("Service")

	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.DateFrom != "" {
		q = q.Where("appointment_date >= ?", f.DateFrom)
	}
	if f.DateTo != "" {
		q = q.Where("appointment_date <= ?", f.DateTo)
	}
	if f.ClientID != nil {
		q = q.Where("client_id = ?", *f.ClientID)
	}
	if f.AestheticianID != nil {
		q = q.Where("aesthetician_id = ?", *f.AestheticianID)
	}

	var bookings []models.Booking
	if err := q.
		Order("appointment_date ASC, appointment_time ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingGormRepository) ListForAesthetician(
	ctx context.Context,
	aestheticianID uint,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Where("aesthetician_id = ?", aestheticianID).
		Order("appointment_date ASC, appointment_time ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingGormRepository) ListForClient(
	ctx context.Context,
	clientID uint,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Aesthetician").
		Preload("Service").
		Where("client_id = ?", clientID).
		Order("appointment_date ASC, appointment_time ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingGormRepository) ListConfirmedForAesthetician(
	ctx context.Context,
	aestheticianID uint,
	dateFrom string,
	dateTo string,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Aesthetician").
		Preload("Service").
		Where(
			"aesthetician_id = ? AND appointment_date >= ? AND appointment_date <= ? AND status IN ?",
			aestheticianID, dateFrom, dateTo, domain.ConfirmedStatuses(),
		).
		Order("appointment_date ASC, appointment_time ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// --------------------------------------------------
// Single booking
// --------------------------------------------------

func (r *BookingGormRepository) GetByID(
	ctx context.Context,
	id uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Aesthetician").
		Preload("Service").
		First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// Create checks both conflict axes and inserts inside one transaction. The
// partial unique indexes close the remaining race between two transactions
// that both saw a free slot; a violating insert comes back as 23505 and is
// mapped to the same business error the in-transaction check would raise.
func (r *BookingGormRepository) Create(
	ctx context.Context,
	b *models.Booking,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var clientHeld int64
		if err := tx.Model(&models.Booking{}).
			Where(
				"client_id = ? AND appointment_date = ? AND appointment_time = ? AND status IN ?",
				b.ClientID, b.AppointmentDate, b.AppointmentTime, domain.LiveStatuses(),
			).
			Count(&clientHeld).Error; err != nil {
			return err
		}
		if clientHeld > 0 {
			return httperr.ErrBusiness("client_slot_taken")
		}

		var staffBooked int64
		if err := tx.Model(&models.Booking{}).
			Where(
				"aesthetician_id = ? AND appointment_date = ? AND appointment_time = ? AND status IN ?",
				b.AestheticianID, b.AppointmentDate, b.AppointmentTime, domain.ConfirmedStatuses(),
			).
			Count(&staffBooked).Error; err != nil {
			return err
		}
		if staffBooked > 0 {
			return httperr.ErrBusiness("aesthetician_slot_taken")
		}

		return tx.Create(b).Error
	})

	return mapSlotConflict(err)
}

// ApproveAndRejectCompeting persists the approval and the cascade as a single
// atomic unit: no reader can observe the approval without the rejections.
func (r *BookingGormRepository) ApproveAndRejectCompeting(
	ctx context.Context,
	b *models.Booking,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if err := tx.Save(b).Error; err != nil {
			return err
		}

		return tx.Model(&models.Booking{}).
			Where(
				"id <> ? AND aesthetician_id = ? AND appointment_date = ? AND appointment_time = ? AND status = ?",
				b.ID, b.AestheticianID, b.AppointmentDate, b.AppointmentTime,
				string(domain.StatusPending),
			).
			Update("status", string(domain.StatusRejected)).Error
	})

	return mapSlotConflict(err)
}

func (r *BookingGormRepository) Save(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *BookingGormRepository) Delete(
	ctx context.Context,
	id uint,
) error {
	return r.db.WithContext(ctx).Delete(&models.Booking{}, id).Error
}

// --------------------------------------------------
// Conflict mapping
// --------------------------------------------------

func mapSlotConflict(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if strings.Contains(pgErr.ConstraintName, "aesthetician") {
			return httperr.ErrBusiness("aesthetician_slot_taken")
		}
		return httperr.ErrBusiness("client_slot_taken")
	}

	return err
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
