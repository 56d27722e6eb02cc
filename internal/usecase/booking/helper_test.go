package booking

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/glowbook/salon-api/internal/audit"
	"github.com/glowbook/salon-api/internal/clock"
	domain "github.com/glowbook/salon-api/internal/domain/booking"
	"github.com/glowbook/salon-api/internal/identity"
	"github.com/glowbook/salon-api/internal/infra/repository"
	"github.com/glowbook/salon-api/internal/models"
)

// Use case tests run against a real repository on an in-memory database, so
// every rule is exercised the way it runs in production.

type fixture struct {
	db      *gorm.DB
	repo    domain.Repository
	catalog domain.Catalog
	clk     clock.Fixed
	audit   *audit.Dispatcher
}

// testToday is the fixed "today" every date rule is checked against.
const testToday = "2026-03-05"

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Service{},
		&models.Booking{},
		&models.AuditLog{},
	))

	require.NoError(t, db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS uniq_client_slot
        ON bookings (client_id, appointment_date, appointment_time)
        WHERE status NOT IN ('cancelled', 'rejected', 'expired')
    `).Error)
	require.NoError(t, db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS uniq_aesthetician_slot
        ON bookings (aesthetician_id, appointment_date, appointment_time)
        WHERE status IN ('approved', 'completed')
    `).Error)

	return &fixture{
		db:      db,
		repo:    repository.NewBookingGormRepository(db),
		catalog: repository.NewCatalogGormRepository(db),
		clk:     clock.Fixed{T: time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)},
		audit:   audit.NewDispatcher(audit.New(db)),
	}
}

var userSeq int

func (f *fixture) user(t *testing.T, role identity.Role) *models.User {
	t.Helper()
	userSeq++

	u := &models.User{
		Username:     fmt.Sprintf("user%d", userSeq),
		FirstName:    "Test",
		LastName:     fmt.Sprintf("User%d", userSeq),
		Email:        fmt.Sprintf("user%d@example.com", userSeq),
		PasswordHash: "x",
		Role:         string(role),
	}
	require.NoError(t, f.db.Create(u).Error)
	return u
}

func (f *fixture) service(t *testing.T) *models.Service {
	t.Helper()

	s := &models.Service{
		Name:            "Manicure",
		Price:           45,
		DurationMinutes: 45,
		IsActive:        true,
	}
	require.NoError(t, f.db.Create(s).Error)
	return s
}

func (f *fixture) booking(
	t *testing.T,
	client *models.User,
	staff *models.User,
	svc *models.Service,
	date, at, status string,
) *models.Booking {
	t.Helper()

	b := &models.Booking{
		ClientID:        client.ID,
		AestheticianID:  &staff.ID,
		ServiceID:       svc.ID,
		AppointmentDate: date,
		AppointmentTime: at,
		Status:          status,
	}
	require.NoError(t, f.db.Create(b).Error)
	return b
}

func actorFor(u *models.User) identity.Actor {
	return identity.Actor{
		ID:           u.ID,
		Role:         identity.Role(u.Role),
		IsSuperAdmin: u.IsSuperAdmin,
	}
}
