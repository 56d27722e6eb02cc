package repository

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/glowbook/salon-api/internal/models"
)

// newTestDB opens a private in-memory database with the same schema the
// Postgres bootstrap produces, partial slot indexes included (sqlite
// understands the identical DDL).
func newTestDB(t *testing.T) *gorm.DB {
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
		&models.AccessToken{},
		&models.EmailVerificationCode{},
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

	return db
}

var userSeq int

func seedUser(t *testing.T, db *gorm.DB, role string) *models.User {
	t.Helper()
	userSeq++

	u := &models.User{
		Username:     fmt.Sprintf("user%d", userSeq),
		FirstName:    "Test",
		LastName:     fmt.Sprintf("User%d", userSeq),
		Email:        fmt.Sprintf("user%d@example.com", userSeq),
		PasswordHash: "x",
		Role:         role,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedService(t *testing.T, db *gorm.DB) *models.Service {
	t.Helper()

	s := &models.Service{
		Name:            "Facial",
		Price:           70,
		DurationMinutes: 60,
		IsActive:        true,
	}
	require.NoError(t, db.Create(s).Error)
	return s
}

func seedBooking(
	t *testing.T,
	db *gorm.DB,
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
	require.NoError(t, db.Create(b).Error)
	return b
}
