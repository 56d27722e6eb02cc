package db

import (
	"log"
	"time"

	"github.com/glowbook/salon-api/internal/config"
	"github.com/glowbook/salon-api/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Service{},
		&models.Booking{},
		&models.AccessToken{},
		&models.EmailVerificationCode{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// Partial unique indexes backstop the application-level conflict checks:
	// two concurrent creations (or approvals) of the same slot cannot both
	// commit, even if both observed "no conflict".
	db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS uniq_client_slot
        ON bookings (client_id, appointment_date, appointment_time)
        WHERE status NOT IN ('cancelled', 'rejected', 'expired')
    `)
	db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS uniq_aesthetician_slot
        ON bookings (aesthetician_id, appointment_date, appointment_time)
        WHERE status IN ('approved', 'completed')
    `)

	return db
}
