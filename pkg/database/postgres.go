package database

import (
	"log"

	"github.com/serenica/retreat-backoffice/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Retreat{},
		&models.Guest{},
		&models.Booking{},
		&models.FinancialTransaction{},
	); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	// Partial index: waitlist listings filter cancelled rows by the notes tag
	// and order by created_at, so index exactly that shape.
	db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_waitlist_entries
		ON bookings (retreat_id, created_at)
		WHERE status = 'CANCELLED' AND notes LIKE 'WAITLIST:%'
	`)

	return db
}
