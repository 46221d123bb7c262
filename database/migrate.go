package database

import (
	"fmt"

	"nepshift_backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	return db, nil
}

// Migrate runs AutoMigrate plus the constraints gorm tags cannot express.
func Migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return fmt.Errorf("create uuid extension: %w", err)
	}

	err := db.AutoMigrate(
		&models.User{},
		&models.VerificationProfile{},
		&models.VerificationDocument{},
		&models.WorkerProfile{},
		&models.HirerProfile{},
		&models.Shift{},
		&models.ShiftApplication{},
		&models.Review{},
		&models.ChatMessage{},
		&models.Upload{},
	)
	if err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	// At most one active (non-rejected) application per worker per shift.
	// A rejected application does not block re-applying, so a plain unique
	// index over (shift_id, worker_id) is too strict; hence the partial one.
	err = db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_active_application
		ON shift_applications (shift_id, worker_id)
		WHERE status <> 'rejected'
	`).Error
	if err != nil {
		return fmt.Errorf("create partial unique index: %w", err)
	}

	return nil
}
