package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"vfxworks_backend/internal/config"
	"vfxworks_backend/internal/logger"
	"vfxworks_backend/internal/models"
)

var gormDB *gorm.DB

// ConnectGorm opens (or reuses) the shared GORM handle.
func ConnectGorm() (*gorm.DB, error) {
	if gormDB != nil {
		return gormDB, nil
	}

	cfg := config.GetConfig()
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	gormDB = db
	return db, nil
}

// AutoMigrate brings the schema up to date for all models.
func AutoMigrate() error {
	db, err := ConnectGorm()
	if err != nil {
		return err
	}

	// uuid_generate_v4 defaults need the extension in place first.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return fmt.Errorf("failed to create uuid extension: %w", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Job{},
		&models.Bid{},
		&models.Contract{},
		&models.Milestone{},
		&models.Deliverable{},
		&models.Review{},
		&models.Notification{},
	)
	if err != nil {
		return fmt.Errorf("auto-migration failed: %w", err)
	}

	logger.Info("database migration completed")
	return nil
}
