package database

import (
	"fmt"

	"busline/internal/bookings"
	"busline/internal/seats"
	"busline/internal/trips"
	"busline/internal/users"

	"gorm.io/gorm"
)

// Migrate runs schema migrations for all domain models
func Migrate(db *gorm.DB) error {
	// uuid_generate_v4 defaults need this extension
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return fmt.Errorf("failed to create uuid extension: %w", err)
	}

	if err := db.AutoMigrate(
		&users.User{},
		&trips.Trip{},
		&seats.Seat{},
		&bookings.Booking{},
	); err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}

	return nil
}
