package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds constraints the model tags cannot express. The
// partial unique index is the database-level backstop for seat exclusivity:
// at most one non-cancelled booking may reference a seat, whatever the
// application layer does.
func MigrateConstraints(db *gorm.DB) error {
	err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_bookings_active_seat
		ON bookings (seat_id)
		WHERE status != 'CANCELLED';
	`).Error
	if err != nil {
		return err
	}

	// Speeds up the per-trip report aggregates
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_trip_status
		ON bookings (trip_id, status);
	`).Error
	if err != nil {
		return err
	}

	return db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_seats_trip_status
		ON seats (trip_id, status);
	`).Error
}
