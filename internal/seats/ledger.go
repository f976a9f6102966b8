package seats

import (
	"fmt"

	"busline/internal/shared/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// The ledger functions below are the mutual-exclusion boundary for seat
// occupancy. Both run as a single conditional UPDATE keyed on the expected
// prior state, so two racing callers serialize on the row: exactly one
// observes AVAILABLE and wins, the loser sees zero affected rows. They take
// a *gorm.DB so the booking repository can run them inside its transaction.

// ClaimSeat flips one seat from AVAILABLE to BOOKED and records the owning
// booking in the same statement. Returns apperrors.ErrSeatUnavailable when
// the seat was already taken by a concurrent claim.
func ClaimSeat(db *gorm.DB, seatID, bookingID uuid.UUID) error {
	result := db.Model(&Seat{}).
		Where("id = ? AND status = ?", seatID, StatusAvailable).
		Updates(map[string]interface{}{
			"status":     StatusBooked,
			"booking_id": bookingID,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to claim seat %s: %w", seatID, result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("seat %s: %w", seatID, apperrors.ErrSeatUnavailable)
	}

	return nil
}

// ReleaseSeat returns a seat to AVAILABLE, but only while the given booking
// still owns it. Releasing a seat that was already released (or re-claimed
// by a newer booking) is a harmless no-op, which is what makes cancellation
// idempotent. Reports whether a row actually changed.
func ReleaseSeat(db *gorm.DB, seatID, bookingID uuid.UUID) (bool, error) {
	result := db.Model(&Seat{}).
		Where("id = ? AND booking_id = ?", seatID, bookingID).
		Updates(map[string]interface{}{
			"status":     StatusAvailable,
			"booking_id": nil,
		})

	if result.Error != nil {
		return false, fmt.Errorf("failed to release seat %s: %w", seatID, result.Error)
	}

	return result.RowsAffected > 0, nil
}
