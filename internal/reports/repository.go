package reports

import (
	"context"
	"errors"
	"fmt"

	"busline/internal/shared/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	GetBookingStats(ctx context.Context) (*BookingStats, error)
	GetTripReport(ctx context.Context, tripID uuid.UUID) (*TripReport, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// GetBookingStats aggregates all booking counters in a single statement so
// the numbers describe one moment in time; summing the per-status counts
// always equals the total.
func (r *repository) GetBookingStats(ctx context.Context) (*BookingStats, error) {
	var stats BookingStats
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS total_bookings,
			COUNT(*) FILTER (WHERE status = 'CONFIRMED') AS confirmed_bookings,
			COUNT(*) FILTER (WHERE status = 'CANCELLED') AS cancelled_bookings,
			COUNT(*) FILTER (WHERE status = 'COMPLETED') AS completed_bookings,
			COUNT(*) FILTER (WHERE payment_status = 'PAID') AS paid_bookings,
			COUNT(*) FILTER (WHERE payment_status = 'PENDING') AS pending_payments,
			COALESCE(SUM(amount) FILTER (WHERE payment_status = 'PAID'), 0) AS total_revenue
		FROM bookings
	`).Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate booking stats: %w", err)
	}
	return &stats, nil
}

// GetTripReport reads seat occupancy and booking aggregates for one trip in
// a single statement.
func (r *repository) GetTripReport(ctx context.Context, tripID uuid.UUID) (*TripReport, error) {
	var report TripReport
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			t.id AS trip_id,
			t.origin,
			t.destination,
			t.departure_time,
			(SELECT COUNT(*) FROM seats s WHERE s.trip_id = t.id) AS total_seats,
			(SELECT COUNT(*) FROM seats s WHERE s.trip_id = t.id AND s.status = 'AVAILABLE') AS available_seats,
			(SELECT COUNT(*) FROM seats s WHERE s.trip_id = t.id AND s.status = 'BOOKED') AS booked_seats,
			(SELECT COUNT(*) FROM bookings b WHERE b.trip_id = t.id) AS total_bookings,
			(SELECT COUNT(*) FROM bookings b WHERE b.trip_id = t.id AND b.status = 'CONFIRMED') AS confirmed_bookings,
			(SELECT COUNT(*) FROM bookings b WHERE b.trip_id = t.id AND b.status = 'CANCELLED') AS cancelled_bookings,
			(SELECT COALESCE(SUM(b.amount), 0) FROM bookings b WHERE b.trip_id = t.id AND b.payment_status = 'PAID') AS revenue
		FROM trips t
		WHERE t.id = ?
	`, tripID).Scan(&report).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("trip %s: %w", tripID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to build trip report: %w", err)
	}

	if report.TripID == "" {
		return nil, fmt.Errorf("trip %s: %w", tripID, apperrors.ErrNotFound)
	}

	if report.TotalSeats > 0 {
		report.OccupancyPercent = float64(report.BookedSeats) / float64(report.TotalSeats) * 100
	}

	return &report, nil
}
