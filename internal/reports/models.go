package reports

import "time"

// BookingStats is the system-wide booking summary. Revenue counts only
// settled payments.
type BookingStats struct {
	TotalBookings     int64   `json:"total_bookings"`
	ConfirmedBookings int64   `json:"confirmed_bookings"`
	CancelledBookings int64   `json:"cancelled_bookings"`
	CompletedBookings int64   `json:"completed_bookings"`
	PaidBookings      int64   `json:"paid_bookings"`
	PendingPayments   int64   `json:"pending_payments"`
	TotalRevenue      float64 `json:"total_revenue"`
}

// TripReport is the per-trip occupancy and revenue view. Seat counts come
// from the seat ledger and booking counts from the bookings table, read in
// one statement so they agree with each other.
type TripReport struct {
	TripID            string    `json:"trip_id"`
	Origin            string    `json:"origin"`
	Destination       string    `json:"destination"`
	DepartureTime     time.Time `json:"departure_time"`
	TotalSeats        int64     `json:"total_seats"`
	AvailableSeats    int64     `json:"available_seats"`
	BookedSeats       int64     `json:"booked_seats"`
	TotalBookings     int64     `json:"total_bookings"`
	ConfirmedBookings int64     `json:"confirmed_bookings"`
	CancelledBookings int64     `json:"cancelled_bookings"`
	Revenue           float64   `json:"revenue"`
	OccupancyPercent  float64   `json:"occupancy_percent"`
}
