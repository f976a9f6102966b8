package bookings

// Status represents the lifecycle state of a booking
type Status string

const (
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
)

// IsValid checks if the booking status is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// CanCancel reports whether a booking in this status may still be cancelled.
// Cancelling an already-cancelled booking is treated as a no-op by the
// service, and a completed trip can no longer be cancelled.
func (s Status) CanCancel() bool {
	return s == StatusConfirmed
}

// CanComplete reports whether a booking may transition to COMPLETED.
func (s Status) CanComplete() bool {
	return s == StatusConfirmed
}

// PaymentStatus represents the payment state of a booking
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentPaid     PaymentStatus = "PAID"
	PaymentFailed   PaymentStatus = "FAILED"
	PaymentRefunded PaymentStatus = "REFUNDED"
)

// IsValid checks if the payment status is valid
func (p PaymentStatus) IsValid() bool {
	switch p {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// String returns the string representation of PaymentStatus
func (p PaymentStatus) String() string {
	return string(p)
}

// CanPay reports whether payment may still be attempted. A failed attempt
// can be retried; a settled or refunded payment cannot be paid again.
func (p PaymentStatus) CanPay() bool {
	return p == PaymentPending || p == PaymentFailed
}
