package apperrors

import "errors"

// Sentinel errors shared across the core services. Controllers map these to
// HTTP status codes; services wrap them with %w and context.
var (
	ErrNotFound        = errors.New("not found")
	ErrSeatUnavailable = errors.New("seat unavailable")
	ErrInvalidState    = errors.New("invalid state transition")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrUnauthorized    = errors.New("unauthorized")
)

// IsNotFound reports whether err wraps ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsSeatUnavailable reports whether err wraps ErrSeatUnavailable.
// Callers use this to distinguish a booking conflict from a missing seat.
func IsSeatUnavailable(err error) bool {
	return errors.Is(err, ErrSeatUnavailable)
}

// IsInvalidState reports whether err wraps ErrInvalidState.
func IsInvalidState(err error) bool {
	return errors.Is(err, ErrInvalidState)
}
