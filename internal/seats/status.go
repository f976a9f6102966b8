package seats

// Status is the occupancy state of a seat. RESERVED is never stored: it is
// the effective status of an AVAILABLE seat with an active redis hold.
type Status string

const (
	StatusAvailable Status = "AVAILABLE"
	StatusBooked    Status = "BOOKED"
	StatusReserved  Status = "RESERVED"
)

// IsValid checks if the seat status is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusBooked, StatusReserved:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsBookable reports whether a booking may claim a seat in this status.
func (s Status) IsBookable() bool {
	return s == StatusAvailable
}
