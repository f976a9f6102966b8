package seats

import (
	"time"

	"github.com/google/uuid"
)

// Seat defines the structure for individual seats. Status and BookingID are
// always written in the same UPDATE statement so they cannot drift apart:
// a seat is BOOKED iff BookingID is set.
type Seat struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	TripID    uuid.UUID  `gorm:"type:uuid;index;not null;uniqueIndex:idx_trip_seat_label" json:"trip_id"`
	Label     string     `gorm:"not null;uniqueIndex:idx_trip_seat_label" json:"label"`
	Status    Status     `gorm:"type:varchar(20);check:status IN ('AVAILABLE', 'BOOKED');default:'AVAILABLE'" json:"status"`
	BookingID *uuid.UUID `gorm:"type:uuid;index" json:"booking_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TableName sets the table name for Seat
func (Seat) TableName() string {
	return "seats"
}

func (s *Seat) IsAvailable() bool {
	return s.Status == StatusAvailable
}

func (s *Seat) IsBooked() bool {
	return s.Status == StatusBooked
}

// EffectiveStatus folds an active hold into the stored status. A held seat
// reads as RESERVED so clients skip it, but the database still says
// AVAILABLE until a booking claims it.
func (s *Seat) EffectiveStatus(held bool) Status {
	if s.Status == StatusAvailable && held {
		return StatusReserved
	}
	return s.Status
}

// ToResponse converts a Seat to its API shape
func (s *Seat) ToResponse(held bool) SeatResponse {
	return SeatResponse{
		ID:     s.ID.String(),
		Label:  s.Label,
		Status: s.EffectiveStatus(held).String(),
		IsHeld: held,
	}
}

// SeatResponse for API responses
type SeatResponse struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Status string `json:"status"`
	IsHeld bool   `json:"is_held"`
}

// SeatHoldResponse describes an acquired hold
type SeatHoldResponse struct {
	TripID    string    `json:"trip_id"`
	Label     string    `json:"label"`
	ExpiresAt time.Time `json:"expires_at"`
	TTL       int       `json:"ttl_seconds"`
}
