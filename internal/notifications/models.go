package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventType marks what happened to a booking
type EventType string

const (
	EventBookingCreated   EventType = "BOOKING_CREATED"
	EventBookingCancelled EventType = "BOOKING_CANCELLED"
	EventBookingApproved  EventType = "BOOKING_APPROVED"
	EventBookingRejected  EventType = "BOOKING_REJECTED"
	EventBookingCompleted EventType = "BOOKING_COMPLETED"
	EventPaymentSettled   EventType = "PAYMENT_SETTLED"
	EventPaymentFailed    EventType = "PAYMENT_FAILED"
)

// BookingEvent is the wire shape published to Kafka for every booking
// lifecycle change. Downstream consumers (email, analytics) read this topic.
type BookingEvent struct {
	ID          uuid.UUID `json:"id"`
	Type        EventType `json:"type"`
	BookingCode string    `json:"booking_code"`
	UserID      string    `json:"user_id"`
	TripID      string    `json:"trip_id"`
	SeatLabel   string    `json:"seat_label"`
	Amount      float64   `json:"amount"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// NewBookingEvent fills in the envelope fields
func NewBookingEvent(eventType EventType, bookingCode, userID, tripID, seatLabel string, amount float64) *BookingEvent {
	return &BookingEvent{
		ID:          uuid.New(),
		Type:        eventType,
		BookingCode: bookingCode,
		UserID:      userID,
		TripID:      tripID,
		SeatLabel:   seatLabel,
		Amount:      amount,
		OccurredAt:  time.Now(),
	}
}

// ToJSON serializes the event for the wire
func (e *BookingEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// GetPartitionKey routes all events for one booking to the same partition
// so consumers see them in order.
func (e *BookingEvent) GetPartitionKey() string {
	return e.BookingCode
}
