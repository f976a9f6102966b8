package bookings

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Booking ties one user to one seat on one trip. Amount snapshots the trip
// price at booking time so later fare changes never alter what was charged.
type Booking struct {
	ID            uuid.UUID     `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Code          string        `json:"code" gorm:"size:16;not null;uniqueIndex"`
	UserID        uuid.UUID     `json:"user_id" gorm:"type:uuid;not null;index"`
	TripID        uuid.UUID     `json:"trip_id" gorm:"type:uuid;not null;index"`
	SeatID        uuid.UUID     `json:"seat_id" gorm:"type:uuid;not null;index"`
	SeatLabel     string        `json:"seat_label" gorm:"size:10;not null"`
	Amount        float64       `json:"amount" gorm:"not null;check:amount >= 0"`
	Status        Status        `json:"status" gorm:"type:varchar(20);not null;default:'CONFIRMED';index"`
	PaymentStatus PaymentStatus `json:"payment_status" gorm:"type:varchar(20);not null;default:'PENDING'"`
	TransactionID string        `json:"transaction_id,omitempty" gorm:"size:64"`
	CancelledAt   *time.Time    `json:"cancelled_at,omitempty"`
	CreatedAt     time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time     `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Booking) TableName() string {
	return "bookings"
}

func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

func (b *Booking) IsPaid() bool {
	return b.PaymentStatus == PaymentPaid
}

// GenerateCode produces a booking code like "BK3F2A91CD". Codes are random
// and the column carries a unique index, so a collision surfaces as an
// insert error rather than a silent duplicate.
func GenerateCode() (string, error) {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate booking code: %w", err)
	}
	return "BK" + strings.ToUpper(hex.EncodeToString(buf)), nil
}

type CreateBookingRequest struct {
	TripID    string `json:"trip_id" binding:"required,uuid"`
	SeatLabel string `json:"seat_label" binding:"required,min=2,max=10"`
}

type BookingResponse struct {
	ID            string     `json:"id"`
	Code          string     `json:"code"`
	UserID        string     `json:"user_id"`
	TripID        string     `json:"trip_id"`
	SeatLabel     string     `json:"seat_label"`
	Amount        float64    `json:"amount"`
	Status        string     `json:"status"`
	PaymentStatus string     `json:"payment_status"`
	TransactionID string     `json:"transaction_id,omitempty"`
	CancelledAt   *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

type BookingListResponse struct {
	Bookings   []BookingResponse `json:"bookings"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
}

type BookingListQuery struct {
	Status   string `form:"status"`
	TripID   string `form:"trip_id" binding:"omitempty,uuid"`
	DateFrom string `form:"date_from" binding:"omitempty,datetime=2006-01-02"`
	DateTo   string `form:"date_to" binding:"omitempty,datetime=2006-01-02"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

// ToResponse converts a Booking to its API shape
func (b *Booking) ToResponse() BookingResponse {
	return BookingResponse{
		ID:            b.ID.String(),
		Code:          b.Code,
		UserID:        b.UserID.String(),
		TripID:        b.TripID.String(),
		SeatLabel:     b.SeatLabel,
		Amount:        b.Amount,
		Status:        b.Status.String(),
		PaymentStatus: b.PaymentStatus.String(),
		TransactionID: b.TransactionID,
		CancelledAt:   b.CancelledAt,
		CreatedAt:     b.CreatedAt,
	}
}
