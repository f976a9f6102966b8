package trips

import (
	"time"

	"github.com/google/uuid"
)

// Trip represents a scheduled bus run between two points with a fixed seat
// inventory. TotalSeats is set once at creation; seats are provisioned from
// it and the inventory never changes afterwards.
type Trip struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Origin        string    `json:"origin" gorm:"not null;size:255;index"`
	Destination   string    `json:"destination" gorm:"not null;size:255;index"`
	DepartureTime time.Time `json:"departure_time" gorm:"not null;index"`
	ArrivalTime   time.Time `json:"arrival_time" gorm:"not null"`
	TotalSeats    int       `json:"total_seats" gorm:"not null;check:total_seats > 0"`
	Price         float64   `json:"price" gorm:"not null;check:price >= 0"`
	Operator      string    `json:"operator" gorm:"size:255"`
	VehicleClass  string    `json:"vehicle_class" gorm:"size:100"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Trip) TableName() string {
	return "trips"
}

type TripResponse struct {
	ID             string    `json:"id"`
	Origin         string    `json:"origin"`
	Destination    string    `json:"destination"`
	DepartureTime  time.Time `json:"departure_time"`
	ArrivalTime    time.Time `json:"arrival_time"`
	TotalSeats     int       `json:"total_seats"`
	AvailableSeats int       `json:"available_seats"`
	Price          float64   `json:"price"`
	Operator       string    `json:"operator"`
	VehicleClass   string    `json:"vehicle_class"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type CreateTripRequest struct {
	Origin        string    `json:"origin" binding:"required,min=2,max=255"`
	Destination   string    `json:"destination" binding:"required,min=2,max=255"`
	DepartureTime time.Time `json:"departure_time" binding:"required"`
	ArrivalTime   time.Time `json:"arrival_time" binding:"required"`
	TotalSeats    int       `json:"total_seats" binding:"required,min=1,max=100"`
	Price         float64   `json:"price" binding:"required,min=0"`
	Operator      string    `json:"operator" binding:"max=255"`
	VehicleClass  string    `json:"vehicle_class" binding:"max=100"`
}

type UpdateTripRequest struct {
	Origin        *string    `json:"origin" binding:"omitempty,min=2,max=255"`
	Destination   *string    `json:"destination" binding:"omitempty,min=2,max=255"`
	DepartureTime *time.Time `json:"departure_time"`
	ArrivalTime   *time.Time `json:"arrival_time"`
	Price         *float64   `json:"price" binding:"omitempty,min=0"`
	Operator      *string    `json:"operator" binding:"omitempty,max=255"`
	VehicleClass  *string    `json:"vehicle_class" binding:"omitempty,max=100"`
}

type TripSearchQuery struct {
	Origin      string `form:"origin"`
	Destination string `form:"destination"`
	Date        string `form:"date" binding:"omitempty,datetime=2006-01-02"`
	Page        int    `form:"page" binding:"omitempty,min=1"`
	Limit       int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

// ToResponse converts a Trip to its API shape. The available-seat count is
// supplied by the caller because it is derived from the seat ledger, never
// stored on the trip row.
func (t *Trip) ToResponse(availableSeats int) TripResponse {
	return TripResponse{
		ID:             t.ID.String(),
		Origin:         t.Origin,
		Destination:    t.Destination,
		DepartureTime:  t.DepartureTime,
		ArrivalTime:    t.ArrivalTime,
		TotalSeats:     t.TotalSeats,
		AvailableSeats: availableSeats,
		Price:          t.Price,
		Operator:       t.Operator,
		VehicleClass:   t.VehicleClass,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}
