package trips

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"busline/internal/seats"
	"busline/internal/shared/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, trip *Trip) error
	GetByID(ctx context.Context, id uuid.UUID) (*Trip, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*Trip, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, query TripSearchQuery) ([]Trip, int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Create inserts the trip and provisions its full seat inventory in one
// transaction. Either the trip exists with all its seats or not at all.
func (r *repository) Create(ctx context.Context, trip *Trip) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(trip).Error; err != nil {
			return fmt.Errorf("failed to create trip: %w", err)
		}

		inventory := seats.BuildSeatsForTrip(trip.ID, trip.TotalSeats)
		if err := tx.Create(&inventory).Error; err != nil {
			return fmt.Errorf("failed to provision seats: %w", err)
		}

		return nil
	})
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Trip, error) {
	var trip Trip
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&trip).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("trip %s: %w", id, apperrors.ErrNotFound)
		}
		return nil, err
	}
	return &trip, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*Trip, error) {
	var trip Trip

	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&trip).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("trip %s: %w", id, apperrors.ErrNotFound)
		}
		return nil, err
	}

	if err := r.db.WithContext(ctx).Model(&trip).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&trip).Error; err != nil {
		return nil, err
	}

	return &trip, nil
}

// Delete removes a trip and its seat inventory together.
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&seats.Seat{}, "trip_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete trip seats: %w", err)
		}

		result := tx.Delete(&Trip{}, "id = ?", id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete trip: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("trip %s: %w", id, apperrors.ErrNotFound)
		}

		return nil
	})
}

func (r *repository) Search(ctx context.Context, query TripSearchQuery) ([]Trip, int64, error) {
	var trips []Trip
	var totalCount int64

	db := r.db.WithContext(ctx).Model(&Trip{})

	if query.Origin != "" {
		db = db.Where("LOWER(origin) LIKE ?", "%"+strings.ToLower(query.Origin)+"%")
	}

	if query.Destination != "" {
		db = db.Where("LOWER(destination) LIKE ?", "%"+strings.ToLower(query.Destination)+"%")
	}

	// Date filter matches any departure within that calendar day, inclusive
	// on both ends.
	if query.Date != "" {
		day, err := time.Parse("2006-01-02", query.Date)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid date filter: %w", err)
		}
		startOfDay := day
		endOfDay := day.Add(24*time.Hour - time.Second)
		db = db.Where("departure_time BETWEEN ? AND ?", startOfDay, endOfDay)
	}

	if err := db.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	err := db.Order("departure_time ASC").
		Offset(offset).
		Limit(limit).
		Find(&trips).Error
	if err != nil {
		return nil, 0, err
	}

	return trips, totalCount, nil
}
