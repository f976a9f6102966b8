package seats

import (
	"context"
	"errors"
	"fmt"

	"busline/internal/shared/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	CreateSeats(ctx context.Context, seats []Seat) error
	GetSeatByID(ctx context.Context, id uuid.UUID) (*Seat, error)
	GetSeatByTripAndLabel(ctx context.Context, tripID uuid.UUID, label string) (*Seat, error)
	GetSeatsByTripID(ctx context.Context, tripID uuid.UUID) ([]Seat, error)
	CountAvailableByTripID(ctx context.Context, tripID uuid.UUID) (int64, error)
	CountAvailableByTripIDs(ctx context.Context, tripIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	DeleteSeatsByTripID(ctx context.Context, tripID uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{
		db: db,
	}
}

func (r *repository) CreateSeats(ctx context.Context, seats []Seat) error {
	return r.db.WithContext(ctx).Create(&seats).Error
}

func (r *repository) GetSeatByID(ctx context.Context, id uuid.UUID) (*Seat, error) {
	var seat Seat
	err := r.db.WithContext(ctx).First(&seat, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("seat %s: %w", id, apperrors.ErrNotFound)
		}
		return nil, err
	}
	return &seat, nil
}

func (r *repository) GetSeatByTripAndLabel(ctx context.Context, tripID uuid.UUID, label string) (*Seat, error) {
	var seat Seat
	err := r.db.WithContext(ctx).
		Where("trip_id = ? AND label = ?", tripID, label).
		First(&seat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("seat %s on trip %s: %w", label, tripID, apperrors.ErrNotFound)
		}
		return nil, err
	}
	return &seat, nil
}

func (r *repository) GetSeatsByTripID(ctx context.Context, tripID uuid.UUID) ([]Seat, error) {
	var seats []Seat
	err := r.db.WithContext(ctx).
		Where("trip_id = ?", tripID).
		Order("length(label) ASC, label ASC").
		Find(&seats).Error
	return seats, err
}

func (r *repository) CountAvailableByTripID(ctx context.Context, tripID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Seat{}).
		Where("trip_id = ? AND status = ?", tripID, StatusAvailable).
		Count(&count).Error
	return count, err
}

// CountAvailableByTripIDs resolves availability for a page of trips in one
// query instead of a count per trip.
func (r *repository) CountAvailableByTripIDs(ctx context.Context, tripIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(tripIDs))
	if len(tripIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		TripID uuid.UUID
		Count  int64
	}
	err := r.db.WithContext(ctx).Model(&Seat{}).
		Select("trip_id, COUNT(*) as count").
		Where("trip_id IN ? AND status = ?", tripIDs, StatusAvailable).
		Group("trip_id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.TripID] = row.Count
	}
	return counts, nil
}

func (r *repository) DeleteSeatsByTripID(ctx context.Context, tripID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&Seat{}, "trip_id = ?", tripID).Error
}
