package bookings

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"busline/internal/seats"
	"busline/internal/shared/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	// Transactional booking operations - the booking row and its seat flip
	// commit together or not at all
	CreateWithSeatClaim(ctx context.Context, booking *Booking) error
	CancelWithSeatRelease(ctx context.Context, bookingID uuid.UUID, refund bool) error
	ReinstateWithSeatClaim(ctx context.Context, bookingID uuid.UUID) error

	// Lookups
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetByCode(ctx context.Context, code string) (*Booking, error)
	GetUserBookings(ctx context.Context, userID uuid.UUID, query BookingListQuery) ([]Booking, int64, error)
	GetAllBookings(ctx context.Context, query BookingListQuery) ([]Booking, int64, error)

	// State updates
	UpdatePayment(ctx context.Context, id uuid.UUID, status PaymentStatus, transactionID string) error
	MarkCompleted(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// CreateWithSeatClaim inserts the booking and flips its seat from AVAILABLE
// to BOOKED in one transaction. When two requests race for the same seat,
// the conditional seat update serializes them: the loser gets
// apperrors.ErrSeatUnavailable and its booking row rolls back.
func (r *repository) CreateWithSeatClaim(ctx context.Context, booking *Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(booking).Error; err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}

		if err := seats.ClaimSeat(tx, booking.SeatID, booking.ID); err != nil {
			return err
		}

		return nil
	})
}

// CancelWithSeatRelease marks the booking cancelled and returns its seat in
// one transaction. The status update is conditional so a repeated cancel
// changes nothing. A paid booking gets its payment marked refunded.
func (r *repository) CancelWithSeatRelease(ctx context.Context, bookingID uuid.UUID, refund bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		updates := map[string]interface{}{
			"status":       StatusCancelled,
			"cancelled_at": now,
			"updated_at":   now,
		}
		if refund {
			updates["payment_status"] = PaymentRefunded
		}

		result := tx.Model(&Booking{}).
			Where("id = ? AND status = ?", bookingID, StatusConfirmed).
			Updates(updates)
		if result.Error != nil {
			return fmt.Errorf("failed to cancel booking: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			// Already cancelled (or completed); nothing to release.
			return nil
		}

		var booking Booking
		if err := tx.Where("id = ?", bookingID).First(&booking).Error; err != nil {
			return fmt.Errorf("failed to reload booking: %w", err)
		}

		if _, err := seats.ReleaseSeat(tx, booking.SeatID, bookingID); err != nil {
			return err
		}

		return nil
	})
}

// ReinstateWithSeatClaim moves a cancelled booking back to CONFIRMED,
// re-claiming its seat atomically. Fails with apperrors.ErrSeatUnavailable
// when someone else took the seat in the meantime, leaving the booking
// cancelled.
func (r *repository) ReinstateWithSeatClaim(ctx context.Context, bookingID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var booking Booking
		if err := tx.Where("id = ?", bookingID).First(&booking).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("booking %s: %w", bookingID, apperrors.ErrNotFound)
			}
			return err
		}

		if err := seats.ClaimSeat(tx, booking.SeatID, booking.ID); err != nil {
			return err
		}

		updates := map[string]interface{}{
			"status":       StatusConfirmed,
			"cancelled_at": nil,
			"updated_at":   time.Now(),
		}
		// A refunded payment must be settled again.
		if booking.PaymentStatus == PaymentRefunded {
			updates["payment_status"] = PaymentPending
		}

		result := tx.Model(&Booking{}).
			Where("id = ? AND status = ?", bookingID, StatusCancelled).
			Updates(updates)
		if result.Error != nil {
			return fmt.Errorf("failed to reinstate booking: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("booking %s is not cancelled: %w", bookingID, apperrors.ErrInvalidState)
		}

		return nil
	})
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("booking %s: %w", id, apperrors.ErrNotFound)
		}
		return nil, err
	}
	return &booking, nil
}

func (r *repository) GetByCode(ctx context.Context, code string) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("booking %s: %w", code, apperrors.ErrNotFound)
		}
		return nil, err
	}
	return &booking, nil
}

func (r *repository) GetUserBookings(ctx context.Context, userID uuid.UUID, query BookingListQuery) ([]Booking, int64, error) {
	return r.listBookings(ctx, query, func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	})
}

func (r *repository) GetAllBookings(ctx context.Context, query BookingListQuery) ([]Booking, int64, error) {
	return r.listBookings(ctx, query, nil)
}

func (r *repository) listBookings(ctx context.Context, query BookingListQuery, scope func(*gorm.DB) *gorm.DB) ([]Booking, int64, error) {
	var bookings []Booking
	var totalCount int64

	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	baseQuery := r.db.WithContext(ctx).Model(&Booking{})
	if scope != nil {
		baseQuery = scope(baseQuery)
	}
	baseQuery = r.applyFilters(baseQuery, query)

	if err := baseQuery.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	offset := (query.Page - 1) * query.Limit
	err := baseQuery.
		Order("created_at DESC").
		Offset(offset).
		Limit(query.Limit).
		Find(&bookings).Error

	return bookings, totalCount, err
}

func (r *repository) UpdatePayment(ctx context.Context, id uuid.UUID, status PaymentStatus, transactionID string) error {
	updates := map[string]interface{}{
		"payment_status": status,
		"updated_at":     time.Now(),
	}
	if transactionID != "" {
		updates["transaction_id"] = transactionID
	}

	return r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// MarkCompleted flips a confirmed booking to COMPLETED. Conditional so a
// cancelled booking can never be completed by a racing admin action.
func (r *repository) MarkCompleted(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("id = ? AND status = ?", id, StatusConfirmed).
		Updates(map[string]interface{}{
			"status":     StatusCompleted,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("booking %s cannot be completed: %w", id, apperrors.ErrInvalidState)
	}
	return nil
}

// applyFilters applies query filters to the GORM query
func (r *repository) applyFilters(query *gorm.DB, filters BookingListQuery) *gorm.DB {
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}

	if filters.TripID != "" {
		if tripID, err := uuid.Parse(filters.TripID); err == nil {
			query = query.Where("trip_id = ?", tripID)
		}
	}

	if filters.DateFrom != "" {
		if dateFrom, err := time.Parse("2006-01-02", filters.DateFrom); err == nil {
			query = query.Where("created_at >= ?", dateFrom)
		}
	}

	if filters.DateTo != "" {
		if dateTo, err := time.Parse("2006-01-02", filters.DateTo); err == nil {
			dateTo = dateTo.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
			query = query.Where("created_at <= ?", dateTo)
		}
	}

	return query
}

// CalculateTotalPages is a helper for pagination metadata
func CalculateTotalPages(totalCount int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(totalCount) / float64(limit)))
}
