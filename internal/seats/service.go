package seats

import (
	"context"
	"fmt"
	"time"

	"busline/internal/shared/apperrors"
	"busline/internal/shared/config"
	"busline/pkg/logger"

	"github.com/google/uuid"
)

type Service interface {
	GetSeat(ctx context.Context, tripID string, label string) (*SeatResponse, error)
	ListSeats(ctx context.Context, tripID string) ([]SeatResponse, error)
	CountAvailable(ctx context.Context, tripID uuid.UUID) (int64, error)
	CountAvailableMany(ctx context.Context, tripIDs []uuid.UUID) (map[uuid.UUID]int64, error)

	// Temporary holds
	HoldSeat(ctx context.Context, tripID string, label string, userID string) (*SeatHoldResponse, error)
	ReleaseHold(ctx context.Context, tripID string, label string, userID string) error
	HolderOf(ctx context.Context, seatID uuid.UUID) (string, error)
}

type service struct {
	repo   Repository
	holds  *AtomicSeatHolds
	config *config.Config
}

func NewService(repo Repository, holds *AtomicSeatHolds, cfg *config.Config) Service {
	return &service{
		repo:   repo,
		holds:  holds,
		config: cfg,
	}
}

// BuildSeatsForTrip lays out one seat per total, labeled "A1".."An". The
// trip repository creates these inside the same transaction as the trip row
// so a trip never exists without its full seat inventory.
func BuildSeatsForTrip(tripID uuid.UUID, totalSeats int) []Seat {
	seats := make([]Seat, 0, totalSeats)
	for i := 1; i <= totalSeats; i++ {
		seats = append(seats, Seat{
			TripID: tripID,
			Label:  fmt.Sprintf("A%d", i),
			Status: StatusAvailable,
		})
	}
	return seats
}

func (s *service) GetSeat(ctx context.Context, tripID string, label string) (*SeatResponse, error) {
	tripUUID, err := uuid.Parse(tripID)
	if err != nil {
		return nil, fmt.Errorf("invalid trip ID: %w", err)
	}

	seat, err := s.repo.GetSeatByTripAndLabel(ctx, tripUUID, label)
	if err != nil {
		return nil, err
	}

	holder, err := s.holds.HolderOf(ctx, seat.ID)
	if err != nil {
		logger.GetDefault().Warn("failed to check seat hold, assuming unheld", "seat_id", seat.ID, "error", err)
		holder = ""
	}

	resp := seat.ToResponse(holder != "")
	return &resp, nil
}

func (s *service) ListSeats(ctx context.Context, tripID string) ([]SeatResponse, error) {
	tripUUID, err := uuid.Parse(tripID)
	if err != nil {
		return nil, fmt.Errorf("invalid trip ID: %w", err)
	}

	seats, err := s.repo.GetSeatsByTripID(ctx, tripUUID)
	if err != nil {
		return nil, fmt.Errorf("failed to get seats: %w", err)
	}

	seatIDs := make([]uuid.UUID, len(seats))
	for i, seat := range seats {
		seatIDs[i] = seat.ID
	}

	held, err := s.holds.HeldSeats(ctx, seatIDs)
	if err != nil {
		logger.GetDefault().Warn("failed to check seat holds, reporting stored status only", "trip_id", tripID, "error", err)
		held = map[uuid.UUID]string{}
	}

	response := make([]SeatResponse, len(seats))
	for i, seat := range seats {
		_, isHeld := held[seat.ID]
		response[i] = seat.ToResponse(isHeld)
	}
	return response, nil
}

func (s *service) CountAvailable(ctx context.Context, tripID uuid.UUID) (int64, error) {
	return s.repo.CountAvailableByTripID(ctx, tripID)
}

func (s *service) CountAvailableMany(ctx context.Context, tripIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	return s.repo.CountAvailableByTripIDs(ctx, tripIDs)
}

func (s *service) HoldSeat(ctx context.Context, tripID string, label string, userID string) (*SeatHoldResponse, error) {
	tripUUID, err := uuid.Parse(tripID)
	if err != nil {
		return nil, fmt.Errorf("invalid trip ID: %w", err)
	}

	seat, err := s.repo.GetSeatByTripAndLabel(ctx, tripUUID, label)
	if err != nil {
		return nil, err
	}

	// A booked seat can never be held; the hold layer only guards seats the
	// ledger still shows as available.
	if !seat.Status.IsBookable() {
		return nil, fmt.Errorf("seat %s: %w", label, apperrors.ErrSeatUnavailable)
	}

	ttl := s.config.Redis.SeatHoldTTL
	if err := s.holds.HoldSeat(ctx, seat.ID, userID, ttl); err != nil {
		return nil, err
	}

	logger.GetDefault().Info("seat held", "trip_id", tripID, "label", label, "user_id", userID, "ttl", ttl)

	return &SeatHoldResponse{
		TripID:    tripID,
		Label:     label,
		ExpiresAt: time.Now().Add(ttl),
		TTL:       int(ttl.Seconds()),
	}, nil
}

func (s *service) ReleaseHold(ctx context.Context, tripID string, label string, userID string) error {
	tripUUID, err := uuid.Parse(tripID)
	if err != nil {
		return fmt.Errorf("invalid trip ID: %w", err)
	}

	seat, err := s.repo.GetSeatByTripAndLabel(ctx, tripUUID, label)
	if err != nil {
		return err
	}

	return s.holds.ReleaseHold(ctx, seat.ID, userID)
}

func (s *service) HolderOf(ctx context.Context, seatID uuid.UUID) (string, error) {
	return s.holds.HolderOf(ctx, seatID)
}
