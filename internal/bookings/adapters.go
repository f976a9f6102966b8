package bookings

import (
	"context"

	"busline/internal/seats"
	"busline/internal/trips"

	"github.com/google/uuid"
)

// tripCatalog adapts the trip repository to the booking flow's view
type tripCatalog struct {
	repo trips.Repository
}

func NewTripCatalog(repo trips.Repository) TripCatalog {
	return &tripCatalog{repo: repo}
}

func (t *tripCatalog) GetTripInfo(ctx context.Context, tripID uuid.UUID) (*TripInfo, error) {
	trip, err := t.repo.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	return &TripInfo{
		ID:            trip.ID,
		Price:         trip.Price,
		DepartureTime: trip.DepartureTime,
	}, nil
}

// seatDirectory adapts the seat repository and hold layer
type seatDirectory struct {
	repo  seats.Repository
	holds *seats.AtomicSeatHolds
}

func NewSeatDirectory(repo seats.Repository, holds *seats.AtomicSeatHolds) SeatDirectory {
	return &seatDirectory{repo: repo, holds: holds}
}

func (s *seatDirectory) FindSeat(ctx context.Context, tripID uuid.UUID, label string) (*SeatInfo, error) {
	seat, err := s.repo.GetSeatByTripAndLabel(ctx, tripID, label)
	if err != nil {
		return nil, err
	}
	return &SeatInfo{
		ID:        seat.ID,
		Label:     seat.Label,
		Available: seat.IsAvailable(),
	}, nil
}

func (s *seatDirectory) HolderOf(ctx context.Context, seatID uuid.UUID) (string, error) {
	return s.holds.HolderOf(ctx, seatID)
}

func (s *seatDirectory) ReleaseHold(ctx context.Context, seatID uuid.UUID, userID string) error {
	return s.holds.ReleaseHold(ctx, seatID, userID)
}
