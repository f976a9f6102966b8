package trips

import (
	"context"
	"fmt"

	"busline/internal/shared/constants"
	"busline/pkg/cache"
	"busline/pkg/logger"

	"github.com/google/uuid"
)

// SeatCounter is the slice of the seat service the trip catalog needs:
// availability is always derived from the seat ledger, never read from a
// counter on the trip row.
type SeatCounter interface {
	CountAvailable(ctx context.Context, tripID uuid.UUID) (int64, error)
	CountAvailableMany(ctx context.Context, tripIDs []uuid.UUID) (map[uuid.UUID]int64, error)
}

type Service interface {
	CreateTrip(ctx context.Context, req *CreateTripRequest) (*TripResponse, error)
	GetTrip(ctx context.Context, id string) (*TripResponse, error)
	UpdateTrip(ctx context.Context, id string, req *UpdateTripRequest) (*TripResponse, error)
	DeleteTrip(ctx context.Context, id string) error
	SearchTrips(ctx context.Context, query TripSearchQuery) (*TripListResponse, error)
}

type TripListResponse struct {
	Trips      []TripResponse `json:"trips"`
	TotalCount int64          `json:"total_count"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
}

type service struct {
	repo         Repository
	seats        SeatCounter
	cacheService cache.Service
}

func NewService(repo Repository, seatCounter SeatCounter, cacheService cache.Service) Service {
	return &service{
		repo:         repo,
		seats:        seatCounter,
		cacheService: cacheService,
	}
}

func (s *service) CreateTrip(ctx context.Context, req *CreateTripRequest) (*TripResponse, error) {
	if !req.ArrivalTime.After(req.DepartureTime) {
		return nil, fmt.Errorf("arrival time must be after departure time")
	}

	trip := &Trip{
		Origin:        req.Origin,
		Destination:   req.Destination,
		DepartureTime: req.DepartureTime,
		ArrivalTime:   req.ArrivalTime,
		TotalSeats:    req.TotalSeats,
		Price:         req.Price,
		Operator:      req.Operator,
		VehicleClass:  req.VehicleClass,
	}

	if err := s.repo.Create(ctx, trip); err != nil {
		return nil, err
	}

	logger.GetDefault().Info("trip created", "trip_id", trip.ID, "origin", trip.Origin, "destination", trip.Destination, "total_seats", trip.TotalSeats)

	// Every seat starts available
	resp := trip.ToResponse(trip.TotalSeats)
	return &resp, nil
}

func (s *service) GetTrip(ctx context.Context, id string) (*TripResponse, error) {
	tripID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid trip ID: %w", err)
	}

	trip, err := s.getTripCached(ctx, tripID)
	if err != nil {
		return nil, err
	}

	// Availability is read fresh even when the trip row came from cache.
	available, err := s.seats.CountAvailable(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to count available seats: %w", err)
	}

	resp := trip.ToResponse(int(available))
	return &resp, nil
}

func (s *service) UpdateTrip(ctx context.Context, id string, req *UpdateTripRequest) (*TripResponse, error) {
	tripID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid trip ID: %w", err)
	}

	updates := make(map[string]interface{})
	if req.Origin != nil {
		updates["origin"] = *req.Origin
	}
	if req.Destination != nil {
		updates["destination"] = *req.Destination
	}
	if req.DepartureTime != nil {
		updates["departure_time"] = *req.DepartureTime
	}
	if req.ArrivalTime != nil {
		updates["arrival_time"] = *req.ArrivalTime
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Operator != nil {
		updates["operator"] = *req.Operator
	}
	if req.VehicleClass != nil {
		updates["vehicle_class"] = *req.VehicleClass
	}

	trip, err := s.repo.Update(ctx, tripID, updates)
	if err != nil {
		return nil, err
	}

	s.invalidateTrip(ctx, tripID)

	available, err := s.seats.CountAvailable(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to count available seats: %w", err)
	}

	resp := trip.ToResponse(int(available))
	return &resp, nil
}

func (s *service) DeleteTrip(ctx context.Context, id string) error {
	tripID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid trip ID: %w", err)
	}

	if err := s.repo.Delete(ctx, tripID); err != nil {
		return err
	}

	s.invalidateTrip(ctx, tripID)
	logger.GetDefault().Info("trip deleted", "trip_id", tripID)
	return nil
}

func (s *service) SearchTrips(ctx context.Context, query TripSearchQuery) (*TripListResponse, error) {
	trips, totalCount, err := s.repo.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	tripIDs := make([]uuid.UUID, len(trips))
	for i, trip := range trips {
		tripIDs[i] = trip.ID
	}

	counts, err := s.seats.CountAvailableMany(ctx, tripIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to count available seats: %w", err)
	}

	responses := make([]TripResponse, len(trips))
	for i, trip := range trips {
		responses[i] = trip.ToResponse(int(counts[trip.ID]))
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 {
		limit = 20
	}

	return &TripListResponse{
		Trips:      responses,
		TotalCount: totalCount,
		Page:       page,
		Limit:      limit,
	}, nil
}

// getTripCached reads the trip row through the cache. Only static trip
// fields are cached; seat availability is never stored alongside them.
func (s *service) getTripCached(ctx context.Context, tripID uuid.UUID) (*Trip, error) {
	if s.cacheService == nil {
		return s.repo.GetByID(ctx, tripID)
	}

	cacheKey := constants.BuildTripDetailKey(tripID.String())

	var cached Trip
	if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	trip, err := s.repo.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	if err := s.cacheService.Set(ctx, cacheKey, trip, constants.TTL_TRIP_DETAIL); err != nil {
		logger.GetDefault().Debug("failed to cache trip detail", "trip_id", tripID, "error", err)
	}

	return trip, nil
}

func (s *service) invalidateTrip(ctx context.Context, tripID uuid.UUID) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.Delete(ctx, constants.BuildTripDetailKey(tripID.String())); err != nil {
		logger.GetDefault().Debug("failed to invalidate trip cache", "trip_id", tripID, "error", err)
	}
}
