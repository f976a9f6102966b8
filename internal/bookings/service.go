package bookings

import (
	"context"
	"fmt"
	"time"

	"busline/internal/notifications"
	"busline/internal/shared/apperrors"
	"busline/pkg/logger"

	"github.com/google/uuid"
)

// TripCatalog is the slice of the trip service bookings need: fare and
// schedule lookup. Kept as a local interface so the booking flow can be
// tested against fakes.
type TripCatalog interface {
	GetTripInfo(ctx context.Context, tripID uuid.UUID) (*TripInfo, error)
}

// TripInfo carries the trip fields a booking snapshots
type TripInfo struct {
	ID            uuid.UUID
	Price         float64
	DepartureTime time.Time
}

// SeatDirectory resolves seats by label and exposes the hold layer
type SeatDirectory interface {
	FindSeat(ctx context.Context, tripID uuid.UUID, label string) (*SeatInfo, error)
	HolderOf(ctx context.Context, seatID uuid.UUID) (string, error)
	ReleaseHold(ctx context.Context, seatID uuid.UUID, userID string) error
}

// SeatInfo is the seat view the booking flow works with
type SeatInfo struct {
	ID        uuid.UUID
	Label     string
	Available bool
}

// PaymentGateway settles a booking's fare with an external processor
type PaymentGateway interface {
	Charge(ctx context.Context, bookingCode string, amount float64) (transactionID string, err error)
}

// Service interface defines the contract for booking business logic
type Service interface {
	CreateBooking(ctx context.Context, userID string, req *CreateBookingRequest) (*BookingResponse, error)
	GetBooking(ctx context.Context, code string, requesterID string, isAdmin bool) (*BookingResponse, error)
	GetUserBookings(ctx context.Context, userID string, query BookingListQuery) (*BookingListResponse, error)
	GetAllBookings(ctx context.Context, query BookingListQuery) (*BookingListResponse, error)

	CancelBooking(ctx context.Context, code string, requesterID string, isAdmin bool) (*BookingResponse, error)
	ApproveBooking(ctx context.Context, code string) (*BookingResponse, error)
	RejectBooking(ctx context.Context, code string) (*BookingResponse, error)
	CompleteBooking(ctx context.Context, code string) (*BookingResponse, error)

	ProcessPayment(ctx context.Context, code string, requesterID string, isAdmin bool) (*BookingResponse, error)
}

type service struct {
	repo      Repository
	trips     TripCatalog
	seats     SeatDirectory
	gateway   PaymentGateway
	publisher notifications.Producer
}

// NewService creates a new booking service instance. The publisher may be
// nil when Kafka is disabled; events are then skipped.
func NewService(repo Repository, trips TripCatalog, seats SeatDirectory, gateway PaymentGateway, publisher notifications.Producer) Service {
	return &service{
		repo:      repo,
		trips:     trips,
		seats:     seats,
		gateway:   gateway,
		publisher: publisher,
	}
}

// CreateBooking books one seat on one trip for one user. The booking row
// and the seat flip commit in a single transaction; when two users race for
// the same seat exactly one booking survives and the other caller gets a
// seat-unavailable error.
func (s *service) CreateBooking(ctx context.Context, userID string, req *CreateBookingRequest) (*BookingResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID: %w", err)
	}

	tripUUID, err := uuid.Parse(req.TripID)
	if err != nil {
		return nil, fmt.Errorf("invalid trip ID: %w", err)
	}

	trip, err := s.trips.GetTripInfo(ctx, tripUUID)
	if err != nil {
		return nil, err
	}

	seat, err := s.seats.FindSeat(ctx, tripUUID, req.SeatLabel)
	if err != nil {
		return nil, err
	}

	if !seat.Available {
		return nil, fmt.Errorf("seat %s: %w", req.SeatLabel, apperrors.ErrSeatUnavailable)
	}

	// A hold by someone else blocks the booking even though the ledger
	// still says available. The booker's own hold is fine.
	holder, err := s.seats.HolderOf(ctx, seat.ID)
	if err != nil {
		logger.GetDefault().Warn("failed to check seat hold, relying on ledger only", "seat_id", seat.ID, "error", err)
		holder = ""
	}
	if holder != "" && holder != userID {
		return nil, fmt.Errorf("seat %s: %w", req.SeatLabel, apperrors.ErrSeatUnavailable)
	}

	code, err := GenerateCode()
	if err != nil {
		return nil, err
	}

	booking := &Booking{
		Code:          code,
		UserID:        userUUID,
		TripID:        tripUUID,
		SeatID:        seat.ID,
		SeatLabel:     seat.Label,
		Amount:        trip.Price,
		Status:        StatusConfirmed,
		PaymentStatus: PaymentPending,
	}

	if err := s.repo.CreateWithSeatClaim(ctx, booking); err != nil {
		if apperrors.IsSeatUnavailable(err) {
			logger.GetDefault().LogSeatConflict(ctx, req.TripID, req.SeatLabel)
		}
		return nil, err
	}

	// The claim supersedes the booker's own hold.
	if holder == userID {
		if err := s.seats.ReleaseHold(ctx, seat.ID, userID); err != nil {
			logger.GetDefault().Warn("failed to release own hold after booking", "seat_id", seat.ID, "error", err)
		}
	}

	logger.GetDefault().LogBookingCreated(ctx, booking.Code, req.TripID, seat.Label, userID)
	s.publish(ctx, notifications.EventBookingCreated, booking)

	resp := booking.ToResponse()
	return &resp, nil
}

func (s *service) GetBooking(ctx context.Context, code string, requesterID string, isAdmin bool) (*BookingResponse, error) {
	booking, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if !isAdmin && booking.UserID.String() != requesterID {
		return nil, fmt.Errorf("booking %s: %w", code, apperrors.ErrUnauthorized)
	}

	resp := booking.ToResponse()
	return &resp, nil
}

func (s *service) GetUserBookings(ctx context.Context, userID string, query BookingListQuery) (*BookingListResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID: %w", err)
	}

	bookings, totalCount, err := s.repo.GetUserBookings(ctx, userUUID, query)
	if err != nil {
		return nil, err
	}

	return buildListResponse(bookings, totalCount, query), nil
}

func (s *service) GetAllBookings(ctx context.Context, query BookingListQuery) (*BookingListResponse, error) {
	bookings, totalCount, err := s.repo.GetAllBookings(ctx, query)
	if err != nil {
		return nil, err
	}

	return buildListResponse(bookings, totalCount, query), nil
}

// CancelBooking releases the seat and marks the booking cancelled. Repeating
// a cancel returns the already-cancelled booking unchanged. A paid booking
// is refunded as part of the same transaction.
func (s *service) CancelBooking(ctx context.Context, code string, requesterID string, isAdmin bool) (*BookingResponse, error) {
	booking, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if !isAdmin && booking.UserID.String() != requesterID {
		return nil, fmt.Errorf("booking %s: %w", code, apperrors.ErrUnauthorized)
	}

	return s.cancel(ctx, booking, notifications.EventBookingCancelled)
}

func (s *service) cancel(ctx context.Context, booking *Booking, eventType notifications.EventType) (*BookingResponse, error) {
	if booking.IsCancelled() {
		resp := booking.ToResponse()
		return &resp, nil
	}

	if booking.Status == StatusCompleted {
		return nil, fmt.Errorf("booking %s is completed: %w", booking.Code, apperrors.ErrInvalidState)
	}

	if err := s.repo.CancelWithSeatRelease(ctx, booking.ID, booking.IsPaid()); err != nil {
		return nil, err
	}

	updated, err := s.repo.GetByID(ctx, booking.ID)
	if err != nil {
		return nil, err
	}

	logger.GetDefault().LogBookingCancelled(ctx, updated.Code, updated.TripID.String(), updated.UserID.String())
	s.publish(ctx, eventType, updated)

	resp := updated.ToResponse()
	return &resp, nil
}

// ApproveBooking confirms a booking from the admin side. Approving an
// already-confirmed booking changes nothing; approving a cancelled one
// re-claims its seat, which fails if the seat was taken in the meantime.
func (s *service) ApproveBooking(ctx context.Context, code string) (*BookingResponse, error) {
	booking, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	switch booking.Status {
	case StatusConfirmed:
		resp := booking.ToResponse()
		return &resp, nil
	case StatusCompleted:
		return nil, fmt.Errorf("booking %s is completed: %w", code, apperrors.ErrInvalidState)
	}

	if err := s.repo.ReinstateWithSeatClaim(ctx, booking.ID); err != nil {
		return nil, err
	}

	updated, err := s.repo.GetByID(ctx, booking.ID)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, notifications.EventBookingApproved, updated)

	resp := updated.ToResponse()
	return &resp, nil
}

// RejectBooking is an admin cancel: same seat release and refund rules,
// different event on the wire.
func (s *service) RejectBooking(ctx context.Context, code string) (*BookingResponse, error) {
	booking, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	return s.cancel(ctx, booking, notifications.EventBookingRejected)
}

// CompleteBooking marks a confirmed booking as travelled.
func (s *service) CompleteBooking(ctx context.Context, code string) (*BookingResponse, error) {
	booking, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if err := s.repo.MarkCompleted(ctx, booking.ID); err != nil {
		return nil, err
	}

	updated, err := s.repo.GetByID(ctx, booking.ID)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, notifications.EventBookingCompleted, updated)

	resp := updated.ToResponse()
	return &resp, nil
}

// ProcessPayment settles the fare for a booking through the gateway. A
// failed charge is recorded and may be retried; cancelled and completed
// bookings can no longer be paid.
func (s *service) ProcessPayment(ctx context.Context, code string, requesterID string, isAdmin bool) (*BookingResponse, error) {
	booking, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if !isAdmin && booking.UserID.String() != requesterID {
		return nil, fmt.Errorf("booking %s: %w", code, apperrors.ErrUnauthorized)
	}

	if booking.Status != StatusConfirmed {
		return nil, fmt.Errorf("booking %s is %s: %w", code, booking.Status, apperrors.ErrInvalidState)
	}

	if !booking.PaymentStatus.CanPay() {
		return nil, fmt.Errorf("payment for booking %s is %s: %w", code, booking.PaymentStatus, apperrors.ErrInvalidState)
	}

	transactionID, chargeErr := s.gateway.Charge(ctx, booking.Code, booking.Amount)
	if chargeErr != nil {
		if err := s.repo.UpdatePayment(ctx, booking.ID, PaymentFailed, ""); err != nil {
			return nil, fmt.Errorf("failed to record payment failure: %w", err)
		}
		logger.GetDefault().Warn("payment declined", "booking_code", code, "amount", booking.Amount, "error", chargeErr)
		s.publish(ctx, notifications.EventPaymentFailed, booking)
	} else {
		if err := s.repo.UpdatePayment(ctx, booking.ID, PaymentPaid, transactionID); err != nil {
			return nil, fmt.Errorf("failed to record payment: %w", err)
		}
		logger.GetDefault().Info("payment settled", "booking_code", code, "amount", booking.Amount, "transaction_id", transactionID)
	}

	updated, err := s.repo.GetByID(ctx, booking.ID)
	if err != nil {
		return nil, err
	}

	if chargeErr == nil {
		s.publish(ctx, notifications.EventPaymentSettled, updated)
	}

	resp := updated.ToResponse()
	return &resp, nil
}

func (s *service) publish(ctx context.Context, eventType notifications.EventType, booking *Booking) {
	if s.publisher == nil {
		return
	}

	event := notifications.NewBookingEvent(eventType, booking.Code, booking.UserID.String(), booking.TripID.String(), booking.SeatLabel, booking.Amount)
	if err := s.publisher.PublishBookingEvent(ctx, event); err != nil {
		// Event delivery never fails the booking operation itself.
		logger.GetDefault().Warn("failed to publish booking event", "type", eventType, "booking_code", booking.Code, "error", err)
	}
}

func buildListResponse(bookings []Booking, totalCount int64, query BookingListQuery) *BookingListResponse {
	responses := make([]BookingResponse, len(bookings))
	for i, booking := range bookings {
		responses[i] = booking.ToResponse()
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 {
		limit = 10
	}

	return &BookingListResponse{
		Bookings:   responses,
		TotalCount: totalCount,
		Page:       page,
		Limit:      limit,
	}
}
