package bookings

import (
	"context"
	"fmt"
	"regexp"
	"sync"
	"testing"
	"time"

	"busline/internal/shared/apperrors"

	"github.com/google/uuid"
)

// fakeStore is an in-memory Repository with the same exclusivity semantics
// as the SQL implementation: a seat claim succeeds for exactly one booking.
type fakeStore struct {
	mu        sync.Mutex
	bookings  map[uuid.UUID]*Booking
	byCode    map[string]uuid.UUID
	seatOwner map[uuid.UUID]uuid.UUID // seat -> owning booking
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		bookings:  make(map[uuid.UUID]*Booking),
		byCode:    make(map[string]uuid.UUID),
		seatOwner: make(map[uuid.UUID]uuid.UUID),
	}
}

func (f *fakeStore) CreateWithSeatClaim(ctx context.Context, booking *Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, taken := f.seatOwner[booking.SeatID]; taken {
		return fmt.Errorf("seat %s: %w", booking.SeatID, apperrors.ErrSeatUnavailable)
	}

	booking.ID = uuid.New()
	booking.CreatedAt = time.Now()
	stored := *booking
	f.bookings[booking.ID] = &stored
	f.byCode[booking.Code] = booking.ID
	f.seatOwner[booking.SeatID] = booking.ID
	return nil
}

func (f *fakeStore) CancelWithSeatRelease(ctx context.Context, bookingID uuid.UUID, refund bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	booking, ok := f.bookings[bookingID]
	if !ok {
		return fmt.Errorf("booking %s: %w", bookingID, apperrors.ErrNotFound)
	}
	if booking.Status != StatusConfirmed {
		return nil
	}

	now := time.Now()
	booking.Status = StatusCancelled
	booking.CancelledAt = &now
	if refund {
		booking.PaymentStatus = PaymentRefunded
	}
	if f.seatOwner[booking.SeatID] == bookingID {
		delete(f.seatOwner, booking.SeatID)
	}
	return nil
}

func (f *fakeStore) ReinstateWithSeatClaim(ctx context.Context, bookingID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	booking, ok := f.bookings[bookingID]
	if !ok {
		return fmt.Errorf("booking %s: %w", bookingID, apperrors.ErrNotFound)
	}
	if owner, taken := f.seatOwner[booking.SeatID]; taken && owner != bookingID {
		return fmt.Errorf("seat %s: %w", booking.SeatID, apperrors.ErrSeatUnavailable)
	}
	if booking.Status != StatusCancelled {
		return fmt.Errorf("booking %s is not cancelled: %w", bookingID, apperrors.ErrInvalidState)
	}

	booking.Status = StatusConfirmed
	booking.CancelledAt = nil
	if booking.PaymentStatus == PaymentRefunded {
		booking.PaymentStatus = PaymentPending
	}
	f.seatOwner[booking.SeatID] = bookingID
	return nil
}

func (f *fakeStore) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	booking, ok := f.bookings[id]
	if !ok {
		return nil, fmt.Errorf("booking %s: %w", id, apperrors.ErrNotFound)
	}
	copied := *booking
	return &copied, nil
}

func (f *fakeStore) GetByCode(ctx context.Context, code string) (*Booking, error) {
	f.mu.Lock()
	id, ok := f.byCode[code]
	f.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("booking %s: %w", code, apperrors.ErrNotFound)
	}
	return f.GetByID(ctx, id)
}

func (f *fakeStore) GetUserBookings(ctx context.Context, userID uuid.UUID, query BookingListQuery) ([]Booking, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []Booking
	for _, booking := range f.bookings {
		if booking.UserID == userID {
			result = append(result, *booking)
		}
	}
	return result, int64(len(result)), nil
}

func (f *fakeStore) GetAllBookings(ctx context.Context, query BookingListQuery) ([]Booking, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []Booking
	for _, booking := range f.bookings {
		result = append(result, *booking)
	}
	return result, int64(len(result)), nil
}

func (f *fakeStore) UpdatePayment(ctx context.Context, id uuid.UUID, status PaymentStatus, transactionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	booking, ok := f.bookings[id]
	if !ok {
		return fmt.Errorf("booking %s: %w", id, apperrors.ErrNotFound)
	}
	booking.PaymentStatus = status
	if transactionID != "" {
		booking.TransactionID = transactionID
	}
	return nil
}

func (f *fakeStore) MarkCompleted(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	booking, ok := f.bookings[id]
	if !ok {
		return fmt.Errorf("booking %s: %w", id, apperrors.ErrNotFound)
	}
	if booking.Status != StatusConfirmed {
		return fmt.Errorf("booking %s cannot be completed: %w", id, apperrors.ErrInvalidState)
	}
	booking.Status = StatusCompleted
	return nil
}

func (f *fakeStore) seatIsFree(seatID uuid.UUID) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, taken := f.seatOwner[seatID]
	return !taken
}

type fakeTrips struct {
	trip TripInfo
}

func (f *fakeTrips) GetTripInfo(ctx context.Context, tripID uuid.UUID) (*TripInfo, error) {
	if tripID != f.trip.ID {
		return nil, fmt.Errorf("trip %s: %w", tripID, apperrors.ErrNotFound)
	}
	trip := f.trip
	return &trip, nil
}

type fakeSeats struct {
	seats   map[string]SeatInfo // label -> seat
	holders map[uuid.UUID]string
}

func (f *fakeSeats) FindSeat(ctx context.Context, tripID uuid.UUID, label string) (*SeatInfo, error) {
	seat, ok := f.seats[label]
	if !ok {
		return nil, fmt.Errorf("seat %s: %w", label, apperrors.ErrNotFound)
	}
	return &seat, nil
}

func (f *fakeSeats) HolderOf(ctx context.Context, seatID uuid.UUID) (string, error) {
	return f.holders[seatID], nil
}

func (f *fakeSeats) ReleaseHold(ctx context.Context, seatID uuid.UUID, userID string) error {
	if f.holders[seatID] == userID {
		delete(f.holders, seatID)
	}
	return nil
}

type fakeGateway struct {
	decline bool
}

func (f *fakeGateway) Charge(ctx context.Context, bookingCode string, amount float64) (string, error) {
	if f.decline {
		return "", fmt.Errorf("payment declined by gateway")
	}
	return "TXN_TEST_" + bookingCode, nil
}

type fixture struct {
	store   *fakeStore
	trips   *fakeTrips
	seats   *fakeSeats
	gateway *fakeGateway
	service Service
	tripID  uuid.UUID
	seatA1  uuid.UUID
}

func newFixture() *fixture {
	tripID := uuid.New()
	seatA1 := uuid.New()
	seatA2 := uuid.New()

	store := newFakeStore()
	tripCatalog := &fakeTrips{trip: TripInfo{ID: tripID, Price: 450, DepartureTime: time.Now().Add(24 * time.Hour)}}
	seatDir := &fakeSeats{
		seats: map[string]SeatInfo{
			"A1": {ID: seatA1, Label: "A1", Available: true},
			"A2": {ID: seatA2, Label: "A2", Available: true},
		},
		holders: make(map[uuid.UUID]string),
	}
	gateway := &fakeGateway{}

	return &fixture{
		store:   store,
		trips:   tripCatalog,
		seats:   seatDir,
		gateway: gateway,
		service: NewService(store, tripCatalog, seatDir, gateway, nil),
		tripID:  tripID,
		seatA1:  seatA1,
	}
}

func TestCreateBookingSnapshotsFare(t *testing.T) {
	f := newFixture()
	userID := uuid.New().String()

	booking, err := f.service.CreateBooking(context.Background(), userID, &CreateBookingRequest{
		TripID:    f.tripID.String(),
		SeatLabel: "A1",
	})
	if err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}

	if booking.Amount != 450 {
		t.Errorf("expected amount 450, got %v", booking.Amount)
	}
	if booking.Status != string(StatusConfirmed) {
		t.Errorf("expected status CONFIRMED, got %s", booking.Status)
	}
	if booking.PaymentStatus != string(PaymentPending) {
		t.Errorf("expected payment status PENDING, got %s", booking.PaymentStatus)
	}
	if f.store.seatIsFree(f.seatA1) {
		t.Error("seat should be claimed after booking")
	}
}

func TestBookingCodeFormat(t *testing.T) {
	codePattern := regexp.MustCompile(`^BK[0-9A-F]{8}$`)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := GenerateCode()
		if err != nil {
			t.Fatalf("GenerateCode failed: %v", err)
		}
		if !codePattern.MatchString(code) {
			t.Fatalf("code %q does not match expected format", code)
		}
		seen[code] = true
	}

	// 100 random 32-bit codes colliding would point at a broken generator
	if len(seen) < 99 {
		t.Errorf("expected ~100 unique codes, got %d", len(seen))
	}
}

// TestConcurrentBookingSingleWinner is the core exclusivity property: many
// users race for one seat and exactly one booking succeeds.
func TestConcurrentBookingSingleWinner(t *testing.T) {
	f := newFixture()

	const attempts = 50
	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.service.CreateBooking(context.Background(), uuid.New().String(), &CreateBookingRequest{
				TripID:    f.tripID.String(),
				SeatLabel: "A1",
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var successes, conflicts, others int
	for err := range results {
		switch {
		case err == nil:
			successes++
		case apperrors.IsSeatUnavailable(err):
			conflicts++
		default:
			others++
		}
	}

	if successes != 1 {
		t.Errorf("expected exactly 1 successful booking, got %d", successes)
	}
	if conflicts != attempts-1 {
		t.Errorf("expected %d seat conflicts, got %d", attempts-1, conflicts)
	}
	if others != 0 {
		t.Errorf("expected no other errors, got %d", others)
	}
}

func TestCreateBookingHeldByOtherUser(t *testing.T) {
	f := newFixture()
	f.seats.holders[f.seatA1] = "someone-else"

	_, err := f.service.CreateBooking(context.Background(), uuid.New().String(), &CreateBookingRequest{
		TripID:    f.tripID.String(),
		SeatLabel: "A1",
	})
	if !apperrors.IsSeatUnavailable(err) {
		t.Fatalf("expected seat unavailable error, got %v", err)
	}
}

func TestCreateBookingOwnHoldAllowedAndReleased(t *testing.T) {
	f := newFixture()
	userID := uuid.New().String()
	f.seats.holders[f.seatA1] = userID

	_, err := f.service.CreateBooking(context.Background(), userID, &CreateBookingRequest{
		TripID:    f.tripID.String(),
		SeatLabel: "A1",
	})
	if err != nil {
		t.Fatalf("booking with own hold should succeed: %v", err)
	}

	if _, held := f.seats.holders[f.seatA1]; held {
		t.Error("own hold should be released after booking")
	}
}

func TestCreateBookingUnknownSeat(t *testing.T) {
	f := newFixture()

	_, err := f.service.CreateBooking(context.Background(), uuid.New().String(), &CreateBookingRequest{
		TripID:    f.tripID.String(),
		SeatLabel: "Z9",
	})
	if !apperrors.IsNotFound(err) {
		t.Fatalf("expected not found error, got %v", err)
	}
	if apperrors.IsSeatUnavailable(err) {
		t.Fatal("missing seat must be NotFound, not SeatUnavailable")
	}
}

func TestCancelBookingIdempotent(t *testing.T) {
	f := newFixture()
	userID := uuid.New().String()

	created, err := f.service.CreateBooking(context.Background(), userID, &CreateBookingRequest{
		TripID:    f.tripID.String(),
		SeatLabel: "A1",
	})
	if err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}

	first, err := f.service.CancelBooking(context.Background(), created.Code, userID, false)
	if err != nil {
		t.Fatalf("first cancel failed: %v", err)
	}
	if first.Status != string(StatusCancelled) {
		t.Errorf("expected CANCELLED, got %s", first.Status)
	}
	if !f.store.seatIsFree(f.seatA1) {
		t.Error("seat should be released after cancel")
	}

	// Second cancel is a no-op, not an error.
	second, err := f.service.CancelBooking(context.Background(), created.Code, userID, false)
	if err != nil {
		t.Fatalf("repeated cancel should not fail: %v", err)
	}
	if second.Status != string(StatusCancelled) {
		t.Errorf("expected CANCELLED, got %s", second.Status)
	}
}

func TestCancelRefundsPaidBooking(t *testing.T) {
	f := newFixture()
	userID := uuid.New().String()

	created, _ := f.service.CreateBooking(context.Background(), userID, &CreateBookingRequest{
		TripID:    f.tripID.String(),
		SeatLabel: "A1",
	})

	paid, err := f.service.ProcessPayment(context.Background(), created.Code, userID, false)
	if err != nil {
		t.Fatalf("ProcessPayment failed: %v", err)
	}
	if paid.PaymentStatus != string(PaymentPaid) {
		t.Fatalf("expected PAID, got %s", paid.PaymentStatus)
	}

	cancelled, err := f.service.CancelBooking(context.Background(), created.Code, userID, false)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if cancelled.PaymentStatus != string(PaymentRefunded) {
		t.Errorf("expected REFUNDED, got %s", cancelled.PaymentStatus)
	}
}

func TestCancelThenRebookSameSeat(t *testing.T) {
	f := newFixture()
	firstUser := uuid.New().String()
	secondUser := uuid.New().String()

	created, _ := f.service.CreateBooking(context.Background(), firstUser, &CreateBookingRequest{
		TripID:    f.tripID.String(),
		SeatLabel: "A1",
	})
	if _, err := f.service.CancelBooking(context.Background(), created.Code, firstUser, false); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	rebooked, err := f.service.CreateBooking(context.Background(), secondUser, &CreateBookingRequest{
		TripID:    f.tripID.String(),
		SeatLabel: "A1",
	})
	if err != nil {
		t.Fatalf("rebooking a released seat should succeed: %v", err)
	}
	if rebooked.Code == created.Code {
		t.Error("rebooking must produce a new booking code")
	}
}

func TestCancelOtherUsersBooking(t *testing.T) {
	f := newFixture()
	owner := uuid.New().String()
	stranger := uuid.New().String()

	created, _ := f.service.CreateBooking(context.Background(), owner, &CreateBookingRequest{
		TripID:    f.tripID.String(),
		SeatLabel: "A1",
	})

	if _, err := f.service.CancelBooking(context.Background(), created.Code, stranger, false); err == nil {
		t.Fatal("cancelling another user's booking should fail")
	}

	// Admin override works.
	if _, err := f.service.CancelBooking(context.Background(), created.Code, stranger, true); err != nil {
		t.Fatalf("admin cancel should succeed: %v", err)
	}
}

func TestApproveCancelledReclaimsSeat(t *testing.T) {
	f := newFixture()
	userID := uuid.New().String()

	created, _ := f.service.CreateBooking(context.Background(), userID, &CreateBookingRequest{
		TripID:    f.tripID.String(),
		SeatLabel: "A1",
	})
	f.service.CancelBooking(context.Background(), created.Code, userID, false)

	approved, err := f.service.ApproveBooking(context.Background(), created.Code)
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if approved.Status != string(StatusConfirmed) {
		t.Errorf("expected CONFIRMED, got %s", approved.Status)
	}
	if f.store.seatIsFree(f.seatA1) {
		t.Error("seat should be re-claimed after approval")
	}
}

func TestApproveCancelledSeatTakenMeanwhile(t *testing.T) {
	f := newFixture()
	firstUser := uuid.New().String()
	secondUser := uuid.New().String()

	created, _ := f.service.CreateBooking(context.Background(), firstUser, &CreateBookingRequest{
		TripID:    f.tripID.String(),
		SeatLabel: "A1",
	})
	f.service.CancelBooking(context.Background(), created.Code, firstUser, false)

	// Someone else takes the seat while the first booking sits cancelled.
	if _, err := f.service.CreateBooking(context.Background(), secondUser, &CreateBookingRequest{
		TripID:    f.tripID.String(),
		SeatLabel: "A1",
	}); err != nil {
		t.Fatalf("second booking failed: %v", err)
	}

	_, err := f.service.ApproveBooking(context.Background(), created.Code)
	if !apperrors.IsSeatUnavailable(err) {
		t.Fatalf("expected seat unavailable, got %v", err)
	}

	// The first booking must still be cancelled.
	reloaded, _ := f.service.GetBooking(context.Background(), created.Code, firstUser, false)
	if reloaded.Status != string(StatusCancelled) {
		t.Errorf("failed approval must leave booking CANCELLED, got %s", reloaded.Status)
	}
}

func TestApproveConfirmedIsNoOp(t *testing.T) {
	f := newFixture()
	userID := uuid.New().String()

	created, _ := f.service.CreateBooking(context.Background(), userID, &CreateBookingRequest{
		TripID:    f.tripID.String(),
		SeatLabel: "A1",
	})

	approved, err := f.service.ApproveBooking(context.Background(), created.Code)
	if err != nil {
		t.Fatalf("approving a confirmed booking should be a no-op: %v", err)
	}
	if approved.Status != string(StatusConfirmed) {
		t.Errorf("expected CONFIRMED, got %s", approved.Status)
	}
}

func TestRejectReleasesSeat(t *testing.T) {
	f := newFixture()
	userID := uuid.New().String()

	created, _ := f.service.CreateBooking(context.Background(), userID, &CreateBookingRequest{
		TripID:    f.tripID.String(),
		SeatLabel: "A1",
	})

	rejected, err := f.service.RejectBooking(context.Background(), created.Code)
	if err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if rejected.Status != string(StatusCancelled) {
		t.Errorf("expected CANCELLED, got %s", rejected.Status)
	}
	if !f.store.seatIsFree(f.seatA1) {
		t.Error("seat should be released after rejection")
	}
}

func TestProcessPaymentDeclined(t *testing.T) {
	f := newFixture()
	f.gateway.decline = true
	userID := uuid.New().String()

	created, _ := f.service.CreateBooking(context.Background(), userID, &CreateBookingRequest{
		TripID:    f.tripID.String(),
		SeatLabel: "A1",
	})

	result, err := f.service.ProcessPayment(context.Background(), created.Code, userID, false)
	if err != nil {
		t.Fatalf("declined payment is not a service error: %v", err)
	}
	if result.PaymentStatus != string(PaymentFailed) {
		t.Errorf("expected FAILED, got %s", result.PaymentStatus)
	}

	// A failed payment can be retried.
	f.gateway.decline = false
	retried, err := f.service.ProcessPayment(context.Background(), created.Code, userID, false)
	if err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if retried.PaymentStatus != string(PaymentPaid) {
		t.Errorf("expected PAID after retry, got %s", retried.PaymentStatus)
	}
}

func TestProcessPaymentOnCancelledBooking(t *testing.T) {
	f := newFixture()
	userID := uuid.New().String()

	created, _ := f.service.CreateBooking(context.Background(), userID, &CreateBookingRequest{
		TripID:    f.tripID.String(),
		SeatLabel: "A1",
	})
	f.service.CancelBooking(context.Background(), created.Code, userID, false)

	_, err := f.service.ProcessPayment(context.Background(), created.Code, userID, false)
	if !apperrors.IsInvalidState(err) {
		t.Fatalf("expected invalid state, got %v", err)
	}
}

func TestProcessPaymentTwice(t *testing.T) {
	f := newFixture()
	userID := uuid.New().String()

	created, _ := f.service.CreateBooking(context.Background(), userID, &CreateBookingRequest{
		TripID:    f.tripID.String(),
		SeatLabel: "A1",
	})

	if _, err := f.service.ProcessPayment(context.Background(), created.Code, userID, false); err != nil {
		t.Fatalf("payment failed: %v", err)
	}

	_, err := f.service.ProcessPayment(context.Background(), created.Code, userID, false)
	if !apperrors.IsInvalidState(err) {
		t.Fatalf("paying a settled booking must be invalid state, got %v", err)
	}
}

func TestGetBookingOwnership(t *testing.T) {
	f := newFixture()
	owner := uuid.New().String()
	stranger := uuid.New().String()

	created, _ := f.service.CreateBooking(context.Background(), owner, &CreateBookingRequest{
		TripID:    f.tripID.String(),
		SeatLabel: "A1",
	})

	if _, err := f.service.GetBooking(context.Background(), created.Code, stranger, false); err == nil {
		t.Fatal("stranger should not read another user's booking")
	}

	if _, err := f.service.GetBooking(context.Background(), created.Code, stranger, true); err != nil {
		t.Fatalf("admin read should succeed: %v", err)
	}
}

func TestCompleteBookingBlocksCancel(t *testing.T) {
	f := newFixture()
	userID := uuid.New().String()

	created, _ := f.service.CreateBooking(context.Background(), userID, &CreateBookingRequest{
		TripID:    f.tripID.String(),
		SeatLabel: "A1",
	})

	completed, err := f.service.CompleteBooking(context.Background(), created.Code)
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if completed.Status != string(StatusCompleted) {
		t.Errorf("expected COMPLETED, got %s", completed.Status)
	}

	if _, err := f.service.CancelBooking(context.Background(), created.Code, userID, false); !apperrors.IsInvalidState(err) {
		t.Fatalf("cancelling a completed booking must be invalid state, got %v", err)
	}
}
