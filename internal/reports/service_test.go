package reports

import (
	"context"
	"fmt"
	"testing"
	"time"

	"busline/internal/shared/apperrors"
	"busline/pkg/cache"

	"github.com/google/uuid"
)

type fakeRepo struct {
	stats  *BookingStats
	report *TripReport
	calls  int
}

func (f *fakeRepo) GetBookingStats(ctx context.Context) (*BookingStats, error) {
	f.calls++
	stats := *f.stats
	return &stats, nil
}

func (f *fakeRepo) GetTripReport(ctx context.Context, tripID uuid.UUID) (*TripReport, error) {
	f.calls++
	if f.report == nil || f.report.TripID != tripID.String() {
		return nil, fmt.Errorf("trip %s: %w", tripID, apperrors.ErrNotFound)
	}
	report := *f.report
	return &report, nil
}

// fakeCache stores encoded values in memory with the cache.Service contract.
type fakeCache struct {
	entries map[string]interface{}
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]interface{})}
}

func (f *fakeCache) Get(ctx context.Context, key string, dest interface{}) error {
	value, ok := f.entries[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	switch d := dest.(type) {
	case *BookingStats:
		*d = *(value.(*BookingStats))
	case *TripReport:
		*d = *(value.(*TripReport))
	default:
		return fmt.Errorf("unexpected dest type %T", dest)
	}
	return nil
}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	f.entries[key] = value
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, key string) error {
	delete(f.entries, key)
	return nil
}

func (f *fakeCache) DeletePattern(ctx context.Context, pattern string) error { return nil }
func (f *fakeCache) Exists(ctx context.Context, key string) bool {
	_, ok := f.entries[key]
	return ok
}
func (f *fakeCache) Ping(ctx context.Context) error { return nil }

func sampleStats() *BookingStats {
	return &BookingStats{
		TotalBookings:     10,
		ConfirmedBookings: 6,
		CancelledBookings: 3,
		CompletedBookings: 1,
		PaidBookings:      5,
		PendingPayments:   4,
		TotalRevenue:      2250,
	}
}

func TestGetBookingStatsWithoutCache(t *testing.T) {
	repo := &fakeRepo{stats: sampleStats()}
	svc := NewService(repo, nil)

	stats, err := svc.GetBookingStats(context.Background())
	if err != nil {
		t.Fatalf("GetBookingStats failed: %v", err)
	}

	// Status counts come from one snapshot, so they partition the total.
	sum := stats.ConfirmedBookings + stats.CancelledBookings + stats.CompletedBookings
	if sum != stats.TotalBookings {
		t.Errorf("status counts sum to %d, want %d", sum, stats.TotalBookings)
	}
	if stats.TotalRevenue != 2250 {
		t.Errorf("expected revenue 2250, got %v", stats.TotalRevenue)
	}
}

func TestGetBookingStatsCached(t *testing.T) {
	repo := &fakeRepo{stats: sampleStats()}
	svc := NewService(repo, newFakeCache())

	if _, err := svc.GetBookingStats(context.Background()); err != nil {
		t.Fatalf("first call failed: %v", err)
	}
	if _, err := svc.GetBookingStats(context.Background()); err != nil {
		t.Fatalf("second call failed: %v", err)
	}

	if repo.calls != 1 {
		t.Errorf("expected 1 repository hit with a warm cache, got %d", repo.calls)
	}
}

func TestGetTripReport(t *testing.T) {
	tripID := uuid.New()
	repo := &fakeRepo{report: &TripReport{
		TripID:           tripID.String(),
		Origin:           "Delhi",
		Destination:      "Jaipur",
		TotalSeats:       40,
		AvailableSeats:   30,
		BookedSeats:      10,
		OccupancyPercent: 25,
	}}
	svc := NewService(repo, nil)

	report, err := svc.GetTripReport(context.Background(), tripID.String())
	if err != nil {
		t.Fatalf("GetTripReport failed: %v", err)
	}
	if report.BookedSeats+report.AvailableSeats != report.TotalSeats {
		t.Errorf("seat counts do not partition the inventory: %+v", report)
	}
}

func TestGetTripReportUnknownTrip(t *testing.T) {
	svc := NewService(&fakeRepo{stats: sampleStats()}, nil)

	_, err := svc.GetTripReport(context.Background(), uuid.New().String())
	if !apperrors.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestGetTripReportRejectsBadID(t *testing.T) {
	svc := NewService(&fakeRepo{stats: sampleStats()}, nil)

	if _, err := svc.GetTripReport(context.Background(), "not-a-uuid"); err == nil {
		t.Fatal("expected an error for a malformed trip ID")
	}
}
