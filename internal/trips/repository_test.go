package trips

import (
	"context"
	"testing"
	"time"

	"busline/internal/shared/apperrors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open gorm: %v", err)
	}

	return db, mock
}

func tripRows(id uuid.UUID, origin, destination string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "origin", "destination", "departure_time", "arrival_time",
		"total_seats", "price", "operator", "vehicle_class", "created_at", "updated_at",
	}).AddRow(id, origin, destination, now.Add(24*time.Hour), now.Add(28*time.Hour),
		40, 450.0, "Sharma Travels", "AC Sleeper", now, now)
}

func TestGetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)
	tripID := uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM "trips" WHERE id =`).
		WithArgs(tripID, 1).
		WillReturnRows(tripRows(tripID, "Mumbai", "Pune"))

	trip, err := repo.GetByID(context.Background(), tripID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if trip.Origin != "Mumbai" || trip.Destination != "Pune" {
		t.Errorf("unexpected trip: %s -> %s", trip.Origin, trip.Destination)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)
	tripID := uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM "trips" WHERE id =`).
		WithArgs(tripID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), tripID)
	if !apperrors.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSearchFiltersByDateWindow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	day, _ := time.Parse("2006-01-02", "2026-09-01")
	endOfDay := day.Add(24*time.Hour - time.Second)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "trips"`).
		WithArgs("%mumbai%", "%pune%", day, endOfDay).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	mock.ExpectQuery(`SELECT (.+) FROM "trips" (.+) ORDER BY departure_time ASC`).
		WithArgs("%mumbai%", "%pune%", day, endOfDay, 20).
		WillReturnRows(tripRows(uuid.New(), "Mumbai", "Pune"))

	trips, total, err := repo.Search(context.Background(), TripSearchQuery{
		Origin:      "Mumbai",
		Destination: "Pune",
		Date:        "2026-09-01",
	})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if total != 1 || len(trips) != 1 {
		t.Errorf("expected 1 trip, got total=%d len=%d", total, len(trips))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSearchRejectsBadDate(t *testing.T) {
	db, _ := newMockDB(t)
	repo := NewRepository(db)

	if _, _, err := repo.Search(context.Background(), TripSearchQuery{Date: "01-09-2026"}); err == nil {
		t.Fatal("expected an error for a malformed date filter")
	}
}
