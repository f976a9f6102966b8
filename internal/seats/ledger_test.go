package seats

import (
	"testing"

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

func TestClaimSeatWins(t *testing.T) {
	db, mock := newMockDB(t)
	seatID := uuid.New()
	bookingID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "seats"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := ClaimSeat(db, seatID, bookingID); err != nil {
		t.Fatalf("claim of an available seat should succeed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

// The conditional UPDATE matches zero rows when the seat is no longer
// AVAILABLE; the loser of a race has to see a seat-unavailable error.
func TestClaimSeatLoses(t *testing.T) {
	db, mock := newMockDB(t)
	seatID := uuid.New()
	bookingID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "seats"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := ClaimSeat(db, seatID, bookingID)
	if !apperrors.IsSeatUnavailable(err) {
		t.Fatalf("expected seat unavailable, got %v", err)
	}
}

func TestReleaseSeat(t *testing.T) {
	db, mock := newMockDB(t)
	seatID := uuid.New()
	bookingID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "seats"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	released, err := ReleaseSeat(db, seatID, bookingID)
	if err != nil {
		t.Fatalf("release failed: %v", err)
	}
	if !released {
		t.Error("expected the release to report a changed row")
	}
}

// Releasing a seat the booking no longer owns matches zero rows and is a
// no-op rather than an error.
func TestReleaseSeatNotOwned(t *testing.T) {
	db, mock := newMockDB(t)
	seatID := uuid.New()
	bookingID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "seats"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	released, err := ReleaseSeat(db, seatID, bookingID)
	if err != nil {
		t.Fatalf("release of an unowned seat should not fail: %v", err)
	}
	if released {
		t.Error("expected no row to change")
	}
}
