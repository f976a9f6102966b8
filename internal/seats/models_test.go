package seats

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
)

func TestStatusIsBookable(t *testing.T) {
	if !StatusAvailable.IsBookable() {
		t.Error("AVAILABLE should be bookable")
	}
	if StatusBooked.IsBookable() {
		t.Error("BOOKED should not be bookable")
	}
	if StatusReserved.IsBookable() {
		t.Error("RESERVED should not be bookable")
	}
}

func TestEffectiveStatus(t *testing.T) {
	seat := &Seat{Status: StatusAvailable}

	if got := seat.EffectiveStatus(false); got != StatusAvailable {
		t.Errorf("unheld available seat = %s, want AVAILABLE", got)
	}
	if got := seat.EffectiveStatus(true); got != StatusReserved {
		t.Errorf("held available seat = %s, want RESERVED", got)
	}

	// A hold on a booked seat changes nothing; the booking wins.
	seat.Status = StatusBooked
	if got := seat.EffectiveStatus(true); got != StatusBooked {
		t.Errorf("held booked seat = %s, want BOOKED", got)
	}
}

func TestToResponseReflectsHold(t *testing.T) {
	seat := &Seat{ID: uuid.New(), Label: "A3", Status: StatusAvailable}

	resp := seat.ToResponse(true)
	if resp.Status != "RESERVED" || !resp.IsHeld {
		t.Errorf("held seat response = %+v, want RESERVED/held", resp)
	}

	resp = seat.ToResponse(false)
	if resp.Status != "AVAILABLE" || resp.IsHeld {
		t.Errorf("unheld seat response = %+v, want AVAILABLE/unheld", resp)
	}
}

func TestBuildSeatsForTrip(t *testing.T) {
	tripID := uuid.New()
	seats := BuildSeatsForTrip(tripID, 12)

	if len(seats) != 12 {
		t.Fatalf("expected 12 seats, got %d", len(seats))
	}

	for i, seat := range seats {
		wantLabel := fmt.Sprintf("A%d", i+1)
		if seat.Label != wantLabel {
			t.Errorf("seat %d label = %s, want %s", i, seat.Label, wantLabel)
		}
		if seat.TripID != tripID {
			t.Errorf("seat %d has wrong trip ID", i)
		}
		if seat.Status != StatusAvailable {
			t.Errorf("seat %d status = %s, want AVAILABLE", i, seat.Status)
		}
		if seat.BookingID != nil {
			t.Errorf("seat %d should start with no booking", i)
		}
	}
}

func TestBuildSeatsForTripZero(t *testing.T) {
	if seats := BuildSeatsForTrip(uuid.New(), 0); len(seats) != 0 {
		t.Errorf("expected no seats, got %d", len(seats))
	}
}
