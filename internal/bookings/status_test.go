package bookings

import "testing"

func TestStatusCanCancel(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{StatusConfirmed, true},
		{StatusCancelled, false},
		{StatusCompleted, false},
	}

	for _, tt := range tests {
		if got := tt.status.CanCancel(); got != tt.want {
			t.Errorf("%s.CanCancel() = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestStatusIsValid(t *testing.T) {
	for _, s := range []Status{StatusConfirmed, StatusCancelled, StatusCompleted} {
		if !s.IsValid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if Status("PENDING").IsValid() {
		t.Error("unknown status should not be valid")
	}
}

func TestPaymentStatusCanPay(t *testing.T) {
	tests := []struct {
		status PaymentStatus
		want   bool
	}{
		{PaymentPending, true},
		{PaymentFailed, true},
		{PaymentPaid, false},
		{PaymentRefunded, false},
	}

	for _, tt := range tests {
		if got := tt.status.CanPay(); got != tt.want {
			t.Errorf("%s.CanPay() = %v, want %v", tt.status, got, tt.want)
		}
	}
}
