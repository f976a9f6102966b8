package payments

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"busline/internal/shared/config"
	"busline/pkg/logger"

	"github.com/google/uuid"
)

// Gateway simulates an external card processor. Charges succeed at the
// configured rate after a short latency; a declined charge returns an error
// the booking service records as a failed payment.
type Gateway struct {
	successRate float64
	latency     time.Duration
}

func NewGateway(cfg *config.Config) *Gateway {
	return &Gateway{
		successRate: cfg.Payment.SuccessRate,
		latency:     cfg.Payment.Latency,
	}
}

// Charge settles one booking's fare, returning a transaction id on success
func (g *Gateway) Charge(ctx context.Context, bookingCode string, amount float64) (string, error) {
	select {
	case <-time.After(g.latency):
	case <-ctx.Done():
		return "", ctx.Err()
	}

	if rand.Float64() >= g.successRate {
		logger.GetDefault().Warn("gateway declined charge", "booking_code", bookingCode, "amount", amount)
		return "", fmt.Errorf("payment declined by gateway")
	}

	return generateTransactionID(), nil
}

// generateTransactionID produces an id like "TXN_1735689600_3FA2B91C"
func generateTransactionID() string {
	timestamp := time.Now().Unix()
	shortUUID := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return fmt.Sprintf("TXN_%d_%s", timestamp, strings.ToUpper(shortUUID))
}
