package constants

import (
	"fmt"
	"time"
)

// Redis key and TTL conventions for the busline application.
// Pattern: busline:{module}:{operation}:{identifier}

// Cache TTL durations
const (
	TTL_REPORT_SUMMARY = 2 * time.Minute  // booking stats dashboard
	TTL_TRIP_REPORT    = 2 * time.Minute  // per-trip occupancy report
	TTL_TRIP_DETAIL    = 15 * time.Minute // trip detail without seat counts
)

// Cache keys
const (
	CACHE_KEY_REPORT_SUMMARY = "busline:reports:summary"
)

// BuildSeatHoldKey returns the redis key guarding one seat's temporary hold
func BuildSeatHoldKey(seatID string) string {
	return fmt.Sprintf("busline:seats:hold:%s", seatID)
}

// BuildTripDetailKey returns the cache key for a trip row (seat counts are
// never cached with it)
func BuildTripDetailKey(tripID string) string {
	return fmt.Sprintf("busline:trips:detail:%s", tripID)
}

// BuildTripReportKey returns the cache key for a per-trip report
func BuildTripReportKey(tripID string) string {
	return fmt.Sprintf("busline:reports:trip:%s", tripID)
}

// BuildRateLimitKey returns the rate-limit window key for a client/type pair
func BuildRateLimitKey(clientIP, limitType string) string {
	return fmt.Sprintf("busline:ratelimit:%s:%s", clientIP, limitType)
}
