package reports

import (
	"context"
	"fmt"

	"busline/internal/shared/constants"
	"busline/pkg/cache"
	"busline/pkg/logger"

	"github.com/google/uuid"
)

type Service interface {
	GetBookingStats(ctx context.Context) (*BookingStats, error)
	GetTripReport(ctx context.Context, tripID string) (*TripReport, error)
}

type service struct {
	repo         Repository
	cacheService cache.Service
}

// NewService creates a new reports service. The cache may be nil; reports
// are then computed on every request.
func NewService(repo Repository, cacheService cache.Service) Service {
	return &service{
		repo:         repo,
		cacheService: cacheService,
	}
}

func (s *service) GetBookingStats(ctx context.Context) (*BookingStats, error) {
	if s.cacheService != nil {
		var cached BookingStats
		if err := s.cacheService.Get(ctx, constants.CACHE_KEY_REPORT_SUMMARY, &cached); err == nil {
			return &cached, nil
		}
	}

	stats, err := s.repo.GetBookingStats(ctx)
	if err != nil {
		return nil, err
	}

	if s.cacheService != nil {
		if err := s.cacheService.Set(ctx, constants.CACHE_KEY_REPORT_SUMMARY, stats, constants.TTL_REPORT_SUMMARY); err != nil {
			logger.GetDefault().Debug("failed to cache booking stats", "error", err)
		}
	}

	return stats, nil
}

func (s *service) GetTripReport(ctx context.Context, tripID string) (*TripReport, error) {
	tripUUID, err := uuid.Parse(tripID)
	if err != nil {
		return nil, fmt.Errorf("invalid trip ID: %w", err)
	}

	cacheKey := constants.BuildTripReportKey(tripID)
	if s.cacheService != nil {
		var cached TripReport
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	report, err := s.repo.GetTripReport(ctx, tripUUID)
	if err != nil {
		return nil, err
	}

	if s.cacheService != nil {
		if err := s.cacheService.Set(ctx, cacheKey, report, constants.TTL_TRIP_REPORT); err != nil {
			logger.GetDefault().Debug("failed to cache trip report", "trip_id", tripID, "error", err)
		}
	}

	return report, nil
}
