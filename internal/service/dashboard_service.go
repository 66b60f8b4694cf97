package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/rta-dms/pta-archive-api/internal/models"
	appErrors "github.com/rta-dms/pta-archive-api/pkg/errors"
)

const dashboardCacheKey = "dashboard:counts"

type dashboardStore interface {
	Counts(ctx context.Context) (*models.DashboardCounts, error)
}

type jsonCache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) error
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string)
}

// DashboardService serves the landing page counters, cached for a
// short window since they are hit on every page load.
type DashboardService struct {
	store    dashboardStore
	cache    jsonCache
	cacheTTL time.Duration
	logger   *zap.Logger
}

func NewDashboardService(store dashboardStore, cache jsonCache, cacheTTL time.Duration, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{store: store, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

func (s *DashboardService) Counts(ctx context.Context) (*models.DashboardCounts, error) {
	if s.cache != nil {
		var cached models.DashboardCounts
		err := s.cache.GetJSON(ctx, dashboardCacheKey, &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("dashboard cache read failed", zap.Error(err))
		}
	}

	counts, err := s.store.Counts(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to compute dashboard counts")
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, dashboardCacheKey, counts, s.cacheTTL); err != nil {
			s.logger.Warn("dashboard cache write failed", zap.Error(err))
		}
	}

	return counts, nil
}

// Invalidate drops the cached counts after archive mutations.
func (s *DashboardService) Invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Delete(ctx, dashboardCacheKey)
	}
}
