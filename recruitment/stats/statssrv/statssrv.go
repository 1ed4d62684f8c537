package statssrv

import (
	"context"
	"errors"
	"time"

	"github.com/Abraxas-365/jobboard/pkg/cachex"
	"github.com/Abraxas-365/jobboard/pkg/errx"
	"github.com/Abraxas-365/jobboard/pkg/logx"
	"github.com/Abraxas-365/jobboard/recruitment/stats"
	"go.uber.org/zap"
)

// CacheKey is where the computed statistics are stored
const CacheKey = "job_statistics"

// Service serves aggregate statistics through a read-through cache.
// Concurrent misses may each recompute.
type Service struct {
	repo  stats.Repository
	cache cachex.Store
	ttl   time.Duration
}

// NewService creates a statistics service caching results for ttl
func NewService(repo stats.Repository, cache cachex.Store, ttl time.Duration) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		ttl:   ttl,
	}
}

func (s *Service) GetStatistics(ctx context.Context) (*stats.Statistics, error) {
	var cached stats.Statistics
	err := s.cache.Get(ctx, CacheKey, &cached)
	if err == nil {
		return &cached, nil
	}
	if !errors.Is(err, cachex.ErrMiss) {
		logx.Warn("statistics cache read failed", zap.Error(err))
	}

	fresh, err := s.repo.Count(ctx)
	if err != nil {
		return nil, errx.Wrap(err, "failed to compute statistics", errx.TypeInternal)
	}

	if err := s.cache.Set(ctx, CacheKey, fresh, s.ttl); err != nil {
		logx.Warn("statistics cache write failed", zap.Error(err))
	}
	return fresh, nil
}
