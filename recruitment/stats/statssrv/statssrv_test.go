package statssrv

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Abraxas-365/jobboard/pkg/cachex"
	"github.com/Abraxas-365/jobboard/pkg/cachex/cachexredis"
	"github.com/Abraxas-365/jobboard/recruitment/stats"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingRepo reports one more active job on every call
type countingRepo struct {
	calls int
	err   error
}

func (r *countingRepo) Count(ctx context.Context) (*stats.Statistics, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.calls++
	return &stats.Statistics{TotalActiveJobs: r.calls, TotalCompanies: 2, TotalApplications: 3, TotalCategories: 4}, nil
}

type brokenStore struct{}

func (brokenStore) Get(ctx context.Context, key string, dest any) error {
	return errors.New("connection refused")
}
func (brokenStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	return errors.New("connection refused")
}
func (brokenStore) Delete(ctx context.Context, key string) error { return nil }

func TestStatisticsServedFromCacheUntilExpiry(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	store := cachex.NewMemoryStore(cachex.WithClock(func() time.Time { return now }))
	repo := &countingRepo{}
	svc := NewService(repo, store, 300*time.Second)
	ctx := context.Background()

	first, err := svc.GetStatistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, first.TotalActiveJobs)

	now = now.Add(299 * time.Second)
	second, err := svc.GetStatistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.calls)

	now = now.Add(time.Second)
	third, err := svc.GetStatistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, third.TotalActiveJobs)
}

func TestStatisticsWithRedis(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	repo := &countingRepo{}
	svc := NewService(repo, cachexredis.NewRedisStore(client, "jobboard"), 300*time.Second)
	ctx := context.Background()

	_, err := svc.GetStatistics(ctx)
	require.NoError(t, err)
	_, err = svc.GetStatistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls)

	srv.FastForward(301 * time.Second)
	s, err := svc.GetStatistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, s.TotalActiveJobs)
}

func TestStatisticsSurviveBrokenCache(t *testing.T) {
	repo := &countingRepo{}
	svc := NewService(repo, brokenStore{}, time.Minute)

	s, err := svc.GetStatistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, s.TotalCategories)
}

func TestStatisticsRepositoryError(t *testing.T) {
	svc := NewService(&countingRepo{err: errors.New("db down")}, cachex.NewMemoryStore(), time.Minute)

	_, err := svc.GetStatistics(context.Background())
	assert.Error(t, err)
}
