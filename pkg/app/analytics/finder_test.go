package analytics

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentinelhq/sentinel/pkg/domain/auditevent"
)

type stubRepo struct {
	stats      *auditevent.Stats
	recent     []auditevent.AuditEvent
	lastLimit  int
	lastSince  time.Time
	err        error
}

func (s *stubRepo) Save(ctx context.Context, event *auditevent.AuditEvent) error { return nil }

func (s *stubRepo) Stats(ctx context.Context, since time.Time) (*auditevent.Stats, error) {
	s.lastSince = since
	return s.stats, s.err
}

func (s *stubRepo) Recent(ctx context.Context, limit int) ([]auditevent.AuditEvent, error) {
	s.lastLimit = limit
	return s.recent, s.err
}

func (s *stubRepo) Trend(ctx context.Context, since time.Time) ([]auditevent.TrendPoint, error) {
	s.lastSince = since
	return nil, s.err
}

func (s *stubRepo) Distribution(ctx context.Context, since time.Time) ([]auditevent.DistributionBucket, error) {
	s.lastSince = since
	return nil, s.err
}

func newTestFinder(repo *stubRepo) Finder {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewFinder(repo, logger)
}

func TestOverviewDefaultsWindow(t *testing.T) {
	repo := &stubRepo{stats: &auditevent.Stats{TotalRequests: 7}}
	f := newTestFinder(repo)

	stats, err := f.Overview(context.Background(), 0)

	require.NoError(t, err)
	assert.Equal(t, int64(7), stats.TotalRequests)
	assert.WithinDuration(t, time.Now().UTC().Add(-24*time.Hour), repo.lastSince, time.Minute)
}

func TestRecentClampsLimit(t *testing.T) {
	repo := &stubRepo{}
	f := newTestFinder(repo)

	_, err := f.Recent(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, defaultLimit, repo.lastLimit)

	_, err = f.Recent(context.Background(), 10_000)
	require.NoError(t, err)
	assert.Equal(t, maxRecentLimit, repo.lastLimit)
}

func TestFinderPropagatesRepositoryError(t *testing.T) {
	repo := &stubRepo{err: errors.New("db down")}
	f := newTestFinder(repo)

	_, err := f.Overview(context.Background(), time.Hour)
	assert.Error(t, err)

	_, err = f.Trend(context.Background(), time.Hour)
	assert.Error(t, err)

	_, err = f.Distribution(context.Background(), time.Hour)
	assert.Error(t, err)
}
