package analytics

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sentinelhq/sentinel/pkg/domain/auditevent"
)

const (
	defaultWindow  = 24 * time.Hour
	defaultLimit   = 20
	maxRecentLimit = 100
)

// Finder serves the dashboard queries over the audit trail.
type Finder interface {
	Overview(ctx context.Context, window time.Duration) (*auditevent.Stats, error)
	Recent(ctx context.Context, limit int) ([]auditevent.AuditEvent, error)
	Trend(ctx context.Context, window time.Duration) ([]auditevent.TrendPoint, error)
	Distribution(ctx context.Context, window time.Duration) ([]auditevent.DistributionBucket, error)
}

type finder struct {
	repo   auditevent.Repository
	logger *logrus.Logger
}

func NewFinder(repository auditevent.Repository, logger *logrus.Logger) Finder {
	return &finder{
		repo:   repository,
		logger: logger,
	}
}

func (f *finder) Overview(ctx context.Context, window time.Duration) (*auditevent.Stats, error) {
	stats, err := f.repo.Stats(ctx, since(window))
	if err != nil {
		f.logger.WithError(err).Error("failed to fetch audit stats")
		return nil, err
	}
	return stats, nil
}

func (f *finder) Recent(ctx context.Context, limit int) ([]auditevent.AuditEvent, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}
	events, err := f.repo.Recent(ctx, limit)
	if err != nil {
		f.logger.WithError(err).Error("failed to fetch recent audit events")
		return nil, err
	}
	return events, nil
}

func (f *finder) Trend(ctx context.Context, window time.Duration) ([]auditevent.TrendPoint, error) {
	points, err := f.repo.Trend(ctx, since(window))
	if err != nil {
		f.logger.WithError(err).Error("failed to fetch request trend")
		return nil, err
	}
	return points, nil
}

func (f *finder) Distribution(ctx context.Context, window time.Duration) ([]auditevent.DistributionBucket, error) {
	buckets, err := f.repo.Distribution(ctx, since(window))
	if err != nil {
		f.logger.WithError(err).Error("failed to fetch entity distribution")
		return nil, err
	}
	return buckets, nil
}

func since(window time.Duration) time.Time {
	if window <= 0 {
		window = defaultWindow
	}
	return time.Now().UTC().Add(-window)
}
