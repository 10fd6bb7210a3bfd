package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/sentinelhq/sentinel/pkg/domain/auditevent"
)

type auditEventRepository struct {
	db *gorm.DB
}

func NewAuditEventRepository(db *gorm.DB) auditevent.Repository {
	return &auditEventRepository{db: db}
}

func (r *auditEventRepository) Save(ctx context.Context, event *auditevent.AuditEvent) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("failed to persist audit event: %w", err)
	}
	return nil
}

func (r *auditEventRepository) Stats(ctx context.Context, since time.Time) (*auditevent.Stats, error) {
	var stats auditevent.Stats
	err := r.db.WithContext(ctx).
		Raw(`
			SELECT
				COUNT(*)                                            AS total_requests,
				COALESCE(AVG(latency_ms), 0)                        AS avg_latency_ms,
				COALESCE(SUM(cardinality(entity_types)), 0)         AS pii_redacted_count,
				COALESCE(AVG(risk_score), 0)                        AS risk_score
			FROM audit_events
			WHERE timestamp >= ?`, since).
		Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate audit stats: %w", err)
	}
	return &stats, nil
}

func (r *auditEventRepository) Recent(ctx context.Context, limit int) ([]auditevent.AuditEvent, error) {
	var events []auditevent.AuditEvent
	err := r.db.WithContext(ctx).
		Order("timestamp DESC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load recent audit events: %w", err)
	}
	return events, nil
}

func (r *auditEventRepository) Trend(ctx context.Context, since time.Time) ([]auditevent.TrendPoint, error) {
	var points []auditevent.TrendPoint
	err := r.db.WithContext(ctx).
		Raw(`
			SELECT
				date_trunc('hour', timestamp)  AS time,
				COUNT(*)                       AS requests,
				COALESCE(AVG(latency_ms), 0)   AS latency
			FROM audit_events
			WHERE timestamp >= ?
			GROUP BY 1
			ORDER BY 1`, since).
		Scan(&points).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate audit trend: %w", err)
	}
	return points, nil
}

func (r *auditEventRepository) Distribution(ctx context.Context, since time.Time) ([]auditevent.DistributionBucket, error) {
	var buckets []auditevent.DistributionBucket
	err := r.db.WithContext(ctx).
		Raw(`
			SELECT entity AS name, COUNT(*) AS value
			FROM audit_events, unnest(entity_types) AS entity
			WHERE timestamp >= ?
			GROUP BY entity
			ORDER BY value DESC`, since).
		Scan(&buckets).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate entity distribution: %w", err)
	}
	return buckets, nil
}
