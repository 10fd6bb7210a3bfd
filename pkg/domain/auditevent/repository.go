package auditevent

import (
	"context"
	"time"
)

// Stats is the aggregate view backing the dashboard overview.
type Stats struct {
	TotalRequests    int64   `json:"total_requests"`
	AvgLatencyMs     float64 `json:"avg_latency_ms"`
	PIIRedactedCount int64   `json:"pii_redacted_count"`
	RiskScore        float64 `json:"risk_score"`
}

// TrendPoint is one hourly bucket of traffic volume and latency.
type TrendPoint struct {
	Time     time.Time `json:"time"`
	Requests int64     `json:"requests"`
	Latency  float64   `json:"latency"`
}

// DistributionBucket counts redactions of one entity type.
type DistributionBucket struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

type Repository interface {
	Save(ctx context.Context, event *AuditEvent) error
	Stats(ctx context.Context, since time.Time) (*Stats, error)
	Recent(ctx context.Context, limit int) ([]AuditEvent, error)
	Trend(ctx context.Context, since time.Time) ([]TrendPoint, error)
	Distribution(ctx context.Context, since time.Time) ([]DistributionBucket, error)
}
