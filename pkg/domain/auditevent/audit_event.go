package auditevent

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Request outcome as recorded in the audit trail.
const (
	StatusSuccess  = "SUCCESS"
	StatusDegraded = "DEGRADED"
	StatusBlocked  = "BLOCKED"
	StatusError    = "ERROR"
)

// AuditEvent is the non-sensitive, durable record of one request: which
// entity types were redacted and how the round trip went. It deliberately
// carries no PII literals, only type labels and counts, and is written once
// after the round trip completes.
type AuditEvent struct {
	ID          int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	RequestID   string         `json:"request_id" gorm:"index"`
	UserID      string         `json:"user_id,omitempty" gorm:"index"`
	Timestamp   time.Time      `json:"timestamp"`
	RiskScore   float64        `json:"risk_score"`
	EntityTypes pq.StringArray `json:"entity_types" gorm:"type:text[]"`
	LatencyMs   int64          `json:"latency_ms"`
	Status      string         `json:"status"`
}

func (e *AuditEvent) BeforeCreate(tx *gorm.DB) error {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	if e.Status == "" {
		e.Status = StatusSuccess
	}
	return nil
}

func (e *AuditEvent) TableName() string {
	return "public.audit_events"
}

// RiskScore grades redaction volume on [0,1]. A monotonic heuristic, not a
// security guarantee: more distinct redacted values means a higher score.
func RiskScore(redactedValues int) float64 {
	score := 0.15 * float64(redactedValues)
	if score > 1.0 {
		return 1.0
	}
	return score
}
