package redactionlog

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sentinelhq/sentinel/pkg/domain"
)

// RedactionLog is the durable record of one request's token mapping. It is
// written exactly once, before the request is forwarded upstream, and is
// never mutated afterwards; rows disappear only through the expiry policy.
type RedactionLog struct {
	ID        uuid.UUID           `json:"id" gorm:"type:uuid;primaryKey"`
	RequestID string              `json:"request_id" gorm:"uniqueIndex"`
	UserID    string              `json:"user_id,omitempty"`
	Provider  string              `json:"provider"`
	TokenMap  domain.TokenMapJSON `json:"token_map" gorm:"type:jsonb"`
	CreatedAt time.Time           `json:"created_at"`
	ExpiresAt *time.Time          `json:"expires_at,omitempty"`
}

func (r *RedactionLog) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	r.CreatedAt = time.Now().UTC()
	return r.Validate()
}

func (r *RedactionLog) Validate() error {
	if r.RequestID == "" {
		return fmt.Errorf("request_id is required")
	}
	if r.Provider == "" {
		r.Provider = "openai"
	}
	return nil
}

func (r *RedactionLog) TableName() string {
	return "public.redaction_logs"
}
