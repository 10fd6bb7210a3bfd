package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/sentinelhq/sentinel/pkg/cache"
	"github.com/sentinelhq/sentinel/pkg/domain"
	"github.com/sentinelhq/sentinel/pkg/domain/redactionlog"
)

type redactionLogRepository struct {
	db     *gorm.DB
	cache  *cache.Cache
	logger *logrus.Logger
	ttl    time.Duration
}

// NewRedactionLogRepository builds the durable store for token mappings. The
// cache is optional; when present, saved records are written through so a
// reveal shortly after the request avoids the database entirely.
func NewRedactionLogRepository(
	db *gorm.DB,
	c *cache.Cache,
	logger *logrus.Logger,
	ttl time.Duration,
) redactionlog.Repository {
	return &redactionLogRepository{
		db:     db,
		cache:  c,
		logger: logger,
		ttl:    ttl,
	}
}

func (r *redactionLogRepository) Save(ctx context.Context, log *redactionlog.RedactionLog) error {
	if err := r.db.WithContext(ctx).Create(log).Error; err != nil {
		return fmt.Errorf("failed to persist redaction log: %w", err)
	}

	if r.cache != nil {
		key := fmt.Sprintf(cache.RedactionKeyPattern, log.RequestID)
		payload, err := json.Marshal(log)
		if err == nil {
			if err := r.cache.Set(ctx, key, string(payload), r.ttl); err != nil {
				r.logger.WithError(err).WithField("request_id", log.RequestID).
					Warn("failed to cache redaction log")
			}
		}
	}

	return nil
}

func (r *redactionLogRepository) FindByRequestID(ctx context.Context, requestID string) (*redactionlog.RedactionLog, error) {
	if r.cache != nil {
		key := fmt.Sprintf(cache.RedactionKeyPattern, requestID)
		if payload, err := r.cache.Get(ctx, key); err == nil {
			var log redactionlog.RedactionLog
			if err := json.Unmarshal([]byte(payload), &log); err == nil {
				return &log, nil
			}
		}
	}

	var log redactionlog.RedactionLog
	err := r.db.WithContext(ctx).Where("request_id = ?", requestID).First(&log).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("redaction log", requestID)
		}
		return nil, fmt.Errorf("failed to load redaction log: %w", err)
	}
	return &log, nil
}
