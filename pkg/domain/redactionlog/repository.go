package redactionlog

import "context"

type Repository interface {
	Save(ctx context.Context, log *RedactionLog) error
	FindByRequestID(ctx context.Context, requestID string) (*RedactionLog, error)
}
