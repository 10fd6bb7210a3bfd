package completion

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/sentinelhq/sentinel/pkg/config"
	"github.com/sentinelhq/sentinel/pkg/domain/auditevent"
	"github.com/sentinelhq/sentinel/pkg/domain/redactionlog"
	"github.com/sentinelhq/sentinel/pkg/infra/prometheus"
	"github.com/sentinelhq/sentinel/pkg/infra/providers"
	"github.com/sentinelhq/sentinel/pkg/infra/providers/factory"
	"github.com/sentinelhq/sentinel/pkg/infra/recognizer"
	"github.com/sentinelhq/sentinel/pkg/redaction"
	"github.com/sentinelhq/sentinel/pkg/types"
)

var (
	// ErrRecognizerBlocked is returned when the recognizer is down and the
	// policy is fail-closed: the request must not leave unredacted.
	ErrRecognizerBlocked = errors.New("entity recognition unavailable, request blocked")

	// ErrPersistenceFailed is returned when the redaction record could not
	// be written. The request is never forwarded without one.
	ErrPersistenceFailed = errors.New("failed to persist redaction record")
)

// Result is what the HTTP layer needs to answer one completion request.
type Result struct {
	RequestID string
	Response  *types.ChatCompletionResponse
}

// Service runs one completion request end to end: detect, redact, persist
// the mapping, call upstream, rehydrate, audit. The service itself holds no
// per-request state; everything request-scoped lives on the stack.
type Service struct {
	logger        *logrus.Logger
	rec           recognizer.Recognizer
	resolver      *redaction.Resolver
	redactionRepo redactionlog.Repository
	auditRepo     auditevent.Repository
	locator       factory.ProviderLocator
	cfg           *config.Config
}

func NewService(
	logger *logrus.Logger,
	rec recognizer.Recognizer,
	resolver *redaction.Resolver,
	redactionRepo redactionlog.Repository,
	auditRepo auditevent.Repository,
	locator factory.ProviderLocator,
	cfg *config.Config,
) *Service {
	return &Service{
		logger:        logger,
		rec:           rec,
		resolver:      resolver,
		redactionRepo: redactionRepo,
		auditRepo:     auditRepo,
		locator:       locator,
		cfg:           cfg,
	}
}

func (s *Service) Complete(ctx context.Context, req *types.ChatCompletionRequest) (*Result, error) {
	start := time.Now()
	requestID := uuid.NewString()
	log := s.logger.WithField("request_id", requestID)

	redacted, mapper, entityTypes, recognizerDegraded, err := s.redactMessages(ctx, req.Messages)
	if err != nil {
		s.audit(requestID, req.UserID, nil, 0, start, auditevent.StatusBlocked)
		prometheus.RequestTotal.WithLabelValues("none", auditevent.StatusBlocked).Inc()
		return nil, err
	}

	providerName := factory.ResolveFromModel(req.Model)
	providerCfg := s.providerConfig(providerName, req)
	if providerCfg.APIKey == "" {
		providerName = factory.ProviderMock
	}

	mapping := mapper.Mapping()
	if err := s.persistRedaction(ctx, requestID, req.UserID, providerName, mapping); err != nil {
		log.WithError(err).Error("redaction record write failed, aborting request")
		s.audit(requestID, req.UserID, entityTypes, len(mapping), start, auditevent.StatusError)
		prometheus.RequestTotal.WithLabelValues(providerName, auditevent.StatusError).Inc()
		return nil, fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
	}

	outcome := s.callUpstream(ctx, providerName, providerCfg, redacted)
	if recognizerDegraded && outcome.Kind == OutcomeSuccess {
		outcome = degraded(outcome.Completion, "entity recognizer unavailable, forwarded unredacted")
	}

	status := statusFor(outcome.Kind)
	s.audit(requestID, req.UserID, entityTypes, len(mapping), start, status)

	prometheus.RequestTotal.WithLabelValues(providerName, status).Inc()
	prometheus.RequestLatency.WithLabelValues(providerName).Observe(float64(time.Since(start).Milliseconds()))
	for _, entityType := range entityTypes {
		prometheus.RedactedEntities.WithLabelValues(entityType).Inc()
	}

	if outcome.Kind == OutcomeFailed {
		return nil, fmt.Errorf("upstream completion failed: %s", outcome.Reason)
	}
	if outcome.Kind == OutcomeDegraded {
		log.WithField("reason", outcome.Reason).Warn("completion degraded")
	}

	content := redaction.Rehydrate(outcome.Completion.Response, mapping)

	return &Result{
		RequestID: requestID,
		Response: types.NewChatCompletionResponse(
			outcome.Completion.ID,
			outcome.Completion.Model,
			content,
			types.ChatCompletionUsage{
				PromptTokens:     outcome.Completion.Usage.PromptTokens,
				CompletionTokens: outcome.Completion.Usage.CompletionTokens,
				TotalTokens:      outcome.Completion.Usage.TotalTokens,
			},
		),
	}, nil
}

// redactMessages runs detection and redaction over every user-authored
// message, sharing one token mapper across the request so repeated literals
// collapse to a single token. Non-user messages pass through untouched.
func (s *Service) redactMessages(
	ctx context.Context,
	messages []types.ChatMessage,
) ([]types.ChatMessage, *redaction.Mapper, []string, bool, error) {
	mapper := redaction.NewMapper()
	redacted := make([]types.ChatMessage, len(messages))
	var entityTypes []string
	seenTypes := make(map[string]struct{})
	degradedDetection := false

	for i, msg := range messages {
		redacted[i] = msg
		if msg.Role != "user" || msg.Content == "" {
			continue
		}

		detections, err := s.rec.Analyze(ctx, msg.Content, s.cfg.Recognizer.Language)
		if err != nil {
			prometheus.RecognizerFailures.Inc()
			if s.cfg.Recognizer.FailClosed {
				return nil, nil, nil, false, fmt.Errorf("%w: %v", ErrRecognizerBlocked, err)
			}
			s.logger.WithError(err).Warn("entity recognizer unavailable, continuing without redaction")
			degradedDetection = true
			continue
		}

		spans := s.resolver.Resolve(detections)
		tokens := mapper.Assign(msg.Content, spans)
		redacted[i].Content = redaction.Substitute(msg.Content, spans, tokens)

		for _, span := range spans {
			if _, ok := seenTypes[span.EntityType]; !ok {
				seenTypes[span.EntityType] = struct{}{}
				entityTypes = append(entityTypes, span.EntityType)
			}
		}
	}

	return redacted, mapper, entityTypes, degradedDetection, nil
}

func (s *Service) persistRedaction(
	ctx context.Context,
	requestID, userID, provider string,
	mapping redaction.TokenMapping,
) error {
	expiresAt := time.Now().UTC().Add(time.Duration(s.cfg.Redaction.MappingTTLHours) * time.Hour)
	return s.redactionRepo.Save(ctx, &redactionlog.RedactionLog{
		RequestID: requestID,
		UserID:    userID,
		Provider:  provider,
		TokenMap:  map[string]string(mapping),
		ExpiresAt: &expiresAt,
	})
}

// callUpstream tries the requested model, then the provider's default model,
// then the local mock. The provider call is the only step that blocks on
// external I/O, so it alone is bounded by the configured timeout.
func (s *Service) callUpstream(
	ctx context.Context,
	providerName string,
	cfg *providers.Config,
	messages []types.ChatMessage,
) Outcome {
	client, err := s.locator.Get(providerName)
	if err != nil {
		return failed(err.Error())
	}

	timeout := time.Duration(s.cfg.Providers.TimeoutSeconds) * time.Second
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if providerName == factory.ProviderMock {
		resp, err := client.Chat(callCtx, cfg, messages)
		if err != nil {
			return failed(err.Error())
		}
		return degraded(resp, "no provider credential configured, served mock response")
	}

	resp, err := client.Chat(callCtx, cfg, messages)
	if err == nil {
		return success(resp)
	}
	s.logger.WithError(err).WithField("model", cfg.Model).Warn("provider call failed")

	if cfg.DefaultModel != "" && cfg.DefaultModel != cfg.Model {
		fallbackCfg := *cfg
		fallbackCfg.Model = cfg.DefaultModel
		if resp, fallbackErr := client.Chat(callCtx, &fallbackCfg, messages); fallbackErr == nil {
			return degraded(resp, fmt.Sprintf("model %q failed, fell back to %q", cfg.Model, cfg.DefaultModel))
		}
	}

	mockClient, mockErr := s.locator.Get(factory.ProviderMock)
	if mockErr != nil {
		return failed(err.Error())
	}
	resp, mockErr = mockClient.Chat(ctx, cfg, messages)
	if mockErr != nil {
		return failed(err.Error())
	}
	return degraded(resp, fmt.Sprintf("provider %s unavailable, served mock response", providerName))
}

// audit records the round trip outcome. A failed audit write is logged and
// swallowed: the user-facing response has already been decided.
func (s *Service) audit(
	requestID, userID string,
	entityTypes []string,
	redactedValues int,
	start time.Time,
	status string,
) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	event := &auditevent.AuditEvent{
		RequestID:   requestID,
		UserID:      userID,
		Timestamp:   time.Now().UTC(),
		RiskScore:   auditevent.RiskScore(redactedValues),
		EntityTypes: entityTypes,
		LatencyMs:   time.Since(start).Milliseconds(),
		Status:      status,
	}
	if err := s.auditRepo.Save(ctx, event); err != nil {
		s.logger.WithError(err).WithField("request_id", requestID).Error("failed to persist audit event")
	}
}

func (s *Service) providerConfig(providerName string, req *types.ChatCompletionRequest) *providers.Config {
	var p config.ProviderConfig
	switch providerName {
	case factory.ProviderGoogle:
		p = s.cfg.Providers.Google
	case factory.ProviderAnthropic:
		p = s.cfg.Providers.Anthropic
	default:
		p = s.cfg.Providers.OpenAI
	}
	return &providers.Config{
		APIKey:       p.APIKey,
		Model:        req.Model,
		DefaultModel: p.DefaultModel,
		MaxTokens:    req.MaxTokens,
		Temperature:  req.Temperature,
	}
}

func statusFor(kind OutcomeKind) string {
	switch kind {
	case OutcomeSuccess:
		return auditevent.StatusSuccess
	case OutcomeDegraded:
		return auditevent.StatusDegraded
	default:
		return auditevent.StatusError
	}
}
