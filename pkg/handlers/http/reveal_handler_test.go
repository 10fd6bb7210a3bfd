package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentinelhq/sentinel/pkg/domain"
	"github.com/sentinelhq/sentinel/pkg/domain/redactionlog"
)

type fakeRedactionRepo struct {
	record *redactionlog.RedactionLog
	err    error
}

func (f *fakeRedactionRepo) Save(ctx context.Context, log *redactionlog.RedactionLog) error {
	return nil
}

func (f *fakeRedactionRepo) FindByRequestID(ctx context.Context, requestID string) (*redactionlog.RedactionLog, error) {
	return f.record, f.err
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func revealApp(repo *fakeRedactionRepo) *fiber.App {
	app := fiber.New()
	app.Get("/api/v1/reveal/:request_id", NewRevealHandler(testLogger(), repo).Handle)
	return app
}

func TestRevealHandlerReturnsTokenMap(t *testing.T) {
	requestID := uuid.NewString()
	repo := &fakeRedactionRepo{record: &redactionlog.RedactionLog{
		RequestID: requestID,
		Provider:  "openai",
		TokenMap:  map[string]string{"<PERSON_1>": "Ann Lee"},
	}}

	resp, err := revealApp(repo).Test(httptest.NewRequest("GET", "/api/v1/reveal/"+requestID, nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, requestID, body["request_id"])
	tokenMap, ok := body["token_map"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Ann Lee", tokenMap["<PERSON_1>"])
}

func TestRevealHandlerNotFound(t *testing.T) {
	requestID := uuid.NewString()
	repo := &fakeRedactionRepo{err: domain.NewNotFoundError("redaction_log", requestID)}

	resp, err := revealApp(repo).Test(httptest.NewRequest("GET", "/api/v1/reveal/"+requestID, nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestRevealHandlerInvalidRequestID(t *testing.T) {
	repo := &fakeRedactionRepo{}

	resp, err := revealApp(repo).Test(httptest.NewRequest("GET", "/api/v1/reveal/not-a-uuid", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestRevealHandlerRepositoryFailure(t *testing.T) {
	requestID := uuid.NewString()
	repo := &fakeRedactionRepo{err: errors.New("db down")}

	resp, err := revealApp(repo).Test(httptest.NewRequest("GET", "/api/v1/reveal/"+requestID, nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
