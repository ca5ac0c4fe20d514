package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/isp-support-service/internal/ratelimit"
	"github.com/spec-kit/isp-support-service/internal/service"
)

// The failing inputs below are rejected before any repository call, so the
// service can run with nil repositories.
func newTrackingApp(limiter ratelimit.Limiter) *fiber.App {
	svc := service.NewTrackingService(nil, nil, nil, limiter, zap.NewNop())
	app := fiber.New()
	app.Post("/api/track", NewTrackingHandler(svc).Track)
	return app
}

func postTrack(t *testing.T, app *fiber.App, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/track", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var payload map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	return payload
}

func TestTrackFailureBodyHasFoundFalseAndStringError(t *testing.T) {
	app := newTrackingApp(nil)

	resp := postTrack(t, app, `{"folio":"CON-42","phone_last4":"5678"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	payload := decodeBody(t, resp)
	found, ok := payload["found"].(bool)
	require.True(t, ok, "found must be a boolean")
	assert.False(t, found)
	message, ok := payload["error"].(string)
	require.True(t, ok, "error must be a plain string")
	assert.NotEmpty(t, message)
}

func TestTrackMalformedBodyGetsSameFailureShape(t *testing.T) {
	app := newTrackingApp(nil)

	valid := postTrack(t, app, `{"folio":"CON-42","phone_last4":"5678"}`)
	malformed := postTrack(t, app, `not json at all`)

	assert.Equal(t, valid.StatusCode, malformed.StatusCode)
	assert.Equal(t, decodeBody(t, valid), decodeBody(t, malformed))
}

func TestTrackRateLimitedKeepsFailureShapeAndRetryAfter(t *testing.T) {
	app := newTrackingApp(ratelimit.NewMemoryLimiter(1, time.Minute))

	first := postTrack(t, app, `{"folio":"CON-42","phone_last4":"5678"}`)
	assert.Equal(t, http.StatusNotFound, first.StatusCode)

	second := postTrack(t, app, `{"folio":"CON-42","phone_last4":"5678"}`)
	assert.Equal(t, http.StatusTooManyRequests, second.StatusCode)
	assert.NotEmpty(t, second.Header.Get("Retry-After"))

	payload := decodeBody(t, second)
	assert.Equal(t, false, payload["found"])
	_, ok := payload["error"].(string)
	assert.True(t, ok, "error must be a plain string")
}
