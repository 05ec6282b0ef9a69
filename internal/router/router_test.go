package router

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/admission-relay/internal/client"
	"github.com/stemsi/admission-relay/internal/config"
	"github.com/stemsi/admission-relay/internal/form"
	"github.com/stemsi/admission-relay/internal/handler"
	"github.com/stemsi/admission-relay/internal/middleware"
	"github.com/stemsi/admission-relay/internal/model"
	"github.com/stemsi/admission-relay/internal/response"
	"github.com/stemsi/admission-relay/internal/service"
	"github.com/stemsi/admission-relay/internal/templates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type webhookStub struct {
	calls  atomic.Int32
	status atomic.Int32
	bodies chan map[string]interface{}
}

func newWebhookStub(t *testing.T) (*webhookStub, *httptest.Server) {
	t.Helper()
	stub := &webhookStub{bodies: make(chan map[string]interface{}, 8)}
	stub.status.Store(http.StatusOK)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stub.calls.Add(1)
		var body map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&body)
		stub.bodies <- body
		w.WriteHeader(int(stub.status.Load()))
	}))
	t.Cleanup(srv.Close)
	return stub, srv
}

func newRelayRouter(t *testing.T, webhookURL string, limiter middleware.Limiter) *gin.Engine {
	t.Helper()
	cfg := &config.Config{
		GinMode:        "test",
		WebhookURL:     webhookURL,
		WebhookTimeout: 2 * time.Second,
	}
	relayService := service.NewRelayService(cfg, zerolog.Nop())
	renderer, err := templates.NewRenderer()
	require.NoError(t, err)

	handlers := &Handlers{
		Relay:  handler.NewRelayHandler(relayService, zerolog.Nop()),
		Page:   handler.NewPageHandler(renderer, relayService, zerolog.Nop()),
		Health: handler.NewHealthHandler(cfg, nil, zerolog.Nop()),
	}
	if limiter == nil {
		limiter = middleware.NewRateLimiter(100, time.Minute)
	}
	return SetupRouter(handlers, limiter, cfg, zerolog.Nop())
}

func newRelayServer(t *testing.T, webhookURL string, limiter middleware.Limiter) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(newRelayRouter(t, webhookURL, limiter))
	t.Cleanup(srv.Close)
	return srv
}

func fillValid(t *testing.T, c *form.Controller) {
	t.Helper()
	values := map[model.Field]string{
		model.FieldFullName:        "Asha Rao",
		model.FieldEmail:           "asha@example.com",
		model.FieldPhone:           "(987) 654-3210",
		model.FieldDateOfBirth:     "2006-04-12",
		model.FieldGender:          "female",
		model.FieldNationality:     "Indian",
		model.FieldAddress:         "12 MG Road",
		model.FieldCity:            "Bengaluru",
		model.FieldState:           "Karnataka",
		model.FieldPostalCode:      "560001",
		model.FieldCourse:          "Bachelor of Engineering",
		model.FieldIntakeYear:      "2026",
		model.FieldQualification:   "Class XII",
		model.FieldPercentageScore: "91.4",
		model.FieldConsent:         "on",
	}
	for f, v := range values {
		require.NoError(t, c.UpdateField(f, v))
	}
}

func TestApplicantToWebhook(t *testing.T) {
	stub, webhook := newWebhookStub(t)
	relay := newRelayServer(t, webhook.URL, nil)

	ctrl := form.New(model.Amity, client.NewRelayClient(relay.URL, 5*time.Second), zerolog.Nop())
	fillValid(t, ctrl)

	start := time.Now().UTC().Truncate(time.Millisecond)
	require.Equal(t, form.OutcomeSubmitted, ctrl.Submit(context.Background()))
	end := time.Now().UTC()

	assert.Equal(t, int32(1), stub.calls.Load())
	body := <-stub.bodies
	assert.Equal(t, "application", body["type"])
	assert.Equal(t, "amity", body["institution"])
	assert.Equal(t, "amity", body["university"])
	assert.Equal(t, "Bachelor of Engineering", body["course"])
	assert.Equal(t, "Asha Rao", body["fullName"])

	submittedAt, err := time.Parse(time.RFC3339Nano, body["submittedAt"].(string))
	require.NoError(t, err)
	assert.False(t, submittedAt.Before(start))
	assert.False(t, submittedAt.After(end))

	assert.Equal(t, form.StateSubmitted, ctrl.State())
	assert.Equal(t, model.ApplicationRecord{}, ctrl.Draft())
}

func TestApplicantSeesFailureOnUpstreamError(t *testing.T) {
	stub, webhook := newWebhookStub(t)
	stub.status.Store(http.StatusServiceUnavailable)
	relay := newRelayServer(t, webhook.URL, nil)

	ctrl := form.New(model.Amity, client.NewRelayClient(relay.URL, 5*time.Second), zerolog.Nop())
	fillValid(t, ctrl)

	assert.Equal(t, form.OutcomeFailed, ctrl.Submit(context.Background()))
	assert.Equal(t, form.StateFailed, ctrl.State())
	assert.Equal(t, "Asha Rao", ctrl.Draft().FullName)
	assert.Equal(t, int32(1), stub.calls.Load())
}

func TestRelayHidesUpstreamStatus(t *testing.T) {
	stub, webhook := newWebhookStub(t)
	stub.status.Store(http.StatusServiceUnavailable)
	relay := newRelayServer(t, webhook.URL, nil)

	resp, err := http.Post(relay.URL+"/api/submit-application", "application/json",
		strings.NewReader(`{"institution":"amity","fullName":"Asha Rao"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, string(raw), "Failed to submit application")
	assert.NotContains(t, string(raw), "503")
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestRelayNotConfiguredMakesNoCall(t *testing.T) {
	stub, _ := newWebhookStub(t)
	relay := newRelayServer(t, "", nil)

	resp, err := http.Post(relay.URL+"/api/submit-application", "application/json",
		strings.NewReader(`{"institution":"amity"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Webhook URL not configured", body["error"])
	assert.Equal(t, int32(0), stub.calls.Load())
}

func TestSubmissionRoutesAreRateLimited(t *testing.T) {
	_, webhook := newWebhookStub(t)
	relay := newRelayServer(t, webhook.URL, middleware.NewRateLimiter(1, time.Hour))

	post := func() int {
		resp, err := http.Post(relay.URL+"/api/submit-application", "application/json", strings.NewReader(`{}`))
		require.NoError(t, err)
		resp.Body.Close()
		return resp.StatusCode
	}
	assert.Equal(t, http.StatusOK, post())
	assert.Equal(t, http.StatusTooManyRequests, post())

	// Page routes stay reachable.
	resp, err := http.Get(relay.URL + "/amity/apply")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestPageCachePolicy(t *testing.T) {
	relay := newRelayServer(t, "", nil)

	resp, err := http.Get(relay.URL + "/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "public, max-age=300", resp.Header.Get("Cache-Control"))

	resp, err = http.Get(relay.URL + "/manipal/apply")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "no-store", resp.Header.Get("Cache-Control"))
}

func TestOperationalEndpoints(t *testing.T) {
	relay := newRelayServer(t, "", nil)

	resp, err := http.Get(relay.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	var health map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "degraded", health["status"])

	metricsResp, err := http.Get(relay.URL + "/metrics")
	require.NoError(t, err)
	defer metricsResp.Body.Close()
	raw, _ := io.ReadAll(metricsResp.Body)
	assert.Equal(t, http.StatusOK, metricsResp.StatusCode)
	assert.Contains(t, string(raw), "go_goroutines")
}

func TestCORSPreflight(t *testing.T) {
	relay := newRelayServer(t, "", nil)

	req, err := http.NewRequest(http.MethodOptions, relay.URL+"/api/submit-application", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://apply.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestPanicsBecomeInternalError(t *testing.T) {
	r := newRelayRouter(t, "", nil)
	r.PUT("/boom", func(c *gin.Context) { panic("template exploded") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/boom", nil))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var body response.ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, response.ErrInternal, body.Code)
	assert.Equal(t, "Internal server error", body.Error)
	assert.NotEmpty(t, body.RequestID)
	assert.NotContains(t, w.Body.String(), "template exploded")
}
