package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/stemsi/admission-relay/internal/config"
	"github.com/stemsi/admission-relay/internal/metrics"
	"github.com/stemsi/admission-relay/internal/model"
	"github.com/stemsi/admission-relay/internal/response"
)

// Relay errors.
var (
	ErrDestinationNotConfigured = errors.New("webhook destination not configured")
	ErrUpstream                 = errors.New("webhook submission failed")
)

// SubmissionType tags every outbound document.
const SubmissionType = "application"

// ISO-8601 with millisecond precision in UTC.
const submittedAtLayout = "2006-01-02T15:04:05.000Z"

const defaultWebhookTimeout = 10 * time.Second

// UpstreamError carries the status and body of a non-2xx webhook response.
// It is logged but never returned to the relay's caller.
type UpstreamError struct {
	StatusCode int
	Body       []byte
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("webhook responded with status %d: %s", e.StatusCode, snippet(e.Body, 300))
}

func (e *UpstreamError) Unwrap() error { return ErrUpstream }

// RelayService forwards application payloads to the configured webhook.
// It holds no per-request state and is safe for concurrent use.
type RelayService struct {
	cfg        *config.Config
	httpClient *http.Client
	now        func() time.Time
	log        zerolog.Logger
}

// NewRelayService creates a RelayService whose outbound calls are bounded
// by cfg.WebhookTimeout.
func NewRelayService(cfg *config.Config, log zerolog.Logger) *RelayService {
	timeout := cfg.WebhookTimeout
	if timeout <= 0 {
		timeout = defaultWebhookTimeout
	}
	return &RelayService{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
		now:        time.Now,
		log:        log.With().Str("component", "relay_service").Logger(),
	}
}

// Relay enriches payload and POSTs it to the webhook once. The destination
// is read from the configuration on every call.
func (s *RelayService) Relay(ctx context.Context, payload map[string]interface{}) error {
	institution := institutionLabel(payload)

	webhookURL := s.cfg.WebhookURL
	if webhookURL == "" {
		s.log.Error().Msg("webhook URL not configured")
		metrics.RelaySubmissions.WithLabelValues(metrics.OutcomeNotConfigured, institution).Inc()
		return ErrDestinationNotConfigured
	}

	doc := BuildDocument(payload, s.now())
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal webhook document: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if reqID := response.RequestIDFromContext(ctx); reqID != "" {
		req.Header.Set("X-Request-ID", reqID)
	}

	start := time.Now()
	resp, err := s.httpClient.Do(req)
	if err != nil {
		metrics.RelayUpstreamDuration.WithLabelValues(metrics.StatusClass(0)).Observe(time.Since(start).Seconds())
		metrics.RelaySubmissions.WithLabelValues(metrics.OutcomeTransportErr, institution).Inc()
		s.log.Error().Err(err).Str("institution", institution).Msg("webhook request failed")
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	metrics.RelayUpstreamDuration.WithLabelValues(metrics.StatusClass(resp.StatusCode)).Observe(time.Since(start).Seconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		uerr := &UpstreamError{StatusCode: resp.StatusCode, Body: respBody}
		metrics.RelaySubmissions.WithLabelValues(metrics.OutcomeUpstreamError, institution).Inc()
		s.log.Error().
			Int("status", resp.StatusCode).
			Str("body", snippet(respBody, 300)).
			Str("institution", institution).
			Msg("webhook rejected submission")
		return uerr
	}

	metrics.RelaySubmissions.WithLabelValues(metrics.OutcomeSuccess, institution).Inc()
	s.log.Info().
		Int("status", resp.StatusCode).
		Str("institution", institution).
		Msg("application relayed")
	return nil
}

// SubmitApplication relays a typed payload in-process. It lets the
// server-rendered form use the relay as its submitter.
func (s *RelayService) SubmitApplication(ctx context.Context, payload model.ApplicationPayload) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal application: %w", err)
	}
	var fields map[string]interface{}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil {
		return fmt.Errorf("decode application: %w", err)
	}
	return s.Relay(ctx, fields)
}

// BuildDocument returns the outbound webhook body: every inbound key plus
// the type tag, the institution duplicated under "institution" and
// "university", and the submission timestamp. Explicit keys override
// colliding inbound keys.
func BuildDocument(payload map[string]interface{}, now time.Time) map[string]interface{} {
	doc := make(map[string]interface{}, len(payload)+4)
	for k, v := range payload {
		doc[k] = v
	}

	inst, ok := payload["institution"]
	if !ok || inst == nil || inst == "" {
		inst, ok = payload["university"]
	}
	if ok && inst != nil {
		doc["institution"] = inst
		doc["university"] = inst
	}

	doc["type"] = SubmissionType
	doc["submittedAt"] = now.UTC().Format(submittedAtLayout)
	return doc
}

func institutionLabel(payload map[string]interface{}) string {
	for _, key := range []string{"institution", "university"} {
		if v, ok := payload[key].(string); ok && v != "" {
			if inst, err := model.ParseInstitution(v); err == nil {
				return string(inst.Token)
			}
			return "other"
		}
	}
	return "unknown"
}

// snippet trims b to at most max bytes without splitting a UTF-8 sequence.
func snippet(b []byte, max int) string {
	s := strings.TrimSpace(string(b))
	if len(s) <= max {
		return s
	}
	i := max
	for i > 0 && !utf8.RuneStart(s[i]) {
		i--
	}
	return s[:i] + "…"
}
