// Package client talks to the relay endpoint over HTTP, the way the
// browser form does.
package client

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

	"github.com/stemsi/admission-relay/internal/model"
)

// SubmitPath is the relay endpoint path.
const SubmitPath = "/api/submit-application"

// ErrRelayRejected wraps every non-2xx relay response.
var ErrRelayRejected = errors.New("relay rejected submission")

// RelayError is a non-2xx relay response.
type RelayError struct {
	StatusCode int
	Message    string
}

func (e *RelayError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("relay responded with status %d", e.StatusCode)
	}
	return fmt.Sprintf("relay responded with status %d: %s", e.StatusCode, e.Message)
}

func (e *RelayError) Unwrap() error { return ErrRelayRejected }

// RelayClient posts application payloads to a relay base URL.
type RelayClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewRelayClient creates a RelayClient for baseURL (e.g. http://localhost:8080).
func NewRelayClient(baseURL string, timeout time.Duration) *RelayClient {
	return &RelayClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SubmitApplication sends one request. Any non-2xx status is an error.
func (c *RelayClient) SubmitApplication(ctx context.Context, payload model.ApplicationPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal application: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+SubmitPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var failure struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(respBody, &failure)
		return &RelayError{StatusCode: resp.StatusCode, Message: failure.Error}
	}

	return nil
}
