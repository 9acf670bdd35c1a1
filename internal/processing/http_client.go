package processing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const maxErrorBodyBytes = 64 << 10

type httpClient struct {
	endpoint  string
	client    *http.Client
	validator *responseValidator
}

func (c *httpClient) Endpoint() string {
	return c.endpoint
}

func (c *httpClient) Process(ctx context.Context, req Request) (Result, error) {
	buf, err := json.Marshal(req)
	if err != nil {
		return Result{}, err
	}
	requestID := uuid.NewString()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/process", bytes.NewReader(buf))
	if err != nil {
		return Result{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", requestID)

	started := time.Now()
	resp, err := c.client.Do(httpReq)
	if err != nil {
		log.Warn().Err(err).Str("request_id", requestID).Msg("process request failed")
		return Result{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, err
	}
	log.Debug().
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Int("text_len", len(req.Text)).
		Dur("elapsed", time.Since(started)).
		Msg("process response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result{}, newAPIError(resp, body)
	}
	return c.validator.Decode(body)
}

func (c *httpClient) Health(ctx context.Context) (Health, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/health", nil)
	if err != nil {
		return Health{}, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		return Health{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Health{}, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Health{}, newAPIError(resp, body)
	}
	var health Health
	if err := json.Unmarshal(body, &health); err != nil {
		return Health{}, fmt.Errorf("decode health: %w", err)
	}
	return health, nil
}

func newAPIError(resp *http.Response, body []byte) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode, Status: resp.Status}
	if len(body) > maxErrorBodyBytes {
		body = body[:maxErrorBodyBytes]
	}
	var parsed struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		apiErr.Message = parsed.Error
	}
	return apiErr
}
