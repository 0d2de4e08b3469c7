// Package remote provides clients for the two calculation services: the
// text-generation endpoint that produces a display result and a spoken
// explanation, and the speech-synthesis endpoint that renders the
// explanation as playable audio.
//
// Both endpoints are opaque request/response contracts; the client does
// not interpret the display text beyond checking it is present.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	defaultTimeout = 15 * time.Second
	maxBodySize    = 4 << 20 // 4 MB; data URLs carry whole audio payloads
)

var (
	// ErrGenerationUnavailable indicates a transport failure or non-2xx
	// status from the generation endpoint.
	ErrGenerationUnavailable = errors.New("remote: generation unavailable")
	// ErrGenerationMalformed indicates a generation payload missing its
	// display or explanation string.
	ErrGenerationMalformed = errors.New("remote: generation response malformed")
	// ErrSynthesisUnavailable indicates a transport failure or non-2xx
	// status from the synthesis endpoint.
	ErrSynthesisUnavailable = errors.New("remote: synthesis unavailable")
	// ErrSynthesisMalformed indicates a synthesis payload missing its
	// playable audio reference.
	ErrSynthesisMalformed = errors.New("remote: synthesis response malformed")
)

// Config holds the endpoint URLs and the per-request timeout.
type Config struct {
	GenerateURL   string
	SynthesizeURL string
	Timeout       time.Duration
}

// Client talks to the calculation services.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient creates a client for the configured endpoints.
func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{},
	}
}

// Generate asks the generation endpoint to "compute" the expression.
// The trace id is threaded into the payload for downstream log correlation.
func (c *Client) Generate(ctx context.Context, expression, traceID string) (*GenerateResponse, error) {
	body, err := c.post(ctx, c.cfg.GenerateURL, GenerateRequest{
		Expr:    expression,
		TraceID: traceID,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerationUnavailable, err)
	}

	var resp GenerateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerationMalformed, err)
	}
	if resp.Display == "" || resp.Explanation == "" {
		return nil, fmt.Errorf("%w: missing display or explanation", ErrGenerationMalformed)
	}
	return &resp, nil
}

// Synthesize asks the synthesis endpoint to render the explanation as audio.
func (c *Client) Synthesize(ctx context.Context, text, traceID string) (*SynthesizeResponse, error) {
	body, err := c.post(ctx, c.cfg.SynthesizeURL, SynthesizeRequest{
		Text:    text,
		TraceID: traceID,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSynthesisUnavailable, err)
	}

	var resp SynthesizeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSynthesisMalformed, err)
	}
	if resp.DataURL == "" {
		return nil, fmt.Errorf("%w: missing dataUrl", ErrSynthesisMalformed)
	}
	return &resp, nil
}

// post sends a JSON payload and returns the response body of a 2xx reply.
func (c *Client) post(ctx context.Context, url string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "github.com/hollowaydev/talkulator/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Error bodies carry a message and trace id worth logging, but
		// the caller only sees the status class.
		var eb errorBody
		if json.Unmarshal(body, &eb) == nil && eb.Error != "" {
			slog.Debug("remote error body",
				"url", redactQuery(url),
				"status", resp.StatusCode,
				"error", eb.Error,
				"trace_id", eb.TraceID)
		}
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return body, nil
}

// redactQuery strips any query string before a URL reaches the logs.
func redactQuery(url string) string {
	if i := strings.IndexByte(url, '?'); i >= 0 {
		return url[:i]
	}
	return url
}
