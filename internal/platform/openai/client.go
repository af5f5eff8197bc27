package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/briefops/taskbrief-api/internal/config"
	"github.com/briefops/taskbrief-api/internal/redact"
	"github.com/briefops/taskbrief-api/internal/summary"
)

// serviceName identifies the upstream in errors and log lines.
const serviceName = "OpenAI"

// systemPrompt primes the model before the per-task prompt.
const systemPrompt = "You are a helpful assistant that creates concise task summaries."

// Exponential backoff doubles the configured base delay per attempt and
// caps at ten times the base.
const (
	defaultRetryDelay = 1 * time.Second
	maxBackoffFactor  = 10
)

// maxSummaryTokens caps the completion length for a 2-3 sentence summary.
const maxSummaryTokens = 150

// Client implements the summary.Summarizer interface against an
// OpenAI-compatible chat-completions endpoint. It applies a per-request
// timeout, retries transport failures with exponential backoff, and maps
// HTTP statuses to the typed errors in the summary package.
type Client struct {
	logger     *slog.Logger
	cfg        config.LLMConfig
	httpClient *http.Client
}

// NewClient creates a Client with a default HTTP client bounded by the
// configured timeout. If logger is nil, the process default is used.
func NewClient(logger *slog.Logger, cfg config.LLMConfig) *Client {
	return NewClientWithHTTPClient(logger, cfg, &http.Client{Timeout: cfg.Timeout()})
}

// NewClientWithHTTPClient creates a Client using the provided HTTP client.
// Tests use this to substitute transports.
func NewClientWithHTTPClient(logger *slog.Logger, cfg config.LLMConfig, httpClient *http.Client) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout()}
	}

	return &Client{
		logger:     logger.With(slog.String("component", "openai_client")),
		cfg:        cfg,
		httpClient: httpClient,
	}
}

// Ensure Client implements summary.Summarizer
var _ summary.Summarizer = (*Client)(nil)

// GenerateTaskSummary implements summary.Summarizer.
//
// With no API key configured it returns immediately without touching the
// network; that is a deliberate short-circuit, not a failure. Upstream and
// timeout errors from the request path are logged and absorbed here, so the
// caller sees an absent summary instead of an error. Only failures outside
// the recognized transport conditions propagate.
func (c *Client) GenerateTaskSummary(ctx context.Context, title, description string) (string, error) {
	if c.cfg.APIKey == "" {
		c.logger.WarnContext(ctx, "API key not configured, skipping summary generation")
		return "", nil
	}

	payload := chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildPrompt(title, description)},
		},
		MaxTokens:   maxSummaryTokens,
		Temperature: 0.7,
	}

	resp, err := c.makeRequest(ctx, payload)
	if err != nil {
		if summary.IsSuppressible(err) {
			c.logger.ErrorContext(ctx, "failed to generate summary",
				slog.String("error", redact.Error(err)))
			return "", nil
		}
		return "", err
	}

	if len(resp.Choices) == 0 {
		c.logger.WarnContext(ctx, "upstream returned no completions")
		return "", nil
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	c.logger.InfoContext(ctx, "summary generated",
		slog.Int("summary_length", len(text)))
	return text, nil
}

// makeRequest issues one logical chat-completions request with retry.
// Only network errors and timeouts are retried; HTTP error statuses are
// mapped and returned on the first response. The final attempt's error is
// returned when all retries exhaust.
func (c *Client) makeRequest(ctx context.Context, payload chatRequest) (*chatResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request payload: %w", err)
	}

	maxAttempts := c.cfg.MaxRetries
	if maxAttempts < 1 {
		c.logger.Warn("invalid max retries value, using default", slog.Int("max_retries", 3))
		maxAttempts = 3
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		resp, err := c.doAttempt(ctx, body)
		if err == nil {
			return resp, nil
		}

		if !isRetryable(err) {
			return nil, err
		}
		lastErr = err

		if attempt == maxAttempts {
			c.logger.WarnContext(ctx, "maximum retry attempts reached",
				slog.Int("attempts", maxAttempts),
				slog.String("error", redact.Error(err)))
			break
		}

		delay := backoffDelay(c.cfg.RetryDelay(), attempt)
		c.logger.InfoContext(ctx, "retrying after transport error",
			slog.Int("attempt", attempt),
			slog.Duration("delay", delay),
			slog.String("error", redact.Error(err)))

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, &summary.UpstreamError{
				Service: serviceName,
				Cause:   ctx.Err().Error(),
				Err:     summary.ErrNetwork,
			}
		}
	}

	return nil, lastErr
}

// doAttempt performs a single HTTP round trip and maps the outcome.
func (c *Client) doAttempt(ctx context.Context, body []byte) (*chatResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.APIURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, &summary.TimeoutError{Service: serviceName, Timeout: c.cfg.Timeout()}
		}
		return nil, &summary.UpstreamError{
			Service: serviceName,
			Cause:   redact.Error(err),
			Err:     summary.ErrNetwork,
		}
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Error("failed to close response body", slog.String("error", closeErr.Error()))
		}
	}()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, &summary.UpstreamError{Service: serviceName, Cause: "invalid API key", Err: summary.ErrAuthFailed}
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, &summary.UpstreamError{Service: serviceName, Cause: "rate limit exceeded", Err: summary.ErrRateLimited}
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, &summary.UpstreamError{
			Service: serviceName,
			Cause:   fmt.Sprintf("HTTP %d", resp.StatusCode),
			Err:     summary.ErrServerError,
		}
	case resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices:
		return nil, &summary.UpstreamError{
			Service: serviceName,
			Cause:   fmt.Sprintf("HTTP %d", resp.StatusCode),
			Err:     summary.ErrUpstream,
		}
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		// A malformed body from a 2xx response is not a recognized
		// transport condition and therefore propagates to the caller.
		return nil, fmt.Errorf("failed to decode response body: %w", err)
	}

	return &parsed, nil
}

// buildPrompt produces the fixed-shape prompt sent to the model.
func buildPrompt(title, description string) string {
	return fmt.Sprintf(`You are a task management assistant. Generate a brief, actionable summary (2-3 sentences max) for the following task.

Task Title: %s

Task Description: %s

Summary:`, title, description)
}

// isRetryable reports whether the attempt failed before an HTTP response
// was obtained.
func isRetryable(err error) bool {
	return errors.Is(err, summary.ErrNetwork) || errors.Is(err, summary.ErrUpstreamTimeout)
}

// isTimeout reports whether the transport error is a timeout.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// backoffDelay computes the delay before the next attempt: the base delay
// doubled per attempt, capped at maxBackoffFactor times the base.
func backoffDelay(base time.Duration, attempt int) time.Duration {
	if base <= 0 {
		base = defaultRetryDelay
	}

	delay := base << (attempt - 1)
	if max := maxBackoffFactor * base; delay > max {
		delay = max
	}
	return delay
}
