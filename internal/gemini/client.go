// Package gemini talks to the generateContent endpoint of the Gemini API. Calls go
// through a client-side rate limiter and are retried with exponential backoff on
// throttling and server errors.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultMaxRetries   = 3
	defaultInitialDelay = 1 * time.Second
	defaultMaxDelay     = 10 * time.Second
	maxErrorBody        = 2000

	apiKeyHeader = "x-goog-api-key"
)

var (
	ErrNotConfigured = errors.New("gemini: api key not configured")
	ErrEmptyResponse = errors.New("gemini: empty response")
)

// HTTPError is a non-2xx answer from the API.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	body := strings.TrimSpace(e.Body)
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody] + "..."
	}
	return fmt.Sprintf("gemini: HTTP %d: %s", e.StatusCode, body)
}

type Config struct {
	Endpoint     string
	APIKey       string
	Timeout      time.Duration
	RPS          float64
	MaxRetries   int // zero uses the default, negative disables retries
	InitialDelay time.Duration
	MaxDelay     time.Duration
}

type Client struct {
	httpClient   *http.Client
	endpoint     string
	apiKey       string
	limiter      *rate.Limiter
	maxRetries   int
	initialDelay time.Duration
	maxDelay     time.Duration
	logger       *slog.Logger
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.RPS <= 0 {
		cfg.RPS = 1
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	} else if cfg.MaxRetries == 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.InitialDelay <= 0 {
		cfg.InitialDelay = defaultInitialDelay
	}
	if cfg.MaxDelay <= 0 {
		cfg.MaxDelay = defaultMaxDelay
	}
	if logger == nil {
		logger = slog.Default()
	}

	burst := int(cfg.RPS)
	if burst < 1 {
		burst = 1
	}

	return &Client{
		httpClient:   &http.Client{Timeout: cfg.Timeout},
		endpoint:     cfg.Endpoint,
		apiKey:       cfg.APIKey,
		limiter:      rate.NewLimiter(rate.Limit(cfg.RPS), burst),
		maxRetries:   cfg.MaxRetries,
		initialDelay: cfg.InitialDelay,
		maxDelay:     cfg.MaxDelay,
		logger:       logger.With("component", "gemini"),
	}
}

// Configured reports whether requests can be made at all.
func (c *Client) Configured() bool {
	return c != nil && c.apiKey != "" && c.endpoint != ""
}

// GenerateText sends one prompt and returns the text of the first candidate.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}

	body, err := json.Marshal(generateRequest{Contents: []content{{Parts: []part{{Text: prompt}}}}})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	raw, err := c.do(ctx, body)
	if err != nil {
		return "", err
	}

	var resp generateResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", fmt.Errorf("failed to parse gemini response: %w", err)
	}
	if len(resp.Candidates) == 0 {
		return "", ErrEmptyResponse
	}

	var sb strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

func (c *Client) do(ctx context.Context, body []byte) ([]byte, error) {
	delay := c.initialDelay

	for attempt := 0; ; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		raw, retryAfter, err := c.doOnce(ctx, body)
		if err == nil {
			return raw, nil
		}
		if !retryable(err) || attempt >= c.maxRetries {
			return nil, err
		}

		sleepFor := delay
		if retryAfter > 0 {
			sleepFor = retryAfter
		}
		if sleepFor > c.maxDelay {
			sleepFor = c.maxDelay
		}

		c.logger.Warn("gemini_request_retry",
			"attempt", attempt+1,
			"max_retries", c.maxRetries,
			"sleep", sleepFor.String(),
			"error", err.Error(),
		)

		timer := time.NewTimer(sleepFor)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
		delay = min(delay*2, c.maxDelay)
	}
}

func (c *Client) doOnce(ctx context.Context, body []byte) ([]byte, time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	// the key stays out of the URL so transport errors and logs never carry it
	req.Header.Set(apiKeyHeader, c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, retryAfter(resp), &HTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	return raw, 0, nil
}

func retryable(err error) bool {
	var he *HTTPError
	if errors.As(err, &he) {
		return he.StatusCode == http.StatusTooManyRequests || he.StatusCode >= 500
	}
	// context errors from the caller are final
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	// transport failures (connection reset, client timeout)
	return true
}

func retryAfter(resp *http.Response) time.Duration {
	ra := strings.TrimSpace(resp.Header.Get("Retry-After"))
	if ra == "" {
		return 0
	}
	if secs, err := strconv.Atoi(ra); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return 0
}
