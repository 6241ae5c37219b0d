package capture

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/launch-watch/internal/api/dto"
	"github.com/spec-kit/launch-watch/internal/domain"
)

// PlaceholderEndpoint is the value shipped in page templates before an endpoint is deployed.
const PlaceholderEndpoint = "YOUR_GOOGLE_APPS_SCRIPT_URL_HERE"

// DefaultFallbackDelay is how long an unconfigured client pretends to submit.
const DefaultFallbackDelay = 1500 * time.Millisecond

const maxResponseBytes = 64 << 10

// Outcome classifies a submission attempt.
type Outcome int

const (
	// OutcomeDelivered means the endpoint answered 2xx with status "success".
	OutcomeDelivered Outcome = iota
	// OutcomeSimulated means no endpoint is configured and nothing was sent.
	OutcomeSimulated
	// OutcomeRejected means the endpoint answered but reported an error.
	OutcomeRejected
	// OutcomeFailed means the request never produced a response.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDelivered:
		return "delivered"
	case OutcomeSimulated:
		return "simulated"
	case OutcomeRejected:
		return "rejected"
	case OutcomeFailed:
		return "failed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Result is the inspectable result of one submission.
type Result struct {
	Outcome    Outcome
	StatusCode int
	Response   *dto.AppendResponse
	Err        error
}

// OK reports whether the visitor's lead is known or assumed to be stored.
func (r Result) OK() bool {
	return r.Outcome == OutcomeDelivered || r.Outcome == OutcomeSimulated
}

// Submitter sends one lead and reports what happened.
type Submitter interface {
	Submit(ctx context.Context, lead domain.Lead) Result
}

// ClientConfig configures Client.
type ClientConfig struct {
	EndpointURL    string
	FallbackDelay  time.Duration
	RequestTimeout time.Duration
	HTTPClient     *http.Client
	Logger         *zap.Logger
}

// Client posts leads to the append endpoint.
type Client struct {
	endpoint      string
	fallbackDelay time.Duration
	timeout       time.Duration
	http          *http.Client
	logger        *zap.Logger
}

// NewClient builds a client. A blank or placeholder endpoint leaves it unconfigured.
func NewClient(cfg ClientConfig) *Client {
	endpoint := strings.TrimSpace(cfg.EndpointURL)
	if endpoint == PlaceholderEndpoint {
		endpoint = ""
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		endpoint:      endpoint,
		fallbackDelay: cfg.FallbackDelay,
		timeout:       cfg.RequestTimeout,
		http:          httpClient,
		logger:        logger,
	}
}

// Configured reports whether an endpoint URL is set.
func (c *Client) Configured() bool {
	return c.endpoint != ""
}

// FallbackDelay is the simulated submission time used when unconfigured.
func (c *Client) FallbackDelay() time.Duration {
	return c.fallbackDelay
}

// Submit posts lead as JSON. Without an endpoint it performs no I/O, waits the fallback delay and
// returns OutcomeSimulated.
func (c *Client) Submit(ctx context.Context, lead domain.Lead) Result {
	if !c.Configured() {
		c.logger.Warn("capture endpoint not configured; simulating submission")
		if err := Wait(ctx, c.fallbackDelay); err != nil {
			return Result{Outcome: OutcomeFailed, Err: err}
		}
		return Result{Outcome: OutcomeSimulated}
	}

	body, err := json.Marshal(dto.NewLeadRequest(lead))
	if err != nil {
		return Result{Outcome: OutcomeFailed, Err: err}
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return Result{Outcome: OutcomeFailed, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("submitting lead", zap.Error(err))
		return Result{Outcome: OutcomeFailed, Err: err}
	}
	defer resp.Body.Close()

	result := Result{StatusCode: resp.StatusCode}
	var decoded dto.AppendResponse
	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if readErr == nil && json.Unmarshal(raw, &decoded) == nil && decoded.Status != "" {
		result.Response = &decoded
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300 && (result.Response == nil || result.Response.Status == dto.StatusSuccess):
		result.Outcome = OutcomeDelivered
	default:
		result.Outcome = OutcomeRejected
		result.Err = rejection(resp.StatusCode, result.Response)
		c.logger.Warn("lead rejected by endpoint", zap.Int("status", resp.StatusCode), zap.Error(result.Err))
	}
	return result
}

// Probe issues a GET against the endpoint and returns its identification text.
func (c *Client) Probe(ctx context.Context) (string, error) {
	if !c.Configured() {
		return "", fmt.Errorf("capture endpoint not configured")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("probe returned %d", resp.StatusCode)
	}
	return string(raw), nil
}

// Wait blocks for d or until ctx is done.
func Wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func rejection(status int, resp *dto.AppendResponse) error {
	if resp != nil && resp.Message != "" {
		return fmt.Errorf("endpoint returned %d: %s", status, resp.Message)
	}
	return fmt.Errorf("endpoint returned %d", status)
}
