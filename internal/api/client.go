// Package api is the HTTP client for the doula backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tOgg1/doula/internal/logging"
	"github.com/tOgg1/doula/internal/models"
)

const (
	defaultTimeout     = 10 * time.Second
	defaultChatTimeout = 60 * time.Second
	maxErrorBodyBytes  = 4 << 10
	maxBodyBytes       = 4 << 20
)

// Config configures a Client.
type Config struct {
	BaseURL     string
	Timeout     time.Duration
	ChatTimeout time.Duration
	HTTPClient  *http.Client
	Logger      *zerolog.Logger
}

// Client talks JSON to the backend endpoints.
type Client struct {
	base        *url.URL
	http        *http.Client
	timeout     time.Duration
	chatTimeout time.Duration
	logger      zerolog.Logger
}

// New validates cfg and returns a Client.
func New(cfg Config) (*Client, error) {
	raw := strings.TrimSpace(cfg.BaseURL)
	if raw == "" {
		return nil, fmt.Errorf("base url required")
	}
	base, err := url.Parse(strings.TrimRight(raw, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", raw)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	chatTimeout := cfg.ChatTimeout
	if chatTimeout <= 0 {
		chatTimeout = defaultChatTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	logger := logging.Component("api")
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	return &Client{
		base:        base,
		http:        httpClient,
		timeout:     timeout,
		chatTimeout: chatTimeout,
		logger:      logger,
	}, nil
}

// BaseURL returns the configured backend root.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// FetchTimeline loads the ordered timeline for a user: GET /timeline/{id}.
// Order is preserved exactly as received.
func (c *Client) FetchTimeline(ctx context.Context, userID int) ([]models.TimelineEvent, error) {
	const op = "fetch timeline"

	var raw json.RawMessage
	if err := c.do(ctx, c.timeout, op, http.MethodGet, "/timeline/"+strconv.Itoa(userID), nil, &raw); err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, &MalformedResponseError{Op: op, Err: errors.New("expected a JSON array")}
	}

	var events []models.TimelineEvent
	if err := json.Unmarshal(trimmed, &events); err != nil {
		return nil, &MalformedResponseError{Op: op, Err: err}
	}
	if err := models.ValidateTimeline(events); err != nil {
		return nil, &MalformedResponseError{Op: op, Err: err}
	}
	if events == nil {
		events = []models.TimelineEvent{}
	}

	log := logging.FromContext(ctx, logging.WithUser(c.logger, userID))
	log.Debug().Int("events", len(events)).Msg("timeline fetched")
	return events, nil
}

// Onboard creates a profile: POST /onboarding.
func (c *Client) Onboard(ctx context.Context, req models.OnboardingRequest) (models.OnboardingResult, error) {
	const op = "onboarding"

	var result models.OnboardingResult
	if err := c.do(ctx, c.timeout, op, http.MethodPost, "/onboarding", req, &result); err != nil {
		return models.OnboardingResult{}, err
	}
	if err := result.Validate(); err != nil {
		return models.OnboardingResult{}, &MalformedResponseError{Op: op, Err: err}
	}
	return result, nil
}

// Chat sends one user message and returns the assistant reply: POST /chat.
func (c *Client) Chat(ctx context.Context, req models.ChatRequest) (models.ChatReply, error) {
	const op = "chat"

	var reply models.ChatReply
	if err := c.do(ctx, c.chatTimeout, op, http.MethodPost, "/chat", req, &reply); err != nil {
		return models.ChatReply{}, err
	}
	if strings.TrimSpace(reply.Response) == "" {
		return models.ChatReply{}, &MalformedResponseError{Op: op, Err: errors.New("empty response field")}
	}
	return reply, nil
}

// Health checks GET /health.
func (c *Client) Health(ctx context.Context) error {
	const op = "health"

	var status struct {
		Status string `json:"status"`
	}
	if err := c.do(ctx, c.timeout, op, http.MethodGet, "/health", nil, &status); err != nil {
		return err
	}
	if status.Status != "healthy" {
		return &MalformedResponseError{Op: op, Err: fmt.Errorf("unexpected status %q", status.Status)}
	}
	return nil
}

func (c *Client) do(ctx context.Context, timeout time.Duration, op, method, path string, body any, out any) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	logger := logging.FromContext(ctx, c.logger)

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		logPayload(logger, op, payload)
		reader = bytes.NewReader(payload)
	}

	target := *c.base
	target.Path = strings.TrimRight(target.Path, "/") + path

	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	logger.Debug().
		Str("op", op).
		Str("method", method).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(started)).
		Msg("request completed")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return &ServerError{Op: op, Status: resp.StatusCode, Body: string(text)}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &MalformedResponseError{Op: op, Err: err}
	}
	return nil
}

func logPayload(logger zerolog.Logger, op string, payload []byte) {
	event := logger.Debug()
	if !event.Enabled() {
		return
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(payload, &fields); err != nil {
		event.Discard()
		return
	}
	event.Str("op", op).Interface("payload", logging.RedactMap(fields)).Msg("sending request")
}

func isCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}
