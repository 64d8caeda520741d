package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	"agency-console/internal/logger"
	"agency-console/internal/metrics"
	"agency-console/internal/session"
)

const (
	LoginPath       = "/login"
	maxResponseSize = 8 << 20
)

// Navigator moves the operator's view. The console implements it with the
// realtime hub; the CLI uses a no-op.
type Navigator interface {
	CurrentPath() string
	Navigate(path string)
}

type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client talks to the agency REST API on behalf of the current session.
type Client struct {
	httpClient *http.Client
	baseURL    string
	session    *session.Store
	nav        Navigator
	log        zerolog.Logger
}

func New(cfg Config, store *session.Store, nav Navigator) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 10 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}
	return &Client{
		httpClient: hc,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		session:    store,
		nav:        nav,
		log:        logger.WithComponent("apiclient"),
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do sends a JSON request and returns the raw body of a 2xx answer.
func (c *Client) Do(ctx context.Context, method, path string, body any) ([]byte, error) {
	op := method + " " + path
	endpoint := endpointLabel(path)

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%s: marshal body: %w", op, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	// The token is captured once so a 401 can be matched to the session that sent it.
	token := c.session.Token()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.APIRequestDuration.WithLabelValues(method, endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			metrics.APIRequestsTotal.WithLabelValues(method, endpoint, "canceled").Inc()
			return nil, fmt.Errorf("%s: %w", op, ctxErr)
		}
		metrics.APIRequestsTotal.WithLabelValues(method, endpoint, "network").Inc()
		c.log.Error().Err(err).Str("op", op).Msg("Network error - no response received")
		return nil, fmt.Errorf("%w: %s: %w", ErrNetwork, op, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		metrics.APIRequestsTotal.WithLabelValues(method, endpoint, "network").Inc()
		return nil, fmt.Errorf("%w: %s: read body: %w", ErrNetwork, op, err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		metrics.APIRequestsTotal.WithLabelValues(method, endpoint, "ok").Inc()
		return data, nil
	}

	metrics.APIRequestsTotal.WithLabelValues(method, endpoint, fmt.Sprintf("%d", resp.StatusCode)).Inc()
	apiErr := &APIError{
		Op:         op,
		StatusCode: resp.StatusCode,
		Message:    messageFrom(data),
		Body:       data,
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		if token != "" {
			c.forceLogout(ctx, token)
		}
	case http.StatusForbidden:
		c.log.Warn().Str("op", op).Str("message", apiErr.Message).Msg("Forbidden")
	}
	return nil, apiErr
}

// forceLogout clears the session that sent token and sends the operator to
// the login screen. Only the first of several concurrent 401s does anything.
func (c *Client) forceLogout(ctx context.Context, token string) {
	if !c.session.LogoutIfToken(context.WithoutCancel(ctx), token) {
		return
	}
	metrics.ForcedLogouts.Inc()
	if c.nav == nil {
		return
	}
	if isLoginPath(c.nav.CurrentPath()) {
		return
	}
	c.nav.Navigate(LoginPath)
}

func isLoginPath(p string) bool {
	return p == LoginPath || strings.HasPrefix(p, LoginPath+"?")
}

func (c *Client) Get(ctx context.Context, path string) ([]byte, error) {
	return c.Do(ctx, http.MethodGet, path, nil)
}

func (c *Client) Post(ctx context.Context, path string, body any) ([]byte, error) {
	return c.Do(ctx, http.MethodPost, path, body)
}

func (c *Client) Put(ctx context.Context, path string, body any) ([]byte, error) {
	return c.Do(ctx, http.MethodPut, path, body)
}

func (c *Client) Delete(ctx context.Context, path string) ([]byte, error) {
	return c.Do(ctx, http.MethodDelete, path, nil)
}

func messageFrom(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}
	for _, key := range []string{"message", "error"} {
		if v := gjson.GetBytes(body, key); v.Type == gjson.String && v.String() != "" {
			return v.String()
		}
	}
	return ""
}

// endpointLabel collapses ids in path so metrics keep a bounded label set.
func endpointLabel(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	parts := strings.Split(path, "/")
	for i, p := range parts {
		if looksLikeID(p) {
			parts[i] = ":id"
		}
	}
	return strings.Join(parts, "/")
}

func looksLikeID(seg string) bool {
	if len(seg) < 8 {
		return false
	}
	for _, r := range seg {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
