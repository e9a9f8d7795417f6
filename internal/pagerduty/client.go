package pagerduty

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jdcasey/myshift/internal/domain"
)

const (
	// clientTimeout is the total per-request timeout.
	clientTimeout = 30 * time.Second
	// dialTimeout is the connection timeout.
	dialTimeout = 10 * time.Second

	defaultMaxAttempts = 3
	defaultBackoffBase = 2 * time.Second

	// maxErrorBody caps how much of an error response is kept for messages.
	maxErrorBody = 2 << 10

	userAgent = "myshift/" + Version
)

// Version of the client, sent as the User-Agent suffix.
const Version = "0.3.1"

// Client is a minimal typed client for the PagerDuty REST API v2.
// It owns bounded retry for transient conditions (network errors, 429,
// 5xx); permanent failures surface as *APIError without retry.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
	log     *zap.Logger

	maxAttempts int
	backoffBase time.Duration
}

// New creates a Client for the given API base URL and token.
func New(baseURL, token string, log *zap.Logger) *Client {
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		token:       token,
		httpc:       newHTTPClient(),
		log:         log,
		maxAttempts: defaultMaxAttempts,
		backoffBase: defaultBackoffBase,
	}
}

// newHTTPClient builds an HTTP client with explicit timeouts. Redirects
// are not followed: the API never legitimately redirects, and following
// one would resend the Authorization header elsewhere.
func newHTTPClient() *http.Client {
	return &http.Client{
		Timeout: clientTimeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   dialTimeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout:   10 * time.Second,
			ResponseHeaderTimeout: 15 * time.Second,
			MaxIdleConns:          10,
			IdleConnTimeout:       90 * time.Second,
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// APIError is a permanent upstream rejection. Unwrap maps the HTTP
// status onto the domain error kinds so callers can errors.Is on them.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("pagerduty: HTTP %d", e.Status)
	}
	return fmt.Sprintf("pagerduty: HTTP %d: %s", e.Status, e.Body)
}

func (e *APIError) Unwrap() error {
	switch {
	case e.Status == http.StatusNotFound:
		return domain.ErrNotFound
	case e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden:
		return domain.ErrForbidden
	case e.Status >= 400 && e.Status < 500:
		return domain.ErrInvalidRequest
	default:
		return domain.ErrUpstreamUnavailable
	}
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, q, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

// do issues one API call with bounded retry. The request body (if any)
// is marshaled once and replayed per attempt.
func (c *Client) do(ctx context.Context, method, path string, q url.Values, body, out any) error {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal %s %s: %w", method, path, err)
		}
	}

	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if attempt > 1 {
			if err := c.backoff(ctx, attempt); err != nil {
				return err
			}
		}

		var rd io.Reader
		if payload != nil {
			rd = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, u, rd)
		if err != nil {
			return fmt.Errorf("build %s %s: %w", method, path, err)
		}
		reqID := uuid.NewString()
		req.Header.Set("Authorization", "Token token="+c.token)
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("X-Request-Id", reqID)
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpc.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			c.log.Warn("request failed",
				zap.String("method", method),
				zap.String("path", path),
				zap.String("request_id", reqID),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			continue
		}

		data, readErr := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
		_ = resp.Body.Close()

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			if readErr != nil {
				lastErr = readErr
				continue
			}
			if out == nil {
				return nil
			}
			if err := json.Unmarshal(data, out); err != nil {
				return fmt.Errorf("decode %s %s: %w", method, path, err)
			}
			return nil

		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			lastErr = &APIError{Status: resp.StatusCode, Body: snippet(data)}
			c.log.Warn("transient status",
				zap.String("method", method),
				zap.String("path", path),
				zap.String("request_id", reqID),
				zap.Int("status", resp.StatusCode),
				zap.Int("attempt", attempt),
			)
			continue

		default:
			return &APIError{Status: resp.StatusCode, Body: snippet(data)}
		}
	}

	return fmt.Errorf("%w: %s %s after %d attempts: %v",
		domain.ErrUpstreamUnavailable, method, path, c.maxAttempts, lastErr)
}

// backoff sleeps before retry attempt n (2, 3, ...), doubling each time.
func (c *Client) backoff(ctx context.Context, attempt int) error {
	d := c.backoffBase << (attempt - 2)
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

func snippet(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > maxErrorBody {
		s = s[:maxErrorBody] + "..."
	}
	return s
}
