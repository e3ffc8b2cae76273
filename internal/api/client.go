// Package api is the client for the marketplace REST API.
//
// The API is split by role: Admin, ACC (accreditation body) and
// TrainingCenter namespaces expose the same verbs under different path
// prefixes. List calls return a pagination.Envelope so callers never sniff
// response shapes themselves.
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
	"strings"
	"time"

	"github.com/JonMunkholm/accreditation-console/internal/logging"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// maxBodySize caps how much of a response body is read.
const maxBodySize = 32 << 20

// Config configures a Client.
type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration

	// RatePerSecond and Burst bound outbound requests. Zero disables the limit.
	RatePerSecond float64
	Burst         int

	UserAgent  string
	HTTPClient *http.Client
}

// Client talks to the marketplace API. It is safe for concurrent use.
type Client struct {
	base      *url.URL
	token     string
	userAgent string
	http      *http.Client
	limiter   *rate.Limiter
}

// New validates cfg and returns a client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("api: base URL is required")
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("api: parse base URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("api: base URL must be http or https, got %q", cfg.BaseURL)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	c := &Client{
		base:      base,
		token:     cfg.Token,
		userAgent: cfg.UserAgent,
		http:      httpClient,
	}
	if c.userAgent == "" {
		c.userAgent = "accreditation-console"
	}
	if cfg.RatePerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), burst)
	}
	return c, nil
}

// Admin returns the platform administrator namespace.
func (c *Client) Admin() Namespace {
	return Namespace{c: c, name: NamespaceAdmin, prefix: "admin"}
}

// ACC returns the accreditation body namespace.
func (c *Client) ACC() Namespace {
	return Namespace{c: c, name: NamespaceACC, prefix: "acc"}
}

// TrainingCenter returns the training center namespace.
func (c *Client) TrainingCenter() Namespace {
	return Namespace{c: c, name: NamespaceTrainingCenter, prefix: "training-center"}
}

// Namespace returns the namespace with the given name.
func (c *Client) Namespace(name string) (Namespace, error) {
	switch name {
	case NamespaceAdmin:
		return c.Admin(), nil
	case NamespaceACC:
		return c.ACC(), nil
	case NamespaceTrainingCenter:
		return c.TrainingCenter(), nil
	}
	return Namespace{}, fmt.Errorf("api: unknown namespace %q", name)
}

// do sends one request. body, when non-nil, is JSON encoded. The raw
// response body is returned for 2xx responses; other statuses yield *Error.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("api: rate limit wait: %w", err)
		}
	}

	// path is already escaped per segment. Keeping it in RawPath stops an
	// escaped id from being escaped a second time by u.String().
	u := *c.base
	u.RawPath = strings.TrimRight(c.base.EscapedPath(), "/") + "/" + strings.TrimLeft(path, "/")
	decoded, err := url.PathUnescape(u.RawPath)
	if err != nil {
		return nil, fmt.Errorf("api: build path: %w", err)
	}
	u.Path = decoded
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("api: encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("api: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	reqID := middleware.GetReqID(ctx)
	if reqID == "" {
		reqID = uuid.NewString()
	}
	req.Header.Set("X-Request-ID", reqID)

	logger := logging.FromContext(ctx)
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		logger.Warn("api request failed", "method", method, "path", u.Path, "error", err)
		return nil, fmt.Errorf("api: %s %s: %w", method, u.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("api: read response: %w", err)
	}

	logger.Debug("api request",
		"method", method,
		"path", u.Path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeError(resp.StatusCode, data)
	}
	return data, nil
}
