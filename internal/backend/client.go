package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/five82/tubeclone/internal/catalog"
)

// Client talks to the tubeclone HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	// DefaultBaseURL is where the demo API server listens by default.
	DefaultBaseURL   = "http://127.0.0.1:5328"
	defaultUserAgent = "tubeclone/0.1"
	// DefaultTimeout bounds a single request.
	DefaultTimeout = 5 * time.Second

	maxErrorBody = 4 << 10
)

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Its Timeout bounds
// each request.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// NewClient builds a Client for base, a URL such as http://127.0.0.1:5328.
// A bare host:port is accepted and treated as http.
func NewClient(base string, opts ...Option) (*Client, error) {
	u, err := parseBaseURL(base)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   u,
		http:      &http.Client{Timeout: DefaultTimeout},
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalised base URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Health calls GET /api/health. It does not interpret the status field.
func (c *Client) Health(ctx context.Context) (HealthResponse, error) {
	var payload HealthResponse
	if err := c.do(ctx, http.MethodGet, &url.URL{Path: "/api/health"}, nil, &payload); err != nil {
		return HealthResponse{}, err
	}
	return payload, nil
}

// Videos fetches the full collection, optionally narrowed by the server's
// own search.
func (c *Client) Videos(ctx context.Context, search string) ([]catalog.Video, error) {
	rel := &url.URL{Path: "/api/videos"}
	if q := strings.TrimSpace(search); q != "" {
		rel.RawQuery = url.Values{"search": {q}}.Encode()
	}
	var items []catalog.Video
	if err := c.do(ctx, http.MethodGet, rel, nil, &items); err != nil {
		return nil, err
	}
	if items == nil {
		return nil, fmt.Errorf("%w: api %s returned null, want an array", ErrShapeMismatch, rel.Path)
	}
	if err := validateCollection(items); err != nil {
		return nil, err
	}
	return items, nil
}

// Video fetches a single record.
func (c *Client) Video(ctx context.Context, id string) (catalog.Video, error) {
	if strings.TrimSpace(id) == "" {
		return catalog.Video{}, fmt.Errorf("video id required")
	}
	rel := &url.URL{Path: "/api/videos/" + id}
	var v catalog.Video
	if err := c.do(ctx, http.MethodGet, rel, nil, &v); err != nil {
		return catalog.Video{}, err
	}
	if err := v.Validate(); err != nil {
		return catalog.Video{}, fmt.Errorf("%w: %v", ErrShapeMismatch, err)
	}
	if v.ID != id {
		return catalog.Video{}, fmt.Errorf("%w: asked for video %q, got %q", ErrShapeMismatch, id, v.ID)
	}
	return v, nil
}

// Upload creates a video and returns the record the server stored.
func (c *Client) Upload(ctx context.Context, req catalog.Upload) (catalog.Video, error) {
	var v catalog.Video
	if err := c.do(ctx, http.MethodPost, &url.URL{Path: "/api/upload"}, req, &v); err != nil {
		return catalog.Video{}, err
	}
	if err := v.Validate(); err != nil {
		return catalog.Video{}, fmt.Errorf("%w: %v", ErrShapeMismatch, err)
	}
	return v, nil
}

func (c *Client) do(ctx context.Context, method string, rel *url.URL, body, dest any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	reqURL := c.baseURL.ResolveReference(rel)

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrTransport, method, rel.Path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(rel.Path, resp)
	}
	if ct := resp.Header.Get("Content-Type"); !IsJSONContentType(ct) {
		return fmt.Errorf("%w: api %s returned content type %q", ErrProtocolMismatch, rel.Path, ct)
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: read response: %w", ErrTransport, err)
		}
		return fmt.Errorf("%w: decode response: %w", ErrShapeMismatch, err)
	}
	return nil
}

func statusError(path string, resp *http.Response) error {
	se := &StatusError{Path: path, Code: resp.StatusCode}
	if IsJSONContentType(resp.Header.Get("Content-Type")) {
		var payload ErrorResponse
		if err := json.NewDecoder(io.LimitReader(resp.Body, maxErrorBody)).Decode(&payload); err == nil {
			se.Message = payload.Error
		}
	}
	return se
}

// IsJSONContentType reports whether a Content-Type header value declares
// JSON, including structured suffixes such as application/problem+json.
func IsJSONContentType(value string) bool {
	if strings.TrimSpace(value) == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(value)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("parse base url %q: unsupported scheme %q", raw, u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse base url %q: missing host", raw)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
