package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/tubeclone/internal/backend"
	"github.com/five82/tubeclone/internal/catalog"
)

func newTestServer(t *testing.T, opts Options) *httptest.Server {
	t.Helper()
	opts.Logger = zerolog.Nop()
	ts := httptest.NewServer(New(NewLibrary(), opts))
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url, body string, dest any) *http.Response {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, rdr)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	if dest != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
	}
	return resp
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, Options{})

	var health backend.HealthResponse
	resp := doJSON(t, http.MethodGet, ts.URL+"/api/health", "", &health)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.True(t, health.Healthy())
	assert.Equal(t, Version, health.Version)
	assert.Equal(t, Endpoints, health.Endpoints)
	assert.NotEmpty(t, resp.Header.Get(requestIDHeader))
}

func TestListVideos(t *testing.T) {
	ts := newTestServer(t, Options{})

	var all []catalog.Video
	doJSON(t, http.MethodGet, ts.URL+"/api/videos", "", &all)
	assert.Len(t, all, len(catalog.Library()))

	var hits []catalog.Video
	doJSON(t, http.MethodGet, ts.URL+"/api/videos?search=react", "", &hits)
	require.Len(t, hits, 1)
	assert.Equal(t, "3", hits[0].ID)

	// Channel names are searched too.
	doJSON(t, http.MethodGet, ts.URL+"/api/videos?search=codemaster", "", &hits)
	require.Len(t, hits, 1)
	assert.Equal(t, "2", hits[0].ID)
}

func TestListVideosNoMatchIsEmptyArray(t *testing.T) {
	ts := newTestServer(t, Options{})

	resp, err := http.Get(ts.URL + "/api/videos?search=zzzz")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "[]", strings.TrimSpace(string(body)))
}

func TestGetVideo(t *testing.T) {
	ts := newTestServer(t, Options{})

	var v catalog.Video
	resp := doJSON(t, http.MethodGet, ts.URL+"/api/videos/4", "", &v)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Database Design Fundamentals", v.Title)

	var e backend.ErrorResponse
	resp = doJSON(t, http.MethodGet, ts.URL+"/api/videos/999", "", &e)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Video with ID 999 not found", e.Error)
}

func TestComments(t *testing.T) {
	ts := newTestServer(t, Options{})

	var comments []catalog.Comment
	doJSON(t, http.MethodGet, ts.URL+"/api/videos/1/comments", "", &comments)
	assert.Len(t, comments, 3)

	var created catalog.Comment
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/videos/1/comments", `{"content":"nice"}`, &created)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "c5", created.ID)
	assert.Equal(t, "Anonymous", created.Author)
	assert.Equal(t, "just now", created.Timestamp)

	doJSON(t, http.MethodGet, ts.URL+"/api/videos/1/comments", "", &comments)
	require.Len(t, comments, 4)
	assert.Equal(t, "nice", comments[3].Content)

	var empty []catalog.Comment
	doJSON(t, http.MethodGet, ts.URL+"/api/videos/5/comments", "", &empty)
	assert.Empty(t, empty)
}

func TestCreateCommentValidation(t *testing.T) {
	ts := newTestServer(t, Options{})

	tests := []struct {
		name string
		body string
		want string
	}{
		{"empty content", `{"content":"   "}`, "Comment content is required"},
		{"missing body", "", "Comment content is required"},
		{"malformed", `{"content":`, "Invalid JSON body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e backend.ErrorResponse
			resp := doJSON(t, http.MethodPost, ts.URL+"/api/videos/1/comments", tt.body, &e)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, tt.want, e.Error)
		})
	}
}

func TestUpload(t *testing.T) {
	ts := newTestServer(t, Options{})

	var v catalog.Video
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/upload",
		`{"title":"My Clip","description":"d","videoUrl":"https://example.com/a.mp4"}`, &v)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "6", v.ID)
	assert.Equal(t, "My Clip", v.Title)
	assert.Equal(t, "Your Channel", v.Channel.Name)
	assert.Equal(t, "0", v.Views)
	assert.Equal(t, "https://example.com/a.mp4", v.VideoURL)

	var got catalog.Video
	doJSON(t, http.MethodGet, ts.URL+"/api/videos/6", "", &got)
	assert.Equal(t, v, got)

	var e backend.ErrorResponse
	resp = doJSON(t, http.MethodPost, ts.URL+"/api/upload", `{"description":"no title"}`, &e)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Video title is required", e.Error)
}

func TestUnknownEndpoint(t *testing.T) {
	ts := newTestServer(t, Options{})

	var e backend.ErrorResponse
	resp := doJSON(t, http.MethodGet, ts.URL+"/api/nope", "", &e)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Endpoint not found", e.Error)
	assert.Equal(t, Endpoints, e.AvailableEndpoints)

	resp = doJSON(t, http.MethodDelete, ts.URL+"/api/health", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestCORS(t *testing.T) {
	ts := newTestServer(t, Options{})

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/api/videos", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))

	req, err = http.NewRequest(http.MethodGet, ts.URL+"/api/videos", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://evil.example")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestWriteRateLimit(t *testing.T) {
	ts := newTestServer(t, Options{WritesPerMinute: 1, WriteBurst: 2})

	for i := 0; i < 2; i++ {
		resp := doJSON(t, http.MethodPost, ts.URL+"/api/videos/1/comments", `{"content":"x"}`, nil)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	}
	var e backend.ErrorResponse
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/videos/1/comments", `{"content":"x"}`, &e)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "60", resp.Header.Get("Retry-After"))
	assert.NotEmpty(t, e.Error)

	// Reads are never limited.
	resp = doJSON(t, http.MethodGet, ts.URL+"/api/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestWriteRateLimit_IgnoresForwardedFor(t *testing.T) {
	ts := newTestServer(t, Options{WritesPerMinute: 1, WriteBurst: 1})

	post := func(forwarded string) int {
		req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/videos/1/comments", strings.NewReader(`{"content":"x"}`))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Forwarded-For", forwarded)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		return resp.StatusCode
	}

	assert.Equal(t, http.StatusCreated, post("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, post("10.0.0.2"))
	assert.Equal(t, http.StatusTooManyRequests, post("10.0.0.3"))
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t, Options{})

	doJSON(t, http.MethodGet, ts.URL+"/api/videos/1", "", nil)
	doJSON(t, http.MethodPost, ts.URL+"/api/upload", `{"title":"t"}`, nil)

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	text := string(body)
	assert.Contains(t, text, `tubeclone_api_requests_total{method="GET",route="/api/videos/{id}",status="200"} 1`)
	assert.Contains(t, text, "tubeclone_api_uploads_total 1")
}

func TestClientAgainstServer(t *testing.T) {
	ts := newTestServer(t, Options{})
	client, err := backend.NewClient(ts.URL)
	require.NoError(t, err)
	ctx := context.Background()

	health, err := client.Health(ctx)
	require.NoError(t, err)
	assert.True(t, health.Healthy())

	videos, err := client.Videos(ctx, "python")
	require.NoError(t, err)
	assert.NotEmpty(t, videos)

	_, err = client.Video(ctx, "404")
	require.Error(t, err)
	var se *backend.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.Code)
	assert.Equal(t, backend.KindProtocolMismatch, backend.KindOf(err))

	v, err := client.Upload(ctx, catalog.Upload{Title: "From client", VideoURL: "https://example.com/v.mp4"})
	require.NoError(t, err)
	assert.Equal(t, "From client", v.Title)
}
