package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/five82/tubeclone/internal/catalog"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(h)
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, WithHTTPClient(&http.Client{Timeout: 2 * time.Second}))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return c
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.String() != DefaultBaseURL {
		t.Fatalf("url = %q, want %q", u.String(), DefaultBaseURL)
	}

	u, err = parseBaseURL("example.com:1234/path?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" || u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}

	for _, bad := range []string{"ftp://example.com", "http://"} {
		if _, err := parseBaseURL(bad); err == nil {
			t.Fatalf("parseBaseURL(%q) returned nil error", bad)
		}
	}
}

func TestNewClient_SharedHTTPClient(t *testing.T) {
	hc := &http.Client{Timeout: time.Second}
	c, err := NewClient("127.0.0.1:9000/api", WithHTTPClient(hc))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if c.http != hc {
		t.Fatalf("http client not replaced")
	}
	if got := c.BaseURL(); got != "http://127.0.0.1:9000" {
		t.Fatalf("BaseURL = %q, want http://127.0.0.1:9000", got)
	}
}

func TestClient_SendsJSONHeaders(t *testing.T) {
	var gotAccept, gotUA string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAccept = r.Header.Get("Accept")
		gotUA = r.Header.Get("User-Agent")
		writeJSON(w, http.StatusOK, HealthResponse{Status: "healthy", Version: "1.0.0"})
	})

	health, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("Health returned error: %v", err)
	}
	if !health.Healthy() || health.Version != "1.0.0" {
		t.Fatalf("Health = %#v, want healthy 1.0.0", health)
	}
	if gotAccept != "application/json" {
		t.Fatalf("Accept = %q, want application/json", gotAccept)
	}
	if !strings.HasPrefix(gotUA, "tubeclone/") {
		t.Fatalf("User-Agent = %q, want tubeclone/*", gotUA)
	}
}

func TestClient_VideosAndSearch(t *testing.T) {
	var gotSearch string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/videos" {
			http.NotFound(w, r)
			return
		}
		gotSearch = r.URL.Query().Get("search")
		writeJSON(w, http.StatusOK, catalog.Library())
	})

	videos, err := c.Videos(context.Background(), "  flask ")
	if err != nil {
		t.Fatalf("Videos returned error: %v", err)
	}
	if len(videos) != 5 || videos[0].ID != "1" {
		t.Fatalf("Videos = %d items, want 5 starting at id 1", len(videos))
	}
	if gotSearch != "flask" {
		t.Fatalf("search = %q, want flask", gotSearch)
	}
}

func TestClient_EmptyListIsValid(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []catalog.Video{})
	})

	videos, err := c.Videos(context.Background(), "")
	if err != nil {
		t.Fatalf("Videos returned error: %v", err)
	}
	if videos == nil || len(videos) != 0 {
		t.Fatalf("Videos = %#v, want empty non-nil slice", videos)
	}
}

func TestClient_ErrorClasses(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    error
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "boom"})
			},
			want: ErrProtocolMismatch,
		},
		{
			name: "html page",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/html")
				_, _ = io.WriteString(w, "<html></html>")
			},
			want: ErrProtocolMismatch,
		},
		{
			name: "missing content type",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header()["Content-Type"] = nil
				_, _ = io.WriteString(w, "[]")
			},
			want: ErrProtocolMismatch,
		},
		{
			name: "object instead of array",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
			},
			want: ErrShapeMismatch,
		},
		{
			name: "null body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = io.WriteString(w, "null")
			},
			want: ErrShapeMismatch,
		},
		{
			name: "record without title",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, []map[string]string{{"id": "1"}})
			},
			want: ErrShapeMismatch,
		},
		{
			name: "duplicate ids",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, []catalog.Video{{ID: "1", Title: "a"}, {ID: "1", Title: "b"}})
			},
			want: ErrShapeMismatch,
		},
		{
			name: "numeric id",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = io.WriteString(w, `[{"id": 1, "title": "a"}]`)
			},
			want: ErrShapeMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, tt.handler)
			_, err := c.Videos(context.Background(), "")
			if !errors.Is(err, tt.want) {
				t.Fatalf("Videos error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestClient_StatusErrorCarriesMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "Video not found"})
	})

	_, err := c.Video(context.Background(), "99")
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("Video error = %v, want *StatusError", err)
	}
	if se.Code != http.StatusNotFound || se.Message != "Video not found" || se.Path != "/api/videos/99" {
		t.Fatalf("StatusError = %#v", se)
	}
	if KindOf(err) != KindProtocolMismatch {
		t.Fatalf("KindOf = %q, want %q", KindOf(err), KindProtocolMismatch)
	}
}

func TestClient_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	base := server.URL
	server.Close()

	c, err := NewClient(base)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.Health(context.Background())
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("Health error = %v, want ErrTransport", err)
	}
	if KindOf(err) != KindTransport {
		t.Fatalf("KindOf = %q, want %q", KindOf(err), KindTransport)
	}
}

func TestClient_TimeoutIsTransport(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(server.Close)
	t.Cleanup(func() { close(release) })

	c, err := NewClient(server.URL, WithHTTPClient(&http.Client{Timeout: 50 * time.Millisecond}))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.Health(context.Background())
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("Health error = %v, want ErrTransport", err)
	}
}

func TestClient_VideoChecksID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, catalog.Video{ID: "2", Title: "other"})
	})

	if _, err := c.Video(context.Background(), "1"); !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("Video error = %v, want ErrShapeMismatch", err)
	}
	if _, err := c.Video(context.Background(), " "); err == nil {
		t.Fatalf("Video with empty id returned nil error")
	}
}

func TestClient_UploadPostsJSON(t *testing.T) {
	var got catalog.Upload
	var gotMethod, gotCT string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotCT = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&got)
		writeJSON(w, http.StatusCreated, catalog.Video{ID: "6", Title: got.Title, Channel: catalog.Channel{Name: got.Channel}})
	})

	v, err := c.Upload(context.Background(), catalog.Upload{Title: "New", VideoURL: "https://example.com/v.mp4", Channel: "Your Channel"})
	if err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}
	if v.ID != "6" || v.Title != "New" {
		t.Fatalf("Upload = %#v, want id 6 title New", v)
	}
	if gotMethod != http.MethodPost || gotCT != "application/json" {
		t.Fatalf("request = %s %q, want POST application/json", gotMethod, gotCT)
	}
	if got.VideoURL != "https://example.com/v.mp4" || got.Channel != "Your Channel" {
		t.Fatalf("payload = %#v", got)
	}
}

func TestIsJSONContentType(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"application/json", true},
		{"application/json; charset=utf-8", true},
		{"Application/JSON", true},
		{"application/problem+json", true},
		{"text/html", false},
		{"text/plain; charset=utf-8", false},
		{"", false},
		{";;", false},
	}
	for _, tt := range tests {
		if got := IsJSONContentType(tt.value); got != tt.want {
			t.Fatalf("IsJSONContentType(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		want Kind
	}{
		{nil, KindNone},
		{ErrTransport, KindTransport},
		{&StatusError{Path: "/x", Code: 500}, KindProtocolMismatch},
		{errors.New("other"), KindUnknown},
	}
	for _, tt := range tests {
		if got := KindOf(tt.err); got != tt.want {
			t.Fatalf("KindOf(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
