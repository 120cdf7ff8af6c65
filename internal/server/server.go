package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/five82/tubeclone/internal/backend"
	"github.com/five82/tubeclone/internal/catalog"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

const maxBodyBytes = 1 << 20

// Endpoints lists the public API, as advertised by /api/health and 404s.
var Endpoints = []string{
	"GET /api/health",
	"GET /api/videos",
	"GET /api/videos/<id>",
	"GET /api/videos/<id>/comments",
	"POST /api/videos/<id>/comments",
	"POST /api/upload",
}

// DefaultOrigins are the browser origins allowed by CORS.
var DefaultOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000", "http://localhost:3001"}

// Options configure a Server.
type Options struct {
	Logger          zerolog.Logger
	AllowedOrigins  []string
	WritesPerMinute int
	WriteBurst      int
}

// Server is the demo API.
type Server struct {
	lib     *Library
	metrics *Metrics
	log     zerolog.Logger
	router  chi.Router
}

// New builds the router around lib.
func New(lib *Library, opts Options) *Server {
	s := &Server{
		lib:     lib,
		metrics: NewMetrics(),
		log:     opts.Logger,
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = DefaultOrigins
	}
	limiter := newRateLimiter(opts.WritesPerMinute, opts.WriteBurst)

	r := chi.NewRouter()
	r.Use(requestLogger(s.log))
	r.Use(s.metrics.Middleware)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Accept", "Authorization"},
		ExposedHeaders:   []string{requestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.NotFound(s.notFound)
	r.MethodNotAllowed(s.methodNotAllowed)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.health)
		r.Get("/videos", s.listVideos)
		r.Get("/videos/{id}", s.getVideo)
		r.Get("/videos/{id}/comments", s.listComments)
		r.With(limiter.Middleware).Post("/videos/{id}/comments", s.createComment)
		r.With(limiter.Middleware).Post("/upload", s.upload)
	})

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, backend.HealthResponse{
		Status:    "healthy",
		Message:   "tubeclone API server is running",
		Version:   Version,
		Endpoints: Endpoints,
	})
}

func (s *Server) listVideos(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	videos := s.lib.Videos(search)
	if strings.TrimSpace(search) != "" {
		s.log.Debug().Str("search", search).Int("matches", len(videos)).Msg("search")
	}
	writeJSON(w, http.StatusOK, videos)
}

func (s *Server) getVideo(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	v, ok := s.lib.Video(id)
	if !ok {
		writeError(w, http.StatusNotFound, "Video with ID "+id+" not found")
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) listComments(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.lib.Comments(chi.URLParam(r, "id")))
}

type commentRequest struct {
	Content string `json:"content"`
	Author  string `json:"author"`
}

func (s *Server) createComment(w http.ResponseWriter, r *http.Request) {
	var req commentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	c, err := s.lib.AddComment(chi.URLParam(r, "id"), req.Content, req.Author)
	if errors.Is(err, errContentRequired) {
		writeError(w, http.StatusBadRequest, "Comment content is required")
		return
	}
	if err != nil {
		s.log.Error().Err(err).Msg("add comment")
		writeError(w, http.StatusInternalServerError, "Failed to add comment")
		return
	}
	s.metrics.commentsTotal.Inc()
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) upload(w http.ResponseWriter, r *http.Request) {
	var req catalog.Upload
	if !decodeBody(w, r, &req) {
		return
	}
	v, err := s.lib.Upload(req)
	if errors.Is(err, errTitleRequired) {
		writeError(w, http.StatusBadRequest, "Video title is required")
		return
	}
	if err != nil {
		s.log.Error().Err(err).Msg("upload video")
		writeError(w, http.StatusInternalServerError, "Failed to upload video")
		return
	}
	s.metrics.uploadsTotal.Inc()
	s.log.Info().Str("id", v.ID).Str("title", v.Title).Msg("video uploaded")
	writeJSON(w, http.StatusCreated, v)
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, backend.ErrorResponse{
		Error:              "Endpoint not found",
		AvailableEndpoints: Endpoints,
	})
}

func (s *Server) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
}

// decodeBody reads a JSON body into dest. An empty body leaves dest zero so
// the handler reports the missing field. It writes a 400 and returns false
// on malformed input.
func decodeBody(w http.ResponseWriter, r *http.Request, dest any) bool {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dest)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	writeError(w, http.StatusBadRequest, "Invalid JSON body")
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, backend.ErrorResponse{Error: msg})
}
