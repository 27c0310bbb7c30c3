// Package server exposes the answer pipeline over HTTP. It owns request
// validation and error-to-status-code mapping; the pipeline itself lives in
// pkg/service.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/zen-systems/pollgate/pkg/service"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

const serviceName = "pollgate"

// Server handles HTTP requests for the poll answering service.
type Server struct {
	svc *service.Service
}

// New creates a server around the given service.
func New(svc *service.Service) *Server {
	return &Server{svc: svc}
}

// Router builds the HTTP handler with all routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	r.Use(requestLogger)

	r.Get("/health", s.handleHealth)
	r.Post("/answer-questions", s.handleAnswerQuestions)
	r.Post("/test-question", s.handleTestQuestion)
	r.Get("/stats", s.handleStats)
	r.Post("/stats/reset", s.handleResetStats)
	r.NotFound(s.handleNotFound)

	return r
}

// requestLogger logs each request through the global zap logger.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		zap.L().Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// writeJSON encodes body to the response. The status line is already gone by
// the time encoding can fail, so a failure is logged rather than remapped.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zap.L().Error("response encode failed", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
