// Package httpapi exposes the question generation engine over HTTP:
// document upload, text extraction, and batch generation endpoints.
package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/abhisek/quizforge/internal/config"
	"github.com/abhisek/quizforge/internal/quizgen"
)

// Server serves the QuizForge HTTP API.
type Server struct {
	cfg    config.Config
	engine quizgen.Generator // nil when no model provider is configured
	router chi.Router
}

// New builds a Server. engine may be nil, in which case every request is
// served by the fallback synthesizer.
func New(cfg config.Config, engine quizgen.Generator) *Server {
	s := &Server{cfg: cfg, engine: engine}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)
	r.Get("/health-impacts", s.handleHealthImpacts)
	r.Post("/upload", s.handleUpload)
	r.Post("/generate-questions", s.handleGenerate)
	r.Post("/upload-and-generate", s.handleUploadAndGenerate)

	s.router = r
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}
