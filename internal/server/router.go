package server

import (
	"net/http"

	"github.com/cloo-solutions/docsum/internal/api"
	"github.com/cloo-solutions/docsum/internal/api/handlers"
	"github.com/cloo-solutions/docsum/internal/api/middleware"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// DefaultMaxBodyBytes caps uploads when RouterConfig.MaxBodyBytes is unset.
const DefaultMaxBodyBytes int64 = 50 * 1024 * 1024

type RouterConfig struct {
	SummaryHandler *handlers.SummaryHandler
	Logger         *zap.Logger
	MaxBodyBytes   int64
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	maxBodyBytes := cfg.MaxBodyBytes
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}

	r.Use(middleware.RequestID)
	r.Use(middleware.SentryMiddleware)
	r.Use(middleware.AccessLog(logger))
	r.Use(middleware.CORS)
	r.Use(middleware.MaxBodyBytes(maxBodyBytes))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		api.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/summarize", func(r chi.Router) {
		r.Post("/", cfg.SummaryHandler.Summarize)
		r.Post("/pptx", cfg.SummaryHandler.SummarizePPTX)
	})
	r.Get("/summarization/{id}", cfg.SummaryHandler.Get)
	r.Get("/pdf-length", cfg.SummaryHandler.PDFLength)

	return r
}
