// Package server assembles the HTTP router and middleware chain.
package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/crosswatch-systems/crosswatch/internal/handlers"
	"github.com/crosswatch-systems/crosswatch/internal/middleware"
	"github.com/crosswatch-systems/crosswatch/internal/ratelimit"
)

// Options configure the middleware applied to /api/v1 routes. Health and
// metrics endpoints are never authenticated or rate limited.
type Options struct {
	APIKey         string
	Limiter        ratelimit.Limiter
	AllowedOrigins []string
}

// NewRouter constructs the full route table with middleware applied.
func NewRouter(h *handlers.Handler, opts Options) http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("GET /api/v1/stories", h.ListStories)
	api.HandleFunc("POST /api/v1/stories", h.ReplaceStories)
	api.HandleFunc("GET /api/v1/stories/{id}", h.GetStory)
	api.HandleFunc("GET /api/v1/signals", h.ListSignals)
	api.HandleFunc("POST /api/v1/analyze", h.RunAnalysis)
	api.HandleFunc("GET /api/v1/export", h.Export)

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	cors := middleware.CORS(middleware.CORSConfig{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-API-Key"},
	})

	limiter := opts.Limiter
	if limiter == nil {
		limiter = &ratelimit.NoOpLimiter{}
	}

	var apiHandler http.Handler = api
	apiHandler = middleware.RateLimit(limiter)(apiHandler)
	apiHandler = middleware.APIKeyAuth(opts.APIKey)(apiHandler)
	apiHandler = cors(apiHandler)
	apiHandler = middleware.RequestID(apiHandler)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", h.Health)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.Handle("/api/v1/", apiHandler)

	return mux
}
