package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/riii111/DevTrackr-sub000/internal/infrastructure/http/handlers"
	"github.com/riii111/DevTrackr-sub000/internal/infrastructure/http/middleware"
)

type RouterConfig struct {
	AuthHandler    *handlers.AuthHandler
	ProjectHandler *handlers.ProjectHandler
	WorkLogHandler *handlers.WorkLogHandler
	HealthHandler  *handlers.HealthHandler
	RequireJWT     func(http.Handler) http.Handler
	Log            zerolog.Logger
	Secure         func(http.Handler) http.Handler
	IPRateLimit    func(http.Handler) http.Handler
	Metrics        bool // expose /metrics
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimid.RequestID)
	r.Use(chimid.RealIP)
	r.Use(loggerMiddleware(cfg.Log))
	r.Use(chimid.Recoverer)
	if cfg.Metrics {
		r.Use(middleware.PrometheusMiddleware)
	}
	if cfg.Secure != nil {
		r.Use(cfg.Secure)
	}
	r.Use(chimid.AllowContentType("application/json"))
	if cfg.IPRateLimit != nil {
		r.Use(cfg.IPRateLimit)
	}

	if cfg.HealthHandler != nil {
		r.Get("/health", cfg.HealthHandler.ServeHTTP)
	} else {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
	}
	if cfg.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login/", cfg.AuthHandler.Login)
			r.Post("/register/", cfg.AuthHandler.Register)
			r.Post("/logout/", cfg.AuthHandler.Logout)
			r.Post("/refresh/", cfg.AuthHandler.Refresh)
		})

		r.Group(func(r chi.Router) {
			if cfg.RequireJWT != nil {
				r.Use(cfg.RequireJWT)
			}
			r.Route("/projects", func(r chi.Router) {
				r.Post("/", cfg.ProjectHandler.Create)
				r.Get("/{id}", cfg.ProjectHandler.Get)
			})
			r.Route("/work-logs", func(r chi.Router) {
				r.Post("/", cfg.WorkLogHandler.Create)
				r.Put("/{id}", cfg.WorkLogHandler.Update)
			})
		})
	})

	return r
}

func loggerMiddleware(log zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := chimid.GetReqID(r.Context())
			log.Info().
				Str("request_id", reqID).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("request")
			next.ServeHTTP(w, r)
		})
	}
}
