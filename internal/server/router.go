package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"keypad-calculator/internal/calculator"
	"keypad-calculator/internal/handlers"
	"keypad-calculator/internal/observability"
)

// Deps are the collaborators mounted by NewRouter.
type Deps struct {
	Calculator *calculator.Handler
	Registry   *prometheus.Registry
}

func NewRouter(deps Deps) http.Handler {

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(observability.RequestIDMiddleware)
	r.Use(observability.TracingMiddleware)
	r.Use(observability.LoggingMiddleware)

	r.Get("/health", handlers.Health)

	reg := deps.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	r.Handle("/metrics", observability.PrometheusHandler(reg))

	if deps.Calculator != nil {
		calculator.RegisterRoutes(r, deps.Calculator)
	}

	return r
}
