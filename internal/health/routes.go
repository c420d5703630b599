package health

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Routes returns the status router. metrics is mounted at /metrics when set.
func Routes(h *Handler, metrics http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", h.ServeRoot)
	r.Head("/", h.ServeRoot)
	r.Get("/health", h.ServeHealth)
	r.Head("/health", h.ServeHealth)
	if metrics != nil {
		r.Handle("/metrics", metrics)
	}
	return r
}
