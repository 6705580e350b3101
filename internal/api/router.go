package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/neexbeast/travel-recommendation/internal/render"
)

// RouterConfig carries the settings NewRouter needs beyond the handlers.
type RouterConfig struct {
	Token              string
	RateLimitPerMinute int
	Checks             map[string]Pinger
}

// NewRouter builds and returns the Chi router with all routes configured.
// Search, listing, pages and health are public; catalog reload requires bearer auth.
// Rate limiting is applied globally per IP.
func NewRouter(handlers *Handlers, cfg RouterConfig, log *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	if cfg.RateLimitPerMinute > 0 {
		r.Use(httprate.LimitByIP(cfg.RateLimitPerMinute, time.Minute))
	}

	r.Get("/", handlers.Home)
	r.Get("/search", handlers.SearchPage)
	r.Get("/reset", handlers.Reset)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(render.Static())))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", HealthHandlerFunc(handlers.store, cfg.Checks, log))
		r.Get("/search", handlers.Search)
		r.Get("/destinations", handlers.ListDestinations)

		r.Group(func(r chi.Router) {
			r.Use(BearerAuth(cfg.Token))
			r.Post("/catalog/reload", handlers.ReloadCatalog)
		})
	})

	return r
}

// Ensure chi.Mux implements http.Handler.
var _ http.Handler = (*chi.Mux)(nil)
