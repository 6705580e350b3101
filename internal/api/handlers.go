package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/neexbeast/travel-recommendation/internal/destination"
	"github.com/neexbeast/travel-recommendation/internal/render"
	"github.com/neexbeast/travel-recommendation/internal/search"
)

// Handlers holds the dependencies for all HTTP handlers.
type Handlers struct {
	store  CatalogStore
	loader CatalogLoader
	cache  ResultCache
	log    *slog.Logger
}

// NewHandlers constructs Handlers. A nil cache disables result caching.
func NewHandlers(store CatalogStore, loader CatalogLoader, cache ResultCache, log *slog.Logger) *Handlers {
	if cache == nil {
		cache = nopCache{}
	}
	return &Handlers{
		store:  store,
		loader: loader,
		cache:  cache,
		log:    log,
	}
}

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// writeJSON encodes v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg, code string) {
	writeJSON(w, status, errorBody{Error: msg, Code: code})
}

// runSearch searches the current snapshot, consulting the cache first.
// Cache failures are logged and never fail the search.
func (h *Handlers) runSearch(ctx context.Context, raw string) (search.Result, error) {
	q := search.Normalize(raw)
	if q == "" {
		return search.Result{}, search.ErrEmptyQuery
	}

	snap := h.store.Snapshot()

	cached, err := h.cache.Get(ctx, snap.Version, q)
	if err != nil {
		h.log.Warn("cache get failed", "query", q, "err", err)
	}
	if cached != nil {
		return *cached, nil
	}

	res, err := search.Search(q, snap.Destinations)
	if err != nil {
		return search.Result{}, err
	}

	if err := h.cache.Set(ctx, snap.Version, q, &res); err != nil {
		h.log.Warn("cache set failed", "query", q, "err", err)
	}
	return res, nil
}

// Search handles GET /api/v1/search?q=...
func (h *Handlers) Search(w http.ResponseWriter, r *http.Request) {
	res, err := h.runSearch(r.Context(), r.URL.Query().Get("q"))
	if errors.Is(err, search.ErrEmptyQuery) {
		h.log.Debug("empty search query rejected")
		writeError(w, http.StatusBadRequest, render.EmptyQueryAlert, "EMPTY_QUERY")
		return
	}
	if err != nil {
		h.log.Error("search failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error", "INTERNAL")
		return
	}

	h.log.Info("search completed", "query", res.Query, "total", res.Total, "shown", len(res.Destinations))
	writeJSON(w, http.StatusOK, res)
}

// ListDestinations handles GET /api/v1/destinations.
func (h *Handlers) ListDestinations(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Snapshot())
}

type reloadResponse struct {
	Version      uint64         `json:"version"`
	Destinations int            `json:"destinations"`
	ByType       map[string]int `json:"by_type"`
	LoadedAt     time.Time      `json:"loaded_at"`
}

// ReloadCatalog handles POST /api/v1/catalog/reload.
// On failure the current collection keeps serving.
func (h *Handlers) ReloadCatalog(w http.ResponseWriter, r *http.Request) {
	snap, err := h.loader.Load(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, "failed to load travel recommendations", "LOAD_FAILURE")
		return
	}

	writeJSON(w, http.StatusOK, reloadResponse{
		Version:      snap.Version,
		Destinations: snap.Len(),
		ByType:       countByType(snap.Destinations),
		LoadedAt:     snap.LoadedAt,
	})
}

func countByType(ds []destination.Destination) map[string]int {
	counts := map[string]int{
		string(destination.KindCity):   0,
		string(destination.KindTemple): 0,
		string(destination.KindBeach):  0,
	}
	for _, d := range ds {
		counts[string(d.Type)]++
	}
	return counts
}

// HealthHandlerFunc returns an http.HandlerFunc that probes every configured dependency.
// Returns 200 if all respond, 503 otherwise. The catalog itself is reported but never fails the check.
func HealthHandlerFunc(store CatalogStore, checks map[string]Pinger, log *slog.Logger) http.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		status := http.StatusOK
		body := map[string]any{}

		for _, name := range names {
			if err := checks[name].Ping(ctx); err != nil {
				log.Error("health check: ping failed", "dependency", name, "err", err)
				body[name] = "error"
				status = http.StatusServiceUnavailable
				continue
			}
			body[name] = "ok"
		}

		snap := store.Snapshot()
		body["catalog_version"] = snap.Version
		body["destinations"] = snap.Len()

		if status == http.StatusOK {
			body["status"] = "ok"
		} else {
			body["status"] = "degraded"
		}
		writeJSON(w, status, body)
	}
}
