package api

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/neexbeast/travel-recommendation/internal/render"
	"github.com/neexbeast/travel-recommendation/internal/search"
)

// writePage renders p into a buffer first so a template error never leaves a half-written page.
func (h *Handlers) writePage(w http.ResponseWriter, status int, p render.Page) {
	var buf bytes.Buffer
	if err := render.WritePage(&buf, p); err != nil {
		h.log.Error("page render failed", "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// Home handles GET /.
func (h *Handlers) Home(w http.ResponseWriter, _ *http.Request) {
	h.writePage(w, http.StatusOK, render.Page{})
}

// SearchPage handles GET /search?q=... and renders result cards.
// A blank query re-renders the form with an alert and performs no filtering.
func (h *Handlers) SearchPage(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("q")

	res, err := h.runSearch(r.Context(), raw)
	if errors.Is(err, search.ErrEmptyQuery) {
		h.writePage(w, http.StatusOK, render.Page{Input: raw, Alert: render.EmptyQueryAlert})
		return
	}
	if err != nil {
		h.log.Error("search failed", "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.writePage(w, http.StatusOK, render.Page{Input: raw, Results: render.NewResultsView(res)})
}

// Reset handles GET /reset: empty input, no results. The catalog is not touched.
func (h *Handlers) Reset(w http.ResponseWriter, _ *http.Request) {
	h.writePage(w, http.StatusOK, render.Page{})
}
