package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"storefront/internal/recommend"
)

// Products lists the published catalog.
func (a *App) Products(w http.ResponseWriter, _ *http.Request) {
	a.json(w, http.StatusOK, map[string]any{"products": a.Store.ListPublished()})
}

// ProductView records a storefront view event for a product. Repeat views in
// the same session are accepted but not counted.
func (a *App) ProductView(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := a.Store.GetProduct(id); !ok {
		a.error(w, http.StatusNotFound, "not_found", "unknown product")
		return
	}
	counted := a.Store.RecordView(id)
	a.json(w, http.StatusOK, map[string]any{"counted": counted})
}

// Recommendations recomputes and returns the featured feed. The result is
// derived on every call so catalog and order changes are always reflected.
func (a *App) Recommendations(w http.ResponseWriter, _ *http.Request) {
	recs := recommend.Compute(a.Store.ListPublished(), a.Store.Orders())
	a.json(w, http.StatusOK, map[string]any{"recommendations": recs})
}
