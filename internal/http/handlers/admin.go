package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"storefront/internal/domain"
)

// Finance reports the day's revenue and costs plus the bank balance and
// payout history.
func (a *App) Finance(w http.ResponseWriter, _ *http.Request) {
	revenue, costs, balance := a.Store.Finance()
	a.json(w, http.StatusOK, map[string]any{
		"daily_revenue": revenue,
		"daily_costs":   costs,
		"bank_balance":  balance,
		"payouts":       a.Store.Payouts(),
	})
}

// PayoutTrigger transfers the day's profit to the bank balance.
func (a *App) PayoutTrigger(w http.ResponseWriter, _ *http.Request) {
	payout, ok := a.Store.Payout()
	if !ok {
		a.error(w, http.StatusConflict, "no_profit", "no positive profit to pay out")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"payout": payout})
}

type saleRequest struct {
	DiscountPercent float64 `json:"discount_percent"`
	Slogan          string  `json:"slogan"`
}

// SetSale puts a product on sale.
func (a *App) SetSale(w http.ResponseWriter, r *http.Request) {
	var req saleRequest
	if !a.decode(w, r, &req) {
		return
	}
	if req.DiscountPercent <= 0 || req.DiscountPercent >= 100 {
		a.error(w, http.StatusBadRequest, "bad_request", "discount_percent must be between 0 and 100")
		return
	}
	id := chi.URLParam(r, "id")
	if err := a.Store.SetSale(id, req.DiscountPercent, req.Slogan); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "unknown product")
			return
		}
		a.error(w, http.StatusInternalServerError, "internal", "failed to set sale")
		return
	}
	product, _ := a.Store.GetProduct(id)
	a.json(w, http.StatusOK, map[string]any{"product": product})
}

// ClearSale takes a product off sale.
func (a *App) ClearSale(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := a.Store.ClearSale(id); err != nil {
		a.error(w, http.StatusNotFound, "not_found", "unknown product")
		return
	}
	product, _ := a.Store.GetProduct(id)
	a.json(w, http.StatusOK, map[string]any{"product": product})
}

// MarketingPosts returns the marketing feed, newest-first.
func (a *App) MarketingPosts(w http.ResponseWriter, _ *http.Request) {
	a.json(w, http.StatusOK, map[string]any{"posts": a.Store.Posts()})
}
