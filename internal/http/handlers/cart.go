package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"storefront/internal/domain"
)

type cartAddRequest struct {
	ProductID string `json:"product_id"`
}

// CartAdd puts one unit of a published product in the cart.
func (a *App) CartAdd(w http.ResponseWriter, r *http.Request) {
	var req cartAddRequest
	if !a.decode(w, r, &req) {
		return
	}
	if req.ProductID == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "product_id required")
		return
	}
	if err := a.Store.AddToCart(req.ProductID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "unknown product")
			return
		}
		a.error(w, http.StatusInternalServerError, "internal", "failed to add to cart")
		return
	}
	a.cartState(w)
}

// CartRemove drops a product from the cart.
func (a *App) CartRemove(w http.ResponseWriter, r *http.Request) {
	a.Store.RemoveFromCart(chi.URLParam(r, "id"))
	a.cartState(w)
}

// Cart returns the cart contents and total.
func (a *App) Cart(w http.ResponseWriter, _ *http.Request) {
	a.cartState(w)
}

func (a *App) cartState(w http.ResponseWriter) {
	a.json(w, http.StatusOK, map[string]any{
		"items": a.Store.CartItems(),
		"total": a.Store.CartTotal(),
	})
}

// CheckoutConfirm commits the simulated payment: the cart becomes an order
// and the day's revenue grows by the total.
func (a *App) CheckoutConfirm(w http.ResponseWriter, _ *http.Request) {
	order, err := a.Store.ConfirmPayment()
	if err != nil {
		a.error(w, http.StatusBadRequest, "empty_cart", "nothing to check out")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"order": order})
}

// Orders returns the session's order history, newest-first.
func (a *App) Orders(w http.ResponseWriter, _ *http.Request) {
	a.json(w, http.StatusOK, map[string]any{"orders": a.Store.Orders()})
}
