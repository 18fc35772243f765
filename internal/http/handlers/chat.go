package handlers

import "net/http"

type chatOpenRequest struct {
	ProductID string `json:"product_id"`
}

// ChatOpen starts (or restarts) the advisory session for a product. Any prior
// history is discarded.
func (a *App) ChatOpen(w http.ResponseWriter, r *http.Request) {
	var req chatOpenRequest
	if !a.decode(w, r, &req) {
		return
	}
	product, ok := a.Store.GetProduct(req.ProductID)
	if !ok {
		a.error(w, http.StatusNotFound, "not_found", "unknown product")
		return
	}
	a.Chat.Open(product)
	a.json(w, http.StatusOK, map[string]any{"messages": a.Chat.Messages()})
}

type chatSendRequest struct {
	Message string `json:"message"`
}

// ChatSend submits a user message. A refusal (blank input, reply in flight,
// cooldown, or no open session) is surfaced as accepted=false, not an error.
func (a *App) ChatSend(w http.ResponseWriter, r *http.Request) {
	var req chatSendRequest
	if !a.decode(w, r, &req) {
		return
	}
	accepted := a.Chat.Send(r.Context(), req.Message)
	a.json(w, http.StatusOK, map[string]any{
		"accepted": accepted,
		"messages": a.Chat.Messages(),
	})
}

// ChatMessages returns the visible conversation history.
func (a *App) ChatMessages(w http.ResponseWriter, _ *http.Request) {
	a.json(w, http.StatusOK, map[string]any{"messages": a.Chat.Messages()})
}
