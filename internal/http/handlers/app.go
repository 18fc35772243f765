// Package handlers exposes the storefront engine over HTTP. The handlers are
// a thin JSON layer; the workflows and invariants live in the internal
// packages they delegate to.
package handlers

import (
	"encoding/json"
	"net/http"

	"storefront/internal/activity"
	"storefront/internal/copilot"
	"storefront/internal/infra"
	"storefront/internal/store"
)

// App is the handler container wiring the HTTP surface to the engine.
type App struct {
	Store        *store.Store
	Orchestrator *copilot.Orchestrator
	Chat         *copilot.ChatSession
	Feed         *activity.Log
	Logger       infra.Logger
}

// NewApp builds the handler container.
func NewApp(st *store.Store, orch *copilot.Orchestrator, chat *copilot.ChatSession, feed *activity.Log, logger infra.Logger) *App {
	return &App{Store: st, Orchestrator: orch, Chat: chat, Feed: feed, Logger: logger}
}

// Health reports liveness.
func (a *App) Health(w http.ResponseWriter, _ *http.Request) {
	a.json(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, map[string]string{"error": code, "message": message})
}

func (a *App) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return false
	}
	return true
}
