package handlers

import "net/http"

// Activity returns the session feed, newest-first, capped at 100 entries.
func (a *App) Activity(w http.ResponseWriter, _ *http.Request) {
	a.json(w, http.StatusOK, map[string]any{"entries": a.Feed.Entries()})
}
