package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"storefront/internal/copilot"
	"storefront/internal/domain"
)

// DraftsGenerate triggers the draft generation workflow. A refusal (busy or
// cooling) is not an error: the operator sees a disabled action.
func (a *App) DraftsGenerate(w http.ResponseWriter, r *http.Request) {
	accepted := a.Orchestrator.GenerateDrafts(r.Context())
	a.json(w, http.StatusAccepted, map[string]any{
		"accepted": accepted,
		"drafts":   a.Store.Drafts(),
	})
}

// Drafts lists the pending draft set.
func (a *App) Drafts(w http.ResponseWriter, _ *http.Request) {
	a.json(w, http.StatusOK, map[string]any{"drafts": a.Store.Drafts()})
}

// DraftPublish runs the publish pipeline for one draft.
func (a *App) DraftPublish(w http.ResponseWriter, r *http.Request) {
	err := a.Orchestrator.Publish(r.Context(), chi.URLParam(r, "id"))
	switch {
	case errors.Is(err, copilot.ErrCoolingDown):
		a.json(w, http.StatusAccepted, map[string]any{"accepted": false, "reason": "cooldown"})
	case errors.Is(err, domain.ErrCopilotBusy):
		a.error(w, http.StatusConflict, "busy", "AI is busy with another task")
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", "unknown draft")
	case errors.Is(err, domain.ErrDraftIncomplete):
		a.error(w, http.StatusBadRequest, "bad_request", "draft needs a name and description")
	case err != nil:
		a.error(w, http.StatusInternalServerError, "internal", "publish failed to start")
	default:
		// The pipeline ran; stage outcomes are visible via status, the
		// activity feed, and the product's image state.
		task, cooling, lastError := a.Orchestrator.Status()
		a.json(w, http.StatusOK, map[string]any{
			"active_task": task,
			"cooling":     cooling,
			"last_error":  lastError,
			"products":    a.Store.ListPublished(),
		})
	}
}

// DraftReject removes a draft without publishing it.
func (a *App) DraftReject(w http.ResponseWriter, r *http.Request) {
	if !a.Orchestrator.Reject(chi.URLParam(r, "id")) {
		a.error(w, http.StatusNotFound, "not_found", "unknown draft")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"drafts": a.Store.Drafts()})
}

// CopilotStatus reports the active task, cooldown state, and last error.
func (a *App) CopilotStatus(w http.ResponseWriter, _ *http.Request) {
	task, cooling, lastError := a.Orchestrator.Status()
	a.json(w, http.StatusOK, map[string]any{
		"active_task": task,
		"cooling":     cooling,
		"last_error":  lastError,
	})
}
