// Package copilot implements the AI co-pilot workflows: draft generation, the
// three-stage publish pipeline, the product advisory chat, and the shared
// failure handling that trips the provider cooldown gate.
package copilot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"storefront/internal/activity"
	"storefront/internal/domain"
	"storefront/internal/infra"
	"storefront/internal/providers/genai"
	"storefront/internal/store"
)

// Per-stage operating cost increments, charged to the day's costs when a
// stage starts regardless of its outcome.
const (
	costEnrichment = 0.01
	costImage      = 0.02
	costPromotion  = 0.005
)

// ErrCoolingDown reports that a workflow was refused because the provider
// gate is cooling. Callers surface this as a disabled action, not a failure.
var ErrCoolingDown = errors.New("ai provider cooling down")

// Gateway is the AI provider capability the workflows depend on. The genai
// client is the production implementation.
type Gateway interface {
	GenerateDraftCandidates(ctx context.Context, existingNames []string) ([]genai.DraftCandidate, error)
	EnrichDraft(ctx context.Context, name, description string) (*genai.Enrichment, error)
	SynthesizeImage(ctx context.Context, prompt string) (string, error)
	SynthesizePromotionalText(ctx context.Context, product domain.Product) (string, error)
	ChatReply(ctx context.Context, product domain.Product, history []domain.ChatMessage) (string, error)
}

var _ Gateway = (*genai.Client)(nil)

// Options configures an Orchestrator.
type Options struct {
	Gateway  Gateway
	Store    *store.Store
	Feed     *activity.Log
	Logger   infra.Logger
	Cooldown time.Duration
}

// Orchestrator owns the mutable co-pilot control state: the single-slot
// active-task marker, the last generation error, and the cooldown gate. All
// provider-backed workflows run through it.
type Orchestrator struct {
	gateway Gateway
	store   *store.Store
	feed    *activity.Log
	logger  infra.Logger
	gate    *Gate

	mu         sync.Mutex
	activeTask string
	lastError  string
}

// NewOrchestrator wires the workflows to their collaborators.
func NewOrchestrator(opts Options) *Orchestrator {
	cooldown := opts.Cooldown
	if cooldown <= 0 {
		cooldown = 60 * time.Second
	}
	o := &Orchestrator{
		gateway: opts.Gateway,
		store:   opts.Store,
		feed:    opts.Feed,
		logger:  opts.Logger,
	}
	o.gate = NewGate(cooldown, func() {
		o.feed.Record("AI cooldown finished.", domain.LogSystem)
	})
	return o
}

// Status reports the in-progress task description (empty when idle), whether
// the gate is cooling, and the most recent generation error.
func (o *Orchestrator) Status() (activeTask string, cooling bool, lastError string) {
	o.mu.Lock()
	activeTask = o.activeTask
	lastError = o.lastError
	o.mu.Unlock()
	return activeTask, o.gate.Cooling(), lastError
}

// Cooling reports whether the provider gate is cooling.
func (o *Orchestrator) Cooling() bool {
	return o.gate.Cooling()
}

// GenerateDrafts asks the provider for new product concepts and adds them to
// the pending set. It reports false, without touching the provider, when
// another task is active or the gate is cooling.
func (o *Orchestrator) GenerateDrafts(ctx context.Context) bool {
	if o.gate.Cooling() {
		return false
	}
	if !o.tryAcquire("Generating new product drafts...") {
		return false
	}
	defer o.release()
	o.setLastError("")

	o.feed.Record("AI is generating new product drafts...", domain.LogInfo)
	candidates, err := o.gateway.GenerateDraftCandidates(ctx, o.store.ProductNames())
	if err != nil {
		o.handleAIError(err)
		return true
	}

	drafts := make([]domain.Draft, 0, len(candidates))
	for _, cand := range candidates {
		drafts = append(drafts, domain.Draft{
			ID:          uuid.NewString(),
			Name:        cand.Name,
			Description: cand.Description,
			CreatedAt:   time.Now(),
		})
	}
	o.store.PrependDrafts(drafts)
	o.feed.Record(fmt.Sprintf("AI generated %d new drafts for your review.", len(drafts)), domain.LogSuccess)
	return true
}

// Publish runs the three-stage pipeline for the given draft: enrichment,
// image synthesis, promotional post. The draft leaves the pending set and the
// product appears in the catalog before enrichment completes, so the
// storefront may transiently show it incomplete. Stage failures are routed to
// the central handler and leave the product published with whatever fields
// already merged; Publish itself returns an error only when the pipeline
// never started.
func (o *Orchestrator) Publish(ctx context.Context, draftID string) error {
	if o.gate.Cooling() {
		return ErrCoolingDown
	}
	draft, ok := o.store.PeekDraft(draftID)
	if !ok {
		return domain.ErrNotFound
	}
	if strings.TrimSpace(draft.Name) == "" || strings.TrimSpace(draft.Description) == "" {
		return domain.ErrDraftIncomplete
	}
	if !o.tryAcquire(fmt.Sprintf("Publishing %q...", draft.Name)) {
		o.feed.Record("AI is busy with another task. Please wait.", domain.LogError)
		return domain.ErrCopilotBusy
	}
	defer o.release()
	o.setLastError("")

	o.store.TakeDraft(draftID)
	o.feed.Record(fmt.Sprintf("Publishing draft: %q...", draft.Name), domain.LogInfo)

	product := domain.Product{
		ID:               uuid.NewString(),
		Name:             draft.Name,
		Description:      draft.Description,
		Image:            domain.ProductImage{State: domain.ImageStatePending},
		Status:           domain.ProductStatusPublished,
		PerformanceScore: 0.5,
		CreatedAt:        time.Now(),
	}
	o.store.InsertProduct(product)

	o.setTask(fmt.Sprintf("Enriching details for %q...", product.Name))
	o.feed.Record(fmt.Sprintf("Enriching details for %q...", product.Name), domain.LogInfo)
	o.store.AccrueCost(costEnrichment)
	enrichment, err := o.gateway.EnrichDraft(ctx, draft.Name, draft.Description)
	if err != nil {
		o.failPublish(product.ID, err)
		return nil
	}
	o.store.UpdateProduct(product.ID, func(p *domain.Product) {
		p.Price = enrichment.Price
		p.Details = enrichment.Details
		p.UsageInstructions = enrichment.UsageInstructions
		p.ImagePrompt = enrichment.ImagePrompt
	})

	o.setTask(fmt.Sprintf("Generating image for %q...", product.Name))
	o.feed.Record(fmt.Sprintf("Generating image for %q...", product.Name), domain.LogInfo)
	o.store.AccrueCost(costImage)
	imageURL, err := o.gateway.SynthesizeImage(ctx, enrichment.ImagePrompt)
	if err != nil {
		o.failPublish(product.ID, err)
		return nil
	}
	o.store.UpdateProduct(product.ID, func(p *domain.Product) {
		p.Image = domain.ProductImage{State: domain.ImageStateReady, URL: imageURL}
	})

	o.setTask(fmt.Sprintf("Generating social media post for %q...", product.Name))
	o.feed.Record(fmt.Sprintf("Generating social media post for %q...", product.Name), domain.LogInfo)
	o.store.AccrueCost(costPromotion)
	current, _ := o.store.GetProduct(product.ID)
	postContent, err := o.gateway.SynthesizePromotionalText(ctx, current)
	if err != nil {
		o.failPublish(product.ID, err)
		return nil
	}
	o.store.PrependPost(postContent, domain.PostTypeNewProduct)

	o.feed.Record(fmt.Sprintf("Product %q published successfully!", product.Name), domain.LogSuccess)
	return nil
}

// Reject removes a draft from the pending set without creating a product.
func (o *Orchestrator) Reject(draftID string) bool {
	draft, ok := o.store.TakeDraft(draftID)
	if !ok {
		return false
	}
	o.feed.Record(fmt.Sprintf("Draft %q rejected.", draft.Name), domain.LogInfo)
	return true
}

// failPublish is the shared stage-failure path: classify and report the
// error, then mark the product's image as terminally failed so the storefront
// can render the distinct failed state. Fields merged by earlier stages are
// kept; the pipeline never rolls back or retries.
func (o *Orchestrator) failPublish(productID string, err error) {
	o.handleAIError(err)
	o.store.UpdateProduct(productID, func(p *domain.Product) {
		p.Image = domain.ProductImage{State: domain.ImageStateFailed, Error: err.Error()}
	})
}

// handleAIError is the single entry point for every provider failure. The
// advisory depends only on the error's classification; a quota failure
// additionally trips the cooldown gate.
func (o *Orchestrator) handleAIError(err error) {
	kind := "AIError"
	advice := "The AI encountered an unexpected issue."
	switch {
	case errors.Is(err, domain.ErrQuotaExceeded):
		kind = "QuotaExceededError"
		advice = fmt.Sprintf("ADVICE: You've hit your API quota. All AI generation will be halted for %s. Check your Google AI Studio plan and billing.", o.gate.Duration())
		o.gate.Trip()
	case errors.Is(err, domain.ErrModelUnavailable):
		kind = "ModelUnavailableError"
		advice = "ADVICE: The AI model is currently overloaded or unavailable. This is usually temporary. Please try again in a few moments."
	case errors.Is(err, domain.ErrInvalidRequest):
		kind = "InvalidRequestError"
		advice = "ADVICE: The application sent an invalid request to the AI. This may be a bug. Try a different action."
	case errors.Is(err, domain.ErrAIServer):
		kind = "AiServerError"
		advice = "ADVICE: The AI service is experiencing internal issues. This is likely temporary. Please try again later."
	}

	o.feed.Record(kind+": "+err.Error()+"\n"+advice, domain.LogError)
	o.logger.Error().Err(err).Str("kind", kind).Msg("ai task failed")
	o.setLastError(err.Error())
}

func (o *Orchestrator) tryAcquire(task string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.activeTask != "" {
		return false
	}
	o.activeTask = task
	return true
}

func (o *Orchestrator) setTask(task string) {
	o.mu.Lock()
	o.activeTask = task
	o.mu.Unlock()
}

func (o *Orchestrator) release() {
	o.mu.Lock()
	o.activeTask = ""
	o.mu.Unlock()
}

func (o *Orchestrator) setLastError(msg string) {
	o.mu.Lock()
	o.lastError = msg
	o.mu.Unlock()
}
