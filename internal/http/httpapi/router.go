package httpapi

import (
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"storefront/internal/http/handlers"
	"storefront/internal/infra"
	"storefront/internal/middleware"
)

// NewRouter assembles the HTTP surface for one storefront session.
func NewRouter(app *handlers.App, cfg *infra.Config, logger infra.Logger) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, chimw.RealIP, chimw.Recoverer)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg))
	r.Use(middleware.RateLimit(cfg))

	r.Get("/v1/healthz", app.Health)

	r.Route("/store", func(r chi.Router) {
		r.Get("/products", app.Products)
		r.Post("/products/{id}/view", app.ProductView)
		r.Get("/recommendations", app.Recommendations)
	})

	r.Route("/cart", func(r chi.Router) {
		r.Get("/", app.Cart)
		r.Post("/items", app.CartAdd)
		r.Delete("/items/{id}", app.CartRemove)
	})

	r.Post("/checkout/confirm", app.CheckoutConfirm)
	r.Get("/account/orders", app.Orders)

	r.Route("/admin", func(r chi.Router) {
		r.Route("/copilot", func(r chi.Router) {
			r.Get("/status", app.CopilotStatus)
			r.Get("/drafts", app.Drafts)
			r.Post("/drafts", app.DraftsGenerate)
			r.Post("/drafts/{id}/publish", app.DraftPublish)
			r.Delete("/drafts/{id}", app.DraftReject)
		})
		r.Get("/finance", app.Finance)
		r.Post("/finance/payout", app.PayoutTrigger)
		r.Post("/products/{id}/sale", app.SetSale)
		r.Delete("/products/{id}/sale", app.ClearSale)
		r.Get("/marketing/posts", app.MarketingPosts)
	})

	r.Route("/chat", func(r chi.Router) {
		r.Post("/open", app.ChatOpen)
		r.Post("/send", app.ChatSend)
		r.Get("/messages", app.ChatMessages)
	})

	r.Get("/activity", app.Activity)

	return r
}
