package httpapi

import (
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"funnel/internal/http/handlers"
	"funnel/internal/infra"
	mw "funnel/internal/middleware"
)

// NewRouter assembles the public funnel surface and the key-gated admin
// surface onto one chi router.
func NewRouter(app *handlers.App, cfg *infra.Config) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(mw.RequestID, chimw.RealIP, chimw.Recoverer, mw.Logger(app.Logger))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(mw.CORS(cfg.CORSAllowedOrigins))
	}

	r.Get("/v1/healthz", app.Health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/analytics/track", app.AnalyticsTrack)
		r.Get("/testimonials", app.TestimonialsVisible)
		r.Get("/package-items", app.PackageItemsVisible)
		r.Post("/email-leads", app.EmailLeadCreate)

		r.Group(func(r chi.Router) {
			r.Use(mw.RateLimit(cfg.RateLimitPerMin, time.Minute))
			r.Post("/create-payment-intent", app.CreatePaymentIntent)
			r.Post("/update-payment-intent", app.UpdatePaymentIntent)
			r.Post("/confirm-payment", app.ConfirmPayment)
		})

		r.Post("/stripe-webhook", app.StripeWebhook)
		r.Get("/download/{token}", app.ResolveDownload)

		r.Route("/admin", func(r chi.Router) {
			r.Use(mw.AdminKey(cfg.AdminAPIKey))
			r.Get("/analytics", app.AdminAnalytics)
			r.Get("/purchases", app.AdminPurchases)

			r.Route("/testimonials", func(r chi.Router) {
				r.Get("/", app.AdminTestimonialsList)
				r.Post("/", app.AdminTestimonialCreate)
				r.Patch("/{id}", app.AdminTestimonialUpdate)
				r.Delete("/{id}", app.AdminTestimonialDelete)
			})

			r.Route("/package-items", func(r chi.Router) {
				r.Get("/", app.AdminPackageItemsList)
				r.Post("/", app.AdminPackageItemCreate)
				r.Patch("/{id}", app.AdminPackageItemUpdate)
				r.Delete("/{id}", app.AdminPackageItemDelete)
			})
		})
	})

	return r
}
