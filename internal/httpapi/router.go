package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmynk/standout/internal/middleware"
)

// NewRouter registers HTTP routes and returns the handler with middleware.
func NewRouter(app *App) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logging())

	r.Get("/healthz", app.healthHandler)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/ws/inventory", app.inventoryWSHandler)

	r.Route("/api", func(r chi.Router) {
		r.Post("/signup", app.signupHandler)
		r.Post("/login", app.loginHandler)

		r.Get("/products", app.listProductsHandler)
		r.Get("/products/{id}", app.getProductHandler)
		r.Get("/products/{id}/recommendations", app.recommendationsHandler)

		// Tracking accepts anonymous events but attributes a user when a
		// valid token is present.
		r.With(middleware.OptionalAuth(app.JWT)).Post("/track", app.trackHandler)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(app.JWT))
			r.Post("/cart/add", app.addToCartHandler)
			r.Get("/cart", app.getCartHandler)
			r.Post("/checkout", app.checkoutHandler)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAuth(app.JWT), middleware.RequireAdmin())
			r.Post("/products", app.createProductHandler)
			r.Post("/toggle_stock", app.toggleStockHandler)
			r.Post("/upload_csv", app.uploadCSVHandler)
			r.Get("/flags", app.listFlagsHandler)
			r.Post("/flags", app.setFlagHandler)
			r.Get("/analytics/summary", app.analyticsSummaryHandler)
		})
	})

	return r
}
