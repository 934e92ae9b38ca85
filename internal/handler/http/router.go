package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shopleaf/storefront/internal/service"
	"github.com/shopleaf/storefront/pkg/health"
	"github.com/shopleaf/storefront/pkg/middleware"
)

// RouterDeps bundles everything the router needs.
type RouterDeps struct {
	CartService     *service.CartService
	CheckoutService *service.CheckoutService
	OrderService    *service.OrderService
	ProductService  *service.ProductService
	HealthHandler   *health.Handler
	TokenValidator  middleware.TokenValidator
	Logger          *slog.Logger
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.CORS)
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(deps.Logger))
	r.Use(middleware.PrometheusMetrics("storefront"))

	// Health check endpoints
	r.Get("/health/live", deps.HealthHandler.LivenessHandler())
	r.Get("/health/ready", deps.HealthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	cartHandler := NewCartHandler(deps.CartService, deps.Logger)
	orderHandler := NewOrderHandler(deps.CheckoutService, deps.OrderService, deps.Logger)
	productHandler := NewProductHandler(deps.ProductService, deps.Logger)

	r.Route("/api/v1", func(r chi.Router) {
		// Catalog is public.
		r.Get("/products", productHandler.ListProducts)
		r.Get("/products/{productID}", productHandler.GetProduct)

		// Everything else requires an authenticated customer.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(deps.TokenValidator))
			r.Use(middleware.RequestLogger(deps.Logger))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", cartHandler.GetCart)
				r.Delete("/", cartHandler.ClearCart)

				r.Post("/items", cartHandler.AddItem)
				r.Put("/items/{lineID}", cartHandler.UpdateQuantity)
				r.Delete("/items/{lineID}", cartHandler.RemoveItem)
			})

			r.Route("/orders", func(r chi.Router) {
				r.Post("/", orderHandler.Checkout)
				r.Get("/", orderHandler.ListOrders)
				r.Get("/{orderID}", orderHandler.GetOrder)

				r.With(middleware.RequireRole("admin")).
					Put("/{orderID}/status", orderHandler.UpdateStatus)
			})
		})
	})

	return r
}
