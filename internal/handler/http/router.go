package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MoaeadAlhosami/STREETWEER/internal/catalog"
	"github.com/MoaeadAlhosami/STREETWEER/internal/service"
	"github.com/MoaeadAlhosami/STREETWEER/pkg/health"
	"github.com/MoaeadAlhosami/STREETWEER/pkg/middleware"
)

const serviceName = "storefront"

// RouterDeps collects everything the router needs.
type RouterDeps struct {
	Catalog  *catalog.Service
	Cart     *service.CartService
	Checkout *service.CheckoutService
	Contact  *service.ContactService
	Health   *health.Handler
	Logger   *slog.Logger

	CORS           middleware.CORSConfig
	CatalogMaxAge  int
	RequestTimeout time.Duration
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(d RouterDeps) http.Handler {
	if d.RequestTimeout <= 0 {
		d.RequestTimeout = 30 * time.Second
	}

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(d.Logger))
	r.Use(middleware.CORS(d.CORS))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(d.RequestTimeout))
	r.Use(middleware.RequestLogging(d.Logger))
	r.Use(middleware.PrometheusMetrics(serviceName))
	r.Use(middleware.Identity())
	r.Use(middleware.Tracing(serviceName))
	r.Use(middleware.RequestLogger(d.Logger))

	// Health check endpoints
	r.Get("/health/live", d.Health.LivenessHandler())
	r.Get("/health/ready", d.Health.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	catalogHandler := NewCatalogHandler(d.Catalog, d.Logger)
	cartHandler := NewCartHandler(d.Cart, d.Logger)
	checkoutHandler := NewCheckoutHandler(d.Checkout, d.Logger)
	contactHandler := NewContactHandler(d.Contact, d.Logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Group(func(r chi.Router) {
			r.Use(middleware.CacheControl(d.CatalogMaxAge))

			r.Get("/products", catalogHandler.ListProducts)
			r.Get("/products/{id}", catalogHandler.GetProduct)
			r.Get("/categories", catalogHandler.ListCategories)
			r.Get("/brands", catalogHandler.ListBrands)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(middleware.NoStore)

			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.ClearCart)
			r.Get("/summary", cartHandler.GetSummary)

			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{productId}", cartHandler.UpdateItemQuantity)
			r.Delete("/items/{productId}", cartHandler.RemoveItem)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.NoStore)
			r.Use(RequireUser)

			r.Post("/checkout", checkoutHandler.Submit)
			r.Post("/contact", contactHandler.Submit)
		})
	})

	return r
}
