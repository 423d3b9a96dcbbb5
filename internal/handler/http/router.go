package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ranaIslam01/server/internal/auth"
	"github.com/ranaIslam01/server/internal/service"
	"github.com/ranaIslam01/server/pkg/health"
	"github.com/ranaIslam01/server/pkg/middleware"
)

// NewRouter creates a chi router with all API routes registered.
func NewRouter(
	productService *service.ProductService,
	userService *service.UserService,
	orderService *service.OrderService,
	jwtManager *auth.JWTManager,
	healthHandler *health.Handler,
	logger *slog.Logger,
	corsConfig middleware.CORSConfig,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(corsConfig))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("shop-api"))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// Access guard: validate the token, then resolve the account so a
	// deleted user's token stops working immediately.
	authGuard := middleware.Auth(jwtManager.Validate, userService.ResolveIdentity)

	productHandler := NewProductHandler(productService)
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", productHandler.List)
		r.Get("/{id}", productHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(ContentTypeJSON)
			r.Use(authGuard)
			r.Post("/{id}/reviews", productHandler.CreateReview)
		})
	})

	userHandler := NewUserHandler(userService, jwtManager)
	r.Route("/api/users", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(ContentTypeJSON)
			r.Post("/", userHandler.Register)
			r.Post("/login", userHandler.Login)
		})

		// Logout has no body, so it skips the content-type check.
		r.Post("/logout", userHandler.Logout)

		r.Group(func(r chi.Router) {
			r.Use(authGuard)
			r.Get("/profile", userHandler.GetProfile)

			r.Group(func(r chi.Router) {
				r.Use(ContentTypeJSON)
				r.Put("/profile", userHandler.UpdateProfile)
			})
		})
	})

	orderHandler := NewOrderHandler(orderService)
	r.Route("/api/orders", func(r chi.Router) {
		r.Use(authGuard)

		r.Get("/mine", orderHandler.ListMine)
		r.Get("/{id}", orderHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(ContentTypeJSON)
			r.Post("/", orderHandler.Create)
		})
	})

	return r
}
