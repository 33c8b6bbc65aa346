package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shop-reviews/internal/api/http/handlers"
	"github.com/spec-kit/shop-reviews/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Reviews        *handlers.ReviewsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Mutating review routes require a
// bearer token and the single role flag each operation demands.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/", handlers.Welcome)
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/", cfg.Auth.Register)
	authGroup.Post("/token", cfg.Auth.Login)
	authGroup.Get("/read_current_user", cfg.AuthMiddleware.Handle, cfg.Auth.ReadCurrentUser)

	reviewGroup := app.Group("/review")
	reviewGroup.Get("/", cfg.Reviews.ListReviews)
	reviewGroup.Get("/:product_id", cfg.Reviews.ListProductReviews)
	reviewGroup.Get("/:product_id/rating", cfg.Reviews.ProductRating)
	reviewGroup.Post("/:product_id", cfg.AuthMiddleware.Handle, auth.RequireCustomer(), cfg.Reviews.CreateReview)
	reviewGroup.Delete("/:review_id", cfg.AuthMiddleware.Handle, auth.RequireAdmin(), cfg.Reviews.DeleteReview)
}
