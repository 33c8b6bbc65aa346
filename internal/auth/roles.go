package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/shop-reviews/pkg/util"
)

// RequireCustomer ensures the caller's claims carry the customer flag.
func RequireCustomer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !principal.IsCustomer {
			return apperrors.NewForbidden("you must be a customer user for this")
		}
		return c.Next()
	}
}

// RequireAdmin ensures the caller's claims carry the admin flag.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !principal.IsAdmin {
			return apperrors.NewForbidden("you must be an admin user for this")
		}
		return c.Next()
	}
}
