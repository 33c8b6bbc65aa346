package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/shop-reviews/pkg/util"
)

const principalKey = "auth_principal"

// Principal is the authenticated caller as described by its token claims.
// It is built purely from the verified claim set; the account row is not
// reloaded on every request.
type Principal struct {
	UserID     int64
	Username   string
	IsAdmin    bool
	IsSupplier bool
	IsCustomer bool
}

// AuthMiddleware validates bearer tokens and attaches the principal.
type AuthMiddleware struct {
	tokens *TokenManager
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.Verify(parts[1])
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingExpiry):
			return apperrors.NewBadRequest("no access token supplied")
		case errors.Is(err, ErrTokenExpired):
			return apperrors.NewUnauthorized("token expired")
		default:
			return apperrors.NewUnauthorized("could not validate user")
		}
	}

	c.Locals(principalKey, &Principal{
		UserID:     claims.UserID,
		Username:   claims.Subject,
		IsAdmin:    claims.IsAdmin,
		IsSupplier: claims.IsSupplier,
		IsCustomer: claims.IsCustomer,
	})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated caller.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
