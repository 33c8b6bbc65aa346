package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/shop-reviews/internal/domain"
)

// Verification failure modes. ErrMissingExpiry is the only one surfaced as
// a bad request; everything else maps to 401.
var (
	ErrInvalidToken  = errors.New("could not validate token")
	ErrTokenExpired  = errors.New("token expired")
	ErrMissingExpiry = errors.New("no expiry claim supplied")
)

// TokenManager handles issuing and verifying JWT access tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager builds a new manager with a default token lifetime.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = 20 * time.Minute
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Claims describes the JWT payload: subject username, numeric user id and
// the three independent role flags frozen at issue time.
type Claims struct {
	UserID     int64 `json:"id"`
	IsAdmin    bool  `json:"is_admin"`
	IsSupplier bool  `json:"is_supplier"`
	IsCustomer bool  `json:"is_customer"`
	jwt.RegisteredClaims
}

// Issue builds and signs a token for the user. A zero ttl falls back to
// the manager default; a negative ttl yields an already-expired token.
func (tm *TokenManager) Issue(user *domain.User, ttl time.Duration) (string, time.Time, error) {
	if ttl == 0 {
		ttl = tm.ttl
	}
	expiresAt := time.Now().Add(ttl)
	claims := &Claims{
		UserID:     user.ID,
		IsAdmin:    user.IsAdmin,
		IsSupplier: user.IsSupplier,
		IsCustomer: user.IsCustomer,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Verify checks the signature and expiry and returns the claim set
// verbatim. Role flags are not re-checked against the database; a token
// stays valid for its full lifetime even if the account changes.
func (tm *TokenManager) Verify(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	if claims.ExpiresAt == nil {
		return nil, ErrMissingExpiry
	}
	return claims, nil
}

// TokenClaims converts the JWT payload into the domain claim set.
func (c *Claims) TokenClaims() domain.TokenClaims {
	claims := domain.TokenClaims{
		Username:   c.Subject,
		UserID:     c.UserID,
		IsAdmin:    c.IsAdmin,
		IsSupplier: c.IsSupplier,
		IsCustomer: c.IsCustomer,
	}
	if c.ExpiresAt != nil {
		claims.ExpiresAt = c.ExpiresAt.Time
	}
	return claims
}
