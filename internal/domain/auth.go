package domain

import "time"

// TokenClaims is the claim set carried inside an access token. Claims are
// a snapshot of the account at login time; they are not re-checked against
// the database while the token is valid.
type TokenClaims struct {
	Username   string
	UserID     int64
	IsAdmin    bool
	IsSupplier bool
	IsCustomer bool
	ExpiresAt  time.Time
}
