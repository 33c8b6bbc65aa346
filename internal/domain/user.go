package domain

// User is the domain model for registered accounts. Role flags are
// independent booleans; an account may hold several roles at once.
type User struct {
	ID           int64
	FirstName    string
	LastName     string
	Username     string
	Email        string
	PasswordHash string
	IsActive     bool
	IsAdmin      bool
	IsSupplier   bool
	IsCustomer   bool
}
