package domain

// Product is owned by the catalog; the review subsystem only reads its
// identity and active flag, and writes the aggregate rating.
type Product struct {
	ID          int64
	Name        string
	Slug        string
	Description string
	Price       int
	ImageURL    string
	Stock       int
	CategoryID  *int64
	SupplierID  *int64
	Rating      *float64
	IsActive    bool
}
