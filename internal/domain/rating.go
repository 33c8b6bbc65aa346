package domain

// Rating is a single grade a customer assigned to a product. Ratings are
// immutable after creation; removal is a soft-delete via IsActive.
type Rating struct {
	ID        int64
	Grade     int
	UserID    int64
	ProductID int64
	IsActive  bool
}
