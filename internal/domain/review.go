package domain

import "time"

// Review is a customer's free-text comment on a product. Each review is
// created together with exactly one Rating and keeps an exclusive
// reference to it through RatingID.
type Review struct {
	ID          int64
	UserID      int64
	ProductID   int64
	RatingID    int64
	Comment     string
	CommentDate time.Time
	IsActive    bool
}
