package dto

import "time"

// CreateReviewRequest payload. Grade is a pointer so an omitted grade can
// be rejected instead of defaulting to zero.
type CreateReviewRequest struct {
	Grade   *int   `json:"grade"`
	Comment string `json:"comment"`
}

// ReviewResponse response.
type ReviewResponse struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	ProductID   int64     `json:"product_id"`
	RatingID    int64     `json:"rating_id"`
	Comment     string    `json:"comment"`
	CommentDate time.Time `json:"comment_date"`
	IsActive    bool      `json:"is_active"`
}

// ProductRatingResponse exposes a product's current aggregate rating.
// Rating is null when the product has no active ratings.
type ProductRatingResponse struct {
	ProductID int64    `json:"product_id"`
	Rating    *float64 `json:"rating"`
}
