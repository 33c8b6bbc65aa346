package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered  EventType = "user_registered"
	EventReviewSubmitted EventType = "review_submitted"
	EventReviewDeleted   EventType = "review_deleted"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// ReviewSubmittedPayload payload.
type ReviewSubmittedPayload struct {
	ReviewID      int64    `json:"review_id"`
	ProductID     int64    `json:"product_id"`
	Grade         int      `json:"grade"`
	ProductRating *float64 `json:"product_rating,omitempty"`
}

// ReviewDeletedPayload payload.
type ReviewDeletedPayload struct {
	ReviewID      int64    `json:"review_id"`
	ProductID     int64    `json:"product_id"`
	ProductRating *float64 `json:"product_rating,omitempty"`
}
