package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shop-reviews/internal/api/dto"
	"github.com/spec-kit/shop-reviews/internal/auth"
	"github.com/spec-kit/shop-reviews/internal/domain"
	"github.com/spec-kit/shop-reviews/internal/service"
	apperrors "github.com/spec-kit/shop-reviews/pkg/util"
)

// ReviewsHandler manages review endpoints.
type ReviewsHandler struct {
	service *service.ReviewService
}

// NewReviewsHandler constructs handler.
func NewReviewsHandler(reviewService *service.ReviewService) *ReviewsHandler {
	return &ReviewsHandler{service: reviewService}
}

// ListReviews GET /review/.
func (h *ReviewsHandler) ListReviews(c *fiber.Ctx) error {
	reviews, err := h.service.ListReviews(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": reviewResponses(reviews)})
}

// ListProductReviews GET /review/:product_id.
func (h *ReviewsHandler) ListProductReviews(c *fiber.Ctx) error {
	productID, err := parseID(c, "product_id")
	if err != nil {
		return err
	}
	reviews, err := h.service.ListProductReviews(c.Context(), productID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": reviewResponses(reviews)})
}

// ProductRating GET /review/:product_id/rating.
func (h *ReviewsHandler) ProductRating(c *fiber.Ctx) error {
	productID, err := parseID(c, "product_id")
	if err != nil {
		return err
	}
	rating, err := h.service.ProductRating(c.Context(), productID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ProductRatingResponse{
		ProductID: productID,
		Rating:    rating,
	}})
}

// CreateReview POST /review/:product_id.
func (h *ReviewsHandler) CreateReview(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	productID, err := parseID(c, "product_id")
	if err != nil {
		return err
	}

	var req dto.CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Grade == nil {
		return apperrors.NewValidationError("grade required", nil)
	}

	review, err := h.service.SubmitReview(c.Context(), principal, productID, *req.Grade, req.Comment)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": reviewResponse(review)})
}

// DeleteReview DELETE /review/:review_id.
func (h *ReviewsHandler) DeleteReview(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	reviewID, err := parseID(c, "review_id")
	if err != nil {
		return err
	}

	if err := h.service.DeleteReview(c.Context(), principal, reviewID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"review_id": reviewID, "deleted": true}})
}

func parseID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid "+name, nil)
	}
	return id, nil
}

func reviewResponse(review *domain.Review) dto.ReviewResponse {
	return dto.ReviewResponse{
		ID:          review.ID,
		UserID:      review.UserID,
		ProductID:   review.ProductID,
		RatingID:    review.RatingID,
		Comment:     review.Comment,
		CommentDate: review.CommentDate,
		IsActive:    review.IsActive,
	}
}

func reviewResponses(reviews []domain.Review) []dto.ReviewResponse {
	items := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		items = append(items, reviewResponse(&reviews[i]))
	}
	return items
}
