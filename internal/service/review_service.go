package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/shop-reviews/internal/auth"
	"github.com/spec-kit/shop-reviews/internal/domain"
	"github.com/spec-kit/shop-reviews/internal/events"
	"github.com/spec-kit/shop-reviews/internal/persistence"
	"github.com/spec-kit/shop-reviews/internal/repository"
	apperrors "github.com/spec-kit/shop-reviews/pkg/util"
)

// ReviewService coordinates the review and rating ledgers and keeps the
// product aggregate in sync.
type ReviewService struct {
	reviews    repository.ReviewRepository
	products   repository.ProductRepository
	cache      *persistence.Redis
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// ReviewDependencies bundles requirements for the review service.
type ReviewDependencies struct {
	ReviewRepo  repository.ReviewRepository
	ProductRepo repository.ProductRepository
	Cache       *persistence.Redis
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// NewReviewService constructs the service.
func NewReviewService(deps ReviewDependencies) *ReviewService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReviewService{
		reviews:    deps.ReviewRepo,
		products:   deps.ProductRepo,
		cache:      deps.Cache,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// SubmitReview records a grade and comment for an active product. Only
// customers may submit. Rating insert, review insert and the aggregate
// recompute commit as one transaction; resubmission creates a fresh
// rating/review pair rather than mutating an earlier one.
func (s *ReviewService) SubmitReview(ctx context.Context, caller *auth.Principal, productID int64, grade int, comment string) (*domain.Review, error) {
	if caller == nil || !caller.IsCustomer {
		return nil, apperrors.NewForbidden("you must be a customer user for this")
	}

	if _, err := s.products.GetActiveByID(ctx, productID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("product", map[string]any{"product_id": productID})
		}
		return nil, err
	}

	rating := &domain.Rating{
		Grade:     grade,
		UserID:    caller.UserID,
		ProductID: productID,
	}
	review := &domain.Review{
		UserID:    caller.UserID,
		ProductID: productID,
		Comment:   comment,
	}

	productRating, err := s.reviews.CreateWithRating(ctx, rating, review)
	if err != nil {
		return nil, err
	}

	s.cacheProductRating(ctx, productID, productRating)
	s.publish(ctx, events.Event{
		Type:  events.EventReviewSubmitted,
		Actor: events.Actor{UserID: caller.UserID, Username: caller.Username},
		Payload: events.ReviewSubmittedPayload{
			ReviewID:      review.ID,
			ProductID:     productID,
			Grade:         grade,
			ProductRating: productRating,
		},
	})
	return review, nil
}

// DeleteReview soft-deletes a review and its linked rating and refreshes
// the product aggregate. Only admins may delete. An unknown review id is
// a silent no-op, mirroring the historical delete semantics.
func (s *ReviewService) DeleteReview(ctx context.Context, caller *auth.Principal, reviewID int64) error {
	if caller == nil || !caller.IsAdmin {
		return apperrors.NewForbidden("you must be an admin user for this")
	}

	result, err := s.reviews.SoftDeleteWithRating(ctx, reviewID)
	if err != nil {
		return err
	}
	if !result.Found {
		s.logger.Debug("delete of unknown review ignored", zap.Int64("review_id", reviewID))
		return nil
	}

	s.cacheProductRating(ctx, result.ProductID, result.ProductRating)
	s.publish(ctx, events.Event{
		Type:  events.EventReviewDeleted,
		Actor: events.Actor{UserID: caller.UserID, Username: caller.Username},
		Payload: events.ReviewDeletedPayload{
			ReviewID:      reviewID,
			ProductID:     result.ProductID,
			ProductRating: result.ProductRating,
		},
	})
	return nil
}

// ListReviews returns the active reviews, oldest comment first.
func (s *ReviewService) ListReviews(ctx context.Context) ([]domain.Review, error) {
	return s.reviews.ListActive(ctx)
}

// ListProductReviews returns every review for a product. The historical
// contract for this listing includes soft-deleted reviews, unlike the
// global listing.
func (s *ReviewService) ListProductReviews(ctx context.Context, productID int64) ([]domain.Review, error) {
	return s.reviews.ListByProduct(ctx, productID)
}

// ProductRating returns the current aggregate for a product, serving from
// the cache when possible. A nil value means no active ratings exist.
func (s *ReviewService) ProductRating(ctx context.Context, productID int64) (*float64, error) {
	if cached, ok := s.cache.GetProductRating(ctx, productID); ok {
		return &cached, nil
	}

	rating, err := s.products.GetRating(ctx, productID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("product", map[string]any{"product_id": productID})
		}
		return nil, err
	}
	s.cacheProductRating(ctx, productID, rating)
	return rating, nil
}

// cacheProductRating is best-effort; a cache failure never fails the
// request that triggered it.
func (s *ReviewService) cacheProductRating(ctx context.Context, productID int64, rating *float64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetProductRating(ctx, productID, rating); err != nil {
		s.logger.Warn("failed to cache product rating",
			zap.Int64("product_id", productID), zap.Error(err))
	}
}

func (s *ReviewService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}
