package service_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/shop-reviews/internal/auth"
	"github.com/spec-kit/shop-reviews/internal/domain"
	"github.com/spec-kit/shop-reviews/internal/repository"
	"github.com/spec-kit/shop-reviews/internal/service"
	apperrors "github.com/spec-kit/shop-reviews/pkg/util"
)

// fakeLedger is an in-memory stand-in for the product and review
// repositories. It mirrors the transactional contract: every mutation
// recomputes the product mean from the active ratings.
type fakeLedger struct {
	products     map[int64]*domain.Product
	ratings      map[int64]*domain.Rating
	reviews      map[int64]*domain.Review
	nextRatingID int64
	nextReviewID int64
}

func newFakeLedger(products ...*domain.Product) *fakeLedger {
	f := &fakeLedger{
		products: map[int64]*domain.Product{},
		ratings:  map[int64]*domain.Rating{},
		reviews:  map[int64]*domain.Review{},
	}
	for _, p := range products {
		f.products[p.ID] = p
	}
	return f
}

func (f *fakeLedger) GetActiveByID(_ context.Context, id int64) (*domain.Product, error) {
	product, ok := f.products[id]
	if !ok || !product.IsActive {
		return nil, pgx.ErrNoRows
	}
	return product, nil
}

func (f *fakeLedger) GetRating(_ context.Context, id int64) (*float64, error) {
	product, ok := f.products[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return product.Rating, nil
}

func (f *fakeLedger) CreateWithRating(_ context.Context, rating *domain.Rating, review *domain.Review) (*float64, error) {
	f.nextRatingID++
	rating.ID = f.nextRatingID
	rating.IsActive = true
	stored := *rating
	f.ratings[rating.ID] = &stored

	f.nextReviewID++
	review.ID = f.nextReviewID
	review.RatingID = rating.ID
	review.CommentDate = time.Now()
	review.IsActive = true
	storedReview := *review
	f.reviews[review.ID] = &storedReview

	return f.recompute(rating.ProductID), nil
}

func (f *fakeLedger) SoftDeleteWithRating(_ context.Context, reviewID int64) (repository.SoftDeleteResult, error) {
	review, ok := f.reviews[reviewID]
	if !ok {
		return repository.SoftDeleteResult{Found: false}, nil
	}
	review.IsActive = false
	if rating, ok := f.ratings[review.RatingID]; ok {
		rating.IsActive = false
	}
	return repository.SoftDeleteResult{
		Found:         true,
		ProductID:     review.ProductID,
		ProductRating: f.recompute(review.ProductID),
	}, nil
}

func (f *fakeLedger) ListActive(_ context.Context) ([]domain.Review, error) {
	var result []domain.Review
	for _, review := range f.reviews {
		if review.IsActive {
			result = append(result, *review)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (f *fakeLedger) ListByProduct(_ context.Context, productID int64) ([]domain.Review, error) {
	var result []domain.Review
	for _, review := range f.reviews {
		if review.ProductID == productID {
			result = append(result, *review)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (f *fakeLedger) recompute(productID int64) *float64 {
	product, ok := f.products[productID]
	if !ok {
		return nil
	}
	var sum, count int
	for _, rating := range f.ratings {
		if rating.ProductID == productID && rating.IsActive {
			sum += rating.Grade
			count++
		}
	}
	if count == 0 {
		product.Rating = nil
		return nil
	}
	mean := float64(sum) / float64(count)
	product.Rating = &mean
	return &mean
}

func newReviewService(ledger *fakeLedger) *service.ReviewService {
	return service.NewReviewService(service.ReviewDependencies{
		ReviewRepo:  ledger,
		ProductRepo: ledger,
	})
}

func customer(id int64) *auth.Principal {
	return &auth.Principal{UserID: id, Username: "customer", IsCustomer: true}
}

func admin(id int64) *auth.Principal {
	return &auth.Principal{UserID: id, Username: "admin", IsAdmin: true, IsCustomer: true}
}

func activeProduct(id int64) *domain.Product {
	return &domain.Product{ID: id, Name: "widget", Slug: "widget", IsActive: true}
}

func TestSubmitReview_UpdatesProductAggregate(t *testing.T) {
	ledger := newFakeLedger(activeProduct(42))
	svc := newReviewService(ledger)
	ctx := context.Background()

	first, err := svc.SubmitReview(ctx, customer(1), 42, 4, "good")
	require.NoError(t, err)
	require.NotNil(t, ledger.products[42].Rating)
	assert.Equal(t, 4.0, *ledger.products[42].Rating)

	_, err = svc.SubmitReview(ctx, customer(2), 42, 2, "meh")
	require.NoError(t, err)
	assert.Equal(t, 3.0, *ledger.products[42].Rating)

	require.NoError(t, svc.DeleteReview(ctx, admin(99), first.ID))
	require.NotNil(t, ledger.products[42].Rating)
	assert.Equal(t, 2.0, *ledger.products[42].Rating)
}

func TestSubmitReview_RequiresCustomerRole(t *testing.T) {
	ledger := newFakeLedger(activeProduct(42))
	svc := newReviewService(ledger)

	caller := &auth.Principal{UserID: 7, Username: "supplier", IsSupplier: true}
	_, err := svc.SubmitReview(context.Background(), caller, 42, 5, "nice")
	require.Error(t, err)
	assert.Equal(t, 403, apperrors.ToDomainError(err).HTTPStatus)

	assert.Empty(t, ledger.ratings)
	assert.Empty(t, ledger.reviews)
	assert.Nil(t, ledger.products[42].Rating)
}

func TestSubmitReview_UnknownProduct(t *testing.T) {
	svc := newReviewService(newFakeLedger())

	_, err := svc.SubmitReview(context.Background(), customer(1), 42, 4, "good")
	require.Error(t, err)
	assert.Equal(t, 404, apperrors.ToDomainError(err).HTTPStatus)
}

func TestSubmitReview_InactiveProduct(t *testing.T) {
	product := activeProduct(42)
	product.IsActive = false
	svc := newReviewService(newFakeLedger(product))

	_, err := svc.SubmitReview(context.Background(), customer(1), 42, 4, "good")
	require.Error(t, err)
	assert.Equal(t, 404, apperrors.ToDomainError(err).HTTPStatus)
}

func TestSubmitReview_CreatesFreshPairOnResubmission(t *testing.T) {
	ledger := newFakeLedger(activeProduct(42))
	svc := newReviewService(ledger)
	ctx := context.Background()

	first, err := svc.SubmitReview(ctx, customer(1), 42, 5, "great")
	require.NoError(t, err)
	second, err := svc.SubmitReview(ctx, customer(1), 42, 1, "changed my mind")
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.NotEqual(t, first.RatingID, second.RatingID)
	assert.Len(t, ledger.reviews, 2)
	assert.Equal(t, 3.0, *ledger.products[42].Rating)
}

func TestDeleteReview_RequiresAdminRole(t *testing.T) {
	ledger := newFakeLedger(activeProduct(42))
	svc := newReviewService(ledger)
	ctx := context.Background()

	review, err := svc.SubmitReview(ctx, customer(1), 42, 4, "good")
	require.NoError(t, err)

	err = svc.DeleteReview(ctx, customer(1), review.ID)
	require.Error(t, err)
	assert.Equal(t, 403, apperrors.ToDomainError(err).HTTPStatus)

	assert.True(t, ledger.reviews[review.ID].IsActive)
	assert.True(t, ledger.ratings[review.RatingID].IsActive)
	assert.Equal(t, 4.0, *ledger.products[42].Rating)
}

func TestDeleteReview_UnknownIDIsSilentNoop(t *testing.T) {
	ledger := newFakeLedger(activeProduct(42))
	svc := newReviewService(ledger)

	// Historical contract: a missing review id commits nothing and still
	// reports success.
	err := svc.DeleteReview(context.Background(), admin(99), 12345)
	assert.NoError(t, err)
	assert.Empty(t, ledger.reviews)
}

func TestDeleteReview_SoftDeleteKeepsRows(t *testing.T) {
	ledger := newFakeLedger(activeProduct(42))
	svc := newReviewService(ledger)
	ctx := context.Background()

	review, err := svc.SubmitReview(ctx, customer(1), 42, 4, "good")
	require.NoError(t, err)
	require.NoError(t, svc.DeleteReview(ctx, admin(99), review.ID))

	// The row survives and its rating link still resolves.
	stored := ledger.reviews[review.ID]
	require.NotNil(t, stored)
	assert.False(t, stored.IsActive)
	require.NotNil(t, ledger.ratings[stored.RatingID])
	assert.False(t, ledger.ratings[stored.RatingID].IsActive)

	// Gone from the active-only global listing.
	active, err := svc.ListReviews(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)

	// Still visible in the per-product listing, which has never filtered
	// on the active flag.
	all, err := svc.ListProductReviews(ctx, 42)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.False(t, all[0].IsActive)
}

func TestDeleteReview_LastRatingClearsAggregate(t *testing.T) {
	ledger := newFakeLedger(activeProduct(42))
	svc := newReviewService(ledger)
	ctx := context.Background()

	review, err := svc.SubmitReview(ctx, customer(1), 42, 4, "good")
	require.NoError(t, err)
	require.NoError(t, svc.DeleteReview(ctx, admin(99), review.ID))

	assert.Nil(t, ledger.products[42].Rating)

	rating, err := svc.ProductRating(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, rating)
}

func TestProductRating_UnknownProduct(t *testing.T) {
	svc := newReviewService(newFakeLedger())

	_, err := svc.ProductRating(context.Background(), 42)
	require.Error(t, err)
	assert.Equal(t, 404, apperrors.ToDomainError(err).HTTPStatus)
}
