package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/shop-reviews/internal/domain"
)

// SoftDeleteResult reports the outcome of a review soft-delete. Found is
// false when the review id did not resolve; the call is then a committed
// no-op and ProductRating is meaningless.
type SoftDeleteResult struct {
	Found         bool
	ProductID     int64
	ProductRating *float64
}

// ReviewRepository encapsulates the rating and review ledgers. The two
// mutating operations run as single transactions that also refresh the
// product aggregate, so the stored mean is never stale relative to
// committed ledger state.
type ReviewRepository interface {
	CreateWithRating(ctx context.Context, rating *domain.Rating, review *domain.Review) (*float64, error)
	SoftDeleteWithRating(ctx context.Context, reviewID int64) (SoftDeleteResult, error)
	ListActive(ctx context.Context) ([]domain.Review, error)
	ListByProduct(ctx context.Context, productID int64) ([]domain.Review, error)
}

type reviewRepository struct {
	pool *pgxpool.Pool
}

// NewReviewRepository instantiates repository.
func NewReviewRepository(pool *pgxpool.Pool) ReviewRepository {
	return &reviewRepository{pool: pool}
}

// CreateWithRating inserts the rating, the review referencing it and the
// refreshed aggregate in one transaction. The new aggregate is returned.
func (r *reviewRepository) CreateWithRating(ctx context.Context, rating *domain.Rating, review *domain.Review) (*float64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const insertRating = `
        INSERT INTO ratings (grade, user_id, product_id)
        VALUES ($1,$2,$3)
        RETURNING id, is_active`
	if err := tx.QueryRow(ctx, insertRating,
		rating.Grade,
		rating.UserID,
		rating.ProductID,
	).Scan(&rating.ID, &rating.IsActive); err != nil {
		return nil, err
	}

	review.RatingID = rating.ID

	const insertReview = `
        INSERT INTO reviews (user_id, product_id, rating_id, comment)
        VALUES ($1,$2,$3,$4)
        RETURNING id, comment_date, is_active`
	if err := tx.QueryRow(ctx, insertReview,
		review.UserID,
		review.ProductID,
		review.RatingID,
		review.Comment,
	).Scan(&review.ID, &review.CommentDate, &review.IsActive); err != nil {
		return nil, err
	}

	productRating, err := recomputeProductRating(ctx, tx, review.ProductID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return productRating, nil
}

// SoftDeleteWithRating deactivates the review and its linked rating and
// refreshes the product aggregate, all in one transaction. An unknown
// review id commits nothing and reports Found=false.
func (r *reviewRepository) SoftDeleteWithRating(ctx context.Context, reviewID int64) (SoftDeleteResult, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return SoftDeleteResult{}, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const resolve = `SELECT rating_id, product_id FROM reviews WHERE id=$1`

	var ratingID, productID int64
	if err := tx.QueryRow(ctx, resolve, reviewID).Scan(&ratingID, &productID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return SoftDeleteResult{Found: false}, nil
		}
		return SoftDeleteResult{}, err
	}

	if _, err := tx.Exec(ctx, `UPDATE reviews SET is_active=FALSE WHERE id=$1`, reviewID); err != nil {
		return SoftDeleteResult{}, err
	}
	if _, err := tx.Exec(ctx, `UPDATE ratings SET is_active=FALSE WHERE id=$1`, ratingID); err != nil {
		return SoftDeleteResult{}, err
	}

	productRating, err := recomputeProductRating(ctx, tx, productID)
	if err != nil {
		return SoftDeleteResult{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return SoftDeleteResult{}, err
	}
	return SoftDeleteResult{Found: true, ProductID: productID, ProductRating: productRating}, nil
}

// recomputeProductRating sets the product mean from its active ratings.
// AVG over an empty set yields SQL NULL, which clears the stored rating.
func recomputeProductRating(ctx context.Context, tx pgx.Tx, productID int64) (*float64, error) {
	const query = `
        UPDATE products
        SET rating = (SELECT AVG(grade) FROM ratings WHERE product_id=$1 AND is_active)
        WHERE id=$1
        RETURNING rating`

	var rating *float64
	if err := tx.QueryRow(ctx, query, productID).Scan(&rating); err != nil {
		return nil, err
	}
	return rating, nil
}

// ListActive returns active reviews ordered by comment date ascending.
func (r *reviewRepository) ListActive(ctx context.Context) ([]domain.Review, error) {
	const query = `
        SELECT id, user_id, product_id, rating_id, comment, comment_date, is_active
        FROM reviews WHERE is_active ORDER BY comment_date`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReviews(rows)
}

// ListByProduct returns every review for the product, active or not.
func (r *reviewRepository) ListByProduct(ctx context.Context, productID int64) ([]domain.Review, error) {
	const query = `
        SELECT id, user_id, product_id, rating_id, comment, comment_date, is_active
        FROM reviews WHERE product_id=$1`

	rows, err := r.pool.Query(ctx, query, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReviews(rows)
}

func scanReviews(rows pgx.Rows) ([]domain.Review, error) {
	var result []domain.Review
	for rows.Next() {
		var review domain.Review
		if err := rows.Scan(
			&review.ID,
			&review.UserID,
			&review.ProductID,
			&review.RatingID,
			&review.Comment,
			&review.CommentDate,
			&review.IsActive,
		); err != nil {
			return nil, err
		}
		result = append(result, review)
	}
	return result, rows.Err()
}
