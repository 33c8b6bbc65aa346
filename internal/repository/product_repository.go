package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/shop-reviews/internal/domain"
)

// ProductRepository exposes the slice of the catalog the review subsystem
// needs: active-product lookup and the stored aggregate rating.
type ProductRepository interface {
	GetActiveByID(ctx context.Context, id int64) (*domain.Product, error)
	GetRating(ctx context.Context, id int64) (*float64, error)
}

type productRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository returns a Postgres-backed implementation.
func NewProductRepository(pool *pgxpool.Pool) ProductRepository {
	return &productRepository{pool: pool}
}

func (r *productRepository) GetActiveByID(ctx context.Context, id int64) (*domain.Product, error) {
	const query = `
        SELECT id, name, slug, description, price, image_url, stock, category_id, supplier_id, rating, is_active
        FROM products WHERE id=$1 AND is_active`

	var product domain.Product
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&product.ID,
		&product.Name,
		&product.Slug,
		&product.Description,
		&product.Price,
		&product.ImageURL,
		&product.Stock,
		&product.CategoryID,
		&product.SupplierID,
		&product.Rating,
		&product.IsActive,
	); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) GetRating(ctx context.Context, id int64) (*float64, error) {
	const query = `SELECT rating FROM products WHERE id=$1`

	var rating *float64
	if err := r.pool.QueryRow(ctx, query, id).Scan(&rating); err != nil {
		return nil, err
	}
	return rating, nil
}
