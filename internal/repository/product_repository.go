package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/wekeza/pricing-engine/internal/domain"
)

type productRepository struct {
	db *sqlx.DB
}

func NewProductRepository(db *sqlx.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) ListProducts(ctx context.Context) ([]*domain.LoanProduct, error) {
	query := `
		SELECT id, name, min_amount, max_amount, registration_fee
		FROM loan_products
		ORDER BY min_amount
	`

	var products []*domain.LoanProduct
	err := r.db.SelectContext(ctx, &products, query)
	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepository) ListProductTypes(ctx context.Context) ([]*domain.ProductType, error) {
	query := `
		SELECT id, product_id, name, duration_weeks, interest_rate,
		       processing_fee_rate, processing_fee_mode, registration_fee, penalty_rate
		FROM product_types
		ORDER BY product_id, duration_weeks, id
	`

	var types []*domain.ProductType
	err := r.db.SelectContext(ctx, &types, query)
	if err != nil {
		return nil, err
	}

	return types, nil
}
