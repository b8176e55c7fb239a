package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/wekeza/pricing-engine/internal/domain"
)

type customerRepository struct {
	db *sqlx.DB
}

func NewCustomerRepository(db *sqlx.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) GetByID(ctx context.Context, customerID int64) (*domain.Customer, error) {
	query := `
		SELECT id, name, approved_limit, created_at
		FROM customers
		WHERE id = $1
	`

	var customer domain.Customer
	err := r.db.GetContext(ctx, &customer, query, customerID)
	if err != nil {
		return nil, err
	}

	return &customer, nil
}

func (r *customerRepository) GetLoanHistory(ctx context.Context, customerID int64) ([]*domain.CustomerLoanRecord, error) {
	query := `
		SELECT id, customer_id, status, created_at
		FROM customer_loans
		WHERE customer_id = $1
		ORDER BY created_at
	`

	var records []*domain.CustomerLoanRecord
	err := r.db.SelectContext(ctx, &records, query, customerID)
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *customerRepository) AppendLoanRecord(ctx context.Context, record *domain.CustomerLoanRecord) error {
	query := `
		INSERT INTO customer_loans (customer_id, status, created_at)
		VALUES ($1, $2, $3)
	`

	_, err := r.db.ExecContext(ctx, query,
		record.CustomerID,
		record.Status,
		record.CreatedAt,
	)

	return err
}
