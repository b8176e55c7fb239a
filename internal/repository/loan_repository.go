package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/wekeza/pricing-engine/internal/domain"
)

type loanRepository struct {
	db *sqlx.DB
}

func NewLoanRepository(db *sqlx.DB) LoanRepository {
	return &loanRepository{db: db}
}

func (r *loanRepository) Create(ctx context.Context, loan *domain.Loan) error {
	query := `
		INSERT INTO loans (id, loan_id, customer_id, product_id, type_id, principal,
			interest_rate, total_interest, processing_fee, registration_fee,
			total_payable, weekly_installment, duration_weeks,
			officer_id, branch_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`

	_, err := r.db.ExecContext(ctx, query,
		loan.ID,
		loan.LoanID,
		loan.CustomerID,
		loan.ProductID,
		loan.TypeID,
		loan.Principal,
		loan.InterestRate,
		loan.TotalInterest,
		loan.ProcessingFee,
		loan.RegistrationFee,
		loan.TotalPayable,
		loan.WeeklyInstallment,
		loan.DurationWeeks,
		loan.OfficerID,
		loan.BranchID,
		loan.Status,
		loan.CreatedAt,
		loan.UpdatedAt,
	)

	return err
}

func (r *loanRepository) GetByLoanID(ctx context.Context, loanID string) (*domain.Loan, error) {
	query := `
		SELECT id, loan_id, customer_id, product_id, type_id, principal,
		       interest_rate, total_interest, processing_fee, registration_fee,
		       total_payable, weekly_installment, duration_weeks,
		       officer_id, branch_id, status, created_at, updated_at
		FROM loans
		WHERE loan_id = $1
	`

	var loan domain.Loan
	err := r.db.GetContext(ctx, &loan, query, loanID)
	if err != nil {
		return nil, err
	}

	return &loan, nil
}

func (r *loanRepository) CreateSchedule(ctx context.Context, schedules []*domain.LoanSchedule) error {
	query := `
		INSERT INTO loan_schedule (id, loan_id, week_number, due_amount,
			interest_portion, processing_fee_due, registration_fee_due,
			due_date, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, schedule := range schedules {
		_, err = tx.ExecContext(ctx, query,
			schedule.ID,
			schedule.LoanID,
			schedule.WeekNumber,
			schedule.DueAmount,
			schedule.InterestPortion,
			schedule.ProcessingFeeDue,
			schedule.RegistrationFeeDue,
			schedule.DueDate,
			schedule.Status,
			schedule.CreatedAt,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *loanRepository) GetScheduleByLoanID(ctx context.Context, loanID string) ([]*domain.LoanSchedule, error) {
	query := `
		SELECT id, loan_id, week_number, due_amount, interest_portion,
		       processing_fee_due, registration_fee_due, due_date, status, created_at
		FROM loan_schedule
		WHERE loan_id = $1
		ORDER BY week_number
	`

	var schedules []*domain.LoanSchedule
	err := r.db.SelectContext(ctx, &schedules, query, loanID)
	if err != nil {
		return nil, err
	}

	return schedules, nil
}

func (r *loanRepository) MarkSchedulesOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	query := `
		UPDATE loan_schedule
		SET status = $1
		WHERE status = $2 AND due_date < $3
	`

	result, err := r.db.ExecContext(ctx, query,
		domain.ScheduleStatusOverdue,
		domain.ScheduleStatusPending,
		asOf,
	)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}
