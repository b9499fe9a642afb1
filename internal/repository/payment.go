package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/emprestai/emprestai-api/internal/calculations"
	"github.com/emprestai/emprestai-api/internal/models"
)

type PaymentRepository struct {
	db     *sql.DB
	logger *logrus.Logger
}

func NewPaymentRepository(db *sql.DB, logger *logrus.Logger) *PaymentRepository {
	return &PaymentRepository{db: db, logger: logger}
}

// ListByLoan возвращает график платежей по заявке
func (r *PaymentRepository) ListByLoan(ctx context.Context, loanID uuid.UUID) ([]models.LoanPayment, error) {
	query := `
        SELECT id, loan_request_id, installment_number, due_date, amount, status,
               paid_amount, paid_at, late_fee, created_at, updated_at
        FROM loan_payments
        WHERE loan_request_id = $1
        ORDER BY installment_number
    `

	rows, err := r.db.QueryContext(ctx, query, loanID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	payments := []models.LoanPayment{}
	for rows.Next() {
		var p models.LoanPayment
		if err := rows.Scan(
			&p.ID,
			&p.LoanRequestID,
			&p.InstallmentNumber,
			&p.DueDate,
			&p.Amount,
			&p.Status,
			&p.PaidAmount,
			&p.PaidAt,
			&p.LateFee,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return payments, nil
}

// MarkOverdue помечает просроченными ожидающие платежи со сроком раньше дня before
func (r *PaymentRepository) MarkOverdue(ctx context.Context, before time.Time) (int64, error) {
	query := `
        UPDATE loan_payments
        SET status = $1, updated_at = now()
        WHERE status = $2 AND due_date < $3
    `
	res, err := r.db.ExecContext(ctx, query, calculations.PaymentOverdue, calculations.PaymentPending, before.Format("2006-01-02"))
	if err != nil {
		return 0, fmt.Errorf("failed to mark overdue payments: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check updated rows: %w", err)
	}
	return affected, nil
}

// CountOverdue считает просроченные платежи
func (r *PaymentRepository) CountOverdue(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM loan_payments WHERE status = $1`,
		calculations.PaymentOverdue,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count overdue payments: %w", err)
	}
	return count, nil
}
