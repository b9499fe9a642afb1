package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/emprestai/emprestai-api/internal/models"
)

type LoanRequestRepository struct {
	db     *sql.DB
	logger *logrus.Logger
}

func NewLoanRequestRepository(db *sql.DB, logger *logrus.Logger) *LoanRequestRepository {
	return &LoanRequestRepository{db: db, logger: logger}
}

const loanColumns = `id, user_id, amount, term_months, interest_rate, monthly_payment, total_amount,
       purpose, request_location, status, admin_notes, reviewed_by, reviewed_at,
       disbursed_at, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLoan(row rowScanner) (*models.LoanRequest, error) {
	var loan models.LoanRequest
	err := row.Scan(
		&loan.ID,
		&loan.UserID,
		&loan.Amount,
		&loan.TermMonths,
		&loan.InterestRate,
		&loan.MonthlyPayment,
		&loan.TotalAmount,
		&loan.Purpose,
		&loan.Location,
		&loan.Status,
		&loan.AdminNotes,
		&loan.ReviewedBy,
		&loan.ReviewedAt,
		&loan.DisbursedAt,
		&loan.CreatedAt,
		&loan.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

// Create сохраняет заявку вместе с контактными лицами в одной транзакции
func (r *LoanRequestRepository) Create(ctx context.Context, loan *models.LoanRequest) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
        INSERT INTO loan_requests (id, user_id, amount, term_months, interest_rate, monthly_payment,
                                   total_amount, purpose, request_location, status, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
    `
	_, err = tx.ExecContext(
		ctx,
		query,
		loan.ID,
		loan.UserID,
		loan.Amount,
		loan.TermMonths,
		loan.InterestRate,
		loan.MonthlyPayment,
		loan.TotalAmount,
		loan.Purpose,
		loan.Location,
		loan.Status,
		loan.CreatedAt,
		loan.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create loan request: %w", mapPQError(err))
	}

	refQuery := `
        INSERT INTO loan_references (id, loan_request_id, name, phone, relationship, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
    `
	for _, ref := range loan.References {
		if _, err := tx.ExecContext(ctx, refQuery, ref.ID, loan.ID, ref.Name, ref.Phone, ref.Relationship, ref.CreatedAt); err != nil {
			return fmt.Errorf("failed to create loan reference: %w", mapPQError(err))
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit loan request: %w", err)
	}

	r.logger.WithFields(logrus.Fields{
		"loan_id":    loan.ID,
		"user_id":    loan.UserID,
		"references": len(loan.References),
	}).Debug("Заявка сохранена")
	return nil
}

// GetByID возвращает заявку с контактными лицами
func (r *LoanRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.LoanRequest, error) {
	query := `SELECT ` + loanColumns + ` FROM loan_requests WHERE id = $1`

	loan, err := scanLoan(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get loan request: %w", err)
	}

	refs, err := r.references(ctx, id)
	if err != nil {
		return nil, err
	}
	loan.References = refs

	return loan, nil
}

func (r *LoanRequestRepository) references(ctx context.Context, loanID uuid.UUID) ([]models.LoanReference, error) {
	query := `
        SELECT id, loan_request_id, name, phone, relationship, created_at
        FROM loan_references
        WHERE loan_request_id = $1
        ORDER BY created_at
    `
	rows, err := r.db.QueryContext(ctx, query, loanID)
	if err != nil {
		return nil, fmt.Errorf("failed to query loan references: %w", err)
	}
	defer rows.Close()

	var refs []models.LoanReference
	for rows.Next() {
		var ref models.LoanReference
		if err := rows.Scan(&ref.ID, &ref.LoanRequestID, &ref.Name, &ref.Phone, &ref.Relationship, &ref.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan loan reference: %w", err)
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

// ListByUser возвращает заявки клиента, новые первыми
func (r *LoanRequestRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.LoanRequest, error) {
	query := `SELECT ` + loanColumns + ` FROM loan_requests WHERE user_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, userID)
}

// List возвращает все заявки, при непустом status только с этим статусом
func (r *LoanRequestRepository) List(ctx context.Context, status models.LoanStatus) ([]models.LoanRequest, error) {
	if status == "" {
		return r.list(ctx, `SELECT `+loanColumns+` FROM loan_requests ORDER BY created_at DESC`)
	}
	return r.list(ctx, `SELECT `+loanColumns+` FROM loan_requests WHERE status = $1 ORDER BY created_at DESC`, status)
}

func (r *LoanRequestRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.LoanRequest, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query loan requests: %w", err)
	}
	defer rows.Close()

	loans := []models.LoanRequest{}
	for rows.Next() {
		loan, err := scanLoan(rows)
		if err != nil {
			r.logger.WithError(err).Error("Failed to scan loan request")
			return nil, fmt.Errorf("failed to scan loan request: %w", err)
		}
		loans = append(loans, *loan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return loans, nil
}

// UpdateReview сохраняет результат рассмотрения заявки, если ее статус
// все еще равен from
func (r *LoanRequestRepository) UpdateReview(ctx context.Context, loan *models.LoanRequest, from models.LoanStatus) error {
	return r.updateReview(ctx, r.db, loan, from)
}

type querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func (r *LoanRequestRepository) updateReview(ctx context.Context, db querier, loan *models.LoanRequest, from models.LoanStatus) error {
	query := `
        UPDATE loan_requests
        SET status = $1, admin_notes = $2, reviewed_by = $3, reviewed_at = $4,
            disbursed_at = $5, updated_at = $6
        WHERE id = $7 AND status = $8
    `
	res, err := db.ExecContext(
		ctx,
		query,
		loan.Status,
		loan.AdminNotes,
		loan.ReviewedBy,
		loan.ReviewedAt,
		loan.DisbursedAt,
		loan.UpdatedAt,
		loan.ID,
		from,
	)
	if err != nil {
		return fmt.Errorf("failed to update loan request: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}
	if affected > 0 {
		return nil
	}

	// Ни одна строка не обновлена: заявки нет или ее статус уже другой
	var current models.LoanStatus
	err = db.QueryRowContext(ctx, `SELECT status FROM loan_requests WHERE id = $1`, loan.ID).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to check loan request status: %w", err)
	}

	r.logger.WithFields(logrus.Fields{
		"loan_id":  loan.ID,
		"expected": from,
		"current":  current,
	}).Warn("Статус заявки изменен параллельно")
	return fmt.Errorf("%w: expected %s, found %s", ErrStaleStatus, from, current)
}

// Disburse переводит заявку из статуса from в disbursed и создает график
// платежей в одной транзакции.
// Повторное создание графика отклоняется уникальным индексом (ErrDuplicate).
func (r *LoanRequestRepository) Disburse(ctx context.Context, loan *models.LoanRequest, from models.LoanStatus, payments []models.LoanPayment) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := r.updateReview(ctx, tx, loan, from); err != nil {
		return err
	}

	query := `
        INSERT INTO loan_payments (id, loan_request_id, installment_number, due_date, amount, status,
                                   created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `
	for _, p := range payments {
		_, err := tx.ExecContext(ctx, query,
			p.ID,
			p.LoanRequestID,
			p.InstallmentNumber,
			p.DueDate,
			p.Amount,
			p.Status,
			p.CreatedAt,
			p.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create payment %d: %w", p.InstallmentNumber, mapPQError(err))
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit disbursement: %w", err)
	}

	r.logger.WithFields(logrus.Fields{
		"loan_id":  loan.ID,
		"payments": len(payments),
	}).Info("График платежей создан")
	return nil
}
