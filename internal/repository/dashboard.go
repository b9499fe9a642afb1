package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/emprestai/emprestai-api/internal/models"
)

type DashboardRepository struct {
	db     *sql.DB
	logger *logrus.Logger
}

func NewDashboardRepository(db *sql.DB, logger *logrus.Logger) *DashboardRepository {
	return &DashboardRepository{db: db, logger: logger}
}

// LoanSummaries возвращает сумму и статус каждой заявки
func (r *DashboardRepository) LoanSummaries(ctx context.Context) ([]models.LoanSummary, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT amount, status FROM loan_requests`)
	if err != nil {
		return nil, fmt.Errorf("failed to query loan summaries: %w", err)
	}
	defer rows.Close()

	var out []models.LoanSummary
	for rows.Next() {
		var s models.LoanSummary
		if err := rows.Scan(&s.Amount, &s.Status); err != nil {
			return nil, fmt.Errorf("failed to scan loan summary: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// CountClients считает клиентов, подававших заявки
func (r *DashboardRepository) CountClients(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(DISTINCT user_id) FROM loan_requests`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count clients: %w", err)
	}
	return count, nil
}

// RecentLoans возвращает последние limit заявок
func (r *DashboardRepository) RecentLoans(ctx context.Context, limit int) ([]models.RecentLoan, error) {
	query := `
        SELECT id, user_id, amount, status, created_at
        FROM loan_requests
        ORDER BY created_at DESC
        LIMIT $1
    `
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent loans: %w", err)
	}
	defer rows.Close()

	out := []models.RecentLoan{}
	for rows.Next() {
		var l models.RecentLoan
		if err := rows.Scan(&l.ID, &l.UserID, &l.Amount, &l.Status, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan recent loan: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
