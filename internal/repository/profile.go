package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/emprestai/emprestai-api/internal/models"
)

type ProfileRepository struct {
	db     *sql.DB
	logger *logrus.Logger
}

func NewProfileRepository(db *sql.DB, logger *logrus.Logger) *ProfileRepository {
	return &ProfileRepository{db: db, logger: logger}
}

const profileColumns = `id, user_id, full_name, email, cpf, phone, address, city, state, zip_code,
       occupation, employer, monthly_income, created_at, updated_at`

// GetByUserID возвращает профиль клиента
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1`

	var p models.Profile
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&p.ID,
		&p.UserID,
		&p.FullName,
		&p.Email,
		&p.CPF,
		&p.Phone,
		&p.Address,
		&p.City,
		&p.State,
		&p.ZipCode,
		&p.Occupation,
		&p.Employer,
		&p.MonthlyIncome,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &p, nil
}

// Upsert создает профиль или обновляет его по user_id.
// Занятый другим клиентом CPF дает ErrDuplicate.
func (r *ProfileRepository) Upsert(ctx context.Context, p *models.Profile) error {
	query := `
        INSERT INTO profiles (id, user_id, full_name, email, cpf, phone, address, city, state, zip_code,
                              occupation, employer, monthly_income, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
        ON CONFLICT (user_id)
        DO UPDATE SET full_name = EXCLUDED.full_name,
                      email = EXCLUDED.email,
                      cpf = EXCLUDED.cpf,
                      phone = EXCLUDED.phone,
                      address = EXCLUDED.address,
                      city = EXCLUDED.city,
                      state = EXCLUDED.state,
                      zip_code = EXCLUDED.zip_code,
                      occupation = EXCLUDED.occupation,
                      employer = EXCLUDED.employer,
                      monthly_income = EXCLUDED.monthly_income,
                      updated_at = EXCLUDED.updated_at
        RETURNING id, created_at
    `
	err := r.db.QueryRowContext(
		ctx,
		query,
		p.ID,
		p.UserID,
		p.FullName,
		p.Email,
		p.CPF,
		p.Phone,
		p.Address,
		p.City,
		p.State,
		p.ZipCode,
		p.Occupation,
		p.Employer,
		p.MonthlyIncome,
		p.CreatedAt,
		p.UpdatedAt,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", mapPQError(err))
	}

	r.logger.WithField("user_id", p.UserID).Debug("Профиль сохранен")
	return nil
}

// GetBankAccount возвращает счет клиента
func (r *ProfileRepository) GetBankAccount(ctx context.Context, userID uuid.UUID) (*models.BankAccount, error) {
	query := `
        SELECT id, user_id, bank_name, agency, account_number, account_type, pix_key, created_at, updated_at
        FROM bank_accounts
        WHERE user_id = $1
    `
	var a models.BankAccount
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&a.ID,
		&a.UserID,
		&a.BankName,
		&a.Agency,
		&a.AccountNumber,
		&a.AccountType,
		&a.PixKey,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get bank account: %w", err)
	}
	return &a, nil
}

// UpsertBankAccount создает или заменяет единственный счет клиента.
// Без профиля вставка нарушает внешний ключ и дает ErrNotFound.
func (r *ProfileRepository) UpsertBankAccount(ctx context.Context, a *models.BankAccount) error {
	query := `
        INSERT INTO bank_accounts (id, user_id, bank_name, agency, account_number, account_type, pix_key,
                                   created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        ON CONFLICT (user_id)
        DO UPDATE SET bank_name = EXCLUDED.bank_name,
                      agency = EXCLUDED.agency,
                      account_number = EXCLUDED.account_number,
                      account_type = EXCLUDED.account_type,
                      pix_key = EXCLUDED.pix_key,
                      updated_at = EXCLUDED.updated_at
        RETURNING id, created_at
    `
	err := r.db.QueryRowContext(
		ctx,
		query,
		a.ID,
		a.UserID,
		a.BankName,
		a.Agency,
		a.AccountNumber,
		a.AccountType,
		a.PixKey,
		a.CreatedAt,
		a.UpdatedAt,
	).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save bank account: %w", mapPQError(err))
	}

	r.logger.WithField("user_id", a.UserID).Debug("Банковский счет сохранен")
	return nil
}

// ListUsers возвращает клиентов с количеством заявок, новые первыми.
// CPF и телефон возвращаются как хранятся, цифрами.
func (r *ProfileRepository) ListUsers(ctx context.Context) ([]models.UserSummary, error) {
	query := `
        SELECT p.user_id, p.full_name, p.email, p.cpf, p.phone, p.city, p.state, p.created_at,
               COUNT(l.id),
               COUNT(l.id) FILTER (WHERE l.status = ANY($1))
        FROM profiles p
        LEFT JOIN loan_requests l ON l.user_id = p.user_id
        GROUP BY p.id
        ORDER BY p.created_at DESC
    `
	active := make([]string, 0, len(models.ActiveStatuses))
	for _, st := range models.ActiveStatuses {
		active = append(active, string(st))
	}

	rows, err := r.db.QueryContext(ctx, query, pq.Array(active))
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := []models.UserSummary{}
	for rows.Next() {
		var u models.UserSummary
		if err := rows.Scan(
			&u.UserID,
			&u.FullName,
			&u.Email,
			&u.CPF,
			&u.Phone,
			&u.City,
			&u.State,
			&u.CreatedAt,
			&u.TotalLoans,
			&u.ActiveLoans,
		); err != nil {
			r.logger.WithError(err).Error("Failed to scan user")
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return users, nil
}
