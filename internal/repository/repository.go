package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

var (
	// ErrNotFound запись не найдена
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate нарушено ограничение уникальности
	ErrDuplicate = errors.New("duplicate record")
	// ErrStaleStatus статус записи изменился после чтения
	ErrStaleStatus = errors.New("record status changed concurrently")
)

// Schema создает таблицы, если их еще нет
const Schema = `
CREATE TABLE IF NOT EXISTS loan_requests (
    id               UUID PRIMARY KEY,
    user_id          UUID NOT NULL,
    amount           NUMERIC(14,2) NOT NULL,
    term_months      INTEGER NOT NULL,
    interest_rate    DOUBLE PRECISION NOT NULL,
    monthly_payment  NUMERIC(14,2) NOT NULL,
    total_amount     NUMERIC(14,2) NOT NULL,
    purpose          TEXT,
    request_location JSONB,
    status           TEXT NOT NULL DEFAULT 'pending',
    admin_notes      TEXT,
    reviewed_by      UUID,
    reviewed_at      TIMESTAMPTZ,
    disbursed_at     TIMESTAMPTZ,
    created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS loan_requests_user_idx ON loan_requests (user_id);
CREATE INDEX IF NOT EXISTS loan_requests_status_idx ON loan_requests (status);

CREATE TABLE IF NOT EXISTS loan_references (
    id              UUID PRIMARY KEY,
    loan_request_id UUID NOT NULL REFERENCES loan_requests (id) ON DELETE CASCADE,
    name            TEXT NOT NULL,
    phone           TEXT NOT NULL,
    relationship    TEXT NOT NULL,
    created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS loan_payments (
    id                 UUID PRIMARY KEY,
    loan_request_id    UUID NOT NULL REFERENCES loan_requests (id) ON DELETE CASCADE,
    installment_number INTEGER NOT NULL,
    due_date           DATE NOT NULL,
    amount             NUMERIC(14,2) NOT NULL,
    status             TEXT NOT NULL DEFAULT 'pending',
    paid_amount        NUMERIC(14,2),
    paid_at            TIMESTAMPTZ,
    late_fee           NUMERIC(14,2),
    created_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
    UNIQUE (loan_request_id, installment_number)
);

CREATE TABLE IF NOT EXISTS profiles (
    id             UUID PRIMARY KEY,
    user_id        UUID NOT NULL UNIQUE,
    full_name      TEXT NOT NULL,
    email          TEXT NOT NULL,
    cpf            TEXT NOT NULL UNIQUE,
    phone          TEXT NOT NULL,
    address        TEXT,
    city           TEXT,
    state          TEXT,
    zip_code       TEXT,
    occupation     TEXT,
    employer       TEXT,
    monthly_income NUMERIC(14,2),
    created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS bank_accounts (
    id             UUID PRIMARY KEY,
    user_id        UUID NOT NULL UNIQUE REFERENCES profiles (user_id) ON DELETE CASCADE,
    bank_name      TEXT NOT NULL,
    agency         TEXT NOT NULL,
    account_number TEXT NOT NULL,
    account_type   TEXT NOT NULL,
    pix_key        TEXT,
    created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS system_settings (
    setting_key   TEXT PRIMARY KEY,
    setting_value TEXT NOT NULL,
    description   TEXT,
    updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// EnsureSchema применяет Schema
func EnsureSchema(ctx context.Context, db *sql.DB, logger *logrus.Logger) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	logger.Info("Схема базы данных проверена")
	return nil
}

// mapPQError переводит ошибки драйвера в ошибки репозитория
func mapPQError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Name() {
		case "unique_violation":
			return fmt.Errorf("%w: %s", ErrDuplicate, pqErr.Constraint)
		case "foreign_key_violation":
			return fmt.Errorf("%w: %s", ErrNotFound, pqErr.Constraint)
		}
	}
	return err
}
