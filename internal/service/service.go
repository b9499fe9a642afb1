package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/emprestai/emprestai-api/internal/models"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrForbidden         = errors.New("forbidden")
	ErrConflict          = errors.New("conflict")
)

// Clock возвращает текущее время, в тестах подменяется
type Clock func() time.Time

// LoanRequestStore хранилище заявок
type LoanRequestStore interface {
	Create(ctx context.Context, loan *models.LoanRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.LoanRequest, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.LoanRequest, error)
	List(ctx context.Context, status models.LoanStatus) ([]models.LoanRequest, error)
	UpdateReview(ctx context.Context, loan *models.LoanRequest, from models.LoanStatus) error
	Disburse(ctx context.Context, loan *models.LoanRequest, from models.LoanStatus, payments []models.LoanPayment) error
}

// PaymentStore хранилище платежей
type PaymentStore interface {
	ListByLoan(ctx context.Context, loanID uuid.UUID) ([]models.LoanPayment, error)
	MarkOverdue(ctx context.Context, before time.Time) (int64, error)
	CountOverdue(ctx context.Context) (int, error)
}

// SettingsStore хранилище настроек
type SettingsStore interface {
	All(ctx context.Context) ([]models.SystemSetting, error)
	Upsert(ctx context.Context, settings []models.SystemSetting) error
}

// DashboardStore источник агрегатов для панели администратора
type DashboardStore interface {
	LoanSummaries(ctx context.Context) ([]models.LoanSummary, error)
	CountClients(ctx context.Context) (int, error)
	RecentLoans(ctx context.Context, limit int) ([]models.RecentLoan, error)
}

// SettingsProvider отдает действующие настройки
type SettingsProvider interface {
	Current(ctx context.Context) (models.Settings, error)
}

// ProfileStore хранилище профилей и банковских счетов клиентов
type ProfileStore interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	Upsert(ctx context.Context, p *models.Profile) error
	GetBankAccount(ctx context.Context, userID uuid.UUID) (*models.BankAccount, error)
	UpsertBankAccount(ctx context.Context, a *models.BankAccount) error
	ListUsers(ctx context.Context) ([]models.UserSummary, error)
}
