package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile данные клиента (таблица profiles). CPF и телефон хранятся цифрами.
type Profile struct {
	ID            uuid.UUID `json:"id" db:"id"`
	UserID        uuid.UUID `json:"user_id" db:"user_id"`
	FullName      string    `json:"full_name" db:"full_name"`
	Email         string    `json:"email" db:"email"`
	CPF           string    `json:"cpf" db:"cpf"`
	Phone         string    `json:"phone" db:"phone"`
	Address       *string   `json:"address,omitempty" db:"address"`
	City          *string   `json:"city,omitempty" db:"city"`
	State         *string   `json:"state,omitempty" db:"state"`
	ZipCode       *string   `json:"zip_code,omitempty" db:"zip_code"`
	Occupation    *string   `json:"occupation,omitempty" db:"occupation"`
	Employer      *string   `json:"employer,omitempty" db:"employer"`
	MonthlyIncome *float64  `json:"monthly_income,omitempty" db:"monthly_income"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// BankAccount счет для зачисления кредита, один на клиента (таблица bank_accounts)
type BankAccount struct {
	ID            uuid.UUID `json:"id" db:"id"`
	UserID        uuid.UUID `json:"user_id" db:"user_id"`
	BankName      string    `json:"bank_name" db:"bank_name"`
	Agency        string    `json:"agency" db:"agency"`
	AccountNumber string    `json:"account_number" db:"account_number"`
	AccountType   string    `json:"account_type" db:"account_type"`
	PixKey        *string   `json:"pix_key,omitempty" db:"pix_key"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// Типы счета
const (
	AccountChecking = "corrente"
	AccountSavings  = "poupanca"
)

// ValidAccountType сообщает, известен ли тип счета
func ValidAccountType(t string) bool {
	return t == AccountChecking || t == AccountSavings
}

// ActiveStatuses статусы заявок, которые считаются действующими
var ActiveStatuses = []LoanStatus{
	StatusPending,
	StatusUnderReview,
	StatusApproved,
	StatusDisbursed,
}

// Active сообщает, является ли заявка действующей
func (s LoanStatus) Active() bool {
	for _, st := range ActiveStatuses {
		if s == st {
			return true
		}
	}
	return false
}

// UserSummary строка списка клиентов для администратора
type UserSummary struct {
	UserID      uuid.UUID `json:"user_id"`
	FullName    string    `json:"full_name"`
	Email       string    `json:"email"`
	CPF         string    `json:"cpf"`
	Phone       string    `json:"phone"`
	City        *string   `json:"city,omitempty"`
	State       *string   `json:"state,omitempty"`
	TotalLoans  int       `json:"total_loans"`
	ActiveLoans int       `json:"active_loans"`
	CreatedAt   time.Time `json:"created_at"`
}
