package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// LoanStatus статус заявки на кредит
type LoanStatus string

const (
	StatusPending     LoanStatus = "pending"
	StatusUnderReview LoanStatus = "under_review"
	StatusApproved    LoanStatus = "approved"
	StatusRejected    LoanStatus = "rejected"
	StatusDisbursed   LoanStatus = "disbursed"
	StatusCompleted   LoanStatus = "completed"
)

// AllStatuses перечисляет статусы в порядке жизненного цикла заявки
var AllStatuses = []LoanStatus{
	StatusPending,
	StatusUnderReview,
	StatusApproved,
	StatusRejected,
	StatusDisbursed,
	StatusCompleted,
}

// Valid сообщает, известен ли статус
func (s LoanStatus) Valid() bool {
	for _, st := range AllStatuses {
		if s == st {
			return true
		}
	}
	return false
}

// LoanRequest заявка клиента (таблица loan_requests).
// InterestRate хранится долей в месяц, как пришло из симуляции.
type LoanRequest struct {
	ID             uuid.UUID       `json:"id" db:"id"`
	UserID         uuid.UUID       `json:"user_id" db:"user_id"`
	Amount         float64         `json:"amount" db:"amount"`
	TermMonths     int             `json:"term_months" db:"term_months"`
	InterestRate   float64         `json:"interest_rate" db:"interest_rate"`
	MonthlyPayment float64         `json:"monthly_payment" db:"monthly_payment"`
	TotalAmount    float64         `json:"total_amount" db:"total_amount"`
	Purpose        *string         `json:"purpose,omitempty" db:"purpose"`
	Location       *Location       `json:"request_location,omitempty" db:"request_location"`
	Status         LoanStatus      `json:"status" db:"status"`
	AdminNotes     *string         `json:"admin_notes,omitempty" db:"admin_notes"`
	ReviewedBy     *uuid.UUID      `json:"reviewed_by,omitempty" db:"reviewed_by"`
	ReviewedAt     *time.Time      `json:"reviewed_at,omitempty" db:"reviewed_at"`
	DisbursedAt    *time.Time      `json:"disbursed_at,omitempty" db:"disbursed_at"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at" db:"updated_at"`
	References     []LoanReference `json:"references,omitempty" db:"-"`
}

// LoanReference контактное лицо клиента (таблица loan_references)
type LoanReference struct {
	ID            uuid.UUID `json:"id" db:"id"`
	LoanRequestID uuid.UUID `json:"loan_request_id" db:"loan_request_id"`
	Name          string    `json:"name" db:"name"`
	Phone         string    `json:"phone" db:"phone"`
	Relationship  string    `json:"relationship" db:"relationship"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// Location геопозиция, зафиксированная при подаче заявки
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Accuracy  float64 `json:"accuracy,omitempty"`
	City      string  `json:"city,omitempty"`
	State     string  `json:"state,omitempty"`
}

// Value сохраняет геопозицию в jsonb колонку
func (l *Location) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

// Scan читает геопозицию из jsonb колонки
func (l *Location) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported location type %T", src)
	}
	return json.Unmarshal(raw, l)
}
