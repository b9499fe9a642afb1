package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/emprestai/emprestai-api/internal/calculations"
)

// LoanPayment строка графика платежей (таблица loan_payments)
type LoanPayment struct {
	ID                uuid.UUID                  `json:"id" db:"id"`
	LoanRequestID     uuid.UUID                  `json:"loan_request_id" db:"loan_request_id"`
	InstallmentNumber int                        `json:"installment_number" db:"installment_number"`
	DueDate           time.Time                  `json:"due_date" db:"due_date"`
	Amount            float64                    `json:"amount" db:"amount"`
	Status            calculations.PaymentStatus `json:"status" db:"status"`
	PaidAmount        *float64                   `json:"paid_amount,omitempty" db:"paid_amount"`
	PaidAt            *time.Time                 `json:"paid_at,omitempty" db:"paid_at"`
	LateFee           *float64                   `json:"late_fee,omitempty" db:"late_fee"`
	CreatedAt         time.Time                  `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time                  `json:"updated_at" db:"updated_at"`
}

// PaymentsFromSchedule превращает расчетный график в строки для вставки
func PaymentsFromSchedule(loanID uuid.UUID, schedule []calculations.ScheduledPayment, now time.Time) []LoanPayment {
	payments := make([]LoanPayment, 0, len(schedule))
	for _, sp := range schedule {
		payments = append(payments, LoanPayment{
			ID:                uuid.New(),
			LoanRequestID:     loanID,
			InstallmentNumber: sp.InstallmentNumber,
			DueDate:           sp.DueDate,
			Amount:            sp.Amount,
			Status:            sp.Status,
			CreatedAt:         now,
			UpdatedAt:         now,
		})
	}
	return payments
}
