package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DashboardStats сводка для панели администратора
type DashboardStats struct {
	TotalLoans      int             `json:"total_loans"`
	PendingLoans    int             `json:"pending_loans"`
	ApprovedLoans   int             `json:"approved_loans"`
	RejectedLoans   int             `json:"rejected_loans"`
	DisbursedLoans  int             `json:"disbursed_loans"`
	TotalDisbursed  decimal.Decimal `json:"total_disbursed"`
	TotalClients    int             `json:"total_clients"`
	OverduePayments int             `json:"overdue_payments"`
	RecentLoans     []RecentLoan    `json:"recent_loans"`
}

// LoanSummary минимальные поля заявки для агрегатов
type LoanSummary struct {
	Amount float64
	Status LoanStatus
}

// RecentLoan последняя поступившая заявка
type RecentLoan struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	Amount    float64    `json:"amount"`
	Status    LoanStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
}
