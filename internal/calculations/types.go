package calculations

import "time"

// LoanSimulation представляет результат симуляции кредита по таблице Price.
// Значение неизменяемо: любое изменение входных данных даёт новую симуляцию.
type LoanSimulation struct {
	Amount               float64             `json:"amount"`
	TermMonths           int                 `json:"termMonths"`
	InterestRate         float64             `json:"interestRate"`
	MonthlyPayment       float64             `json:"monthlyPayment"`
	TotalAmount          float64             `json:"totalAmount"`
	TotalInterest        float64             `json:"totalInterest"`
	AmortizationSchedule []AmortizationEntry `json:"amortizationSchedule"`
}

// AmortizationEntry представляет одну строку графика амортизации
type AmortizationEntry struct {
	Installment int     `json:"installment"`
	Payment     float64 `json:"payment"`
	Principal   float64 `json:"principal"`
	Interest    float64 `json:"interest"`
	Balance     float64 `json:"balance"`
}

// PaymentStatus статус платежа по выданному кредиту
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentOverdue PaymentStatus = "overdue"
)

// ScheduledPayment представляет платёж, создаваемый при выдаче кредита
type ScheduledPayment struct {
	InstallmentNumber int           `json:"installment_number"`
	DueDate           time.Time     `json:"due_date"`
	Amount            float64       `json:"amount"`
	Status            PaymentStatus `json:"status"`
}
