package calculations

import (
	"math"

	"github.com/emprestai/emprestai-api/pkg/utils"
)

// CalculateLoan рассчитывает простую симуляцию кредита по таблице Price
// (аннуитет с фиксированным платежом).
//
// Платёж округляется до копеек один раз и используется для всех периодов.
// Остаток долга между периодами не округляется: округление применяется только
// к значениям, попадающим в график. Диапазон входных значений не проверяется,
// при termMonths <= 0 график пустой, а платёж равен результату формулы
// (+Inf или NaN).
func CalculateLoan(amount float64, termMonths int, monthlyInterestRate float64) LoanSimulation {
	P := amount
	n := termMonths
	r := monthlyInterestRate

	var monthlyPayment float64
	if r == 0 {
		monthlyPayment = P / float64(n)
	} else {
		factor := math.Pow(1+r, float64(n))
		monthlyPayment = P * (r * factor) / (factor - 1)
	}
	monthlyPayment = utils.Round2(monthlyPayment)

	totalAmount := monthlyPayment * float64(n)
	totalInterest := totalAmount - P

	schedule := make([]AmortizationEntry, 0, max(n, 0))
	balance := P

	for i := 1; i <= n; i++ {
		interest := balance * r
		principal := monthlyPayment - interest
		balance -= principal

		schedule = append(schedule, AmortizationEntry{
			Installment: i,
			Payment:     utils.Round2(monthlyPayment),
			Principal:   utils.Round2(principal),
			Interest:    utils.Round2(interest),
			Balance:     math.Max(0, utils.Round2(balance)),
		})
	}

	return LoanSimulation{
		Amount:               amount,
		TermMonths:           termMonths,
		InterestRate:         monthlyInterestRate,
		MonthlyPayment:       monthlyPayment,
		TotalAmount:          utils.Round2(totalAmount),
		TotalInterest:        utils.Round2(totalInterest),
		AmortizationSchedule: schedule,
	}
}
