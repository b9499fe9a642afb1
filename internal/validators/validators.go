package validators

import (
	"fmt"

	"github.com/emprestai/emprestai-api/pkg/utils"
)

// Limits определяет интерфейс для получения допустимых диапазонов кредита
type Limits interface {
	AmountRange() (minAmount, maxAmount float64)
	TermRange() (minTerm, maxTerm int)
	MaxMonthlyRate() float64
}

// ValidationError описывает ошибку проверки конкретного поля
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidatePositiveNumber проверяет, что число конечное и в допустимом диапазоне
func ValidatePositiveNumber(name string, value float64, minInclusive, maxInclusive float64) error {
	if !utils.IsFinite(value) {
		return &ValidationError{Field: name, Message: "value is not a finite number"}
	}
	if value < minInclusive {
		return &ValidationError{Field: name, Message: fmt.Sprintf("value must be ≥ %g", minInclusive)}
	}
	if value > maxInclusive {
		return &ValidationError{Field: name, Message: fmt.Sprintf("value is too large (>%g)", maxInclusive)}
	}
	return nil
}

// ValidateIntRange проверяет, что целое число в допустимом диапазоне
func ValidateIntRange(name string, value int, minInclusive, maxInclusive int) error {
	if value < minInclusive || value > maxInclusive {
		return &ValidationError{Field: name, Message: fmt.Sprintf("value must be in range [%d; %d]", minInclusive, maxInclusive)}
	}
	return nil
}

// CheckAmount проверяет сумму кредита
func CheckAmount(limits Limits, amount float64) error {
	minAmount, maxAmount := limits.AmountRange()
	return ValidatePositiveNumber("amount", amount, minAmount, maxAmount)
}

// CheckTerm проверяет срок в месяцах
func CheckTerm(limits Limits, termMonths int) error {
	minTerm, maxTerm := limits.TermRange()
	return ValidateIntRange("termMonths", termMonths, minTerm, maxTerm)
}

// CheckRate проверяет месячную ставку (доля, 0.025 = 2,5%)
func CheckRate(limits Limits, rate float64) error {
	return ValidatePositiveNumber("interestRate", rate, 0.0, limits.MaxMonthlyRate())
}

// CheckLoan проверяет все три параметра симуляции
func CheckLoan(limits Limits, amount float64, termMonths int, rate float64) error {
	if err := CheckAmount(limits, amount); err != nil {
		return err
	}
	if err := CheckTerm(limits, termMonths); err != nil {
		return err
	}
	return CheckRate(limits, rate)
}
