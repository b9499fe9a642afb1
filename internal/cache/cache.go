package cache

import (
	"context"
	"strconv"

	"github.com/emprestai/emprestai-api/internal/calculations"
)

// SimulationCache хранит результаты симуляций по параметрам кредита
type SimulationCache interface {
	Get(ctx context.Context, key string) (*calculations.LoanSimulation, bool, error)
	Set(ctx context.Context, key string, sim *calculations.LoanSimulation) error
}

// SimulationKey строит ключ кэша из параметров симуляции
func SimulationKey(amount float64, termMonths int, rate float64) string {
	return "simulation:" +
		strconv.FormatFloat(amount, 'f', -1, 64) + ":" +
		strconv.Itoa(termMonths) + ":" +
		strconv.FormatFloat(rate, 'f', -1, 64)
}
