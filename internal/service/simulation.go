package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/emprestai/emprestai-api/internal/cache"
	"github.com/emprestai/emprestai-api/internal/calculations"
	"github.com/emprestai/emprestai-api/internal/metrics"
	"github.com/emprestai/emprestai-api/internal/validators"
)

// SimulationInput параметры симуляции.
// InterestRate задается долей в месяц; если не задана, берется ставка из настроек.
type SimulationInput struct {
	Amount       float64  `json:"amount"`
	TermMonths   int      `json:"termMonths"`
	InterestRate *float64 `json:"interestRate,omitempty"`
}

type SimulationService struct {
	settings SettingsProvider
	cache    cache.SimulationCache
	exporter *ScheduleExporter
	logger   *logrus.Logger
}

func NewSimulationService(settings SettingsProvider, simCache cache.SimulationCache, exporter *ScheduleExporter, logger *logrus.Logger) *SimulationService {
	return &SimulationService{
		settings: settings,
		cache:    simCache,
		exporter: exporter,
		logger:   logger,
	}
}

// Simulate проверяет параметры по текущим настройкам и считает график
func (s *SimulationService) Simulate(ctx context.Context, in SimulationInput) (*calculations.LoanSimulation, error) {
	settings, err := s.settings.Current(ctx)
	if err != nil {
		return nil, err
	}

	rate := settings.MonthlyRate()
	if in.InterestRate != nil {
		rate = *in.InterestRate
	}

	if err := validators.CheckLoan(settings, in.Amount, in.TermMonths, rate); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	key := cache.SimulationKey(in.Amount, in.TermMonths, rate)
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, key)
		switch {
		case err != nil:
			metrics.SimulationCache.WithLabelValues("error").Inc()
			s.logger.WithError(err).Warn("Кэш симуляций недоступен")
		case ok:
			metrics.SimulationCache.WithLabelValues("hit").Inc()
			return cached, nil
		default:
			metrics.SimulationCache.WithLabelValues("miss").Inc()
		}
	}

	sim := calculations.CalculateLoan(in.Amount, in.TermMonths, rate)

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, &sim); err != nil {
			s.logger.WithError(err).Warn("Не удалось сохранить симуляцию в кэш")
		}
	}

	s.logger.WithFields(logrus.Fields{
		"amount":          in.Amount,
		"term_months":     in.TermMonths,
		"interest_rate":   rate,
		"monthly_payment": sim.MonthlyPayment,
	}).Debug("Симуляция рассчитана")

	return &sim, nil
}

// Export считает симуляцию и возвращает ее в виде XLSX
func (s *SimulationService) Export(ctx context.Context, in SimulationInput) ([]byte, error) {
	sim, err := s.Simulate(ctx, in)
	if err != nil {
		return nil, err
	}
	return s.exporter.Render(sim)
}
