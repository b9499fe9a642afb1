package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emprestai/emprestai-api/internal/cache"
)

func newSimulationService(c cache.SimulationCache) *SimulationService {
	logger := testLogger()
	return NewSimulationService(staticSettings{settings: testDefaults()}, c, NewScheduleExporter(logger), logger)
}

func ratePtr(v float64) *float64 { return &v }

func TestSimulateWithExplicitRate(t *testing.T) {
	svc := newSimulationService(newFakeCache())

	sim, err := svc.Simulate(context.Background(), SimulationInput{Amount: 10000, TermMonths: 12, InterestRate: ratePtr(0.025)})
	require.NoError(t, err)

	assert.Equal(t, 974.87, sim.MonthlyPayment)
	assert.Equal(t, 11698.44, sim.TotalAmount)
	assert.Len(t, sim.AmortizationSchedule, 12)
}

func TestSimulateUsesDefaultRate(t *testing.T) {
	svc := newSimulationService(nil)

	sim, err := svc.Simulate(context.Background(), SimulationInput{Amount: 10000, TermMonths: 12})
	require.NoError(t, err)

	assert.InDelta(t, 0.0499, sim.InterestRate, 1e-12)
	assert.Equal(t, 1127.62, sim.MonthlyPayment)
}

func TestSimulateValidatesAgainstSettings(t *testing.T) {
	svc := newSimulationService(nil)

	tests := []struct {
		name string
		in   SimulationInput
	}{
		{"amount too low", SimulationInput{Amount: 100, TermMonths: 12}},
		{"amount too high", SimulationInput{Amount: 60000, TermMonths: 12}},
		{"term too short", SimulationInput{Amount: 1000, TermMonths: 1}},
		{"term too long", SimulationInput{Amount: 1000, TermMonths: 60}},
		{"negative rate", SimulationInput{Amount: 1000, TermMonths: 12, InterestRate: ratePtr(-0.01)}},
		{"rate above ceiling", SimulationInput{Amount: 1000, TermMonths: 12, InterestRate: ratePtr(0.5)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Simulate(context.Background(), tt.in)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestSimulateUsesCache(t *testing.T) {
	c := newFakeCache()
	svc := newSimulationService(c)
	in := SimulationInput{Amount: 10000, TermMonths: 12, InterestRate: ratePtr(0.025)}

	first, err := svc.Simulate(context.Background(), in)
	require.NoError(t, err)
	assert.Len(t, c.entries, 1)

	second, err := svc.Simulate(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 2, c.gets)
}

func TestSimulateIgnoresCacheFailure(t *testing.T) {
	c := newFakeCache()
	c.getErr = errors.New("redis down")
	svc := newSimulationService(c)

	sim, err := svc.Simulate(context.Background(), SimulationInput{Amount: 12000, TermMonths: 12, InterestRate: ratePtr(0)})
	require.NoError(t, err)
	assert.Equal(t, 1000.0, sim.MonthlyPayment)
}

func TestSimulatePropagatesSettingsError(t *testing.T) {
	logger := testLogger()
	svc := NewSimulationService(staticSettings{err: errStoreDown}, nil, NewScheduleExporter(logger), logger)

	_, err := svc.Simulate(context.Background(), SimulationInput{Amount: 1000, TermMonths: 12})
	assert.ErrorIs(t, err, errStoreDown)
}

func TestExportReturnsWorkbook(t *testing.T) {
	svc := newSimulationService(nil)

	data, err := svc.Export(context.Background(), SimulationInput{Amount: 10000, TermMonths: 12, InterestRate: ratePtr(0.025)})
	require.NoError(t, err)
	assert.Equal(t, "PK", string(data[:2]))

	_, err = svc.Export(context.Background(), SimulationInput{Amount: 1, TermMonths: 12})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
