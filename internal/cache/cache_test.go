package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emprestai/emprestai-api/internal/calculations"
)

func TestSimulationKey(t *testing.T) {
	assert.Equal(t, "simulation:10000:12:0.025", SimulationKey(10000, 12, 0.025))
	assert.NotEqual(t, SimulationKey(10000, 12, 0.025), SimulationKey(10000, 12, 0.0249))
}

func TestMemoryCacheRoundTrip(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	ctx := context.Background()
	sim := calculations.CalculateLoan(10000, 12, 0.025)

	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "k", &sim))

	got, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sim, *got)

	got.AmortizationSchedule[0].Payment = 0
	again, _, _ := c.Get(ctx, "k")
	assert.Equal(t, 974.87, again.AmortizationSchedule[0].Payment, "cached schedule must not be shared")
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	sim := calculations.CalculateLoan(1000, 3, 0.02)
	require.NoError(t, c.Set(context.Background(), "k", &sim))

	now = now.Add(2 * time.Minute)
	_, ok, err := c.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.False(t, ok)
}
