package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emprestai/emprestai-api/internal/calculations"
	"github.com/emprestai/emprestai-api/internal/models"
)

func TestMarkOverdueUsesLocalDay(t *testing.T) {
	store := newFakeLoanStore()
	loanID := uuid.New()
	disbursed := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	schedule := calculations.PaymentSchedule(3, 500, disbursed)
	store.payments[loanID] = models.PaymentsFromSchedule(loanID, schedule, disbursed)

	loc := time.FixedZone("BRT", -3*3600)

	// 01:00 UTC 11 марта в BRT еще 10 марта: просрочена только первая выплата
	now := time.Date(2024, 3, 11, 1, 0, 0, 0, time.UTC)
	svc := NewPaymentService(store, fixedClock(now), loc, testLogger())

	count, err := svc.MarkOverdue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	overdue, err := store.CountOverdue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, overdue)

	count, err = svc.MarkOverdue(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count, "already overdue payments are not counted twice")
}
