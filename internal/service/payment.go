package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/emprestai/emprestai-api/internal/metrics"
)

type PaymentService struct {
	payments PaymentStore
	now      Clock
	location *time.Location
	logger   *logrus.Logger
}

func NewPaymentService(payments PaymentStore, now Clock, location *time.Location, logger *logrus.Logger) *PaymentService {
	if location == nil {
		location = time.UTC
	}
	return &PaymentService{
		payments: payments,
		now:      now,
		location: location,
		logger:   logger,
	}
}

// MarkOverdue переводит в overdue ожидающие платежи со сроком до сегодняшнего дня
func (s *PaymentService) MarkOverdue(ctx context.Context) (int64, error) {
	local := s.now().In(s.location)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.location)

	count, err := s.payments.MarkOverdue(ctx, today)
	if err != nil {
		return 0, fmt.Errorf("failed to mark overdue payments: %w", err)
	}

	metrics.PaymentsOverdue.Add(float64(count))
	s.logger.WithFields(logrus.Fields{
		"count": count,
		"today": today.Format("2006-01-02"),
	}).Info("Просроченные платежи отмечены")

	return count, nil
}
