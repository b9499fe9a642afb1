package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/emprestai/emprestai-api/internal/models"
)

const recentLoansLimit = 5

type DashboardService struct {
	stats    DashboardStore
	payments PaymentStore
	logger   *logrus.Logger
}

func NewDashboardService(stats DashboardStore, payments PaymentStore, logger *logrus.Logger) *DashboardService {
	return &DashboardService{stats: stats, payments: payments, logger: logger}
}

// Stats собирает сводку. under_review считается вместе с pending,
// completed вместе с disbursed.
func (s *DashboardService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	summaries, err := s.stats.LoanSummaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load loan summaries: %w", err)
	}

	stats := &models.DashboardStats{
		TotalLoans:     len(summaries),
		TotalDisbursed: decimal.Zero,
	}
	for _, l := range summaries {
		switch l.Status {
		case models.StatusPending, models.StatusUnderReview:
			stats.PendingLoans++
		case models.StatusApproved:
			stats.ApprovedLoans++
		case models.StatusRejected:
			stats.RejectedLoans++
		case models.StatusDisbursed, models.StatusCompleted:
			stats.DisbursedLoans++
			stats.TotalDisbursed = stats.TotalDisbursed.Add(decimal.NewFromFloat(l.Amount))
		}
	}

	if stats.TotalClients, err = s.stats.CountClients(ctx); err != nil {
		return nil, fmt.Errorf("failed to count clients: %w", err)
	}
	if stats.OverduePayments, err = s.payments.CountOverdue(ctx); err != nil {
		return nil, fmt.Errorf("failed to count overdue payments: %w", err)
	}
	if stats.RecentLoans, err = s.stats.RecentLoans(ctx, recentLoansLimit); err != nil {
		return nil, fmt.Errorf("failed to load recent loans: %w", err)
	}

	s.logger.WithField("total_loans", stats.TotalLoans).Debug("Сводка собрана")
	return stats, nil
}
