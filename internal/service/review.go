package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/emprestai/emprestai-api/internal/calculations"
	"github.com/emprestai/emprestai-api/internal/models"
	"github.com/emprestai/emprestai-api/internal/repository"
)

// ReviewInput решение администратора по заявке
type ReviewInput struct {
	Status     models.LoanStatus `json:"status"`
	AdminNotes string            `json:"admin_notes"`
}

var transitions = map[models.LoanStatus][]models.LoanStatus{
	models.StatusPending:     {models.StatusUnderReview, models.StatusApproved, models.StatusRejected},
	models.StatusUnderReview: {models.StatusApproved, models.StatusRejected},
	models.StatusApproved:    {models.StatusDisbursed, models.StatusRejected},
	models.StatusDisbursed:   {models.StatusCompleted},
}

// CanTransition сообщает, допустим ли переход между статусами
func CanTransition(from, to models.LoanStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type ReviewService struct {
	loans    LoanRequestStore
	now      Clock
	location *time.Location
	logger   *logrus.Logger
}

func NewReviewService(loans LoanRequestStore, now Clock, location *time.Location, logger *logrus.Logger) *ReviewService {
	if location == nil {
		location = time.UTC
	}
	return &ReviewService{
		loans:    loans,
		now:      now,
		location: location,
		logger:   logger,
	}
}

// List возвращает заявки, при непустом status только с этим статусом
func (s *ReviewService) List(ctx context.Context, status models.LoanStatus) ([]models.LoanRequest, error) {
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}
	loans, err := s.loans.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list loan requests: %w", err)
	}
	return loans, nil
}

// Review меняет статус заявки. При выдаче создается график платежей
// из сохраненного ежемесячного платежа, отсчет от текущей даты.
func (s *ReviewService) Review(ctx context.Context, loanID, reviewerID uuid.UUID, in ReviewInput) (*models.LoanRequest, error) {
	if !in.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, in.Status)
	}

	loan, err := s.loans.GetByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get loan request: %w", err)
	}

	if !CanTransition(loan.Status, in.Status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, loan.Status, in.Status)
	}

	now := s.now()
	previous := loan.Status
	loan.Status = in.Status
	loan.ReviewedBy = &reviewerID
	loan.ReviewedAt = &now
	loan.UpdatedAt = now
	if notes := strings.TrimSpace(in.AdminNotes); notes != "" {
		loan.AdminNotes = &notes
	}

	if in.Status == models.StatusDisbursed {
		loan.DisbursedAt = &now
		schedule := calculations.PaymentSchedule(loan.TermMonths, loan.MonthlyPayment, now.In(s.location))
		payments := models.PaymentsFromSchedule(loan.ID, schedule, now)
		if err := s.loans.Disburse(ctx, loan, previous, payments); err != nil {
			return nil, reviewError(err, "failed to disburse loan")
		}
	} else if err := s.loans.UpdateReview(ctx, loan, previous); err != nil {
		return nil, reviewError(err, "failed to update loan request")
	}

	s.logger.WithFields(logrus.Fields{
		"loan_id":  loan.ID,
		"reviewer": reviewerID,
		"from":     previous,
		"to":       loan.Status,
	}).Info("Статус заявки изменен")

	return loan, nil
}

// reviewError переводит ошибки хранилища при смене статуса в ошибки сервиса
func reviewError(err error, msg string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrDuplicate):
		return fmt.Errorf("%w: payment schedule already exists", ErrInvalidTransition)
	case errors.Is(err, repository.ErrStaleStatus):
		return fmt.Errorf("%w: %v", ErrInvalidTransition, err)
	default:
		return fmt.Errorf("%s: %w", msg, err)
	}
}
