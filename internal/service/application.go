package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/emprestai/emprestai-api/internal/metrics"
	"github.com/emprestai/emprestai-api/internal/models"
	"github.com/emprestai/emprestai-api/internal/repository"
	"github.com/emprestai/emprestai-api/internal/validators"
	"github.com/emprestai/emprestai-api/pkg/utils"
)

const autoApproveNote = "Aprovado automaticamente"

// ReferenceInput контактное лицо из формы заявки
type ReferenceInput struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
}

// ApplicationInput заявка с цифрами принятой клиентом симуляции.
// InterestRate задается долей в месяц.
type ApplicationInput struct {
	Amount         float64          `json:"amount"`
	TermMonths     int              `json:"termMonths"`
	InterestRate   float64          `json:"interestRate"`
	MonthlyPayment float64          `json:"monthlyPayment"`
	TotalAmount    float64          `json:"totalAmount"`
	Purpose        string           `json:"purpose"`
	Location       *models.Location `json:"location"`
	References     []ReferenceInput `json:"references"`

	PersonalData *PersonalDataInput `json:"personalData"`
	BankAccount  *BankAccountInput  `json:"bankAccount"`
}

// ProfileUpdater дополняет профиль клиента данными из формы заявки
type ProfileUpdater interface {
	UpdatePersonalData(ctx context.Context, userID uuid.UUID, in PersonalDataInput) error
	SaveBankAccount(ctx context.Context, userID uuid.UUID, in BankAccountInput) (*models.BankAccount, error)
}

type ApplicationService struct {
	loans    LoanRequestStore
	payments PaymentStore
	settings SettingsProvider
	profiles ProfileUpdater
	now      Clock
	logger   *logrus.Logger
}

func NewApplicationService(loans LoanRequestStore, payments PaymentStore, settings SettingsProvider, profiles ProfileUpdater, now Clock, logger *logrus.Logger) *ApplicationService {
	return &ApplicationService{
		loans:    loans,
		payments: payments,
		settings: settings,
		profiles: profiles,
		now:      now,
		logger:   logger,
	}
}

// Submit сохраняет заявку. Цифры симуляции сохраняются как есть, без пересчета.
// Переданные данные клиента и счет сохраняются в профиль до создания заявки.
func (s *ApplicationService) Submit(ctx context.Context, userID uuid.UUID, in ApplicationInput) (*models.LoanRequest, error) {
	settings, err := s.settings.Current(ctx)
	if err != nil {
		return nil, err
	}

	if err := validators.CheckLoan(settings, in.Amount, in.TermMonths, in.InterestRate); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !utils.IsFinite(in.MonthlyPayment) || in.MonthlyPayment <= 0 {
		return nil, fmt.Errorf("%w: monthlyPayment must be a positive number", ErrInvalidInput)
	}
	if !utils.IsFinite(in.TotalAmount) || in.TotalAmount <= 0 {
		return nil, fmt.Errorf("%w: totalAmount must be a positive number", ErrInvalidInput)
	}
	if settings.RequireLocation && in.Location == nil {
		return nil, fmt.Errorf("%w: location is required", ErrInvalidInput)
	}

	if in.PersonalData != nil {
		if err := s.profiles.UpdatePersonalData(ctx, userID, *in.PersonalData); err != nil {
			return nil, err
		}
	}
	if in.BankAccount != nil {
		if _, err := s.profiles.SaveBankAccount(ctx, userID, *in.BankAccount); err != nil {
			return nil, err
		}
	}

	now := s.now()
	loan := &models.LoanRequest{
		ID:             uuid.New(),
		UserID:         userID,
		Amount:         in.Amount,
		TermMonths:     in.TermMonths,
		InterestRate:   in.InterestRate,
		MonthlyPayment: in.MonthlyPayment,
		TotalAmount:    in.TotalAmount,
		Location:       in.Location,
		Status:         models.StatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if purpose := strings.TrimSpace(in.Purpose); purpose != "" {
		loan.Purpose = &purpose
	}

	for _, ref := range in.References {
		if ref.Name == "" || ref.Phone == "" || ref.Relationship == "" {
			continue
		}
		loan.References = append(loan.References, models.LoanReference{
			ID:            uuid.New(),
			LoanRequestID: loan.ID,
			Name:          ref.Name,
			Phone:         utils.DigitsOnly(ref.Phone),
			Relationship:  ref.Relationship,
			CreatedAt:     now,
		})
	}

	if settings.AutoApproves(in.Amount) {
		note := autoApproveNote
		loan.Status = models.StatusApproved
		loan.AdminNotes = &note
		loan.ReviewedAt = &now
	}

	if err := s.loans.Create(ctx, loan); err != nil {
		return nil, fmt.Errorf("failed to submit loan request: %w", err)
	}

	metrics.LoanApplications.WithLabelValues(string(loan.Status)).Inc()
	s.logger.WithFields(logrus.Fields{
		"loan_id": loan.ID,
		"user_id": userID,
		"amount":  loan.Amount,
		"status":  loan.Status,
	}).Info("Заявка на кредит создана")

	return loan, nil
}

// List возвращает заявки клиента
func (s *ApplicationService) List(ctx context.Context, userID uuid.UUID) ([]models.LoanRequest, error) {
	loans, err := s.loans.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list loan requests: %w", err)
	}
	return loans, nil
}

// Get возвращает заявку, если она принадлежит клиенту
func (s *ApplicationService) Get(ctx context.Context, userID, loanID uuid.UUID) (*models.LoanRequest, error) {
	loan, err := s.loans.GetByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get loan request: %w", err)
	}
	if loan.UserID != userID {
		return nil, ErrForbidden
	}
	return loan, nil
}

// Payments возвращает график платежей по заявке клиента
func (s *ApplicationService) Payments(ctx context.Context, userID, loanID uuid.UUID) ([]models.LoanPayment, error) {
	if _, err := s.Get(ctx, userID, loanID); err != nil {
		return nil, err
	}
	payments, err := s.payments.ListByLoan(ctx, loanID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}
