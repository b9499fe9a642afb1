package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/emprestai/emprestai-api/internal/formatters"
	"github.com/emprestai/emprestai-api/internal/models"
	"github.com/emprestai/emprestai-api/internal/repository"
	"github.com/emprestai/emprestai-api/internal/validators"
	"github.com/emprestai/emprestai-api/pkg/utils"
)

// PersonalDataInput адрес и сведения о работе, которые клиент заполняет при подаче заявки
type PersonalDataInput struct {
	Address       string   `json:"address"`
	City          string   `json:"city"`
	State         string   `json:"state"`
	ZipCode       string   `json:"zipCode"`
	Occupation    string   `json:"occupation"`
	Employer      string   `json:"employer"`
	MonthlyIncome *float64 `json:"monthlyIncome"`
}

// BankAccountInput счет для зачисления
type BankAccountInput struct {
	BankName      string `json:"bankName"`
	Agency        string `json:"agency"`
	AccountNumber string `json:"accountNumber"`
	AccountType   string `json:"accountType"`
	PixKey        string `json:"pixKey"`
}

// ProfileInput форма профиля клиента
type ProfileInput struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	CPF      string `json:"cpf"`
	Phone    string `json:"phone"`
	PersonalDataInput
	BankAccount *BankAccountInput `json:"bankAccount"`
}

// ProfileView профиль с банковским счетом и значениями для отображения
type ProfileView struct {
	Profile        *models.Profile     `json:"profile"`
	BankAccount    *models.BankAccount `json:"bank_account,omitempty"`
	FormattedCPF   string              `json:"formatted_cpf"`
	FormattedPhone string              `json:"formatted_phone"`
}

type ProfileService struct {
	profiles ProfileStore
	now      Clock
	logger   *logrus.Logger
}

func NewProfileService(profiles ProfileStore, now Clock, logger *logrus.Logger) *ProfileService {
	return &ProfileService{
		profiles: profiles,
		now:      now,
		logger:   logger,
	}
}

// Get возвращает профиль клиента вместе со счетом, если он сохранен
func (s *ProfileService) Get(ctx context.Context, userID uuid.UUID) (*ProfileView, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	account, err := s.profiles.GetBankAccount(ctx, userID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to get bank account: %w", err)
	}

	return newProfileView(profile, account), nil
}

// Save создает или целиком заменяет профиль. CPF проверяется по контрольным
// цифрам, CPF и телефон сохраняются только цифрами.
func (s *ProfileService) Save(ctx context.Context, userID uuid.UUID, in ProfileInput) (*ProfileView, error) {
	if err := validators.CheckProfile(in.FullName, in.Email, in.CPF, in.Phone); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := checkIncome(in.MonthlyIncome); err != nil {
		return nil, err
	}

	now := s.now()
	profile := &models.Profile{
		ID:        uuid.New(),
		UserID:    userID,
		FullName:  strings.TrimSpace(in.FullName),
		Email:     strings.TrimSpace(in.Email),
		CPF:       utils.DigitsOnly(in.CPF),
		Phone:     utils.DigitsOnly(in.Phone),
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyPersonalData(profile, in.PersonalDataInput)

	if err := s.profiles.Upsert(ctx, profile); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: cpf already registered", ErrConflict)
		}
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	var account *models.BankAccount
	if in.BankAccount != nil {
		saved, err := s.SaveBankAccount(ctx, userID, *in.BankAccount)
		if err != nil {
			return nil, err
		}
		account = saved
	} else {
		stored, err := s.profiles.GetBankAccount(ctx, userID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("failed to get bank account: %w", err)
		}
		account = stored
	}

	s.logger.WithField("user_id", userID).Info("Профиль клиента сохранен")
	return newProfileView(profile, account), nil
}

// UpdatePersonalData дополняет существующий профиль данными из формы заявки
func (s *ProfileService) UpdatePersonalData(ctx context.Context, userID uuid.UUID, in PersonalDataInput) error {
	if err := checkIncome(in.MonthlyIncome); err != nil {
		return err
	}

	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: profile must be completed before applying", ErrInvalidInput)
		}
		return fmt.Errorf("failed to get profile: %w", err)
	}

	applyPersonalData(profile, in)
	profile.UpdatedAt = s.now()

	if err := s.profiles.Upsert(ctx, profile); err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}

// SaveBankAccount создает или заменяет счет клиента. Профиль должен существовать.
func (s *ProfileService) SaveBankAccount(ctx context.Context, userID uuid.UUID, in BankAccountInput) (*models.BankAccount, error) {
	for _, f := range []struct{ name, value string }{
		{"bankName", in.BankName},
		{"agency", in.Agency},
		{"accountNumber", in.AccountNumber},
	} {
		if err := validators.CheckRequired(f.name, f.value); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	accountType := in.AccountType
	if accountType == "" {
		accountType = models.AccountChecking
	}
	if !models.ValidAccountType(accountType) {
		return nil, fmt.Errorf("%w: unknown account type %q", ErrInvalidInput, accountType)
	}

	now := s.now()
	account := &models.BankAccount{
		ID:            uuid.New(),
		UserID:        userID,
		BankName:      strings.TrimSpace(in.BankName),
		Agency:        strings.TrimSpace(in.Agency),
		AccountNumber: strings.TrimSpace(in.AccountNumber),
		AccountType:   accountType,
		PixKey:        optional(in.PixKey),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.profiles.UpsertBankAccount(ctx, account); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: profile must be completed before adding a bank account", ErrInvalidInput)
		}
		return nil, fmt.Errorf("failed to save bank account: %w", err)
	}
	return account, nil
}

// ListUsers возвращает клиентов с количеством заявок, CPF и телефон отформатированы
func (s *ProfileService) ListUsers(ctx context.Context) ([]models.UserSummary, error) {
	users, err := s.profiles.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	for i := range users {
		users[i].CPF = formatters.FormatCPF(users[i].CPF)
		users[i].Phone = formatters.FormatPhone(users[i].Phone)
	}
	return users, nil
}

func newProfileView(profile *models.Profile, account *models.BankAccount) *ProfileView {
	return &ProfileView{
		Profile:        profile,
		BankAccount:    account,
		FormattedCPF:   formatters.FormatCPF(profile.CPF),
		FormattedPhone: formatters.FormatPhone(profile.Phone),
	}
}

func applyPersonalData(p *models.Profile, in PersonalDataInput) {
	p.Address = optional(in.Address)
	p.City = optional(in.City)
	p.State = optional(in.State)
	p.ZipCode = optional(in.ZipCode)
	p.Occupation = optional(in.Occupation)
	p.Employer = optional(in.Employer)
	p.MonthlyIncome = in.MonthlyIncome
}

func checkIncome(income *float64) error {
	if income == nil {
		return nil
	}
	if err := validators.ValidatePositiveNumber("monthlyIncome", *income, 0, 1e12); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

// optional возвращает nil для пустой строки
func optional(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
