package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emprestai/emprestai-api/internal/models"
)

func newProfileService(store *fakeProfileStore) *ProfileService {
	return NewProfileService(store, fixedClock(submitTime), testLogger())
}

func validProfile() ProfileInput {
	return ProfileInput{
		FullName: " Maria Silva ",
		Email:    "maria@example.com",
		CPF:      "529.982.247-25",
		Phone:    "(11) 98765-4321",
		PersonalDataInput: PersonalDataInput{
			Address: "Rua das Flores, 100",
			City:    "São Paulo",
		},
	}
}

func TestSaveProfileStoresDigits(t *testing.T) {
	store := newFakeProfileStore()
	userID := uuid.New()

	view, err := newProfileService(store).Save(context.Background(), userID, validProfile())
	require.NoError(t, err)

	stored := store.profiles[userID]
	assert.Equal(t, "52998224725", stored.CPF)
	assert.Equal(t, "11987654321", stored.Phone)
	assert.Equal(t, "Maria Silva", stored.FullName)
	require.NotNil(t, stored.City)
	assert.Equal(t, "São Paulo", *stored.City)
	assert.Nil(t, stored.State)

	assert.Equal(t, "529.982.247-25", view.FormattedCPF)
	assert.Equal(t, "(11) 98765-4321", view.FormattedPhone)
	assert.Nil(t, view.BankAccount)
}

func TestSaveProfileKeepsIdentityOnUpdate(t *testing.T) {
	store := newFakeProfileStore()
	userID := uuid.New()
	original := store.seed(userID, "52998224725")

	in := validProfile()
	in.Phone = "1134567890"
	view, err := newProfileService(store).Save(context.Background(), userID, in)
	require.NoError(t, err)

	assert.Equal(t, original.ID, view.Profile.ID)
	assert.Equal(t, original.CreatedAt, view.Profile.CreatedAt)
	assert.Equal(t, submitTime, view.Profile.UpdatedAt)
	assert.Equal(t, "(11) 3456-7890", view.FormattedPhone)
}

func TestSaveProfileValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ProfileInput)
	}{
		{"invalid cpf", func(in *ProfileInput) { in.CPF = "529.982.247-24" }},
		{"repeated cpf", func(in *ProfileInput) { in.CPF = "000.000.000-00" }},
		{"short phone", func(in *ProfileInput) { in.Phone = "98765-4321" }},
		{"missing name", func(in *ProfileInput) { in.FullName = "" }},
		{"bad email", func(in *ProfileInput) { in.Email = "maria" }},
		{"negative income", func(in *ProfileInput) {
			income := -1.0
			in.MonthlyIncome = &income
		}},
		{"unknown account type", func(in *ProfileInput) {
			in.BankAccount = &BankAccountInput{BankName: "Inter", Agency: "1", AccountNumber: "2", AccountType: "investimento"}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeProfileStore()
			in := validProfile()
			tt.mutate(&in)

			_, err := newProfileService(store).Save(context.Background(), uuid.New(), in)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Empty(t, store.accounts)
		})
	}
}

func TestSaveProfileRejectsTakenCPF(t *testing.T) {
	store := newFakeProfileStore()
	store.seed(uuid.New(), "52998224725")

	_, err := newProfileService(store).Save(context.Background(), uuid.New(), validProfile())
	assert.ErrorIs(t, err, ErrConflict)
}

func TestSaveProfileWithBankAccount(t *testing.T) {
	store := newFakeProfileStore()
	userID := uuid.New()
	svc := newProfileService(store)

	in := validProfile()
	in.BankAccount = &BankAccountInput{
		BankName:      "Itaú",
		Agency:        "0341",
		AccountNumber: "12345-6",
		AccountType:   models.AccountSavings,
		PixKey:        "maria@example.com",
	}
	view, err := svc.Save(context.Background(), userID, in)
	require.NoError(t, err)
	require.NotNil(t, view.BankAccount)
	assert.Equal(t, models.AccountSavings, view.BankAccount.AccountType)

	// Счет один на клиента: повторное сохранение заменяет его
	first := store.accounts[userID]
	_, err = svc.SaveBankAccount(context.Background(), userID, BankAccountInput{BankName: "Nubank", Agency: "0001", AccountNumber: "777"})
	require.NoError(t, err)

	replaced := store.accounts[userID]
	assert.Equal(t, first.ID, replaced.ID)
	assert.Equal(t, "Nubank", replaced.BankName)
	assert.Nil(t, replaced.PixKey)

	got, err := svc.Get(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "Nubank", got.BankAccount.BankName)
}

func TestGetProfile(t *testing.T) {
	store := newFakeProfileStore()
	userID := uuid.New()
	store.seed(userID, "11144477735")
	svc := newProfileService(store)

	view, err := svc.Get(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "111.444.777-35", view.FormattedCPF)
	assert.Nil(t, view.BankAccount)

	_, err = svc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	store.err = errStoreDown
	_, err = svc.Get(context.Background(), userID)
	assert.ErrorIs(t, err, errStoreDown)
}

func TestUpdatePersonalDataRequiresProfile(t *testing.T) {
	store := newFakeProfileStore()
	err := newProfileService(store).UpdatePersonalData(context.Background(), uuid.New(), PersonalDataInput{City: "Recife"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListUsersFormatsAndCountsLoans(t *testing.T) {
	store := newFakeProfileStore()
	older := uuid.New()
	newer := uuid.New()

	store.seed(older, "52998224725")
	p := store.seed(newer, "11144477735")
	p.Phone = "1134567890"
	p.CreatedAt = submitTime
	store.profiles[newer] = p

	store.loans[older] = []models.LoanStatus{
		models.StatusPending,
		models.StatusDisbursed,
		models.StatusRejected,
		models.StatusCompleted,
	}

	users, err := newProfileService(store).ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)

	assert.Equal(t, newer, users[0].UserID)
	assert.Equal(t, "111.444.777-35", users[0].CPF)
	assert.Equal(t, "(11) 3456-7890", users[0].Phone)
	assert.Equal(t, 0, users[0].TotalLoans)

	assert.Equal(t, "529.982.247-25", users[1].CPF)
	assert.Equal(t, "(11) 98765-4321", users[1].Phone)
	assert.Equal(t, 4, users[1].TotalLoans)
	assert.Equal(t, 2, users[1].ActiveLoans)
}
