package service

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/emprestai/emprestai-api/internal/calculations"
	"github.com/emprestai/emprestai-api/internal/models"
	"github.com/emprestai/emprestai-api/internal/repository"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func testDefaults() models.Settings {
	return models.Settings{
		InterestRate:     4.99,
		MinAmount:        500,
		MaxAmount:        50000,
		MinTerm:          3,
		MaxTerm:          48,
		RequireLocation:  true,
		RequireDocuments: true,
		MaxRatePercent:   20,
	}
}

type staticSettings struct {
	settings models.Settings
	err      error
}

func (s staticSettings) Current(context.Context) (models.Settings, error) {
	return s.settings, s.err
}

type fakeSettingsStore struct {
	rows map[string]models.SystemSetting
	err  error
}

func newFakeSettingsStore() *fakeSettingsStore {
	return &fakeSettingsStore{rows: map[string]models.SystemSetting{}}
}

func (f *fakeSettingsStore) All(context.Context) ([]models.SystemSetting, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.SystemSetting, 0, len(f.rows))
	for _, r := range f.rows {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeSettingsStore) Upsert(_ context.Context, rows []models.SystemSetting) error {
	if f.err != nil {
		return f.err
	}
	for _, r := range rows {
		f.rows[r.Key] = r
	}
	return nil
}

type fakeLoanStore struct {
	mu        sync.Mutex
	loans     map[uuid.UUID]models.LoanRequest
	payments  map[uuid.UUID][]models.LoanPayment
	createErr error
	// afterGet вызывается после чтения заявки, до записи решения
	afterGet func(id uuid.UUID)
}

func newFakeLoanStore() *fakeLoanStore {
	return &fakeLoanStore{
		loans:    map[uuid.UUID]models.LoanRequest{},
		payments: map[uuid.UUID][]models.LoanPayment{},
	}
}

func (f *fakeLoanStore) Create(_ context.Context, loan *models.LoanRequest) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loans[loan.ID] = *loan
	return nil
}

func (f *fakeLoanStore) GetByID(_ context.Context, id uuid.UUID) (*models.LoanRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	loan, ok := f.loans[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if f.afterGet != nil {
		f.afterGet(id)
	}
	return &loan, nil
}

func (f *fakeLoanStore) ListByUser(_ context.Context, userID uuid.UUID) ([]models.LoanRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.LoanRequest
	for _, l := range f.loans {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeLoanStore) List(_ context.Context, status models.LoanStatus) ([]models.LoanRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.LoanRequest
	for _, l := range f.loans {
		if status == "" || l.Status == status {
			out = append(out, l)
		}
	}
	return out, nil
}

// checkStatus повторяет условие UPDATE ... WHERE status = from
func (f *fakeLoanStore) checkStatus(id uuid.UUID, from models.LoanStatus) error {
	stored, ok := f.loans[id]
	if !ok {
		return repository.ErrNotFound
	}
	if stored.Status != from {
		return repository.ErrStaleStatus
	}
	return nil
}

func (f *fakeLoanStore) UpdateReview(_ context.Context, loan *models.LoanRequest, from models.LoanStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.checkStatus(loan.ID, from); err != nil {
		return err
	}
	f.loans[loan.ID] = *loan
	return nil
}

func (f *fakeLoanStore) Disburse(_ context.Context, loan *models.LoanRequest, from models.LoanStatus, payments []models.LoanPayment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.checkStatus(loan.ID, from); err != nil {
		return err
	}
	if len(f.payments[loan.ID]) > 0 {
		return repository.ErrDuplicate
	}
	f.loans[loan.ID] = *loan
	f.payments[loan.ID] = payments
	return nil
}

func (f *fakeLoanStore) ListByLoan(_ context.Context, loanID uuid.UUID) ([]models.LoanPayment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.payments[loanID], nil
}

func (f *fakeLoanStore) MarkOverdue(_ context.Context, before time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cutoff := before.Format("2006-01-02")
	var count int64
	for id, list := range f.payments {
		for i := range list {
			if list[i].Status == calculations.PaymentPending && list[i].DueDate.Format("2006-01-02") < cutoff {
				list[i].Status = calculations.PaymentOverdue
				count++
			}
		}
		f.payments[id] = list
	}
	return count, nil
}

func (f *fakeLoanStore) CountOverdue(context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, list := range f.payments {
		for _, p := range list {
			if p.Status == calculations.PaymentOverdue {
				count++
			}
		}
	}
	return count, nil
}

func (f *fakeLoanStore) LoanSummaries(context.Context) ([]models.LoanSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.LoanSummary
	for _, l := range f.loans {
		out = append(out, models.LoanSummary{Amount: l.Amount, Status: l.Status})
	}
	return out, nil
}

func (f *fakeLoanStore) CountClients(context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	users := map[uuid.UUID]struct{}{}
	for _, l := range f.loans {
		users[l.UserID] = struct{}{}
	}
	return len(users), nil
}

func (f *fakeLoanStore) RecentLoans(_ context.Context, limit int) ([]models.RecentLoan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.RecentLoan
	for _, l := range f.loans {
		out = append(out, models.RecentLoan{ID: l.ID, UserID: l.UserID, Amount: l.Amount, Status: l.Status, CreatedAt: l.CreatedAt})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeCache struct {
	entries map[string]calculations.LoanSimulation
	getErr  error
	gets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]calculations.LoanSimulation{}}
}

func (c *fakeCache) Get(_ context.Context, key string) (*calculations.LoanSimulation, bool, error) {
	c.gets++
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	sim, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	return &sim, true, nil
}

func (c *fakeCache) Set(_ context.Context, key string, sim *calculations.LoanSimulation) error {
	c.entries[key] = *sim
	return nil
}

var errStoreDown = errors.New("store down")

type fakeProfileStore struct {
	profiles map[uuid.UUID]models.Profile
	accounts map[uuid.UUID]models.BankAccount
	loans    map[uuid.UUID][]models.LoanStatus
	err      error
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{
		profiles: map[uuid.UUID]models.Profile{},
		accounts: map[uuid.UUID]models.BankAccount{},
		loans:    map[uuid.UUID][]models.LoanStatus{},
	}
}

func (f *fakeProfileStore) seed(userID uuid.UUID, cpf string) models.Profile {
	p := models.Profile{
		ID:        uuid.New(),
		UserID:    userID,
		FullName:  "Maria Silva",
		Email:     "maria@example.com",
		CPF:       cpf,
		Phone:     "11987654321",
		CreatedAt: submitTime.Add(-24 * time.Hour),
	}
	f.profiles[userID] = p
	return p
}

func (f *fakeProfileStore) GetByUserID(_ context.Context, userID uuid.UUID) (*models.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.profiles[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

// Upsert повторяет ограничения таблицы: уникальный CPF, id и created_at
// существующей строки сохраняются
func (f *fakeProfileStore) Upsert(_ context.Context, p *models.Profile) error {
	if f.err != nil {
		return f.err
	}
	for userID, other := range f.profiles {
		if userID != p.UserID && other.CPF == p.CPF {
			return repository.ErrDuplicate
		}
	}
	if existing, ok := f.profiles[p.UserID]; ok {
		p.ID = existing.ID
		p.CreatedAt = existing.CreatedAt
	}
	f.profiles[p.UserID] = *p
	return nil
}

func (f *fakeProfileStore) GetBankAccount(_ context.Context, userID uuid.UUID) (*models.BankAccount, error) {
	if f.err != nil {
		return nil, f.err
	}
	a, ok := f.accounts[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &a, nil
}

func (f *fakeProfileStore) UpsertBankAccount(_ context.Context, a *models.BankAccount) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.profiles[a.UserID]; !ok {
		return repository.ErrNotFound
	}
	if existing, ok := f.accounts[a.UserID]; ok {
		a.ID = existing.ID
		a.CreatedAt = existing.CreatedAt
	}
	f.accounts[a.UserID] = *a
	return nil
}

func (f *fakeProfileStore) ListUsers(context.Context) ([]models.UserSummary, error) {
	if f.err != nil {
		return nil, f.err
	}
	users := []models.UserSummary{}
	for userID, p := range f.profiles {
		u := models.UserSummary{
			UserID:    userID,
			FullName:  p.FullName,
			Email:     p.Email,
			CPF:       p.CPF,
			Phone:     p.Phone,
			CreatedAt: p.CreatedAt,
		}
		for _, st := range f.loans[userID] {
			u.TotalLoans++
			if st.Active() {
				u.ActiveLoans++
			}
		}
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.After(users[j].CreatedAt) })
	return users, nil
}
