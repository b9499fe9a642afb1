package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/emprestai/emprestai-api/internal/models"
	"github.com/emprestai/emprestai-api/pkg/utils"
)

type SettingsService struct {
	repo     SettingsStore
	defaults models.Settings
	now      Clock
	logger   *logrus.Logger
}

func NewSettingsService(repo SettingsStore, defaults models.Settings, logger *logrus.Logger) *SettingsService {
	return &SettingsService{
		repo:     repo,
		defaults: defaults,
		now:      time.Now,
		logger:   logger,
	}
}

// Current возвращает значения по умолчанию, перекрытые сохраненными
func (s *SettingsService) Current(ctx context.Context) (models.Settings, error) {
	rows, err := s.repo.All(ctx)
	if err != nil {
		return models.Settings{}, fmt.Errorf("failed to load settings: %w", err)
	}
	return models.SettingsFromRows(s.defaults, rows), nil
}

// Update применяет переданные ключи и сохраняет только их
func (s *SettingsService) Update(ctx context.Context, values map[string]string) (models.Settings, error) {
	if len(values) == 0 {
		return models.Settings{}, fmt.Errorf("%w: no settings provided", ErrInvalidInput)
	}

	current, err := s.Current(ctx)
	if err != nil {
		return models.Settings{}, err
	}

	next, err := current.Apply(values)
	if err != nil {
		return models.Settings{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := checkSettings(next); err != nil {
		return models.Settings{}, err
	}

	normalized := next.ToMap()
	rows := make([]models.SystemSetting, 0, len(values))
	for key := range values {
		rows = append(rows, s.row(key, normalized[key]))
	}
	if err := s.repo.Upsert(ctx, rows); err != nil {
		return models.Settings{}, fmt.Errorf("failed to save settings: %w", err)
	}

	s.logger.WithField("keys", len(rows)).Info("Настройки обновлены")
	return next, nil
}

// Reset записывает значения по умолчанию для всех ключей
func (s *SettingsService) Reset(ctx context.Context) (models.Settings, error) {
	defaults := s.defaults.ToMap()
	rows := make([]models.SystemSetting, 0, len(models.SettingKeys))
	for _, key := range models.SettingKeys {
		rows = append(rows, s.row(key, defaults[key]))
	}
	if err := s.repo.Upsert(ctx, rows); err != nil {
		return models.Settings{}, fmt.Errorf("failed to reset settings: %w", err)
	}

	s.logger.Info("Настройки сброшены к значениям по умолчанию")
	return s.defaults, nil
}

func (s *SettingsService) row(key, value string) models.SystemSetting {
	return models.SystemSetting{
		Key:         key,
		Value:       value,
		Description: models.SettingDescription(key),
		UpdatedAt:   s.now(),
	}
}

func checkSettings(st models.Settings) error {
	invalid := func(format string, args ...interface{}) error {
		return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
	}

	for name, v := range map[string]float64{
		models.SettingInterestRate:     st.InterestRate,
		models.SettingMinAmount:        st.MinAmount,
		models.SettingMaxAmount:        st.MaxAmount,
		models.SettingAutoApproveLimit: st.AutoApproveLimit,
	} {
		if !utils.IsFinite(v) || v < 0 {
			return invalid("%s must be a non-negative number", name)
		}
	}

	if st.MaxRatePercent > 0 && st.InterestRate > st.MaxRatePercent {
		return invalid("interest_rate must be ≤ %g", st.MaxRatePercent)
	}
	if st.MinAmount <= 0 || st.MinAmount > st.MaxAmount {
		return invalid("min_amount must be positive and not exceed max_amount")
	}
	if st.MinTerm < 1 || st.MinTerm > st.MaxTerm {
		return invalid("min_term must be at least 1 and not exceed max_term")
	}
	return nil
}
