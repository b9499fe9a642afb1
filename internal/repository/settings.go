package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/emprestai/emprestai-api/internal/models"
)

type SettingsRepository struct {
	db     *sql.DB
	logger *logrus.Logger
}

func NewSettingsRepository(db *sql.DB, logger *logrus.Logger) *SettingsRepository {
	return &SettingsRepository{db: db, logger: logger}
}

// All возвращает все сохраненные настройки
func (r *SettingsRepository) All(ctx context.Context) ([]models.SystemSetting, error) {
	query := `
        SELECT setting_key, setting_value, COALESCE(description, ''), updated_at
        FROM system_settings
        ORDER BY setting_key
    `
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query settings: %w", err)
	}
	defer rows.Close()

	var settings []models.SystemSetting
	for rows.Next() {
		var s models.SystemSetting
		if err := rows.Scan(&s.Key, &s.Value, &s.Description, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

// Upsert записывает настройки по ключу в одной транзакции
func (r *SettingsRepository) Upsert(ctx context.Context, settings []models.SystemSetting) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
        INSERT INTO system_settings (setting_key, setting_value, description, updated_at)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (setting_key)
        DO UPDATE SET setting_value = EXCLUDED.setting_value,
                      description = EXCLUDED.description,
                      updated_at = EXCLUDED.updated_at
    `
	for _, s := range settings {
		if _, err := tx.ExecContext(ctx, query, s.Key, s.Value, s.Description, s.UpdatedAt); err != nil {
			return fmt.Errorf("failed to upsert setting %s: %w", s.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit settings: %w", err)
	}

	r.logger.WithField("count", len(settings)).Info("Настройки сохранены")
	return nil
}
