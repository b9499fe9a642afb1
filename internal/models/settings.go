package models

import (
	"fmt"
	"strconv"
	"time"
)

// Ключи таблицы system_settings
const (
	SettingInterestRate     = "interest_rate"
	SettingMinAmount        = "min_amount"
	SettingMaxAmount        = "max_amount"
	SettingMinTerm          = "min_term"
	SettingMaxTerm          = "max_term"
	SettingAutoApproveLimit = "auto_approve_limit"
	SettingRequireLocation  = "require_location"
	SettingRequireDocuments = "require_documents"
)

// SettingKeys перечисляет все изменяемые настройки
var SettingKeys = []string{
	SettingInterestRate,
	SettingMinAmount,
	SettingMaxAmount,
	SettingMinTerm,
	SettingMaxTerm,
	SettingAutoApproveLimit,
	SettingRequireLocation,
	SettingRequireDocuments,
}

var settingDescriptions = map[string]string{
	SettingInterestRate:     "Taxa de juros mensal padrão",
	SettingMinAmount:        "Valor mínimo de empréstimo",
	SettingMaxAmount:        "Valor máximo de empréstimo",
	SettingMinTerm:          "Prazo mínimo em meses",
	SettingMaxTerm:          "Prazo máximo em meses",
	SettingAutoApproveLimit: "Limite para aprovação automática (0 = desativado)",
	SettingRequireLocation:  "Exigir localização na solicitação",
	SettingRequireDocuments: "Exigir documentos na solicitação",
}

// SettingDescription возвращает описание ключа настройки
func SettingDescription(key string) string {
	return settingDescriptions[key]
}

// SystemSetting строка таблицы system_settings
type SystemSetting struct {
	Key         string    `json:"setting_key" db:"setting_key"`
	Value       string    `json:"setting_value" db:"setting_value"`
	Description string    `json:"description" db:"description"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Settings типизированные настройки системы.
// InterestRate задается в процентах в месяц (4.99 = 4,99%).
type Settings struct {
	InterestRate     float64 `json:"interest_rate"`
	MinAmount        float64 `json:"min_amount"`
	MaxAmount        float64 `json:"max_amount"`
	MinTerm          int     `json:"min_term"`
	MaxTerm          int     `json:"max_term"`
	AutoApproveLimit float64 `json:"auto_approve_limit"`
	RequireLocation  bool    `json:"require_location"`
	RequireDocuments bool    `json:"require_documents"`

	// MaxRatePercent верхняя граница ставки, задается только конфигурацией
	MaxRatePercent float64 `json:"-"`
}

func (s Settings) AmountRange() (float64, float64) { return s.MinAmount, s.MaxAmount }

func (s Settings) TermRange() (int, int) { return s.MinTerm, s.MaxTerm }

func (s Settings) MaxMonthlyRate() float64 { return s.MaxRatePercent / 100 }

// MonthlyRate возвращает ставку по умолчанию долей
func (s Settings) MonthlyRate() float64 { return s.InterestRate / 100 }

// AutoApproves сообщает, одобряется ли сумма автоматически
func (s Settings) AutoApproves(amount float64) bool {
	return s.AutoApproveLimit > 0 && amount > 0 && amount <= s.AutoApproveLimit
}

// ToMap сериализует настройки в строки system_settings
func (s Settings) ToMap() map[string]string {
	return map[string]string{
		SettingInterestRate:     formatFloat(s.InterestRate),
		SettingMinAmount:        formatFloat(s.MinAmount),
		SettingMaxAmount:        formatFloat(s.MaxAmount),
		SettingMinTerm:          strconv.Itoa(s.MinTerm),
		SettingMaxTerm:          strconv.Itoa(s.MaxTerm),
		SettingAutoApproveLimit: formatFloat(s.AutoApproveLimit),
		SettingRequireLocation:  strconv.FormatBool(s.RequireLocation),
		SettingRequireDocuments: strconv.FormatBool(s.RequireDocuments),
	}
}

// Apply накладывает строковые значения на текущие настройки.
// Неизвестные ключи дают ошибку, как и значения, которые не разбираются.
func (s Settings) Apply(values map[string]string) (Settings, error) {
	out := s
	for key, raw := range values {
		var err error
		switch key {
		case SettingInterestRate:
			out.InterestRate, err = strconv.ParseFloat(raw, 64)
		case SettingMinAmount:
			out.MinAmount, err = strconv.ParseFloat(raw, 64)
		case SettingMaxAmount:
			out.MaxAmount, err = strconv.ParseFloat(raw, 64)
		case SettingMinTerm:
			out.MinTerm, err = strconv.Atoi(raw)
		case SettingMaxTerm:
			out.MaxTerm, err = strconv.Atoi(raw)
		case SettingAutoApproveLimit:
			out.AutoApproveLimit, err = strconv.ParseFloat(raw, 64)
		case SettingRequireLocation:
			out.RequireLocation, err = strconv.ParseBool(raw)
		case SettingRequireDocuments:
			out.RequireDocuments, err = strconv.ParseBool(raw)
		default:
			return s, fmt.Errorf("unknown setting %q", key)
		}
		if err != nil {
			return s, fmt.Errorf("invalid value for %s: %w", key, err)
		}
	}
	return out, nil
}

// SettingsFromRows строит настройки из строк таблицы поверх значений по умолчанию.
// Битые и неизвестные строки пропускаются, остается значение по умолчанию.
func SettingsFromRows(defaults Settings, rows []SystemSetting) Settings {
	out := defaults
	for _, row := range rows {
		if next, err := out.Apply(map[string]string{row.Key: row.Value}); err == nil {
			out = next
		}
	}
	return out
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
