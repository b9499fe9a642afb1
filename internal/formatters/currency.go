// Package formatters содержит форматирование значений для отображения в
// бразильской локали (pt-BR): валюта, проценты, CPF и телефоны.
package formatters

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// CurrencySymbol символ реала; между символом и суммой неразрывный пробел,
// как в Intl.NumberFormat("pt-BR").
const CurrencySymbol = "R$\u00a0"

// pt-BR: точка разделяет тысячи, запятая отделяет дробную часть.
const brNumberPattern = "#.###,##"

var numericPrefix = regexp.MustCompile(`^[-+]?(\d+\.?\d*|\.\d+)`)

// FormatCurrency форматирует сумму в реалах: R$ 1.234,56
func FormatCurrency(value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return CurrencySymbol + formatNonFinite(value)
	}
	if math.Signbit(value) {
		return "-" + CurrencySymbol + formatNumber(-value)
	}
	return CurrencySymbol + formatNumber(value)
}

// FormatPercentage форматирует долю как процент с двумя знаками: 0.025 → 2,50%
func FormatPercentage(value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return formatNonFinite(value) + "%"
	}
	pct := value * 100
	if math.Signbit(pct) {
		return "-" + formatNumber(-pct) + "%"
	}
	return formatNumber(pct) + "%"
}

// ParseCurrencyInput восстанавливает число из свободно набранной суммы.
//
// Остаются только цифры, запятая, точка и минус. Если есть запятая, точки
// считаются разделителями тысяч и удаляются, а первая запятая становится
// десятичной точкой. Разбирается самый длинный числовой префикс; если
// разобрать нечего, возвращается 0.
func ParseCurrencyInput(value string) float64 {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == ',' || r == '.' || r == '-' {
			return r
		}
		return -1
	}, value)

	if strings.Contains(cleaned, ",") {
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.Replace(cleaned, ",", ".", 1)
	}

	match := numericPrefix.FindString(cleaned)
	if match == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(match, 64)
	if err != nil || math.IsNaN(parsed) {
		return 0
	}
	return parsed
}

// formatNumber округляет до копеек кратчайшую десятичную запись числа
// (половина от нуля, 1.005 → 1,01) и расставляет разделители pt-BR.
// Знак отрицательных значений, даже округленных до нуля, ставит вызывающий.
func formatNumber(value float64) string {
	cents := decimal.NewFromFloat(value).Round(2).InexactFloat64()
	return humanize.FormatFloat(brNumberPattern, cents)
}

func formatNonFinite(value float64) string {
	switch {
	case math.IsNaN(value):
		return "NaN"
	case value > 0:
		return "∞"
	default:
		return "-∞"
	}
}
