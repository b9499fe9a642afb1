package utils

import (
	"math"
	"strings"
)

// Round2 округляет число до 2 знаков после запятой (половина вверх, к +∞)
func Round2(value float64) float64 {
	return math.Floor(value*100+0.5) / 100
}

// IsFinite проверяет, является ли число конечным
func IsFinite(value float64) bool {
	return !math.IsInf(value, 0) && !math.IsNaN(value)
}

// DigitsOnly оставляет в строке только цифры ASCII
func DigitsOnly(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for i := 0; i < len(value); i++ {
		if c := value[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}
