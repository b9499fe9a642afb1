package validators

import "github.com/emprestai/emprestai-api/pkg/utils"

// ValidateCPF проверяет CPF по двум контрольным цифрам (модуль 11).
// Форматирование во входной строке игнорируется.
func ValidateCPF(cpf string) bool {
	d := utils.DigitsOnly(cpf)
	if len(d) != 11 {
		return false
	}

	allSame := true
	for i := 1; i < len(d); i++ {
		if d[i] != d[0] {
			allSame = false
			break
		}
	}
	if allSame {
		return false
	}

	return cpfCheckDigit(d[:9]) == int(d[9]-'0') &&
		cpfCheckDigit(d[:10]) == int(d[10]-'0')
}

// cpfCheckDigit считает контрольную цифру для префикса из 9 или 10 цифр
// с убывающими весами len+1..2.
func cpfCheckDigit(prefix string) int {
	sum := 0
	weight := len(prefix) + 1
	for i := 0; i < len(prefix); i++ {
		sum += int(prefix[i]-'0') * weight
		weight--
	}
	remainder := (sum * 10) % 11
	if remainder == 10 {
		remainder = 0
	}
	return remainder
}
