package formatters

import "github.com/emprestai/emprestai-api/pkg/utils"

// FormatCPF приводит CPF к виду XXX.XXX.XXX-XX.
// Длина не проверяется: при менее чем 11 цифрах возвращаются только цифры,
// лишние цифры после одиннадцатой остаются в конце.
func FormatCPF(cpf string) string {
	d := utils.DigitsOnly(cpf)
	if len(d) < 11 {
		return d
	}
	return d[0:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:11] + d[11:]
}
