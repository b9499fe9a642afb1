package formatters

import "github.com/emprestai/emprestai-api/pkg/utils"

// FormatPhone форматирует бразильский номер: (XX) XXXXX-XXXX для мобильных,
// (XX) XXXX-XXXX для городских. Иначе номер возвращается как есть.
func FormatPhone(phone string) string {
	d := utils.DigitsOnly(phone)
	switch len(d) {
	case 11:
		return "(" + d[0:2] + ") " + d[2:7] + "-" + d[7:]
	case 10:
		return "(" + d[0:2] + ") " + d[2:6] + "-" + d[6:]
	default:
		return phone
	}
}
