package validators

import (
	"strings"

	"github.com/emprestai/emprestai-api/pkg/utils"
)

// ValidatePhone принимает бразильский номер с DDD: 10 цифр для городских,
// 11 для мобильных. Маска и пробелы не учитываются.
func ValidatePhone(phone string) bool {
	n := len(utils.DigitsOnly(phone))
	return n == 10 || n == 11
}

// CheckRequired проверяет, что поле заполнено
func CheckRequired(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: name, Message: "value is required"}
	}
	return nil
}

// CheckProfile проверяет обязательные поля профиля клиента
func CheckProfile(fullName, email, cpf, phone string) error {
	if err := CheckRequired("fullName", fullName); err != nil {
		return err
	}
	if err := CheckRequired("email", email); err != nil {
		return err
	}
	if !strings.Contains(email, "@") {
		return &ValidationError{Field: "email", Message: "invalid e-mail"}
	}
	if !ValidateCPF(cpf) {
		return &ValidationError{Field: "cpf", Message: "invalid CPF"}
	}
	if !ValidatePhone(phone) {
		return &ValidationError{Field: "phone", Message: "phone must have 10 or 11 digits"}
	}
	return nil
}
