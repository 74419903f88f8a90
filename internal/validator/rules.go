package validator

import (
	"fmt"
	"regexp"

	"academy_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

var currencyRe = regexp.MustCompile(`^[A-Za-z]{3}$`)

// registerCustomRules регистрирует кастомные правила валидации
func registerCustomRules(v *validator.Validate) error {
	rules := map[string]validator.Func{
		// 'is-user-role': роль пользователя (user | admin)
		"is-user-role": validateUserRole,
		// 'is-payment-kind': subscription | product
		"is-payment-kind": validatePaymentKind,
		// 'is-payment-status': pending | paid
		"is-payment-status": validatePaymentStatus,
		// 'is-currency': трехбуквенный ISO код
		"is-currency": validateCurrency,
	}

	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("failed to register custom validation tag '%s': %w", tag, err)
		}
	}
	return nil
}

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // пустые значения проверяет 'required'
	}
	return models.UserRole(value).IsValid()
}

func validatePaymentKind(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.PaymentKind(value).IsValid()
}

func validatePaymentStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.PaymentStatus(value).IsValid()
}

func validateCurrency(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return currencyRe.MatchString(value)
}
