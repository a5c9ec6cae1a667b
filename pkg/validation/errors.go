package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "orgdash/pkg/errors"
)

// FieldErrors раскладывает ошибки валидатора по json-именам полей.
// Для вложенных структур ключом служит путь без имени корневого типа.
func FieldErrors(err error) map[string][]string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	out := make(map[string][]string, len(validationErrors))
	for _, fe := range validationErrors {
		key := fe.Namespace()
		if idx := strings.Index(key, "."); idx >= 0 {
			key = key[idx+1:]
		}
		out[key] = append(out[key], describe(fe))
	}
	return out
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Обязательное поле"
	case "min":
		return fmt.Sprintf("Минимальная длина/значение: %s", fe.Param())
	case "max":
		return fmt.Sprintf("Максимальная длина/значение: %s", fe.Param())
	case "gte":
		return fmt.Sprintf("Значение должно быть не меньше %s", fe.Param())
	case "lte":
		return fmt.Sprintf("Значение должно быть не больше %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("Допустимые значения: %s", fe.Param())
	case "url":
		return "Некорректный URL"
	case "custom_email":
		return "Некорректный email"
	case "iso_date":
		return "Ожидается дата в формате YYYY-MM-DD"
	case "date_layout":
		return "Некорректный формат даты"
	case "permission_code":
		return "Ожидается код вида resource:action"
	case "timezone":
		return "Неизвестный часовой пояс"
	default:
		return fmt.Sprintf("Поле не прошло проверку '%s'", fe.Tag())
	}
}

// ToValidationError переводит ошибку валидатора в ValidationError таксономии.
func ToValidationError(err error) *apperrors.ValidationError {
	fields := FieldErrors(err)
	if fields == nil {
		return apperrors.NewValidationError(err.Error(), nil, err)
	}

	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return apperrors.NewValidationError("Ошибка валидации: "+strings.Join(keys, ", "), fields, err)
}
