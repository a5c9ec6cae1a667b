package validation

import (
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	emailRegex          = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	dateLayoutRegex     = regexp.MustCompile(`^(YYYY|YY|MM|DD)([-./ ](YYYY|YY|MM|DD))*$`)
	permissionCodeRegex = regexp.MustCompile(`^[a-z][a-z_-]*(:[a-z][a-z_-]*)+$`)
)

// registerRules регистрирует теги, которые мы используем в struct tags
func registerRules(v *validator.Validate) error {
	if err := v.RegisterValidation("custom_email", isGoodEmailFormat); err != nil {
		return err
	}
	if err := v.RegisterValidation("iso_date", isISODate); err != nil {
		return err
	}
	if err := v.RegisterValidation("date_layout", isDateLayout); err != nil {
		return err
	}
	if err := v.RegisterValidation("permission_code", isPermissionCode); err != nil {
		return err
	}
	return nil
}

func isGoodEmailFormat(fl validator.FieldLevel) bool {
	return emailRegex.MatchString(fl.Field().String())
}

// isISODate - даты вида "2024-03-01" (founding_date, join_date)
func isISODate(fl validator.FieldLevel) bool {
	_, err := time.Parse("2006-01-02", fl.Field().String())
	return err == nil
}

// isDateLayout - формат отображения дат в настройках: "DD.MM.YYYY", "YYYY-MM-DD"
func isDateLayout(fl validator.FieldLevel) bool {
	return dateLayoutRegex.MatchString(fl.Field().String())
}

// isPermissionCode - "organizations:view", "rbac-roles:manage"
func isPermissionCode(fl validator.FieldLevel) bool {
	return permissionCodeRegex.MatchString(fl.Field().String())
}
