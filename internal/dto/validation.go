package dto

import (
	"strings"

	"github.com/SscSPs/mof_report_service/internal/core/domain"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the request tags used by the MOF endpoints to v.
func RegisterValidators(v *validator.Validate) error {
	return v.RegisterValidation("period_code", func(fl validator.FieldLevel) bool {
		switch domain.PeriodCode(strings.ToUpper(strings.TrimSpace(fl.Field().String()))) {
		case domain.PeriodMonthly, domain.PeriodQuarterly, domain.PeriodYearly:
			return true
		}
		return false
	})
}
