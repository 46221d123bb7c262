package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var shiftTimeRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// registerCustomRules wires the app-specific validation tags.
func registerCustomRules(v *validator.Validate) error {
	// shifttime: 24h wall-clock time, "HH:MM"
	return v.RegisterValidation("shifttime", func(fl validator.FieldLevel) bool {
		return shiftTimeRe.MatchString(fl.Field().String())
	})
}
