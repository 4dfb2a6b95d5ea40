package handlers

import (
	"regexp"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Account codes are short uppercase identifiers like "1000" or "AR-TRADE".
var accountCodePattern = regexp.MustCompile(`^[A-Z0-9][A-Z0-9.-]{1,19}$`)

// RegisterCustomValidators installs the request-level validation tags used by
// the DTO binding annotations. Must run once before the engine serves traffic.
func RegisterCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterValidation("accountcode", func(fl validator.FieldLevel) bool {
		return accountCodePattern.MatchString(fl.Field().String())
	})

	v.RegisterValidation("calendardate", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("2006-01-02", fl.Field().String())
		return err == nil
	})
}
