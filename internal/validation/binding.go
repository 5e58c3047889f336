package validation

import (
	"fmt"
	"regexp"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/anyulbade/payment-config-service/internal/apperr"
	"github.com/anyulbade/payment-config-service/internal/model"
)

var (
	refCodePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]{0,63}$`)
	registerOnce   sync.Once
	registerErr    error
	standalone     = validator.New()
)

func isRefCode(fl validator.FieldLevel) bool {
	return refCodePattern.MatchString(fl.Field().String())
}

// RegisterBindings installs the custom tags on gin's validator. Safe to call
// more than once.
func RegisterBindings() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = fmt.Errorf("unexpected binding engine %T", binding.Validator.Engine())
			return
		}
		registerErr = v.RegisterValidation("refcode", isRefCode)
	})
	return registerErr
}

// ReferenceCode applies the per-table code format: ISO 3166 alpha-2 for
// countries, ISO 4217 for currencies, and the generic code pattern otherwise.
func ReferenceCode(kind model.ReferenceKind, code string) error {
	var err error
	switch kind {
	case model.KindCountry:
		err = standalone.Var(code, "required,iso3166_1_alpha2")
	case model.KindCurrency:
		err = standalone.Var(code, "required,iso4217")
	default:
		if !refCodePattern.MatchString(code) {
			err = fmt.Errorf("code %q does not match %s", code, refCodePattern)
		}
	}
	if err != nil {
		return apperr.Validation("REFERENCE_CODE_INVALID", "code is not valid for "+string(kind), map[string]any{
			"kind": string(kind),
			"code": code,
		}).Wrap(err)
	}
	return nil
}
