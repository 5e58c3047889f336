package validation

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anyulbade/payment-config-service/internal/apperr"
	"github.com/anyulbade/payment-config-service/internal/dto"
	"github.com/anyulbade/payment-config-service/internal/model"
)

func TestRegisterBindings(t *testing.T) {
	require.NoError(t, RegisterBindings())
	require.NoError(t, RegisterBindings())

	v := binding.Validator.Engine().(*validator.Validate)
	assert.NoError(t, v.Struct(dto.ReferenceItemRequest{Code: "stripe_eu", Name: "Stripe EU"}))
	assert.Error(t, v.Struct(dto.ReferenceItemRequest{Code: "bad code!", Name: "x"}))
	assert.Error(t, v.Struct(dto.ReferenceItemRequest{Code: "", Name: "x"}))
}

func TestReferenceCode(t *testing.T) {
	assert.NoError(t, ReferenceCode(model.KindCountry, "CY"))
	assert.NoError(t, ReferenceCode(model.KindCurrency, "EUR"))
	assert.NoError(t, ReferenceCode(model.KindAuthority, "CYSEC"))
	assert.NoError(t, ReferenceCode(model.KindProvider, "stripe"))

	for kind, code := range map[model.ReferenceKind]string{
		model.KindCountry:  "XX",
		model.KindCurrency: "EURO",
		model.KindMethod:   "-leading-dash",
	} {
		err := ReferenceCode(kind, code)
		assert.True(t, apperr.IsKind(err, apperr.KindValidation), "%s %s", kind, code)
	}
}
