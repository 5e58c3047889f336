package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/anyulbade/payment-config-service/internal/apperr"
	"github.com/anyulbade/payment-config-service/internal/dto"
)

func settings(defaults ...dto.DefaultCurrencyGroup) dto.ProviderCountryAuthoritySettings {
	return dto.ProviderCountryAuthoritySettings{
		Country:   "CY",
		Authority: "CYSEC",
		Methods: []dto.ProviderMethodSettings{
			{MethodCode: "cards", Currencies: []string{"EUR", "USD"}},
			{MethodCode: "bank", Currencies: []string{"EUR"}},
		},
		DefaultCurrencies: defaults,
	}
}

func TestValidateProviderSettings(t *testing.T) {
	assert.NoError(t, ValidateProviderSettings([]dto.ProviderCountryAuthoritySettings{
		settings(dto.DefaultCurrencyGroup{Currency: "EUR", MethodCodes: []string{"cards", "bank"}}),
	}))

	err := ValidateProviderSettings([]dto.ProviderCountryAuthoritySettings{
		settings(dto.DefaultCurrencyGroup{Currency: "EUR", MethodCodes: []string{"wallet"}}),
	})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	err = ValidateProviderSettings([]dto.ProviderCountryAuthoritySettings{
		settings(
			dto.DefaultCurrencyGroup{Currency: "EUR", MethodCodes: []string{"cards"}},
			dto.DefaultCurrencyGroup{Currency: "USD", MethodCodes: []string{"cards"}},
		),
	})
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))

	err = ValidateProviderSettings([]dto.ProviderCountryAuthoritySettings{settings(), settings()})
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))

	dupMethod := settings()
	dupMethod.Methods = append(dupMethod.Methods, dto.ProviderMethodSettings{MethodCode: "cards"})
	err = ValidateProviderSettings([]dto.ProviderCountryAuthoritySettings{dupMethod})
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
}
