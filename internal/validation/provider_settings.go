package validation

import (
	"github.com/anyulbade/payment-config-service/internal/apperr"
	"github.com/anyulbade/payment-config-service/internal/dto"
	"github.com/anyulbade/payment-config-service/internal/keys"
)

// ValidateProviderSettings rejects defaults that reference unlisted methods
// and methods that are the default for more than one currency.
func ValidateProviderSettings(settings []dto.ProviderCountryAuthoritySettings) error {
	seenCA := make(map[string]struct{}, len(settings))

	for _, s := range settings {
		caKey := keys.CountryAuthority(s.Country, s.Authority)
		if _, dup := seenCA[caKey]; dup {
			return apperr.Conflict("SETTINGS_DUPLICATE_COUNTRY_AUTHORITY", "country-authority listed more than once", map[string]any{
				"country":   s.Country,
				"authority": s.Authority,
			})
		}
		seenCA[caKey] = struct{}{}

		methods := make(map[string]struct{}, len(s.Methods))
		for _, m := range s.Methods {
			if _, dup := methods[m.MethodCode]; dup {
				return apperr.Conflict("SETTINGS_DUPLICATE_METHOD", "method listed more than once", map[string]any{
					"country":     s.Country,
					"authority":   s.Authority,
					"method_code": m.MethodCode,
				})
			}
			methods[m.MethodCode] = struct{}{}
		}

		defaultOf := make(map[string]string)
		for _, d := range s.DefaultCurrencies {
			for _, code := range d.MethodCodes {
				if _, ok := methods[code]; !ok {
					return apperr.Validation("SETTINGS_DEFAULT_UNKNOWN_METHOD", "default currency references a method that is not listed", map[string]any{
						"country":     s.Country,
						"authority":   s.Authority,
						"currency":    d.Currency,
						"method_code": code,
					})
				}
				if prev, ok := defaultOf[code]; ok && prev != d.Currency {
					return apperr.Conflict("SETTINGS_MULTIPLE_DEFAULTS", "method has more than one default currency", map[string]any{
						"country":     s.Country,
						"authority":   s.Authority,
						"method_code": code,
						"currencies":  []string{prev, d.Currency},
					})
				}
				defaultOf[code] = d.Currency
			}
		}
	}
	return nil
}
