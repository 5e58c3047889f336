package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/anyulbade/payment-config-service/internal/apperr"
	"github.com/anyulbade/payment-config-service/internal/keys"
	"github.com/anyulbade/payment-config-service/internal/model"
)

func findCountryAuthority(ctx context.Context, store CountryAuthorityStore, country, authority string) (*model.CountryAuthority, error) {
	ca, err := store.Find(ctx, country, authority)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("COUNTRY_AUTHORITY_NOT_FOUND", "country-authority does not exist", map[string]any{
			"country":   country,
			"authority": authority,
		})
	}
	if err != nil {
		return nil, fmt.Errorf("find country authority: %w", err)
	}
	return ca, nil
}

func findBinding(ctx context.Context, cas CountryAuthorityStore, pms ProviderMethodStore, country, authority, provider, method string) (*model.ProviderMethod, error) {
	ca, err := findCountryAuthority(ctx, cas, country, authority)
	if err != nil {
		return nil, err
	}

	pm, err := pms.Find(ctx, ca.ID, provider, method)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("PROVIDER_METHOD_NOT_BOUND", "provider method is not bound to the country-authority", map[string]any{
			"country":       country,
			"authority":     authority,
			"provider_code": provider,
			"method_code":   method,
		})
	}
	if err != nil {
		return nil, fmt.Errorf("find provider method: %w", err)
	}
	return pm, nil
}

// resolveScope maps a scope's country and authority to a country_authority
// id. Both nil is the global scope. A currency needs a country-authority.
func resolveScope(lookup map[string]int64, country, authority, currency *string) (*int64, error) {
	if country == nil && authority == nil {
		if currency != nil {
			return nil, apperr.Validation("SCOPE_CURRENCY_WITHOUT_COUNTRY_AUTHORITY",
				"a currency scope requires a country and an authority", map[string]any{"currency": *currency})
		}
		return nil, nil
	}
	if country == nil || authority == nil {
		return nil, apperr.Validation("SCOPE_INCOMPLETE", "country and authority must be given together", map[string]any{
			"scope": keys.Scope(country, authority, currency),
		})
	}

	id, ok := lookup[keys.CountryAuthority(*country, *authority)]
	if !ok {
		return nil, apperr.NotFound("COUNTRY_AUTHORITY_NOT_FOUND", "country-authority does not exist", map[string]any{
			"country":   *country,
			"authority": *authority,
		})
	}
	return &id, nil
}
