package service

import (
	"context"
	"fmt"

	"github.com/anyulbade/payment-config-service/internal/apperr"
	"github.com/anyulbade/payment-config-service/internal/cache"
	"github.com/anyulbade/payment-config-service/internal/dto"
	"github.com/anyulbade/payment-config-service/internal/keys"
	"github.com/anyulbade/payment-config-service/internal/mapper"
	"github.com/anyulbade/payment-config-service/internal/validation"
)

type ProviderSettingsService struct {
	caRepo CountryAuthorityStore
	pmRepo ProviderMethodStore
	cache  *cache.Cache
}

func NewProviderSettingsService(caRepo CountryAuthorityStore, pmRepo ProviderMethodStore, c *cache.Cache) *ProviderSettingsService {
	return &ProviderSettingsService{caRepo: caRepo, pmRepo: pmRepo, cache: c}
}

func (s *ProviderSettingsService) Get(ctx context.Context, provider string) ([]dto.ProviderCountryAuthoritySettings, error) {
	return cache.GetOrCompute(ctx, s.cache, cache.Key("provider_settings", "get", provider), func(ctx context.Context) ([]dto.ProviderCountryAuthoritySettings, error) {
		rows, err := s.pmRepo.ListSettings(ctx, provider)
		if err != nil {
			return nil, fmt.Errorf("list provider settings: %w", err)
		}
		groups := mapper.GroupProviderSettings(rows)
		if groups == nil {
			groups = []dto.ProviderCountryAuthoritySettings{}
		}
		return groups, nil
	})
}

func (s *ProviderSettingsService) Replace(ctx context.Context, provider string, req dto.ReplaceProviderSettingsRequest) ([]dto.ProviderCountryAuthoritySettings, error) {
	if err := validation.ValidateProviderSettings(req.Settings); err != nil {
		return nil, err
	}

	lookup, err := s.caRepo.Lookup(ctx)
	if err != nil {
		return nil, fmt.Errorf("lookup country authorities: %w", err)
	}
	for _, g := range req.Settings {
		if _, ok := lookup[keys.CountryAuthority(g.Country, g.Authority)]; !ok {
			return nil, apperr.NotFound("COUNTRY_AUTHORITY_NOT_FOUND", "country-authority does not exist", map[string]any{
				"country":   g.Country,
				"authority": g.Authority,
			})
		}
	}

	rows := mapper.FlattenProviderSettings(req.Settings)
	if err := s.pmRepo.ReplaceSettings(ctx, provider, rows, lookup); err != nil {
		return nil, fmt.Errorf("replace provider settings: %w", err)
	}
	s.cache.Purge()

	return s.Get(ctx, provider)
}
