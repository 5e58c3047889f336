package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/anyulbade/payment-config-service/internal/cache"
	"github.com/anyulbade/payment-config-service/internal/dto"
	"github.com/anyulbade/payment-config-service/internal/mapper"
)

type RestrictionService struct {
	caRepo          CountryAuthorityStore
	restrictionRepo RestrictionStore
	cache           *cache.Cache
}

func NewRestrictionService(caRepo CountryAuthorityStore, restrictionRepo RestrictionStore, c *cache.Cache) *RestrictionService {
	return &RestrictionService{caRepo: caRepo, restrictionRepo: restrictionRepo, cache: c}
}

func (s *RestrictionService) Get(ctx context.Context, provider string) ([]dto.RestrictionGroup, error) {
	return cache.GetOrCompute(ctx, s.cache, cache.Key("restrictions", "get", provider), func(ctx context.Context) ([]dto.RestrictionGroup, error) {
		rows, err := s.restrictionRepo.ListByProvider(ctx, provider)
		if err != nil {
			return nil, fmt.Errorf("list restrictions: %w", err)
		}
		groups := mapper.CreateRestrictionGroups(rows)
		if groups == nil {
			groups = []dto.RestrictionGroup{}
		}
		return groups, nil
	})
}

// Replace stores the restrictions. Country-authority pairs that do not exist
// are stored as global rows and logged.
func (s *RestrictionService) Replace(ctx context.Context, provider string, req dto.ReplaceRestrictionsRequest) ([]dto.RestrictionGroup, error) {
	lookup, err := s.caRepo.Lookup(ctx)
	if err != nil {
		return nil, fmt.Errorf("lookup country authorities: %w", err)
	}

	rows, unresolved := mapper.CreateRestrictionEntities(mapper.RestrictionInput{
		ProviderCode:         provider,
		CountriesAuthorities: lookup,
		Restrictions:         req.Restrictions,
	})
	for _, ca := range unresolved {
		log.Warn().
			Str("provider_code", provider).
			Str("country", ca.Country).
			Str("authority", ca.Authority).
			Msg("restriction country-authority not found, stored as global")
	}

	if err := s.restrictionRepo.Replace(ctx, provider, rows); err != nil {
		return nil, fmt.Errorf("replace restrictions: %w", err)
	}
	s.cache.Purge()

	return s.Get(ctx, provider)
}
