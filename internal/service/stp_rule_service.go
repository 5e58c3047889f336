package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/anyulbade/payment-config-service/internal/apperr"
	"github.com/anyulbade/payment-config-service/internal/cache"
	"github.com/anyulbade/payment-config-service/internal/dto"
	"github.com/anyulbade/payment-config-service/internal/mapper"
	"github.com/anyulbade/payment-config-service/internal/model"
)

type StpRuleService struct {
	caRepo  CountryAuthorityStore
	stpRepo StpRuleStore
	cache   *cache.Cache
}

func NewStpRuleService(caRepo CountryAuthorityStore, stpRepo StpRuleStore, c *cache.Cache) *StpRuleService {
	return &StpRuleService{caRepo: caRepo, stpRepo: stpRepo, cache: c}
}

func (s *StpRuleService) Catalog(ctx context.Context) ([]dto.StpCatalogEntry, error) {
	catalog, err := s.catalog(ctx)
	if err != nil {
		return nil, err
	}
	return mapper.CatalogDtos(catalog), nil
}

func (s *StpRuleService) UpsertCatalog(ctx context.Context, req dto.UpsertStpCatalogRequest) ([]dto.StpCatalogEntry, error) {
	rules := make([]model.StpRule, len(req.Rules))
	seen := make(map[string]struct{}, len(req.Rules))
	for i, r := range req.Rules {
		if _, dup := seen[r.Key]; dup {
			return nil, apperr.Conflict("STP_RULE_DUPLICATE", "stp rule key is listed twice", map[string]any{"key": r.Key})
		}
		seen[r.Key] = struct{}{}
		rules[i] = model.StpRule{Key: r.Key, Description: r.Description, Order: r.Order}
	}

	if err := s.stpRepo.UpsertCatalog(ctx, rules); err != nil {
		return nil, fmt.Errorf("upsert stp catalog: %w", err)
	}
	s.cache.Purge()

	return s.Catalog(ctx)
}

// ProviderRules returns the provider's enabled rules for the country-authority
// resolved against the catalog, in catalog order.
func (s *StpRuleService) ProviderRules(ctx context.Context, provider, country, authority string) ([]dto.StpRuleInterop, error) {
	key := cache.Key("stp_rules", "provider", provider, country, authority)
	return cache.GetOrCompute(ctx, s.cache, key, func(ctx context.Context) ([]dto.StpRuleInterop, error) {
		ca, err := findCountryAuthority(ctx, s.caRepo, country, authority)
		if err != nil {
			return nil, err
		}

		var (
			catalog []model.StpRule
			entity  *model.ProviderStpRule
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			catalog, err = s.catalog(gctx)
			return err
		})
		g.Go(func() error {
			var err error
			entity, err = s.stpRepo.ProviderRules(gctx, provider, ca.ID)
			if err != nil {
				return fmt.Errorf("get provider stp rules: %w", err)
			}
			return nil
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}

		rules, err := mapper.GetDtos(entity)
		if err != nil {
			return nil, err
		}
		return mapper.EnabledInterop(rules, catalog)
	})
}

// ReplaceProviderRules stores the provider's rule overrides. Every key must
// exist in the catalog.
func (s *StpRuleService) ReplaceProviderRules(ctx context.Context, provider, country, authority string, req dto.ReplaceStpRulesRequest) ([]dto.StpRuleInterop, error) {
	ca, err := findCountryAuthority(ctx, s.caRepo, country, authority)
	if err != nil {
		return nil, err
	}
	catalog, err := s.catalog(ctx)
	if err != nil {
		return nil, err
	}

	known := make(map[string]struct{}, len(catalog))
	for _, c := range catalog {
		known[c.Key] = struct{}{}
	}
	seen := make(map[string]struct{}, len(req.Rules))
	for _, r := range req.Rules {
		if _, ok := known[r.Key]; !ok {
			return nil, apperr.NotFound("STP_RULE_UNKNOWN", "stp rule key is not in the catalog", map[string]any{"key": r.Key})
		}
		if _, dup := seen[r.Key]; dup {
			return nil, apperr.Conflict("STP_RULE_DUPLICATE", "stp rule key is listed twice", map[string]any{"key": r.Key})
		}
		seen[r.Key] = struct{}{}
	}

	blob, err := mapper.RulesBlob(req.Rules)
	if err != nil {
		return nil, fmt.Errorf("encode stp rules: %w", err)
	}
	if err := s.stpRepo.ReplaceProviderRules(ctx, provider, ca.ID, blob); err != nil {
		return nil, fmt.Errorf("replace provider stp rules: %w", err)
	}
	s.cache.Purge()

	return s.ProviderRules(ctx, provider, country, authority)
}

func (s *StpRuleService) catalog(ctx context.Context) ([]model.StpRule, error) {
	return cache.GetOrCompute(ctx, s.cache, cache.Key("stp_rules", "catalog"), func(ctx context.Context) ([]model.StpRule, error) {
		catalog, err := s.stpRepo.Catalog(ctx)
		if err != nil {
			return nil, fmt.Errorf("list stp catalog: %w", err)
		}
		return catalog, nil
	})
}
