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

type CredentialsService struct {
	caRepo   CountryAuthorityStore
	credRepo CredentialsStore
	cache    *cache.Cache
}

func NewCredentialsService(caRepo CountryAuthorityStore, credRepo CredentialsStore, c *cache.Cache) *CredentialsService {
	return &CredentialsService{caRepo: caRepo, credRepo: credRepo, cache: c}
}

func (s *CredentialsService) Get(ctx context.Context, provider string) ([]dto.CredentialsGroup, error) {
	return cache.GetOrCompute(ctx, s.cache, cache.Key("credentials", "get", provider), func(ctx context.Context) ([]dto.CredentialsGroup, error) {
		rows, err := s.credRepo.ListByProvider(ctx, provider)
		if err != nil {
			return nil, fmt.Errorf("list credentials: %w", err)
		}
		groups := mapper.CredentialsDataListToGroup(rows)
		if groups == nil {
			groups = []dto.CredentialsGroup{}
		}
		return groups, nil
	})
}

func (s *CredentialsService) Replace(ctx context.Context, provider string, req dto.ReplaceCredentialsRequest) ([]dto.CredentialsGroup, error) {
	lookup, err := s.caRepo.Lookup(ctx)
	if err != nil {
		return nil, fmt.Errorf("lookup country authorities: %w", err)
	}

	rows := mapper.CredentialsGroupToDataList(provider, req.Groups)
	seen := make(map[string]struct{}, len(rows))
	for i := range rows {
		scope := mapper.ScopeKey(dto.ScopeParameters{Country: rows[i].CountryISO2, Authority: rows[i].AuthorityFullCode, Currency: rows[i].CurrencyISO3})
		if _, dup := seen[scope]; dup {
			return nil, apperr.Conflict("CREDENTIALS_SCOPE_DUPLICATE", "scope appears in more than one credentials group", map[string]any{"scope": scope})
		}
		seen[scope] = struct{}{}

		id, err := resolveScope(lookup, rows[i].CountryISO2, rows[i].AuthorityFullCode, rows[i].CurrencyISO3)
		if err != nil {
			return nil, err
		}
		rows[i].CountryAuthorityID = id
	}

	if err := s.credRepo.Replace(ctx, provider, rows); err != nil {
		return nil, fmt.Errorf("replace credentials: %w", err)
	}
	s.cache.Purge()

	return s.Get(ctx, provider)
}

// Effective merges the credentials that apply to a concrete scope: global,
// then the country-authority shared set, then the currency-specific set.
func (s *CredentialsService) Effective(ctx context.Context, provider string, q dto.EffectiveCredentialsQuery) (map[string]any, error) {
	var (
		ca   *model.CountryAuthority
		rows []model.Credential
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ca, err = findCountryAuthority(gctx, s.caRepo, q.Country, q.Authority)
		return err
	})
	g.Go(func() error {
		var err error
		rows, err = s.credRepo.ListByProvider(gctx, provider)
		if err != nil {
			return fmt.Errorf("list credentials: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var global, shared, specific map[string]any
	found := false
	for _, r := range rows {
		switch {
		case r.CountryAuthorityID == nil:
			global, found = r.Data, true
		case *r.CountryAuthorityID != ca.ID:
		case r.CurrencyISO3 == nil:
			shared, found = r.Data, true
		case q.Currency != "" && *r.CurrencyISO3 == q.Currency:
			specific, found = r.Data, true
		}
	}
	if !found {
		return nil, apperr.NotFound("CREDENTIALS_NOT_FOUND", "no credentials apply to the scope", map[string]any{
			"provider_code": provider,
			"country":       q.Country,
			"authority":     q.Authority,
			"currency":      q.Currency,
		})
	}
	return mapper.MergeCredentials(global, shared, specific), nil
}
