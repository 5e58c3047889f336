package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/anyulbade/payment-config-service/internal/apperr"
	"github.com/anyulbade/payment-config-service/internal/cache"
	"github.com/anyulbade/payment-config-service/internal/dto"
	"github.com/anyulbade/payment-config-service/internal/model"
)

type CountryAuthorityService struct {
	caRepo CountryAuthorityStore
	pmRepo ProviderMethodStore
	cache  *cache.Cache
}

func NewCountryAuthorityService(caRepo CountryAuthorityStore, pmRepo ProviderMethodStore, c *cache.Cache) *CountryAuthorityService {
	return &CountryAuthorityService{caRepo: caRepo, pmRepo: pmRepo, cache: c}
}

func (s *CountryAuthorityService) List(ctx context.Context) ([]dto.CountryAuthority, error) {
	return cache.GetOrCompute(ctx, s.cache, cache.Key("country_authority", "list"), func(ctx context.Context) ([]dto.CountryAuthority, error) {
		list, err := s.caRepo.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list country authorities: %w", err)
		}
		out := make([]dto.CountryAuthority, len(list))
		for i, ca := range list {
			out[i] = countryAuthorityDto(ca)
		}
		return out, nil
	})
}

func (s *CountryAuthorityService) Create(ctx context.Context, req dto.CountryAuthorityRef) (dto.CountryAuthority, error) {
	ca, err := s.caRepo.Create(ctx, req.Country, req.Authority)
	if err != nil {
		return dto.CountryAuthority{}, err
	}
	s.cache.Purge()
	return countryAuthorityDto(ca), nil
}

func (s *CountryAuthorityService) ListMethods(ctx context.Context, country, authority string) ([]dto.ProviderMethod, error) {
	return cache.GetOrCompute(ctx, s.cache, cache.Key("country_authority", "methods", country, authority), func(ctx context.Context) ([]dto.ProviderMethod, error) {
		ca, err := findCountryAuthority(ctx, s.caRepo, country, authority)
		if err != nil {
			return nil, err
		}
		methods, err := s.pmRepo.ListByCountryAuthority(ctx, ca.ID)
		if err != nil {
			return nil, fmt.Errorf("list provider methods: %w", err)
		}
		out := make([]dto.ProviderMethod, len(methods))
		for i, m := range methods {
			out[i] = providerMethodDto(m)
		}
		return out, nil
	})
}

func (s *CountryAuthorityService) BindMethod(ctx context.Context, country, authority string, req dto.BindProviderMethodRequest) (dto.ProviderMethod, error) {
	ca, err := findCountryAuthority(ctx, s.caRepo, country, authority)
	if err != nil {
		return dto.ProviderMethod{}, err
	}

	_, err = s.pmRepo.Find(ctx, ca.ID, req.ProviderCode, req.MethodCode)
	if err == nil {
		return dto.ProviderMethod{}, apperr.Conflict("PROVIDER_METHOD_ALREADY_BOUND", "provider method is already bound to the country-authority", map[string]any{
			"country":       country,
			"authority":     authority,
			"provider_code": req.ProviderCode,
			"method_code":   req.MethodCode,
		})
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return dto.ProviderMethod{}, fmt.Errorf("find provider method: %w", err)
	}

	enabled := true
	if req.IsEnabled != nil {
		enabled = *req.IsEnabled
	}
	pm, err := s.pmRepo.Bind(ctx, ca.ID, req.ProviderCode, req.MethodCode, enabled, req.DepositsOrder)
	if err != nil {
		return dto.ProviderMethod{}, err
	}
	s.cache.Purge()
	return providerMethodDto(*pm), nil
}

func (s *CountryAuthorityService) UnbindMethod(ctx context.Context, country, authority, provider, method string) error {
	ca, err := findCountryAuthority(ctx, s.caRepo, country, authority)
	if err != nil {
		return err
	}

	removed, err := s.pmRepo.Unbind(ctx, ca.ID, provider, method)
	if err != nil {
		return fmt.Errorf("unbind provider method: %w", err)
	}
	if !removed {
		return apperr.NotFound("PROVIDER_METHOD_NOT_BOUND", "provider method is not bound to the country-authority", map[string]any{
			"country":       country,
			"authority":     authority,
			"provider_code": provider,
			"method_code":   method,
		})
	}
	s.cache.Purge()
	return nil
}

func countryAuthorityDto(ca model.CountryAuthority) dto.CountryAuthority {
	return dto.CountryAuthority{ID: ca.ID, Country: ca.CountryISO2, Authority: ca.AuthorityFullCode}
}

func providerMethodDto(m model.ProviderMethod) dto.ProviderMethod {
	return dto.ProviderMethod{
		ProviderCode:  m.ProviderCode,
		MethodCode:    m.MethodCode,
		IsEnabled:     m.IsEnabled,
		DepositsOrder: m.DepositsOrder,
		RefundsOrder:  m.RefundsOrder,
		PayoutsOrder:  m.PayoutsOrder,
	}
}
