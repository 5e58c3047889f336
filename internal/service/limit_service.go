package service

import (
	"context"
	"fmt"

	"github.com/anyulbade/payment-config-service/internal/cache"
	"github.com/anyulbade/payment-config-service/internal/dto"
	"github.com/anyulbade/payment-config-service/internal/model"
	"github.com/anyulbade/payment-config-service/internal/validation"
)

type TransactionLimitService struct {
	caRepo    CountryAuthorityStore
	pmRepo    ProviderMethodStore
	limitRepo LimitStore
	cache     *cache.Cache
}

func NewTransactionLimitService(caRepo CountryAuthorityStore, pmRepo ProviderMethodStore, limitRepo LimitStore, c *cache.Cache) *TransactionLimitService {
	return &TransactionLimitService{caRepo: caRepo, pmRepo: pmRepo, limitRepo: limitRepo, cache: c}
}

func (s *TransactionLimitService) Get(ctx context.Context, country, authority, provider, method string) ([]dto.LimitResponse, error) {
	key := cache.Key("limits", "get", country, authority, provider, method)
	return cache.GetOrCompute(ctx, s.cache, key, func(ctx context.Context) ([]dto.LimitResponse, error) {
		pm, err := findBinding(ctx, s.caRepo, s.pmRepo, country, authority, provider, method)
		if err != nil {
			return nil, err
		}
		return s.load(ctx, pm.ID)
	})
}

func (s *TransactionLimitService) Replace(ctx context.Context, country, authority, provider, method string, req dto.ReplaceLimitsRequest) ([]dto.LimitResponse, error) {
	if err := validation.ValidateLimits(req.Limits); err != nil {
		return nil, err
	}

	pm, err := findBinding(ctx, s.caRepo, s.pmRepo, country, authority, provider, method)
	if err != nil {
		return nil, err
	}

	limits := make([]model.TransactionLimit, len(req.Limits))
	for i, l := range req.Limits {
		limits[i] = model.TransactionLimit{
			ProviderMethodID: pm.ID,
			CurrencyISO3:     l.Currency,
			TransactionType:  l.TransactionType,
			MinAmount:        l.MinAmount,
			MaxAmount:        l.MaxAmount,
		}
	}
	if err := s.limitRepo.Replace(ctx, pm.ID, limits); err != nil {
		return nil, fmt.Errorf("replace limits: %w", err)
	}
	s.cache.Purge()

	return s.load(ctx, pm.ID)
}

func (s *TransactionLimitService) load(ctx context.Context, providerMethodID int64) ([]dto.LimitResponse, error) {
	limits, err := s.limitRepo.List(ctx, providerMethodID)
	if err != nil {
		return nil, fmt.Errorf("list limits: %w", err)
	}
	out := make([]dto.LimitResponse, len(limits))
	for i, l := range limits {
		out[i] = dto.LimitResponse{
			Currency:        l.CurrencyISO3,
			TransactionType: l.TransactionType,
			MinAmount:       l.MinAmount,
			MaxAmount:       l.MaxAmount,
		}
	}
	return out, nil
}
