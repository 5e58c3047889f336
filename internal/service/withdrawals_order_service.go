package service

import (
	"context"
	"fmt"

	"github.com/anyulbade/payment-config-service/internal/cache"
	"github.com/anyulbade/payment-config-service/internal/dto"
	"github.com/anyulbade/payment-config-service/internal/mapper"
	"github.com/anyulbade/payment-config-service/internal/model"
	"github.com/anyulbade/payment-config-service/internal/validation"
)

type WithdrawalsOrderService struct {
	caRepo    CountryAuthorityStore
	pmRepo    ProviderMethodStore
	validator validation.WithdrawalsOrderValidator
	cache     *cache.Cache
}

func NewWithdrawalsOrderService(caRepo CountryAuthorityStore, pmRepo ProviderMethodStore, c *cache.Cache) *WithdrawalsOrderService {
	return &WithdrawalsOrderService{caRepo: caRepo, pmRepo: pmRepo, cache: c}
}

func (s *WithdrawalsOrderService) Get(ctx context.Context, country, authority string) (dto.WithdrawalsOrderResponse, error) {
	return cache.GetOrCompute(ctx, s.cache, cache.Key("withdrawals_order", "get", country, authority), func(ctx context.Context) (dto.WithdrawalsOrderResponse, error) {
		ca, err := findCountryAuthority(ctx, s.caRepo, country, authority)
		if err != nil {
			return dto.WithdrawalsOrderResponse{}, err
		}
		methods, err := s.pmRepo.ListByCountryAuthority(ctx, ca.ID)
		if err != nil {
			return dto.WithdrawalsOrderResponse{}, fmt.Errorf("list provider methods: %w", err)
		}
		return mapper.WithdrawalsOrderFromMethods(methods), nil
	})
}

// Update replaces the refund and payout ranking of every provider method
// bound to the country-authority. Nothing is written unless the request
// passes validation.
func (s *WithdrawalsOrderService) Update(ctx context.Context, country, authority string, req dto.WithdrawalsOrderRequest) (dto.WithdrawalsOrderResponse, error) {
	ca, err := findCountryAuthority(ctx, s.caRepo, country, authority)
	if err != nil {
		return dto.WithdrawalsOrderResponse{}, err
	}

	methods, err := s.pmRepo.ListByCountryAuthority(ctx, ca.ID)
	if err != nil {
		return dto.WithdrawalsOrderResponse{}, fmt.Errorf("list provider methods: %w", err)
	}
	if err := s.validator.Validate(req, methodRefs(methods)); err != nil {
		return dto.WithdrawalsOrderResponse{}, err
	}

	orders := mapper.MapWithdrawalsOrderToProviderMethod(req.Refunds, req.Payouts)
	if err := s.pmRepo.UpdateWithdrawalOrders(ctx, ca.ID, orders); err != nil {
		return dto.WithdrawalsOrderResponse{}, fmt.Errorf("update withdrawal orders: %w", err)
	}
	s.cache.Purge()

	updated, err := s.pmRepo.ListByCountryAuthority(ctx, ca.ID)
	if err != nil {
		return dto.WithdrawalsOrderResponse{}, fmt.Errorf("list provider methods: %w", err)
	}
	return mapper.WithdrawalsOrderFromMethods(updated), nil
}

func methodRefs(methods []model.ProviderMethod) []dto.ProviderMethodRef {
	refs := make([]dto.ProviderMethodRef, len(methods))
	for i, m := range methods {
		refs[i] = dto.ProviderMethodRef{ProviderCode: m.ProviderCode, MethodCode: m.MethodCode}
	}
	return refs
}
