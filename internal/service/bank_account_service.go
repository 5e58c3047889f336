package service

import (
	"context"
	"fmt"

	"github.com/anyulbade/payment-config-service/internal/apperr"
	"github.com/anyulbade/payment-config-service/internal/cache"
	"github.com/anyulbade/payment-config-service/internal/dto"
	"github.com/anyulbade/payment-config-service/internal/mapper"
)

type BankAccountService struct {
	caRepo   CountryAuthorityStore
	bankRepo BankAccountStore
	cache    *cache.Cache
}

func NewBankAccountService(caRepo CountryAuthorityStore, bankRepo BankAccountStore, c *cache.Cache) *BankAccountService {
	return &BankAccountService{caRepo: caRepo, bankRepo: bankRepo, cache: c}
}

func (s *BankAccountService) Get(ctx context.Context, provider string) ([]dto.BankAccountGroup, error) {
	return cache.GetOrCompute(ctx, s.cache, cache.Key("bank_accounts", "get", provider), func(ctx context.Context) ([]dto.BankAccountGroup, error) {
		rows, err := s.bankRepo.ListByProvider(ctx, provider)
		if err != nil {
			return nil, fmt.Errorf("list bank accounts: %w", err)
		}
		groups := mapper.BankAccountsDataListToGroup(rows)
		if groups == nil {
			groups = []dto.BankAccountGroup{}
		}
		return groups, nil
	})
}

// Replace stores the grouped accounts as one row per account and scope,
// then returns the regrouped result as read back. A scope may appear in one
// group only.
func (s *BankAccountService) Replace(ctx context.Context, provider string, req dto.ReplaceBankAccountsRequest) ([]dto.BankAccountGroup, error) {
	seen := make(map[string]struct{})
	for _, g := range req.Groups {
		params := g.Parameters
		if len(params) == 0 {
			params = []dto.ScopeParameters{{}}
		}
		for _, p := range params {
			scope := mapper.ScopeKey(p)
			if _, dup := seen[scope]; dup {
				return nil, apperr.Conflict("BANK_ACCOUNTS_SCOPE_DUPLICATE", "scope appears in more than one bank accounts group", map[string]any{"scope": scope})
			}
			seen[scope] = struct{}{}
		}
	}

	lookup, err := s.caRepo.Lookup(ctx)
	if err != nil {
		return nil, fmt.Errorf("lookup country authorities: %w", err)
	}

	rows := mapper.BankAccountsGroupToDataList(provider, req.Groups)
	for i := range rows {
		id, err := resolveScope(lookup, rows[i].CountryISO2, rows[i].AuthorityFullCode, rows[i].CurrencyISO3)
		if err != nil {
			return nil, err
		}
		rows[i].CountryAuthorityID = id
	}

	if err := s.bankRepo.Replace(ctx, provider, rows); err != nil {
		return nil, fmt.Errorf("replace bank accounts: %w", err)
	}
	s.cache.Purge()

	return s.Get(ctx, provider)
}
