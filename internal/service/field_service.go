package service

import (
	"context"
	"fmt"

	"github.com/anyulbade/payment-config-service/internal/apperr"
	"github.com/anyulbade/payment-config-service/internal/cache"
	"github.com/anyulbade/payment-config-service/internal/dto"
	"github.com/anyulbade/payment-config-service/internal/mapper"
)

type FieldService struct {
	caRepo    CountryAuthorityStore
	pmRepo    ProviderMethodStore
	fieldRepo FieldStore
	cache     *cache.Cache
}

func NewFieldService(caRepo CountryAuthorityStore, pmRepo ProviderMethodStore, fieldRepo FieldStore, c *cache.Cache) *FieldService {
	return &FieldService{caRepo: caRepo, pmRepo: pmRepo, fieldRepo: fieldRepo, cache: c}
}

func (s *FieldService) Get(ctx context.Context, country, authority, provider, method string) (dto.FieldsByTransactionType, error) {
	key := cache.Key("fields", "get", country, authority, provider, method)
	return cache.GetOrCompute(ctx, s.cache, key, func(ctx context.Context) (dto.FieldsByTransactionType, error) {
		pm, err := findBinding(ctx, s.caRepo, s.pmRepo, country, authority, provider, method)
		if err != nil {
			return dto.FieldsByTransactionType{}, err
		}
		return s.load(ctx, pm.ID)
	})
}

func (s *FieldService) Replace(ctx context.Context, country, authority, provider, method string, req dto.ReplaceFieldsRequest) (dto.FieldsByTransactionType, error) {
	pm, err := findBinding(ctx, s.caRepo, s.pmRepo, country, authority, provider, method)
	if err != nil {
		return dto.FieldsByTransactionType{}, err
	}

	seen := make(map[string]struct{}, len(req.Fields))
	for _, f := range req.Fields {
		k := f.TransactionType + ":" + f.Key
		if _, dup := seen[k]; dup {
			return dto.FieldsByTransactionType{}, apperr.Conflict("FIELD_DUPLICATE", "field is listed twice", map[string]any{
				"transaction_type": f.TransactionType,
				"key":              f.Key,
			})
		}
		seen[k] = struct{}{}
	}

	fields, options := mapper.CreateEntities(pm.ID, req.Fields)
	if err := s.fieldRepo.Replace(ctx, pm.ID, fields, options); err != nil {
		return dto.FieldsByTransactionType{}, fmt.Errorf("replace fields: %w", err)
	}
	s.cache.Purge()

	return s.load(ctx, pm.ID)
}

func (s *FieldService) load(ctx context.Context, providerMethodID int64) (dto.FieldsByTransactionType, error) {
	fields, options, err := s.fieldRepo.List(ctx, providerMethodID)
	if err != nil {
		return dto.FieldsByTransactionType{}, fmt.Errorf("list fields: %w", err)
	}
	return mapper.SplitByTransactionType(mapper.FieldDtos(fields, options)), nil
}
