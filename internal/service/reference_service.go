package service

import (
	"context"
	"fmt"

	"github.com/anyulbade/payment-config-service/internal/cache"
	"github.com/anyulbade/payment-config-service/internal/dto"
	"github.com/anyulbade/payment-config-service/internal/model"
	"github.com/anyulbade/payment-config-service/internal/validation"
)

type ReferenceService struct {
	repo  ReferenceStore
	cache *cache.Cache
}

func NewReferenceService(repo ReferenceStore, c *cache.Cache) *ReferenceService {
	return &ReferenceService{repo: repo, cache: c}
}

func (s *ReferenceService) List(ctx context.Context, kind model.ReferenceKind) ([]model.ReferenceItem, error) {
	return cache.GetOrCompute(ctx, s.cache, cache.Key("reference", "list", kind), func(ctx context.Context) ([]model.ReferenceItem, error) {
		items, err := s.repo.List(ctx, kind)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", kind, err)
		}
		if items == nil {
			items = []model.ReferenceItem{}
		}
		return items, nil
	})
}

func (s *ReferenceService) Upsert(ctx context.Context, kind model.ReferenceKind, req dto.ReferenceItemRequest) (model.ReferenceItem, error) {
	if err := validation.ReferenceCode(kind, req.Code); err != nil {
		return model.ReferenceItem{}, err
	}

	item, err := s.repo.Upsert(ctx, kind, model.ReferenceItem{Code: req.Code, Name: req.Name})
	if err != nil {
		return model.ReferenceItem{}, fmt.Errorf("upsert %s: %w", kind, err)
	}
	s.cache.Purge()
	return item, nil
}
