package mapper

import (
	"bytes"
	"encoding/json"
	"sort"

	"github.com/anyulbade/payment-config-service/internal/apperr"
	"github.com/anyulbade/payment-config-service/internal/dto"
	"github.com/anyulbade/payment-config-service/internal/model"
)

// GetDtos decodes a provider's stored rule overrides. A missing entity or a
// null blob means no overrides.
func GetDtos(entity *model.ProviderStpRule) ([]dto.StpProviderRule, error) {
	if entity == nil || len(entity.Rules) == 0 || bytes.Equal(bytes.TrimSpace(entity.Rules), []byte("null")) {
		return []dto.StpProviderRule{}, nil
	}

	var rules []dto.StpProviderRule
	if err := json.Unmarshal(entity.Rules, &rules); err != nil {
		return nil, apperr.Internal("STP_RULES_CORRUPT", "stored provider stp rules cannot be decoded", map[string]any{
			"provider_code":        entity.ProviderCode,
			"country_authority_id": entity.CountryAuthorityID,
		}).Wrap(err)
	}
	if rules == nil {
		rules = []dto.StpProviderRule{}
	}
	return rules, nil
}

// GetStpProviderRuleInterop resolves a provider rule against the catalog. A
// rule whose key is not in the catalog is a data integrity fault.
func GetStpProviderRuleInterop(rule dto.StpProviderRule, catalog []model.StpRule) (dto.StpRuleInterop, error) {
	for _, entry := range catalog {
		if entry.Key != rule.Key {
			continue
		}
		out := dto.StpRuleInterop{
			ID:          entry.ID,
			Key:         entry.Key,
			Description: entry.Description,
			Order:       entry.Order,
			IsEnabled:   rule.IsEnabled,
			Value:       rule.Value,
			Type:        rule.Type,
		}
		if rule.Value != nil {
			allow := 1
			out.AllowType = &allow
		}
		return out, nil
	}

	return dto.StpRuleInterop{}, apperr.Internal("STP_RULE_NOT_IN_CATALOG", "provider stp rule references an unknown catalog rule", map[string]any{
		"key": rule.Key,
	})
}

// EnabledInterop returns the enabled rules resolved against the catalog, in
// ascending catalog order.
func EnabledInterop(rules []dto.StpProviderRule, catalog []model.StpRule) ([]dto.StpRuleInterop, error) {
	out := make([]dto.StpRuleInterop, 0, len(rules))
	for _, r := range rules {
		if !r.IsEnabled {
			continue
		}
		interop, err := GetStpProviderRuleInterop(r, catalog)
		if err != nil {
			return nil, err
		}
		out = append(out, interop)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func RulesBlob(rules []dto.StpProviderRule) ([]byte, error) {
	if rules == nil {
		rules = []dto.StpProviderRule{}
	}
	return json.Marshal(rules)
}

func CatalogDtos(catalog []model.StpRule) []dto.StpCatalogEntry {
	out := make([]dto.StpCatalogEntry, len(catalog))
	for i, c := range catalog {
		out[i] = dto.StpCatalogEntry{ID: c.ID, Key: c.Key, Description: c.Description, Order: c.Order}
	}
	return out
}
