package mapper

import (
	"github.com/anyulbade/payment-config-service/internal/dto"
	"github.com/anyulbade/payment-config-service/internal/model"
)

func CredentialsGroupToDataList(providerCode string, groups []dto.CredentialsGroup) []model.Credential {
	grouped := make([]Grouped[map[string]any], len(groups))
	for i, g := range groups {
		grouped[i] = Grouped[map[string]any]{Parameters: g.Parameters, Payload: g.Credentials}
	}

	flat := Expand(grouped)
	rows := make([]model.Credential, len(flat))
	for i, f := range flat {
		rows[i] = model.Credential{
			ProviderCode:      providerCode,
			CountryISO2:       f.Scope.Country,
			AuthorityFullCode: f.Scope.Authority,
			CurrencyISO3:      f.Scope.Currency,
			Data:              f.Payload,
		}
	}
	return rows
}

func CredentialsDataListToGroup(rows []model.Credential) []dto.CredentialsGroup {
	flat := make([]Flat[map[string]any], len(rows))
	for i, row := range rows {
		data := row.Data
		if data == nil {
			data = map[string]any{}
		}
		flat[i] = Flat[map[string]any]{
			Scope:   scopeFromColumns(row.CountryISO2, row.AuthorityFullCode, row.CurrencyISO3),
			Payload: data,
		}
	}

	groups := GroupByPayload(flat)
	out := make([]dto.CredentialsGroup, len(groups))
	for i, g := range groups {
		out[i] = dto.CredentialsGroup{Parameters: g.Parameters, Credentials: g.Payload}
	}
	return out
}

// MergeCredentials overlays credential layers; keys of later layers win.
// Callers pass layers from least to most specific.
func MergeCredentials(layers ...map[string]any) map[string]any {
	merged := make(map[string]any)
	for _, layer := range layers {
		for k, v := range layer {
			merged[k] = v
		}
	}
	return merged
}
