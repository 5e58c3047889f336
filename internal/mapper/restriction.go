package mapper

import (
	"github.com/anyulbade/payment-config-service/internal/dto"
	"github.com/anyulbade/payment-config-service/internal/keys"
	"github.com/anyulbade/payment-config-service/internal/model"
)

type RestrictionInput struct {
	ProviderCode string
	// CountriesAuthorities resolves keys.CountryAuthority(country, authority)
	// to a country_authority id.
	CountriesAuthorities map[string]int64
	Restrictions         []dto.RestrictionGroup
}

// CreateRestrictionEntities expands restriction groups to rows. A group with
// no country-authorities yields one global row. Pairs missing from the lookup
// also yield global rows and are reported in unresolved.
func CreateRestrictionEntities(in RestrictionInput) (rows []model.ProviderRestriction, unresolved []dto.CountryAuthorityRef) {
	for _, r := range in.Restrictions {
		settings := r.Settings
		if settings == nil {
			settings = map[string]any{}
		}

		if len(r.CountriesAuthorities) == 0 {
			rows = append(rows, model.ProviderRestriction{
				ProviderCode: in.ProviderCode,
				Platform:     r.Platform,
				Settings:     settings,
			})
			continue
		}

		for _, ca := range r.CountriesAuthorities {
			row := model.ProviderRestriction{
				ProviderCode: in.ProviderCode,
				Platform:     r.Platform,
				Settings:     settings,
			}
			if id, ok := in.CountriesAuthorities[keys.CountryAuthority(ca.Country, ca.Authority)]; ok {
				row.CountryAuthorityID = &id
				row.CountryISO2 = clonePtr(&ca.Country)
				row.AuthorityFullCode = clonePtr(&ca.Authority)
			} else {
				unresolved = append(unresolved, ca)
			}
			rows = append(rows, row)
		}
	}
	return rows, unresolved
}

func CreateRestrictionGroups(rows []model.ProviderRestriction) []dto.RestrictionGroup {
	index := make(map[string]int)
	seen := make([]map[string]struct{}, 0)
	var groups []dto.RestrictionGroup

	for _, row := range rows {
		settings := row.Settings
		if settings == nil {
			settings = map[string]any{}
		}

		key := row.Platform + ":" + keys.MustStable(settings)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, dto.RestrictionGroup{
				Platform:             row.Platform,
				Settings:             settings,
				CountriesAuthorities: []dto.CountryAuthorityRef{},
			})
			seen = append(seen, make(map[string]struct{}))
		}

		// Platform-wide rows contribute no scope.
		if row.CountryISO2 == nil || row.AuthorityFullCode == nil {
			continue
		}
		caKey := keys.CountryAuthority(*row.CountryISO2, *row.AuthorityFullCode)
		if _, dup := seen[i][caKey]; dup {
			continue
		}
		seen[i][caKey] = struct{}{}
		groups[i].CountriesAuthorities = append(groups[i].CountriesAuthorities, dto.CountryAuthorityRef{
			Country:   *row.CountryISO2,
			Authority: *row.AuthorityFullCode,
		})
	}
	return groups
}
