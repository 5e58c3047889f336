package mapper

import (
	"slices"
	"sort"

	"github.com/anyulbade/payment-config-service/internal/dto"
	"github.com/anyulbade/payment-config-service/internal/keys"
	"github.com/anyulbade/payment-config-service/internal/model"
)

type settingsAcc struct {
	entry      dto.ProviderCountryAuthoritySettings
	methods    map[string]int
	currencies []map[string]struct{}
	defaults   map[string]map[string]struct{}
}

// GroupProviderSettings aggregates a provider's per-method rows into one entry
// per country-authority. Default currencies are listed only for
// country-authorities that have at least one.
func GroupProviderSettings(rows []model.ProviderSettingRow) []dto.ProviderCountryAuthoritySettings {
	byCA := make(map[string]*settingsAcc)
	var order []string

	for _, row := range rows {
		caKey := keys.CountryAuthority(row.CountryISO2, row.AuthorityFullCode)
		acc, ok := byCA[caKey]
		if !ok {
			acc = &settingsAcc{
				entry: dto.ProviderCountryAuthoritySettings{
					Country:   row.CountryISO2,
					Authority: row.AuthorityFullCode,
					Methods:   []dto.ProviderMethodSettings{},
				},
				methods:  make(map[string]int),
				defaults: make(map[string]map[string]struct{}),
			}
			byCA[caKey] = acc
			order = append(order, caKey)
		}

		mi, ok := acc.methods[row.MethodCode]
		if !ok {
			mi = len(acc.entry.Methods)
			acc.methods[row.MethodCode] = mi
			acc.entry.Methods = append(acc.entry.Methods, dto.ProviderMethodSettings{
				MethodCode: row.MethodCode,
				IsEnabled:  row.IsEnabled,
				Currencies: []string{},
			})
			acc.currencies = append(acc.currencies, make(map[string]struct{}))
		}

		if row.CurrencyISO3 == nil {
			continue
		}
		cur := *row.CurrencyISO3
		if _, dup := acc.currencies[mi][cur]; !dup {
			acc.currencies[mi][cur] = struct{}{}
			acc.entry.Methods[mi].Currencies = append(acc.entry.Methods[mi].Currencies, cur)
		}
		if row.IsDefault {
			if acc.defaults[cur] == nil {
				acc.defaults[cur] = make(map[string]struct{})
			}
			acc.defaults[cur][row.MethodCode] = struct{}{}
		}
	}

	sort.Strings(order)
	out := make([]dto.ProviderCountryAuthoritySettings, 0, len(order))
	for _, caKey := range order {
		acc := byCA[caKey]
		for i := range acc.entry.Methods {
			sort.Strings(acc.entry.Methods[i].Currencies)
		}
		sort.SliceStable(acc.entry.Methods, func(i, j int) bool {
			return acc.entry.Methods[i].MethodCode < acc.entry.Methods[j].MethodCode
		})

		if len(acc.defaults) > 0 {
			for cur, methods := range acc.defaults {
				group := dto.DefaultCurrencyGroup{Currency: cur}
				for m := range methods {
					group.MethodCodes = append(group.MethodCodes, m)
				}
				sort.Strings(group.MethodCodes)
				acc.entry.DefaultCurrencies = append(acc.entry.DefaultCurrencies, group)
			}
			sort.Slice(acc.entry.DefaultCurrencies, func(i, j int) bool {
				return acc.entry.DefaultCurrencies[i].Currency < acc.entry.DefaultCurrencies[j].Currency
			})
		}
		out = append(out, acc.entry)
	}
	return out
}

// FlattenProviderSettings is the write direction. A default currency is added
// to the method's currencies when it is not listed there.
func FlattenProviderSettings(groups []dto.ProviderCountryAuthoritySettings) []model.ProviderSettingRow {
	var rows []model.ProviderSettingRow

	for _, g := range groups {
		defaultOf := make(map[string]string)
		for _, d := range g.DefaultCurrencies {
			for _, m := range d.MethodCodes {
				defaultOf[m] = d.Currency
			}
		}

		for _, m := range g.Methods {
			currencies := dedupe(m.Currencies)
			if def, ok := defaultOf[m.MethodCode]; ok && !slices.Contains(currencies, def) {
				currencies = append(currencies, def)
			}

			if len(currencies) == 0 {
				rows = append(rows, model.ProviderSettingRow{
					CountryISO2:       g.Country,
					AuthorityFullCode: g.Authority,
					MethodCode:        m.MethodCode,
					IsEnabled:         m.IsEnabled,
				})
				continue
			}
			for _, cur := range currencies {
				c := cur
				rows = append(rows, model.ProviderSettingRow{
					CountryISO2:       g.Country,
					AuthorityFullCode: g.Authority,
					MethodCode:        m.MethodCode,
					IsEnabled:         m.IsEnabled,
					CurrencyISO3:      &c,
					IsDefault:         defaultOf[m.MethodCode] == cur,
				})
			}
		}
	}
	return rows
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
