// Package mapper converts configuration between its flat persisted form (one
// row per concrete scope) and its grouped API form (one entry per distinct
// payload together with the scopes that share it).
package mapper

import (
	"sort"

	"github.com/anyulbade/payment-config-service/internal/dto"
	"github.com/anyulbade/payment-config-service/internal/keys"
)

type Flat[T any] struct {
	Scope   dto.ScopeParameters
	Payload T
}

type Grouped[T any] struct {
	Parameters []dto.ScopeParameters
	Payload    T
}

// Expand emits one flat record per scope of every group. A group without
// parameters applies globally and expands to a single empty scope.
func Expand[T any](groups []Grouped[T]) []Flat[T] {
	var out []Flat[T]
	for _, g := range groups {
		if len(g.Parameters) == 0 {
			out = append(out, Flat[T]{Scope: dto.ScopeParameters{}, Payload: g.Payload})
			continue
		}
		for _, p := range g.Parameters {
			out = append(out, Flat[T]{Scope: copyScope(p), Payload: g.Payload})
		}
	}
	return out
}

// GroupByPayload collapses flat records with an identical payload into one
// group. Groups keep first-seen order; scopes are deduplicated and sorted.
// A group whose only scope is the global one gets empty parameters, the
// same form Expand accepts for it.
func GroupByPayload[T any](flat []Flat[T]) []Grouped[T] {
	index := make(map[string]int)
	seen := make([]map[string]struct{}, 0)
	var groups []Grouped[T]

	for _, f := range flat {
		key := keys.MustStable(f.Payload)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Grouped[T]{Payload: f.Payload})
			seen = append(seen, make(map[string]struct{}))
		}

		sk := ScopeKey(f.Scope)
		if _, dup := seen[i][sk]; dup {
			continue
		}
		seen[i][sk] = struct{}{}
		groups[i].Parameters = append(groups[i].Parameters, copyScope(f.Scope))
	}

	for i := range groups {
		if len(groups[i].Parameters) == 1 && isGlobal(groups[i].Parameters[0]) {
			groups[i].Parameters = []dto.ScopeParameters{}
			continue
		}
		SortScopes(groups[i].Parameters)
	}
	return groups
}

func isGlobal(p dto.ScopeParameters) bool {
	return p.Country == nil && p.Authority == nil && p.Currency == nil
}

func ScopeKey(p dto.ScopeParameters) string {
	return keys.Scope(p.Country, p.Authority, p.Currency)
}

func SortScopes(scopes []dto.ScopeParameters) {
	sort.SliceStable(scopes, func(i, j int) bool {
		return ScopeKey(scopes[i]) < ScopeKey(scopes[j])
	})
}

// scopeFromColumns renames the persisted scope columns (countryIso2,
// authorityFullCode, currencyIso3) to API parameters. Nil columns stay nil
// and are omitted when serialized.
func scopeFromColumns(countryISO2, authorityFullCode, currencyISO3 *string) dto.ScopeParameters {
	return dto.ScopeParameters{
		Country:   clonePtr(countryISO2),
		Authority: clonePtr(authorityFullCode),
		Currency:  clonePtr(currencyISO3),
	}
}

func copyScope(p dto.ScopeParameters) dto.ScopeParameters {
	return scopeFromColumns(p.Country, p.Authority, p.Currency)
}

func clonePtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
