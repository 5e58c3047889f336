// Package keys builds the canonical string keys used to group, dedupe and
// cache configuration records.
package keys

import (
	"encoding/json"
	"strings"
)

const wildcard = "*"

// Scope renders a (country, authority, currency) tuple. A nil part means
// "applies to all" and renders as "*".
func Scope(country, authority, currency *string) string {
	return strings.Join([]string{part(country), part(authority), part(currency)}, ":")
}

// Pair keys a (methodCode, providerCode) binding.
func Pair(methodCode, providerCode string) string {
	return methodCode + ":" + providerCode
}

// CountryAuthority keys a country-authority lookup.
func CountryAuthority(country, authority string) string {
	return country + ":" + authority
}

// Stable serializes v to JSON with object keys sorted. Maps are emitted in key
// order by encoding/json and struct fields in declaration order, so two equal
// values always produce the same key.
func Stable(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// MustStable is Stable for values that are known to be serializable.
func MustStable(v any) string {
	s, err := Stable(v)
	if err != nil {
		panic("keys: unserializable value: " + err.Error())
	}
	return s
}

func part(s *string) string {
	if s == nil {
		return wildcard
	}
	return *s
}
