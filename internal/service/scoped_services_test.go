package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anyulbade/payment-config-service/internal/apperr"
	"github.com/anyulbade/payment-config-service/internal/dto"
	"github.com/anyulbade/payment-config-service/internal/model"
)

func scope(country, authority string) dto.ScopeParameters {
	return dto.ScopeParameters{Country: ptr(country), Authority: ptr(authority)}
}

func TestBankAccountService_ReplaceResolvesScopesAndRegroups(t *testing.T) {
	cas := newFakeCountryAuthorities([2]string{"CY", "CYSEC"}, [2]string{"GB", "FCA"})
	banks := &fakeBankAccounts{}
	svc := NewBankAccountService(cas, banks, newTestCache())

	groups, err := svc.Replace(context.Background(), "wire", dto.ReplaceBankAccountsRequest{Groups: []dto.BankAccountGroup{{
		Parameters:   []dto.ScopeParameters{scope("GB", "FCA"), scope("CY", "CYSEC")},
		BankAccounts: []dto.BankAccount{{Name: "Operations", IBAN: "GB01"}, {Name: "Collections", IBAN: "GB02"}},
	}}})
	require.NoError(t, err)

	require.Len(t, banks.rows, 4)
	for _, row := range banks.rows {
		require.NotNil(t, row.CountryAuthorityID)
		if *row.CountryISO2 == "CY" {
			assert.Equal(t, int64(1), *row.CountryAuthorityID)
		} else {
			assert.Equal(t, int64(2), *row.CountryAuthorityID)
		}
	}

	require.Len(t, groups, 1)
	assert.Equal(t, []dto.ScopeParameters{scope("CY", "CYSEC"), scope("GB", "FCA")}, groups[0].Parameters)
	assert.Equal(t, "Collections", groups[0].BankAccounts[0].Name)
	assert.Equal(t, "Operations", groups[0].BankAccounts[1].Name)
}

func TestBankAccountService_ReplaceRejectsOverlappingScopes(t *testing.T) {
	tests := []struct {
		name   string
		groups []dto.BankAccountGroup
	}{
		{
			name: "scope in two groups",
			groups: []dto.BankAccountGroup{
				{Parameters: []dto.ScopeParameters{scope("CY", "CYSEC")}, BankAccounts: []dto.BankAccount{{Name: "A"}}},
				{Parameters: []dto.ScopeParameters{scope("CY", "CYSEC"), scope("GB", "FCA")}, BankAccounts: []dto.BankAccount{{Name: "B"}}},
			},
		},
		{
			name: "two global groups",
			groups: []dto.BankAccountGroup{
				{BankAccounts: []dto.BankAccount{{Name: "A"}}},
				{Parameters: []dto.ScopeParameters{{}}, BankAccounts: []dto.BankAccount{{Name: "B"}}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			banks := &fakeBankAccounts{}
			svc := NewBankAccountService(newFakeCountryAuthorities([2]string{"CY", "CYSEC"}, [2]string{"GB", "FCA"}), banks, nil)

			_, err := svc.Replace(context.Background(), "wire", dto.ReplaceBankAccountsRequest{Groups: tt.groups})

			require.Error(t, err)
			e, ok := apperr.As(err)
			require.True(t, ok)
			assert.Equal(t, apperr.KindConflict, e.Kind)
			assert.Equal(t, "BANK_ACCOUNTS_SCOPE_DUPLICATE", e.Code)
			assert.Nil(t, banks.rows)
		})
	}
}

func TestBankAccountService_GetEmpty(t *testing.T) {
	svc := NewBankAccountService(newFakeCountryAuthorities(), &fakeBankAccounts{}, nil)

	groups, err := svc.Get(context.Background(), "wire")
	require.NoError(t, err)
	assert.NotNil(t, groups)
	assert.Empty(t, groups)
}

func TestCredentialsService_ReplaceRejectsBadScopes(t *testing.T) {
	tests := []struct {
		name   string
		groups []dto.CredentialsGroup
		kind   apperr.Kind
		code   string
	}{
		{
			name:   "currency without country-authority",
			groups: []dto.CredentialsGroup{{Parameters: []dto.ScopeParameters{{Currency: ptr("EUR")}}, Credentials: map[string]any{"k": "v"}}},
			kind:   apperr.KindValidation,
			code:   "SCOPE_CURRENCY_WITHOUT_COUNTRY_AUTHORITY",
		},
		{
			name:   "authority only",
			groups: []dto.CredentialsGroup{{Parameters: []dto.ScopeParameters{{Authority: ptr("CYSEC")}}, Credentials: map[string]any{"k": "v"}}},
			kind:   apperr.KindValidation,
			code:   "SCOPE_INCOMPLETE",
		},
		{
			name:   "unknown country-authority",
			groups: []dto.CredentialsGroup{{Parameters: []dto.ScopeParameters{scope("DE", "BAFIN")}, Credentials: map[string]any{"k": "v"}}},
			kind:   apperr.KindNotFound,
			code:   "COUNTRY_AUTHORITY_NOT_FOUND",
		},
		{
			name: "scope in two groups",
			groups: []dto.CredentialsGroup{
				{Parameters: []dto.ScopeParameters{scope("CY", "CYSEC")}, Credentials: map[string]any{"k": "a"}},
				{Parameters: []dto.ScopeParameters{scope("CY", "CYSEC")}, Credentials: map[string]any{"k": "b"}},
			},
			kind: apperr.KindConflict,
			code: "CREDENTIALS_SCOPE_DUPLICATE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creds := &fakeCredentials{}
			svc := NewCredentialsService(newFakeCountryAuthorities([2]string{"CY", "CYSEC"}), creds, nil)

			_, err := svc.Replace(context.Background(), "stripe", dto.ReplaceCredentialsRequest{Groups: tt.groups})
			require.Error(t, err)
			e, ok := apperr.As(err)
			require.True(t, ok)
			assert.Equal(t, tt.kind, e.Kind)
			assert.Equal(t, tt.code, e.Code)
			assert.False(t, creds.replaced)
		})
	}
}

func TestCredentialsService_ReplaceGlobal(t *testing.T) {
	creds := &fakeCredentials{}
	svc := NewCredentialsService(newFakeCountryAuthorities(), creds, nil)

	groups, err := svc.Replace(context.Background(), "stripe", dto.ReplaceCredentialsRequest{Groups: []dto.CredentialsGroup{
		{Credentials: map[string]any{"api_key": "pk_live"}},
	}})
	require.NoError(t, err)
	require.Len(t, creds.rows, 1)
	assert.Nil(t, creds.rows[0].CountryAuthorityID)
	require.Len(t, groups, 1)
	assert.Equal(t, map[string]any{"api_key": "pk_live"}, groups[0].Credentials)
}

func TestCredentialsService_Effective(t *testing.T) {
	one, two := int64(1), int64(2)
	creds := &fakeCredentials{rows: []model.Credential{
		{ProviderCode: "stripe", Data: map[string]any{"a": "global", "b": "global"}},
		{ProviderCode: "stripe", CountryAuthorityID: &one, CountryISO2: ptr("CY"), AuthorityFullCode: ptr("CYSEC"), Data: map[string]any{"b": "shared", "c": "shared"}},
		{ProviderCode: "stripe", CountryAuthorityID: &one, CountryISO2: ptr("CY"), AuthorityFullCode: ptr("CYSEC"), CurrencyISO3: ptr("EUR"), Data: map[string]any{"c": "eur"}},
		{ProviderCode: "stripe", CountryAuthorityID: &two, CountryISO2: ptr("GB"), AuthorityFullCode: ptr("FCA"), Data: map[string]any{"a": "gb"}},
	}}
	svc := NewCredentialsService(newFakeCountryAuthorities([2]string{"CY", "CYSEC"}, [2]string{"GB", "FCA"}), creds, nil)
	ctx := context.Background()

	got, err := svc.Effective(ctx, "stripe", dto.EffectiveCredentialsQuery{Country: "CY", Authority: "CYSEC", Currency: "EUR"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": "global", "b": "shared", "c": "eur"}, got)

	got, err = svc.Effective(ctx, "stripe", dto.EffectiveCredentialsQuery{Country: "CY", Authority: "CYSEC"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": "global", "b": "shared", "c": "shared"}, got)

	got, err = svc.Effective(ctx, "stripe", dto.EffectiveCredentialsQuery{Country: "GB", Authority: "FCA", Currency: "GBP"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": "gb", "b": "global"}, got)

	_, err = svc.Effective(ctx, "stripe", dto.EffectiveCredentialsQuery{Country: "DE", Authority: "BAFIN"})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestCredentialsService_EffectiveNothingApplies(t *testing.T) {
	svc := NewCredentialsService(newFakeCountryAuthorities([2]string{"CY", "CYSEC"}), &fakeCredentials{}, nil)

	_, err := svc.Effective(context.Background(), "adyen", dto.EffectiveCredentialsQuery{Country: "CY", Authority: "CYSEC"})
	e, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, "CREDENTIALS_NOT_FOUND", e.Code)
}

func TestRestrictionService_UnresolvedPairsBecomeGlobal(t *testing.T) {
	restrictions := &fakeRestrictions{}
	svc := NewRestrictionService(newFakeCountryAuthorities([2]string{"CY", "CYSEC"}), restrictions, nil)

	groups, err := svc.Replace(context.Background(), "paypal", dto.ReplaceRestrictionsRequest{Restrictions: []dto.RestrictionGroup{{
		Platform: "ios",
		Settings: map[string]any{"min_version": "17"},
		CountriesAuthorities: []dto.CountryAuthorityRef{
			{Country: "CY", Authority: "CYSEC"},
			{Country: "DE", Authority: "BAFIN"},
		},
	}}})
	require.NoError(t, err)

	require.Len(t, restrictions.rows, 2)
	require.NotNil(t, restrictions.rows[0].CountryAuthorityID)
	assert.Nil(t, restrictions.rows[1].CountryAuthorityID)

	require.Len(t, groups, 1)
	assert.Equal(t, "ios", groups[0].Platform)
	assert.Equal(t, []dto.CountryAuthorityRef{{Country: "CY", Authority: "CYSEC"}}, groups[0].CountriesAuthorities)
}
