package mapper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anyulbade/payment-config-service/internal/dto"
	"github.com/anyulbade/payment-config-service/internal/model"
)

func TestCredentials_RoundTrip(t *testing.T) {
	groups := []dto.CredentialsGroup{
		{
			Parameters: []dto.ScopeParameters{
				{Country: ptr("CY"), Authority: ptr("CYSEC")},
				{Country: ptr("GB"), Authority: ptr("FCA")},
			},
			Credentials: map[string]any{"api_key": "k1", "merchant_id": "m1"},
		},
		{
			Parameters:  []dto.ScopeParameters{{Country: ptr("CY"), Authority: ptr("CYSEC"), Currency: ptr("USD")}},
			Credentials: map[string]any{"merchant_id": "m-usd"},
		},
	}

	rows := CredentialsGroupToDataList("stripe", groups)
	require.Len(t, rows, 3)
	assert.Equal(t, "stripe", rows[0].ProviderCode)

	assert.Equal(t, groups, CredentialsDataListToGroup(rows))
}

func TestCredentials_GlobalRoundTrip(t *testing.T) {
	groups := []dto.CredentialsGroup{
		{Parameters: []dto.ScopeParameters{}, Credentials: map[string]any{"k": "v"}},
		{Parameters: []dto.ScopeParameters{{}, {Country: ptr("CY"), Authority: ptr("CYSEC")}}, Credentials: map[string]any{"k": "shared"}},
	}

	rows := CredentialsGroupToDataList("stripe", groups)
	require.Len(t, rows, 3)

	assert.Equal(t, groups, CredentialsDataListToGroup(rows))
}

func TestCredentials_NilDataGroupsAsEmptyObject(t *testing.T) {
	rows := []model.Credential{
		{CountryISO2: ptr("CY"), AuthorityFullCode: ptr("CYSEC")},
		{CountryISO2: ptr("GB"), AuthorityFullCode: ptr("FCA"), Data: map[string]any{}},
	}

	groups := CredentialsDataListToGroup(rows)

	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Parameters, 2)
	assert.NotNil(t, groups[0].Credentials)
}

func TestMergeCredentials_SpecificWins(t *testing.T) {
	global := map[string]any{"api_key": "g", "endpoint": "https://api"}
	shared := map[string]any{"api_key": "shared", "merchant_id": "m1"}
	specific := map[string]any{"merchant_id": "m-eur"}

	merged := MergeCredentials(global, shared, specific)

	assert.Equal(t, map[string]any{"api_key": "shared", "endpoint": "https://api", "merchant_id": "m-eur"}, merged)
	assert.Equal(t, "m1", shared["merchant_id"], "inputs must not be mutated")
	assert.Empty(t, MergeCredentials())
}
