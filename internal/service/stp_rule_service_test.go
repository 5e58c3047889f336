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

func stpFixture() (*fakeCountryAuthorities, *fakeStpRules) {
	return newFakeCountryAuthorities([2]string{"CY", "CYSEC"}), &fakeStpRules{catalog: []model.StpRule{
		{ID: 1, Key: "kyc_verified", Description: "KYC completed", Order: 2},
		{ID: 2, Key: "amount_cap", Description: "Amount below cap", Order: 1},
		{ID: 3, Key: "known_device", Description: "Device seen before", Order: 3},
	}}
}

func TestStpRuleService_ReplaceAndReadProviderRules(t *testing.T) {
	cas, stp := stpFixture()
	svc := NewStpRuleService(cas, stp, newTestCache())
	ctx := context.Background()

	empty, err := svc.ProviderRules(ctx, "stripe", "CY", "CYSEC")
	require.NoError(t, err)
	assert.Empty(t, empty)

	got, err := svc.ReplaceProviderRules(ctx, "stripe", "CY", "CYSEC", dto.ReplaceStpRulesRequest{Rules: []dto.StpProviderRule{
		{Key: "kyc_verified", IsEnabled: true},
		{Key: "known_device", IsEnabled: false},
		{Key: "amount_cap", IsEnabled: true, Value: ptr("1000")},
	}})
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "amount_cap", got[0].Key)
	assert.Equal(t, int64(2), got[0].ID)
	require.NotNil(t, got[0].AllowType)
	assert.Equal(t, 1, *got[0].AllowType)
	assert.Equal(t, "kyc_verified", got[1].Key)
	assert.Nil(t, got[1].AllowType)
}

func TestStpRuleService_ReplaceRejectsUnknownKey(t *testing.T) {
	cas, stp := stpFixture()
	svc := NewStpRuleService(cas, stp, nil)

	_, err := svc.ReplaceProviderRules(context.Background(), "stripe", "CY", "CYSEC", dto.ReplaceStpRulesRequest{Rules: []dto.StpProviderRule{
		{Key: "velocity", IsEnabled: true},
	}})
	e, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindNotFound, e.Kind)
	assert.Equal(t, "STP_RULE_UNKNOWN", e.Code)
	assert.Empty(t, stp.blobs)
}

func TestStpRuleService_UpsertCatalog(t *testing.T) {
	cas, stp := stpFixture()
	svc := NewStpRuleService(cas, stp, newTestCache())
	ctx := context.Background()

	before, err := svc.Catalog(ctx)
	require.NoError(t, err)
	require.Len(t, before, 3)
	assert.Equal(t, "amount_cap", before[0].Key)

	after, err := svc.UpsertCatalog(ctx, dto.UpsertStpCatalogRequest{Rules: []dto.StpCatalogEntry{
		{Key: "amount_cap", Description: "Amount below cap", Order: 5},
		{Key: "velocity", Description: "Velocity check", Order: 0},
	}})
	require.NoError(t, err)
	require.Len(t, after, 4)
	assert.Equal(t, "velocity", after[0].Key)
	assert.Equal(t, "amount_cap", after[3].Key)

	_, err = svc.UpsertCatalog(ctx, dto.UpsertStpCatalogRequest{Rules: []dto.StpCatalogEntry{{Key: "x"}, {Key: "x"}}})
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
}
