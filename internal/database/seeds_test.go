package database

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anyulbade/payment-config-service/seeddata"
)

func TestParseSeed_Embedded(t *testing.T) {
	seed, err := ParseSeed(seeddata.ReferenceYAML)
	require.NoError(t, err)

	assert.NotEmpty(t, seed.Countries)
	assert.NotEmpty(t, seed.StpRules)
	for _, c := range seed.Countries {
		assert.Len(t, c.Code, 2, c.Code)
	}
	for _, c := range seed.Currencies {
		assert.Len(t, c.Code, 3, c.Code)
	}
}

func TestParseSeed_RejectsDefaultOutsideCurrencies(t *testing.T) {
	_, err := ParseSeed([]byte(`
provider_methods:
  - {country: CY, authority: CYSEC, provider: stripe, method: cards, currencies: [EUR], default_currency: USD}
`))
	assert.Error(t, err)

	_, err = ParseSeed([]byte("countries: [oops"))
	assert.Error(t, err)
}

func TestSeedData(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	MigrationsDir = "file://../../migrations"
	t.Cleanup(func() { MigrationsDir = "file://migrations" })

	dbURL := getTestDBURL()
	pool, err := pgxpool.New(context.Background(), dbURL)
	if err != nil {
		t.Skip("no database available")
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		t.Skip("no database available")
	}

	_ = RollbackMigrations(dbURL)
	require.NoError(t, RunMigrations(dbURL))

	ctx := context.Background()
	seed, err := ParseSeed(seeddata.ReferenceYAML)
	require.NoError(t, err)

	t.Run("seed loads reference data", func(t *testing.T) {
		require.NoError(t, SeedData(ctx, pool))

		var countryCount, camCount, stpCount int
		require.NoError(t, pool.QueryRow(ctx, "SELECT COUNT(*) FROM countries").Scan(&countryCount))
		require.NoError(t, pool.QueryRow(ctx, "SELECT COUNT(*) FROM country_authority_methods").Scan(&camCount))
		require.NoError(t, pool.QueryRow(ctx, "SELECT COUNT(*) FROM stp_rules").Scan(&stpCount))

		assert.Equal(t, len(seed.Countries), countryCount)
		assert.Equal(t, len(seed.ProviderMethods), camCount)
		assert.Equal(t, len(seed.StpRules), stpCount)

		var maxRank int
		require.NoError(t, pool.QueryRow(ctx, `
			SELECT MAX(refunds_order) FROM country_authority_methods cam
			JOIN country_authorities ca ON ca.id = cam.country_authority_id
			WHERE ca.country_iso2 = 'CY'`).Scan(&maxRank))
		assert.Equal(t, 3, maxRank, "three CY methods ranked 3..1")
	})

	t.Run("idempotency - running twice does not duplicate", func(t *testing.T) {
		var before, after int
		require.NoError(t, pool.QueryRow(ctx, "SELECT COUNT(*) FROM country_authority_methods").Scan(&before))
		require.NoError(t, SeedData(ctx, pool))
		require.NoError(t, pool.QueryRow(ctx, "SELECT COUNT(*) FROM country_authority_methods").Scan(&after))
		assert.Equal(t, before, after, "second seed should not add data")
	})

	_ = RollbackMigrations(dbURL)
}
