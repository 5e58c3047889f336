package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/anyulbade/payment-config-service/seeddata"
)

type seedItem struct {
	Code string `yaml:"code"`
	Name string `yaml:"name"`
}

type seedCountryAuthority struct {
	Country   string `yaml:"country"`
	Authority string `yaml:"authority"`
}

type seedProviderMethod struct {
	Country         string   `yaml:"country"`
	Authority       string   `yaml:"authority"`
	Provider        string   `yaml:"provider"`
	Method          string   `yaml:"method"`
	Currencies      []string `yaml:"currencies"`
	DefaultCurrency string   `yaml:"default_currency"`
}

type seedStpRule struct {
	Key         string `yaml:"key"`
	Description string `yaml:"description"`
	Order       int    `yaml:"order"`
}

type Seed struct {
	Countries          []seedItem             `yaml:"countries"`
	Authorities        []seedItem             `yaml:"authorities"`
	Currencies         []seedItem             `yaml:"currencies"`
	Methods            []seedItem             `yaml:"methods"`
	Providers          []seedItem             `yaml:"providers"`
	CountryAuthorities []seedCountryAuthority `yaml:"country_authorities"`
	ProviderMethods    []seedProviderMethod   `yaml:"provider_methods"`
	StpRules           []seedStpRule          `yaml:"stp_rules"`
}

func ParseSeed(data []byte) (*Seed, error) {
	var s Seed
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse seed yaml: %w", err)
	}
	for _, pm := range s.ProviderMethods {
		if pm.DefaultCurrency == "" {
			continue
		}
		found := false
		for _, c := range pm.Currencies {
			found = found || c == pm.DefaultCurrency
		}
		if !found {
			return nil, fmt.Errorf("seed %s/%s %s:%s: default currency %s not in currencies",
				pm.Country, pm.Authority, pm.Provider, pm.Method, pm.DefaultCurrency)
		}
	}
	return &s, nil
}

// SeedData loads the embedded reference data. It does nothing when countries
// already exist.
func SeedData(ctx context.Context, pool *pgxpool.Pool) error {
	seed, err := ParseSeed(seeddata.ReferenceYAML)
	if err != nil {
		return err
	}

	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM countries").Scan(&count); err != nil {
		return fmt.Errorf("check existing data: %w", err)
	}
	if count > 0 {
		log.Info().Msg("seed data already exists, skipping")
		return nil
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tables := []struct {
		name  string
		query string
		items []seedItem
	}{
		{"countries", "INSERT INTO countries (iso2, name) VALUES ($1, $2)", seed.Countries},
		{"authorities", "INSERT INTO authorities (full_code, name) VALUES ($1, $2)", seed.Authorities},
		{"currencies", "INSERT INTO currencies (iso3, name) VALUES ($1, $2)", seed.Currencies},
		{"methods", "INSERT INTO methods (code, name) VALUES ($1, $2)", seed.Methods},
		{"providers", "INSERT INTO providers (code, name) VALUES ($1, $2)", seed.Providers},
	}
	for _, table := range tables {
		batch := &pgx.Batch{}
		for _, item := range table.items {
			batch.Queue(table.query, item.Code, item.Name)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert %s: %w", table.name, err)
		}
		log.Info().Int("count", len(table.items)).Msgf("inserted %s", table.name)
	}

	caIDs := make(map[string]int64, len(seed.CountryAuthorities))
	for _, ca := range seed.CountryAuthorities {
		var id int64
		err := tx.QueryRow(ctx,
			"INSERT INTO country_authorities (country_iso2, authority_full_code) VALUES ($1, $2) RETURNING id",
			ca.Country, ca.Authority).Scan(&id)
		if err != nil {
			return fmt.Errorf("insert country authority %s/%s: %w", ca.Country, ca.Authority, err)
		}
		caIDs[ca.Country+":"+ca.Authority] = id
	}

	for _, pm := range seed.ProviderMethods {
		caID, ok := caIDs[pm.Country+":"+pm.Authority]
		if !ok {
			return fmt.Errorf("seed provider method %s:%s: unknown country authority %s/%s", pm.Provider, pm.Method, pm.Country, pm.Authority)
		}
		var camID int64
		err := tx.QueryRow(ctx,
			`INSERT INTO country_authority_methods (country_authority_id, provider_code, method_code)
			VALUES ($1, $2, $3) RETURNING id`,
			caID, pm.Provider, pm.Method).Scan(&camID)
		if err != nil {
			return fmt.Errorf("insert provider method %s:%s: %w", pm.Provider, pm.Method, err)
		}
		for _, cur := range pm.Currencies {
			_, err := tx.Exec(ctx,
				"INSERT INTO method_currencies (country_authority_method_id, currency_iso3, is_default) VALUES ($1, $2, $3)",
				camID, cur, cur == pm.DefaultCurrency)
			if err != nil {
				return fmt.Errorf("insert method currency %s: %w", cur, err)
			}
		}
	}
	log.Info().Int("count", len(seed.ProviderMethods)).Msg("inserted provider methods")

	// Withdrawal ranks follow seed order within each country-authority.
	_, err = tx.Exec(ctx, `
		UPDATE country_authority_methods cam
		SET refunds_order = ranked.rank, payouts_order = ranked.rank
		FROM (
			SELECT id, ROW_NUMBER() OVER (PARTITION BY country_authority_id ORDER BY id DESC) AS rank
			FROM country_authority_methods
		) ranked
		WHERE cam.id = ranked.id`)
	if err != nil {
		return fmt.Errorf("rank withdrawal order: %w", err)
	}

	for _, r := range seed.StpRules {
		_, err := tx.Exec(ctx, "INSERT INTO stp_rules (key, description, sort_order) VALUES ($1, $2, $3)",
			r.Key, r.Description, r.Order)
		if err != nil {
			return fmt.Errorf("insert stp rule %s: %w", r.Key, err)
		}
	}
	log.Info().Int("count", len(seed.StpRules)).Msg("inserted stp rules")

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit seed data: %w", err)
	}

	log.Info().Msg("seed data loaded")
	return nil
}
