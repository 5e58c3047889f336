package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/anyulbade/payment-config-service/internal/keys"
	"github.com/anyulbade/payment-config-service/internal/model"
)

type CountryAuthorityRepository struct {
	pool *pgxpool.Pool
}

func NewCountryAuthorityRepository(pool *pgxpool.Pool) *CountryAuthorityRepository {
	return &CountryAuthorityRepository{pool: pool}
}

func scanCountryAuthority(row pgx.CollectableRow) (model.CountryAuthority, error) {
	var ca model.CountryAuthority
	err := row.Scan(&ca.ID, &ca.CountryISO2, &ca.AuthorityFullCode)
	return ca, err
}

func (r *CountryAuthorityRepository) List(ctx context.Context) ([]model.CountryAuthority, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, country_iso2, authority_full_code FROM country_authorities
		ORDER BY country_iso2, authority_full_code`)
	if err != nil {
		return nil, fmt.Errorf("query country authorities: %w", err)
	}
	return pgx.CollectRows(rows, scanCountryAuthority)
}

func (r *CountryAuthorityRepository) Create(ctx context.Context, country, authority string) (model.CountryAuthority, error) {
	ca := model.CountryAuthority{CountryISO2: country, AuthorityFullCode: authority}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO country_authorities (country_iso2, authority_full_code) VALUES ($1, $2) RETURNING id`,
		country, authority).Scan(&ca.ID)
	if err != nil {
		return model.CountryAuthority{}, fmt.Errorf("insert country authority %s/%s: %w", country, authority, err)
	}
	return ca, nil
}

// Find returns pgx.ErrNoRows when the pair does not exist.
func (r *CountryAuthorityRepository) Find(ctx context.Context, country, authority string) (*model.CountryAuthority, error) {
	ca := &model.CountryAuthority{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, country_iso2, authority_full_code FROM country_authorities
		WHERE country_iso2 = $1 AND authority_full_code = $2`, country, authority).
		Scan(&ca.ID, &ca.CountryISO2, &ca.AuthorityFullCode)
	if err != nil {
		return nil, err
	}
	return ca, nil
}

// Lookup maps keys.CountryAuthority(country, authority) to ids.
func (r *CountryAuthorityRepository) Lookup(ctx context.Context) (map[string]int64, error) {
	list, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(list))
	for _, ca := range list {
		out[keys.CountryAuthority(ca.CountryISO2, ca.AuthorityFullCode)] = ca.ID
	}
	return out, nil
}
