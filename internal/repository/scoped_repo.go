package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/anyulbade/payment-config-service/internal/model"
)

// Bank accounts, credentials and restrictions are stored one row per scope
// and replaced wholesale per provider.

type BankAccountRepository struct {
	pool *pgxpool.Pool
}

func NewBankAccountRepository(pool *pgxpool.Pool) *BankAccountRepository {
	return &BankAccountRepository{pool: pool}
}

func (r *BankAccountRepository) ListByProvider(ctx context.Context, providerCode string) ([]model.BankAccount, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT b.id, b.provider_code, b.country_authority_id, ca.country_iso2, ca.authority_full_code, b.currency_iso3,
			b.name, b.holder_name, b.bank_name, b.iban, b.swift, b.account_number
		FROM bank_accounts b
		LEFT JOIN country_authorities ca ON ca.id = b.country_authority_id
		WHERE b.provider_code = $1
		ORDER BY b.id`, providerCode)
	if err != nil {
		return nil, fmt.Errorf("query bank accounts: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.BankAccount, error) {
		var b model.BankAccount
		err := row.Scan(&b.ID, &b.ProviderCode, &b.CountryAuthorityID, &b.CountryISO2, &b.AuthorityFullCode, &b.CurrencyISO3,
			&b.Name, &b.HolderName, &b.BankName, &b.IBAN, &b.SWIFT, &b.AccountNumber)
		return b, err
	})
}

func (r *BankAccountRepository) Replace(ctx context.Context, providerCode string, accounts []model.BankAccount) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin bank accounts transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM bank_accounts WHERE provider_code = $1`, providerCode); err != nil {
		return fmt.Errorf("delete bank accounts: %w", err)
	}

	batch := &pgx.Batch{}
	for _, b := range accounts {
		batch.Queue(
			`INSERT INTO bank_accounts (provider_code, country_authority_id, currency_iso3, name, holder_name, bank_name, iban, swift, account_number)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			providerCode, b.CountryAuthorityID, b.CurrencyISO3, b.Name, b.HolderName, b.BankName, b.IBAN, b.SWIFT, b.AccountNumber)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert bank accounts: %w", err)
	}

	return tx.Commit(ctx)
}

type CredentialsRepository struct {
	pool *pgxpool.Pool
}

func NewCredentialsRepository(pool *pgxpool.Pool) *CredentialsRepository {
	return &CredentialsRepository{pool: pool}
}

func (r *CredentialsRepository) ListByProvider(ctx context.Context, providerCode string) ([]model.Credential, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT c.id, c.provider_code, c.country_authority_id, ca.country_iso2, ca.authority_full_code, c.currency_iso3, c.data
		FROM credentials c
		LEFT JOIN country_authorities ca ON ca.id = c.country_authority_id
		WHERE c.provider_code = $1
		ORDER BY c.id`, providerCode)
	if err != nil {
		return nil, fmt.Errorf("query credentials: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Credential, error) {
		var c model.Credential
		err := row.Scan(&c.ID, &c.ProviderCode, &c.CountryAuthorityID, &c.CountryISO2, &c.AuthorityFullCode, &c.CurrencyISO3, &c.Data)
		return c, err
	})
}

func (r *CredentialsRepository) Replace(ctx context.Context, providerCode string, creds []model.Credential) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin credentials transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM credentials WHERE provider_code = $1`, providerCode); err != nil {
		return fmt.Errorf("delete credentials: %w", err)
	}

	batch := &pgx.Batch{}
	for _, c := range creds {
		data := c.Data
		if data == nil {
			data = map[string]any{}
		}
		batch.Queue(
			`INSERT INTO credentials (provider_code, country_authority_id, currency_iso3, data) VALUES ($1, $2, $3, $4)`,
			providerCode, c.CountryAuthorityID, c.CurrencyISO3, data)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert credentials: %w", err)
	}

	return tx.Commit(ctx)
}

type RestrictionRepository struct {
	pool *pgxpool.Pool
}

func NewRestrictionRepository(pool *pgxpool.Pool) *RestrictionRepository {
	return &RestrictionRepository{pool: pool}
}

func (r *RestrictionRepository) ListByProvider(ctx context.Context, providerCode string) ([]model.ProviderRestriction, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT p.id, p.provider_code, p.country_authority_id, ca.country_iso2, ca.authority_full_code, p.platform, p.settings
		FROM provider_restrictions p
		LEFT JOIN country_authorities ca ON ca.id = p.country_authority_id
		WHERE p.provider_code = $1
		ORDER BY p.id`, providerCode)
	if err != nil {
		return nil, fmt.Errorf("query restrictions: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.ProviderRestriction, error) {
		var p model.ProviderRestriction
		err := row.Scan(&p.ID, &p.ProviderCode, &p.CountryAuthorityID, &p.CountryISO2, &p.AuthorityFullCode, &p.Platform, &p.Settings)
		return p, err
	})
}

func (r *RestrictionRepository) Replace(ctx context.Context, providerCode string, restrictions []model.ProviderRestriction) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin restrictions transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM provider_restrictions WHERE provider_code = $1`, providerCode); err != nil {
		return fmt.Errorf("delete restrictions: %w", err)
	}

	batch := &pgx.Batch{}
	for _, p := range restrictions {
		settings := p.Settings
		if settings == nil {
			settings = map[string]any{}
		}
		batch.Queue(
			`INSERT INTO provider_restrictions (provider_code, country_authority_id, platform, settings) VALUES ($1, $2, $3, $4)`,
			providerCode, p.CountryAuthorityID, p.Platform, settings)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert restrictions: %w", err)
	}

	return tx.Commit(ctx)
}
