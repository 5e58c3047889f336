package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/anyulbade/payment-config-service/internal/keys"
	"github.com/anyulbade/payment-config-service/internal/model"
)

const providerMethodColumns = `cam.id, cam.country_authority_id, ca.country_iso2, ca.authority_full_code,
	cam.provider_code, cam.method_code, cam.is_enabled, cam.deposits_order, cam.refunds_order, cam.payouts_order`

type ProviderMethodRepository struct {
	pool *pgxpool.Pool
}

func NewProviderMethodRepository(pool *pgxpool.Pool) *ProviderMethodRepository {
	return &ProviderMethodRepository{pool: pool}
}

func scanProviderMethod(row pgx.CollectableRow) (model.ProviderMethod, error) {
	var pm model.ProviderMethod
	err := row.Scan(&pm.ID, &pm.CountryAuthorityID, &pm.CountryISO2, &pm.AuthorityFullCode,
		&pm.ProviderCode, &pm.MethodCode, &pm.IsEnabled, &pm.DepositsOrder, &pm.RefundsOrder, &pm.PayoutsOrder)
	return pm, err
}

func (r *ProviderMethodRepository) ListByCountryAuthority(ctx context.Context, caID int64) ([]model.ProviderMethod, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+providerMethodColumns+`
		FROM country_authority_methods cam
		JOIN country_authorities ca ON ca.id = cam.country_authority_id
		WHERE cam.country_authority_id = $1
		ORDER BY cam.deposits_order DESC, cam.provider_code, cam.method_code`, caID)
	if err != nil {
		return nil, fmt.Errorf("query provider methods: %w", err)
	}
	return pgx.CollectRows(rows, scanProviderMethod)
}

func (r *ProviderMethodRepository) ListAll(ctx context.Context) ([]model.ProviderMethod, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+providerMethodColumns+`
		FROM country_authority_methods cam
		JOIN country_authorities ca ON ca.id = cam.country_authority_id
		ORDER BY ca.country_iso2, ca.authority_full_code, cam.provider_code, cam.method_code`)
	if err != nil {
		return nil, fmt.Errorf("query provider methods: %w", err)
	}
	return pgx.CollectRows(rows, scanProviderMethod)
}

// Find returns pgx.ErrNoRows when the method is not bound.
func (r *ProviderMethodRepository) Find(ctx context.Context, caID int64, providerCode, methodCode string) (*model.ProviderMethod, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+providerMethodColumns+`
		FROM country_authority_methods cam
		JOIN country_authorities ca ON ca.id = cam.country_authority_id
		WHERE cam.country_authority_id = $1 AND cam.provider_code = $2 AND cam.method_code = $3`,
		caID, providerCode, methodCode)
	if err != nil {
		return nil, fmt.Errorf("query provider method: %w", err)
	}
	pm, err := pgx.CollectExactlyOneRow(rows, scanProviderMethod)
	if err != nil {
		return nil, err
	}
	return &pm, nil
}

func (r *ProviderMethodRepository) Bind(ctx context.Context, caID int64, providerCode, methodCode string, enabled bool, depositsOrder int) (*model.ProviderMethod, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO country_authority_methods (country_authority_id, provider_code, method_code, is_enabled, deposits_order)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		caID, providerCode, methodCode, enabled, depositsOrder).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("bind provider method %s:%s: %w", providerCode, methodCode, err)
	}
	return r.Find(ctx, caID, providerCode, methodCode)
}

func (r *ProviderMethodRepository) Unbind(ctx context.Context, caID int64, providerCode, methodCode string) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM country_authority_methods
		WHERE country_authority_id = $1 AND provider_code = $2 AND method_code = $3`,
		caID, providerCode, methodCode)
	if err != nil {
		return false, fmt.Errorf("unbind provider method %s:%s: %w", providerCode, methodCode, err)
	}
	return tag.RowsAffected() > 0, nil
}

// UpdateWithdrawalOrders writes every rank in one transaction.
func (r *ProviderMethodRepository) UpdateWithdrawalOrders(ctx context.Context, caID int64, orders []model.WithdrawalOrder) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin withdrawal order transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, o := range orders {
		batch.Queue(
			`UPDATE country_authority_methods
			SET refunds_order = $1, payouts_order = $2, updated_at = NOW()
			WHERE country_authority_id = $3 AND provider_code = $4 AND method_code = $5`,
			o.RefundsOrder, o.PayoutsOrder, caID, o.ProviderCode, o.MethodCode)
	}

	br := tx.SendBatch(ctx, batch)
	for _, o := range orders {
		tag, err := br.Exec()
		if err != nil {
			br.Close()
			return fmt.Errorf("update withdrawal order %s:%s: %w", o.ProviderCode, o.MethodCode, err)
		}
		if tag.RowsAffected() == 0 {
			br.Close()
			return fmt.Errorf("update withdrawal order %s:%s: %w", o.ProviderCode, o.MethodCode, pgx.ErrNoRows)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("close batch: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *ProviderMethodRepository) ListSettings(ctx context.Context, providerCode string) ([]model.ProviderSettingRow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT ca.country_iso2, ca.authority_full_code, cam.method_code, cam.is_enabled,
			mc.currency_iso3, COALESCE(mc.is_default, FALSE)
		FROM country_authority_methods cam
		JOIN country_authorities ca ON ca.id = cam.country_authority_id
		LEFT JOIN method_currencies mc ON mc.country_authority_method_id = cam.id
		WHERE cam.provider_code = $1
		ORDER BY ca.country_iso2, ca.authority_full_code, cam.method_code, mc.currency_iso3`, providerCode)
	if err != nil {
		return nil, fmt.Errorf("query provider settings: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.ProviderSettingRow, error) {
		var s model.ProviderSettingRow
		err := row.Scan(&s.CountryISO2, &s.AuthorityFullCode, &s.MethodCode, &s.IsEnabled, &s.CurrencyISO3, &s.IsDefault)
		return s, err
	})
}

// ReplaceSettings upserts the listed bindings and replaces their currencies.
// caIDs must resolve every country-authority named in rows.
func (r *ProviderMethodRepository) ReplaceSettings(ctx context.Context, providerCode string, rows []model.ProviderSettingRow, caIDs map[string]int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin settings transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	camIDs := make(map[string]int64)
	for _, row := range rows {
		caKey := keys.CountryAuthority(row.CountryISO2, row.AuthorityFullCode)
		caID, ok := caIDs[caKey]
		if !ok {
			return fmt.Errorf("replace settings %s: %w", caKey, pgx.ErrNoRows)
		}

		bindingKey := caKey + ":" + row.MethodCode
		camID, seen := camIDs[bindingKey]
		if !seen {
			err := tx.QueryRow(ctx,
				`INSERT INTO country_authority_methods (country_authority_id, provider_code, method_code, is_enabled)
				VALUES ($1, $2, $3, $4)
				ON CONFLICT (country_authority_id, provider_code, method_code)
				DO UPDATE SET is_enabled = EXCLUDED.is_enabled, updated_at = NOW()
				RETURNING id`,
				caID, providerCode, row.MethodCode, row.IsEnabled).Scan(&camID)
			if err != nil {
				return fmt.Errorf("upsert binding %s: %w", bindingKey, err)
			}
			if _, err := tx.Exec(ctx, `DELETE FROM method_currencies WHERE country_authority_method_id = $1`, camID); err != nil {
				return fmt.Errorf("clear currencies %s: %w", bindingKey, err)
			}
			camIDs[bindingKey] = camID
		}

		if row.CurrencyISO3 == nil {
			continue
		}
		_, err := tx.Exec(ctx,
			`INSERT INTO method_currencies (country_authority_method_id, currency_iso3, is_default) VALUES ($1, $2, $3)`,
			camID, *row.CurrencyISO3, row.IsDefault)
		if err != nil {
			return fmt.Errorf("insert currency %s for %s: %w", *row.CurrencyISO3, bindingKey, err)
		}
	}

	return tx.Commit(ctx)
}
