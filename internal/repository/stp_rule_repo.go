package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/anyulbade/payment-config-service/internal/model"
)

type StpRuleRepository struct {
	pool *pgxpool.Pool
}

func NewStpRuleRepository(pool *pgxpool.Pool) *StpRuleRepository {
	return &StpRuleRepository{pool: pool}
}

func (r *StpRuleRepository) Catalog(ctx context.Context) ([]model.StpRule, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, key, description, sort_order FROM stp_rules ORDER BY sort_order, key`)
	if err != nil {
		return nil, fmt.Errorf("query stp catalog: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.StpRule, error) {
		var s model.StpRule
		err := row.Scan(&s.ID, &s.Key, &s.Description, &s.Order)
		return s, err
	})
}

func (r *StpRuleRepository) UpsertCatalog(ctx context.Context, rules []model.StpRule) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin stp catalog transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, rule := range rules {
		batch.Queue(
			`INSERT INTO stp_rules (key, description, sort_order) VALUES ($1, $2, $3)
			ON CONFLICT (key) DO UPDATE SET description = EXCLUDED.description, sort_order = EXCLUDED.sort_order`,
			rule.Key, rule.Description, rule.Order)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("upsert stp catalog: %w", err)
	}

	return tx.Commit(ctx)
}

// ProviderRules returns nil without error when the provider has no overrides.
func (r *StpRuleRepository) ProviderRules(ctx context.Context, providerCode string, caID int64) (*model.ProviderStpRule, error) {
	p := &model.ProviderStpRule{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, provider_code, country_authority_id, rules
		FROM provider_stp_rules WHERE provider_code = $1 AND country_authority_id = $2`,
		providerCode, caID).Scan(&p.ID, &p.ProviderCode, &p.CountryAuthorityID, &p.Rules)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query provider stp rules: %w", err)
	}
	return p, nil
}

func (r *StpRuleRepository) ReplaceProviderRules(ctx context.Context, providerCode string, caID int64, blob []byte) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO provider_stp_rules (provider_code, country_authority_id, rules) VALUES ($1, $2, $3::jsonb)
		ON CONFLICT (provider_code, country_authority_id) DO UPDATE SET rules = EXCLUDED.rules, updated_at = NOW()`,
		providerCode, caID, string(blob))
	if err != nil {
		return fmt.Errorf("replace provider stp rules: %w", err)
	}
	return nil
}
