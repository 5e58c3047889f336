package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/anyulbade/payment-config-service/internal/model"
)

type LimitRepository struct {
	pool *pgxpool.Pool
}

func NewLimitRepository(pool *pgxpool.Pool) *LimitRepository {
	return &LimitRepository{pool: pool}
}

func (r *LimitRepository) List(ctx context.Context, providerMethodID int64) ([]model.TransactionLimit, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, country_authority_method_id, currency_iso3, transaction_type, min_amount::text, max_amount::text
		FROM transaction_limits WHERE country_authority_method_id = $1
		ORDER BY currency_iso3, transaction_type`, providerMethodID)
	if err != nil {
		return nil, fmt.Errorf("query limits: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.TransactionLimit, error) {
		var l model.TransactionLimit
		var minAmount, maxAmount string
		if err := row.Scan(&l.ID, &l.ProviderMethodID, &l.CurrencyISO3, &l.TransactionType, &minAmount, &maxAmount); err != nil {
			return l, err
		}
		var err error
		if l.MinAmount, err = decimal.NewFromString(minAmount); err != nil {
			return l, fmt.Errorf("parse min_amount: %w", err)
		}
		if l.MaxAmount, err = decimal.NewFromString(maxAmount); err != nil {
			return l, fmt.Errorf("parse max_amount: %w", err)
		}
		return l, nil
	})
}

func (r *LimitRepository) Replace(ctx context.Context, providerMethodID int64, limits []model.TransactionLimit) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin limits transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM transaction_limits WHERE country_authority_method_id = $1`, providerMethodID); err != nil {
		return fmt.Errorf("delete limits: %w", err)
	}

	batch := &pgx.Batch{}
	for _, l := range limits {
		batch.Queue(
			`INSERT INTO transaction_limits (country_authority_method_id, currency_iso3, transaction_type, min_amount, max_amount)
			VALUES ($1, $2, $3, $4::numeric, $5::numeric)`,
			providerMethodID, l.CurrencyISO3, l.TransactionType, l.MinAmount.String(), l.MaxAmount.String())
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert limits: %w", err)
	}

	return tx.Commit(ctx)
}
