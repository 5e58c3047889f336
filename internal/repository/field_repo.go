package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/anyulbade/payment-config-service/internal/model"
)

type FieldRepository struct {
	pool *pgxpool.Pool
}

func NewFieldRepository(pool *pgxpool.Pool) *FieldRepository {
	return &FieldRepository{pool: pool}
}

func (r *FieldRepository) List(ctx context.Context, providerMethodID int64) ([]model.Field, []model.FieldOption, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, country_authority_method_id, transaction_type, key, field_type, value, pattern, is_mandatory, is_enabled
		FROM fields WHERE country_authority_method_id = $1
		ORDER BY transaction_type, key`, providerMethodID)
	if err != nil {
		return nil, nil, fmt.Errorf("query fields: %w", err)
	}
	fields, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Field, error) {
		var f model.Field
		err := row.Scan(&f.ID, &f.ProviderMethodID, &f.TransactionType, &f.Key, &f.FieldType, &f.Value, &f.Pattern, &f.IsMandatory, &f.IsEnabled)
		return f, err
	})
	if err != nil {
		return nil, nil, fmt.Errorf("scan fields: %w", err)
	}

	rows, err = r.pool.Query(ctx,
		`SELECT fo.id, fo.field_id, fo.key, fo.value, fo.is_enabled
		FROM field_options fo
		JOIN fields f ON f.id = fo.field_id
		WHERE f.country_authority_method_id = $1
		ORDER BY fo.field_id, fo.key`, providerMethodID)
	if err != nil {
		return nil, nil, fmt.Errorf("query field options: %w", err)
	}
	options, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.FieldOption, error) {
		var o model.FieldOption
		err := row.Scan(&o.ID, &o.FieldID, &o.Key, &o.Value, &o.IsEnabled)
		return o, err
	})
	if err != nil {
		return nil, nil, fmt.Errorf("scan field options: %w", err)
	}
	return fields, options, nil
}

// Replace deletes every field of the binding and inserts fields with their
// options; options[i] belongs to fields[i].
func (r *FieldRepository) Replace(ctx context.Context, providerMethodID int64, fields []model.Field, options [][]model.FieldOption) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin fields transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM fields WHERE country_authority_method_id = $1`, providerMethodID); err != nil {
		return fmt.Errorf("delete fields: %w", err)
	}

	for i, f := range fields {
		var id int64
		err := tx.QueryRow(ctx,
			`INSERT INTO fields (country_authority_method_id, transaction_type, key, field_type, value, pattern, is_mandatory, is_enabled)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
			providerMethodID, f.TransactionType, f.Key, f.FieldType, f.Value, f.Pattern, f.IsMandatory, f.IsEnabled).Scan(&id)
		if err != nil {
			return fmt.Errorf("insert field %s/%s: %w", f.TransactionType, f.Key, err)
		}

		if i >= len(options) || len(options[i]) == 0 {
			continue
		}
		batch := &pgx.Batch{}
		for _, o := range options[i] {
			batch.Queue(`INSERT INTO field_options (field_id, key, value, is_enabled) VALUES ($1, $2, $3, $4)`,
				id, o.Key, o.Value, o.IsEnabled)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert options for field %s: %w", f.Key, err)
		}
	}

	return tx.Commit(ctx)
}
