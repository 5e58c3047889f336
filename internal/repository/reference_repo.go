package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/anyulbade/payment-config-service/internal/model"
)

type referenceTable struct {
	name    string
	codeCol string
}

var referenceTables = map[model.ReferenceKind]referenceTable{
	model.KindCountry:   {"countries", "iso2"},
	model.KindAuthority: {"authorities", "full_code"},
	model.KindCurrency:  {"currencies", "iso3"},
	model.KindMethod:    {"methods", "code"},
	model.KindProvider:  {"providers", "code"},
}

type ReferenceRepository struct {
	pool *pgxpool.Pool
}

func NewReferenceRepository(pool *pgxpool.Pool) *ReferenceRepository {
	return &ReferenceRepository{pool: pool}
}

func tableFor(kind model.ReferenceKind) (referenceTable, error) {
	t, ok := referenceTables[kind]
	if !ok {
		return referenceTable{}, fmt.Errorf("unknown reference kind %q", kind)
	}
	return t, nil
}

func (r *ReferenceRepository) List(ctx context.Context, kind model.ReferenceKind) ([]model.ReferenceItem, error) {
	t, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, fmt.Sprintf(`SELECT %s, name FROM %s ORDER BY %s`, t.codeCol, t.name, t.codeCol))
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", t.name, err)
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.ReferenceItem, error) {
		var item model.ReferenceItem
		err := row.Scan(&item.Code, &item.Name)
		return item, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", t.name, err)
	}
	return items, nil
}

func (r *ReferenceRepository) Upsert(ctx context.Context, kind model.ReferenceKind, item model.ReferenceItem) (model.ReferenceItem, error) {
	t, err := tableFor(kind)
	if err != nil {
		return model.ReferenceItem{}, err
	}

	var out model.ReferenceItem
	err = r.pool.QueryRow(ctx, fmt.Sprintf(
		`INSERT INTO %[1]s (%[2]s, name) VALUES ($1, $2)
		ON CONFLICT (%[2]s) DO UPDATE SET name = EXCLUDED.name, updated_at = NOW()
		RETURNING %[2]s, name`, t.name, t.codeCol),
		item.Code, item.Name).Scan(&out.Code, &out.Name)
	if err != nil {
		return model.ReferenceItem{}, fmt.Errorf("upsert %s %s: %w", t.name, item.Code, err)
	}
	return out, nil
}
