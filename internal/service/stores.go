package service

import (
	"context"

	"github.com/anyulbade/payment-config-service/internal/model"
)

// The repository package implements these with pgx; tests use in-memory fakes.
// Lookups of a single row return pgx.ErrNoRows when it is missing.

type ReferenceStore interface {
	List(ctx context.Context, kind model.ReferenceKind) ([]model.ReferenceItem, error)
	Upsert(ctx context.Context, kind model.ReferenceKind, item model.ReferenceItem) (model.ReferenceItem, error)
}

type CountryAuthorityStore interface {
	List(ctx context.Context) ([]model.CountryAuthority, error)
	Create(ctx context.Context, country, authority string) (model.CountryAuthority, error)
	Find(ctx context.Context, country, authority string) (*model.CountryAuthority, error)
	Lookup(ctx context.Context) (map[string]int64, error)
}

type ProviderMethodStore interface {
	ListByCountryAuthority(ctx context.Context, caID int64) ([]model.ProviderMethod, error)
	ListAll(ctx context.Context) ([]model.ProviderMethod, error)
	Find(ctx context.Context, caID int64, providerCode, methodCode string) (*model.ProviderMethod, error)
	Bind(ctx context.Context, caID int64, providerCode, methodCode string, enabled bool, depositsOrder int) (*model.ProviderMethod, error)
	Unbind(ctx context.Context, caID int64, providerCode, methodCode string) (bool, error)
	UpdateWithdrawalOrders(ctx context.Context, caID int64, orders []model.WithdrawalOrder) error
	ListSettings(ctx context.Context, providerCode string) ([]model.ProviderSettingRow, error)
	ReplaceSettings(ctx context.Context, providerCode string, rows []model.ProviderSettingRow, caIDs map[string]int64) error
}

type FieldStore interface {
	List(ctx context.Context, providerMethodID int64) ([]model.Field, []model.FieldOption, error)
	Replace(ctx context.Context, providerMethodID int64, fields []model.Field, options [][]model.FieldOption) error
}

type LimitStore interface {
	List(ctx context.Context, providerMethodID int64) ([]model.TransactionLimit, error)
	Replace(ctx context.Context, providerMethodID int64, limits []model.TransactionLimit) error
}

type BankAccountStore interface {
	ListByProvider(ctx context.Context, providerCode string) ([]model.BankAccount, error)
	Replace(ctx context.Context, providerCode string, accounts []model.BankAccount) error
}

type CredentialsStore interface {
	ListByProvider(ctx context.Context, providerCode string) ([]model.Credential, error)
	Replace(ctx context.Context, providerCode string, creds []model.Credential) error
}

type RestrictionStore interface {
	ListByProvider(ctx context.Context, providerCode string) ([]model.ProviderRestriction, error)
	Replace(ctx context.Context, providerCode string, restrictions []model.ProviderRestriction) error
}

type StpRuleStore interface {
	Catalog(ctx context.Context) ([]model.StpRule, error)
	UpsertCatalog(ctx context.Context, rules []model.StpRule) error
	ProviderRules(ctx context.Context, providerCode string, caID int64) (*model.ProviderStpRule, error)
	ReplaceProviderRules(ctx context.Context, providerCode string, caID int64, blob []byte) error
}
