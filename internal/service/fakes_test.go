package service

import (
	"context"
	"sort"

	"github.com/jackc/pgx/v5"

	"github.com/anyulbade/payment-config-service/internal/keys"
	"github.com/anyulbade/payment-config-service/internal/model"
)

func ptr(s string) *string { return &s }

type fakeReferences struct {
	items map[model.ReferenceKind][]model.ReferenceItem
	lists int
}

func (f *fakeReferences) List(_ context.Context, kind model.ReferenceKind) ([]model.ReferenceItem, error) {
	f.lists++
	return f.items[kind], nil
}

func (f *fakeReferences) Upsert(_ context.Context, kind model.ReferenceKind, item model.ReferenceItem) (model.ReferenceItem, error) {
	if f.items == nil {
		f.items = make(map[model.ReferenceKind][]model.ReferenceItem)
	}
	f.items[kind] = append(f.items[kind], item)
	return item, nil
}

type fakeCountryAuthorities struct {
	items []model.CountryAuthority
}

func newFakeCountryAuthorities(pairs ...[2]string) *fakeCountryAuthorities {
	f := &fakeCountryAuthorities{}
	for _, p := range pairs {
		_, _ = f.Create(context.Background(), p[0], p[1])
	}
	return f
}

func (f *fakeCountryAuthorities) List(context.Context) ([]model.CountryAuthority, error) {
	return f.items, nil
}

func (f *fakeCountryAuthorities) Create(_ context.Context, country, authority string) (model.CountryAuthority, error) {
	ca := model.CountryAuthority{ID: int64(len(f.items) + 1), CountryISO2: country, AuthorityFullCode: authority}
	f.items = append(f.items, ca)
	return ca, nil
}

func (f *fakeCountryAuthorities) Find(_ context.Context, country, authority string) (*model.CountryAuthority, error) {
	for _, ca := range f.items {
		if ca.CountryISO2 == country && ca.AuthorityFullCode == authority {
			c := ca
			return &c, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeCountryAuthorities) Lookup(context.Context) (map[string]int64, error) {
	out := make(map[string]int64, len(f.items))
	for _, ca := range f.items {
		out[keys.CountryAuthority(ca.CountryISO2, ca.AuthorityFullCode)] = ca.ID
	}
	return out, nil
}

type fakeProviderMethods struct {
	items    []model.ProviderMethod
	settings []model.ProviderSettingRow
	updates  int
}

func (f *fakeProviderMethods) ListByCountryAuthority(_ context.Context, caID int64) ([]model.ProviderMethod, error) {
	var out []model.ProviderMethod
	for _, m := range f.items {
		if m.CountryAuthorityID == caID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeProviderMethods) ListAll(context.Context) ([]model.ProviderMethod, error) {
	return f.items, nil
}

func (f *fakeProviderMethods) Find(_ context.Context, caID int64, providerCode, methodCode string) (*model.ProviderMethod, error) {
	for _, m := range f.items {
		if m.CountryAuthorityID == caID && m.ProviderCode == providerCode && m.MethodCode == methodCode {
			c := m
			return &c, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeProviderMethods) Bind(_ context.Context, caID int64, providerCode, methodCode string, enabled bool, depositsOrder int) (*model.ProviderMethod, error) {
	m := model.ProviderMethod{
		ID:                 int64(len(f.items) + 1),
		CountryAuthorityID: caID,
		ProviderCode:       providerCode,
		MethodCode:         methodCode,
		IsEnabled:          enabled,
		DepositsOrder:      depositsOrder,
		RefundsOrder:       1,
		PayoutsOrder:       1,
	}
	f.items = append(f.items, m)
	return &m, nil
}

func (f *fakeProviderMethods) Unbind(_ context.Context, caID int64, providerCode, methodCode string) (bool, error) {
	for i, m := range f.items {
		if m.CountryAuthorityID == caID && m.ProviderCode == providerCode && m.MethodCode == methodCode {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeProviderMethods) UpdateWithdrawalOrders(_ context.Context, caID int64, orders []model.WithdrawalOrder) error {
	f.updates++
	for _, o := range orders {
		for i := range f.items {
			m := &f.items[i]
			if m.CountryAuthorityID == caID && m.ProviderCode == o.ProviderCode && m.MethodCode == o.MethodCode {
				m.RefundsOrder = o.RefundsOrder
				m.PayoutsOrder = o.PayoutsOrder
			}
		}
	}
	return nil
}

func (f *fakeProviderMethods) ListSettings(context.Context, string) ([]model.ProviderSettingRow, error) {
	return f.settings, nil
}

func (f *fakeProviderMethods) ReplaceSettings(_ context.Context, _ string, rows []model.ProviderSettingRow, _ map[string]int64) error {
	f.settings = rows
	return nil
}

type fakeFields struct {
	fields  []model.Field
	options []model.FieldOption
}

func (f *fakeFields) List(context.Context, int64) ([]model.Field, []model.FieldOption, error) {
	return f.fields, f.options, nil
}

func (f *fakeFields) Replace(_ context.Context, _ int64, fields []model.Field, options [][]model.FieldOption) error {
	f.fields, f.options = nil, nil
	for i, field := range fields {
		field.ID = int64(i + 1)
		f.fields = append(f.fields, field)
		if i < len(options) {
			for _, o := range options[i] {
				o.FieldID = field.ID
				f.options = append(f.options, o)
			}
		}
	}
	return nil
}

type fakeLimits struct {
	limits []model.TransactionLimit
}

func (f *fakeLimits) List(context.Context, int64) ([]model.TransactionLimit, error) {
	return f.limits, nil
}

func (f *fakeLimits) Replace(_ context.Context, _ int64, limits []model.TransactionLimit) error {
	f.limits = limits
	return nil
}

type fakeBankAccounts struct {
	rows []model.BankAccount
}

func (f *fakeBankAccounts) ListByProvider(context.Context, string) ([]model.BankAccount, error) {
	return f.rows, nil
}

func (f *fakeBankAccounts) Replace(_ context.Context, _ string, accounts []model.BankAccount) error {
	f.rows = accounts
	return nil
}

type fakeCredentials struct {
	rows     []model.Credential
	replaced bool
}

func (f *fakeCredentials) ListByProvider(context.Context, string) ([]model.Credential, error) {
	return f.rows, nil
}

func (f *fakeCredentials) Replace(_ context.Context, _ string, creds []model.Credential) error {
	f.rows = creds
	f.replaced = true
	return nil
}

type fakeRestrictions struct {
	rows []model.ProviderRestriction
}

func (f *fakeRestrictions) ListByProvider(context.Context, string) ([]model.ProviderRestriction, error) {
	return f.rows, nil
}

func (f *fakeRestrictions) Replace(_ context.Context, _ string, restrictions []model.ProviderRestriction) error {
	f.rows = restrictions
	return nil
}

type fakeStpRules struct {
	catalog []model.StpRule
	blobs   map[int64][]byte
}

func (f *fakeStpRules) Catalog(context.Context) ([]model.StpRule, error) {
	out := append([]model.StpRule(nil), f.catalog...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (f *fakeStpRules) UpsertCatalog(_ context.Context, rules []model.StpRule) error {
	for _, r := range rules {
		replaced := false
		for i := range f.catalog {
			if f.catalog[i].Key == r.Key {
				f.catalog[i].Description, f.catalog[i].Order = r.Description, r.Order
				replaced = true
			}
		}
		if !replaced {
			r.ID = int64(len(f.catalog) + 1)
			f.catalog = append(f.catalog, r)
		}
	}
	return nil
}

func (f *fakeStpRules) ProviderRules(_ context.Context, providerCode string, caID int64) (*model.ProviderStpRule, error) {
	blob, ok := f.blobs[caID]
	if !ok {
		return nil, nil
	}
	return &model.ProviderStpRule{ProviderCode: providerCode, CountryAuthorityID: caID, Rules: blob}, nil
}

func (f *fakeStpRules) ReplaceProviderRules(_ context.Context, _ string, caID int64, blob []byte) error {
	if f.blobs == nil {
		f.blobs = make(map[int64][]byte)
	}
	f.blobs[caID] = blob
	return nil
}
