package model

import (
	"github.com/shopspring/decimal"
)

const (
	TransactionTypeDeposit    = "deposit"
	TransactionTypeWithdrawal = "withdrawal"
	TransactionTypeRefund     = "refund"
	TransactionTypePayout     = "payout"
)

// ReferenceKind names one of the code/name reference tables.
type ReferenceKind string

const (
	KindCountry   ReferenceKind = "countries"
	KindAuthority ReferenceKind = "authorities"
	KindCurrency  ReferenceKind = "currencies"
	KindMethod    ReferenceKind = "methods"
	KindProvider  ReferenceKind = "providers"
)

type ReferenceItem struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type CountryAuthority struct {
	ID                int64  `json:"id"`
	CountryISO2       string `json:"country_iso2"`
	AuthorityFullCode string `json:"authority_full_code"`
}

type ProviderMethod struct {
	ID                 int64  `json:"id"`
	CountryAuthorityID int64  `json:"country_authority_id"`
	CountryISO2        string `json:"country_iso2"`
	AuthorityFullCode  string `json:"authority_full_code"`
	ProviderCode       string `json:"provider_code"`
	MethodCode         string `json:"method_code"`
	IsEnabled          bool   `json:"is_enabled"`
	DepositsOrder      int    `json:"deposits_order"`
	RefundsOrder       int    `json:"refunds_order"`
	PayoutsOrder       int    `json:"payouts_order"`
}

type WithdrawalOrder struct {
	ProviderCode string `json:"provider_code"`
	MethodCode   string `json:"method_code"`
	RefundsOrder int    `json:"refunds_order"`
	PayoutsOrder int    `json:"payouts_order"`
}

// ProviderSettingRow is one (country-authority, method, currency) row of a
// provider's settings. CurrencyISO3 is nil for a method without currencies.
type ProviderSettingRow struct {
	CountryISO2       string  `json:"country_iso2"`
	AuthorityFullCode string  `json:"authority_full_code"`
	MethodCode        string  `json:"method_code"`
	IsEnabled         bool    `json:"is_enabled"`
	CurrencyISO3      *string `json:"currency_iso3,omitempty"`
	IsDefault         bool    `json:"is_default"`
}

// Field mirrors the fields table. Value is the legacy column that holds the
// default value of deposit fields and the name of every other field.
type Field struct {
	ID               int64   `json:"id"`
	ProviderMethodID int64   `json:"provider_method_id"`
	TransactionType  string  `json:"transaction_type"`
	Key              string  `json:"key"`
	FieldType        string  `json:"field_type"`
	Value            *string `json:"value,omitempty"`
	Pattern          string  `json:"pattern"`
	IsMandatory      bool    `json:"is_mandatory"`
	IsEnabled        bool    `json:"is_enabled"`
}

type FieldOption struct {
	ID        int64  `json:"id"`
	FieldID   int64  `json:"field_id"`
	Key       string `json:"key"`
	Value     string `json:"value"`
	IsEnabled bool   `json:"is_enabled"`
}

type TransactionLimit struct {
	ID               int64           `json:"id"`
	ProviderMethodID int64           `json:"provider_method_id"`
	CurrencyISO3     string          `json:"currency_iso3"`
	TransactionType  string          `json:"transaction_type"`
	MinAmount        decimal.Decimal `json:"min_amount"`
	MaxAmount        decimal.Decimal `json:"max_amount"`
}

type Credential struct {
	ID                 int64          `json:"id"`
	ProviderCode       string         `json:"provider_code"`
	CountryAuthorityID *int64         `json:"country_authority_id,omitempty"`
	CountryISO2        *string        `json:"country_iso2,omitempty"`
	AuthorityFullCode  *string        `json:"authority_full_code,omitempty"`
	CurrencyISO3       *string        `json:"currency_iso3,omitempty"`
	Data               map[string]any `json:"data"`
}

type BankAccount struct {
	ID                 int64   `json:"id"`
	ProviderCode       string  `json:"provider_code"`
	CountryAuthorityID *int64  `json:"country_authority_id,omitempty"`
	CountryISO2        *string `json:"country_iso2,omitempty"`
	AuthorityFullCode  *string `json:"authority_full_code,omitempty"`
	CurrencyISO3       *string `json:"currency_iso3,omitempty"`
	Name               string  `json:"name"`
	HolderName         string  `json:"holder_name"`
	BankName           string  `json:"bank_name"`
	IBAN               string  `json:"iban"`
	SWIFT              string  `json:"swift"`
	AccountNumber      string  `json:"account_number"`
}

type ProviderRestriction struct {
	ID                 int64          `json:"id"`
	ProviderCode       string         `json:"provider_code"`
	CountryAuthorityID *int64         `json:"country_authority_id,omitempty"`
	CountryISO2        *string        `json:"country_iso2,omitempty"`
	AuthorityFullCode  *string        `json:"authority_full_code,omitempty"`
	Platform           string         `json:"platform"`
	Settings           map[string]any `json:"settings"`
}

type StpRule struct {
	ID          int64  `json:"id"`
	Key         string `json:"key"`
	Description string `json:"description"`
	Order       int    `json:"order"`
}

// ProviderStpRule holds a provider's raw rule overrides for one
// country-authority. Rules is the JSON blob as stored; nil means none.
type ProviderStpRule struct {
	ID                 int64  `json:"id"`
	ProviderCode       string `json:"provider_code"`
	CountryAuthorityID int64  `json:"country_authority_id"`
	Rules              []byte `json:"rules,omitempty"`
}
