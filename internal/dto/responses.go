package dto

import "github.com/shopspring/decimal"

// ScopeParameters identifies where a setting applies. A nil field means all.
type ScopeParameters struct {
	Country   *string `json:"country,omitempty"`
	Authority *string `json:"authority,omitempty"`
	Currency  *string `json:"currency,omitempty"`
}

type BankAccount struct {
	Name          string `json:"name" binding:"required"`
	HolderName    string `json:"holder_name"`
	BankName      string `json:"bank_name"`
	IBAN          string `json:"iban"`
	SWIFT         string `json:"swift"`
	AccountNumber string `json:"account_number"`
}

type BankAccountGroup struct {
	Parameters   []ScopeParameters `json:"parameters"`
	BankAccounts []BankAccount     `json:"bank_accounts" binding:"required,min=1,dive"`
}

type CredentialsGroup struct {
	Parameters  []ScopeParameters `json:"parameters"`
	Credentials map[string]any    `json:"credentials" binding:"required"`
}

type RestrictionGroup struct {
	Platform             string                `json:"platform" binding:"required"`
	Settings             map[string]any        `json:"settings"`
	CountriesAuthorities []CountryAuthorityRef `json:"countries_authorities" binding:"dive"`
}

type CountryAuthority struct {
	ID        int64  `json:"id"`
	Country   string `json:"country"`
	Authority string `json:"authority"`
}

type ProviderMethod struct {
	ProviderCode  string `json:"provider_code"`
	MethodCode    string `json:"method_code"`
	IsEnabled     bool   `json:"is_enabled"`
	DepositsOrder int    `json:"deposits_order"`
	RefundsOrder  int    `json:"refunds_order"`
	PayoutsOrder  int    `json:"payouts_order"`
}

type WithdrawalOrderItem struct {
	ProviderCode string `json:"provider_code"`
	MethodCode   string `json:"method_code"`
	Order        int    `json:"order"`
}

type WithdrawalsOrderResponse struct {
	Refunds []WithdrawalOrderItem `json:"refunds"`
	Payouts []WithdrawalOrderItem `json:"payouts"`
}

type FieldOption struct {
	Key       string `json:"key" binding:"required"`
	Value     string `json:"value"`
	IsEnabled bool   `json:"is_enabled"`
}

// FieldWithOptions carries DefaultValue for deposit fields and Name for every
// other transaction type, never both.
type FieldWithOptions struct {
	Key             string        `json:"key" binding:"required"`
	TransactionType string        `json:"transaction_type" binding:"required,oneof=deposit withdrawal refund payout"`
	FieldType       string        `json:"field_type" binding:"required"`
	Name            *string       `json:"name,omitempty"`
	DefaultValue    *string       `json:"default_value,omitempty"`
	Pattern         string        `json:"pattern"`
	IsMandatory     bool          `json:"is_mandatory"`
	IsEnabled       bool          `json:"is_enabled"`
	Options         []FieldOption `json:"options" binding:"dive"`
}

type FieldsByTransactionType struct {
	Deposit    []FieldWithOptions `json:"deposit"`
	Withdrawal []FieldWithOptions `json:"withdrawal"`
}

type LimitResponse struct {
	Currency        string          `json:"currency"`
	TransactionType string          `json:"transaction_type"`
	MinAmount       decimal.Decimal `json:"min_amount"`
	MaxAmount       decimal.Decimal `json:"max_amount"`
}

type StpProviderRule struct {
	Key       string  `json:"key" binding:"required"`
	IsEnabled bool    `json:"is_enabled"`
	Value     *string `json:"value,omitempty"`
	Type      *string `json:"type,omitempty"`
}

type StpCatalogEntry struct {
	ID          int64  `json:"id"`
	Key         string `json:"key" binding:"required"`
	Description string `json:"description"`
	Order       int    `json:"order" binding:"gte=0"`
}

// StpRuleInterop is a provider rule resolved against the catalog. AllowType
// is 1 when the provider supplied a value and null otherwise.
type StpRuleInterop struct {
	ID          int64   `json:"id"`
	Key         string  `json:"key"`
	Description string  `json:"description"`
	Order       int     `json:"order"`
	IsEnabled   bool    `json:"is_enabled"`
	Value       *string `json:"value"`
	Type        *string `json:"type,omitempty"`
	AllowType   *int    `json:"allow_type"`
}

type ProviderMethodSettings struct {
	MethodCode string   `json:"method_code" binding:"required"`
	IsEnabled  bool     `json:"is_enabled"`
	Currencies []string `json:"currencies" binding:"dive,iso4217"`
}

type DefaultCurrencyGroup struct {
	Currency    string   `json:"currency" binding:"required,iso4217"`
	MethodCodes []string `json:"method_codes" binding:"required,min=1"`
}

type ProviderCountryAuthoritySettings struct {
	Country           string                   `json:"country" binding:"required,iso3166_1_alpha2"`
	Authority         string                   `json:"authority" binding:"required"`
	Methods           []ProviderMethodSettings `json:"methods" binding:"dive"`
	DefaultCurrencies []DefaultCurrencyGroup   `json:"default_currencies,omitempty" binding:"dive"`
}

type ErrorResponse struct {
	Error   string         `json:"error"`
	Code    string         `json:"code,omitempty"`
	Details string         `json:"details,omitempty"`
	Meta    map[string]any `json:"meta,omitempty"`
}

type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}
