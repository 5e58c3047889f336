package dto

import "github.com/shopspring/decimal"

type ReferenceItemRequest struct {
	Code string `json:"code" binding:"required,refcode"`
	Name string `json:"name" binding:"required,max=255"`
}

type CountryAuthorityRef struct {
	Country   string `json:"country" binding:"required,iso3166_1_alpha2"`
	Authority string `json:"authority" binding:"required"`
}

type BindProviderMethodRequest struct {
	ProviderCode  string `json:"provider_code" binding:"required"`
	MethodCode    string `json:"method_code" binding:"required"`
	IsEnabled     *bool  `json:"is_enabled"`
	DepositsOrder int    `json:"deposits_order" binding:"gte=0"`
}

type ProviderMethodRef struct {
	ProviderCode string `json:"provider_code" binding:"required"`
	MethodCode   string `json:"method_code" binding:"required"`
}

type WithdrawalsOrderRequest struct {
	Refunds []ProviderMethodRef `json:"refunds" binding:"dive"`
	Payouts []ProviderMethodRef `json:"payouts" binding:"dive"`
}

type ReplaceFieldsRequest struct {
	Fields []FieldWithOptions `json:"fields" binding:"dive"`
}

type ReplaceLimitsRequest struct {
	Limits []TransactionLimit `json:"limits" binding:"dive"`
}

type TransactionLimit struct {
	Currency        string          `json:"currency" binding:"required,iso4217"`
	TransactionType string          `json:"transaction_type" binding:"required,oneof=deposit withdrawal refund payout"`
	MinAmount       decimal.Decimal `json:"min_amount"`
	MaxAmount       decimal.Decimal `json:"max_amount"`
}

type ReplaceBankAccountsRequest struct {
	Groups []BankAccountGroup `json:"groups" binding:"dive"`
}

type ReplaceCredentialsRequest struct {
	Groups []CredentialsGroup `json:"groups" binding:"dive"`
}

type ReplaceRestrictionsRequest struct {
	Restrictions []RestrictionGroup `json:"restrictions" binding:"dive"`
}

type ReplaceStpRulesRequest struct {
	Rules []StpProviderRule `json:"rules" binding:"dive"`
}

type UpsertStpCatalogRequest struct {
	Rules []StpCatalogEntry `json:"rules" binding:"required,min=1,dive"`
}

type ReplaceProviderSettingsRequest struct {
	Settings []ProviderCountryAuthoritySettings `json:"settings" binding:"dive"`
}

type EffectiveCredentialsQuery struct {
	Country   string `form:"country" binding:"required,iso3166_1_alpha2"`
	Authority string `form:"authority" binding:"required"`
	Currency  string `form:"currency" binding:"omitempty,iso4217"`
}
