package mapper

import (
	"sort"

	"github.com/anyulbade/payment-config-service/internal/dto"
	"github.com/anyulbade/payment-config-service/internal/model"
)

func BankAccountsGroupToDataList(providerCode string, groups []dto.BankAccountGroup) []model.BankAccount {
	grouped := make([]Grouped[[]dto.BankAccount], len(groups))
	for i, g := range groups {
		grouped[i] = Grouped[[]dto.BankAccount]{Parameters: g.Parameters, Payload: g.BankAccounts}
	}

	var rows []model.BankAccount
	for _, f := range Expand(grouped) {
		for _, acc := range f.Payload {
			rows = append(rows, model.BankAccount{
				ProviderCode:      providerCode,
				CountryISO2:       f.Scope.Country,
				AuthorityFullCode: f.Scope.Authority,
				CurrencyISO3:      f.Scope.Currency,
				Name:              acc.Name,
				HolderName:        acc.HolderName,
				BankName:          acc.BankName,
				IBAN:              acc.IBAN,
				SWIFT:             acc.SWIFT,
				AccountNumber:     acc.AccountNumber,
			})
		}
	}
	return rows
}

func BankAccountsDataListToGroup(rows []model.BankAccount) []dto.BankAccountGroup {
	byScope := make(map[string]int)
	var perScope []Flat[[]dto.BankAccount]

	for _, row := range rows {
		scope := scopeFromColumns(row.CountryISO2, row.AuthorityFullCode, row.CurrencyISO3)
		key := ScopeKey(scope)
		i, ok := byScope[key]
		if !ok {
			i = len(perScope)
			byScope[key] = i
			perScope = append(perScope, Flat[[]dto.BankAccount]{Scope: scope})
		}
		perScope[i].Payload = append(perScope[i].Payload, bankAccountDto(row))
	}

	for i := range perScope {
		sortBankAccounts(perScope[i].Payload)
	}

	groups := GroupByPayload(perScope)
	out := make([]dto.BankAccountGroup, len(groups))
	for i, g := range groups {
		out[i] = dto.BankAccountGroup{Parameters: g.Parameters, BankAccounts: g.Payload}
	}
	return out
}

func bankAccountDto(row model.BankAccount) dto.BankAccount {
	return dto.BankAccount{
		Name:          row.Name,
		HolderName:    row.HolderName,
		BankName:      row.BankName,
		IBAN:          row.IBAN,
		SWIFT:         row.SWIFT,
		AccountNumber: row.AccountNumber,
	}
}

func sortBankAccounts(accounts []dto.BankAccount) {
	sort.SliceStable(accounts, func(i, j int) bool {
		if accounts[i].Name != accounts[j].Name {
			return accounts[i].Name < accounts[j].Name
		}
		return accounts[i].IBAN < accounts[j].IBAN
	})
}
