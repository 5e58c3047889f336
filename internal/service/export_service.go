package service

import (
	"context"
	"fmt"

	"github.com/anyulbade/payment-config-service/internal/csvexport"
)

var providerMethodColumns = []csvexport.Column{
	{Field: "country", Header: "Country"},
	{Field: "authority", Header: "Authority"},
	{Field: "provider", Header: "Provider"},
	{Field: "method", Header: "Method"},
	{Field: "enabled", Header: "Enabled"},
	{Field: "deposits_order", Header: "Deposits Order"},
	{Field: "refunds_order", Header: "Refunds Order"},
	{Field: "payouts_order", Header: "Payouts Order"},
}

type ExportService struct {
	pmRepo ProviderMethodStore
}

func NewExportService(pmRepo ProviderMethodStore) *ExportService {
	return &ExportService{pmRepo: pmRepo}
}

// ProviderMethodsCSV renders every provider-method binding. No bindings
// render as an empty document.
func (s *ExportService) ProviderMethodsCSV(ctx context.Context) (string, error) {
	methods, err := s.pmRepo.ListAll(ctx)
	if err != nil {
		return "", fmt.Errorf("list provider methods: %w", err)
	}

	records := make([]map[string]any, len(methods))
	for i, m := range methods {
		records[i] = map[string]any{
			"country":        m.CountryISO2,
			"authority":      m.AuthorityFullCode,
			"provider":       m.ProviderCode,
			"method":         m.MethodCode,
			"enabled":        m.IsEnabled,
			"deposits_order": m.DepositsOrder,
			"refunds_order":  m.RefundsOrder,
			"payouts_order":  m.PayoutsOrder,
		}
	}
	return csvexport.Convert(records, providerMethodColumns), nil
}
