// Package validation holds the business rules that must pass before a
// configuration write touches storage.
package validation

import (
	"github.com/anyulbade/payment-config-service/internal/apperr"
	"github.com/anyulbade/payment-config-service/internal/dto"
	"github.com/anyulbade/payment-config-service/internal/keys"
)

type WithdrawalsOrderValidator struct{}

// Validate checks a withdrawals order request against the provider methods
// currently bound to the country-authority. Refunds must list every bound
// method exactly once; payouts may list a subset.
func (WithdrawalsOrderValidator) Validate(req dto.WithdrawalsOrderRequest, existing []dto.ProviderMethodRef) error {
	if err := checkDuplicates("refunds", req.Refunds); err != nil {
		return err
	}
	if err := checkDuplicates("payouts", req.Payouts); err != nil {
		return err
	}

	if len(req.Refunds) != len(existing) {
		return apperr.Conflict("WITHDRAWALS_ORDER_SIZE_MISMATCH", "refunds must list every bound provider method", map[string]any{
			"expected": len(existing),
			"actual":   len(req.Refunds),
		})
	}

	bound := make(map[string]struct{}, len(existing))
	for _, e := range existing {
		bound[keys.Pair(e.MethodCode, e.ProviderCode)] = struct{}{}
	}
	if err := checkBound("refunds", req.Refunds, bound); err != nil {
		return err
	}
	return checkBound("payouts", req.Payouts, bound)
}

func checkDuplicates(list string, refs []dto.ProviderMethodRef) error {
	seen := make(map[string]struct{}, len(refs))
	for _, r := range refs {
		k := keys.Pair(r.MethodCode, r.ProviderCode)
		if _, dup := seen[k]; dup {
			return apperr.Conflict("WITHDRAWALS_ORDER_DUPLICATE", "provider method listed more than once", map[string]any{
				"list":          list,
				"provider_code": r.ProviderCode,
				"method_code":   r.MethodCode,
			})
		}
		seen[k] = struct{}{}
	}
	return nil
}

func checkBound(list string, refs []dto.ProviderMethodRef, bound map[string]struct{}) error {
	for _, r := range refs {
		if _, ok := bound[keys.Pair(r.MethodCode, r.ProviderCode)]; !ok {
			return apperr.NotFound("PROVIDER_METHOD_NOT_BOUND", "provider method is not bound to the country-authority", map[string]any{
				"list":          list,
				"provider_code": r.ProviderCode,
				"method_code":   r.MethodCode,
			})
		}
	}
	return nil
}
