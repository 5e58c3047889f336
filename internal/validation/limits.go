package validation

import (
	"github.com/anyulbade/payment-config-service/internal/apperr"
	"github.com/anyulbade/payment-config-service/internal/dto"
)

func ValidateLimits(limits []dto.TransactionLimit) error {
	seen := make(map[string]struct{}, len(limits))
	for _, l := range limits {
		if l.MinAmount.IsNegative() || l.MaxAmount.IsNegative() {
			return apperr.Validation("LIMIT_NEGATIVE", "limit amounts must not be negative", map[string]any{
				"currency":         l.Currency,
				"transaction_type": l.TransactionType,
			})
		}
		if l.MinAmount.GreaterThan(l.MaxAmount) {
			return apperr.Validation("LIMIT_RANGE_INVALID", "min_amount must not exceed max_amount", map[string]any{
				"currency":         l.Currency,
				"transaction_type": l.TransactionType,
				"min_amount":       l.MinAmount.String(),
				"max_amount":       l.MaxAmount.String(),
			})
		}

		k := l.Currency + ":" + l.TransactionType
		if _, dup := seen[k]; dup {
			return apperr.Conflict("LIMIT_DUPLICATE", "limit defined more than once", map[string]any{
				"currency":         l.Currency,
				"transaction_type": l.TransactionType,
			})
		}
		seen[k] = struct{}{}
	}
	return nil
}
