package validation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/anyulbade/payment-config-service/internal/apperr"
	"github.com/anyulbade/payment-config-service/internal/dto"
)

func limit(currency, tt, min, max string) dto.TransactionLimit {
	return dto.TransactionLimit{
		Currency:        currency,
		TransactionType: tt,
		MinAmount:       decimal.RequireFromString(min),
		MaxAmount:       decimal.RequireFromString(max),
	}
}

func TestValidateLimits(t *testing.T) {
	assert.NoError(t, ValidateLimits(nil))
	assert.NoError(t, ValidateLimits([]dto.TransactionLimit{
		limit("EUR", "deposit", "10", "10"),
		limit("EUR", "withdrawal", "0.01", "5000.50"),
		limit("USD", "deposit", "1", "2"),
	}))

	err := ValidateLimits([]dto.TransactionLimit{limit("EUR", "deposit", "100.0001", "100")})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	err = ValidateLimits([]dto.TransactionLimit{limit("EUR", "deposit", "-1", "100")})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	err = ValidateLimits([]dto.TransactionLimit{
		limit("EUR", "deposit", "1", "2"),
		limit("EUR", "deposit", "3", "4"),
	})
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
}
