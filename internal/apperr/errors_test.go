package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  *Error
		want int
	}{
		{Conflict("DUP", "duplicate", nil), http.StatusConflict},
		{NotFound("MISSING", "missing", nil), http.StatusNotFound},
		{Validation("BAD", "bad", nil), http.StatusBadRequest},
		{Internal("BROKEN", "broken", nil), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.err.Code, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.err.HTTPStatus())
		})
	}
}

func TestAs_ThroughWrapping(t *testing.T) {
	base := NotFound("COUNTRY_AUTHORITY_NOT_FOUND", "country authority not found", map[string]any{"country": "CY"})
	wrapped := fmt.Errorf("update order: %w", base)

	got, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, "COUNTRY_AUTHORITY_NOT_FOUND", got.Code)
	assert.Equal(t, "CY", got.Meta["country"])
	assert.True(t, IsKind(wrapped, KindNotFound))
	assert.False(t, IsKind(wrapped, KindConflict))

	_, ok = As(errors.New("plain"))
	assert.False(t, ok)
}

func TestWrap_Unwraps(t *testing.T) {
	cause := errors.New("json: bad input")
	err := Internal("STP_RULES_CORRUPT", "cannot parse provider rules", nil).Wrap(cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "json: bad input")
}
