package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anyulbade/payment-config-service/internal/auth"
	"github.com/anyulbade/payment-config-service/internal/dto"
	"github.com/anyulbade/payment-config-service/internal/middleware"
)

func decodeError(t *testing.T, body []byte) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp
}

func TestRouter_AuthAndRoles(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		role   auth.Role
		body   string
		status int
	}{
		{name: "no credentials", method: "GET", path: "/api/v1/countries", status: http.StatusUnauthorized},
		{name: "viewer reads", method: "GET", path: "/api/v1/countries", role: auth.RoleViewer, status: http.StatusOK},
		{name: "viewer cannot write", method: "POST", path: "/api/v1/countries", role: auth.RoleViewer, body: `{"code":"FR","name":"France"}`, status: http.StatusForbidden},
		{name: "editor writes", method: "POST", path: "/api/v1/countries", role: auth.RoleEditor, body: `{"code":"FR","name":"France"}`, status: http.StatusOK},
		{name: "editor cannot unbind", method: "DELETE", path: "/api/v1/country-authorities/CY/CYSEC/methods/stripe/cards", role: auth.RoleEditor, status: http.StatusForbidden},
		{name: "credentials need admin", method: "GET", path: "/api/v1/providers/stripe/credentials", role: auth.RoleEditor, status: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, tt.method, tt.path, tt.role, tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}
}

func TestRouter_PublicEndpoints(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, "GET", "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	w = s.do(t, "GET", "/metrics", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "paycfg_http_requests_total")
}

func TestRouter_ListCountriesPaginates(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, "GET", "/api/v1/countries?page=2&page_size=1", auth.RoleViewer, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data       []map[string]string `json:"data"`
		Pagination dto.Pagination      `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "GB", resp.Data[0]["code"])
	assert.Equal(t, 2, resp.Pagination.TotalItems)
	assert.Equal(t, 2, resp.Pagination.TotalPages)
}

func TestRouter_ValidationErrors(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, "POST", "/api/v1/countries", auth.RoleEditor, `{"code":"FR"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_FAILED", decodeError(t, w.Body.Bytes()).Code)

	w = s.do(t, "POST", "/api/v1/countries", auth.RoleEditor, `{"code":"fr","name":"France"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "REFERENCE_CODE_INVALID", decodeError(t, w.Body.Bytes()).Code)

	w = s.do(t, "POST", "/api/v1/countries", auth.RoleEditor, `{"code":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_REQUEST", decodeError(t, w.Body.Bytes()).Code)
}

func TestRouter_WithdrawalsOrder(t *testing.T) {
	s := newTestServer(t)
	path := "/api/v1/country-authorities/CY/CYSEC/withdrawals-order"

	w := s.do(t, "PUT", path, auth.RoleEditor, `{"refunds":[{"provider_code":"stripe","method_code":"cards"}]}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "WITHDRAWALS_ORDER_SIZE_MISMATCH", decodeError(t, w.Body.Bytes()).Code)

	w = s.do(t, "PUT", path, auth.RoleEditor, `{
		"refunds":[{"provider_code":"adyen","method_code":"cards"},{"provider_code":"stripe","method_code":"cards"}],
		"payouts":[{"provider_code":"stripe","method_code":"cards"}]
	}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp dto.WithdrawalsOrderResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []dto.WithdrawalOrderItem{
		{ProviderCode: "adyen", MethodCode: "cards", Order: 2},
		{ProviderCode: "stripe", MethodCode: "cards", Order: 1},
	}, resp.Refunds)

	w = s.do(t, "GET", "/api/v1/country-authorities/DE/BAFIN/withdrawals-order", auth.RoleViewer, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "COUNTRY_AUTHORITY_NOT_FOUND", decodeError(t, w.Body.Bytes()).Code)
}

func TestRouter_BindAndUnbindMethod(t *testing.T) {
	s := newTestServer(t)
	base := "/api/v1/country-authorities/CY/CYSEC/methods"

	w := s.do(t, "POST", base, auth.RoleEditor, `{"provider_code":"paypal","method_code":"ewallet"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(t, "POST", base, auth.RoleEditor, `{"provider_code":"paypal","method_code":"ewallet"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, "DELETE", base+"/paypal/ewallet", auth.RoleAdmin, "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(t, "DELETE", base+"/paypal/ewallet", auth.RoleAdmin, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_ExportCSV(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, "GET", "/api/v1/export/provider-methods.csv", auth.RoleViewer, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))

	lines := strings.Split(w.Body.String(), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Country,Authority,Provider,Method,Enabled,Deposits Order,Refunds Order,Payouts Order", lines[0])
	assert.Equal(t, "CY,CYSEC,stripe,cards,true,0,1,1", lines[1])
}
