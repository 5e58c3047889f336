package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anyulbade/payment-config-service/internal/dto"
	"github.com/anyulbade/payment-config-service/internal/service"
)

// ProviderMethodHandler serves the configuration of a single provider method
// bound to a country-authority: its fields and transaction limits.
type ProviderMethodHandler struct {
	fieldSvc *service.FieldService
	limitSvc *service.TransactionLimitService
}

func NewProviderMethodHandler(fieldSvc *service.FieldService, limitSvc *service.TransactionLimitService) *ProviderMethodHandler {
	return &ProviderMethodHandler{fieldSvc: fieldSvc, limitSvc: limitSvc}
}

type bindingPath struct {
	country, authority, provider, method string
}

func bindingFrom(c *gin.Context) bindingPath {
	return bindingPath{
		country:   c.Param("country"),
		authority: c.Param("authority"),
		provider:  c.Param("provider"),
		method:    c.Param("method"),
	}
}

func (h *ProviderMethodHandler) GetFields(c *gin.Context) {
	p := bindingFrom(c)
	fields, err := h.fieldSvc.Get(c.Request.Context(), p.country, p.authority, p.provider, p.method)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, fields)
}

func (h *ProviderMethodHandler) ReplaceFields(c *gin.Context) {
	var req dto.ReplaceFieldsRequest
	if !bindJSON(c, &req) {
		return
	}

	p := bindingFrom(c)
	fields, err := h.fieldSvc.Replace(c.Request.Context(), p.country, p.authority, p.provider, p.method, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, fields)
}

func (h *ProviderMethodHandler) GetLimits(c *gin.Context) {
	p := bindingFrom(c)
	limits, err := h.limitSvc.Get(c.Request.Context(), p.country, p.authority, p.provider, p.method)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": limits})
}

func (h *ProviderMethodHandler) ReplaceLimits(c *gin.Context) {
	var req dto.ReplaceLimitsRequest
	if !bindJSON(c, &req) {
		return
	}

	p := bindingFrom(c)
	limits, err := h.limitSvc.Replace(c.Request.Context(), p.country, p.authority, p.provider, p.method, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": limits})
}
