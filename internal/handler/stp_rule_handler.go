package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anyulbade/payment-config-service/internal/dto"
	"github.com/anyulbade/payment-config-service/internal/service"
)

type StpRuleHandler struct {
	svc *service.StpRuleService
}

func NewStpRuleHandler(svc *service.StpRuleService) *StpRuleHandler {
	return &StpRuleHandler{svc: svc}
}

func (h *StpRuleHandler) Catalog(c *gin.Context) {
	catalog, err := h.svc.Catalog(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rules": catalog})
}

func (h *StpRuleHandler) UpsertCatalog(c *gin.Context) {
	var req dto.UpsertStpCatalogRequest
	if !bindJSON(c, &req) {
		return
	}

	catalog, err := h.svc.UpsertCatalog(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rules": catalog})
}

func (h *StpRuleHandler) ProviderRules(c *gin.Context) {
	rules, err := h.svc.ProviderRules(c.Request.Context(), c.Param("provider"), c.Param("country"), c.Param("authority"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rules": rules})
}

func (h *StpRuleHandler) ReplaceProviderRules(c *gin.Context) {
	var req dto.ReplaceStpRulesRequest
	if !bindJSON(c, &req) {
		return
	}

	rules, err := h.svc.ReplaceProviderRules(c.Request.Context(), c.Param("provider"), c.Param("country"), c.Param("authority"), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rules": rules})
}
