package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anyulbade/payment-config-service/internal/dto"
	"github.com/anyulbade/payment-config-service/internal/service"
)

// ProviderHandler serves the per-provider scoped settings. Every replace
// returns the stored state as read back and regrouped.
type ProviderHandler struct {
	bankSvc        *service.BankAccountService
	credSvc        *service.CredentialsService
	restrictionSvc *service.RestrictionService
	settingsSvc    *service.ProviderSettingsService
}

func NewProviderHandler(
	bankSvc *service.BankAccountService,
	credSvc *service.CredentialsService,
	restrictionSvc *service.RestrictionService,
	settingsSvc *service.ProviderSettingsService,
) *ProviderHandler {
	return &ProviderHandler{bankSvc: bankSvc, credSvc: credSvc, restrictionSvc: restrictionSvc, settingsSvc: settingsSvc}
}

func (h *ProviderHandler) GetBankAccounts(c *gin.Context) {
	groups, err := h.bankSvc.Get(c.Request.Context(), c.Param("provider"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"groups": groups})
}

func (h *ProviderHandler) ReplaceBankAccounts(c *gin.Context) {
	var req dto.ReplaceBankAccountsRequest
	if !bindJSON(c, &req) {
		return
	}

	groups, err := h.bankSvc.Replace(c.Request.Context(), c.Param("provider"), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"groups": groups})
}

func (h *ProviderHandler) GetCredentials(c *gin.Context) {
	groups, err := h.credSvc.Get(c.Request.Context(), c.Param("provider"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"groups": groups})
}

func (h *ProviderHandler) ReplaceCredentials(c *gin.Context) {
	var req dto.ReplaceCredentialsRequest
	if !bindJSON(c, &req) {
		return
	}

	groups, err := h.credSvc.Replace(c.Request.Context(), c.Param("provider"), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"groups": groups})
}

func (h *ProviderHandler) EffectiveCredentials(c *gin.Context) {
	var q dto.EffectiveCredentialsQuery
	if !bindQuery(c, &q) {
		return
	}

	creds, err := h.credSvc.Effective(c.Request.Context(), c.Param("provider"), q)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"credentials": creds})
}

func (h *ProviderHandler) GetRestrictions(c *gin.Context) {
	restrictions, err := h.restrictionSvc.Get(c.Request.Context(), c.Param("provider"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"restrictions": restrictions})
}

func (h *ProviderHandler) ReplaceRestrictions(c *gin.Context) {
	var req dto.ReplaceRestrictionsRequest
	if !bindJSON(c, &req) {
		return
	}

	restrictions, err := h.restrictionSvc.Replace(c.Request.Context(), c.Param("provider"), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"restrictions": restrictions})
}

func (h *ProviderHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsSvc.Get(c.Request.Context(), c.Param("provider"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

func (h *ProviderHandler) ReplaceSettings(c *gin.Context) {
	var req dto.ReplaceProviderSettingsRequest
	if !bindJSON(c, &req) {
		return
	}

	settings, err := h.settingsSvc.Replace(c.Request.Context(), c.Param("provider"), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}
