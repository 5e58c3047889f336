package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anyulbade/payment-config-service/internal/dto"
	"github.com/anyulbade/payment-config-service/internal/service"
)

type CountryAuthorityHandler struct {
	svc      *service.CountryAuthorityService
	orderSvc *service.WithdrawalsOrderService
}

func NewCountryAuthorityHandler(svc *service.CountryAuthorityService, orderSvc *service.WithdrawalsOrderService) *CountryAuthorityHandler {
	return &CountryAuthorityHandler{svc: svc, orderSvc: orderSvc}
}

func (h *CountryAuthorityHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Paginate(list, dto.ParsePagination(c)))
}

func (h *CountryAuthorityHandler) Create(c *gin.Context) {
	var req dto.CountryAuthorityRef
	if !bindJSON(c, &req) {
		return
	}

	ca, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, ca)
}

func (h *CountryAuthorityHandler) ListMethods(c *gin.Context) {
	methods, err := h.svc.ListMethods(c.Request.Context(), c.Param("country"), c.Param("authority"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": methods})
}

func (h *CountryAuthorityHandler) BindMethod(c *gin.Context) {
	var req dto.BindProviderMethodRequest
	if !bindJSON(c, &req) {
		return
	}

	pm, err := h.svc.BindMethod(c.Request.Context(), c.Param("country"), c.Param("authority"), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, pm)
}

func (h *CountryAuthorityHandler) UnbindMethod(c *gin.Context) {
	err := h.svc.UnbindMethod(c.Request.Context(), c.Param("country"), c.Param("authority"), c.Param("provider"), c.Param("method"))
	if err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CountryAuthorityHandler) GetWithdrawalsOrder(c *gin.Context) {
	resp, err := h.orderSvc.Get(c.Request.Context(), c.Param("country"), c.Param("authority"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CountryAuthorityHandler) UpdateWithdrawalsOrder(c *gin.Context) {
	var req dto.WithdrawalsOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.orderSvc.Update(c.Request.Context(), c.Param("country"), c.Param("authority"), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
