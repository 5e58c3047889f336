package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anyulbade/payment-config-service/internal/dto"
	"github.com/anyulbade/payment-config-service/internal/model"
	"github.com/anyulbade/payment-config-service/internal/service"
)

type ReferenceHandler struct {
	svc *service.ReferenceService
}

func NewReferenceHandler(svc *service.ReferenceService) *ReferenceHandler {
	return &ReferenceHandler{svc: svc}
}

func (h *ReferenceHandler) List(kind model.ReferenceKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := h.svc.List(c.Request.Context(), kind)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.Paginate(items, dto.ParsePagination(c)))
	}
}

func (h *ReferenceHandler) Upsert(kind model.ReferenceKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.ReferenceItemRequest
		if !bindJSON(c, &req) {
			return
		}

		item, err := h.svc.Upsert(c.Request.Context(), kind, req)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, item)
	}
}
