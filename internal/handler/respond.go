package handler

import (
	"github.com/gin-gonic/gin"
)

// bindJSON reports binding failures to middleware.ErrorHandler.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return false
	}
	return true
}

func bindQuery(c *gin.Context, req any) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return false
	}
	return true
}

func fail(c *gin.Context, err error) {
	_ = c.Error(err)
}
