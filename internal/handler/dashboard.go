package handler

import (
	"net/http"

	"github.com/vahid343/food-save-city/internal/apierror"
	"github.com/vahid343/food-save-city/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct{ svc service.DashboardService }

func NewDashboardHandler(svc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to compute dashboard stats"))
		return
	}
	c.JSON(http.StatusOK, stats)
}
