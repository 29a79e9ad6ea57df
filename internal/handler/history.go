package handler

import (
	"net/http"

	"github.com/vahid343/food-save-city/internal/apierror"
	"github.com/vahid343/food-save-city/internal/dto"
	"github.com/vahid343/food-save-city/internal/infra"
	"github.com/vahid343/food-save-city/internal/service"

	"github.com/gin-gonic/gin"
)

type HistoryHandler struct {
	svc         service.HistoryService
	storagePath string
}

func NewHistoryHandler(svc service.HistoryService, storagePath string) *HistoryHandler {
	return &HistoryHandler{svc: svc, storagePath: storagePath}
}

func (h *HistoryHandler) List(c *gin.Context) {
	var filter dto.HistoryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list history"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Report renders the full action history (optionally filtered by action type)
// as a downloadable PDF.
func (h *HistoryHandler) Report(c *gin.Context) {
	actionType := c.Query("action_type")
	entries, err := h.svc.ListAll(c.Request.Context(), actionType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to load history"))
		return
	}

	path, err := infra.GenerateHistoryReportPDF(entries, h.storagePath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to generate report"))
		return
	}
	c.FileAttachment(path, "action-history.pdf")
}
