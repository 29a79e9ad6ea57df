package handler

import (
	"errors"
	"net/http"

	"github.com/vahid343/food-save-city/internal/apierror"
	"github.com/vahid343/food-save-city/internal/dto"
	"github.com/vahid343/food-save-city/internal/middleware"
	"github.com/vahid343/food-save-city/internal/service"

	"github.com/gin-gonic/gin"
)

type RiskHandler struct{ svc service.RiskService }

func NewRiskHandler(svc service.RiskService) *RiskHandler {
	return &RiskHandler{svc: svc}
}

// Suggestions returns the current risk-zone pass: every product expiring
// within the listing window, each with a suggested action.
func (h *RiskHandler) Suggestions(c *gin.Context) {
	suggestions, err := h.svc.Analyze(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to analyze products"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": suggestions, "count": len(suggestions)})
}

func (h *RiskHandler) Confirm(c *gin.Context) {
	var req dto.ConfirmRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Confirm(c.Request.Context(), middleware.ActorID(c), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, apierror.New("product not found"))
		case errors.Is(err, service.ErrAlreadyDonated):
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, apierror.New("failed to confirm action"))
		}
		return
	}
	c.JSON(http.StatusCreated, resp)
}
