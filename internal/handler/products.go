package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/vahid343/food-save-city/internal/apierror"
	"github.com/vahid343/food-save-city/internal/dto"
	"github.com/vahid343/food-save-city/internal/middleware"
	"github.com/vahid343/food-save-city/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// csvMaxBytes caps an import upload; a catalog CSV is tiny, anything bigger
// is a mistake.
const csvMaxBytes = 5 << 20

type ProductsHandler struct{ svc service.ProductService }

func NewProductsHandler(svc service.ProductService) *ProductsHandler {
	return &ProductsHandler{svc: svc}
}

func (h *ProductsHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), middleware.ActorID(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ProductsHandler) List(c *gin.Context) {
	var filter dto.ProductFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list products"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductsHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	resp, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("product not found"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductsHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	var req dto.UpdateProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("product not found"))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductsHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("product not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("failed to delete product"))
		return
	}
	c.Status(http.StatusNoContent)
}

// ImportCSV accepts either a multipart "file" field or a raw text/csv body.
func (h *ProductsHandler) ImportCSV(c *gin.Context) {
	var data []byte

	if file, err := c.FormFile("file"); err == nil {
		f, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("failed to read upload"))
			return
		}
		defer f.Close()
		data, err = io.ReadAll(io.LimitReader(f, csvMaxBytes))
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("failed to read upload"))
			return
		}
	} else {
		var readErr error
		data, readErr = io.ReadAll(io.LimitReader(c.Request.Body, csvMaxBytes))
		if readErr != nil {
			c.JSON(http.StatusBadRequest, apierror.New("failed to read request body"))
			return
		}
	}
	if len(data) == 0 {
		c.JSON(http.StatusBadRequest, apierror.New("empty CSV upload"))
		return
	}

	resp, err := h.svc.ImportCSV(c.Request.Context(), middleware.ActorID(c), data)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
