package handler

import (
	"net/http"

	"github.com/Nes-cmd/merkedube/internal/apierror"
	"github.com/Nes-cmd/merkedube/internal/dto"
	"github.com/Nes-cmd/merkedube/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CatalogHandler serves the small lookup collections: categories and
// suppliers.
type CatalogHandler struct{ svc service.CatalogService }

func NewCatalogHandler(svc service.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	t, ok := tenant(c)
	if !ok {
		return
	}
	var req dto.CreateCategoryRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateCategory(c.Request.Context(), t, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	t, ok := tenant(c)
	if !ok {
		return
	}
	resp, err := h.svc.ListCategories(c.Request.Context(), t)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("could not list categories"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	t, ok := tenant(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid ID"))
		return
	}
	if err := h.svc.DeleteCategory(c.Request.Context(), t, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CatalogHandler) CreateSupplier(c *gin.Context) {
	t, ok := tenant(c)
	if !ok {
		return
	}
	var req dto.CreateSupplierRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateSupplier(c.Request.Context(), t, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CatalogHandler) ListSuppliers(c *gin.Context) {
	t, ok := tenant(c)
	if !ok {
		return
	}
	resp, err := h.svc.ListSuppliers(c.Request.Context(), t)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("could not list suppliers"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogHandler) DeleteSupplier(c *gin.Context) {
	t, ok := tenant(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid ID"))
		return
	}
	if err := h.svc.DeleteSupplier(c.Request.Context(), t, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
