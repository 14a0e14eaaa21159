package handler

import (
	"net/http"

	"github.com/Nes-cmd/merkedube/internal/apierror"
	"github.com/Nes-cmd/merkedube/internal/dto"
	"github.com/Nes-cmd/merkedube/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ShopsHandler struct {
	catalog service.CatalogService
	stock   service.StockService
}

func NewShopsHandler(catalog service.CatalogService, stock service.StockService) *ShopsHandler {
	return &ShopsHandler{catalog: catalog, stock: stock}
}

func (h *ShopsHandler) Create(c *gin.Context) {
	t, ok := tenant(c)
	if !ok {
		return
	}
	var req dto.CreateShopRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.catalog.CreateShop(c.Request.Context(), t, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ShopsHandler) Get(c *gin.Context) {
	t, ok := tenant(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid ID"))
		return
	}
	resp, err := h.catalog.GetShop(c.Request.Context(), t, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ShopsHandler) List(c *gin.Context) {
	t, ok := tenant(c)
	if !ok {
		return
	}
	resp, err := h.catalog.ListShops(c.Request.Context(), t)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("could not list shops"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ShopsHandler) Update(c *gin.Context) {
	t, ok := tenant(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid ID"))
		return
	}
	var req dto.UpdateShopRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.catalog.UpdateShop(c.Request.Context(), t, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ShopsHandler) Deactivate(c *gin.Context) {
	t, ok := tenant(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid ID"))
		return
	}
	if err := h.catalog.DeactivateShop(c.Request.Context(), t, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Transfer godoc
// @Summary Move warehouse stock into a shop
// @Description Locks the item and the shop allocation, decrements one and increments the other in a single transaction. Total stock is conserved.
// @Tags shops
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Shop UUID"
// @Param body body dto.TransferRequest true "Item, quantity and selling price"
// @Success 200 {object} dto.TransferResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/shops/{id}/inventory [post]
func (h *ShopsHandler) Transfer(c *gin.Context) {
	t, ok := tenant(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid ID"))
		return
	}
	var req dto.TransferRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.stock.TransferToShop(c.Request.Context(), t, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ShopsHandler) ListInventory(c *gin.Context) {
	t, ok := tenant(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid ID"))
		return
	}
	resp, err := h.stock.ListShopInventory(c.Request.Context(), t, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// AdjustInventory corrects a shop allocation count in place.
func (h *ShopsHandler) AdjustInventory(c *gin.Context) {
	t, ok := tenant(c)
	if !ok {
		return
	}
	invID, err := uuid.Parse(c.Param("inventory_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid ID"))
		return
	}
	var req dto.AdjustQuantityRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.stock.AdjustShopQuantity(c.Request.Context(), t, invID, req.Delta)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
