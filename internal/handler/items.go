package handler

import (
	"net/http"

	"github.com/Nes-cmd/merkedube/internal/apierror"
	"github.com/Nes-cmd/merkedube/internal/dto"
	"github.com/Nes-cmd/merkedube/internal/model"
	"github.com/Nes-cmd/merkedube/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ItemsHandler struct {
	items   service.ItemService
	stock   service.StockService
	sales   service.SaleService
	credits service.CreditService
}

func NewItemsHandler(items service.ItemService, stock service.StockService, sales service.SaleService, credits service.CreditService) *ItemsHandler {
	return &ItemsHandler{items: items, stock: stock, sales: sales, credits: credits}
}

// Create godoc
// @Summary Register a new warehouse item
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateItemRequest true "Item details"
// @Success 201 {object} dto.ItemResponse
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/items [post]
func (h *ItemsHandler) Create(c *gin.Context) {
	t, ok := tenant(c)
	if !ok {
		return
	}
	var req dto.CreateItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.items.Create(c.Request.Context(), t, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ItemsHandler) Get(c *gin.Context) {
	t, ok := tenant(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid ID"))
		return
	}
	resp, err := h.items.Get(c.Request.Context(), t, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List returns a paginated, filtered list of warehouse items.
func (h *ItemsHandler) List(c *gin.Context) {
	t, ok := tenant(c)
	if !ok {
		return
	}
	var filter dto.ItemFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.items.List(c.Request.Context(), t, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("could not list items"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ItemsHandler) Update(c *gin.Context) {
	t, ok := tenant(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid ID"))
		return
	}
	var req dto.UpdateItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.items.Update(c.Request.Context(), t, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ItemsHandler) Deactivate(c *gin.Context) {
	t, ok := tenant(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid ID"))
		return
	}
	if err := h.items.Deactivate(c.Request.Context(), t, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Refill godoc
// @Summary Restock a warehouse item
// @Description Appends a refill event, bumps the item quantity and refill count, and stamps the refill date.
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item UUID"
// @Param body body dto.RefillRequest true "Refill details"
// @Success 200 {object} dto.RefillResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/items/{id}/refill [post]
func (h *ItemsHandler) Refill(c *gin.Context) {
	t, ok := tenant(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid ID"))
		return
	}
	var req dto.RefillRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.stock.Refill(c.Request.Context(), t, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ItemsHandler) ListRefills(c *gin.Context) {
	t, ok := tenant(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid ID"))
		return
	}
	refills, err := h.stock.ListRefills(c.Request.Context(), t, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": refills})
}

// AdjustQuantity nudges the warehouse count for corrections outside the
// refill flow (breakage, recounts).
func (h *ItemsHandler) AdjustQuantity(c *gin.Context) {
	t, ok := tenant(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid ID"))
		return
	}
	var req dto.AdjustQuantityRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.stock.AdjustItemQuantity(c.Request.Context(), t, id, req.Delta)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SellDirect godoc
// @Summary Sell straight from the warehouse
// @Description Item-keyed sale that bypasses shop allocations; tracks paid/credit on the item itself.
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item UUID"
// @Param body body dto.DirectSaleRequest true "Sale details"
// @Success 201 {object} dto.SaleResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/items/{id}/sell [post]
func (h *ItemsHandler) SellDirect(c *gin.Context) {
	t, ok := tenant(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid ID"))
		return
	}
	var req dto.DirectSaleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.sales.SellDirect(c.Request.Context(), t, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// SettleCredit godoc
// @Summary Settle credit held against a warehouse item
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item UUID"
// @Param body body dto.SettleRequest true "Payment amount"
// @Success 200 {object} dto.SettlementResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/items/{id}/credit-payed [post]
func (h *ItemsHandler) SettleCredit(c *gin.Context) {
	t, ok := tenant(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid ID"))
		return
	}
	var req dto.SettleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	ref := model.CreditableRef{Kind: model.CreditableItem, ID: id}
	resp, err := h.credits.Settle(c.Request.Context(), t, ref, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
