package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Nes-cmd/merkedube/internal/apierror"
	"github.com/Nes-cmd/merkedube/internal/dto"
	"github.com/Nes-cmd/merkedube/internal/model"
	"github.com/Nes-cmd/merkedube/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SalesHandler struct {
	sales   service.SaleService
	credits service.CreditService
}

func NewSalesHandler(sales service.SaleService, credits service.CreditService) *SalesHandler {
	return &SalesHandler{sales: sales, credits: credits}
}

// Create godoc
// @Summary Record a new sale
// @Description ACID sale against shop inventory: locks and decrements each line's allocation, splits the total into paid and credit, and opens a credit record when underpaid.
// @Tags sales
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateSaleRequest true "Sale detail"
// @Success 201 {object} dto.SaleResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/sales [post]
func (h *SalesHandler) Create(c *gin.Context) {
	t, ok := tenant(c)
	if !ok {
		return
	}
	var req dto.CreateSaleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.sales.CreateSale(c.Request.Context(), t, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *SalesHandler) Get(c *gin.Context) {
	t, ok := tenant(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid ID"))
		return
	}
	resp, err := h.sales.GetSale(c.Request.Context(), t, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List godoc
// @Summary List sales
// @Description Paginated sales filtered by date, shop and payment status.
// @Tags sales
// @Produce json
// @Security BearerAuth
// @Param date query string false "Date YYYY-MM-DD (default: today)"
// @Param status query string false "pending | partial | completed | declined | all"
// @Param shop_id query string false "Shop UUID"
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Rows per page (default 50)"
// @Success 200 {object} dto.SaleListResponse
// @Router /v1/sales [get]
func (h *SalesHandler) List(c *gin.Context) {
	t, ok := tenant(c)
	if !ok {
		return
	}
	var filter dto.SaleFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.sales.ListSales(c.Request.Context(), t, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("could not list sales"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SettleCredit godoc
// @Summary Pay down the credit on a sale
// @Description Applies a payment to the sale's outstanding credit; rejects amounts above the remaining balance.
// @Tags sales
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Sale UUID"
// @Param body body dto.SettleRequest true "Payment amount"
// @Success 200 {object} dto.SettlementResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/sales/{id}/credit-payed [post]
func (h *SalesHandler) SettleCredit(c *gin.Context) {
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
	ref := model.CreditableRef{Kind: model.CreditableSale, ID: id}
	resp, err := h.credits.Settle(c.Request.Context(), t, ref, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeclineCredit writes off the sale's remaining credit.
func (h *SalesHandler) DeclineCredit(c *gin.Context) {
	t, ok := tenant(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid ID"))
		return
	}
	ref := model.CreditableRef{Kind: model.CreditableSale, ID: id}
	if err := h.credits.Decline(c.Request.Context(), t, ref); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Receipt godoc
// @Summary Download the sale receipt as PDF
// @Tags sales
// @Produce application/pdf
// @Security BearerAuth
// @Param id path string true "Sale UUID"
// @Success 200 {file} binary
// @Failure 404 {object} apierror.APIError
// @Router /v1/sales/{id}/receipt [get]
func (h *SalesHandler) Receipt(c *gin.Context) {
	t, ok := tenant(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid ID"))
		return
	}
	pdf, err := h.sales.Receipt(c.Request.Context(), t, id)
	if err != nil {
		respondError(c, err)
		return
	}
	filename := fmt.Sprintf("receipt-%s-%s.pdf", id, time.Now().Format("20060102"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
