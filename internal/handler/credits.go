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

type CreditsHandler struct{ svc service.CreditService }

func NewCreditsHandler(svc service.CreditService) *CreditsHandler {
	return &CreditsHandler{svc: svc}
}

// List godoc
// @Summary List outstanding credit sales
// @Tags credits
// @Produce json
// @Security BearerAuth
// @Param status query string false "pending | approved | all (default: outstanding)"
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Rows per page (default 50)"
// @Success 200 {object} dto.CreditListResponse
// @Router /v1/credits [get]
func (h *CreditsHandler) List(c *gin.Context) {
	t, ok := tenant(c)
	if !ok {
		return
	}
	var filter dto.CreditFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListCredits(c.Request.Context(), t, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("could not list credits"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// History godoc
// @Summary Settlement history for a sale or item
// @Tags credits
// @Produce json
// @Security BearerAuth
// @Param id path string true "Sale or item UUID"
// @Param kind query string false "sale | item (default sale)"
// @Success 200 {array} dto.CreditHistoryResponse
// @Router /v1/credits/{id}/history [get]
func (h *CreditsHandler) History(c *gin.Context) {
	t, ok := tenant(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid ID"))
		return
	}
	kind := model.CreditableKind(c.DefaultQuery("kind", string(model.CreditableSale)))
	if kind != model.CreditableSale && kind != model.CreditableItem {
		c.JSON(http.StatusBadRequest, apierror.New("kind must be sale or item"))
		return
	}
	resp, err := h.svc.History(c.Request.Context(), t, model.CreditableRef{Kind: kind, ID: id})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}
