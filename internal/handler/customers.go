package handler

import (
	"net/http"

	"github.com/Nes-cmd/merkedube/internal/apierror"
	"github.com/Nes-cmd/merkedube/internal/dto"
	"github.com/Nes-cmd/merkedube/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CustomersHandler struct{ svc service.CustomerService }

func NewCustomersHandler(svc service.CustomerService) *CustomersHandler {
	return &CustomersHandler{svc: svc}
}

func (h *CustomersHandler) Create(c *gin.Context) {
	t, ok := tenant(c)
	if !ok {
		return
	}
	var req dto.CreateCustomerRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), t, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CustomersHandler) Get(c *gin.Context) {
	t, ok := tenant(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid ID"))
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), t, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CustomersHandler) List(c *gin.Context) {
	t, ok := tenant(c)
	if !ok {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), t)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("could not list customers"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CustomersHandler) Update(c *gin.Context) {
	t, ok := tenant(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid ID"))
		return
	}
	var req dto.UpdateCustomerRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), t, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete refuses to remove a customer that still backs recorded sales.
func (h *CustomersHandler) Delete(c *gin.Context) {
	t, ok := tenant(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid ID"))
		return
	}
	if err := h.svc.Delete(c.Request.Context(), t, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
