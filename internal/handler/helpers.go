package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/Nes-cmd/merkedube/internal/apierror"
	"github.com/Nes-cmd/merkedube/internal/ledger"
	"github.com/Nes-cmd/merkedube/internal/middleware"
	"github.com/Nes-cmd/merkedube/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid JSON: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// tenant extracts the caller's tenant context; aborts with 401 when the
// token claims are unusable.
func tenant(c *gin.Context) (service.Tenant, bool) {
	t, ok := middleware.GetTenant(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("authentication required"))
	}
	return t, ok
}

// respondError maps service-layer sentinel errors onto HTTP statuses.
// Unknown errors become 400s; the raw message is safe because services never
// wrap driver errors into their sentinels.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, apierror.NewCoded("not_found", "resource not found"))
	case errors.Is(err, service.ErrInsufficientStock):
		c.JSON(http.StatusConflict, apierror.NewCoded("insufficient_stock", err.Error()))
	case errors.Is(err, ledger.ErrExceedsOutstandingCredit):
		c.JSON(http.StatusConflict, apierror.NewCoded("exceeds_outstanding_credit", err.Error()))
	case errors.Is(err, service.ErrCustomerHasSales):
		c.JSON(http.StatusConflict, apierror.NewCoded("customer_has_sales", err.Error()))
	case errors.Is(err, service.ErrAlreadyCompleted):
		c.JSON(http.StatusConflict, apierror.NewCoded("already_completed", err.Error()))
	case errors.Is(err, ledger.ErrInvalidAmount):
		c.JSON(http.StatusUnprocessableEntity, apierror.NewCoded("invalid_amount", err.Error()))
	case errors.Is(err, service.ErrInvalidQuantity):
		c.JSON(http.StatusUnprocessableEntity, apierror.NewCoded("invalid_quantity", err.Error()))
	case errors.Is(err, service.ErrInvalidLineItem):
		c.JSON(http.StatusUnprocessableEntity, apierror.NewCoded("invalid_line_item", err.Error()))
	case errors.Is(err, service.ErrCustomerRequired):
		c.JSON(http.StatusUnprocessableEntity, apierror.NewCoded("customer_required", err.Error()))
	default:
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	}
}
