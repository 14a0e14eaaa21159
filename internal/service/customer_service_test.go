package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/Nes-cmd/merkedube/internal/dto"
	"github.com/Nes-cmd/merkedube/internal/model"
	"github.com/Nes-cmd/merkedube/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildCustomerSvc() (service.CustomerService, *stubCustomerRepo, *stubSaleRepo) {
	customerRepo := newStubCustomerRepo()
	saleRepo := newStubSaleRepo()
	svc := service.NewCustomerService(customerRepo, saleRepo)
	return svc, customerRepo, saleRepo
}

func TestCustomerDelete_BlockedWhileSalesReference(t *testing.T) {
	svc, customerRepo, saleRepo := buildCustomerSvc()
	tn := testTenant()

	customer := seedCustomer(customerRepo, tn.OwnerID, "Abebe")
	cid := customer.ID
	saleRepo.sales[uuid.New()] = &model.Sale{
		ID:            uuid.New(),
		CustomerID:    &cid,
		Total:         decimal.NewFromInt(100),
		Paid:          decimal.NewFromInt(100),
		Credit:        decimal.Zero,
		PaymentStatus: model.PaymentCompleted,
		SoldBy:        tn.UserID,
		SoldAt:        time.Now(),
		OwnerID:       tn.OwnerID,
	}

	err := svc.Delete(context.Background(), tn, customer.ID)
	assert.ErrorIs(t, err, service.ErrCustomerHasSales)
	assert.Contains(t, customerRepo.customers, customer.ID)
}

func TestCustomerDelete_Unreferenced(t *testing.T) {
	svc, customerRepo, _ := buildCustomerSvc()
	tn := testTenant()

	customer := seedCustomer(customerRepo, tn.OwnerID, "Mulu")
	require.NoError(t, svc.Delete(context.Background(), tn, customer.ID))
	assert.NotContains(t, customerRepo.customers, customer.ID)
}

func TestCustomerUpdate_PartialFields(t *testing.T) {
	svc, customerRepo, _ := buildCustomerSvc()
	tn := testTenant()

	customer := seedCustomer(customerRepo, tn.OwnerID, "Kebede")
	phone := "0911000000"
	customer.Phone = &phone

	newPhone := "0922000000"
	resp, err := svc.Update(context.Background(), tn, customer.ID, dto.UpdateCustomerRequest{Phone: &newPhone})
	require.NoError(t, err)

	assert.Equal(t, "Kebede", resp.Name) // unchanged
	require.NotNil(t, resp.Phone)
	assert.Equal(t, newPhone, *resp.Phone)
}

func TestCustomerGet_ForeignTenantNotFound(t *testing.T) {
	svc, customerRepo, _ := buildCustomerSvc()
	owner := testTenant()
	intruder := testTenant()

	customer := seedCustomer(customerRepo, owner.OwnerID, "Private")
	_, err := svc.Get(context.Background(), intruder, customer.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
}
