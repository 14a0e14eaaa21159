package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/Nes-cmd/merkedube/internal/dto"
	"github.com/Nes-cmd/merkedube/internal/ledger"
	"github.com/Nes-cmd/merkedube/internal/model"
	"github.com/Nes-cmd/merkedube/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildCreditSvc() (service.CreditService, *stubCreditRepo, *stubSaleRepo, *stubItemRepo) {
	creditRepo := newStubCreditRepo()
	saleRepo := newStubSaleRepo()
	itemRepo := newStubItemRepo()
	svc := service.NewCreditService(creditRepo, saleRepo, itemRepo)
	return svc, creditRepo, saleRepo, itemRepo
}

// seedCreditSale stores a sale carrying outstanding credit plus its
// CreditSale record, the shape CreateSale leaves behind.
func seedCreditSale(saleRepo *stubSaleRepo, creditRepo *stubCreditRepo, ownerID uuid.UUID, total, paid float64) *model.Sale {
	credit := decimal.NewFromFloat(total - paid)
	sale := &model.Sale{
		ID:            uuid.New(),
		Total:         decimal.NewFromFloat(total),
		Paid:          decimal.NewFromFloat(paid),
		Credit:        credit,
		PaymentStatus: model.PaymentPartial,
		SoldBy:        uuid.New(),
		SoldAt:        time.Now(),
		OwnerID:       ownerID,
	}
	saleRepo.sales[sale.ID] = sale
	creditRepo.credits[sale.ID] = &model.CreditSale{
		ID:         uuid.New(),
		SaleID:     sale.ID,
		CustomerID: uuid.New(),
		Amount:     credit,
		Remaining:  credit,
		DueDate:    time.Now().AddDate(0, 0, 30),
		Status:     model.CreditPending,
		OwnerID:    ownerID,
	}
	return sale
}

func TestSettleSale_PartialPayment(t *testing.T) {
	svc, creditRepo, saleRepo, _ := buildCreditSvc()
	tn := testTenant()
	sale := seedCreditSale(saleRepo, creditRepo, tn.OwnerID, 500, 300)

	resp, err := svc.Settle(context.Background(), tn, model.CreditableRef{Kind: model.CreditableSale, ID: sale.ID}, dto.SettleRequest{
		Amount: decimal.NewFromInt(50),
	})
	require.NoError(t, err)

	assert.Equal(t, "350", resp.Paid.String())
	assert.Equal(t, "150", resp.Credit.String())
	assert.Equal(t, string(model.PaymentPartial), resp.PaymentStatus)

	cs := creditRepo.credits[sale.ID]
	assert.Equal(t, "150", cs.Remaining.String())
	assert.Equal(t, model.CreditPending, cs.Status)

	// One history row with the approver recorded
	history, err := svc.History(context.Background(), tn, model.CreditableRef{Kind: model.CreditableSale, ID: sale.ID})
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "50", history[0].Value.String())
	assert.Equal(t, tn.UserID.String(), history[0].ApproverID)
}

func TestSettleSale_BoundaryToZeroCompletes(t *testing.T) {
	svc, creditRepo, saleRepo, _ := buildCreditSvc()
	tn := testTenant()
	sale := seedCreditSale(saleRepo, creditRepo, tn.OwnerID, 500, 300)

	resp, err := svc.Settle(context.Background(), tn, model.CreditableRef{Kind: model.CreditableSale, ID: sale.ID}, dto.SettleRequest{
		Amount: decimal.NewFromInt(200), // exactly the outstanding credit
	})
	require.NoError(t, err)

	assert.True(t, resp.Credit.IsZero())
	assert.Equal(t, string(model.PaymentCompleted), resp.PaymentStatus)

	cs := creditRepo.credits[sale.ID]
	assert.True(t, cs.Remaining.IsZero())
	assert.Equal(t, model.CreditApproved, cs.Status)
}

func TestSettleSale_OversettleRejectedStateUnchanged(t *testing.T) {
	svc, creditRepo, saleRepo, _ := buildCreditSvc()
	tn := testTenant()
	sale := seedCreditSale(saleRepo, creditRepo, tn.OwnerID, 500, 300)

	_, err := svc.Settle(context.Background(), tn, model.CreditableRef{Kind: model.CreditableSale, ID: sale.ID}, dto.SettleRequest{
		Amount: decimal.NewFromInt(201),
	})
	assert.ErrorIs(t, err, ledger.ErrExceedsOutstandingCredit)

	assert.Equal(t, "300", saleRepo.sales[sale.ID].Paid.String())
	assert.Equal(t, "200", creditRepo.credits[sale.ID].Remaining.String())
	assert.Empty(t, creditRepo.history)
}

func TestSettleSale_NonPositiveAmountRejected(t *testing.T) {
	svc, creditRepo, saleRepo, _ := buildCreditSvc()
	tn := testTenant()
	sale := seedCreditSale(saleRepo, creditRepo, tn.OwnerID, 500, 300)

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-10)} {
		_, err := svc.Settle(context.Background(), tn, model.CreditableRef{Kind: model.CreditableSale, ID: sale.ID}, dto.SettleRequest{Amount: amount})
		assert.ErrorIs(t, err, ledger.ErrInvalidAmount)
	}
	assert.Empty(t, creditRepo.history)
}

func TestSettleSale_DoubleSettleAppliesTwice(t *testing.T) {
	// Settlement is deliberately not idempotent: two identical payments are
	// two payments.
	svc, creditRepo, saleRepo, _ := buildCreditSvc()
	tn := testTenant()
	sale := seedCreditSale(saleRepo, creditRepo, tn.OwnerID, 500, 300)
	ref := model.CreditableRef{Kind: model.CreditableSale, ID: sale.ID}

	for i := 0; i < 2; i++ {
		_, err := svc.Settle(context.Background(), tn, ref, dto.SettleRequest{Amount: decimal.NewFromInt(100)})
		require.NoError(t, err)
	}

	assert.Equal(t, "500", saleRepo.sales[sale.ID].Paid.String())
	assert.True(t, creditRepo.credits[sale.ID].Remaining.IsZero())
	assert.Len(t, creditRepo.history, 2)
}

func TestSettleItem_PartialThenComplete(t *testing.T) {
	svc, creditRepo, _, itemRepo := buildCreditSvc()
	tn := testTenant()

	item := seedItem(itemRepo, tn.OwnerID, "Coffee 1kg", 10, 300)
	item.Paid = decimal.NewFromInt(100)
	item.Credit = decimal.NewFromInt(200)
	item.Status = model.PaymentPartial
	ref := model.CreditableRef{Kind: model.CreditableItem, ID: item.ID}

	resp, err := svc.Settle(context.Background(), tn, ref, dto.SettleRequest{Amount: decimal.NewFromInt(150)})
	require.NoError(t, err)
	assert.Equal(t, "250", resp.Paid.String())
	assert.Equal(t, string(model.PaymentPartial), resp.PaymentStatus)

	resp, err = svc.Settle(context.Background(), tn, ref, dto.SettleRequest{Amount: decimal.NewFromInt(50)})
	require.NoError(t, err)
	assert.True(t, resp.Credit.IsZero())
	assert.Equal(t, string(model.PaymentCompleted), resp.PaymentStatus)
	assert.Equal(t, model.PaymentCompleted, itemRepo.items[item.ID].Status)
	assert.Len(t, creditRepo.history, 2)
}

func TestSettle_ForeignTenantGetsNotFound(t *testing.T) {
	svc, creditRepo, saleRepo, _ := buildCreditSvc()
	owner := testTenant()
	intruder := testTenant()
	sale := seedCreditSale(saleRepo, creditRepo, owner.OwnerID, 500, 300)

	_, err := svc.Settle(context.Background(), intruder, model.CreditableRef{Kind: model.CreditableSale, ID: sale.ID}, dto.SettleRequest{
		Amount: decimal.NewFromInt(100),
	})
	assert.ErrorIs(t, err, service.ErrNotFound)
	assert.Equal(t, "300", saleRepo.sales[sale.ID].Paid.String())
}

func TestDeclineSale_ForwardOnly(t *testing.T) {
	svc, creditRepo, saleRepo, _ := buildCreditSvc()
	tn := testTenant()
	sale := seedCreditSale(saleRepo, creditRepo, tn.OwnerID, 500, 300)
	ref := model.CreditableRef{Kind: model.CreditableSale, ID: sale.ID}

	require.NoError(t, svc.Decline(context.Background(), tn, ref))
	assert.Equal(t, model.PaymentDeclined, saleRepo.sales[sale.ID].PaymentStatus)

	// A completed sale cannot be declined afterwards
	completed := seedCreditSale(saleRepo, creditRepo, tn.OwnerID, 100, 0)
	completed.Credit = decimal.Zero
	completed.Paid = decimal.NewFromInt(100)
	completed.PaymentStatus = model.PaymentCompleted

	err := svc.Decline(context.Background(), tn, model.CreditableRef{Kind: model.CreditableSale, ID: completed.ID})
	assert.ErrorIs(t, err, service.ErrAlreadyCompleted)
	assert.Equal(t, model.PaymentCompleted, saleRepo.sales[completed.ID].PaymentStatus)
}

func TestListCredits_OnlyOutstanding(t *testing.T) {
	svc, creditRepo, saleRepo, _ := buildCreditSvc()
	tn := testTenant()

	open := seedCreditSale(saleRepo, creditRepo, tn.OwnerID, 500, 300)
	closed := seedCreditSale(saleRepo, creditRepo, tn.OwnerID, 200, 100)
	creditRepo.credits[closed.ID].Remaining = decimal.Zero
	seedCreditSale(saleRepo, creditRepo, uuid.New(), 900, 100) // other tenant

	resp, err := svc.ListCredits(context.Background(), tn, dto.CreditFilter{})
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, open.ID.String(), resp.Data[0].SaleID)
}
