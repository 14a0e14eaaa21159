package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/Nes-cmd/merkedube/internal/dto"
	"github.com/Nes-cmd/merkedube/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildStockSvc() (service.StockService, *stubItemRepo, *stubInventoryRepo, *stubShopRepo) {
	itemRepo := newStubItemRepo()
	invRepo := newStubInventoryRepo()
	shopRepo := newStubShopRepo()
	svc := service.NewStockService(itemRepo, invRepo, shopRepo)
	return svc, itemRepo, invRepo, shopRepo
}

func TestTransferToShop_ConservesTotalStock(t *testing.T) {
	svc, itemRepo, invRepo, shopRepo := buildStockSvc()
	tn := testTenant()

	item := seedItem(itemRepo, tn.OwnerID, "Teff flour 1kg", 50, 100)
	shop := seedShop(shopRepo, tn.OwnerID, "Piassa Branch")

	resp, err := svc.TransferToShop(context.Background(), tn, shop.ID, dto.TransferRequest{
		ItemID:       item.ID.String(),
		Quantity:     20,
		SellingPrice: decimal.NewFromInt(120),
	})
	require.NoError(t, err)

	assert.Equal(t, 30, resp.WarehouseQuantity)
	assert.Equal(t, 20, resp.Inventory.Quantity)
	assert.Equal(t, "120", resp.Inventory.SellingPrice.String())

	// warehouse + allocations before == after
	allocated, err := invRepo.SumQuantityForItem(context.Background(), tn.OwnerID, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, itemRepo.items[item.ID].Quantity+allocated)
}

func TestTransferToShop_TopsUpExistingAllocation(t *testing.T) {
	svc, itemRepo, invRepo, shopRepo := buildStockSvc()
	tn := testTenant()

	item := seedItem(itemRepo, tn.OwnerID, "Sugar 1kg", 40, 80)
	shop := seedShop(shopRepo, tn.OwnerID, "Bole Branch")
	inv := seedInventory(invRepo, tn.OwnerID, shop.ID, item.ID, 5, 90)

	resp, err := svc.TransferToShop(context.Background(), tn, shop.ID, dto.TransferRequest{
		ItemID:       item.ID.String(),
		Quantity:     10,
		SellingPrice: decimal.NewFromInt(95),
	})
	require.NoError(t, err)

	// Same allocation row, quantity added, price overwritten
	assert.Equal(t, inv.ID.String(), resp.Inventory.ID)
	assert.Equal(t, 15, invRepo.invs[inv.ID].Quantity)
	assert.Equal(t, "95", invRepo.invs[inv.ID].SellingPrice.String())
	assert.Equal(t, 30, itemRepo.items[item.ID].Quantity)
}

func TestTransferToShop_InsufficientWarehouseStock(t *testing.T) {
	svc, itemRepo, invRepo, shopRepo := buildStockSvc()
	tn := testTenant()

	item := seedItem(itemRepo, tn.OwnerID, "Oil 1L", 5, 150)
	shop := seedShop(shopRepo, tn.OwnerID, "Merkato Branch")

	_, err := svc.TransferToShop(context.Background(), tn, shop.ID, dto.TransferRequest{
		ItemID:       item.ID.String(),
		Quantity:     8,
		SellingPrice: decimal.NewFromInt(160),
	})
	assert.ErrorIs(t, err, service.ErrInsufficientStock)
	assert.Equal(t, 5, itemRepo.items[item.ID].Quantity)
	assert.Empty(t, invRepo.invs)
}

func TestTransferToShop_InvalidQuantity(t *testing.T) {
	svc, itemRepo, _, shopRepo := buildStockSvc()
	tn := testTenant()

	item := seedItem(itemRepo, tn.OwnerID, "Salt 500g", 10, 20)
	shop := seedShop(shopRepo, tn.OwnerID, "Piassa Branch")

	for _, qty := range []int{0, -3} {
		_, err := svc.TransferToShop(context.Background(), tn, shop.ID, dto.TransferRequest{
			ItemID:       item.ID.String(),
			Quantity:     qty,
			SellingPrice: decimal.NewFromInt(25),
		})
		assert.ErrorIs(t, err, service.ErrInvalidQuantity)
	}
}

func TestRefill_UpdatesCountersAndMetadata(t *testing.T) {
	svc, itemRepo, _, _ := buildStockSvc()
	tn := testTenant()

	item := seedItem(itemRepo, tn.OwnerID, "Coffee 1kg", 10, 300)
	item.RefillCount = 2

	price := decimal.NewFromInt(210)
	batch := "B-2026-08"
	resp, err := svc.Refill(context.Background(), tn, item.ID, dto.RefillRequest{
		Quantity:      15,
		PurchasePrice: &price,
		BatchNumber:   &batch,
	})
	require.NoError(t, err)

	assert.Equal(t, 25, resp.NewQuantity)
	assert.Equal(t, 3, resp.RefillCount)
	require.NotNil(t, resp.LastRefillDate)
	assert.WithinDuration(t, time.Now(), *resp.LastRefillDate, time.Minute)

	stored := itemRepo.items[item.ID]
	assert.Equal(t, "210", stored.PurchasePrice.String())
	require.NotNil(t, stored.BatchNumber)
	assert.Equal(t, "B-2026-08", *stored.BatchNumber)

	// One append-only refill event recorded
	refills, err := svc.ListRefills(context.Background(), tn, item.ID)
	require.NoError(t, err)
	require.Len(t, refills, 1)
	assert.Equal(t, 15, refills[0].Quantity)
	assert.Equal(t, tn.UserID, refills[0].RefilledBy)
}

func TestRefill_MetadataOnlyWhenSupplied(t *testing.T) {
	svc, itemRepo, _, _ := buildStockSvc()
	tn := testTenant()

	item := seedItem(itemRepo, tn.OwnerID, "Honey 500g", 4, 250)
	item.PurchasePrice = decimal.NewFromInt(180)

	_, err := svc.Refill(context.Background(), tn, item.ID, dto.RefillRequest{Quantity: 6})
	require.NoError(t, err)

	// Price untouched when the refill omits it
	assert.Equal(t, "180", itemRepo.items[item.ID].PurchasePrice.String())
	assert.Equal(t, 10, itemRepo.items[item.ID].Quantity)
}

func TestRefill_InvalidQuantity(t *testing.T) {
	svc, itemRepo, _, _ := buildStockSvc()
	tn := testTenant()
	item := seedItem(itemRepo, tn.OwnerID, "Pasta 500g", 7, 60)

	_, err := svc.Refill(context.Background(), tn, item.ID, dto.RefillRequest{Quantity: 0})
	assert.ErrorIs(t, err, service.ErrInvalidQuantity)
	assert.Equal(t, 7, itemRepo.items[item.ID].Quantity)
	assert.Empty(t, itemRepo.refills)
}

func TestAdjustShopQuantity_RejectsNegativeResult(t *testing.T) {
	svc, itemRepo, invRepo, shopRepo := buildStockSvc()
	tn := testTenant()

	item := seedItem(itemRepo, tn.OwnerID, "Rice 5kg", 20, 400)
	shop := seedShop(shopRepo, tn.OwnerID, "Bole Branch")
	inv := seedInventory(invRepo, tn.OwnerID, shop.ID, item.ID, 3, 420)

	_, err := svc.AdjustShopQuantity(context.Background(), tn, inv.ID, -5)
	assert.ErrorIs(t, err, service.ErrInsufficientStock)
	assert.Equal(t, 3, invRepo.invs[inv.ID].Quantity)

	resp, err := svc.AdjustShopQuantity(context.Background(), tn, inv.ID, -2)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Quantity)
}
