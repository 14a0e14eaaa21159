package service

import (
	"context"
	"errors"
	"time"

	"github.com/Nes-cmd/merkedube/internal/dto"
	"github.com/Nes-cmd/merkedube/internal/model"
	"github.com/Nes-cmd/merkedube/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockService owns every quantity mutation on warehouse items and shop
// allocations: the paired warehouse→shop transfer, manual adjustments, and
// refills. Each multi-row mutation runs in one transaction with row locks
// acquired before the availability check.
type StockService interface {
	TransferToShop(ctx context.Context, t Tenant, shopID uuid.UUID, req dto.TransferRequest) (*dto.TransferResponse, error)
	AdjustItemQuantity(ctx context.Context, t Tenant, itemID uuid.UUID, delta int) (*dto.ItemResponse, error)
	AdjustShopQuantity(ctx context.Context, t Tenant, inventoryID uuid.UUID, delta int) (*dto.ShopInventoryResponse, error)
	Refill(ctx context.Context, t Tenant, itemID uuid.UUID, req dto.RefillRequest) (*dto.RefillResponse, error)
	ListShopInventory(ctx context.Context, t Tenant, shopID uuid.UUID) ([]dto.ShopInventoryResponse, error)
	ListRefills(ctx context.Context, t Tenant, itemID uuid.UUID) ([]model.ItemRefill, error)
}

type stockService struct {
	items       repository.ItemRepository
	inventories repository.ShopInventoryRepository
	shops       repository.ShopRepository
}

func NewStockService(
	items repository.ItemRepository,
	inventories repository.ShopInventoryRepository,
	shops repository.ShopRepository,
) StockService {
	return &stockService{items: items, inventories: inventories, shops: shops}
}

// TransferToShop moves quantity units from the warehouse item into the
// shop's allocation, creating the allocation row if needed. Both mutations
// commit together or not at all, keeping
// Item.Quantity + sum(allocations) constant.
func (s *stockService) TransferToShop(ctx context.Context, t Tenant, shopID uuid.UUID, req dto.TransferRequest) (*dto.TransferResponse, error) {
	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		return nil, ErrNotFound
	}
	if req.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	if _, err := s.shops.FindByID(ctx, t.OwnerID, shopID); err != nil {
		return nil, notFoundOr(err)
	}

	var item *model.Item
	var inv *model.ShopInventory

	txErr := runTx(ctx, s.items.DB(), func(tx *gorm.DB) error {
		item, err = s.items.FindByIDForUpdate(tx, t.OwnerID, itemID)
		if err != nil {
			return notFoundOr(err)
		}
		if item.Quantity < req.Quantity {
			return ErrInsufficientStock
		}

		inv, err = s.inventories.FindOrCreateForUpdate(tx, t.OwnerID, shopID, itemID)
		if err != nil {
			return err
		}

		item.Quantity -= req.Quantity
		if err := s.items.SaveTx(tx, item); err != nil {
			return err
		}

		inv.Quantity += req.Quantity
		inv.SellingPrice = req.SellingPrice
		return s.inventories.SaveTx(tx, inv)
	})
	if txErr != nil {
		return nil, txErr
	}

	return &dto.TransferResponse{
		Inventory:         inventoryToResponse(inv, item.Name),
		WarehouseQuantity: item.Quantity,
	}, nil
}

func (s *stockService) AdjustItemQuantity(ctx context.Context, t Tenant, itemID uuid.UUID, delta int) (*dto.ItemResponse, error) {
	var item *model.Item
	txErr := runTx(ctx, s.items.DB(), func(tx *gorm.DB) error {
		var err error
		item, err = s.items.FindByIDForUpdate(tx, t.OwnerID, itemID)
		if err != nil {
			return notFoundOr(err)
		}
		if item.Quantity+delta < 0 {
			return ErrInsufficientStock
		}
		item.Quantity += delta
		return s.items.SaveTx(tx, item)
	})
	if txErr != nil {
		return nil, txErr
	}
	resp := itemToResponse(item)
	return &resp, nil
}

func (s *stockService) AdjustShopQuantity(ctx context.Context, t Tenant, inventoryID uuid.UUID, delta int) (*dto.ShopInventoryResponse, error) {
	var inv *model.ShopInventory
	txErr := runTx(ctx, s.inventories.DB(), func(tx *gorm.DB) error {
		var err error
		inv, err = s.inventories.FindByIDForUpdate(tx, t.OwnerID, inventoryID)
		if err != nil {
			return notFoundOr(err)
		}
		if inv.Quantity+delta < 0 {
			return ErrInsufficientStock
		}
		inv.Quantity += delta
		return s.inventories.SaveTx(tx, inv)
	})
	if txErr != nil {
		return nil, txErr
	}
	resp := inventoryToResponse(inv, "")
	return &resp, nil
}

// Refill appends a restock event and mutates the item: quantity and refill
// counters always, batch/expiry/pricing metadata only when supplied. There is
// deliberately no stock ceiling; a warehouse accumulates without bound.
func (s *stockService) Refill(ctx context.Context, t Tenant, itemID uuid.UUID, req dto.RefillRequest) (*dto.RefillResponse, error) {
	if req.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	var supplierID *uuid.UUID
	if req.SupplierID != nil {
		sid, err := uuid.Parse(*req.SupplierID)
		if err != nil {
			return nil, ErrNotFound
		}
		supplierID = &sid
	}

	var item *model.Item
	var refill *model.ItemRefill

	txErr := runTx(ctx, s.items.DB(), func(tx *gorm.DB) error {
		var err error
		item, err = s.items.FindByIDForUpdate(tx, t.OwnerID, itemID)
		if err != nil {
			return notFoundOr(err)
		}

		refill = &model.ItemRefill{
			ItemID:          item.ID,
			Quantity:        req.Quantity,
			PurchasePrice:   req.PurchasePrice,
			SupplierID:      supplierID,
			BatchNumber:     req.BatchNumber,
			ManufactureDate: req.ManufactureDate,
			ExpiryDate:      req.ExpiryDate,
			Notes:           req.Notes,
			RefilledBy:      t.UserID,
			OwnerID:         t.OwnerID,
		}
		if err := s.items.CreateRefillTx(tx, refill); err != nil {
			return err
		}

		now := time.Now()
		item.Quantity += req.Quantity
		item.RefillCount++
		item.LastRefillDate = &now
		if req.PurchasePrice != nil {
			item.PurchasePrice = *req.PurchasePrice
		}
		if req.BatchNumber != nil {
			item.BatchNumber = req.BatchNumber
		}
		if req.ManufactureDate != nil {
			item.ManufactureDate = req.ManufactureDate
		}
		if req.ExpiryDate != nil {
			item.ExpiryDate = req.ExpiryDate
		}
		if supplierID != nil {
			item.SupplierID = supplierID
		}
		return s.items.SaveTx(tx, item)
	})
	if txErr != nil {
		return nil, txErr
	}

	return &dto.RefillResponse{
		ID:             refill.ID.String(),
		ItemID:         item.ID.String(),
		Quantity:       refill.Quantity,
		NewQuantity:    item.Quantity,
		RefillCount:    item.RefillCount,
		LastRefillDate: item.LastRefillDate,
		CreatedAt:      refill.CreatedAt,
	}, nil
}

func (s *stockService) ListShopInventory(ctx context.Context, t Tenant, shopID uuid.UUID) ([]dto.ShopInventoryResponse, error) {
	if _, err := s.shops.FindByID(ctx, t.OwnerID, shopID); err != nil {
		return nil, notFoundOr(err)
	}
	invs, err := s.inventories.ListByShop(ctx, t.OwnerID, shopID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ShopInventoryResponse, 0, len(invs))
	for i := range invs {
		name := ""
		if invs[i].Item != nil {
			name = invs[i].Item.Name
		}
		resp = append(resp, inventoryToResponse(&invs[i], name))
	}
	return resp, nil
}

func (s *stockService) ListRefills(ctx context.Context, t Tenant, itemID uuid.UUID) ([]model.ItemRefill, error) {
	if _, err := s.items.FindByID(ctx, t.OwnerID, itemID); err != nil {
		return nil, notFoundOr(err)
	}
	return s.items.ListRefills(ctx, t.OwnerID, itemID)
}

// notFoundOr translates a gorm missing-record error into the business
// ErrNotFound; anything else passes through untouched.
func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func inventoryToResponse(inv *model.ShopInventory, itemName string) dto.ShopInventoryResponse {
	return dto.ShopInventoryResponse{
		ID:           inv.ID.String(),
		ShopID:       inv.ShopID.String(),
		ItemID:       inv.ItemID.String(),
		ItemName:     itemName,
		Quantity:     inv.Quantity,
		SellingPrice: inv.SellingPrice,
	}
}
