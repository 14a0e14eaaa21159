package repository

import (
	"context"
	"errors"

	"github.com/Nes-cmd/merkedube/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ShopInventoryRepository defines data access for per-shop stock allocations.
type ShopInventoryRepository interface {
	FindByID(ctx context.Context, ownerID, id uuid.UUID) (*model.ShopInventory, error)
	ListByShop(ctx context.Context, ownerID, shopID uuid.UUID) ([]model.ShopInventory, error)
	SumQuantityForItem(ctx context.Context, ownerID, itemID uuid.UUID) (int, error)

	// Tx methods — callers must pass the live transaction.
	FindByIDForUpdate(tx *gorm.DB, ownerID, id uuid.UUID) (*model.ShopInventory, error)
	FindOrCreateForUpdate(tx *gorm.DB, ownerID, shopID, itemID uuid.UUID) (*model.ShopInventory, error)
	SaveTx(tx *gorm.DB, inv *model.ShopInventory) error
	AdjustQuantityTx(tx *gorm.DB, id uuid.UUID, delta int) error

	DB() *gorm.DB
}

type shopInventoryRepo struct{ db *gorm.DB }

func NewShopInventoryRepository(db *gorm.DB) ShopInventoryRepository {
	return &shopInventoryRepo{db: db}
}

func (r *shopInventoryRepo) DB() *gorm.DB { return r.db }

func (r *shopInventoryRepo) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*model.ShopInventory, error) {
	var inv model.ShopInventory
	err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&inv).Error
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *shopInventoryRepo) ListByShop(ctx context.Context, ownerID, shopID uuid.UUID) ([]model.ShopInventory, error) {
	var invs []model.ShopInventory
	err := r.db.WithContext(ctx).
		Preload("Item").
		Where("shop_id = ? AND owner_id = ?", shopID, ownerID).
		Find(&invs).Error
	return invs, err
}

func (r *shopInventoryRepo) SumQuantityForItem(ctx context.Context, ownerID, itemID uuid.UUID) (int, error) {
	var sum int64
	err := r.db.WithContext(ctx).Model(&model.ShopInventory{}).
		Where("item_id = ? AND owner_id = ?", itemID, ownerID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&sum).Error
	return int(sum), err
}

func (r *shopInventoryRepo) FindByIDForUpdate(tx *gorm.DB, ownerID, id uuid.UUID) (*model.ShopInventory, error) {
	var inv model.ShopInventory
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&inv).Error
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// FindOrCreateForUpdate returns the locked (shop, item) allocation, creating
// a zero-quantity row when none exists yet so the caller always holds a lock.
func (r *shopInventoryRepo) FindOrCreateForUpdate(tx *gorm.DB, ownerID, shopID, itemID uuid.UUID) (*model.ShopInventory, error) {
	var inv model.ShopInventory
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("shop_id = ? AND item_id = ? AND owner_id = ?", shopID, itemID, ownerID).
		First(&inv).Error
	if err == nil {
		return &inv, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	inv = model.ShopInventory{ShopID: shopID, ItemID: itemID, OwnerID: ownerID}
	if err := tx.Create(&inv).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *shopInventoryRepo) SaveTx(tx *gorm.DB, inv *model.ShopInventory) error {
	return tx.Save(inv).Error
}

func (r *shopInventoryRepo) AdjustQuantityTx(tx *gorm.DB, id uuid.UUID, delta int) error {
	return tx.Model(&model.ShopInventory{}).Where("id = ?", id).
		Update("quantity", gorm.Expr("quantity + ?", delta)).Error
}
