package repository

import (
	"context"

	"github.com/Nes-cmd/merkedube/internal/dto"
	"github.com/Nes-cmd/merkedube/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ItemRepository defines data access for warehouse stock records. Every
// method takes the tenant's ownerID explicitly; rows of other tenants are
// invisible. Services depend on this interface, not on the concrete GORM
// implementation, enabling clean unit testing via stubs.
type ItemRepository interface {
	Create(ctx context.Context, it *model.Item) error
	FindByID(ctx context.Context, ownerID, id uuid.UUID) (*model.Item, error)
	List(ctx context.Context, ownerID uuid.UUID, filter dto.ItemFilter) ([]model.Item, int64, error)
	Update(ctx context.Context, it *model.Item) error
	SoftDelete(ctx context.Context, ownerID, id uuid.UUID) error

	// Used inside transactions — callers must pass the tx instance.
	// FindByIDForUpdate acquires a row lock (SELECT ... FOR UPDATE) so the
	// quantity check and the mutation cannot race.
	FindByIDForUpdate(tx *gorm.DB, ownerID, id uuid.UUID) (*model.Item, error)
	SaveTx(tx *gorm.DB, it *model.Item) error
	AdjustQuantityTx(tx *gorm.DB, id uuid.UUID, delta int) error
	CreateRefillTx(tx *gorm.DB, r *model.ItemRefill) error

	ListRefills(ctx context.Context, ownerID, itemID uuid.UUID) ([]model.ItemRefill, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type itemRepo struct{ db *gorm.DB }

func NewItemRepository(db *gorm.DB) ItemRepository { return &itemRepo{db: db} }

func (r *itemRepo) DB() *gorm.DB { return r.db }

func (r *itemRepo) Create(ctx context.Context, it *model.Item) error {
	return r.db.WithContext(ctx).Create(it).Error
}

func (r *itemRepo) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*model.Item, error) {
	var it model.Item
	err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&it).Error
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *itemRepo) List(ctx context.Context, ownerID uuid.UUID, filter dto.ItemFilter) ([]model.Item, int64, error) {
	var items []model.Item
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Item{}).Where("owner_id = ?", ownerID)

	switch filter.Active {
	case "false":
		q = q.Where("active = false")
	case "all":
		// no filter
	default:
		q = q.Where("active = true")
	}
	if filter.Name != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.CategoryID != "" {
		q = q.Where("category_id = ?", filter.CategoryID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("name ASC").Limit(filter.Limit).Offset(offset).Find(&items).Error
	return items, total, err
}

func (r *itemRepo) Update(ctx context.Context, it *model.Item) error {
	return r.db.WithContext(ctx).Save(it).Error
}

func (r *itemRepo) SoftDelete(ctx context.Context, ownerID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Model(&model.Item{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Update("active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *itemRepo) FindByIDForUpdate(tx *gorm.DB, ownerID, id uuid.UUID) (*model.Item, error) {
	var it model.Item
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&it).Error
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *itemRepo) SaveTx(tx *gorm.DB, it *model.Item) error {
	return tx.Save(it).Error
}

func (r *itemRepo) AdjustQuantityTx(tx *gorm.DB, id uuid.UUID, delta int) error {
	return tx.Model(&model.Item{}).Where("id = ?", id).
		Update("quantity", gorm.Expr("quantity + ?", delta)).Error
}

func (r *itemRepo) CreateRefillTx(tx *gorm.DB, refill *model.ItemRefill) error {
	return tx.Create(refill).Error
}

func (r *itemRepo) ListRefills(ctx context.Context, ownerID, itemID uuid.UUID) ([]model.ItemRefill, error) {
	var refills []model.ItemRefill
	err := r.db.WithContext(ctx).
		Where("item_id = ? AND owner_id = ?", itemID, ownerID).
		Order("created_at DESC").
		Find(&refills).Error
	return refills, err
}
