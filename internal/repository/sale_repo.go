package repository

import (
	"context"

	"github.com/Nes-cmd/merkedube/internal/dto"
	"github.com/Nes-cmd/merkedube/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SaleRepository interface {
	Create(ctx context.Context, tx *gorm.DB, s *model.Sale) error
	FindByID(ctx context.Context, ownerID, id uuid.UUID) (*model.Sale, error)
	List(ctx context.Context, ownerID uuid.UUID, filter dto.SaleFilter) ([]model.Sale, int64, error)
	CountByCustomer(ctx context.Context, ownerID, customerID uuid.UUID) (int64, error)

	FindByIDForUpdate(tx *gorm.DB, ownerID, id uuid.UUID) (*model.Sale, error)
	SaveTx(tx *gorm.DB, s *model.Sale) error

	DB() *gorm.DB
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) DB() *gorm.DB { return r.db }

func (r *saleRepo) Create(ctx context.Context, tx *gorm.DB, s *model.Sale) error {
	return tx.WithContext(ctx).Create(s).Error
}

func (r *saleRepo) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*model.Sale, error) {
	var s model.Sale
	err := r.db.WithContext(ctx).
		Preload("Items.Item").Preload("Shop").Preload("Customer").
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *saleRepo) List(ctx context.Context, ownerID uuid.UUID, filter dto.SaleFilter) ([]model.Sale, int64, error) {
	var sales []model.Sale
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Sale{}).Where("owner_id = ?", ownerID)

	if filter.Status != "" && filter.Status != "all" {
		q = q.Where("payment_status = ?", filter.Status)
	}
	if filter.ShopID != "" {
		q = q.Where("shop_id = ?", filter.ShopID)
	}
	if filter.Date != "" {
		q = q.Where("DATE(sold_at) = ?", filter.Date)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Items.Item").
		Order("sold_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&sales).Error
	return sales, total, err
}

func (r *saleRepo) CountByCustomer(ctx context.Context, ownerID, customerID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Where("customer_id = ? AND owner_id = ?", customerID, ownerID).
		Count(&n).Error
	return n, err
}

func (r *saleRepo) FindByIDForUpdate(tx *gorm.DB, ownerID, id uuid.UUID) (*model.Sale, error) {
	var s model.Sale
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *saleRepo) SaveTx(tx *gorm.DB, s *model.Sale) error {
	return tx.Save(s).Error
}
