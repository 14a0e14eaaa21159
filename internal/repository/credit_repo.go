package repository

import (
	"context"

	"github.com/Nes-cmd/merkedube/internal/dto"
	"github.com/Nes-cmd/merkedube/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreditRepository persists the outstanding-debt record (CreditSale) and the
// append-only settlement trail (CreditHistory).
type CreditRepository interface {
	FindBySaleID(ctx context.Context, ownerID, saleID uuid.UUID) (*model.CreditSale, error)
	List(ctx context.Context, ownerID uuid.UUID, filter dto.CreditFilter) ([]model.CreditSale, int64, error)
	ListHistory(ctx context.Context, ownerID uuid.UUID, ref model.CreditableRef) ([]model.CreditHistory, error)

	CreateCreditSaleTx(tx *gorm.DB, cs *model.CreditSale) error
	FindBySaleIDForUpdate(tx *gorm.DB, ownerID, saleID uuid.UUID) (*model.CreditSale, error)
	SaveCreditSaleTx(tx *gorm.DB, cs *model.CreditSale) error
	CreateHistoryTx(tx *gorm.DB, h *model.CreditHistory) error

	DB() *gorm.DB
}

type creditRepo struct{ db *gorm.DB }

func NewCreditRepository(db *gorm.DB) CreditRepository { return &creditRepo{db: db} }

func (r *creditRepo) DB() *gorm.DB { return r.db }

func (r *creditRepo) FindBySaleID(ctx context.Context, ownerID, saleID uuid.UUID) (*model.CreditSale, error) {
	var cs model.CreditSale
	err := r.db.WithContext(ctx).
		Where("sale_id = ? AND owner_id = ?", saleID, ownerID).
		First(&cs).Error
	if err != nil {
		return nil, err
	}
	return &cs, nil
}

func (r *creditRepo) List(ctx context.Context, ownerID uuid.UUID, filter dto.CreditFilter) ([]model.CreditSale, int64, error) {
	var credits []model.CreditSale
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.CreditSale{}).Where("owner_id = ?", ownerID)

	switch filter.Status {
	case "all":
		// no filter
	case "":
		// Default: outstanding balances only.
		q = q.Where("remaining > 0")
	default:
		q = q.Where("status = ?", filter.Status)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Customer").
		Order("due_date ASC").
		Offset(offset).Limit(filter.Limit).
		Find(&credits).Error
	return credits, total, err
}

func (r *creditRepo) ListHistory(ctx context.Context, ownerID uuid.UUID, ref model.CreditableRef) ([]model.CreditHistory, error) {
	var history []model.CreditHistory
	err := r.db.WithContext(ctx).
		Where("creditable_type = ? AND creditable_id = ? AND owner_id = ?", ref.Kind, ref.ID, ownerID).
		Order("created_at ASC").
		Find(&history).Error
	return history, err
}

func (r *creditRepo) CreateCreditSaleTx(tx *gorm.DB, cs *model.CreditSale) error {
	return tx.Create(cs).Error
}

func (r *creditRepo) FindBySaleIDForUpdate(tx *gorm.DB, ownerID, saleID uuid.UUID) (*model.CreditSale, error) {
	var cs model.CreditSale
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("sale_id = ? AND owner_id = ?", saleID, ownerID).
		First(&cs).Error
	if err != nil {
		return nil, err
	}
	return &cs, nil
}

func (r *creditRepo) SaveCreditSaleTx(tx *gorm.DB, cs *model.CreditSale) error {
	return tx.Save(cs).Error
}

func (r *creditRepo) CreateHistoryTx(tx *gorm.DB, h *model.CreditHistory) error {
	return tx.Create(h).Error
}
