package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateItemRequest struct {
	Name            string           `json:"name"             validate:"required"`
	UnitPrice       decimal.Decimal  `json:"unit_price"       validate:"required,gt=0"`
	PurchasePrice   decimal.Decimal  `json:"purchase_price"   validate:"min=0"`
	Quantity        int              `json:"quantity"         validate:"min=0"`
	CategoryID      string           `json:"category_id"      validate:"required,uuid"`
	SupplierID      *string          `json:"supplier_id"      validate:"omitempty,uuid"`
	BatchNumber     *string          `json:"batch_number"`
	ManufactureDate *time.Time       `json:"manufacture_date"`
	ExpiryDate      *time.Time       `json:"expiry_date"`
}

type UpdateItemRequest struct {
	Name       string           `json:"name"`
	UnitPrice  *decimal.Decimal `json:"unit_price"  validate:"omitempty,gt=0"`
	CategoryID *string          `json:"category_id" validate:"omitempty,uuid"`
	SupplierID *string          `json:"supplier_id" validate:"omitempty,uuid"`
}

type ItemFilter struct {
	Name       string `form:"name"`
	CategoryID string `form:"category_id"`
	Active     string `form:"active"` // "false" = inactive, "all" = everything, default active
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type ItemResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	PurchasePrice   decimal.Decimal `json:"purchase_price"`
	Quantity        int             `json:"quantity"`
	Paid            decimal.Decimal `json:"paid"`
	Credit          decimal.Decimal `json:"credit"`
	Status          string          `json:"status"`
	CategoryID      string          `json:"category_id"`
	SupplierID      *string         `json:"supplier_id,omitempty"`
	RefillCount     int             `json:"refill_count"`
	LastRefillDate  *time.Time      `json:"last_refill_date,omitempty"`
	BatchNumber     *string         `json:"batch_number,omitempty"`
	ManufactureDate *time.Time      `json:"manufacture_date,omitempty"`
	ExpiryDate      *time.Time      `json:"expiry_date,omitempty"`
	Active          bool            `json:"active"`
}

type ItemListResponse struct {
	Data  []ItemResponse `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

// AdjustQuantityRequest nudges a stock count up or down. Zero is pointless,
// so it is rejected at validation.
type AdjustQuantityRequest struct {
	Delta int `json:"delta" validate:"required"`
}

// RefillRequest appends a restock event to a warehouse item. Optional batch
// and pricing metadata overwrite the item's fields only when supplied.
type RefillRequest struct {
	Quantity        int              `json:"quantity"         validate:"required,min=1"`
	PurchasePrice   *decimal.Decimal `json:"purchase_price"   validate:"omitempty,gt=0"`
	SupplierID      *string          `json:"supplier_id"      validate:"omitempty,uuid"`
	BatchNumber     *string          `json:"batch_number"`
	ManufactureDate *time.Time       `json:"manufacture_date"`
	ExpiryDate      *time.Time       `json:"expiry_date"`
	Notes           *string          `json:"notes"`
}

type RefillResponse struct {
	ID             string     `json:"id"`
	ItemID         string     `json:"item_id"`
	Quantity       int        `json:"quantity"`
	NewQuantity    int        `json:"new_quantity"`
	RefillCount    int        `json:"refill_count"`
	LastRefillDate *time.Time `json:"last_refill_date"`
	CreatedAt      time.Time  `json:"created_at"`
}
