package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

// SaleLineRequest references both the shop inventory row and the item it is
// expected to hold; the orchestrator rejects mismatched triples.
type SaleLineRequest struct {
	ItemID      string          `json:"item_id"      validate:"required,uuid"`
	InventoryID string          `json:"inventory_id" validate:"required,uuid"`
	Quantity    int             `json:"quantity"     validate:"required,min=1"`
	Price       decimal.Decimal `json:"price"        validate:"required"`
}

type CreateSaleRequest struct {
	ShopID     string            `json:"shop_id"     validate:"required,uuid"`
	CustomerID *string           `json:"customer_id" validate:"omitempty,uuid"`
	Lines      []SaleLineRequest `json:"lines"       validate:"required,min=1,dive"`
	AmountPaid decimal.Decimal   `json:"amount_paid" validate:"min=0"`
	Note       *string           `json:"note"`
}

// DirectSaleRequest sells straight from the warehouse item, bypassing shop
// allocations. Price defaults to the item's unit price when omitted.
type DirectSaleRequest struct {
	Quantity   int              `json:"quantity"    validate:"required,min=1"`
	Price      *decimal.Decimal `json:"price"       validate:"omitempty,gt=0"`
	AmountPaid decimal.Decimal  `json:"amount_paid" validate:"min=0"`
	CustomerID *string          `json:"customer_id" validate:"omitempty,uuid"`
	Note       *string          `json:"note"`
}

// ─── Filter / List ──────────────────────────────────────────────────────────

type SaleFilter struct {
	Date   string `form:"date"`   // YYYY-MM-DD; empty = today
	Status string `form:"status"` // pending | partial | completed | declined | all
	ShopID string `form:"shop_id"`
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SaleLineResponse struct {
	ItemID   string          `json:"item_id"`
	ItemName string          `json:"item_name,omitempty"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Total    decimal.Decimal `json:"total"`
}

type CreditSaleResponse struct {
	ID         string          `json:"id"`
	SaleID     string          `json:"sale_id"`
	CustomerID string          `json:"customer_id"`
	Amount     decimal.Decimal `json:"amount"`
	Remaining  decimal.Decimal `json:"remaining"`
	DueDate    time.Time       `json:"due_date"`
	Status     string          `json:"status"`
}

type SaleResponse struct {
	ID            string              `json:"id"`
	ShopID        *string             `json:"shop_id,omitempty"`
	CustomerID    *string             `json:"customer_id,omitempty"`
	Lines         []SaleLineResponse  `json:"lines"`
	Total         decimal.Decimal     `json:"total"`
	Paid          decimal.Decimal     `json:"paid"`
	Credit        decimal.Decimal     `json:"credit"`
	PaymentStatus string              `json:"payment_status"`
	Note          *string             `json:"note,omitempty"`
	SoldAt        time.Time           `json:"sold_at"`
	CreditSale    *CreditSaleResponse `json:"credit_sale,omitempty"`
}

type SaleListResponse struct {
	Data  []SaleResponse `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}
