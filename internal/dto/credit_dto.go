package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettleRequest applies a payment against the outstanding credit of a sale
// or an item. The upper bound (amount <= outstanding credit) is enforced by
// the settlement handler, not here, so the caller gets the coded error.
type SettleRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
	Note   *string         `json:"note"`
}

type SettlementResponse struct {
	Kind          string          `json:"kind"` // item | sale
	AggregateID   string          `json:"aggregate_id"`
	Paid          decimal.Decimal `json:"paid"`
	Credit        decimal.Decimal `json:"credit"`
	PaymentStatus string          `json:"payment_status"`
}

type CreditHistoryResponse struct {
	ID         string          `json:"id"`
	Value      decimal.Decimal `json:"value"`
	ApproverID string          `json:"approver_id"`
	Note       *string         `json:"note,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

type CreditListResponse struct {
	Data  []CreditSaleResponse `json:"data"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}

type CreditFilter struct {
	Status string `form:"status"` // pending | approved | all (default: outstanding only)
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}
