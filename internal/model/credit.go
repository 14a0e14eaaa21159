package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreditSale status values.
const (
	CreditPending  = "pending"
	CreditApproved = "approved"
)

// CreditSale is the single source of truth for a sale's outstanding debt.
// Remaining decreases on every settlement; Sale.Paid/Credit mirror it inside
// the same transaction and are never written independently.
type CreditSale struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	CustomerID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Remaining  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DueDate    time.Time       `gorm:"not null;index"`
	Status     string          `gorm:"type:varchar(20);not null;default:'pending'"`
	OwnerID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Sale     *Sale     `gorm:"foreignKey:SaleID"`
	Customer *Customer `gorm:"foreignKey:CustomerID"`
}

// CreditableKind tags which aggregate a settlement targets. Keeping it a
// closed enum lets the settlement handler switch exhaustively instead of
// trusting a free-form (string, id) pair.
type CreditableKind string

const (
	CreditableItem CreditableKind = "item"
	CreditableSale CreditableKind = "sale"
)

// CreditableRef points at the aggregate whose credit balance is being settled.
type CreditableRef struct {
	Kind CreditableKind
	ID   uuid.UUID
}

// CreditHistory is the append-only record of payments applied against an
// item's or sale's credit balance.
type CreditHistory struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreditableType CreditableKind  `gorm:"type:varchar(10);not null;index:idx_creditable"`
	CreditableID   uuid.UUID       `gorm:"type:uuid;not null;index:idx_creditable"`
	Value          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ApproverID     uuid.UUID       `gorm:"type:uuid;not null"`
	Note           *string
	OwnerID        uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt      time.Time
}

// TableName overrides GORM's default pluralization.
func (CreditHistory) TableName() string { return "credit_histories" }

// Ref returns the typed reference this history row was recorded against.
func (h *CreditHistory) Ref() CreditableRef {
	return CreditableRef{Kind: h.CreditableType, ID: h.CreditableID}
}
