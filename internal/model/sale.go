package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale is the aggregate for one checkout: totals, the paid/credit split and
// the payment status. Shop sales carry ShopID plus line items; a direct
// warehouse sale carries ItemID instead.
type Sale struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ShopID        *uuid.UUID      `gorm:"type:uuid;index"`
	ItemID        *uuid.UUID      `gorm:"type:uuid;index"`
	CustomerID    *uuid.UUID      `gorm:"type:uuid;index"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Paid          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Credit        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PaymentStatus PaymentStatus   `gorm:"type:varchar(20);not null"`
	Note          *string
	SoldBy        uuid.UUID `gorm:"type:uuid;not null"`
	SoldAt        time.Time `gorm:"not null;index"`
	OwnerID       uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Items    []SaleItem `gorm:"foreignKey:SaleID"`
	Shop     *Shop      `gorm:"foreignKey:ShopID"`
	Customer *Customer  `gorm:"foreignKey:CustomerID"`
}

// SaleItem is one cart line. Immutable after creation.
type SaleItem struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity int             `gorm:"not null"`
	Price    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Total    decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Item *Item `gorm:"foreignKey:ItemID"`
}
