package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus tracks a sale's (or item-level credit's) settlement state.
// Transitions move forward only: Pending → Partial → Completed. Declined is a
// terminal state set by explicit override.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPartial   PaymentStatus = "partial"
	PaymentCompleted PaymentStatus = "completed"
	PaymentDeclined  PaymentStatus = "declined"
)

// Item is the warehouse-level stock record for a product. Quantity is the
// authoritative count held centrally, disjoint from any shop allocations.
// Paid/Credit track the running balance of direct (non-shop) credit sales
// against this item.
type Item struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name          string          `gorm:"not null;index"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PurchasePrice decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Quantity      int             `gorm:"not null;default:0"`
	Paid          decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Credit        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Status        PaymentStatus   `gorm:"type:varchar(20);not null;default:'pending'"`
	CategoryID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	SupplierID    *uuid.UUID      `gorm:"type:uuid;index"`
	OwnerID       uuid.UUID       `gorm:"type:uuid;not null;index"`

	// Refill bookkeeping — stamped by the refill handler.
	RefillCount    int `gorm:"not null;default:0"`
	LastRefillDate *time.Time

	// Batch / expiry metadata, overwritten when a refill supplies new values.
	BatchNumber     *string
	ManufactureDate *time.Time
	ExpiryDate      *time.Time

	Active    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Category *Category `gorm:"foreignKey:CategoryID"`
	Supplier *Supplier `gorm:"foreignKey:SupplierID"`
}

// ShopInventory is the stock of one item allocated to one shop. Quantity here
// is disjoint from Item.Quantity: a transfer moves units between the two, so
// Item.Quantity + sum(allocations) stays constant.
type ShopInventory struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ShopID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_shop_item"`
	ItemID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_shop_item"`
	Quantity     int             `gorm:"not null;default:0"`
	SellingPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	OwnerID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Shop *Shop `gorm:"foreignKey:ShopID"`
	Item *Item `gorm:"foreignKey:ItemID"`
}

// TableName overrides GORM's pluralization (shop_inventories reads better
// than shop_inventorys).
func (ShopInventory) TableName() string { return "shop_inventories" }

// ItemRefill is the append-only restock event log for a warehouse item.
type ItemRefill struct {
	ID              uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ItemID          uuid.UUID        `gorm:"type:uuid;not null;index"`
	Quantity        int              `gorm:"not null"`
	PurchasePrice   *decimal.Decimal `gorm:"type:decimal(12,2)"`
	SupplierID      *uuid.UUID       `gorm:"type:uuid;index"`
	BatchNumber     *string
	ManufactureDate *time.Time
	ExpiryDate      *time.Time
	Notes           *string
	RefilledBy      uuid.UUID `gorm:"type:uuid;not null"`
	OwnerID         uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt       time.Time

	Item *Item `gorm:"foreignKey:ItemID"`
}
