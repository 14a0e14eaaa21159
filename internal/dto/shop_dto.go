package dto

import "github.com/shopspring/decimal"

type CreateShopRequest struct {
	Name    string  `json:"name" validate:"required"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
}

type UpdateShopRequest struct {
	Name    string  `json:"name"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
}

type ShopResponse struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Address *string `json:"address,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Active  bool    `json:"active"`
}

// TransferRequest moves stock from the warehouse item into a shop allocation.
type TransferRequest struct {
	ItemID       string          `json:"item_id"       validate:"required,uuid"`
	Quantity     int             `json:"quantity"      validate:"required,min=1"`
	SellingPrice decimal.Decimal `json:"selling_price" validate:"required,gt=0"`
}

type ShopInventoryResponse struct {
	ID           string          `json:"id"`
	ShopID       string          `json:"shop_id"`
	ItemID       string          `json:"item_id"`
	ItemName     string          `json:"item_name,omitempty"`
	Quantity     int             `json:"quantity"`
	SellingPrice decimal.Decimal `json:"selling_price"`
}

// TransferResponse reports both sides of the paired mutation so clients can
// verify the conservation invariant.
type TransferResponse struct {
	Inventory         ShopInventoryResponse `json:"inventory"`
	WarehouseQuantity int                   `json:"warehouse_quantity"`
}
