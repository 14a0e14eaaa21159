package service

import (
	"context"
	"time"

	"github.com/Nes-cmd/merkedube/internal/dto"
	"github.com/Nes-cmd/merkedube/internal/infra"
	"github.com/Nes-cmd/merkedube/internal/ledger"
	"github.com/Nes-cmd/merkedube/internal/model"
	"github.com/Nes-cmd/merkedube/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SaleService interface {
	CreateSale(ctx context.Context, t Tenant, req dto.CreateSaleRequest) (*dto.SaleResponse, error)
	SellDirect(ctx context.Context, t Tenant, itemID uuid.UUID, req dto.DirectSaleRequest) (*dto.SaleResponse, error)
	GetSale(ctx context.Context, t Tenant, id uuid.UUID) (*dto.SaleResponse, error)
	ListSales(ctx context.Context, t Tenant, filter dto.SaleFilter) (*dto.SaleListResponse, error)
	Receipt(ctx context.Context, t Tenant, id uuid.UUID) ([]byte, error)
}

type saleService struct {
	sales       repository.SaleRepository
	inventories repository.ShopInventoryRepository
	items       repository.ItemRepository
	credits     repository.CreditRepository
	customers   repository.CustomerRepository
	shops       repository.ShopRepository
	dueDays     int
}

func NewSaleService(
	sales repository.SaleRepository,
	inventories repository.ShopInventoryRepository,
	items repository.ItemRepository,
	credits repository.CreditRepository,
	customers repository.CustomerRepository,
	shops repository.ShopRepository,
	creditDueDays int,
) SaleService {
	return &saleService{
		sales:       sales,
		inventories: inventories,
		items:       items,
		credits:     credits,
		customers:   customers,
		shops:       shops,
		dueDays:     creditDueDays,
	}
}

// CreateSale runs the full checkout:
//  1. resolve and validate every line against its shop inventory row
//  2. compute total, the paid/credit split and the payment status
//  3. require a customer when credit remains
//  4. inside ONE transaction: re-lock each inventory row, re-check
//     availability, persist the sale aggregate with its lines, decrement
//     stock, and create the CreditSale when credit remains
//
// Any failure rolls back every mutation from the same call.
func (s *saleService) CreateSale(ctx context.Context, t Tenant, req dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	shopID, err := uuid.Parse(req.ShopID)
	if err != nil {
		return nil, ErrNotFound
	}
	if _, err := s.shops.FindByID(ctx, t.OwnerID, shopID); err != nil {
		return nil, notFoundOr(err)
	}

	type resolvedLine struct {
		inventoryID uuid.UUID
		itemID      uuid.UUID
		quantity    int
		price       decimal.Decimal
		total       decimal.Decimal
	}

	// Pre-flight validation outside the transaction: reject bad requests
	// before any write begins.
	resolved := make([]resolvedLine, 0, len(req.Lines))
	total := decimal.Zero
	for _, line := range req.Lines {
		invID, err := uuid.Parse(line.InventoryID)
		if err != nil {
			return nil, ErrInvalidLineItem
		}
		itemID, err := uuid.Parse(line.ItemID)
		if err != nil {
			return nil, ErrInvalidLineItem
		}

		inv, err := s.inventories.FindByID(ctx, t.OwnerID, invID)
		if err != nil {
			return nil, notFoundOr(err)
		}
		if inv.ShopID != shopID || inv.ItemID != itemID {
			return nil, ErrInvalidLineItem
		}
		if inv.Quantity < line.Quantity {
			return nil, ErrInsufficientStock
		}

		lineTotal := ledger.LineTotal(line.Price, line.Quantity)
		total = total.Add(lineTotal)
		resolved = append(resolved, resolvedLine{
			inventoryID: invID,
			itemID:      itemID,
			quantity:    line.Quantity,
			price:       line.Price,
			total:       lineTotal,
		})
	}

	credit := ledger.CreditFor(total, req.AmountPaid)
	paid := total.Sub(credit)
	status := model.PaymentStatus(ledger.StatusFor(credit))

	var customerID *uuid.UUID
	if req.CustomerID != nil {
		cid, err := uuid.Parse(*req.CustomerID)
		if err != nil {
			return nil, ErrNotFound
		}
		if _, err := s.customers.FindByID(ctx, t.OwnerID, cid); err != nil {
			return nil, notFoundOr(err)
		}
		customerID = &cid
	}
	if credit.IsPositive() && customerID == nil {
		return nil, ErrCustomerRequired
	}

	var sale model.Sale
	var creditSale *model.CreditSale

	txErr := runTx(ctx, s.sales.DB(), func(tx *gorm.DB) error {
		sale = model.Sale{
			ShopID:        &shopID,
			CustomerID:    customerID,
			Total:         total,
			Paid:          paid,
			Credit:        credit,
			PaymentStatus: status,
			Note:          req.Note,
			SoldBy:        t.UserID,
			SoldAt:        time.Now(),
			OwnerID:       t.OwnerID,
		}
		for _, r := range resolved {
			sale.Items = append(sale.Items, model.SaleItem{
				ItemID:   r.itemID,
				Quantity: r.quantity,
				Price:    r.price,
				Total:    r.total,
			})
		}
		if err := s.sales.Create(ctx, tx, &sale); err != nil {
			return err
		}

		// Decrement stock under row locks; the availability re-check guards
		// against a concurrent sale that slipped between pre-flight and here.
		for _, r := range resolved {
			inv, err := s.inventories.FindByIDForUpdate(tx, t.OwnerID, r.inventoryID)
			if err != nil {
				return notFoundOr(err)
			}
			if inv.Quantity < r.quantity {
				return ErrInsufficientStock
			}
			if err := s.inventories.AdjustQuantityTx(tx, r.inventoryID, -r.quantity); err != nil {
				return err
			}
		}

		if credit.IsPositive() {
			creditSale = &model.CreditSale{
				SaleID:     sale.ID,
				CustomerID: *customerID,
				Amount:     credit,
				Remaining:  credit,
				DueDate:    time.Now().AddDate(0, 0, s.dueDays),
				Status:     model.CreditPending,
				OwnerID:    t.OwnerID,
			}
			if err := s.credits.CreateCreditSaleTx(tx, creditSale); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return saleToResponse(&sale, creditSale), nil
}

// SellDirect records a warehouse sale keyed to a single item: units leave
// Item.Quantity directly and any unpaid remainder accrues on the item's own
// paid/credit balance (settled later via the item settlement path).
func (s *saleService) SellDirect(ctx context.Context, t Tenant, itemID uuid.UUID, req dto.DirectSaleRequest) (*dto.SaleResponse, error) {
	if req.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	var customerID *uuid.UUID
	if req.CustomerID != nil {
		cid, err := uuid.Parse(*req.CustomerID)
		if err != nil {
			return nil, ErrNotFound
		}
		if _, err := s.customers.FindByID(ctx, t.OwnerID, cid); err != nil {
			return nil, notFoundOr(err)
		}
		customerID = &cid
	}

	var sale model.Sale

	txErr := runTx(ctx, s.sales.DB(), func(tx *gorm.DB) error {
		item, err := s.items.FindByIDForUpdate(tx, t.OwnerID, itemID)
		if err != nil {
			return notFoundOr(err)
		}
		if item.Quantity < req.Quantity {
			return ErrInsufficientStock
		}

		price := item.UnitPrice
		if req.Price != nil {
			price = *req.Price
		}
		total := ledger.LineTotal(price, req.Quantity)
		credit := ledger.CreditFor(total, req.AmountPaid)
		paid := total.Sub(credit)
		if credit.IsPositive() && customerID == nil {
			return ErrCustomerRequired
		}

		sale = model.Sale{
			ItemID:        &itemID,
			CustomerID:    customerID,
			Total:         total,
			Paid:          paid,
			Credit:        credit,
			PaymentStatus: model.PaymentStatus(ledger.StatusFor(credit)),
			Note:          req.Note,
			SoldBy:        t.UserID,
			SoldAt:        time.Now(),
			OwnerID:       t.OwnerID,
		}
		sale.Items = append(sale.Items, model.SaleItem{
			ItemID:   itemID,
			Quantity: req.Quantity,
			Price:    price,
			Total:    total,
		})
		if err := s.sales.Create(ctx, tx, &sale); err != nil {
			return err
		}

		item.Quantity -= req.Quantity
		item.Paid = item.Paid.Add(paid)
		item.Credit = item.Credit.Add(credit)
		if item.Credit.IsPositive() {
			item.Status = model.PaymentPartial
		} else {
			item.Status = model.PaymentCompleted
		}
		return s.items.SaveTx(tx, item)
	})
	if txErr != nil {
		return nil, txErr
	}

	return saleToResponse(&sale, nil), nil
}

func (s *saleService) GetSale(ctx context.Context, t Tenant, id uuid.UUID) (*dto.SaleResponse, error) {
	sale, err := s.sales.FindByID(ctx, t.OwnerID, id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	var creditSale *model.CreditSale
	if cs, err := s.credits.FindBySaleID(ctx, t.OwnerID, sale.ID); err == nil {
		creditSale = cs
	}
	return saleToResponse(sale, creditSale), nil
}

func (s *saleService) ListSales(ctx context.Context, t Tenant, filter dto.SaleFilter) (*dto.SaleListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	sales, total, err := s.sales.List(ctx, t.OwnerID, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		data = append(data, *saleToResponse(&sales[i], nil))
	}
	return &dto.SaleListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *saleService) Receipt(ctx context.Context, t Tenant, id uuid.UUID) ([]byte, error) {
	sale, err := s.sales.FindByID(ctx, t.OwnerID, id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	name := "Merke Dube"
	if sale.Shop != nil {
		name = sale.Shop.Name
	}
	return infra.RenderReceiptPDF(name, sale)
}

func saleToResponse(sale *model.Sale, creditSale *model.CreditSale) *dto.SaleResponse {
	lines := make([]dto.SaleLineResponse, 0, len(sale.Items))
	for _, li := range sale.Items {
		name := ""
		if li.Item != nil {
			name = li.Item.Name
		}
		lines = append(lines, dto.SaleLineResponse{
			ItemID:   li.ItemID.String(),
			ItemName: name,
			Quantity: li.Quantity,
			Price:    li.Price,
			Total:    li.Total,
		})
	}

	resp := &dto.SaleResponse{
		ID:            sale.ID.String(),
		Lines:         lines,
		Total:         sale.Total,
		Paid:          sale.Paid,
		Credit:        sale.Credit,
		PaymentStatus: string(sale.PaymentStatus),
		Note:          sale.Note,
		SoldAt:        sale.SoldAt,
	}
	if sale.ShopID != nil {
		v := sale.ShopID.String()
		resp.ShopID = &v
	}
	if sale.CustomerID != nil {
		v := sale.CustomerID.String()
		resp.CustomerID = &v
	}
	if creditSale != nil {
		resp.CreditSale = creditSaleToResponse(creditSale)
	}
	return resp
}

func creditSaleToResponse(cs *model.CreditSale) *dto.CreditSaleResponse {
	return &dto.CreditSaleResponse{
		ID:         cs.ID.String(),
		SaleID:     cs.SaleID.String(),
		CustomerID: cs.CustomerID.String(),
		Amount:     cs.Amount,
		Remaining:  cs.Remaining,
		DueDate:    cs.DueDate,
		Status:     cs.Status,
	}
}
