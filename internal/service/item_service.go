package service

import (
	"context"

	"github.com/Nes-cmd/merkedube/internal/dto"
	"github.com/Nes-cmd/merkedube/internal/model"
	"github.com/Nes-cmd/merkedube/internal/repository"

	"github.com/google/uuid"
)

type ItemService interface {
	Create(ctx context.Context, t Tenant, req dto.CreateItemRequest) (*dto.ItemResponse, error)
	Get(ctx context.Context, t Tenant, id uuid.UUID) (*dto.ItemResponse, error)
	List(ctx context.Context, t Tenant, filter dto.ItemFilter) (*dto.ItemListResponse, error)
	Update(ctx context.Context, t Tenant, id uuid.UUID, req dto.UpdateItemRequest) (*dto.ItemResponse, error)
	Deactivate(ctx context.Context, t Tenant, id uuid.UUID) error
}

type itemService struct {
	items      repository.ItemRepository
	categories repository.CategoryRepository
	suppliers  repository.SupplierRepository
}

func NewItemService(
	items repository.ItemRepository,
	categories repository.CategoryRepository,
	suppliers repository.SupplierRepository,
) ItemService {
	return &itemService{items: items, categories: categories, suppliers: suppliers}
}

func (s *itemService) Create(ctx context.Context, t Tenant, req dto.CreateItemRequest) (*dto.ItemResponse, error) {
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, ErrNotFound
	}
	if _, err := s.categories.FindByID(ctx, t.OwnerID, categoryID); err != nil {
		return nil, notFoundOr(err)
	}

	var supplierID *uuid.UUID
	if req.SupplierID != nil {
		sid, err := uuid.Parse(*req.SupplierID)
		if err != nil {
			return nil, ErrNotFound
		}
		if _, err := s.suppliers.FindByID(ctx, t.OwnerID, sid); err != nil {
			return nil, notFoundOr(err)
		}
		supplierID = &sid
	}

	item := &model.Item{
		Name:            req.Name,
		UnitPrice:       req.UnitPrice,
		PurchasePrice:   req.PurchasePrice,
		Quantity:        req.Quantity,
		Status:          model.PaymentPending,
		CategoryID:      categoryID,
		SupplierID:      supplierID,
		OwnerID:         t.OwnerID,
		BatchNumber:     req.BatchNumber,
		ManufactureDate: req.ManufactureDate,
		ExpiryDate:      req.ExpiryDate,
		Active:          true,
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, err
	}
	resp := itemToResponse(item)
	return &resp, nil
}

func (s *itemService) Get(ctx context.Context, t Tenant, id uuid.UUID) (*dto.ItemResponse, error) {
	item, err := s.items.FindByID(ctx, t.OwnerID, id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	resp := itemToResponse(item)
	return &resp, nil
}

func (s *itemService) List(ctx context.Context, t Tenant, filter dto.ItemFilter) (*dto.ItemListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	items, total, err := s.items.List(ctx, t.OwnerID, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ItemResponse, 0, len(items))
	for i := range items {
		data = append(data, itemToResponse(&items[i]))
	}
	return &dto.ItemListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *itemService) Update(ctx context.Context, t Tenant, id uuid.UUID, req dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := s.items.FindByID(ctx, t.OwnerID, id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	if req.Name != "" {
		item.Name = req.Name
	}
	if req.UnitPrice != nil {
		item.UnitPrice = *req.UnitPrice
	}
	if req.CategoryID != nil {
		cid, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, ErrNotFound
		}
		if _, err := s.categories.FindByID(ctx, t.OwnerID, cid); err != nil {
			return nil, notFoundOr(err)
		}
		item.CategoryID = cid
	}
	if req.SupplierID != nil {
		sid, err := uuid.Parse(*req.SupplierID)
		if err != nil {
			return nil, ErrNotFound
		}
		if _, err := s.suppliers.FindByID(ctx, t.OwnerID, sid); err != nil {
			return nil, notFoundOr(err)
		}
		item.SupplierID = &sid
	}
	if err := s.items.Update(ctx, item); err != nil {
		return nil, err
	}
	resp := itemToResponse(item)
	return &resp, nil
}

func (s *itemService) Deactivate(ctx context.Context, t Tenant, id uuid.UUID) error {
	return notFoundOr(s.items.SoftDelete(ctx, t.OwnerID, id))
}

func itemToResponse(item *model.Item) dto.ItemResponse {
	resp := dto.ItemResponse{
		ID:              item.ID.String(),
		Name:            item.Name,
		UnitPrice:       item.UnitPrice,
		PurchasePrice:   item.PurchasePrice,
		Quantity:        item.Quantity,
		Paid:            item.Paid,
		Credit:          item.Credit,
		Status:          string(item.Status),
		CategoryID:      item.CategoryID.String(),
		RefillCount:     item.RefillCount,
		LastRefillDate:  item.LastRefillDate,
		BatchNumber:     item.BatchNumber,
		ManufactureDate: item.ManufactureDate,
		ExpiryDate:      item.ExpiryDate,
		Active:          item.Active,
	}
	if item.SupplierID != nil {
		v := item.SupplierID.String()
		resp.SupplierID = &v
	}
	return resp
}
