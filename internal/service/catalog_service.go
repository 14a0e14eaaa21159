package service

import (
	"context"

	"github.com/Nes-cmd/merkedube/internal/dto"
	"github.com/Nes-cmd/merkedube/internal/model"
	"github.com/Nes-cmd/merkedube/internal/repository"

	"github.com/google/uuid"
)

// CatalogService covers the thin CRUD entities: shops, categories, suppliers.
type CatalogService interface {
	CreateShop(ctx context.Context, t Tenant, req dto.CreateShopRequest) (*dto.ShopResponse, error)
	GetShop(ctx context.Context, t Tenant, id uuid.UUID) (*dto.ShopResponse, error)
	ListShops(ctx context.Context, t Tenant) ([]dto.ShopResponse, error)
	UpdateShop(ctx context.Context, t Tenant, id uuid.UUID, req dto.UpdateShopRequest) (*dto.ShopResponse, error)
	DeactivateShop(ctx context.Context, t Tenant, id uuid.UUID) error

	CreateCategory(ctx context.Context, t Tenant, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	ListCategories(ctx context.Context, t Tenant) ([]dto.CategoryResponse, error)
	DeleteCategory(ctx context.Context, t Tenant, id uuid.UUID) error

	CreateSupplier(ctx context.Context, t Tenant, req dto.CreateSupplierRequest) (*dto.SupplierResponse, error)
	ListSuppliers(ctx context.Context, t Tenant) ([]dto.SupplierResponse, error)
	DeleteSupplier(ctx context.Context, t Tenant, id uuid.UUID) error
}

type catalogService struct {
	shops      repository.ShopRepository
	categories repository.CategoryRepository
	suppliers  repository.SupplierRepository
}

func NewCatalogService(
	shops repository.ShopRepository,
	categories repository.CategoryRepository,
	suppliers repository.SupplierRepository,
) CatalogService {
	return &catalogService{shops: shops, categories: categories, suppliers: suppliers}
}

func (s *catalogService) CreateShop(ctx context.Context, t Tenant, req dto.CreateShopRequest) (*dto.ShopResponse, error) {
	shop := &model.Shop{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		OwnerID: t.OwnerID,
		Active:  true,
	}
	if err := s.shops.Create(ctx, shop); err != nil {
		return nil, err
	}
	resp := shopToResponse(shop)
	return &resp, nil
}

func (s *catalogService) GetShop(ctx context.Context, t Tenant, id uuid.UUID) (*dto.ShopResponse, error) {
	shop, err := s.shops.FindByID(ctx, t.OwnerID, id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	resp := shopToResponse(shop)
	return &resp, nil
}

func (s *catalogService) ListShops(ctx context.Context, t Tenant) ([]dto.ShopResponse, error) {
	shops, err := s.shops.List(ctx, t.OwnerID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ShopResponse, 0, len(shops))
	for i := range shops {
		resp = append(resp, shopToResponse(&shops[i]))
	}
	return resp, nil
}

func (s *catalogService) UpdateShop(ctx context.Context, t Tenant, id uuid.UUID, req dto.UpdateShopRequest) (*dto.ShopResponse, error) {
	shop, err := s.shops.FindByID(ctx, t.OwnerID, id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	if req.Name != "" {
		shop.Name = req.Name
	}
	if req.Address != nil {
		shop.Address = req.Address
	}
	if req.Phone != nil {
		shop.Phone = req.Phone
	}
	if err := s.shops.Update(ctx, shop); err != nil {
		return nil, err
	}
	resp := shopToResponse(shop)
	return &resp, nil
}

func (s *catalogService) DeactivateShop(ctx context.Context, t Tenant, id uuid.UUID) error {
	return notFoundOr(s.shops.SoftDelete(ctx, t.OwnerID, id))
}

func (s *catalogService) CreateCategory(ctx context.Context, t Tenant, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	c := &model.Category{Name: req.Name, OwnerID: t.OwnerID}
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, err
	}
	return &dto.CategoryResponse{ID: c.ID.String(), Name: c.Name}, nil
}

func (s *catalogService) ListCategories(ctx context.Context, t Tenant) ([]dto.CategoryResponse, error) {
	cats, err := s.categories.List(ctx, t.OwnerID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CategoryResponse, 0, len(cats))
	for _, c := range cats {
		resp = append(resp, dto.CategoryResponse{ID: c.ID.String(), Name: c.Name})
	}
	return resp, nil
}

func (s *catalogService) DeleteCategory(ctx context.Context, t Tenant, id uuid.UUID) error {
	return notFoundOr(s.categories.Delete(ctx, t.OwnerID, id))
}

func (s *catalogService) CreateSupplier(ctx context.Context, t Tenant, req dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	sup := &model.Supplier{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
		OwnerID: t.OwnerID,
	}
	if err := s.suppliers.Create(ctx, sup); err != nil {
		return nil, err
	}
	resp := supplierToResponse(sup)
	return &resp, nil
}

func (s *catalogService) ListSuppliers(ctx context.Context, t Tenant) ([]dto.SupplierResponse, error) {
	suppliers, err := s.suppliers.List(ctx, t.OwnerID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.SupplierResponse, 0, len(suppliers))
	for i := range suppliers {
		resp = append(resp, supplierToResponse(&suppliers[i]))
	}
	return resp, nil
}

func (s *catalogService) DeleteSupplier(ctx context.Context, t Tenant, id uuid.UUID) error {
	return notFoundOr(s.suppliers.Delete(ctx, t.OwnerID, id))
}

func shopToResponse(shop *model.Shop) dto.ShopResponse {
	return dto.ShopResponse{
		ID:      shop.ID.String(),
		Name:    shop.Name,
		Address: shop.Address,
		Phone:   shop.Phone,
		Active:  shop.Active,
	}
}

func supplierToResponse(s *model.Supplier) dto.SupplierResponse {
	return dto.SupplierResponse{
		ID:      s.ID.String(),
		Name:    s.Name,
		Phone:   s.Phone,
		Email:   s.Email,
		Address: s.Address,
	}
}
