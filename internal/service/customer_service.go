package service

import (
	"context"

	"github.com/Nes-cmd/merkedube/internal/dto"
	"github.com/Nes-cmd/merkedube/internal/model"
	"github.com/Nes-cmd/merkedube/internal/repository"

	"github.com/google/uuid"
)

type CustomerService interface {
	Create(ctx context.Context, t Tenant, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error)
	Get(ctx context.Context, t Tenant, id uuid.UUID) (*dto.CustomerResponse, error)
	List(ctx context.Context, t Tenant) ([]dto.CustomerResponse, error)
	Update(ctx context.Context, t Tenant, id uuid.UUID, req dto.UpdateCustomerRequest) (*dto.CustomerResponse, error)
	Delete(ctx context.Context, t Tenant, id uuid.UUID) error
}

type customerService struct {
	customers repository.CustomerRepository
	sales     repository.SaleRepository
}

func NewCustomerService(customers repository.CustomerRepository, sales repository.SaleRepository) CustomerService {
	return &customerService{customers: customers, sales: sales}
}

func (s *customerService) Create(ctx context.Context, t Tenant, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	c := &model.Customer{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
		Notes:   req.Notes,
		OwnerID: t.OwnerID,
	}
	if err := s.customers.Create(ctx, c); err != nil {
		return nil, err
	}
	resp := customerToResponse(c)
	return &resp, nil
}

func (s *customerService) Get(ctx context.Context, t Tenant, id uuid.UUID) (*dto.CustomerResponse, error) {
	c, err := s.customers.FindByID(ctx, t.OwnerID, id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	resp := customerToResponse(c)
	return &resp, nil
}

func (s *customerService) List(ctx context.Context, t Tenant) ([]dto.CustomerResponse, error) {
	customers, err := s.customers.List(ctx, t.OwnerID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CustomerResponse, 0, len(customers))
	for i := range customers {
		resp = append(resp, customerToResponse(&customers[i]))
	}
	return resp, nil
}

func (s *customerService) Update(ctx context.Context, t Tenant, id uuid.UUID, req dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	c, err := s.customers.FindByID(ctx, t.OwnerID, id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	if req.Name != "" {
		c.Name = req.Name
	}
	if req.Phone != nil {
		c.Phone = req.Phone
	}
	if req.Email != nil {
		c.Email = req.Email
	}
	if req.Address != nil {
		c.Address = req.Address
	}
	if req.Notes != nil {
		c.Notes = req.Notes
	}
	if err := s.customers.Update(ctx, c); err != nil {
		return nil, err
	}
	resp := customerToResponse(c)
	return &resp, nil
}

// Delete removes a customer unless sales still reference it.
func (s *customerService) Delete(ctx context.Context, t Tenant, id uuid.UUID) error {
	if _, err := s.customers.FindByID(ctx, t.OwnerID, id); err != nil {
		return notFoundOr(err)
	}
	n, err := s.sales.CountByCustomer(ctx, t.OwnerID, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrCustomerHasSales
	}
	return notFoundOr(s.customers.Delete(ctx, t.OwnerID, id))
}

func customerToResponse(c *model.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:      c.ID.String(),
		Name:    c.Name,
		Phone:   c.Phone,
		Email:   c.Email,
		Address: c.Address,
		Notes:   c.Notes,
	}
}
