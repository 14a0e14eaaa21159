package service_test

import (
	"context"

	"github.com/Nes-cmd/merkedube/internal/dto"
	"github.com/Nes-cmd/merkedube/internal/model"
	"github.com/Nes-cmd/merkedube/internal/repository"
	"github.com/Nes-cmd/merkedube/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory repository stubs. Tx methods accept the nil *gorm.DB that
// services pass when DB() returns nil, and misses return
// gorm.ErrRecordNotFound so the services' not-found translation kicks in.

// ── Items ─────────────────────────────────────────────────────────────────────

type stubItemRepo struct {
	items   map[uuid.UUID]*model.Item
	refills []model.ItemRefill
}

func newStubItemRepo() *stubItemRepo {
	return &stubItemRepo{items: make(map[uuid.UUID]*model.Item)}
}

func (r *stubItemRepo) Create(_ context.Context, it *model.Item) error {
	if it.ID == uuid.Nil {
		it.ID = uuid.New()
	}
	r.items[it.ID] = it
	return nil
}

func (r *stubItemRepo) find(ownerID, id uuid.UUID) (*model.Item, error) {
	it, ok := r.items[id]
	if !ok || it.OwnerID != ownerID {
		return nil, gorm.ErrRecordNotFound
	}
	return it, nil
}

func (r *stubItemRepo) FindByID(_ context.Context, ownerID, id uuid.UUID) (*model.Item, error) {
	return r.find(ownerID, id)
}

func (r *stubItemRepo) List(_ context.Context, ownerID uuid.UUID, _ dto.ItemFilter) ([]model.Item, int64, error) {
	var out []model.Item
	for _, it := range r.items {
		if it.OwnerID == ownerID {
			out = append(out, *it)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubItemRepo) Update(_ context.Context, it *model.Item) error {
	r.items[it.ID] = it
	return nil
}

func (r *stubItemRepo) SoftDelete(_ context.Context, ownerID, id uuid.UUID) error {
	it, err := r.find(ownerID, id)
	if err != nil {
		return err
	}
	it.Active = false
	return nil
}

func (r *stubItemRepo) FindByIDForUpdate(_ *gorm.DB, ownerID, id uuid.UUID) (*model.Item, error) {
	return r.find(ownerID, id)
}

func (r *stubItemRepo) SaveTx(_ *gorm.DB, it *model.Item) error {
	r.items[it.ID] = it
	return nil
}

func (r *stubItemRepo) AdjustQuantityTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	it, ok := r.items[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	it.Quantity += delta
	return nil
}

func (r *stubItemRepo) CreateRefillTx(_ *gorm.DB, rf *model.ItemRefill) error {
	if rf.ID == uuid.Nil {
		rf.ID = uuid.New()
	}
	r.refills = append(r.refills, *rf)
	return nil
}

func (r *stubItemRepo) ListRefills(_ context.Context, ownerID, itemID uuid.UUID) ([]model.ItemRefill, error) {
	var out []model.ItemRefill
	for _, rf := range r.refills {
		if rf.OwnerID == ownerID && rf.ItemID == itemID {
			out = append(out, rf)
		}
	}
	return out, nil
}

func (r *stubItemRepo) DB() *gorm.DB { return nil }

var _ repository.ItemRepository = (*stubItemRepo)(nil)

// ── Shop inventory ────────────────────────────────────────────────────────────

type stubInventoryRepo struct {
	invs map[uuid.UUID]*model.ShopInventory
}

func newStubInventoryRepo() *stubInventoryRepo {
	return &stubInventoryRepo{invs: make(map[uuid.UUID]*model.ShopInventory)}
}

func (r *stubInventoryRepo) find(ownerID, id uuid.UUID) (*model.ShopInventory, error) {
	inv, ok := r.invs[id]
	if !ok || inv.OwnerID != ownerID {
		return nil, gorm.ErrRecordNotFound
	}
	return inv, nil
}

func (r *stubInventoryRepo) FindByID(_ context.Context, ownerID, id uuid.UUID) (*model.ShopInventory, error) {
	return r.find(ownerID, id)
}

func (r *stubInventoryRepo) ListByShop(_ context.Context, ownerID, shopID uuid.UUID) ([]model.ShopInventory, error) {
	var out []model.ShopInventory
	for _, inv := range r.invs {
		if inv.OwnerID == ownerID && inv.ShopID == shopID {
			out = append(out, *inv)
		}
	}
	return out, nil
}

func (r *stubInventoryRepo) SumQuantityForItem(_ context.Context, ownerID, itemID uuid.UUID) (int, error) {
	sum := 0
	for _, inv := range r.invs {
		if inv.OwnerID == ownerID && inv.ItemID == itemID {
			sum += inv.Quantity
		}
	}
	return sum, nil
}

func (r *stubInventoryRepo) FindByIDForUpdate(_ *gorm.DB, ownerID, id uuid.UUID) (*model.ShopInventory, error) {
	return r.find(ownerID, id)
}

func (r *stubInventoryRepo) FindOrCreateForUpdate(_ *gorm.DB, ownerID, shopID, itemID uuid.UUID) (*model.ShopInventory, error) {
	for _, inv := range r.invs {
		if inv.OwnerID == ownerID && inv.ShopID == shopID && inv.ItemID == itemID {
			return inv, nil
		}
	}
	inv := &model.ShopInventory{
		ID:      uuid.New(),
		ShopID:  shopID,
		ItemID:  itemID,
		OwnerID: ownerID,
	}
	r.invs[inv.ID] = inv
	return inv, nil
}

func (r *stubInventoryRepo) SaveTx(_ *gorm.DB, inv *model.ShopInventory) error {
	r.invs[inv.ID] = inv
	return nil
}

func (r *stubInventoryRepo) AdjustQuantityTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	inv, ok := r.invs[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	inv.Quantity += delta
	return nil
}

func (r *stubInventoryRepo) DB() *gorm.DB { return nil }

var _ repository.ShopInventoryRepository = (*stubInventoryRepo)(nil)

// ── Sales ─────────────────────────────────────────────────────────────────────

type stubSaleRepo struct {
	sales map[uuid.UUID]*model.Sale
}

func newStubSaleRepo() *stubSaleRepo {
	return &stubSaleRepo{sales: make(map[uuid.UUID]*model.Sale)}
}

func (r *stubSaleRepo) Create(_ context.Context, _ *gorm.DB, s *model.Sale) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.sales[s.ID] = s
	return nil
}

func (r *stubSaleRepo) find(ownerID, id uuid.UUID) (*model.Sale, error) {
	s, ok := r.sales[id]
	if !ok || s.OwnerID != ownerID {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubSaleRepo) FindByID(_ context.Context, ownerID, id uuid.UUID) (*model.Sale, error) {
	return r.find(ownerID, id)
}

func (r *stubSaleRepo) List(_ context.Context, ownerID uuid.UUID, _ dto.SaleFilter) ([]model.Sale, int64, error) {
	var out []model.Sale
	for _, s := range r.sales {
		if s.OwnerID == ownerID {
			out = append(out, *s)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubSaleRepo) CountByCustomer(_ context.Context, ownerID, customerID uuid.UUID) (int64, error) {
	var n int64
	for _, s := range r.sales {
		if s.OwnerID == ownerID && s.CustomerID != nil && *s.CustomerID == customerID {
			n++
		}
	}
	return n, nil
}

func (r *stubSaleRepo) FindByIDForUpdate(_ *gorm.DB, ownerID, id uuid.UUID) (*model.Sale, error) {
	return r.find(ownerID, id)
}

func (r *stubSaleRepo) SaveTx(_ *gorm.DB, s *model.Sale) error {
	r.sales[s.ID] = s
	return nil
}

func (r *stubSaleRepo) DB() *gorm.DB { return nil }

var _ repository.SaleRepository = (*stubSaleRepo)(nil)

// ── Credits ───────────────────────────────────────────────────────────────────

type stubCreditRepo struct {
	credits map[uuid.UUID]*model.CreditSale // keyed by SaleID
	history []model.CreditHistory
}

func newStubCreditRepo() *stubCreditRepo {
	return &stubCreditRepo{credits: make(map[uuid.UUID]*model.CreditSale)}
}

func (r *stubCreditRepo) find(ownerID, saleID uuid.UUID) (*model.CreditSale, error) {
	cs, ok := r.credits[saleID]
	if !ok || cs.OwnerID != ownerID {
		return nil, gorm.ErrRecordNotFound
	}
	return cs, nil
}

func (r *stubCreditRepo) FindBySaleID(_ context.Context, ownerID, saleID uuid.UUID) (*model.CreditSale, error) {
	return r.find(ownerID, saleID)
}

func (r *stubCreditRepo) List(_ context.Context, ownerID uuid.UUID, _ dto.CreditFilter) ([]model.CreditSale, int64, error) {
	var out []model.CreditSale
	for _, cs := range r.credits {
		if cs.OwnerID == ownerID && cs.Remaining.IsPositive() {
			out = append(out, *cs)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubCreditRepo) ListHistory(_ context.Context, ownerID uuid.UUID, ref model.CreditableRef) ([]model.CreditHistory, error) {
	var out []model.CreditHistory
	for _, h := range r.history {
		if h.OwnerID == ownerID && h.CreditableType == ref.Kind && h.CreditableID == ref.ID {
			out = append(out, h)
		}
	}
	return out, nil
}

func (r *stubCreditRepo) CreateCreditSaleTx(_ *gorm.DB, cs *model.CreditSale) error {
	if cs.ID == uuid.Nil {
		cs.ID = uuid.New()
	}
	r.credits[cs.SaleID] = cs
	return nil
}

func (r *stubCreditRepo) FindBySaleIDForUpdate(_ *gorm.DB, ownerID, saleID uuid.UUID) (*model.CreditSale, error) {
	return r.find(ownerID, saleID)
}

func (r *stubCreditRepo) SaveCreditSaleTx(_ *gorm.DB, cs *model.CreditSale) error {
	r.credits[cs.SaleID] = cs
	return nil
}

func (r *stubCreditRepo) CreateHistoryTx(_ *gorm.DB, h *model.CreditHistory) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	r.history = append(r.history, *h)
	return nil
}

func (r *stubCreditRepo) DB() *gorm.DB { return nil }

var _ repository.CreditRepository = (*stubCreditRepo)(nil)

// ── Catalog ───────────────────────────────────────────────────────────────────

type stubShopRepo struct {
	shops map[uuid.UUID]*model.Shop
}

func newStubShopRepo() *stubShopRepo {
	return &stubShopRepo{shops: make(map[uuid.UUID]*model.Shop)}
}

func (r *stubShopRepo) Create(_ context.Context, s *model.Shop) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.shops[s.ID] = s
	return nil
}

func (r *stubShopRepo) FindByID(_ context.Context, ownerID, id uuid.UUID) (*model.Shop, error) {
	s, ok := r.shops[id]
	if !ok || s.OwnerID != ownerID {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubShopRepo) List(_ context.Context, ownerID uuid.UUID) ([]model.Shop, error) {
	var out []model.Shop
	for _, s := range r.shops {
		if s.OwnerID == ownerID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *stubShopRepo) Update(_ context.Context, s *model.Shop) error {
	r.shops[s.ID] = s
	return nil
}

func (r *stubShopRepo) SoftDelete(_ context.Context, ownerID, id uuid.UUID) error {
	s, ok := r.shops[id]
	if !ok || s.OwnerID != ownerID {
		return gorm.ErrRecordNotFound
	}
	s.Active = false
	return nil
}

var _ repository.ShopRepository = (*stubShopRepo)(nil)

type stubCustomerRepo struct {
	customers map[uuid.UUID]*model.Customer
}

func newStubCustomerRepo() *stubCustomerRepo {
	return &stubCustomerRepo{customers: make(map[uuid.UUID]*model.Customer)}
}

func (r *stubCustomerRepo) Create(_ context.Context, c *model.Customer) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.customers[c.ID] = c
	return nil
}

func (r *stubCustomerRepo) FindByID(_ context.Context, ownerID, id uuid.UUID) (*model.Customer, error) {
	c, ok := r.customers[id]
	if !ok || c.OwnerID != ownerID {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCustomerRepo) List(_ context.Context, ownerID uuid.UUID) ([]model.Customer, error) {
	var out []model.Customer
	for _, c := range r.customers {
		if c.OwnerID == ownerID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubCustomerRepo) Update(_ context.Context, c *model.Customer) error {
	r.customers[c.ID] = c
	return nil
}

func (r *stubCustomerRepo) Delete(_ context.Context, ownerID, id uuid.UUID) error {
	c, ok := r.customers[id]
	if !ok || c.OwnerID != ownerID {
		return gorm.ErrRecordNotFound
	}
	delete(r.customers, id)
	return nil
}

var _ repository.CustomerRepository = (*stubCustomerRepo)(nil)

// ── Seed helpers ──────────────────────────────────────────────────────────────

func testTenant() service.Tenant {
	return service.Tenant{UserID: uuid.New(), OwnerID: uuid.New()}
}

func seedItem(r *stubItemRepo, ownerID uuid.UUID, name string, qty int, unitPrice float64) *model.Item {
	it := &model.Item{
		ID:         uuid.New(),
		Name:       name,
		UnitPrice:  decimal.NewFromFloat(unitPrice),
		Quantity:   qty,
		Status:     model.PaymentPending,
		CategoryID: uuid.New(),
		OwnerID:    ownerID,
		Active:     true,
	}
	r.items[it.ID] = it
	return it
}

func seedShop(r *stubShopRepo, ownerID uuid.UUID, name string) *model.Shop {
	s := &model.Shop{ID: uuid.New(), Name: name, OwnerID: ownerID, Active: true}
	r.shops[s.ID] = s
	return s
}

func seedCustomer(r *stubCustomerRepo, ownerID uuid.UUID, name string) *model.Customer {
	c := &model.Customer{ID: uuid.New(), Name: name, OwnerID: ownerID}
	r.customers[c.ID] = c
	return c
}

func seedInventory(r *stubInventoryRepo, ownerID, shopID, itemID uuid.UUID, qty int, price float64) *model.ShopInventory {
	inv := &model.ShopInventory{
		ID:           uuid.New(),
		ShopID:       shopID,
		ItemID:       itemID,
		Quantity:     qty,
		SellingPrice: decimal.NewFromFloat(price),
		OwnerID:      ownerID,
	}
	r.invs[inv.ID] = inv
	return inv
}
