package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Nes-cmd/merkedube/internal/dto"
	"github.com/Nes-cmd/merkedube/internal/ledger"
	"github.com/Nes-cmd/merkedube/internal/model"
	"github.com/Nes-cmd/merkedube/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreditService applies payments against outstanding balances. One contract
// covers both creditable aggregates; the kind switch is exhaustive so a new
// variant cannot be forgotten silently.
//
// Settlement is intentionally NOT idempotent: applying the same amount twice
// pays twice and appends two history rows. Callers must not blindly retry.
type CreditService interface {
	Settle(ctx context.Context, t Tenant, ref model.CreditableRef, req dto.SettleRequest) (*dto.SettlementResponse, error)
	Decline(ctx context.Context, t Tenant, ref model.CreditableRef) error
	ListCredits(ctx context.Context, t Tenant, filter dto.CreditFilter) (*dto.CreditListResponse, error)
	History(ctx context.Context, t Tenant, ref model.CreditableRef) ([]dto.CreditHistoryResponse, error)
}

type creditService struct {
	credits repository.CreditRepository
	sales   repository.SaleRepository
	items   repository.ItemRepository
}

func NewCreditService(
	credits repository.CreditRepository,
	sales repository.SaleRepository,
	items repository.ItemRepository,
) CreditService {
	return &creditService{credits: credits, sales: sales, items: items}
}

func (s *creditService) Settle(ctx context.Context, t Tenant, ref model.CreditableRef, req dto.SettleRequest) (*dto.SettlementResponse, error) {
	switch ref.Kind {
	case model.CreditableSale:
		return s.settleSale(ctx, t, ref.ID, req)
	case model.CreditableItem:
		return s.settleItem(ctx, t, ref.ID, req)
	default:
		return nil, fmt.Errorf("unknown creditable kind %q", ref.Kind)
	}
}

// settleSale mutates the sale's paid/credit columns, mirrors the remaining
// balance onto the CreditSale record, and appends the history row — all in
// one transaction.
func (s *creditService) settleSale(ctx context.Context, t Tenant, saleID uuid.UUID, req dto.SettleRequest) (*dto.SettlementResponse, error) {
	var sale *model.Sale

	txErr := runTx(ctx, s.sales.DB(), func(tx *gorm.DB) error {
		var err error
		sale, err = s.sales.FindByIDForUpdate(tx, t.OwnerID, saleID)
		if err != nil {
			return notFoundOr(err)
		}

		newPaid, newCredit, err := ledger.ApplyPayment(sale.Paid, sale.Credit, req.Amount)
		if err != nil {
			return err
		}

		sale.Paid = newPaid
		sale.Credit = newCredit
		if newCredit.IsZero() {
			sale.PaymentStatus = model.PaymentCompleted
		} else {
			sale.PaymentStatus = model.PaymentPartial
		}
		if err := s.sales.SaveTx(tx, sale); err != nil {
			return err
		}

		// Mirror onto the CreditSale record; absent for fully-paid sales.
		cs, err := s.credits.FindBySaleIDForUpdate(tx, t.OwnerID, saleID)
		if err == nil {
			cs.Remaining = newCredit
			if newCredit.IsZero() {
				cs.Status = model.CreditApproved
			}
			if err := s.credits.SaveCreditSaleTx(tx, cs); err != nil {
				return err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		return s.credits.CreateHistoryTx(tx, &model.CreditHistory{
			CreditableType: model.CreditableSale,
			CreditableID:   saleID,
			Value:          req.Amount,
			ApproverID:     t.UserID,
			Note:           req.Note,
			OwnerID:        t.OwnerID,
		})
	})
	if txErr != nil {
		return nil, txErr
	}

	return &dto.SettlementResponse{
		Kind:          string(model.CreditableSale),
		AggregateID:   saleID.String(),
		Paid:          sale.Paid,
		Credit:        sale.Credit,
		PaymentStatus: string(sale.PaymentStatus),
	}, nil
}

func (s *creditService) settleItem(ctx context.Context, t Tenant, itemID uuid.UUID, req dto.SettleRequest) (*dto.SettlementResponse, error) {
	var item *model.Item

	txErr := runTx(ctx, s.items.DB(), func(tx *gorm.DB) error {
		var err error
		item, err = s.items.FindByIDForUpdate(tx, t.OwnerID, itemID)
		if err != nil {
			return notFoundOr(err)
		}

		newPaid, newCredit, err := ledger.ApplyPayment(item.Paid, item.Credit, req.Amount)
		if err != nil {
			return err
		}

		item.Paid = newPaid
		item.Credit = newCredit
		if newCredit.IsZero() {
			item.Status = model.PaymentCompleted
		} else {
			item.Status = model.PaymentPartial
		}
		if err := s.items.SaveTx(tx, item); err != nil {
			return err
		}

		return s.credits.CreateHistoryTx(tx, &model.CreditHistory{
			CreditableType: model.CreditableItem,
			CreditableID:   itemID,
			Value:          req.Amount,
			ApproverID:     t.UserID,
			Note:           req.Note,
			OwnerID:        t.OwnerID,
		})
	})
	if txErr != nil {
		return nil, txErr
	}

	return &dto.SettlementResponse{
		Kind:          string(model.CreditableItem),
		AggregateID:   itemID.String(),
		Paid:          item.Paid,
		Credit:        item.Credit,
		PaymentStatus: string(item.Status),
	}, nil
}

// Decline marks an unsettled balance as declined. Completed aggregates stay
// completed; the state machine only moves forward.
func (s *creditService) Decline(ctx context.Context, t Tenant, ref model.CreditableRef) error {
	switch ref.Kind {
	case model.CreditableSale:
		return runTx(ctx, s.sales.DB(), func(tx *gorm.DB) error {
			sale, err := s.sales.FindByIDForUpdate(tx, t.OwnerID, ref.ID)
			if err != nil {
				return notFoundOr(err)
			}
			if sale.PaymentStatus == model.PaymentCompleted {
				return ErrAlreadyCompleted
			}
			sale.PaymentStatus = model.PaymentDeclined
			return s.sales.SaveTx(tx, sale)
		})
	case model.CreditableItem:
		return runTx(ctx, s.items.DB(), func(tx *gorm.DB) error {
			item, err := s.items.FindByIDForUpdate(tx, t.OwnerID, ref.ID)
			if err != nil {
				return notFoundOr(err)
			}
			if item.Status == model.PaymentCompleted {
				return ErrAlreadyCompleted
			}
			item.Status = model.PaymentDeclined
			return s.items.SaveTx(tx, item)
		})
	default:
		return fmt.Errorf("unknown creditable kind %q", ref.Kind)
	}
}

func (s *creditService) ListCredits(ctx context.Context, t Tenant, filter dto.CreditFilter) (*dto.CreditListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	credits, total, err := s.credits.List(ctx, t.OwnerID, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.CreditSaleResponse, 0, len(credits))
	for i := range credits {
		data = append(data, *creditSaleToResponse(&credits[i]))
	}
	return &dto.CreditListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *creditService) History(ctx context.Context, t Tenant, ref model.CreditableRef) ([]dto.CreditHistoryResponse, error) {
	rows, err := s.credits.ListHistory(ctx, t.OwnerID, ref)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CreditHistoryResponse, 0, len(rows))
	for _, h := range rows {
		resp = append(resp, dto.CreditHistoryResponse{
			ID:         h.ID.String(),
			Value:      h.Value,
			ApproverID: h.ApproverID.String(),
			Note:       h.Note,
			CreatedAt:  h.CreatedAt,
		})
	}
	return resp, nil
}
