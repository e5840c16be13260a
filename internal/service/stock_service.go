package service

import (
	"context"

	"github.com/monooki-app/monooki-backend/internal/access"
	"github.com/monooki-app/monooki-backend/internal/identity"
	"github.com/monooki-app/monooki-backend/internal/model"
	"github.com/monooki-app/monooki-backend/internal/pagination"
	"github.com/monooki-app/monooki-backend/internal/repository"
)

// StockPage bundles a history page with the derived current quantity.
type StockPage struct {
	Page     pagination.Page[model.StockHistory]
	Quantity int64
}

type StockService interface {
	Add(ctx context.Context, ident *identity.Identity, itemID uint64, quantity int, note *string) (*model.StockHistory, error)
	List(ctx context.Context, ident *identity.Identity, itemID uint64) ([]model.StockHistory, int64, error)
	ListPage(ctx context.Context, ident *identity.Identity, itemID uint64, p pagination.Params) (*StockPage, error)
	Delete(ctx context.Context, ident *identity.Identity, entryID uint64) error
	Quantity(ctx context.Context, itemID uint64) (int64, error)
}

type stockService struct {
	stocks repository.StockHistoryRepository
	items  repository.ItemRepository
}

func NewStockService(stocks repository.StockHistoryRepository, items repository.ItemRepository) StockService {
	return &stockService{stocks: stocks, items: items}
}

func (s *stockService) ownedItem(ctx context.Context, ident *identity.Identity, itemID uint64) (*model.Item, error) {
	if !ident.Authenticated() {
		return nil, ErrUnauthorized
	}
	item, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !access.CanMutate(ident, item.OwnerUserID) {
		return nil, ErrForbidden
	}
	return item, nil
}

func (s *stockService) Add(ctx context.Context, ident *identity.Identity, itemID uint64, quantity int, note *string) (*model.StockHistory, error) {
	if _, err := s.ownedItem(ctx, ident, itemID); err != nil {
		return nil, err
	}
	h := &model.StockHistory{
		OwnerUserID: ident.UserID,
		ItemID:      itemID,
		Quantity:    quantity,
		Note:        note,
	}
	if err := s.stocks.Create(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

func (s *stockService) List(ctx context.Context, ident *identity.Identity, itemID uint64) ([]model.StockHistory, int64, error) {
	if _, err := s.ownedItem(ctx, ident, itemID); err != nil {
		return nil, 0, err
	}
	hs, err := s.stocks.ListByItem(ctx, itemID)
	if err != nil {
		return nil, 0, err
	}
	qty, err := s.stocks.SumByItem(ctx, itemID)
	if err != nil {
		return nil, 0, err
	}
	return hs, qty, nil
}

func (s *stockService) ListPage(ctx context.Context, ident *identity.Identity, itemID uint64, p pagination.Params) (*StockPage, error) {
	if _, err := s.ownedItem(ctx, ident, itemID); err != nil {
		return nil, err
	}
	page, err := s.stocks.ListPageByItem(ctx, itemID, p)
	if err != nil {
		return nil, err
	}
	qty, err := s.stocks.SumByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return &StockPage{Page: page, Quantity: qty}, nil
}

func (s *stockService) Delete(ctx context.Context, ident *identity.Identity, entryID uint64) error {
	if !ident.Authenticated() {
		return ErrUnauthorized
	}
	entry, err := s.stocks.FindByID(ctx, entryID)
	if err != nil {
		if repository.IsNotFound(err) {
			return ErrNotFound
		}
		return err
	}
	if !access.CanMutate(ident, entry.OwnerUserID) {
		return ErrForbidden
	}
	return s.stocks.Delete(ctx, entryID)
}

func (s *stockService) Quantity(ctx context.Context, itemID uint64) (int64, error) {
	return s.stocks.SumByItem(ctx, itemID)
}
