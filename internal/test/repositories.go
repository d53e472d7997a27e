package test

import (
	"context"

	domainErrors "github.com/cardafy/cardafy/internal/domain/errors"
	"github.com/cardafy/cardafy/internal/domain/model"
)

// OrderRepositoryStub stores orders in-memory and allows tests to override
// individual operations.
type OrderRepositoryStub struct {
	CreateFn            func(context.Context, model.Order) (*model.Order, error)
	GetByTxIDFn         func(context.Context, string) (*model.Order, error)
	ListFn              func(context.Context) ([]model.Order, error)
	AdvanceFn           func(context.Context, string) (*model.Order, error)
	DeleteFn            func(context.Context, string) error
	SelectUnconfirmedFn func(context.Context, int) ([]model.Order, error)
	MarkConfirmedFn     func(context.Context, string) error

	Orders    []model.Order
	Created   []model.Order
	Deleted   []string
	Confirmed []string
}

// Create appends unless the tx id is already present.
func (s *OrderRepositoryStub) Create(ctx context.Context, order model.Order) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	for _, o := range s.Orders {
		if o.TxID == order.TxID {
			return nil, domainErrors.ErrAlreadyExists
		}
	}
	s.Orders = append(s.Orders, order)
	s.Created = append(s.Created, order)
	return &order, nil
}

// GetByTxID returns the matching order or not found.
func (s *OrderRepositoryStub) GetByTxID(ctx context.Context, txID string) (*model.Order, error) {
	if s.GetByTxIDFn != nil {
		return s.GetByTxIDFn(ctx, txID)
	}
	for _, o := range s.Orders {
		if o.TxID == txID {
			order := o
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// List returns all stored orders.
func (s *OrderRepositoryStub) List(ctx context.Context) ([]model.Order, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	return s.Orders, nil
}

// Advance moves the stored order one lifecycle step.
func (s *OrderRepositoryStub) Advance(ctx context.Context, txID string) (*model.Order, error) {
	if s.AdvanceFn != nil {
		return s.AdvanceFn(ctx, txID)
	}
	for i, o := range s.Orders {
		if o.TxID != txID {
			continue
		}
		next, ok := model.NextStatus(o.Status)
		if !ok {
			return nil, domainErrors.ErrInvalidTransition
		}
		s.Orders[i].Status = next
		order := s.Orders[i]
		return &order, nil
	}
	return nil, domainErrors.ErrNotFound
}

// Delete removes the stored order.
func (s *OrderRepositoryStub) Delete(ctx context.Context, txID string) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, txID)
	}
	for i, o := range s.Orders {
		if o.TxID == txID {
			s.Orders = append(s.Orders[:i], s.Orders[i+1:]...)
			s.Deleted = append(s.Deleted, txID)
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// SelectUnconfirmed returns stored orders without a confirmation mark.
func (s *OrderRepositoryStub) SelectUnconfirmed(ctx context.Context, limit int) ([]model.Order, error) {
	if s.SelectUnconfirmedFn != nil {
		return s.SelectUnconfirmedFn(ctx, limit)
	}
	var out []model.Order
	for _, o := range s.Orders {
		if o.ConfirmedAt == nil {
			out = append(out, o)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// MarkConfirmed records the confirmation call.
func (s *OrderRepositoryStub) MarkConfirmed(ctx context.Context, txID string) error {
	if s.MarkConfirmedFn != nil {
		return s.MarkConfirmedFn(ctx, txID)
	}
	s.Confirmed = append(s.Confirmed, txID)
	return nil
}

// CartRepositoryStub stores cart lines in-memory for tests.
type CartRepositoryStub struct {
	AddFn           func(context.Context, model.CartItem) (*model.CartItem, error)
	ListByAddressFn func(context.Context, string) ([]model.CartItem, error)
	DeleteByIDFn    func(context.Context, int64) error

	Items   []model.CartItem
	Next    int64
	Deleted []int64
}

// Add assigns an id and stores the line.
func (s *CartRepositoryStub) Add(ctx context.Context, item model.CartItem) (*model.CartItem, error) {
	if s.AddFn != nil {
		return s.AddFn(ctx, item)
	}
	if s.Next == 0 {
		s.Next = 1
	}
	item.ID = s.Next
	s.Next++
	s.Items = append(s.Items, item)
	return &item, nil
}

// ListByAddress returns the wallet's stored lines.
func (s *CartRepositoryStub) ListByAddress(ctx context.Context, address string) ([]model.CartItem, error) {
	if s.ListByAddressFn != nil {
		return s.ListByAddressFn(ctx, address)
	}
	var out []model.CartItem
	for _, item := range s.Items {
		if item.Address == address {
			out = append(out, item)
		}
	}
	return out, nil
}

// DeleteByID removes the stored line.
func (s *CartRepositoryStub) DeleteByID(ctx context.Context, id int64) error {
	if s.DeleteByIDFn != nil {
		return s.DeleteByIDFn(ctx, id)
	}
	for i, item := range s.Items {
		if item.ID == id {
			s.Items = append(s.Items[:i], s.Items[i+1:]...)
			s.Deleted = append(s.Deleted, id)
			return nil
		}
	}
	return domainErrors.ErrNotFound
}
