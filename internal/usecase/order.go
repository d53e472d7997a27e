package usecase

import (
	"context"

	domainErrors "github.com/cardafy/cardafy/internal/domain/errors"
	"github.com/cardafy/cardafy/internal/domain/model"
	"github.com/cardafy/cardafy/internal/domain/repository"
)

// OrderUseCase encapsulates the order lifecycle. Status only ever moves
// Pending -> Delivered -> Completed, one step per call.
type OrderUseCase struct {
	orders repository.OrderRepository
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository) *OrderUseCase {
	return &OrderUseCase{orders: orders}
}

// List returns all orders sorted by order time.
func (u *OrderUseCase) List(ctx context.Context) ([]model.Order, error) {
	return u.orders.List(ctx)
}

// Get returns a single order by its locking transaction hash.
func (u *OrderUseCase) Get(ctx context.Context, txID string) (*model.Order, error) {
	if !ValidateTxHash(txID) {
		return nil, domainErrors.ErrInvalidTxHash
	}
	return u.orders.GetByTxID(ctx, txID)
}

// Advance moves the order to its unique next status. Terminal and
// unrecognized statuses are rejected.
func (u *OrderUseCase) Advance(ctx context.Context, txID string) (*model.Order, error) {
	if !ValidateTxHash(txID) {
		return nil, domainErrors.ErrInvalidTxHash
	}
	return u.orders.Advance(ctx, txID)
}

// Delete removes an order row.
func (u *OrderUseCase) Delete(ctx context.Context, txID string) error {
	if !ValidateTxHash(txID) {
		return domainErrors.ErrInvalidTxHash
	}
	return u.orders.Delete(ctx, txID)
}

// SelectUnconfirmed returns orders whose locking transaction has not been
// observed on-chain yet.
func (u *OrderUseCase) SelectUnconfirmed(ctx context.Context, limit int) ([]model.Order, error) {
	return u.orders.SelectUnconfirmed(ctx, limit)
}

// MarkConfirmed records that the locking transaction is visible on-chain.
func (u *OrderUseCase) MarkConfirmed(ctx context.Context, txID string) error {
	return u.orders.MarkConfirmed(ctx, txID)
}
