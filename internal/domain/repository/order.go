package repository

import (
	"context"

	"github.com/cardafy/cardafy/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	Create(ctx context.Context, order model.Order) (*model.Order, error)
	GetByTxID(ctx context.Context, txID string) (*model.Order, error)
	List(ctx context.Context) ([]model.Order, error)
	Advance(ctx context.Context, txID string) (*model.Order, error)
	Delete(ctx context.Context, txID string) error
	SelectUnconfirmed(ctx context.Context, limit int) ([]model.Order, error)
	MarkConfirmed(ctx context.Context, txID string) error
}
