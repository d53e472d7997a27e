package repository

import (
	"context"

	"github.com/cardafy/cardafy/internal/domain/model"
)

// CartRepository describes persistence operations with cart items.
type CartRepository interface {
	Add(ctx context.Context, item model.CartItem) (*model.CartItem, error)
	ListByAddress(ctx context.Context, address string) ([]model.CartItem, error)
	DeleteByID(ctx context.Context, id int64) error
}
