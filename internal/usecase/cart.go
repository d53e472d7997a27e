package usecase

import (
	"context"
	"fmt"
	"strings"

	domainErrors "github.com/cardafy/cardafy/internal/domain/errors"
	"github.com/cardafy/cardafy/internal/domain/model"
	"github.com/cardafy/cardafy/internal/domain/repository"
)

// CartUseCase manages pre-order cart lines, scoped to the owning wallet
// address.
type CartUseCase struct {
	carts repository.CartRepository
}

// NewCartUseCase constructs CartUseCase.
func NewCartUseCase(carts repository.CartRepository) *CartUseCase {
	return &CartUseCase{carts: carts}
}

// Add inserts a cart line for the wallet address.
func (u *CartUseCase) Add(ctx context.Context, item model.CartItem) (*model.CartItem, error) {
	if strings.TrimSpace(item.Address) == "" {
		return nil, fmt.Errorf("%w: address", domainErrors.ErrMissingField)
	}
	if strings.TrimSpace(item.Title) == "" {
		return nil, fmt.Errorf("%w: title", domainErrors.ErrMissingField)
	}
	if item.Qty < 1 {
		return nil, fmt.Errorf("%w: quantity must be positive", domainErrors.ErrMissingField)
	}
	if item.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", domainErrors.ErrMissingField)
	}
	return u.carts.Add(ctx, item)
}

// ListByAddress returns the wallet's cart lines.
func (u *CartUseCase) ListByAddress(ctx context.Context, address string) ([]model.CartItem, error) {
	return u.carts.ListByAddress(ctx, address)
}

// DeleteByID removes a single cart line.
func (u *CartUseCase) DeleteByID(ctx context.Context, id int64) error {
	return u.carts.DeleteByID(ctx, id)
}
