package handlers

import (
	"context"
	"io"

	"github.com/cardafy/cardafy/internal/adapter/assistant"
	"github.com/cardafy/cardafy/internal/domain/model"
	pkgAuth "github.com/cardafy/cardafy/internal/pkg/auth"
	"github.com/cardafy/cardafy/internal/usecase"
)

// SessionFacade describes wallet session capabilities required by handlers.
type SessionFacade interface {
	Login(ctx context.Context, walletName string) (string, *pkgAuth.Session, error)
	ParseToken(token string) (*pkgAuth.Session, error)
}

// CartFacade provides cart operations.
type CartFacade interface {
	AddCartItem(ctx context.Context, item model.CartItem) (*model.CartItem, error)
	CartItems(ctx context.Context, address string) ([]model.CartItem, error)
	DeleteCartItem(ctx context.Context, id int64) error
}

// CatalogFacade provides catalog lookups.
type CatalogFacade interface {
	CatalogItems(ctx context.Context, tier model.Tier) ([]model.CatalogItem, error)
	CatalogItem(ctx context.Context, tier model.Tier, slug string) (*model.CatalogItem, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	Checkout(ctx context.Context, session *pkgAuth.Session, in usecase.CheckoutInput) (*model.Order, error)
	Orders(ctx context.Context) ([]model.Order, error)
	AdvanceOrder(ctx context.Context, txID string) (*model.Order, error)
	DeleteOrder(ctx context.Context, txID string) error
}

// EscrowFacade provides escrow reconciliation and withdrawal.
type EscrowFacade interface {
	MerchantEscrow(ctx context.Context) (*model.EscrowView, error)
	BuyerEscrow(ctx context.Context) (*model.EscrowView, error)
	Withdraw(ctx context.Context, session *pkgAuth.Session, txID string) (string, error)
}

// ChatFacade streams assistant replies.
type ChatFacade interface {
	Chat(ctx context.Context, history []assistant.Message) (io.ReadCloser, error)
}

// StorefrontFacade aggregates the full set of operations used across handlers.
type StorefrontFacade interface {
	SessionFacade
	CartFacade
	CatalogFacade
	OrderFacade
	EscrowFacade
	ChatFacade
}
