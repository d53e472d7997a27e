package app

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/cardafy/cardafy/internal/adapter/assistant"
	"github.com/cardafy/cardafy/internal/domain/model"
	pkgAuth "github.com/cardafy/cardafy/internal/pkg/auth"
	"github.com/cardafy/cardafy/internal/usecase"
	"github.com/cardafy/cardafy/internal/wallet"
)

// ChainLookup is the chain access the confirmation worker needs.
type ChainLookup interface {
	TransactionExists(ctx context.Context, txHash string) (bool, error)
}

// AssistantProvider streams assistant replies.
type AssistantProvider interface {
	Stream(ctx context.Context, history []assistant.Message) (io.ReadCloser, error)
}

// StorefrontFacade aggregates the use cases behind a single application
// surface consumed by HTTP handlers and the confirmation worker.
type StorefrontFacade struct {
	membership *usecase.MembershipUseCase
	orders     *usecase.OrderUseCase
	carts      *usecase.CartUseCase
	catalog    *usecase.CatalogUseCase
	checkout   *usecase.CheckoutUseCase
	reconcile  *usecase.ReconcileUseCase
	withdraw   *usecase.WithdrawUseCase
	chain      ChainLookup
	assistant  AssistantProvider
	wallets    wallet.Connector
	sessions   pkgAuth.Strategy
}

// NewStorefrontFacade constructs StorefrontFacade.
func NewStorefrontFacade(
	membership *usecase.MembershipUseCase,
	orders *usecase.OrderUseCase,
	carts *usecase.CartUseCase,
	catalog *usecase.CatalogUseCase,
	checkout *usecase.CheckoutUseCase,
	reconcile *usecase.ReconcileUseCase,
	withdraw *usecase.WithdrawUseCase,
	chain ChainLookup,
	assistantProvider AssistantProvider,
	wallets wallet.Connector,
	sessions pkgAuth.Strategy,
) *StorefrontFacade {
	return &StorefrontFacade{
		membership: membership,
		orders:     orders,
		carts:      carts,
		catalog:    catalog,
		checkout:   checkout,
		reconcile:  reconcile,
		withdraw:   withdraw,
		chain:      chain,
		assistant:  assistantProvider,
		wallets:    wallets,
		sessions:   sessions,
	}
}

// Login connects the named wallet, verifies its membership tokens and
// issues a session token carrying the proven tiers.
func (f *StorefrontFacade) Login(ctx context.Context, walletName string) (string, *pkgAuth.Session, error) {
	w := f.wallets.Connect(walletName)

	address, err := w.GetChangeAddress(ctx)
	if err != nil {
		return "", nil, fmt.Errorf("connect wallet %s: %w", walletName, err)
	}

	tiers, err := f.membership.Verify(ctx, w)
	if err != nil {
		return "", nil, err
	}

	session := pkgAuth.Session{
		ID:            uuid.NewString(),
		WalletAddress: address,
		WalletName:    walletName,
		Tiers:         tiers,
	}
	token, err := f.sessions.IssueToken(session)
	if err != nil {
		return "", nil, err
	}
	return token, &session, nil
}

// ParseToken verifies a session token.
func (f *StorefrontFacade) ParseToken(token string) (*pkgAuth.Session, error) {
	return f.sessions.ParseToken(token)
}

// AddCartItem inserts a cart line.
func (f *StorefrontFacade) AddCartItem(ctx context.Context, item model.CartItem) (*model.CartItem, error) {
	return f.carts.Add(ctx, item)
}

// CartItems lists the wallet's cart lines.
func (f *StorefrontFacade) CartItems(ctx context.Context, address string) ([]model.CartItem, error) {
	return f.carts.ListByAddress(ctx, address)
}

// DeleteCartItem removes a cart line.
func (f *StorefrontFacade) DeleteCartItem(ctx context.Context, id int64) error {
	return f.carts.DeleteByID(ctx, id)
}

// CatalogItems lists catalog entries for a tier.
func (f *StorefrontFacade) CatalogItems(ctx context.Context, tier model.Tier) ([]model.CatalogItem, error) {
	return f.catalog.List(ctx, tier)
}

// CatalogItem resolves item detail by slug.
func (f *StorefrontFacade) CatalogItem(ctx context.Context, tier model.Tier, slug string) (*model.CatalogItem, error) {
	return f.catalog.Get(ctx, tier, slug)
}

// Checkout locks the order total in escrow using the session's wallet.
func (f *StorefrontFacade) Checkout(ctx context.Context, session *pkgAuth.Session, in usecase.CheckoutInput) (*model.Order, error) {
	w := f.wallets.Connect(session.WalletName)
	return f.checkout.Checkout(ctx, w, in)
}

// Orders lists all orders.
func (f *StorefrontFacade) Orders(ctx context.Context) ([]model.Order, error) {
	return f.orders.List(ctx)
}

// AdvanceOrder moves an order one step through its lifecycle.
func (f *StorefrontFacade) AdvanceOrder(ctx context.Context, txID string) (*model.Order, error) {
	return f.orders.Advance(ctx, txID)
}

// DeleteOrder removes an order row.
func (f *StorefrontFacade) DeleteOrder(ctx context.Context, txID string) error {
	return f.orders.Delete(ctx, txID)
}

// MerchantEscrow reconciles the contract address for the merchant view.
func (f *StorefrontFacade) MerchantEscrow(ctx context.Context) (*model.EscrowView, error) {
	return f.reconcile.MerchantView(ctx)
}

// BuyerEscrow reconciles the contract address for the buyer view.
func (f *StorefrontFacade) BuyerEscrow(ctx context.Context) (*model.EscrowView, error) {
	return f.reconcile.BuyerView(ctx)
}

// Withdraw spends a Completed order's escrow UTXO into the session wallet.
func (f *StorefrontFacade) Withdraw(ctx context.Context, session *pkgAuth.Session, txID string) (string, error) {
	w := f.wallets.Connect(session.WalletName)
	return f.withdraw.Withdraw(ctx, w, txID)
}

// Chat streams an assistant reply for the conversation.
func (f *StorefrontFacade) Chat(ctx context.Context, history []assistant.Message) (io.ReadCloser, error) {
	return f.assistant.Stream(ctx, history)
}

// UnconfirmedOrders returns orders whose locking tx is not yet observed.
func (f *StorefrontFacade) UnconfirmedOrders(ctx context.Context, limit int) ([]model.Order, error) {
	return f.orders.SelectUnconfirmed(ctx, limit)
}

// LockConfirmed checks whether the locking transaction is visible on-chain.
func (f *StorefrontFacade) LockConfirmed(ctx context.Context, txID string) (bool, error) {
	return f.chain.TransactionExists(ctx, txID)
}

// MarkOrderConfirmed records on-chain visibility of the locking tx.
func (f *StorefrontFacade) MarkOrderConfirmed(ctx context.Context, txID string) error {
	return f.orders.MarkConfirmed(ctx, txID)
}
