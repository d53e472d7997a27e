package test

import (
	"context"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cardafy/cardafy/internal/adapter/assistant"
	domainErrors "github.com/cardafy/cardafy/internal/domain/errors"
	"github.com/cardafy/cardafy/internal/domain/model"
	pkgAuth "github.com/cardafy/cardafy/internal/pkg/auth"
	"github.com/cardafy/cardafy/internal/usecase"
)

// SessionFacadeStub simulates wallet login for HTTP layer tests.
type SessionFacadeStub struct {
	LoginFn func(context.Context, string) (string, *pkgAuth.Session, error)
	ParseFn func(string) (*pkgAuth.Session, error)
}

// Login returns a token and session for successful login scenarios.
func (s SessionFacadeStub) Login(ctx context.Context, walletName string) (string, *pkgAuth.Session, error) {
	if s.LoginFn != nil {
		return s.LoginFn(ctx, walletName)
	}
	session := &pkgAuth.Session{
		ID:            "session",
		WalletAddress: "addr_test1qstub",
		WalletName:    walletName,
		Tiers:         []model.Tier{model.TierGold},
	}
	return "token", session, nil
}

// ParseToken returns the stored session for authenticated requests.
func (s SessionFacadeStub) ParseToken(token string) (*pkgAuth.Session, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return &pkgAuth.Session{
		ID:            "session",
		WalletAddress: "addr_test1qstub",
		WalletName:    "nami",
		Tiers:         []model.Tier{model.TierGold},
	}, nil
}

// CartFacadeStub provides controllable behaviour for cart endpoints.
type CartFacadeStub struct {
	AddFn    func(context.Context, model.CartItem) (*model.CartItem, error)
	ListFn   func(context.Context, string) ([]model.CartItem, error)
	DeleteFn func(context.Context, int64) error
}

// AddCartItem delegates to provided function or echoes the item with an id.
func (s CartFacadeStub) AddCartItem(ctx context.Context, item model.CartItem) (*model.CartItem, error) {
	if s.AddFn != nil {
		return s.AddFn(ctx, item)
	}
	item.ID = 1
	return &item, nil
}

// CartItems returns predefined lines for the address.
func (s CartFacadeStub) CartItems(ctx context.Context, address string) ([]model.CartItem, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, address)
	}
	return []model.CartItem{{ID: 1, Address: address, Title: "Bag", Qty: 1, Price: 50, Membership: model.TierGold}}, nil
}

// DeleteCartItem executes configured deletion handler.
func (s CartFacadeStub) DeleteCartItem(ctx context.Context, id int64) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	return nil
}

// CatalogFacadeStub serves canned catalog data.
type CatalogFacadeStub struct {
	ListFn func(context.Context, model.Tier) ([]model.CatalogItem, error)
	GetFn  func(context.Context, model.Tier, string) (*model.CatalogItem, error)
}

// CatalogItems returns configured listings.
func (s CatalogFacadeStub) CatalogItems(ctx context.Context, tier model.Tier) ([]model.CatalogItem, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, tier)
	}
	return []model.CatalogItem{{ID: "1", Title: "Bag", Price: 50, Membership: tier, Slug: "bag"}}, nil
}

// CatalogItem resolves one listing or not found.
func (s CatalogFacadeStub) CatalogItem(ctx context.Context, tier model.Tier, slug string) (*model.CatalogItem, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, tier, slug)
	}
	if slug != "bag" {
		return nil, domainErrors.ErrNotFound
	}
	return &model.CatalogItem{ID: "1", Title: "Bag", Price: 50, Membership: tier, Slug: slug}, nil
}

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	CheckoutFn func(context.Context, *pkgAuth.Session, usecase.CheckoutInput) (*model.Order, error)
	OrdersFn   func(context.Context) ([]model.Order, error)
	AdvanceFn  func(context.Context, string) (*model.Order, error)
	DeleteFn   func(context.Context, string) error
}

// Checkout returns a default pending order.
func (s OrderFacadeStub) Checkout(ctx context.Context, session *pkgAuth.Session, in usecase.CheckoutInput) (*model.Order, error) {
	if s.CheckoutFn != nil {
		return s.CheckoutFn(ctx, session, in)
	}
	return &model.Order{
		TxID:        RandomTxHash(),
		Name:        in.Name,
		Address:     in.Address,
		ItemName:    in.ItemName,
		Qty:         in.Qty,
		Price:       in.Price,
		DateOrdered: time.Unix(0, 0),
		Status:      model.OrderStatusPending,
	}, nil
}

// Orders returns predefined orders.
func (s OrderFacadeStub) Orders(ctx context.Context) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx)
	}
	return []model.Order{{TxID: strings.Repeat("a", 64), Status: model.OrderStatusPending}}, nil
}

// AdvanceOrder executes configured transition handler.
func (s OrderFacadeStub) AdvanceOrder(ctx context.Context, txID string) (*model.Order, error) {
	if s.AdvanceFn != nil {
		return s.AdvanceFn(ctx, txID)
	}
	return &model.Order{TxID: txID, Status: model.OrderStatusDelivered}, nil
}

// DeleteOrder executes configured deletion handler.
func (s OrderFacadeStub) DeleteOrder(ctx context.Context, txID string) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, txID)
	}
	return nil
}

// EscrowFacadeStub simulates reconciliation and withdrawal.
type EscrowFacadeStub struct {
	MerchantFn func(context.Context) (*model.EscrowView, error)
	BuyerFn    func(context.Context) (*model.EscrowView, error)
	WithdrawFn func(context.Context, *pkgAuth.Session, string) (string, error)
}

// MerchantEscrow returns the configured merchant view.
func (s EscrowFacadeStub) MerchantEscrow(ctx context.Context) (*model.EscrowView, error) {
	if s.MerchantFn != nil {
		return s.MerchantFn(ctx)
	}
	return &model.EscrowView{}, nil
}

// BuyerEscrow returns the configured buyer view.
func (s EscrowFacadeStub) BuyerEscrow(ctx context.Context) (*model.EscrowView, error) {
	if s.BuyerFn != nil {
		return s.BuyerFn(ctx)
	}
	return &model.EscrowView{}, nil
}

// Withdraw executes configured withdrawal handler.
func (s EscrowFacadeStub) Withdraw(ctx context.Context, session *pkgAuth.Session, txID string) (string, error) {
	if s.WithdrawFn != nil {
		return s.WithdrawFn(ctx, session, txID)
	}
	return RandomTxHash(), nil
}

// ChatFacadeStub replays a fixed assistant reply.
type ChatFacadeStub struct {
	ChatFn func(context.Context, []assistant.Message) (io.ReadCloser, error)
	Reply  string
}

// Chat returns the canned reply stream.
func (s ChatFacadeStub) Chat(ctx context.Context, history []assistant.Message) (io.ReadCloser, error) {
	if s.ChatFn != nil {
		return s.ChatFn(ctx, history)
	}
	return io.NopCloser(strings.NewReader(s.Reply)), nil
}

// StorefrontFacadeStub aggregates facade dependencies for HTTP layer tests.
type StorefrontFacadeStub struct {
	SessionFacadeStub
	CartFacadeStub
	CatalogFacadeStub
	OrderFacadeStub
	EscrowFacadeStub
	ChatFacadeStub
}

// WorkerFacadeStub mimics confirmation poller interactions with the facade.
type WorkerFacadeStub struct {
	Batches        [][]model.Order
	UnconfirmedFn  func(context.Context, int) ([]model.Order, error)
	LockFn         func(context.Context, string) (bool, error)
	MarkFn         func(context.Context, string) error
	Confirmed      map[string]bool
	Marked         []string
	mu             sync.Mutex
	batchCallCount int32
}

// Lock exposes internal mutex for external synchronization.
func (s *WorkerFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *WorkerFacadeStub) Unlock() { s.mu.Unlock() }

// UnconfirmedOrders returns batches from the configured queue.
func (s *WorkerFacadeStub) UnconfirmedOrders(ctx context.Context, limit int) ([]model.Order, error) {
	if s.UnconfirmedFn != nil {
		return s.UnconfirmedFn(ctx, limit)
	}
	call := atomic.AddInt32(&s.batchCallCount, 1)
	if int(call) <= len(s.Batches) {
		return s.Batches[call-1], nil
	}
	time.Sleep(10 * time.Millisecond)
	return nil, nil
}

// LockConfirmed reports the configured confirmation state.
func (s *WorkerFacadeStub) LockConfirmed(ctx context.Context, txID string) (bool, error) {
	if s.LockFn != nil {
		return s.LockFn(ctx, txID)
	}
	return s.Confirmed[txID], nil
}

// MarkOrderConfirmed records the confirmation call.
func (s *WorkerFacadeStub) MarkOrderConfirmed(ctx context.Context, txID string) error {
	if s.MarkFn != nil {
		return s.MarkFn(ctx, txID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Marked = append(s.Marked, txID)
	return nil
}
