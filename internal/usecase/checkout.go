package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	domainErrors "github.com/cardafy/cardafy/internal/domain/errors"
	"github.com/cardafy/cardafy/internal/domain/model"
	"github.com/cardafy/cardafy/internal/domain/repository"
	"github.com/cardafy/cardafy/internal/escrow"
	"github.com/cardafy/cardafy/internal/wallet"
)

// CheckoutInput captures everything the buyer supplies at checkout time.
// Name and Address are the shipping identity; they are snapshotted into the
// order and never re-validated against the wallet.
type CheckoutInput struct {
	Name       string
	Address    string
	ItemName   string
	Qty        int
	Price      float64
	CartItemID int64
}

// CheckoutUseCase locks the order total at the contract address and records
// the order. The order row is written only after submission returns a
// transaction hash, so a declined signature or failed submission leaves no
// partial state.
type CheckoutUseCase struct {
	orders          repository.OrderRepository
	carts           repository.CartRepository
	contractAddress string
	logger          *slog.Logger
}

// NewCheckoutUseCase constructs CheckoutUseCase.
func NewCheckoutUseCase(orders repository.OrderRepository, carts repository.CartRepository, contractAddress string, logger *slog.Logger) *CheckoutUseCase {
	return &CheckoutUseCase{orders: orders, carts: carts, contractAddress: contractAddress, logger: logger}
}

// Checkout builds, signs and submits the locking transaction, then records
// the Pending order keyed by the resulting transaction hash.
func (u *CheckoutUseCase) Checkout(ctx context.Context, w wallet.Wallet, in CheckoutInput) (*model.Order, error) {
	if err := validateCheckout(in); err != nil {
		return nil, err
	}

	walletAddress, err := w.GetChangeAddress(ctx)
	if err != nil {
		return nil, fmt.Errorf("get change address: %w", err)
	}

	signerHash, err := escrow.SignerHash(walletAddress)
	if err != nil {
		return nil, fmt.Errorf("derive signer hash: %w", err)
	}

	utxos, err := w.GetUtxos(ctx)
	if err != nil {
		return nil, fmt.Errorf("get wallet utxos: %w", err)
	}

	network, err := networkName(ctx, w)
	if err != nil {
		return nil, err
	}

	lovelace := model.TotalLovelace(in.Price, in.Qty)
	assets := []model.Asset{{Unit: "lovelace", Quantity: lovelace}}

	draft, err := escrow.NewBuilder().
		SetNetwork(network).
		TxOut(u.contractAddress, assets).
		TxOutDatumHashValue(model.ConStr0(signerHash)).
		ChangeAddress(walletAddress).
		SelectUtxosFrom(utxos).
		Complete()
	if err != nil {
		return nil, fmt.Errorf("build lock transaction: %w", err)
	}

	signedTx, err := w.SignTx(ctx, draft)
	if err != nil {
		return nil, err
	}

	txHash, err := w.SubmitTx(ctx, signedTx)
	if err != nil {
		return nil, fmt.Errorf("submit lock transaction: %w", err)
	}

	order, err := u.orders.Create(ctx, model.Order{
		TxID:        txHash,
		Name:        strings.TrimSpace(in.Name),
		Address:     strings.TrimSpace(in.Address),
		ItemName:    in.ItemName,
		Qty:         in.Qty,
		Price:       in.Price,
		DateOrdered: time.Now(),
		Status:      model.OrderStatusPending,
	})
	if err != nil {
		// Funds are locked but the row is missing; reconciliation will
		// surface the orphan UTXO as a warning.
		return nil, fmt.Errorf("record order %s: %w", txHash, err)
	}

	if in.CartItemID > 0 {
		if err := u.carts.DeleteByID(ctx, in.CartItemID); err != nil {
			u.logger.Warn("clear cart item after checkout failed",
				slog.Int64("cart_item_id", in.CartItemID),
				slog.String("tx_id", txHash),
				slog.String("error", err.Error()),
			)
		}
	}

	return order, nil
}

func validateCheckout(in CheckoutInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name", domainErrors.ErrMissingField)
	}
	if strings.TrimSpace(in.Address) == "" {
		return fmt.Errorf("%w: address", domainErrors.ErrMissingField)
	}
	if strings.TrimSpace(in.ItemName) == "" {
		return fmt.Errorf("%w: item name", domainErrors.ErrMissingField)
	}
	if in.Qty < 1 {
		return fmt.Errorf("%w: quantity must be positive", domainErrors.ErrMissingField)
	}
	if in.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", domainErrors.ErrMissingField)
	}
	return nil
}

func networkName(ctx context.Context, w wallet.Wallet) (string, error) {
	id, err := w.GetNetworkID(ctx)
	if err != nil {
		return "", fmt.Errorf("get network id: %w", err)
	}
	if id == 1 {
		return "mainnet", nil
	}
	return "preprod", nil
}
