package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/cardafy/cardafy/internal/domain/model"
	"github.com/cardafy/cardafy/internal/domain/repository"
)

// ReconcileUseCase cross-references on-chain UTXOs at the contract address
// against the order store. It is a pure read/merge with no side effects, so
// callers re-run it after every mutating action instead of patching views
// incrementally.
type ReconcileUseCase struct {
	chain           ChainProvider
	orders          repository.OrderRepository
	contractAddress string
	logger          *slog.Logger
}

// NewReconcileUseCase constructs ReconcileUseCase.
func NewReconcileUseCase(chain ChainProvider, orders repository.OrderRepository, contractAddress string, logger *slog.Logger) *ReconcileUseCase {
	return &ReconcileUseCase{chain: chain, orders: orders, contractAddress: contractAddress, logger: logger}
}

// MerchantView returns every escrowed UTXO with a matching order, flagging
// the ones whose order reached Completed as withdrawable.
func (u *ReconcileUseCase) MerchantView(ctx context.Context) (*model.EscrowView, error) {
	return u.reconcile(ctx, func(model.Order) bool { return true })
}

// BuyerView returns escrowed UTXOs still awaiting buyer or merchant action;
// Completed orders are the merchant's concern and are excluded.
func (u *ReconcileUseCase) BuyerView(ctx context.Context) (*model.EscrowView, error) {
	return u.reconcile(ctx, func(o model.Order) bool {
		return o.Status != model.OrderStatusCompleted
	})
}

func (u *ReconcileUseCase) reconcile(ctx context.Context, include func(model.Order) bool) (*model.EscrowView, error) {
	utxos, err := u.chain.FetchAddressUTXOs(ctx, u.contractAddress)
	if err != nil {
		return nil, fmt.Errorf("fetch contract utxos: %w", err)
	}

	orders, err := u.orders.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	byTxID := make(map[string]model.Order, len(orders))
	for _, o := range orders {
		byTxID[o.TxID] = o
	}

	view := &model.EscrowView{}
	for _, utxo := range utxos {
		order, ok := byTxID[utxo.TxHash]
		if !ok {
			// Funds locked at the contract with no order row: either
			// out-of-band usage or a missed store write.
			u.logger.Warn("contract utxo has no matching order",
				slog.String("tx_hash", utxo.TxHash),
				slog.Int("output_index", utxo.OutputIndex),
			)
			continue
		}
		if !include(order) {
			continue
		}
		view.Entries = append(view.Entries, model.EscrowEntry{
			Order:        order,
			UTXO:         utxo,
			Withdrawable: order.Status == model.OrderStatusCompleted,
			Datum:        u.fetchDatum(ctx, utxo.DataHash),
		})
		view.TotalLocked += float64(utxo.Lovelace()) / model.LovelacePerAda
	}

	return view, nil
}

// fetchDatum resolves the locking datum for display. Enrichment only: a
// provider miss or error leaves the entry without a datum.
func (u *ReconcileUseCase) fetchDatum(ctx context.Context, dataHash string) json.RawMessage {
	if dataHash == "" {
		return nil
	}
	datum, err := u.chain.FetchDatum(ctx, dataHash)
	if err != nil {
		u.logger.Warn("datum lookup failed",
			slog.String("data_hash", dataHash),
			slog.String("error", err.Error()),
		)
		return nil
	}
	return datum
}
