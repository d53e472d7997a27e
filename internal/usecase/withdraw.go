package usecase

import (
	"context"
	"fmt"
	"log/slog"

	domainErrors "github.com/cardafy/cardafy/internal/domain/errors"
	"github.com/cardafy/cardafy/internal/domain/model"
	"github.com/cardafy/cardafy/internal/domain/repository"
	"github.com/cardafy/cardafy/internal/escrow"
	"github.com/cardafy/cardafy/internal/wallet"
)

// WithdrawUseCase spends an escrowed contract UTXO into the merchant
// wallet. Withdrawal is gated strictly on the order being Completed; the
// order status itself is never mutated here, Completed is terminal.
type WithdrawUseCase struct {
	chain           ChainProvider
	orders          repository.OrderRepository
	contractAddress string
	scriptCbor      string
	logger          *slog.Logger
}

// NewWithdrawUseCase constructs WithdrawUseCase.
func NewWithdrawUseCase(chain ChainProvider, orders repository.OrderRepository, contractAddress, scriptCbor string, logger *slog.Logger) *WithdrawUseCase {
	return &WithdrawUseCase{chain: chain, orders: orders, contractAddress: contractAddress, scriptCbor: scriptCbor, logger: logger}
}

// Withdraw builds, signs and submits the spending transaction for the UTXO
// locked by txID. On success the UTXO disappears from subsequent
// reconciliation passes once the chain registers the spend; a failed
// submission leaves it in the escrowed set for retry.
func (u *WithdrawUseCase) Withdraw(ctx context.Context, w wallet.Wallet, txID string) (string, error) {
	if !ValidateTxHash(txID) {
		return "", domainErrors.ErrInvalidTxHash
	}

	order, err := u.orders.GetByTxID(ctx, txID)
	if err != nil {
		return "", err
	}
	if order.Status != model.OrderStatusCompleted {
		return "", fmt.Errorf("%w: order status is %s", domainErrors.ErrNotWithdrawable, order.Status)
	}

	utxos, err := u.chain.FetchAddressUTXOs(ctx, u.contractAddress)
	if err != nil {
		return "", fmt.Errorf("fetch contract utxos: %w", err)
	}
	target, found := findUtxo(utxos, txID)
	if !found {
		// The chain is the final arbiter; a concurrent spend already
		// consumed the output.
		return "", fmt.Errorf("%w: no utxo for transaction %s", domainErrors.ErrNotFound, txID)
	}

	walletAddress, err := w.GetChangeAddress(ctx)
	if err != nil {
		return "", fmt.Errorf("get change address: %w", err)
	}

	signerHash, err := escrow.SignerHash(walletAddress)
	if err != nil {
		return "", fmt.Errorf("derive signer hash: %w", err)
	}

	walletUtxos, err := w.GetUtxos(ctx)
	if err != nil {
		return "", fmt.Errorf("get wallet utxos: %w", err)
	}

	collateral, err := w.GetCollateral(ctx)
	if err != nil {
		return "", fmt.Errorf("get collateral: %w", err)
	}
	if len(collateral) == 0 {
		return "", domainErrors.ErrNoCollateral
	}

	draft, err := escrow.NewBuilder().
		SpendingPlutusScript("V3").
		TxIn(target.TxHash, target.OutputIndex, target.Amount, target.Address).
		TxInScript(u.scriptCbor).
		TxInRedeemerValue(model.ConStr0(escrow.StringToHex(escrow.RedeemerRef))).
		TxInDatumValue(model.ConStr0(signerHash)).
		RequiredSignerHash(signerHash).
		ChangeAddress(walletAddress).
		TxInCollateral(collateral[0].TxHash, collateral[0].OutputIndex, collateral[0].Amount, collateral[0].Address).
		SelectUtxosFrom(walletUtxos).
		Complete()
	if err != nil {
		return "", fmt.Errorf("build withdrawal transaction: %w", err)
	}

	signedTx, err := w.SignTx(ctx, draft)
	if err != nil {
		return "", err
	}

	withdrawTxHash, err := w.SubmitTx(ctx, signedTx)
	if err != nil {
		return "", fmt.Errorf("submit withdrawal transaction: %w", err)
	}

	u.logger.Info("escrow withdrawn",
		slog.String("order_tx", txID),
		slog.String("withdraw_tx", withdrawTxHash),
		slog.Int64("lovelace", target.Lovelace()),
	)

	return withdrawTxHash, nil
}

func findUtxo(utxos []model.UTXO, txHash string) (model.UTXO, bool) {
	for _, u := range utxos {
		if u.TxHash == txHash {
			return u, true
		}
	}
	return model.UTXO{}, false
}
