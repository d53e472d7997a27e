package wallet

import (
	"context"

	"github.com/cardafy/cardafy/internal/domain/model"
)

// Wallet is the per-session wallet capability: everything the escrow flows
// need from the buyer's or merchant's wallet. Signing and submission happen
// on the wallet's side; this system only hands over drafts.
type Wallet interface {
	GetChangeAddress(ctx context.Context) (string, error)
	GetAssets(ctx context.Context) ([]model.WalletAsset, error)
	GetUtxos(ctx context.Context) ([]model.UTXO, error)
	GetCollateral(ctx context.Context) ([]model.UTXO, error)
	GetLovelace(ctx context.Context) (int64, error)
	GetNetworkID(ctx context.Context) (int, error)
	SignTx(ctx context.Context, draft *model.UnsignedTx) (string, error)
	SubmitTx(ctx context.Context, signedTx string) (string, error)
}

// Connector opens wallet sessions by wallet name.
type Connector interface {
	Connect(walletName string) Wallet
}
