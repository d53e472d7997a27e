package test

import (
	"context"

	"github.com/cardafy/cardafy/internal/domain/model"
	"github.com/cardafy/cardafy/internal/wallet"
)

// WalletStub provides controllable wallet behaviour for escrow flow tests.
type WalletStub struct {
	ChangeAddress string
	Assets        []model.WalletAsset
	Utxos         []model.UTXO
	Collateral    []model.UTXO
	LovelaceVal   int64
	NetworkID     int

	SignFn   func(context.Context, *model.UnsignedTx) (string, error)
	SubmitFn func(context.Context, string) (string, error)

	SignedDrafts []*model.UnsignedTx
	Submitted    []string

	ChangeAddressErr error
	AssetsErr        error
	UtxosErr         error
	CollateralErr    error
	SignErr          error
	SubmitErr        error
}

// GetChangeAddress returns the configured address.
func (s *WalletStub) GetChangeAddress(ctx context.Context) (string, error) {
	if s.ChangeAddressErr != nil {
		return "", s.ChangeAddressErr
	}
	return s.ChangeAddress, nil
}

// GetAssets returns the configured asset holdings.
func (s *WalletStub) GetAssets(ctx context.Context) ([]model.WalletAsset, error) {
	if s.AssetsErr != nil {
		return nil, s.AssetsErr
	}
	return s.Assets, nil
}

// GetUtxos returns configured spendable outputs.
func (s *WalletStub) GetUtxos(ctx context.Context) ([]model.UTXO, error) {
	if s.UtxosErr != nil {
		return nil, s.UtxosErr
	}
	return s.Utxos, nil
}

// GetCollateral returns configured collateral outputs.
func (s *WalletStub) GetCollateral(ctx context.Context) ([]model.UTXO, error) {
	if s.CollateralErr != nil {
		return nil, s.CollateralErr
	}
	return s.Collateral, nil
}

// GetLovelace returns the configured balance.
func (s *WalletStub) GetLovelace(ctx context.Context) (int64, error) {
	return s.LovelaceVal, nil
}

// GetNetworkID returns the configured network.
func (s *WalletStub) GetNetworkID(ctx context.Context) (int, error) {
	return s.NetworkID, nil
}

// SignTx records the draft and returns a signed payload.
func (s *WalletStub) SignTx(ctx context.Context, draft *model.UnsignedTx) (string, error) {
	if s.SignFn != nil {
		return s.SignFn(ctx, draft)
	}
	if s.SignErr != nil {
		return "", s.SignErr
	}
	s.SignedDrafts = append(s.SignedDrafts, draft)
	return "signed", nil
}

// SubmitTx records the signed payload and returns a tx hash.
func (s *WalletStub) SubmitTx(ctx context.Context, signedTx string) (string, error) {
	if s.SubmitFn != nil {
		return s.SubmitFn(ctx, signedTx)
	}
	if s.SubmitErr != nil {
		return "", s.SubmitErr
	}
	s.Submitted = append(s.Submitted, signedTx)
	return RandomTxHash(), nil
}

// ConnectorStub hands out the same wallet for any name.
type ConnectorStub struct {
	Wallet *WalletStub

	Connected []string
}

// Connect records the wallet name and returns the stub.
func (s *ConnectorStub) Connect(walletName string) wallet.Wallet {
	s.Connected = append(s.Connected, walletName)
	return s.Wallet
}
