package wallet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	domainErrors "github.com/cardafy/cardafy/internal/domain/errors"
	"github.com/cardafy/cardafy/internal/domain/model"
)

// BridgeConnector opens HTTP sessions against the wallet agent, the
// externally-running service that holds the actual wallet connection.
type BridgeConnector struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// NewBridgeConnector creates the connector for the configured agent.
func NewBridgeConnector(baseURL string, logger *slog.Logger) (*BridgeConnector, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse wallet agent url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("wallet agent url must be absolute")
	}
	return &BridgeConnector{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			// Signing waits on a human; keep the window generous.
			Timeout: 2 * time.Minute,
		},
	}, nil
}

// Connect returns a wallet handle scoped to the named wallet.
func (c *BridgeConnector) Connect(walletName string) Wallet {
	return &bridge{connector: c, walletName: walletName}
}

type bridge struct {
	connector  *BridgeConnector
	walletName string
}

type assetResponse struct {
	Unit      string `json:"unit"`
	PolicyID  string `json:"policy_id"`
	AssetName string `json:"asset_name"`
	Quantity  string `json:"quantity"`
}

type utxoResponse struct {
	TxHash      string `json:"tx_hash"`
	OutputIndex int    `json:"output_index"`
	Address     string `json:"address"`
	Amount      []struct {
		Unit     string `json:"unit"`
		Quantity string `json:"quantity"`
	} `json:"amount"`
	DataHash string `json:"data_hash"`
}

func (b *bridge) GetChangeAddress(ctx context.Context) (string, error) {
	var out struct {
		Address string `json:"address"`
	}
	if err := b.call(ctx, http.MethodGet, "change-address", nil, &out); err != nil {
		return "", err
	}
	return out.Address, nil
}

func (b *bridge) GetAssets(ctx context.Context) ([]model.WalletAsset, error) {
	var entries []assetResponse
	if err := b.call(ctx, http.MethodGet, "assets", nil, &entries); err != nil {
		return nil, err
	}
	assets := make([]model.WalletAsset, 0, len(entries))
	for _, e := range entries {
		quantity, err := strconv.ParseInt(e.Quantity, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse asset quantity %q: %w", e.Quantity, err)
		}
		assets = append(assets, model.WalletAsset{
			Unit:      e.Unit,
			PolicyID:  e.PolicyID,
			AssetName: e.AssetName,
			Quantity:  quantity,
		})
	}
	return assets, nil
}

func (b *bridge) GetUtxos(ctx context.Context) ([]model.UTXO, error) {
	return b.fetchUtxos(ctx, "utxos")
}

func (b *bridge) GetCollateral(ctx context.Context) ([]model.UTXO, error) {
	return b.fetchUtxos(ctx, "collateral")
}

func (b *bridge) GetLovelace(ctx context.Context) (int64, error) {
	var out struct {
		Lovelace string `json:"lovelace"`
	}
	if err := b.call(ctx, http.MethodGet, "lovelace", nil, &out); err != nil {
		return 0, err
	}
	lovelace, err := strconv.ParseInt(out.Lovelace, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse lovelace %q: %w", out.Lovelace, err)
	}
	return lovelace, nil
}

func (b *bridge) GetNetworkID(ctx context.Context) (int, error) {
	var out struct {
		NetworkID int `json:"network_id"`
	}
	if err := b.call(ctx, http.MethodGet, "network-id", nil, &out); err != nil {
		return 0, err
	}
	return out.NetworkID, nil
}

func (b *bridge) SignTx(ctx context.Context, draft *model.UnsignedTx) (string, error) {
	var out struct {
		SignedTx string `json:"signed_tx"`
	}
	if err := b.call(ctx, http.MethodPost, "sign", draft, &out); err != nil {
		return "", err
	}
	return out.SignedTx, nil
}

func (b *bridge) SubmitTx(ctx context.Context, signedTx string) (string, error) {
	in := map[string]string{"signed_tx": signedTx}
	var out struct {
		TxHash string `json:"tx_hash"`
	}
	if err := b.call(ctx, http.MethodPost, "submit", in, &out); err != nil {
		return "", err
	}
	return out.TxHash, nil
}

func (b *bridge) fetchUtxos(ctx context.Context, op string) ([]model.UTXO, error) {
	var entries []utxoResponse
	if err := b.call(ctx, http.MethodGet, op, nil, &entries); err != nil {
		return nil, err
	}
	utxos := make([]model.UTXO, 0, len(entries))
	for _, e := range entries {
		utxo := model.UTXO{
			TxHash:      e.TxHash,
			OutputIndex: e.OutputIndex,
			Address:     e.Address,
			DataHash:    e.DataHash,
		}
		for _, a := range e.Amount {
			quantity, err := strconv.ParseInt(a.Quantity, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("parse asset quantity %q: %w", a.Quantity, err)
			}
			utxo.Amount = append(utxo.Amount, model.Asset{Unit: a.Unit, Quantity: quantity})
		}
		utxos = append(utxos, utxo)
	}
	return utxos, nil
}

func (b *bridge) call(ctx context.Context, method, op string, in, out any) error {
	endpoint := *b.connector.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/wallets", b.walletName, op)

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := b.connector.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		if out == nil {
			return nil
		}
		return json.NewDecoder(resp.Body).Decode(out)
	case http.StatusForbidden:
		// The user rejected the prompt in their wallet.
		return domainErrors.ErrSignatureDeclined
	default:
		raw, _ := io.ReadAll(resp.Body)
		b.connector.logger.Error("wallet agent request failed",
			slog.String("wallet", b.walletName),
			slog.String("op", strings.TrimPrefix(op, "/")),
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(raw)),
		)
		return fmt.Errorf("wallet agent error: %s", resp.Status)
	}
}
