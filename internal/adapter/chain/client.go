package chain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/cardafy/cardafy/internal/domain/model"
)

// ErrTxNotFound indicates the provider has not seen the transaction yet.
var ErrTxNotFound = errors.New("transaction not found")

// TooManyRequestsError represents rate limiting signal from the chain provider.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

// Client exposes read operations against the chain data provider.
type Client interface {
	FetchAddressUTXOs(ctx context.Context, address string) ([]model.UTXO, error)
	FetchDatum(ctx context.Context, hash string) (json.RawMessage, error)
	TransactionExists(ctx context.Context, txHash string) (bool, error)
}

// HTTPClient implements Client via a Blockfrost-style HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// utxoResponse mirrors a single UTXO entry of the provider payload.
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

// NewHTTPClient creates an HTTP chain client with default timeout.
func NewHTTPClient(baseURL, apiKey string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse chain provider url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("chain provider url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		apiKey:  apiKey,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// FetchAddressUTXOs returns every unspent output currently at the address.
func (c *HTTPClient) FetchAddressUTXOs(ctx context.Context, address string) ([]model.UTXO, error) {
	body, err := c.get(ctx, path.Join("/addresses", address, "utxos"))
	if err != nil {
		if errors.Is(err, ErrTxNotFound) {
			// A never-used address has no UTXO set.
			return nil, nil
		}
		return nil, err
	}

	var entries []utxoResponse
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("decode utxos: %w", err)
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

// FetchDatum resolves a datum payload by its hash. The payload is returned
// raw; this system never interprets it semantically.
func (c *HTTPClient) FetchDatum(ctx context.Context, hash string) (json.RawMessage, error) {
	body, err := c.get(ctx, path.Join("/scripts/datum", hash))
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

// TransactionExists reports whether the provider has indexed the transaction.
func (c *HTTPClient) TransactionExists(ctx context.Context, txHash string) (bool, error) {
	_, err := c.get(ctx, path.Join("/txs", txHash))
	if err != nil {
		if errors.Is(err, ErrTxNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (c *HTTPClient) get(ctx context.Context, requestPath string) ([]byte, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, requestPath)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("project_id", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return io.ReadAll(resp.Body)
	case http.StatusNotFound:
		return nil, ErrTxNotFound
	case http.StatusTooManyRequests:
		retryAfter := parseRetryAfter(resp.Header.Get("Retry-After"))
		return nil, TooManyRequestsError{RetryAfter: retryAfter}
	default:
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("chain provider request failed",
			slog.String("path", strings.TrimPrefix(requestPath, "/")),
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(body)),
		)
		return nil, fmt.Errorf("chain provider error: %s", resp.Status)
	}
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 5 * time.Second
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}
	return 5 * time.Second
}
