package content

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"

	domainErrors "github.com/cardafy/cardafy/internal/domain/errors"
	"github.com/cardafy/cardafy/internal/domain/model"
)

// Client exposes read operations against the hosted content store.
type Client interface {
	ListByMembership(ctx context.Context, tier model.Tier) ([]model.CatalogItem, error)
	GetBySlug(ctx context.Context, tier model.Tier, slug string) (*model.CatalogItem, error)
}

// HTTPClient implements Client against the content store HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// itemResponse mirrors the content store's catalog document.
type itemResponse struct {
	ID          string  `json:"_id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
	Membership  string  `json:"membership"`
	Slug        string  `json:"slug"`
}

// NewHTTPClient creates a content store client with default timeout.
func NewHTTPClient(baseURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse content store url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("content store url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// ListByMembership returns catalog items visible to the given tier.
func (c *HTTPClient) ListByMembership(ctx context.Context, tier model.Tier) ([]model.CatalogItem, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/items")
	query := endpoint.Query()
	query.Set("membership", string(tier))
	endpoint.RawQuery = query.Encode()

	body, err := c.get(ctx, endpoint.String())
	if err != nil {
		return nil, err
	}

	var entries []itemResponse
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("decode catalog items: %w", err)
	}

	items := make([]model.CatalogItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, toCatalogItem(e))
	}
	return items, nil
}

// GetBySlug resolves full item detail by its slug within a tier catalog.
func (c *HTTPClient) GetBySlug(ctx context.Context, tier model.Tier, slug string) (*model.CatalogItem, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/items", string(tier), slug)

	body, err := c.get(ctx, endpoint.String())
	if err != nil {
		return nil, err
	}

	var entry itemResponse
	if err := json.Unmarshal(body, &entry); err != nil {
		return nil, fmt.Errorf("decode catalog item: %w", err)
	}
	item := toCatalogItem(entry)
	return &item, nil
}

func (c *HTTPClient) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return io.ReadAll(resp.Body)
	case http.StatusNotFound:
		return nil, domainErrors.ErrNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("content store request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return nil, fmt.Errorf("content store error: %s", resp.Status)
	}
}

func toCatalogItem(e itemResponse) model.CatalogItem {
	tier, ok := model.ParseTier(e.Membership)
	if !ok {
		tier = model.Tier(e.Membership)
	}
	return model.CatalogItem{
		ID:          e.ID,
		Title:       e.Title,
		Price:       e.Price,
		Image:       e.Image,
		Description: e.Description,
		Membership:  tier,
		Slug:        e.Slug,
	}
}
