package usecase

import (
	"context"
	"encoding/json"

	"github.com/cardafy/cardafy/internal/domain/model"
)

// ChainProvider is the chain data access the usecases need.
type ChainProvider interface {
	FetchAddressUTXOs(ctx context.Context, address string) ([]model.UTXO, error)
	FetchDatum(ctx context.Context, hash string) (json.RawMessage, error)
}

// ContentProvider is the catalog access the usecases need.
type ContentProvider interface {
	ListByMembership(ctx context.Context, tier model.Tier) ([]model.CatalogItem, error)
	GetBySlug(ctx context.Context, tier model.Tier, slug string) (*model.CatalogItem, error)
}
