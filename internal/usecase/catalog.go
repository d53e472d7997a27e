package usecase

import (
	"context"

	"github.com/cardafy/cardafy/internal/domain/model"
)

// CatalogUseCase serves storefront listings from the content store.
type CatalogUseCase struct {
	content ContentProvider
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(content ContentProvider) *CatalogUseCase {
	return &CatalogUseCase{content: content}
}

// List returns the items visible to a membership tier.
func (u *CatalogUseCase) List(ctx context.Context, tier model.Tier) ([]model.CatalogItem, error) {
	return u.content.ListByMembership(ctx, tier)
}

// Get resolves full item detail by slug within a tier catalog.
func (u *CatalogUseCase) Get(ctx context.Context, tier model.Tier, slug string) (*model.CatalogItem, error) {
	return u.content.GetBySlug(ctx, tier, slug)
}
