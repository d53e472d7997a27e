package usecase

import (
	"context"
	"fmt"

	domainErrors "github.com/cardafy/cardafy/internal/domain/errors"
	"github.com/cardafy/cardafy/internal/domain/model"
	"github.com/cardafy/cardafy/internal/wallet"
)

// TierRegistry resolves membership tiers from (policy id, asset name)
// pairs. It is built and validated once at startup; lookups afterwards are
// plain map reads.
type TierRegistry struct {
	policyID string
	byAsset  map[string]model.Tier
}

// NewTierRegistry validates the configured asset names and builds the
// lookup table.
func NewTierRegistry(policyID string, assets map[model.Tier]string) (*TierRegistry, error) {
	if policyID == "" {
		return nil, fmt.Errorf("policy id must not be empty")
	}
	byAsset := make(map[string]model.Tier, len(assets))
	for tier, name := range assets {
		if name == "" {
			return nil, fmt.Errorf("asset name for tier %s must not be empty", tier)
		}
		if existing, ok := byAsset[name]; ok {
			return nil, fmt.Errorf("asset name %q maps to both %s and %s", name, existing, tier)
		}
		byAsset[name] = tier
	}
	return &TierRegistry{policyID: policyID, byAsset: byAsset}, nil
}

// Lookup resolves a held asset to a tier. Assets under a foreign policy
// never match.
func (r *TierRegistry) Lookup(policyID, assetName string) (model.Tier, bool) {
	if policyID != r.policyID {
		return "", false
	}
	tier, ok := r.byAsset[assetName]
	return tier, ok
}

// MembershipUseCase verifies which tiers a connected wallet holds.
type MembershipUseCase struct {
	registry *TierRegistry
}

// NewMembershipUseCase constructs MembershipUseCase.
func NewMembershipUseCase(registry *TierRegistry) *MembershipUseCase {
	return &MembershipUseCase{registry: registry}
}

// Verify enumerates the wallet's assets and returns the tiers it proves.
// A wallet holding no membership token gets ErrMembershipRequired.
func (u *MembershipUseCase) Verify(ctx context.Context, w wallet.Wallet) ([]model.Tier, error) {
	assets, err := w.GetAssets(ctx)
	if err != nil {
		return nil, fmt.Errorf("get wallet assets: %w", err)
	}

	seen := make(map[model.Tier]bool, 3)
	var tiers []model.Tier
	for _, asset := range assets {
		tier, ok := u.registry.Lookup(asset.PolicyID, asset.AssetName)
		if !ok || seen[tier] {
			continue
		}
		seen[tier] = true
		tiers = append(tiers, tier)
	}

	if len(tiers) == 0 {
		return nil, domainErrors.ErrMembershipRequired
	}
	return tiers, nil
}
