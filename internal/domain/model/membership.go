package model

// Tier identifies a membership level granted by holding the matching NFT.
type Tier string

const (
	TierGold     Tier = "gold"
	TierSilver   Tier = "silver"
	TierPlatinum Tier = "platinum"
)

// ParseTier maps a string to a known tier.
func ParseTier(s string) (Tier, bool) {
	switch Tier(s) {
	case TierGold, TierSilver, TierPlatinum:
		return Tier(s), true
	}
	return "", false
}

// WalletAsset is a native asset held in a wallet, split into its policy and
// asset-name components.
type WalletAsset struct {
	Unit      string
	PolicyID  string
	AssetName string
	Quantity  int64
}
