package auth

import (
	"time"

	"github.com/cardafy/cardafy/internal/domain/model"
)

// Session identifies a connected wallet and the membership tiers it proved
// at login time.
type Session struct {
	ID            string       `json:"id"`
	WalletAddress string       `json:"wallet_address"`
	WalletName    string       `json:"wallet_name"`
	Tiers         []model.Tier `json:"tiers"`
	ExpiresAt     int64        `json:"expires_at"`
}

// HasTier reports whether the session proved membership of the given tier.
func (s *Session) HasTier(tier model.Tier) bool {
	for _, t := range s.Tiers {
		if t == tier {
			return true
		}
	}
	return false
}

// Strategy issues and verifies opaque session tokens.
type Strategy interface {
	IssueToken(session Session) (string, error)
	ParseToken(token string) (*Session, error)
	Name() string
}

type Options struct {
	TTL time.Duration
}
