package auth

import (
	"go.uber.org/fx"

	"github.com/cardafy/cardafy/internal/config"
)

// Module provides session token primitives via fx.
var Module = fx.Provide(newTokenStrategy)

type strategyParams struct {
	fx.In

	Config *config.Config
}

func newTokenStrategy(p strategyParams) Strategy {
	return NewSealedStrategy(p.Config.SessionSecret, Options{TTL: p.Config.SessionTTL})
}
