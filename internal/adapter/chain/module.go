package chain

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/cardafy/cardafy/internal/config"
)

// Module exposes chain provider client implementation to fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.ChainProviderAddress, p.Config.ChainProviderAPIKey, p.Logger)
}
