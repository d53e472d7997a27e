package content

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/cardafy/cardafy/internal/config"
)

// Module exposes content store client implementation to fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.ContentStoreAddress, p.Logger)
}
