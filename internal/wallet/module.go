package wallet

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/cardafy/cardafy/internal/config"
)

// Module exposes the wallet agent connector to the fx graph.
var Module = fx.Options(
	fx.Provide(newConnector),
	fx.Provide(func(c *BridgeConnector) Connector { return c }),
)

type connectorParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newConnector(p connectorParams) (*BridgeConnector, error) {
	return NewBridgeConnector(p.Config.WalletAgentAddress, p.Logger)
}
