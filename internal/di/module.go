package di

import (
	"go.uber.org/fx"

	"github.com/cardafy/cardafy/internal/adapter/assistant"
	"github.com/cardafy/cardafy/internal/adapter/chain"
	"github.com/cardafy/cardafy/internal/adapter/content"
	"github.com/cardafy/cardafy/internal/app"
	"github.com/cardafy/cardafy/internal/config"
	"github.com/cardafy/cardafy/internal/logger"
	"github.com/cardafy/cardafy/internal/pkg/auth"
	"github.com/cardafy/cardafy/internal/server/http/handlers"
	"github.com/cardafy/cardafy/internal/server/http/router"
	"github.com/cardafy/cardafy/internal/storage/postgres"
	"github.com/cardafy/cardafy/internal/usecase"
	"github.com/cardafy/cardafy/internal/wallet"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		chain.Module,
		content.Module,
		assistant.Module,
		wallet.Module,
		usecase.Module,
		fx.Provide(func(client chain.Client) usecase.ChainProvider { return client }),
		fx.Provide(func(client chain.Client) app.ChainLookup { return client }),
		fx.Provide(func(client content.Client) usecase.ContentProvider { return client }),
		fx.Provide(func(client assistant.Client) app.AssistantProvider { return client }),
		fx.Provide(func(facade *app.StorefrontFacade) handlers.StorefrontFacade { return facade }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
