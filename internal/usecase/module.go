package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/cardafy/cardafy/internal/config"
	"github.com/cardafy/cardafy/internal/domain/model"
	"github.com/cardafy/cardafy/internal/domain/repository"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	newTierRegistry,
	NewMembershipUseCase,
	NewOrderUseCase,
	NewCartUseCase,
	NewCatalogUseCase,
	newCheckoutUseCase,
	newReconcileUseCase,
	newWithdrawUseCase,
)

func newTierRegistry(cfg *config.Config) (*TierRegistry, error) {
	return NewTierRegistry(cfg.PolicyID, map[model.Tier]string{
		model.TierGold:     cfg.GoldAsset,
		model.TierSilver:   cfg.SilverAsset,
		model.TierPlatinum: cfg.PlatinumAsset,
	})
}

type checkoutParams struct {
	fx.In

	Orders repository.OrderRepository
	Carts  repository.CartRepository
	Config *config.Config
	Logger *slog.Logger
}

func newCheckoutUseCase(p checkoutParams) *CheckoutUseCase {
	return NewCheckoutUseCase(p.Orders, p.Carts, p.Config.ContractAddress, p.Logger)
}

type reconcileParams struct {
	fx.In

	Chain  ChainProvider
	Orders repository.OrderRepository
	Config *config.Config
	Logger *slog.Logger
}

func newReconcileUseCase(p reconcileParams) *ReconcileUseCase {
	return NewReconcileUseCase(p.Chain, p.Orders, p.Config.ContractAddress, p.Logger)
}

type withdrawParams struct {
	fx.In

	Chain  ChainProvider
	Orders repository.OrderRepository
	Config *config.Config
	Logger *slog.Logger
}

func newWithdrawUseCase(p withdrawParams) *WithdrawUseCase {
	return NewWithdrawUseCase(p.Chain, p.Orders, p.Config.ContractAddress, p.Config.ScriptCbor, p.Logger)
}
