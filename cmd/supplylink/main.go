package main

import (
	"context"
	"log/slog"
	"os"

	"supplylink/config"
	"supplylink/internal/delivery"
	"supplylink/internal/delivery/http"
	"supplylink/internal/delivery/http/middleware"
	"supplylink/internal/delivery/http/router/handler"
	"supplylink/internal/domain/service"
	logs "supplylink/internal/infra/log"
	"supplylink/internal/infra/persistence/memory"
	"supplylink/internal/infra/persistence/postgres"
	redisinfra "supplylink/internal/infra/persistence/redis"
	"supplylink/internal/usecase/impl"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewDealerRepository,
			postgres.NewShopkeeperRepository,
			postgres.NewConnectionRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			newDealerIndex,
		),
	)
}

type dealerIndexParams struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
	DB     *gorm.DB
}

// newDealerIndex selects the dealer index backend from configuration. All
// backends answer the same WithinRadius contract, so the discovery engine
// does not care which one is wired.
func newDealerIndex(params dealerIndexParams) (service.DealerIndex, error) {
	switch provider := params.Config.Discovery.IndexProvider; provider {
	case "memory":
		return memory.NewScanIndex(), nil
	case "grid":
		return memory.NewGridIndex(params.Config.Discovery.GridCellSizeKm), nil
	case "postgres":
		return postgres.NewDealerIndex(params.DB), nil
	case "redis":
		client, err := redisinfra.New(redisinfra.Params{
			Lifecycle: params.Lifecycle,
			Config:    params.Config,
			Logger:    params.Logger,
		})
		if err != nil {
			return nil, err
		}

		return redisinfra.NewDealerIndex(client), nil
	default:
		return nil, errors.Errorf("unknown dealer index provider: %s", provider)
	}
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewDiscoveryService,
			impl.NewConnectionService,
			impl.NewDealerService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewDiscoveryHandler,
			handler.NewConnectionHandler,
			handler.NewDealerHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
