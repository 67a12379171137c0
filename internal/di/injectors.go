//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"luckypick/internal"
	"luckypick/internal/controllers"
	"luckypick/internal/generator"
	"luckypick/internal/providers"
	"luckypick/internal/services"
	"luckypick/internal/storage"
	"luckypick/internal/storage/interfaces"
	"luckypick/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,
		providers.NewRandomProvider,
		providers.NewFormatterProvider,
		providers.NewRateLimiter,

		generator.NewGenerator,
		storage.NewCompressor,
		storage.NewFileStore,
		wire.Bind(new(interfaces.KeyValueStoreInterface), new(*storage.FileStore)),
		services.NewLotteryService,
		storage.NewScheduler,
		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
