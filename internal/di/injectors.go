//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"spd/internal"
	"spd/internal/controllers"
	"spd/internal/providers"
	"spd/internal/services"
	"spd/internal/storage"
	"spd/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewCacheProvider,
		providers.NewMetricsProvider,
		providers.NewTimezoneProvider,

		storage.NewZstdCompressor,
		storage.NewLegacyStore,
		storage.NewFileStore,
		storage.NewMigrator,
		storage.NewScheduler,

		services.NewStandService,
		services.NewNameGenerator,
		services.NewCooldownManager,
		services.NewPanelAPIService,

		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
