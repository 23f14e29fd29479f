//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"prayertrack/internal"
	"prayertrack/internal/providers"
	"prayertrack/internal/services"
	"prayertrack/internal/storage"
	"prayertrack/internal/structures"
	"prayertrack/internal/syncer"
)

func InitApp(flags *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewCacheProvider,
		providers.NewMetricsProvider,

		storage.NewZstdCompressor,
		storage.NewSQLiteStore,
		storage.NewFileStore,
		storage.NewChannelStore,
		storage.NewAdapter,

		services.NewClock,
		services.NewPrayerService,
		services.NewStatsService,

		syncer.NewSynchronizer,
		syncer.NewScheduler,

		internal.NewApp,
	)

	return nil, nil
}
