//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"GridSense/pkg/config"
	"GridSense/pkg/server"
)

// InitializeApp builds the fully wired application.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,
		ProvideModelStore,
		ProvideFeatureSource,
		ProvideSyntheticSource,
		ProvideCache,
		ProvideForecaster,
		ProvideHandler,
		ProvideApp,
	)
	return nil, nil
}
