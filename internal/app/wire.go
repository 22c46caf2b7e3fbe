//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/icodeploy/internal/adapters"
	"github.com/trebuchet-org/icodeploy/internal/adapters/blockchain"
	"github.com/trebuchet-org/icodeploy/internal/config"
	"github.com/trebuchet-org/icodeploy/internal/logging"
	"github.com/trebuchet-org/icodeploy/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper, sink usecase.ProgressSink) (*App, error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,
		wire.Bind(new(Closer), new(*blockchain.Connection)),

		// Use cases
		usecase.NewDeployContract,
		usecase.NewListNetworks,

		// App
		NewApp,
	)
	return nil, nil
}
