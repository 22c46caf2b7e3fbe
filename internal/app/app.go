package app

import (
	"github.com/trebuchet-org/icodeploy/internal/domain/config"
	"github.com/trebuchet-org/icodeploy/internal/usecase"
)

// Closer releases resources held by the app
type Closer interface {
	Close() error
}

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig

	// Use cases
	DeployContract *usecase.DeployContract
	ListNetworks   *usecase.ListNetworks

	// Connection is closed once the command finishes
	Connection Closer
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	deployContract *usecase.DeployContract,
	listNetworks *usecase.ListNetworks,
	connection Closer,
) (*App, error) {
	return &App{
		Config:         cfg,
		DeployContract: deployContract,
		ListNetworks:   listNetworks,
		Connection:     connection,
	}, nil
}

// Close releases the RPC connection, if any
func (a *App) Close() error {
	if a.Connection == nil {
		return nil
	}
	return a.Connection.Close()
}
