package usecase

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/icodeploy/internal/domain"
	"github.com/trebuchet-org/icodeploy/internal/domain/config"
)

// ContractFactoryResolver looks up the factory for a named contract
type ContractFactoryResolver interface {
	GetContractFactory(ctx context.Context, name string) (ContractFactory, error)
}

// ContractFactory submits contract creation transactions
type ContractFactory interface {
	Deploy(ctx context.Context, args ...string) (PendingDeployment, error)
}

// PendingDeployment is a submitted, not yet confirmed contract creation
type PendingDeployment interface {
	TxHash() common.Hash
	Address() common.Address
	Deployed(ctx context.Context) (*domain.DeployedContract, error)
}

// NetworkResolver resolves configured networks
type NetworkResolver interface {
	GetNetworks(ctx context.Context) []string
	ResolveNetwork(ctx context.Context, name string) (*config.Network, error)
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage   string
	Message string
	Spinner bool
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}
