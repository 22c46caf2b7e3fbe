package config

import (
	"context"
	"sort"

	"github.com/samber/lo"
	"github.com/trebuchet-org/icodeploy/internal/adapters/blockchain"
	internalconfig "github.com/trebuchet-org/icodeploy/internal/config"
	"github.com/trebuchet-org/icodeploy/internal/domain/config"
	"github.com/trebuchet-org/icodeploy/internal/usecase"
)

// ChainIDFetcher looks up the chain ID behind an RPC URL
type ChainIDFetcher func(ctx context.Context, rpcURL string) (uint64, error)

// NetworkResolverAdapter resolves networks from foundry.toml [rpc_endpoints]
type NetworkResolverAdapter struct {
	cfg          *config.RuntimeConfig
	fetchChainID ChainIDFetcher
}

// NewNetworkResolverAdapter creates a resolver that queries each node for its chain ID
func NewNetworkResolverAdapter(cfg *config.RuntimeConfig) *NetworkResolverAdapter {
	return &NetworkResolverAdapter{
		cfg:          cfg,
		fetchChainID: blockchain.FetchChainID,
	}
}

// GetNetworks returns configured network names in sorted order
func (a *NetworkResolverAdapter) GetNetworks(ctx context.Context) []string {
	if a.cfg.FoundryConfig == nil {
		return nil
	}
	names := lo.Keys(a.cfg.FoundryConfig.RpcEndpoints)
	sort.Strings(names)
	return names
}

// ResolveNetwork resolves name and fetches its chain ID
func (a *NetworkResolverAdapter) ResolveNetwork(ctx context.Context, name string) (*config.Network, error) {
	network, err := internalconfig.ResolveNetwork(a.cfg.FoundryConfig, name)
	if err != nil {
		return nil, err
	}

	chainID, err := a.fetchChainID(ctx, network.RPCURL)
	if err != nil {
		return nil, err
	}
	network.ChainID = chainID

	return network, nil
}

// Ensure the adapter implements the interface
var _ usecase.NetworkResolver = (*NetworkResolverAdapter)(nil)
