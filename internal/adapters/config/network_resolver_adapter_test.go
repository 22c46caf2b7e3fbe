package config

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/icodeploy/internal/domain/config"
)

func TestNetworkResolverAdapter(t *testing.T) {
	cfg := &config.RuntimeConfig{
		FoundryConfig: &config.FoundryConfig{
			RpcEndpoints: map[string]string{
				"sepolia": "https://rpc.sepolia.org",
				"anvil":   "http://127.0.0.1:8545",
			},
		},
	}

	adapter := NewNetworkResolverAdapter(cfg)
	adapter.fetchChainID = func(ctx context.Context, rpcURL string) (uint64, error) {
		if rpcURL == "http://127.0.0.1:8545" {
			return 31337, nil
		}
		return 0, errors.New("connection refused")
	}

	ctx := context.Background()
	assert.Equal(t, []string{"anvil", "sepolia"}, adapter.GetNetworks(ctx))

	network, err := adapter.ResolveNetwork(ctx, "anvil")
	require.NoError(t, err)
	assert.Equal(t, uint64(31337), network.ChainID)

	_, err = adapter.ResolveNetwork(ctx, "sepolia")
	assert.Error(t, err)
}
