package blockchain

import (
	"context"
	"log/slog"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/icodeploy/internal/domain"
	"github.com/trebuchet-org/icodeploy/internal/domain/config"
	"github.com/trebuchet-org/icodeploy/pkg/anvil"
)

func TestNewTransactor(t *testing.T) {
	t.Run("local chain falls back to dev account", func(t *testing.T) {
		opts, err := NewTransactor("", big.NewInt(LocalChainID))
		require.NoError(t, err)
		assert.Equal(t, common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"), opts.From)
	})

	t.Run("other chains require a key", func(t *testing.T) {
		_, err := NewTransactor("", big.NewInt(11155111))
		assert.ErrorIs(t, err, domain.ErrNoDeployer)
	})

	t.Run("accepts 0x-prefixed key", func(t *testing.T) {
		// anvil account 1
		opts, err := NewTransactor("0x59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d", big.NewInt(1))
		require.NoError(t, err)
		assert.Equal(t, common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8"), opts.From)
	})

	t.Run("rejects malformed key", func(t *testing.T) {
		_, err := NewTransactor("0xnotakey", big.NewInt(1))
		assert.Error(t, err)
	})
}

func TestConnection_Unreachable(t *testing.T) {
	cfg := &config.RuntimeConfig{
		Network: &config.Network{Name: "custom", RPCURL: "http://127.0.0.1:1"},
	}
	conn := NewConnection(cfg, slog.New(slog.DiscardHandler))
	defer conn.Close()

	_, _, err := conn.Open(context.Background())
	assert.ErrorContains(t, err, "failed to get chain ID from custom")
}

func TestConnection_Anvil(t *testing.T) {
	if testing.Short() || !anvil.Available() {
		t.Skip("anvil not available")
	}

	ctx := context.Background()
	node, err := anvil.Start(ctx, anvil.DefaultChainID)
	require.NoError(t, err)
	t.Cleanup(func() { _ = node.Stop() })

	cfg := &config.RuntimeConfig{
		Network: &config.Network{Name: "anvil", RPCURL: node.RPCURL()},
	}
	conn := NewConnection(cfg, slog.New(slog.DiscardHandler))
	defer conn.Close()

	backend, opts, err := conn.Open(ctx)
	require.NoError(t, err)
	assert.NotNil(t, backend)
	assert.Equal(t, uint64(LocalChainID), cfg.Network.ChainID)
	assert.Equal(t, common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"), opts.From)

	again, _, err := conn.Open(ctx)
	require.NoError(t, err)
	assert.Same(t, backend, again)

	chainID, err := FetchChainID(ctx, node.RPCURL())
	require.NoError(t, err)
	assert.Equal(t, uint64(LocalChainID), chainID)
}
