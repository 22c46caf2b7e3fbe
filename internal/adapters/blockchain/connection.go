package blockchain

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/trebuchet-org/icodeploy/internal/domain"
	"github.com/trebuchet-org/icodeploy/internal/domain/config"
)

const (
	// LocalChainID is the chain ID used by anvil and hardhat node
	LocalChainID = 31337

	// Anvil/Hardhat dev account 0 (DO NOT use in production!)
	localDevKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

	chainIDTimeout = 5 * time.Second
)

// Backend is what deployment needs from a node
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
}

// Connector opens a backend and a signer for the configured network
type Connector interface {
	Open(ctx context.Context) (Backend, *bind.TransactOpts, error)
}

// Connection lazily dials the configured network on first use
type Connection struct {
	network    *config.Network
	privateKey string
	log        *slog.Logger

	mu     sync.Mutex
	client *ethclient.Client
	opts   *bind.TransactOpts
}

// NewConnection creates a connection for the runtime network
func NewConnection(cfg *config.RuntimeConfig, log *slog.Logger) *Connection {
	return &Connection{
		network:    cfg.Network,
		privateKey: cfg.PrivateKey,
		log:        log,
	}
}

// Open dials the node, checks the chain ID and builds the transactor
func (c *Connection) Open(ctx context.Context) (Backend, *bind.TransactOpts, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client != nil {
		return c.client, c.opts, nil
	}

	client, err := ethclient.DialContext(ctx, c.network.RPCURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to %s: %w", c.network.Name, err)
	}

	chainID, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("failed to get chain ID from %s: %w", c.network.Name, err)
	}

	if c.network.ChainID != 0 && c.network.ChainID != chainID.Uint64() {
		client.Close()
		return nil, nil, fmt.Errorf("chain ID mismatch: expected %d, got %d", c.network.ChainID, chainID.Uint64())
	}
	c.network.ChainID = chainID.Uint64()

	opts, err := NewTransactor(c.privateKey, chainID)
	if err != nil {
		client.Close()
		return nil, nil, err
	}

	c.log.Debug("connected", "network", c.network.Name, "chainId", c.network.ChainID, "deployer", opts.From.Hex())

	c.client = client
	c.opts = opts
	return client, opts, nil
}

// Close releases the RPC client
func (c *Connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client != nil {
		c.client.Close()
		c.client = nil
	}
	return nil
}

// NewTransactor builds signing options from a hex private key. An empty key
// selects the well-known dev account, but only on the local chain.
func NewTransactor(privateKey string, chainID *big.Int) (*bind.TransactOpts, error) {
	key := strings.TrimPrefix(strings.TrimSpace(privateKey), "0x")
	if key == "" {
		if chainID.Cmp(big.NewInt(LocalChainID)) != 0 {
			return nil, fmt.Errorf("%w for chain %s (set ICODEPLOY_PRIVATE_KEY or [profile.<ns>.deployer])", domain.ErrNoDeployer, chainID)
		}
		key = localDevKey
	}

	ecdsaKey, err := crypto.HexToECDSA(key)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}

	return bind.NewKeyedTransactorWithChainID(ecdsaKey, chainID)
}

// FetchChainID asks an RPC endpoint for its chain ID
func FetchChainID(ctx context.Context, rpcURL string) (uint64, error) {
	ctx, cancel := context.WithTimeout(ctx, chainIDTimeout)
	defer cancel()

	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return 0, fmt.Errorf("failed to connect: %w", err)
	}
	defer client.Close()

	chainID, err := client.ChainID(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get chain ID: %w", err)
	}
	return chainID.Uint64(), nil
}
