package config

import (
	"fmt"
	"strings"

	"github.com/trebuchet-org/icodeploy/internal/domain"
	"github.com/trebuchet-org/icodeploy/internal/domain/config"
)

const (
	// DefaultNetwork is used when no network is given
	DefaultNetwork = "localhost"

	// DefaultRPCURL is where anvil and hardhat node listen by default
	DefaultRPCURL = "http://127.0.0.1:8545"
)

// ResolveNetwork resolves a network name from [rpc_endpoints] or a raw RPC URL
func ResolveNetwork(fc *config.FoundryConfig, name string) (*config.Network, error) {
	if name == "" {
		name = DefaultNetwork
	}

	if fc != nil {
		if rpcURL, ok := fc.RpcEndpoints[name]; ok {
			if rpcURL == "" {
				return nil, fmt.Errorf("RPC URL for network '%s' is empty (is its environment variable set?)", name)
			}
			return &config.Network{Name: name, RPCURL: rpcURL}, nil
		}
	}

	if isRPCURL(name) {
		return &config.Network{Name: "custom", RPCURL: name}, nil
	}

	if name == DefaultNetwork {
		return &config.Network{Name: name, RPCURL: DefaultRPCURL}, nil
	}

	return nil, fmt.Errorf("%w: '%s' is not in foundry.toml [rpc_endpoints]", domain.ErrNetworkNotFound, name)
}

func isRPCURL(input string) bool {
	for _, scheme := range []string{"http://", "https://", "ws://", "wss://"} {
		if strings.HasPrefix(input, scheme) {
			return true
		}
	}
	return false
}
