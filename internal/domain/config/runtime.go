package config

import (
	"time"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string

	// Context settings
	Namespace string   // Maps to foundry profile
	Network   *Network // always resolved, defaults to localhost

	// Execution settings
	Debug   bool
	Timeout time.Duration // zero means wait as long as the node does

	// Deployer key (hex, optional 0x prefix). Empty falls back to the
	// local dev account on chain 31337.
	PrivateKey string

	// Resolved configurations
	FoundryConfig *FoundryConfig
}

// Network represents network configuration
type Network struct {
	Name    string `json:"name"`
	RPCURL  string `json:"rpcUrl"`
	ChainID uint64 `json:"chainId,omitempty"` // zero until fetched from the node
}

// OutDir returns the configured artifact directory for the active profile
func (c *RuntimeConfig) OutDir() string {
	if c.FoundryConfig != nil {
		if profile, ok := c.FoundryConfig.Profile[c.Namespace]; ok && profile.OutPath != "" {
			return profile.OutPath
		}
	}
	return "out"
}
