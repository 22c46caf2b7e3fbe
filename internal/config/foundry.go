package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/trebuchet-org/icodeploy/internal/domain/config"
)

// LoadFoundryConfig loads .env files and parses foundry.toml with
// environment variables expanded. A missing foundry.toml yields an empty
// config so Hardhat-only projects still work.
func LoadFoundryConfig(projectRoot string) (*config.FoundryConfig, error) {
	envFiles := []string{
		filepath.Join(projectRoot, ".env"),
		filepath.Join(projectRoot, ".env.local"),
	}

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", envFile, err)
			}
		}
	}

	cfg := &config.FoundryConfig{
		Profile:      make(map[string]config.ProfileConfig),
		RpcEndpoints: make(map[string]string),
	}

	foundryPath := filepath.Join(projectRoot, "foundry.toml")
	if _, err := toml.DecodeFile(foundryPath, cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to parse foundry.toml: %w", err)
	}

	for name, url := range cfg.RpcEndpoints {
		cfg.RpcEndpoints[name] = os.ExpandEnv(url)
	}

	for name, profile := range cfg.Profile {
		if profile.Deployer != nil {
			profile.Deployer.PrivateKey = os.ExpandEnv(profile.Deployer.PrivateKey)
			cfg.Profile[name] = profile
		}
	}

	return cfg, nil
}
