package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/icodeploy/internal/domain/config"
)

// EnvPrefix is prepended to every environment override, e.g. ICODEPLOY_NETWORK
const EnvPrefix = "ICODEPLOY"

// projectMarkers identify a project root, checked in order
var projectMarkers = []string{
	"foundry.toml",
	"hardhat.config.ts",
	"hardhat.config.js",
}

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}

	cfg := &config.RuntimeConfig{
		ProjectRoot: projectRoot,
		Namespace:   v.GetString("namespace"),
		Debug:       v.GetBool("debug"),
		Timeout:     v.GetDuration("timeout"),
	}

	foundryConfig, err := LoadFoundryConfig(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to load foundry config: %w", err)
	}
	cfg.FoundryConfig = foundryConfig

	network, err := ResolveNetwork(foundryConfig, v.GetString("network"))
	if err != nil {
		return nil, err
	}
	cfg.Network = network

	cfg.PrivateKey = resolvePrivateKey(v, foundryConfig, cfg.Namespace)

	return cfg, nil
}

// resolvePrivateKey prefers ICODEPLOY_PRIVATE_KEY over the profile's deployer
func resolvePrivateKey(v *viper.Viper, fc *config.FoundryConfig, namespace string) string {
	if key := v.GetString("private_key"); key != "" {
		return key
	}
	if profile, ok := fc.Profile[namespace]; ok && profile.Deployer != nil {
		return profile.Deployer.PrivateKey
	}
	return ""
}

// FindProjectRoot walks up from current directory to find a project marker
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		for _, marker := range projectMarkers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a Foundry or Hardhat project (foundry.toml not found)")
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance bound to the command flags
func SetupViper(cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	v.SetDefault("namespace", "default")
	v.SetDefault("network", "")
	v.SetDefault("timeout", "0s")
	v.SetDefault("debug", false)

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if err := v.BindPFlag(f.Name, f); err != nil {
			panic(err)
		}
	})

	return v
}
