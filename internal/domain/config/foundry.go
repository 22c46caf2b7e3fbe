package config

// FoundryConfig represents the parts of foundry.toml icodeploy reads
type FoundryConfig struct {
	Profile      map[string]ProfileConfig `toml:"profile"`
	RpcEndpoints map[string]string        `toml:"rpc_endpoints"`
}

// ProfileConfig represents a [profile.<name>] section
type ProfileConfig struct {
	SrcPath  string          `toml:"src,omitempty"`
	OutPath  string          `toml:"out,omitempty"`
	Deployer *DeployerConfig `toml:"deployer,omitempty"`
}

// DeployerConfig represents [profile.<name>.deployer]
type DeployerConfig struct {
	PrivateKey string `toml:"private_key,omitempty"` //nolint:gosec // holds env var reference, not a literal secret
}
