package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/icodeploy/internal/domain"
)

const testFoundryToml = `
[profile.default]
src = "src"
out = "build"

[profile.default.deployer]
private_key = "${ICODEPLOY_TEST_DEPLOYER_KEY}"

[profile.live]
src = "src"

[rpc_endpoints]
sepolia = "${ICODEPLOY_TEST_SEPOLIA_RPC}"
local = "http://127.0.0.1:9545"
`

func writeProject(t *testing.T, foundryToml, dotenv string) string {
	t.Helper()
	dir := t.TempDir()
	if foundryToml != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "foundry.toml"), []byte(foundryToml), 0644))
	}
	if dotenv != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(dotenv), 0644))
	}
	return dir
}

func newTestViper(projectRoot string) *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetDefault("namespace", "default")
	v.SetDefault("timeout", "0s")
	v.Set("project_root", projectRoot)
	return v
}

func TestProvider(t *testing.T) {
	t.Run("loads foundry.toml and expands .env values", func(t *testing.T) {
		dir := writeProject(t, testFoundryToml,
			"ICODEPLOY_TEST_DEPLOYER_KEY=0xabc123\nICODEPLOY_TEST_SEPOLIA_RPC=https://sepolia.example.org\n")
		t.Cleanup(func() {
			os.Unsetenv("ICODEPLOY_TEST_DEPLOYER_KEY")
			os.Unsetenv("ICODEPLOY_TEST_SEPOLIA_RPC")
		})

		v := newTestViper(dir)
		v.Set("network", "sepolia")

		cfg, err := Provider(v)
		require.NoError(t, err)

		assert.Equal(t, dir, cfg.ProjectRoot)
		assert.Equal(t, "default", cfg.Namespace)
		assert.Equal(t, "sepolia", cfg.Network.Name)
		assert.Equal(t, "https://sepolia.example.org", cfg.Network.RPCURL)
		assert.Equal(t, "0xabc123", cfg.PrivateKey)
		assert.Equal(t, "build", cfg.OutDir())
		assert.Equal(t, time.Duration(0), cfg.Timeout)
	})

	t.Run("environment key overrides profile deployer", func(t *testing.T) {
		dir := writeProject(t, testFoundryToml, "")
		t.Setenv("ICODEPLOY_PRIVATE_KEY", "0xfeed")

		cfg, err := Provider(newTestViper(dir))
		require.NoError(t, err)
		assert.Equal(t, "0xfeed", cfg.PrivateKey)
	})

	t.Run("profile without deployer leaves key empty", func(t *testing.T) {
		dir := writeProject(t, testFoundryToml, "")

		v := newTestViper(dir)
		v.Set("namespace", "live")

		cfg, err := Provider(v)
		require.NoError(t, err)
		assert.Empty(t, cfg.PrivateKey)
		assert.Equal(t, "out", cfg.OutDir())
	})

	t.Run("defaults to localhost without foundry.toml", func(t *testing.T) {
		dir := writeProject(t, "", "")
		require.NoError(t, os.WriteFile(filepath.Join(dir, "hardhat.config.js"), []byte("module.exports = {}"), 0644))

		cfg, err := Provider(newTestViper(dir))
		require.NoError(t, err)
		assert.Equal(t, DefaultNetwork, cfg.Network.Name)
		assert.Equal(t, DefaultRPCURL, cfg.Network.RPCURL)
	})

	t.Run("unknown network fails", func(t *testing.T) {
		dir := writeProject(t, testFoundryToml, "")

		v := newTestViper(dir)
		v.Set("network", "mainnet")

		_, err := Provider(v)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNetworkNotFound)
	})

	t.Run("timeout is parsed as duration", func(t *testing.T) {
		dir := writeProject(t, testFoundryToml, "")

		v := newTestViper(dir)
		v.Set("timeout", "90s")

		cfg, err := Provider(v)
		require.NoError(t, err)
		assert.Equal(t, 90*time.Second, cfg.Timeout)
	})

	t.Run("invalid foundry.toml fails", func(t *testing.T) {
		dir := writeProject(t, "[rpc_endpoints\n", "")

		_, err := Provider(newTestViper(dir))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse foundry.toml")
	})
}

func TestFindProjectRoot(t *testing.T) {
	dir := writeProject(t, testFoundryToml, "")
	nested := filepath.Join(dir, "script", "deploy")
	require.NoError(t, os.MkdirAll(nested, 0755))
	t.Chdir(nested)

	root, err := FindProjectRoot()
	require.NoError(t, err)

	// TempDir may live behind a symlink (macOS), compare resolved paths
	want, _ := filepath.EvalSymlinks(dir)
	got, _ := filepath.EvalSymlinks(root)
	assert.Equal(t, want, got)
}
