package contracts

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/icodeploy/internal/domain"
)

const icoABI = `[{"type":"constructor","inputs":[{"name":"token","type":"address"},{"name":"wallet","type":"address"},{"name":"rate","type":"uint256"}],"stateMutability":"nonpayable"}]`

const foundryArtifact = `{
  "abi": ` + icoABI + `,
  "bytecode": {"object": "0x600a600c600039600a6000f3602a60005260206000f3", "linkReferences": {}},
  "deployedBytecode": {"object": "0x602a60005260206000f3"},
  "metadata": {"settings": {"compilationTarget": {"src/ICO.sol": "ICO"}}}
}`

const hardhatArtifact = `{
  "_format": "hh-sol-artifact-1",
  "contractName": "ICOSale",
  "sourceName": "contracts/ICOSale.sol",
  "abi": ` + icoABI + `,
  "bytecode": "0x600a600c600039600a6000f3602a60005260206000f3",
  "deployedBytecode": "0x602a60005260206000f3"
}`

const interfaceArtifact = `{
  "abi": [],
  "bytecode": {"object": "0x"},
  "metadata": {"settings": {"compilationTarget": {"src/IToken.sol": "IToken"}}}
}`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func newTestProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "out", "ICO.sol", "ICO.json"), foundryArtifact)
	writeFile(t, filepath.Join(root, "out", "IToken.sol", "IToken.json"), interfaceArtifact)
	writeFile(t, filepath.Join(root, "out", "build-info", "abc.json"), `{"id":"abc"}`)
	writeFile(t, filepath.Join(root, "artifacts", "contracts", "ICOSale.sol", "ICOSale.json"), hardhatArtifact)
	writeFile(t, filepath.Join(root, "artifacts", "contracts", "ICOSale.sol", "ICOSale.dbg.json"), `{"buildInfo":"../../build-info/x.json"}`)
	return root
}

func TestIndexer_GetContract(t *testing.T) {
	ctx := context.Background()
	root := newTestProject(t)
	indexer := NewIndexerWithBuild(root, []string{"out", "artifacts"}, nil)

	t.Run("foundry artifact by name", func(t *testing.T) {
		artifact, err := indexer.GetContract(ctx, "ICO")
		require.NoError(t, err)
		assert.Equal(t, "ICO", artifact.Name)
		assert.Equal(t, "src/ICO.sol", artifact.Path)
		assert.Len(t, artifact.ABI.Constructor.Inputs, 3)
		assert.NotEmpty(t, artifact.Bytecode)
	})

	t.Run("hardhat artifact by path:name", func(t *testing.T) {
		artifact, err := indexer.GetContract(ctx, "contracts/ICOSale.sol:ICOSale")
		require.NoError(t, err)
		assert.Equal(t, "ICOSale", artifact.Name)
	})

	t.Run("interfaces are not deployable", func(t *testing.T) {
		_, err := indexer.GetContract(ctx, "IToken")
		assert.ErrorIs(t, err, domain.ErrContractNotFound)
	})

	t.Run("missing contract suggests close names", func(t *testing.T) {
		_, err := indexer.GetContract(ctx, "ICOSal")
		require.ErrorIs(t, err, domain.ErrContractNotFound)

		var notFound domain.ContractNotFoundErr
		require.ErrorAs(t, err, &notFound)
		assert.Contains(t, notFound.Suggestions, "ICOSale")
	})
}

func TestIndexer_Ambiguous(t *testing.T) {
	root := newTestProject(t)
	writeFile(t, filepath.Join(root, "out", "Legacy.sol", "ICO.json"),
		`{"abi": [], "bytecode": {"object": "0x6000"}, "metadata": {"settings": {"compilationTarget": {"src/legacy/ICO.sol": "ICO"}}}}`)

	indexer := NewIndexerWithBuild(root, []string{"out"}, nil)

	_, err := indexer.GetContract(context.Background(), "ICO")
	require.ErrorIs(t, err, domain.ErrAmbiguousContract)
	assert.Contains(t, err.Error(), "src/ICO.sol")
	assert.Contains(t, err.Error(), "src/legacy/ICO.sol")

	artifact, err := indexer.GetContract(context.Background(), "src/legacy/ICO.sol:ICO")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x60, 0x00}, artifact.Bytecode)
}

func TestIndexer_BuildsWhenNoArtifacts(t *testing.T) {
	root := t.TempDir()
	builds := 0
	build := func(ctx context.Context, projectRoot string) error {
		builds++
		writeFile(t, filepath.Join(projectRoot, "out", "ICO.sol", "ICO.json"), foundryArtifact)
		return nil
	}

	indexer := NewIndexerWithBuild(root, []string{"out"}, build)

	artifact, err := indexer.GetContract(context.Background(), "ICO")
	require.NoError(t, err)
	assert.Equal(t, "ICO", artifact.Name)

	_, err = indexer.GetContract(context.Background(), "ICO")
	require.NoError(t, err)
	assert.Equal(t, 1, builds)
}

func TestIndexer_NoArtifacts(t *testing.T) {
	indexer := NewIndexerWithBuild(t.TempDir(), []string{"out"}, nil)

	_, err := indexer.GetContract(context.Background(), "ICO")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no artifacts found")
}
