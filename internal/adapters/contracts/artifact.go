package contracts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/trebuchet-org/icodeploy/internal/domain"
)

// artifactFile covers both Foundry (out/) and Hardhat (artifacts/) layouts
type artifactFile struct {
	ContractName string          `json:"contractName"` // Hardhat
	SourceName   string          `json:"sourceName"`   // Hardhat
	ABI          json.RawMessage `json:"abi"`
	Bytecode     bytecodeField   `json:"bytecode"`
	Metadata     json.RawMessage `json:"metadata"` // Foundry
}

type foundryMetadata struct {
	Settings struct {
		CompilationTarget map[string]string `json:"compilationTarget"`
	} `json:"settings"`
}

// bytecodeField accepts Hardhat's plain string and Foundry's {"object": ...}
type bytecodeField string

func (b *bytecodeField) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*b = bytecodeField(s)
		return nil
	}

	var obj struct {
		Object string `json:"object"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*b = bytecodeField(obj.Object)
	return nil
}

// loadArtifact parses an artifact file. It returns nil, nil for files that
// are not deployable (interfaces, abstract contracts, unlinked bytecode).
func loadArtifact(path string) (*domain.Artifact, error) {
	data, err := os.ReadFile(path) //nolint:gosec // walks project artifact dirs only
	if err != nil {
		return nil, err
	}

	var file artifactFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, nil
	}

	code := string(file.Bytecode)
	if code == "" || code == "0x" || len(file.ABI) == 0 {
		return nil, nil
	}

	bytecode, err := hexutil.Decode(code)
	if err != nil {
		// unlinked library placeholders are not valid hex
		return nil, nil
	}

	parsed, err := abi.JSON(bytes.NewReader(file.ABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ABI in %s: %w", path, err)
	}

	name, source := file.ContractName, file.SourceName
	if name == "" {
		name, source = foundryTarget(file.Metadata, path)
	}

	return &domain.Artifact{
		Name:         name,
		Path:         source,
		ArtifactPath: path,
		ABI:          parsed,
		Bytecode:     bytecode,
	}, nil
}

// foundryTarget reads the compilation target, falling back to the
// out/<Source>.sol/<Name>.json naming convention
func foundryTarget(metadata json.RawMessage, path string) (name, source string) {
	var meta foundryMetadata
	if len(metadata) > 0 && json.Unmarshal(metadata, &meta) == nil {
		for src, contract := range meta.Settings.CompilationTarget {
			return contract, src
		}
	}
	return strings.TrimSuffix(filepath.Base(path), ".json"), filepath.Base(filepath.Dir(path))
}
