package domain

import (
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Artifact is a compiled contract ready for deployment
type Artifact struct {
	Name         string
	Path         string // source path, e.g. src/ICO.sol
	ArtifactPath string
	ABI          abi.ABI
	Bytecode     []byte
}

// Key returns the fully qualified "path:Name" reference
func (a *Artifact) Key() string {
	return fmt.Sprintf("%s:%s", a.Path, a.Name)
}
