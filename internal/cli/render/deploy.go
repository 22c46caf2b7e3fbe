package render

import (
	"fmt"
	"io"

	"github.com/trebuchet-org/icodeploy/internal/usecase"
)

// DeployRenderer prints the address of a confirmed deployment
type DeployRenderer struct {
	out io.Writer
}

// NewDeployRenderer creates a new deploy renderer
func NewDeployRenderer(out io.Writer) *DeployRenderer {
	return &DeployRenderer{out: out}
}

// Render writes the checksummed contract address on its own line
func (r *DeployRenderer) Render(result *usecase.DeployContractResult) error {
	if result == nil || result.Contract == nil {
		return fmt.Errorf("no deployment to render")
	}
	_, err := fmt.Fprintln(r.out, result.Contract.Address.Hex())
	return err
}

var _ Renderer[*usecase.DeployContractResult] = (*DeployRenderer)(nil)
