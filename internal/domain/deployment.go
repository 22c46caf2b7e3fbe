package domain

import (
	"github.com/ethereum/go-ethereum/common"
)

// DefaultContractName is the contract deployed by icodeploy
const DefaultContractName = "ICO"

// DefaultConstructorArgs are passed to the ICO constructor in order:
// the token address, the wallet receiving funds and the rate.
var DefaultConstructorArgs = []string{
	"0x64ddB6c1D4dFa10042d02a08bD1373412F9d4b17",
	"0x9396B453Fad71816cA9f152Ae785276a1D578492",
	"10000",
}

// DeploymentRequest describes a single contract creation
type DeploymentRequest struct {
	ContractName    string
	ConstructorArgs []string
}

// DefaultDeploymentRequest returns the ICO deployment request
func DefaultDeploymentRequest() DeploymentRequest {
	args := make([]string, len(DefaultConstructorArgs))
	copy(args, DefaultConstructorArgs)
	return DeploymentRequest{
		ContractName:    DefaultContractName,
		ConstructorArgs: args,
	}
}

// DeploymentState tracks a deployment from submission to confirmation
type DeploymentState string

const (
	StateNotDeployed DeploymentState = "not-deployed"
	StatePending     DeploymentState = "pending"
	StateDeployed    DeploymentState = "deployed"
	StateFailed      DeploymentState = "failed"
)

// DeploymentStage names the step a deployment is in
type DeploymentStage string

const (
	StageResolve DeploymentStage = "resolve"
	StageSubmit  DeploymentStage = "submit"
	StageConfirm DeploymentStage = "confirm"
)

// DeployedContract is a confirmed contract creation
type DeployedContract struct {
	Address     common.Address
	TxHash      common.Hash
	BlockNumber uint64
}
