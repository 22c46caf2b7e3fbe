package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/trebuchet-org/icodeploy/internal/domain"
)

// DeployingMessage is printed once the factory is resolved
const DeployingMessage = "Deploying Contract . . . . "

// DeployContractResult contains the result of a deployment
type DeployContractResult struct {
	Request  domain.DeploymentRequest
	Contract *domain.DeployedContract
	State    domain.DeploymentState
}

// DeployContract resolves a contract factory, deploys it once and waits
// for the creation to be confirmed
type DeployContract struct {
	factories ContractFactoryResolver
	progress  ProgressSink
	log       *slog.Logger
}

// NewDeployContract creates a new DeployContract use case
func NewDeployContract(factories ContractFactoryResolver, progress ProgressSink, log *slog.Logger) *DeployContract {
	if progress == nil {
		progress = NopProgress{}
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &DeployContract{
		factories: factories,
		progress:  progress,
		log:       log,
	}
}

// Run executes the use case. Every failure is returned as *domain.DeploymentFailure.
func (uc *DeployContract) Run(ctx context.Context, req domain.DeploymentRequest) (*DeployContractResult, error) {
	log := uc.log.With("contract", req.ContractName)

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   string(domain.StageResolve),
		Message: fmt.Sprintf("Resolving %s", req.ContractName),
		Spinner: true,
	})

	factory, err := uc.factories.GetContractFactory(ctx, req.ContractName)
	if err != nil {
		return nil, uc.fail(ctx, req, domain.StageResolve, err)
	}

	uc.progress.OnProgress(ctx, ProgressEvent{Stage: string(domain.StageSubmit)})
	uc.progress.Info(DeployingMessage)
	log.Debug("submitting deployment", "args", req.ConstructorArgs)

	pending, err := factory.Deploy(ctx, req.ConstructorArgs...)
	if err != nil {
		return nil, uc.fail(ctx, req, domain.StageSubmit, err)
	}

	log.Info("deployment submitted", "state", domain.StatePending, "tx", pending.TxHash().Hex(), "address", pending.Address().Hex())
	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   string(domain.StageConfirm),
		Message: fmt.Sprintf("Waiting for %s", pending.TxHash().Hex()),
		Spinner: true,
	})

	contract, err := pending.Deployed(ctx)
	if err != nil {
		return nil, uc.fail(ctx, req, domain.StageConfirm, err)
	}

	uc.progress.OnProgress(ctx, ProgressEvent{Stage: string(domain.StateDeployed)})
	log.Info("deployment confirmed", "state", domain.StateDeployed, "address", contract.Address.Hex(), "block", contract.BlockNumber)

	return &DeployContractResult{
		Request:  req,
		Contract: contract,
		State:    domain.StateDeployed,
	}, nil
}

func (uc *DeployContract) fail(ctx context.Context, req domain.DeploymentRequest, stage domain.DeploymentStage, err error) error {
	uc.progress.OnProgress(ctx, ProgressEvent{Stage: string(domain.StateFailed)})
	uc.log.Debug("deployment failed", "contract", req.ContractName, "stage", stage, "state", domain.StateFailed, "error", err)
	return &domain.DeploymentFailure{
		Contract: req.ContractName,
		Stage:    stage,
		Err:      err,
	}
}
