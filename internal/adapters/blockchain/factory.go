package blockchain

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/trebuchet-org/icodeploy/internal/domain"
	"github.com/trebuchet-org/icodeploy/internal/usecase"
)

// ArtifactSource provides compiled contracts by name
type ArtifactSource interface {
	GetContract(ctx context.Context, key string) (*domain.Artifact, error)
}

// FactoryResolver implements usecase.ContractFactoryResolver on top of
// compiled artifacts and an RPC connection
type FactoryResolver struct {
	artifacts ArtifactSource
	connector Connector
	log       *slog.Logger
}

// NewFactoryResolver creates a new factory resolver
func NewFactoryResolver(artifacts ArtifactSource, connector Connector, log *slog.Logger) *FactoryResolver {
	return &FactoryResolver{
		artifacts: artifacts,
		connector: connector,
		log:       log,
	}
}

// GetContractFactory resolves the artifact and binds it to the deployer account
func (r *FactoryResolver) GetContractFactory(ctx context.Context, name string) (usecase.ContractFactory, error) {
	artifact, err := r.artifacts.GetContract(ctx, name)
	if err != nil {
		return nil, err
	}
	r.log.Debug("resolved artifact", "contract", artifact.Key(), "artifact", artifact.ArtifactPath)

	backend, opts, err := r.connector.Open(ctx)
	if err != nil {
		return nil, err
	}

	return NewContractFactory(artifact, backend, opts, r.log), nil
}

// ContractFactory deploys one artifact from one account
type ContractFactory struct {
	artifact *domain.Artifact
	backend  Backend
	opts     *bind.TransactOpts
	log      *slog.Logger
}

// NewContractFactory creates a factory for artifact
func NewContractFactory(artifact *domain.Artifact, backend Backend, opts *bind.TransactOpts, log *slog.Logger) *ContractFactory {
	return &ContractFactory{
		artifact: artifact,
		backend:  backend,
		opts:     opts,
		log:      log,
	}
}

// Deploy encodes args against the constructor and submits the creation transaction
func (f *ContractFactory) Deploy(ctx context.Context, args ...string) (usecase.PendingDeployment, error) {
	values, err := CoerceArgs(f.artifact.ABI.Constructor.Inputs, args)
	if err != nil {
		return nil, err
	}

	opts := *f.opts
	opts.Context = ctx

	address, tx, _, err := bind.DeployContract(&opts, f.artifact.ABI, f.artifact.Bytecode, f.backend, values...)
	if err != nil {
		return nil, fmt.Errorf("failed to send deployment transaction: %w", err)
	}

	f.log.Debug("sent deployment transaction", "tx", tx.Hash().Hex(), "nonce", tx.Nonce(), "gas", tx.Gas())

	return &PendingDeployment{
		address: address,
		tx:      tx,
		backend: f.backend,
	}, nil
}

// PendingDeployment waits for a contract creation to be mined
type PendingDeployment struct {
	address common.Address
	tx      *types.Transaction
	backend bind.DeployBackend
}

func (p *PendingDeployment) TxHash() common.Hash {
	return p.tx.Hash()
}

func (p *PendingDeployment) Address() common.Address {
	return p.address
}

// Deployed blocks until the transaction is mined and code exists at the address
func (p *PendingDeployment) Deployed(ctx context.Context) (*domain.DeployedContract, error) {
	receipt, err := bind.WaitMined(ctx, p.backend, p.tx)
	if err != nil {
		return nil, fmt.Errorf("wait for receipt: %w", err)
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("transaction reverted: %s", p.tx.Hash().Hex())
	}

	address := receipt.ContractAddress
	if address == (common.Address{}) {
		address = p.address
	}

	code, err := p.backend.CodeAt(ctx, address, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to read code at %s: %w", address.Hex(), err)
	}
	if len(code) == 0 {
		return nil, fmt.Errorf("%w at %s", domain.ErrNoCodeAfterDeploy, address.Hex())
	}

	var blockNumber uint64
	if receipt.BlockNumber != nil {
		blockNumber = receipt.BlockNumber.Uint64()
	}

	return &domain.DeployedContract{
		Address:     address,
		TxHash:      p.tx.Hash(),
		BlockNumber: blockNumber,
	}, nil
}

// Ensure the adapters implement the use case ports
var (
	_ usecase.ContractFactoryResolver = (*FactoryResolver)(nil)
	_ usecase.ContractFactory         = (*ContractFactory)(nil)
	_ usecase.PendingDeployment       = (*PendingDeployment)(nil)
)
