package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for domain operations
var (
	// ErrContractNotFound is returned when no artifact matches a contract name
	ErrContractNotFound = errors.New("contract not found")

	// ErrAmbiguousContract is returned when more than one artifact matches a contract name
	ErrAmbiguousContract = errors.New("ambiguous contract")

	// ErrInvalidArgument is returned when a constructor argument cannot be encoded
	ErrInvalidArgument = errors.New("invalid constructor argument")

	// ErrNoDeployer is returned when no deployer key is configured for a non-local chain
	ErrNoDeployer = errors.New("no deployer account configured")

	// ErrNoCodeAfterDeploy is returned when a mined creation left no code behind
	ErrNoCodeAfterDeploy = errors.New("no contract code after deployment")

	// ErrNetworkNotFound is returned when a network name can't be resolved
	ErrNetworkNotFound = errors.New("network not found")
)

// DeploymentFailure is the single error surfaced by a failed deployment.
// Stage only decorates the message; callers treat every failure alike.
type DeploymentFailure struct {
	Contract string
	Stage    DeploymentStage
	Err      error
}

func (e *DeploymentFailure) Error() string {
	return fmt.Sprintf("deployment of %s failed during %s: %v", e.Contract, e.Stage, e.Err)
}

func (e *DeploymentFailure) Unwrap() error {
	return e.Err
}

// ContractNotFoundErr reports a missing artifact along with close matches
type ContractNotFoundErr struct {
	Name        string
	Suggestions []string
}

func (e ContractNotFoundErr) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("contract not found: %s (is it compiled?)", e.Name)
	}
	return fmt.Sprintf("contract not found: %s (did you mean %s?)", e.Name, strings.Join(e.Suggestions, ", "))
}

func (e ContractNotFoundErr) Is(target error) bool {
	return target == ErrContractNotFound
}

type AmbiguousContractErr struct {
	Name    string
	Matches []*Artifact
}

func (e AmbiguousContractErr) Error() string {
	// Sort by artifact reference for consistent output
	sorted := make([]*Artifact, len(e.Matches))
	copy(sorted, e.Matches)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Key() < sorted[j].Key()
	})

	var suggestions []string
	for _, artifact := range sorted {
		suggestions = append(suggestions, fmt.Sprintf("  - %s (%s)", artifact.Name, artifact.Path))
	}

	return fmt.Sprintf("multiple contracts found matching %s - use path:contract format to disambiguate:\n%s",
		e.Name, strings.Join(suggestions, "\n"))
}

func (e AmbiguousContractErr) Is(target error) bool {
	return target == ErrAmbiguousContract
}
