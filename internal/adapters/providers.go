package adapters

import (
	"github.com/google/wire"
	"github.com/trebuchet-org/icodeploy/internal/adapters/blockchain"
	internalconfig "github.com/trebuchet-org/icodeploy/internal/adapters/config"
	"github.com/trebuchet-org/icodeploy/internal/adapters/contracts"
	"github.com/trebuchet-org/icodeploy/internal/usecase"
)

// ContractsSet provides the artifact index
var ContractsSet = wire.NewSet(
	contracts.NewIndexer,
	wire.Bind(new(blockchain.ArtifactSource), new(*contracts.Indexer)),
)

// BlockchainSet provides RPC-backed contract factories
var BlockchainSet = wire.NewSet(
	blockchain.NewConnection,
	wire.Bind(new(blockchain.Connector), new(*blockchain.Connection)),

	blockchain.NewFactoryResolver,
	wire.Bind(new(usecase.ContractFactoryResolver), new(*blockchain.FactoryResolver)),
)

// ConfigSet provides configuration-based implementations
var ConfigSet = wire.NewSet(
	internalconfig.NewNetworkResolverAdapter,
	wire.Bind(new(usecase.NetworkResolver), new(*internalconfig.NetworkResolverAdapter)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	ContractsSet,
	BlockchainSet,
	ConfigSet,
)
