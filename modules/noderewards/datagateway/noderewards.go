package datagateway

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/node-rewards/modules/noderewards/internal/entity"
	"github.com/gaze-network/uint128"
)

type NodeRewardsDataGateway interface {
	NodeTypeDataGateway
	NodeDataGateway
	OwnerDataGateway
	DepositDataGateway
	DistributorDataGateway
	BeginNodeRewardsTx(ctx context.Context) (NodeRewardsDataGatewayWithTx, error)
}

type NodeRewardsDataGatewayWithTx interface {
	NodeRewardsDataGateway
	Tx
}

type NodeTypeDataGateway interface {
	// CreateNodeType returns errs.DuplicateKey if the name is taken.
	CreateNodeType(ctx context.Context, nodeType entity.NodeType) error
	// UpdateNodeType applies update and returns the stored type after the update.
	UpdateNodeType(ctx context.Context, name string, update entity.NodeTypeUpdate) (entity.NodeType, error)
	GetNodeType(ctx context.Context, name string) (entity.NodeType, error)
	// GetNodeTypes returns every node type in insertion order.
	GetNodeTypes(ctx context.Context) ([]entity.NodeType, error)
	CountNodeTypes(ctx context.Context) (int, error)
}

type NodeDataGateway interface {
	// CreateNode appends node to the owner's collection, assigning its id.
	CreateNode(ctx context.Context, node entity.Node) (entity.Node, error)
	// GetNodeByID returns errs.IndexOutOfRange for unknown ids.
	GetNodeByID(ctx context.Context, id uint64) (entity.Node, error)
	UpdateNodeLastClaim(ctx context.Context, id uint64, lastClaimAt time.Time) error
	// DeleteNode removes a node by moving the owner's last node into its slot.
	DeleteNode(ctx context.Context, id uint64) error
	GetNodesByOwner(ctx context.Context, arg GetNodesByOwnerParams) ([]entity.Node, error)
	CountNodesByOwner(ctx context.Context, owner common.Address) (int, error)
}

type OwnerDataGateway interface {
	// GetOwner returns errs.NotFound for owners that never held a node.
	GetOwner(ctx context.Context, owner common.Address) (entity.Owner, error)
	GetOwners(ctx context.Context, arg GetOwnersParams) ([]entity.Owner, error)
	// SetOwnerMigrated creates the owner entry if absent.
	SetOwnerMigrated(ctx context.Context, owner common.Address) error
}

type DepositDataGateway interface {
	GetDeposit(ctx context.Context, owner common.Address) (uint128.Uint128, error)
	SetDeposit(ctx context.Context, owner common.Address, amount uint128.Uint128) error
}

type DistributorDataGateway interface {
	GetDistributorState(ctx context.Context) (entity.DistributorState, error)
	SaveDistributorState(ctx context.Context, state entity.DistributorState) error
}

// GetNodesByOwnerParams pages through an owner's nodes in index order. Limit 0 reads to the end.
type GetNodesByOwnerParams struct {
	Owner  common.Address
	Offset int
	Limit  int
}

// GetOwnersParams pages through owners in position order. Limit 0 reads to the end.
type GetOwnersParams struct {
	Offset int
	Limit  int
}
