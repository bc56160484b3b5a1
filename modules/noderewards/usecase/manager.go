package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/node-rewards/common/errs"
	"github.com/gaze-network/node-rewards/modules/noderewards/collaborator"
	"github.com/gaze-network/node-rewards/modules/noderewards/datagateway"
	"github.com/gaze-network/node-rewards/modules/noderewards/internal/distributor"
	"github.com/gaze-network/node-rewards/modules/noderewards/internal/entity"
	"github.com/gaze-network/node-rewards/pkg/logger"
	"github.com/gaze-network/node-rewards/pkg/logger/slogx"
)

// Manager is the reward accounting engine. Every exported operation holds the manager
// lock for its whole duration and runs in a single datagateway transaction, so an
// operation either applies completely or not at all.
type Manager struct {
	mu                sync.Mutex
	datagateway       datagateway.NodeRewardsDataGateway
	distributor       *distributor.Distributor
	token             collaborator.Token
	legacy            collaborator.LegacySource
	defaultNodeType   string
	migrationNodeType string
	clock             func() time.Time
}

type Options struct {
	DefaultNodeType   string
	MigrationNodeType string // defaults to DefaultNodeType
	Clock             func() time.Time
}

// NewManager creates a manager. legacy may be nil, in which case Migrate is unsupported.
func NewManager(dg datagateway.NodeRewardsDataGateway, dist *distributor.Distributor, token collaborator.Token, legacy collaborator.LegacySource, opts Options) *Manager {
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	migrationNodeType := opts.MigrationNodeType
	if migrationNodeType == "" {
		migrationNodeType = opts.DefaultNodeType
	}
	return &Manager{
		datagateway:       dg,
		distributor:       dist,
		token:             token,
		legacy:            legacy,
		defaultNodeType:   opts.DefaultNodeType,
		migrationNodeType: migrationNodeType,
		clock:             clock,
	}
}

func (m *Manager) now() time.Time {
	return entity.Unix(m.clock())
}

// run executes fn inside a new transaction and commits when fn succeeds.
func (m *Manager) run(ctx context.Context, fn func(dgTx datagateway.NodeRewardsDataGatewayWithTx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	dgTx, err := m.datagateway.BeginNodeRewardsTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer func() {
		if err := dgTx.Rollback(ctx); err != nil {
			logger.ErrorContext(ctx, "failed to rollback transaction", err)
		}
	}()

	if err := fn(dgTx); err != nil {
		return errors.WithStack(err)
	}
	if err := dgTx.Commit(ctx); err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}
	return nil
}

func unknownType(name string) error {
	return errors.Mark(errors.Wrapf(errs.UnknownType, "node type %q", name), errs.NotFound)
}

// resolveType returns the named node type. An empty name resolves to the default node type.
func (m *Manager) resolveType(ctx context.Context, dg datagateway.NodeTypeDataGateway, name string) (entity.NodeType, error) {
	if name == "" {
		name = m.defaultNodeType
	}
	nodeType, err := dg.GetNodeType(ctx, name)
	if err != nil {
		if errors.Is(err, errs.NotFound) {
			return entity.NodeType{}, unknownType(name)
		}
		return entity.NodeType{}, errors.Wrap(err, "failed to get node type")
	}
	return nodeType, nil
}

// ownedNode returns the node with id, checking that owner holds it.
func ownedNode(ctx context.Context, dg datagateway.NodeDataGateway, owner common.Address, id uint64) (entity.Node, error) {
	node, err := dg.GetNodeByID(ctx, id)
	if err != nil {
		return entity.Node{}, errors.WithStack(err)
	}
	if node.Owner != owner {
		return entity.Node{}, errors.Wrapf(errs.NotOwner, "node %d is not owned by %s", id, owner)
	}
	return node, nil
}

func validateOwner(owner common.Address) error {
	if owner == (common.Address{}) {
		return errors.Wrap(errs.InvalidArgument, "owner address is required")
	}
	return nil
}

func ownerAttr(owner common.Address) any {
	return slogx.Stringer("owner", owner)
}
