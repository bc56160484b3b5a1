package usecase

import (
	"context"
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/node-rewards/modules/noderewards/datagateway"
	"github.com/gaze-network/node-rewards/modules/noderewards/internal/codec"
	"github.com/gaze-network/node-rewards/modules/noderewards/internal/entity"
	"github.com/gaze-network/node-rewards/pkg/logger"
	"github.com/gaze-network/node-rewards/pkg/logger/slogx"
)

// AddNodeType registers a new tier. The next tier may name a type that does not exist yet.
func (m *Manager) AddNodeType(ctx context.Context, nodeType entity.NodeType) error {
	err := m.run(ctx, func(dgTx datagateway.NodeRewardsDataGatewayWithTx) error {
		if err := dgTx.CreateNodeType(ctx, nodeType); err != nil {
			return errors.Wrap(err, "failed to create node type")
		}
		return nil
	})
	if err != nil {
		return errors.WithStack(err)
	}
	logger.InfoContext(ctx, "Added node type",
		slogx.String("name", nodeType.Name),
		slogx.Stringer("price", nodeType.Price),
		slogx.String("nextTier", nodeType.NextTier),
	)
	return nil
}

// ChangeNodeType applies a selective update; unset fields keep their stored values.
func (m *Manager) ChangeNodeType(ctx context.Context, name string, update entity.NodeTypeUpdate) (entity.NodeType, error) {
	var updated entity.NodeType
	err := m.run(ctx, func(dgTx datagateway.NodeRewardsDataGatewayWithTx) (err error) {
		updated, err = dgTx.UpdateNodeType(ctx, name, update)
		if err != nil {
			return errors.Wrap(err, "failed to update node type")
		}
		return nil
	})
	if err != nil {
		return entity.NodeType{}, errors.WithStack(err)
	}
	logger.InfoContext(ctx, "Changed node type", slogx.String("name", name))
	return updated, nil
}

func (m *Manager) GetNodeType(ctx context.Context, name string) (nodeType entity.NodeType, err error) {
	err = m.run(ctx, func(dgTx datagateway.NodeRewardsDataGatewayWithTx) (err error) {
		nodeType, err = m.resolveType(ctx, dgTx, name)
		return err
	})
	return nodeType, errors.WithStack(err)
}

func (m *Manager) ListNodeTypes(ctx context.Context) (types []entity.NodeType, err error) {
	err = m.run(ctx, func(dgTx datagateway.NodeRewardsDataGatewayWithTx) (err error) {
		types, err = dgTx.GetNodeTypes(ctx)
		return errors.Wrap(err, "failed to get node types")
	})
	return types, errors.WithStack(err)
}

// GetNodeTypes returns every node type as name#price#claimSeconds#rewardRate#tax#nextTier#levelUpCount
// records joined by "-", in insertion order. An empty registry yields "".
func (m *Manager) GetNodeTypes(ctx context.Context) (string, error) {
	types, err := m.ListNodeTypes(ctx)
	if err != nil {
		return "", errors.WithStack(err)
	}
	return codec.NodeTypes(slices.Values(types)), nil
}

// Bootstrap seeds types into an empty node type registry, in order.
func (m *Manager) Bootstrap(ctx context.Context, types ...entity.NodeType) error {
	seeded := false
	err := m.run(ctx, func(dgTx datagateway.NodeRewardsDataGatewayWithTx) error {
		count, err := dgTx.CountNodeTypes(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to count node types")
		}
		if count > 0 {
			return nil
		}
		for _, nodeType := range types {
			if err := dgTx.CreateNodeType(ctx, nodeType); err != nil {
				return errors.Wrapf(err, "failed to create node type %q", nodeType.Name)
			}
		}
		seeded = true
		return nil
	})
	if err != nil {
		return errors.WithStack(err)
	}
	if seeded {
		logger.InfoContext(ctx, "Seeded node types", slogx.Int("count", len(types)))
	}
	return nil
}
