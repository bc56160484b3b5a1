package usecase

import (
	"cmp"
	"context"
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/node-rewards/common/errs"
	"github.com/gaze-network/node-rewards/modules/noderewards/datagateway"
	"github.com/gaze-network/node-rewards/modules/noderewards/internal/entity"
	"github.com/gaze-network/node-rewards/pkg/logger"
	"github.com/gaze-network/node-rewards/pkg/logger/slogx"
	"github.com/samber/lo"
)

// levelUpCandidates returns the nodes consumed by a level-up: the earliest created first,
// lowest id on ties.
func levelUpCandidates(nodes []entity.Node, typeName string, count uint32) ([]entity.Node, bool) {
	candidates := lo.Filter(nodes, func(n entity.Node, _ int) bool { return n.Type == typeName })
	if len(candidates) < int(count) {
		return nil, false
	}
	slices.SortFunc(candidates, func(a, b entity.Node) int {
		return cmp.Or(a.CreatedAt.Compare(b.CreatedAt), cmp.Compare(a.ID, b.ID))
	})
	return candidates[:count], true
}

// LevelUpNodes consumes LevelUpCount nodes of typeName held by owner and grants one node of
// the next tier. Unclaimed reward of the consumed nodes is forfeited.
func (m *Manager) LevelUpNodes(ctx context.Context, owner common.Address, typeName string) (entity.Node, error) {
	if err := validateOwner(owner); err != nil {
		return entity.Node{}, errors.WithStack(err)
	}

	var (
		created  entity.Node
		consumed []entity.Node
	)
	err := m.run(ctx, func(dgTx datagateway.NodeRewardsDataGatewayWithTx) error {
		types := newTypeCache(dgTx)
		nodeType, err := types.get(ctx, typeName)
		if err != nil {
			return errors.WithStack(err)
		}
		if nodeType.IsTerminal() {
			return errors.Wrapf(errs.TerminalTier, "node type %q has no next tier", nodeType.Name)
		}
		nextType, err := types.get(ctx, nodeType.NextTier)
		if err != nil {
			return errors.WithStack(err)
		}

		nodes, err := ownerNodes(ctx, dgTx, owner)
		if err != nil {
			return errors.WithStack(err)
		}
		var ok bool
		consumed, ok = levelUpCandidates(nodes, nodeType.Name, nodeType.LevelUpCount)
		if !ok {
			return errors.Wrapf(errs.InsufficientNodes, "level up of %q requires %d nodes", nodeType.Name, nodeType.LevelUpCount)
		}
		for _, node := range consumed {
			if err := dgTx.DeleteNode(ctx, node.ID); err != nil {
				return errors.Wrapf(err, "failed to delete node %d", node.ID)
			}
		}

		now := m.now()
		created, err = dgTx.CreateNode(ctx, entity.Node{
			Owner:       owner,
			Type:        nextType.Name,
			CreatedAt:   now,
			LastClaimAt: now,
		})
		return errors.Wrap(err, "failed to create node")
	})
	if err != nil {
		return entity.Node{}, errors.WithStack(err)
	}

	logger.InfoContext(ctx, "Leveled up nodes",
		ownerAttr(owner),
		slogx.String("from", typeName),
		slogx.String("to", created.Type),
		slogx.Int("consumed", len(consumed)),
		slogx.Uint64("node", created.ID),
	)
	return created, nil
}
