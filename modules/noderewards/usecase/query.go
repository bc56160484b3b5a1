package usecase

import (
	"context"
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/node-rewards/common/errs"
	"github.com/gaze-network/node-rewards/modules/noderewards/datagateway"
	"github.com/gaze-network/node-rewards/modules/noderewards/internal/codec"
	"github.com/gaze-network/node-rewards/modules/noderewards/internal/entity"
	"github.com/gaze-network/node-rewards/pkg/logger"
	"github.com/gaze-network/node-rewards/pkg/logger/slogx"
	"github.com/gaze-network/uint128"
)

func validatePage(offset, limit int) error {
	if offset < 0 || limit < 0 {
		return errors.Wrapf(errs.InvalidArgument, "invalid page offset=%d limit=%d", offset, limit)
	}
	return nil
}

// ListOwners pages through every owner that ever held a node, in position order.
// A limit of 0 reads to the end.
func (m *Manager) ListOwners(ctx context.Context, offset, limit int) (owners []entity.Owner, err error) {
	if err := validatePage(offset, limit); err != nil {
		return nil, errors.WithStack(err)
	}
	err = m.run(ctx, func(dgTx datagateway.NodeRewardsDataGatewayWithTx) (err error) {
		owners, err = dgTx.GetOwners(ctx, datagateway.GetOwnersParams{Offset: offset, Limit: limit})
		return errors.Wrap(err, "failed to get owners")
	})
	return owners, errors.WithStack(err)
}

func (m *Manager) GetOwner(ctx context.Context, owner common.Address) (result entity.Owner, err error) {
	err = m.run(ctx, func(dgTx datagateway.NodeRewardsDataGatewayWithTx) (err error) {
		result, err = dgTx.GetOwner(ctx, owner)
		return errors.WithStack(err)
	})
	return result, errors.WithStack(err)
}

// GetNodeOwners renders a page of owners as address#position#nodeCount records.
func (m *Manager) GetNodeOwners(ctx context.Context, offset, limit int) (string, error) {
	owners, err := m.ListOwners(ctx, offset, limit)
	if err != nil {
		return "", errors.WithStack(err)
	}
	return codec.Owners(slices.Values(owners)), nil
}

// ListNodes pages through the owner's nodes in index order. A limit of 0 reads to the end.
// Unknown owners have no nodes.
func (m *Manager) ListNodes(ctx context.Context, owner common.Address, offset, limit int) (nodes []entity.Node, err error) {
	if err := validatePage(offset, limit); err != nil {
		return nil, errors.WithStack(err)
	}
	err = m.run(ctx, func(dgTx datagateway.NodeRewardsDataGatewayWithTx) (err error) {
		nodes, err = dgTx.GetNodesByOwner(ctx, datagateway.GetNodesByOwnerParams{
			Owner:  owner,
			Offset: offset,
			Limit:  limit,
		})
		return errors.Wrap(err, "failed to get nodes")
	})
	return nodes, errors.WithStack(err)
}

// GetNodes renders a page of the owner's nodes as type#id#createdUnix#lastClaimUnix records.
func (m *Manager) GetNodes(ctx context.Context, owner common.Address, offset, limit int) (string, error) {
	nodes, err := m.ListNodes(ctx, owner, offset, limit)
	if err != nil {
		return "", errors.WithStack(err)
	}
	return codec.Nodes(slices.Values(nodes)), nil
}

// GetNodesCreationTime renders the creation times of all the owner's nodes joined by "#".
func (m *Manager) GetNodesCreationTime(ctx context.Context, owner common.Address) (string, error) {
	nodes, err := m.ListNodes(ctx, owner, 0, 0)
	if err != nil {
		return "", errors.WithStack(err)
	}
	return codec.CreationTimes(slices.Values(nodes)), nil
}

func (m *Manager) GetNodeCount(ctx context.Context, owner common.Address) (count int, err error) {
	err = m.run(ctx, func(dgTx datagateway.NodeRewardsDataGatewayWithTx) (err error) {
		count, err = dgTx.CountNodesByOwner(ctx, owner)
		return errors.Wrap(err, "failed to count nodes")
	})
	return count, errors.WithStack(err)
}

func (m *Manager) DistributorState(ctx context.Context) (state entity.DistributorState, err error) {
	err = m.run(ctx, func(dgTx datagateway.NodeRewardsDataGatewayWithTx) (err error) {
		state, err = m.distributor.State(ctx, dgTx)
		return errors.WithStack(err)
	})
	return state, errors.WithStack(err)
}

// Release pays out the balance accrued by a pool or payee.
func (m *Manager) Release(ctx context.Context, destination common.Address) (amount uint128.Uint128, err error) {
	err = m.run(ctx, func(dgTx datagateway.NodeRewardsDataGatewayWithTx) (err error) {
		amount, err = m.distributor.Release(ctx, dgTx, destination)
		return errors.WithStack(err)
	})
	if err != nil {
		return uint128.Zero, errors.WithStack(err)
	}
	logger.InfoContext(ctx, "Released distributor balance",
		slogx.Stringer("destination", destination),
		slogx.Stringer("amount", amount),
	)
	return amount, nil
}
