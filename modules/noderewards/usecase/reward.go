package usecase

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/node-rewards/common/errs"
	"github.com/gaze-network/node-rewards/modules/noderewards/datagateway"
	"github.com/gaze-network/node-rewards/modules/noderewards/internal/entity"
	"github.com/gaze-network/node-rewards/pkg/logger"
	"github.com/gaze-network/node-rewards/pkg/logger/slogx"
	"github.com/gaze-network/uint128"
)

// Reward is the value accrued by one or more nodes since their last claim.
type Reward struct {
	Gross uint128.Uint128
	Tax   uint128.Uint128
	Net   uint128.Uint128
}

func (r Reward) add(other Reward) (Reward, error) {
	gross, overflow := r.Gross.AddOverflow(other.Gross)
	if overflow {
		return Reward{}, errors.Wrap(errs.OverflowUint128, "gross reward")
	}
	return Reward{
		Gross: gross,
		Tax:   r.Tax.Add(other.Tax),
		Net:   r.Net.Add(other.Net),
	}, nil
}

// computeReward accrues RewardRate per whole elapsed second. Claiming before the
// claim interval has elapsed withholds ClaimTax percent of the gross reward.
func computeReward(nodeType entity.NodeType, node entity.Node, now time.Time) (Reward, error) {
	elapsed := max(now.Sub(node.LastClaimAt), 0)
	gross, overflow := nodeType.RewardRate.MulOverflow(uint128.From64(uint64(elapsed / time.Second)))
	if overflow {
		return Reward{}, errors.Wrapf(errs.OverflowUint128, "reward of node %d", node.ID)
	}
	var tax uint128.Uint128
	if elapsed < nodeType.ClaimInterval {
		tax = entity.PercentOf(gross, uint32(nodeType.ClaimTax))
	}
	return Reward{
		Gross: gross,
		Tax:   tax,
		Net:   gross.Sub(tax),
	}, nil
}

// typeCache resolves node types once per operation.
type typeCache struct {
	dg    datagateway.NodeTypeDataGateway
	types map[string]entity.NodeType
}

func newTypeCache(dg datagateway.NodeTypeDataGateway) *typeCache {
	return &typeCache{dg: dg, types: make(map[string]entity.NodeType)}
}

func (c *typeCache) get(ctx context.Context, name string) (entity.NodeType, error) {
	if t, ok := c.types[name]; ok {
		return t, nil
	}
	t, err := c.dg.GetNodeType(ctx, name)
	if err != nil {
		if errors.Is(err, errs.NotFound) {
			return entity.NodeType{}, unknownType(name)
		}
		return entity.NodeType{}, errors.Wrap(err, "failed to get node type")
	}
	c.types[name] = t
	return t, nil
}

// claim advances the last claim time of every node to now, credits the net reward to the
// owner's deposit balance and forwards the tax to the distributor.
func (m *Manager) claim(ctx context.Context, dgTx datagateway.NodeRewardsDataGatewayWithTx, owner common.Address, nodes []entity.Node) (Reward, error) {
	now := m.now()
	types := newTypeCache(dgTx)
	total := Reward{}
	for _, node := range nodes {
		nodeType, err := types.get(ctx, node.Type)
		if err != nil {
			return Reward{}, errors.WithStack(err)
		}
		reward, err := computeReward(nodeType, node, now)
		if err != nil {
			return Reward{}, errors.WithStack(err)
		}
		if total, err = total.add(reward); err != nil {
			return Reward{}, errors.WithStack(err)
		}
		if now.After(node.LastClaimAt) {
			if err := dgTx.UpdateNodeLastClaim(ctx, node.ID, now); err != nil {
				return Reward{}, errors.Wrapf(err, "failed to update last claim of node %d", node.ID)
			}
		}
	}

	if !total.Net.IsZero() {
		deposit, err := dgTx.GetDeposit(ctx, owner)
		if err != nil {
			return Reward{}, errors.Wrap(err, "failed to get deposit")
		}
		balance, overflow := deposit.AddOverflow(total.Net)
		if overflow {
			return Reward{}, errors.Wrapf(errs.OverflowUint128, "deposit of %s", owner)
		}
		if err := dgTx.SetDeposit(ctx, owner, balance); err != nil {
			return Reward{}, errors.Wrap(err, "failed to set deposit")
		}
	}
	if err := m.distributor.CollectTax(ctx, dgTx, total.Tax); err != nil {
		return Reward{}, errors.Wrap(err, "failed to collect claim tax")
	}
	return total, nil
}

func ownerNodes(ctx context.Context, dg datagateway.NodeDataGateway, owner common.Address) ([]entity.Node, error) {
	nodes, err := dg.GetNodesByOwner(ctx, datagateway.GetNodesByOwnerParams{Owner: owner})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get nodes")
	}
	return nodes, nil
}

// GetLeftTimeFromReward returns the time until the node can be claimed without tax.
func (m *Manager) GetLeftTimeFromReward(ctx context.Context, owner common.Address, nodeID uint64) (left time.Duration, err error) {
	err = m.run(ctx, func(dgTx datagateway.NodeRewardsDataGatewayWithTx) error {
		node, err := ownedNode(ctx, dgTx, owner, nodeID)
		if err != nil {
			return errors.WithStack(err)
		}
		nodeType, err := newTypeCache(dgTx).get(ctx, node.Type)
		if err != nil {
			return errors.WithStack(err)
		}
		left = max(nodeType.ClaimInterval-m.now().Sub(node.LastClaimAt), 0)
		return nil
	})
	return left, errors.WithStack(err)
}

// GetRewardAmountOf previews the reward a claim of the node would produce now.
func (m *Manager) GetRewardAmountOf(ctx context.Context, owner common.Address, nodeID uint64) (reward Reward, err error) {
	err = m.run(ctx, func(dgTx datagateway.NodeRewardsDataGatewayWithTx) error {
		node, err := ownedNode(ctx, dgTx, owner, nodeID)
		if err != nil {
			return errors.WithStack(err)
		}
		nodeType, err := newTypeCache(dgTx).get(ctx, node.Type)
		if err != nil {
			return errors.WithStack(err)
		}
		reward, err = computeReward(nodeType, node, m.now())
		return errors.WithStack(err)
	})
	return reward, errors.WithStack(err)
}

// ClaimReward claims a single node and returns the reward credited to the deposit balance.
func (m *Manager) ClaimReward(ctx context.Context, owner common.Address, nodeID uint64) (reward Reward, err error) {
	err = m.run(ctx, func(dgTx datagateway.NodeRewardsDataGatewayWithTx) error {
		node, err := ownedNode(ctx, dgTx, owner, nodeID)
		if err != nil {
			return errors.WithStack(err)
		}
		reward, err = m.claim(ctx, dgTx, owner, []entity.Node{node})
		return errors.WithStack(err)
	})
	if err != nil {
		return Reward{}, errors.WithStack(err)
	}
	logger.InfoContext(ctx, "Claimed reward",
		ownerAttr(owner),
		slogx.Uint64("node", nodeID),
		slogx.Stringer("net", reward.Net),
		slogx.Stringer("tax", reward.Tax),
	)
	return reward, nil
}

// ClaimAll claims every node of owner.
func (m *Manager) ClaimAll(ctx context.Context, owner common.Address) (reward Reward, err error) {
	var count int
	err = m.run(ctx, func(dgTx datagateway.NodeRewardsDataGatewayWithTx) error {
		nodes, err := ownerNodes(ctx, dgTx, owner)
		if err != nil {
			return errors.WithStack(err)
		}
		count = len(nodes)
		reward, err = m.claim(ctx, dgTx, owner, nodes)
		return errors.WithStack(err)
	})
	if err != nil {
		return Reward{}, errors.WithStack(err)
	}
	logger.InfoContext(ctx, "Claimed all rewards",
		ownerAttr(owner),
		slogx.Int("nodes", count),
		slogx.Stringer("net", reward.Net),
		slogx.Stringer("tax", reward.Tax),
	)
	return reward, nil
}
