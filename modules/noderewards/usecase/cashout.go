package usecase

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/node-rewards/modules/noderewards/datagateway"
	"github.com/gaze-network/node-rewards/modules/noderewards/internal/entity"
	"github.com/gaze-network/node-rewards/pkg/logger"
	"github.com/gaze-network/node-rewards/pkg/logger/slogx"
	"github.com/gaze-network/uint128"
)

type Cashout struct {
	Reward Reward          // claimed as part of the cash-out
	Fee    uint128.Uint128 // withheld to the future-use pool
	Paid   uint128.Uint128 // transferred to the owner
}

// withdraw empties the owner's deposit balance. The transfer runs last so a rejection
// leaves nothing to undo outside the transaction.
func (m *Manager) withdraw(ctx context.Context, dgTx datagateway.NodeRewardsDataGatewayWithTx, owner common.Address) (fee, paid uint128.Uint128, err error) {
	balance, err := dgTx.GetDeposit(ctx, owner)
	if err != nil {
		return uint128.Zero, uint128.Zero, errors.Wrap(err, "failed to get deposit")
	}
	if balance.IsZero() {
		return uint128.Zero, uint128.Zero, nil
	}
	fee = m.distributor.CashoutFee(balance)
	paid = balance.Sub(fee)

	if err := dgTx.SetDeposit(ctx, owner, uint128.Zero); err != nil {
		return uint128.Zero, uint128.Zero, errors.Wrap(err, "failed to set deposit")
	}
	if err := m.distributor.CollectCashoutFee(ctx, dgTx, fee); err != nil {
		return uint128.Zero, uint128.Zero, errors.Wrap(err, "failed to collect cashout fee")
	}
	if !paid.IsZero() {
		if err := m.token.TransferOut(ctx, owner, paid); err != nil {
			return uint128.Zero, uint128.Zero, errors.Wrapf(err, "failed to transfer %s to %s", paid, owner)
		}
	}
	return fee, paid, nil
}

func (m *Manager) cashout(ctx context.Context, owner common.Address, selectNodes func(dgTx datagateway.NodeRewardsDataGatewayWithTx) ([]entity.Node, error)) (Cashout, error) {
	var result Cashout
	err := m.run(ctx, func(dgTx datagateway.NodeRewardsDataGatewayWithTx) error {
		nodes, err := selectNodes(dgTx)
		if err != nil {
			return errors.WithStack(err)
		}
		result.Reward, err = m.claim(ctx, dgTx, owner, nodes)
		if err != nil {
			return errors.WithStack(err)
		}
		result.Fee, result.Paid, err = m.withdraw(ctx, dgTx, owner)
		return errors.WithStack(err)
	})
	if err != nil {
		return Cashout{}, errors.WithStack(err)
	}
	logger.InfoContext(ctx, "Cashed out",
		ownerAttr(owner),
		slogx.Stringer("claimed", result.Reward.Net),
		slogx.Stringer("fee", result.Fee),
		slogx.Stringer("paid", result.Paid),
	)
	return result, nil
}

// CashoutReward claims the node and withdraws the owner's whole deposit balance.
func (m *Manager) CashoutReward(ctx context.Context, owner common.Address, nodeID uint64) (Cashout, error) {
	result, err := m.cashout(ctx, owner, func(dgTx datagateway.NodeRewardsDataGatewayWithTx) ([]entity.Node, error) {
		node, err := ownedNode(ctx, dgTx, owner, nodeID)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		return []entity.Node{node}, nil
	})
	return result, errors.WithStack(err)
}

// CashoutAll claims every node of owner and withdraws the whole deposit balance.
func (m *Manager) CashoutAll(ctx context.Context, owner common.Address) (Cashout, error) {
	result, err := m.cashout(ctx, owner, func(dgTx datagateway.NodeRewardsDataGatewayWithTx) ([]entity.Node, error) {
		return ownerNodes(ctx, dgTx, owner)
	})
	return result, errors.WithStack(err)
}
