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

// Payment selects how a node purchase is paid for.
type Payment string

const (
	PaymentGrant   Payment = "grant"   // administrative grant, nothing is charged
	PaymentTokens  Payment = "tokens"  // pulled from the owner's external account
	PaymentDeposit Payment = "deposit" // debited from the owner's deposit balance
)

func (p Payment) Valid() bool {
	switch p {
	case PaymentGrant, PaymentTokens, PaymentDeposit:
		return true
	}
	return false
}

func totalPrice(nodeType entity.NodeType, count uint32) (uint128.Uint128, error) {
	total, overflow := nodeType.Price.MulOverflow(uint128.From64(uint64(count)))
	if overflow {
		return uint128.Zero, errors.Wrapf(errs.OverflowUint128, "price of %d %q nodes", count, nodeType.Name)
	}
	return total, nil
}

// appendNodes creates count nodes of nodeType for owner, all created at now.
func appendNodes(ctx context.Context, dg datagateway.NodeDataGateway, owner common.Address, nodeType entity.NodeType, count uint32, now time.Time) ([]entity.Node, error) {
	nodes := make([]entity.Node, 0, count)
	for range count {
		node, err := dg.CreateNode(ctx, entity.Node{
			Owner:       owner,
			Type:        nodeType.Name,
			CreatedAt:   now,
			LastClaimAt: now,
		})
		if err != nil {
			return nil, errors.Wrap(err, "failed to create node")
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

// CreateNodes creates count nodes of typeName for owner, charging them according to payment.
// An empty typeName selects the default node type.
func (m *Manager) CreateNodes(ctx context.Context, payment Payment, owner common.Address, typeName string, count uint32) ([]entity.Node, error) {
	switch payment {
	case PaymentGrant:
		return m.CreateNode(ctx, owner, typeName, count)
	case PaymentTokens:
		return m.CreateNodeWithTokens(ctx, owner, typeName, count)
	case PaymentDeposit:
		return m.CreateNodeWithDeposit(ctx, owner, typeName, count)
	}
	return nil, errors.Wrapf(errs.InvalidArgument, "unknown payment %q", payment)
}

// CreateNode grants count nodes to owner without payment.
func (m *Manager) CreateNode(ctx context.Context, owner common.Address, typeName string, count uint32) ([]entity.Node, error) {
	return m.createNodes(ctx, PaymentGrant, owner, typeName, count)
}

// CreateNodeWithTokens pulls count x price from the owner's external account and forwards it
// to the fee distributor as a funding event.
func (m *Manager) CreateNodeWithTokens(ctx context.Context, owner common.Address, typeName string, count uint32) ([]entity.Node, error) {
	return m.createNodes(ctx, PaymentTokens, owner, typeName, count)
}

// CreateNodeWithDeposit pays count x price from the owner's deposit balance and forwards it
// to the fee distributor as a funding event.
func (m *Manager) CreateNodeWithDeposit(ctx context.Context, owner common.Address, typeName string, count uint32) ([]entity.Node, error) {
	return m.createNodes(ctx, PaymentDeposit, owner, typeName, count)
}

func (m *Manager) createNodes(ctx context.Context, payment Payment, owner common.Address, typeName string, count uint32) ([]entity.Node, error) {
	if err := validateOwner(owner); err != nil {
		return nil, errors.WithStack(err)
	}
	if count == 0 {
		return nil, errors.Wrap(errs.InvalidArgument, "node count must be greater than zero")
	}

	var (
		nodes    []entity.Node
		nodeType entity.NodeType
		total    uint128.Uint128
		charged  bool
	)
	err := m.run(ctx, func(dgTx datagateway.NodeRewardsDataGatewayWithTx) (err error) {
		nodeType, err = m.resolveType(ctx, dgTx, typeName)
		if err != nil {
			return errors.WithStack(err)
		}
		total, err = totalPrice(nodeType, count)
		if err != nil {
			return errors.WithStack(err)
		}

		switch payment {
		case PaymentTokens:
			if err := m.token.TransferIn(ctx, owner, total); err != nil {
				return errors.Wrapf(err, "failed to transfer %s from %s", total, owner)
			}
			charged = true
		case PaymentDeposit:
			deposit, err := dgTx.GetDeposit(ctx, owner)
			if err != nil {
				return errors.Wrap(err, "failed to get deposit")
			}
			if deposit.Cmp(total) < 0 {
				return errors.Wrapf(errs.InsufficientFunds, "deposit %s is less than price %s", deposit, total)
			}
			if err := dgTx.SetDeposit(ctx, owner, deposit.Sub(total)); err != nil {
				return errors.Wrap(err, "failed to set deposit")
			}
		}

		nodes, err = appendNodes(ctx, dgTx, owner, nodeType, count, m.now())
		if err != nil {
			return errors.WithStack(err)
		}

		// funding may swap through the router, so it runs after every local write
		if payment != PaymentGrant {
			if _, err := m.distributor.Fund(ctx, dgTx, total); err != nil {
				return errors.Wrap(err, "failed to distribute payment")
			}
		}
		return nil
	})
	if err != nil {
		if charged {
			m.refund(ctx, owner, total)
		}
		return nil, errors.WithStack(err)
	}

	logger.InfoContext(ctx, "Created nodes",
		ownerAttr(owner),
		slogx.String("type", nodeType.Name),
		slogx.Uint64("count", uint64(count)),
		slogx.String("payment", string(payment)),
		slogx.Stringer("amount", total),
	)
	return nodes, nil
}

// refund returns funds pulled by an operation that was later rolled back.
func (m *Manager) refund(ctx context.Context, owner common.Address, amount uint128.Uint128) {
	if err := m.token.TransferOut(ctx, owner, amount); err != nil {
		logger.ErrorContext(ctx, "Failed to refund aborted operation", err, ownerAttr(owner), slogx.Stringer("amount", amount))
		return
	}
	logger.WarnContext(ctx, "Refunded aborted operation", ownerAttr(owner), slogx.Stringer("amount", amount))
}

// Deposit pulls amount from the owner's external account into the owner's deposit balance.
func (m *Manager) Deposit(ctx context.Context, owner common.Address, amount uint128.Uint128) (uint128.Uint128, error) {
	if err := validateOwner(owner); err != nil {
		return uint128.Zero, errors.WithStack(err)
	}
	if amount.IsZero() {
		return uint128.Zero, errors.Wrap(errs.InvalidArgument, "deposit amount must be greater than zero")
	}

	var (
		balance uint128.Uint128
		charged bool
	)
	err := m.run(ctx, func(dgTx datagateway.NodeRewardsDataGatewayWithTx) error {
		deposit, err := dgTx.GetDeposit(ctx, owner)
		if err != nil {
			return errors.Wrap(err, "failed to get deposit")
		}
		var overflow bool
		balance, overflow = deposit.AddOverflow(amount)
		if overflow {
			return errors.Wrapf(errs.OverflowUint128, "deposit of %s", owner)
		}
		if err := m.token.TransferIn(ctx, owner, amount); err != nil {
			return errors.Wrapf(err, "failed to transfer %s from %s", amount, owner)
		}
		charged = true
		return errors.Wrap(dgTx.SetDeposit(ctx, owner, balance), "failed to set deposit")
	})
	if err != nil {
		if charged {
			m.refund(ctx, owner, amount)
		}
		return uint128.Zero, errors.WithStack(err)
	}

	logger.InfoContext(ctx, "Deposited", ownerAttr(owner), slogx.Stringer("amount", amount))
	return balance, nil
}

func (m *Manager) GetDepositAmount(ctx context.Context, owner common.Address) (amount uint128.Uint128, err error) {
	err = m.run(ctx, func(dgTx datagateway.NodeRewardsDataGatewayWithTx) (err error) {
		amount, err = dgTx.GetDeposit(ctx, owner)
		return errors.Wrap(err, "failed to get deposit")
	})
	return amount, errors.WithStack(err)
}
