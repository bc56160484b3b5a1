// Package memory implements the node rewards datagateway on top of the in-process
// node type registry and node ledger. Transactions keep an undo journal that Rollback
// replays in reverse.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/node-rewards/common/errs"
	"github.com/gaze-network/node-rewards/modules/noderewards/datagateway"
	"github.com/gaze-network/node-rewards/modules/noderewards/internal/entity"
	"github.com/gaze-network/node-rewards/modules/noderewards/internal/ledger"
	"github.com/gaze-network/node-rewards/modules/noderewards/internal/nodetype"
	"github.com/gaze-network/uint128"
)

var _ datagateway.NodeRewardsDataGatewayWithTx = (*Repository)(nil)

var ErrTxAlreadyExists = errors.New("Transaction already exists. Call Commit() or Rollback() first.")

type store struct {
	mu          sync.RWMutex
	types       *nodetype.Registry
	ledger      *ledger.Ledger
	deposits    map[common.Address]uint128.Uint128
	distributor entity.DistributorState
	inTx        bool
}

type Repository struct {
	store   *store
	journal *journal
}

func NewRepository() *Repository {
	return &Repository{
		store: &store{
			types:    nodetype.NewRegistry(),
			ledger:   ledger.New(),
			deposits: make(map[common.Address]uint128.Uint128),
		},
	}
}

// write runs fn under the write lock and records its undo step when inside a transaction.
func (r *Repository) write(fn func() (undo func(), err error)) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	undo, err := fn()
	if err != nil {
		return err
	}
	if r.journal != nil && undo != nil {
		r.journal.record(undo)
	}
	return nil
}

func (r *Repository) read(fn func() error) error {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return fn()
}

func (r *Repository) CreateNodeType(ctx context.Context, nodeType entity.NodeType) error {
	return r.write(func() (func(), error) {
		if err := r.store.types.Add(nodeType); err != nil {
			return nil, errors.WithStack(err)
		}
		return func() { _ = r.store.types.Remove(nodeType.Name) }, nil
	})
}

func (r *Repository) UpdateNodeType(ctx context.Context, name string, update entity.NodeTypeUpdate) (entity.NodeType, error) {
	var updated entity.NodeType
	err := r.write(func() (func(), error) {
		old, err := r.store.types.Update(name, update)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		updated = update.Apply(old)
		return func() { _ = r.store.types.Replace(old) }, nil
	})
	return updated, err
}

func (r *Repository) GetNodeType(ctx context.Context, name string) (nodeType entity.NodeType, err error) {
	err = r.read(func() error {
		nodeType, err = r.store.types.Get(name)
		return errors.WithStack(err)
	})
	return nodeType, err
}

func (r *Repository) GetNodeTypes(ctx context.Context) (types []entity.NodeType, err error) {
	err = r.read(func() error {
		types = slices.Collect(r.store.types.All())
		return nil
	})
	return types, err
}

func (r *Repository) CountNodeTypes(ctx context.Context) (count int, err error) {
	err = r.read(func() error {
		count = r.store.types.Len()
		return nil
	})
	return count, err
}

func (r *Repository) CreateNode(ctx context.Context, node entity.Node) (created entity.Node, err error) {
	err = r.write(func() (func(), error) {
		l := r.store.ledger
		prevID := l.NextID()
		newOwner := !l.HasOwner(node.Owner)
		created = l.Push(node.Owner, node)
		return func() {
			_, _ = l.RemoveAt(created.Owner, l.Count(created.Owner)-1)
			if newOwner {
				_ = l.PopOwner(created.Owner)
			}
			l.SetNextID(prevID)
		}, nil
	})
	return created, err
}

func (r *Repository) lookup(id uint64) (entity.Node, int, error) {
	owner, index, ok := r.store.ledger.Lookup(id)
	if !ok {
		return entity.Node{}, 0, errors.Wrapf(errs.IndexOutOfRange, "node %d does not exist", id)
	}
	node, err := r.store.ledger.Get(owner, index)
	if err != nil {
		return entity.Node{}, 0, errors.WithStack(err)
	}
	return node, index, nil
}

func (r *Repository) GetNodeByID(ctx context.Context, id uint64) (node entity.Node, err error) {
	err = r.read(func() error {
		node, _, err = r.lookup(id)
		return err
	})
	return node, err
}

func (r *Repository) UpdateNodeLastClaim(ctx context.Context, id uint64, lastClaimAt time.Time) error {
	return r.write(func() (func(), error) {
		old, index, err := r.lookup(id)
		if err != nil {
			return nil, err
		}
		updated := old
		updated.LastClaimAt = lastClaimAt
		if err := r.store.ledger.Set(old.Owner, index, updated); err != nil {
			return nil, errors.WithStack(err)
		}
		return func() {
			if _, index, ok := r.store.ledger.Lookup(id); ok {
				_ = r.store.ledger.Set(old.Owner, index, old)
			}
		}, nil
	})
}

func (r *Repository) DeleteNode(ctx context.Context, id uint64) error {
	return r.write(func() (func(), error) {
		node, index, err := r.lookup(id)
		if err != nil {
			return nil, err
		}
		l := r.store.ledger
		if _, err := l.RemoveAt(node.Owner, index); err != nil {
			return nil, errors.WithStack(err)
		}
		return func() {
			_ = l.Reinsert(node)
			if last := l.Count(node.Owner) - 1; last != index {
				_ = l.Swap(node.Owner, index, last)
			}
		}, nil
	})
}

func (r *Repository) GetNodesByOwner(ctx context.Context, arg datagateway.GetNodesByOwnerParams) (nodes []entity.Node, err error) {
	err = r.read(func() error {
		nodes = slices.Collect(r.store.ledger.Nodes(arg.Owner, arg.Offset, arg.Limit))
		return nil
	})
	return nodes, err
}

func (r *Repository) CountNodesByOwner(ctx context.Context, owner common.Address) (count int, err error) {
	err = r.read(func() error {
		count = r.store.ledger.Count(owner)
		return nil
	})
	return count, err
}

func (r *Repository) GetOwner(ctx context.Context, owner common.Address) (o entity.Owner, err error) {
	err = r.read(func() error {
		var ok bool
		o, ok = r.store.ledger.Owner(owner)
		if !ok {
			return errors.Wrapf(errs.NotFound, "owner %s", owner)
		}
		return nil
	})
	return o, err
}

func (r *Repository) GetOwners(ctx context.Context, arg datagateway.GetOwnersParams) (owners []entity.Owner, err error) {
	err = r.read(func() error {
		owners = slices.Collect(r.store.ledger.Owners(arg.Offset, arg.Limit))
		return nil
	})
	return owners, err
}

func (r *Repository) SetOwnerMigrated(ctx context.Context, owner common.Address) error {
	return r.write(func() (func(), error) {
		l := r.store.ledger
		prev, existed := l.Owner(owner)
		l.SetMigrated(owner, true)
		return func() {
			if existed {
				l.SetMigrated(owner, prev.Migrated)
				return
			}
			_ = l.PopOwner(owner)
		}, nil
	})
}

func (r *Repository) GetDeposit(ctx context.Context, owner common.Address) (amount uint128.Uint128, err error) {
	err = r.read(func() error {
		amount = r.store.deposits[owner]
		return nil
	})
	return amount, err
}

func (r *Repository) SetDeposit(ctx context.Context, owner common.Address, amount uint128.Uint128) error {
	return r.write(func() (func(), error) {
		prev, existed := r.store.deposits[owner]
		r.store.deposits[owner] = amount
		return func() {
			if existed {
				r.store.deposits[owner] = prev
				return
			}
			delete(r.store.deposits, owner)
		}, nil
	})
}

func (r *Repository) GetDistributorState(ctx context.Context) (state entity.DistributorState, err error) {
	err = r.read(func() error {
		state = r.store.distributor
		state.Balances = maps.Clone(state.Balances)
		return nil
	})
	return state, err
}

func (r *Repository) SaveDistributorState(ctx context.Context, state entity.DistributorState) error {
	return r.write(func() (func(), error) {
		prev := r.store.distributor
		r.store.distributor = entity.DistributorState{
			PendingSwap: state.PendingSwap,
			SwapCount:   state.SwapCount,
			Balances:    maps.Clone(state.Balances),
		}
		return func() { r.store.distributor = prev }, nil
	})
}
