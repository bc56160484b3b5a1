package memory

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/node-rewards/modules/noderewards/datagateway"
	"github.com/gaze-network/node-rewards/pkg/logger"
	"github.com/gaze-network/node-rewards/pkg/logger/slogx"
)

type journal struct {
	undo []func()
}

func (j *journal) record(undo func()) {
	j.undo = append(j.undo, undo)
}

func (r *Repository) begin() (*Repository, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.journal != nil || r.store.inTx {
		return nil, errors.WithStack(ErrTxAlreadyExists)
	}
	r.store.inTx = true
	return &Repository{
		store:   r.store,
		journal: &journal{},
	}, nil
}

func (r *Repository) BeginNodeRewardsTx(ctx context.Context) (datagateway.NodeRewardsDataGatewayWithTx, error) {
	repo, err := r.begin()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return repo, nil
}

func (r *Repository) Commit(ctx context.Context) error {
	if r.journal == nil {
		return nil
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.journal = nil
	r.store.inTx = false
	return nil
}

func (r *Repository) Rollback(ctx context.Context) error {
	if r.journal == nil {
		return nil
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	steps := len(r.journal.undo)
	for i := steps - 1; i >= 0; i-- {
		r.journal.undo[i]()
	}
	r.journal = nil
	r.store.inTx = false
	if steps > 0 {
		logger.DebugContext(ctx, "rolled back transaction", slogx.Int("steps", steps))
	}
	return nil
}
