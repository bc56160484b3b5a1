package postgres

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/node-rewards/common/errs"
	"github.com/gaze-network/node-rewards/internal/postgres"
	"github.com/gaze-network/node-rewards/modules/noderewards/datagateway"
	"github.com/gaze-network/node-rewards/modules/noderewards/internal/entity"
	"github.com/gaze-network/node-rewards/modules/noderewards/repository/postgres/gen"
	"github.com/gaze-network/uint128"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/lo"
)

var _ datagateway.NodeRewardsDataGatewayWithTx = (*Repository)(nil)

const uniqueViolation = "23505"

type Repository struct {
	db      postgres.DB
	queries *gen.Queries
	tx      pgx.Tx
}

func NewRepository(db postgres.DB) *Repository {
	return &Repository{
		db:      db,
		queries: gen.New(db),
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func (r *Repository) CreateNodeType(ctx context.Context, nodeType entity.NodeType) error {
	if err := nodeType.Validate(); err != nil {
		return errors.WithStack(err)
	}
	params, err := mapNodeTypeTypeToParams(nodeType)
	if err != nil {
		return errors.WithStack(err)
	}
	if err := r.queries.CreateNodeType(ctx, params); err != nil {
		if isUniqueViolation(err) {
			return errors.Wrapf(errs.DuplicateKey, "node type %q already exists", nodeType.Name)
		}
		return errors.Wrap(err, "error during exec")
	}
	return nil
}

func (r *Repository) UpdateNodeType(ctx context.Context, name string, update entity.NodeTypeUpdate) (entity.NodeType, error) {
	current, err := r.GetNodeType(ctx, name)
	if err != nil {
		return entity.NodeType{}, errors.WithStack(err)
	}
	updated := update.Apply(current)
	if err := updated.Validate(); err != nil {
		return entity.NodeType{}, errors.WithStack(err)
	}
	params, err := mapNodeTypeTypeToParams(updated)
	if err != nil {
		return entity.NodeType{}, errors.WithStack(err)
	}
	if _, err := r.queries.UpdateNodeType(ctx, gen.UpdateNodeTypeParams(params)); err != nil {
		return entity.NodeType{}, errors.Wrap(err, "error during exec")
	}
	return updated, nil
}

func (r *Repository) GetNodeType(ctx context.Context, name string) (entity.NodeType, error) {
	model, err := r.queries.GetNodeType(ctx, name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.NodeType{}, errors.Wrapf(errs.NotFound, "node type %q", name)
		}
		return entity.NodeType{}, errors.Wrap(err, "error during query")
	}
	nodeType, err := mapNodeTypeModelToType(model)
	return nodeType, errors.WithStack(err)
}

func (r *Repository) GetNodeTypes(ctx context.Context) ([]entity.NodeType, error) {
	models, err := r.queries.GetNodeTypes(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "error during query")
	}
	types := make([]entity.NodeType, 0, len(models))
	for _, model := range models {
		nodeType, err := mapNodeTypeModelToType(model)
		if err != nil {
			return nil, errors.Wrapf(err, "node type %q", model.Name)
		}
		types = append(types, nodeType)
	}
	return types, nil
}

func (r *Repository) CountNodeTypes(ctx context.Context) (int, error) {
	count, err := r.queries.CountNodeTypes(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "error during query")
	}
	return int(count), nil
}

func (r *Repository) CreateNode(ctx context.Context, node entity.Node) (entity.Node, error) {
	owner := node.Owner.Hex()
	if err := r.queries.CreateOwnerIfNotExists(ctx, owner); err != nil {
		return entity.Node{}, errors.Wrap(err, "failed to create owner")
	}
	model, err := r.queries.CreateNode(ctx, gen.CreateNodeParams{
		Owner:       owner,
		Type:        node.Type,
		CreatedAt:   timestamptz(node.CreatedAt),
		LastClaimAt: timestamptz(node.LastClaimAt),
	})
	if err != nil {
		return entity.Node{}, errors.Wrap(err, "error during exec")
	}
	return mapNodeModelToType(model), nil
}

func (r *Repository) GetNodeByID(ctx context.Context, id uint64) (entity.Node, error) {
	model, err := r.queries.GetNodeByID(ctx, int64(id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Node{}, errors.Wrapf(errs.IndexOutOfRange, "node %d does not exist", id)
		}
		return entity.Node{}, errors.Wrap(err, "error during query")
	}
	return mapNodeModelToType(model), nil
}

func (r *Repository) UpdateNodeLastClaim(ctx context.Context, id uint64, lastClaimAt time.Time) error {
	affected, err := r.queries.UpdateNodeLastClaim(ctx, gen.UpdateNodeLastClaimParams{
		ID:          int64(id),
		LastClaimAt: timestamptz(lastClaimAt),
	})
	if err != nil {
		return errors.Wrap(err, "error during exec")
	}
	if affected == 0 {
		return errors.Wrapf(errs.IndexOutOfRange, "node %d does not exist", id)
	}
	return nil
}

func (r *Repository) DeleteNode(ctx context.Context, id uint64) error {
	removed, err := r.queries.DeleteNode(ctx, int64(id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errors.Wrapf(errs.IndexOutOfRange, "node %d does not exist", id)
		}
		return errors.Wrap(err, "error during exec")
	}
	if err := r.queries.MoveLastNode(ctx, gen.MoveLastNodeParams{
		ToIdx: removed.Idx,
		Owner: removed.Owner,
	}); err != nil {
		return errors.Wrap(err, "failed to move last node")
	}
	return nil
}

func (r *Repository) GetNodesByOwner(ctx context.Context, arg datagateway.GetNodesByOwnerParams) ([]entity.Node, error) {
	models, err := r.queries.GetNodesByOwner(ctx, gen.GetNodesByOwnerParams{
		Owner:      arg.Owner.Hex(),
		OffsetRows: clampInt32(arg.Offset),
		LimitRows:  clampInt32(arg.Limit),
	})
	if err != nil {
		return nil, errors.Wrap(err, "error during query")
	}
	return lo.Map(models, func(m gen.NoderewardsNode, _ int) entity.Node { return mapNodeModelToType(m) }), nil
}

func (r *Repository) CountNodesByOwner(ctx context.Context, owner common.Address) (int, error) {
	count, err := r.queries.CountNodesByOwner(ctx, owner.Hex())
	if err != nil {
		return 0, errors.Wrap(err, "error during query")
	}
	return int(count), nil
}

func (r *Repository) GetOwner(ctx context.Context, owner common.Address) (entity.Owner, error) {
	row, err := r.queries.GetOwner(ctx, owner.Hex())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Owner{}, errors.Wrapf(errs.NotFound, "owner %s", owner)
		}
		return entity.Owner{}, errors.Wrap(err, "error during query")
	}
	return mapOwnerRowToType(row.Address, row.Migrated, row.Position, row.NodeCount), nil
}

func (r *Repository) GetOwners(ctx context.Context, arg datagateway.GetOwnersParams) ([]entity.Owner, error) {
	rows, err := r.queries.GetOwners(ctx, gen.GetOwnersParams{
		OffsetRows: clampInt32(arg.Offset),
		LimitRows:  clampInt32(arg.Limit),
	})
	if err != nil {
		return nil, errors.Wrap(err, "error during query")
	}
	return lo.Map(rows, func(row gen.GetOwnersRow, _ int) entity.Owner {
		return mapOwnerRowToType(row.Address, row.Migrated, row.Position, row.NodeCount)
	}), nil
}

func (r *Repository) SetOwnerMigrated(ctx context.Context, owner common.Address) error {
	if err := r.queries.SetOwnerMigrated(ctx, owner.Hex()); err != nil {
		return errors.Wrap(err, "error during exec")
	}
	return nil
}

func (r *Repository) GetDeposit(ctx context.Context, owner common.Address) (uint128.Uint128, error) {
	amount, err := r.queries.GetDeposit(ctx, owner.Hex())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uint128.Zero, nil
		}
		return uint128.Zero, errors.Wrap(err, "error during query")
	}
	result, err := uint128FromNumeric(amount)
	return result, errors.WithStack(err)
}

func (r *Repository) SetDeposit(ctx context.Context, owner common.Address, amount uint128.Uint128) error {
	numeric, err := numericFromUint128(amount)
	if err != nil {
		return errors.WithStack(err)
	}
	if err := r.queries.SetDeposit(ctx, gen.SetDepositParams{
		Owner:  owner.Hex(),
		Amount: numeric,
	}); err != nil {
		return errors.Wrap(err, "error during exec")
	}
	return nil
}

func (r *Repository) GetDistributorState(ctx context.Context) (entity.DistributorState, error) {
	state := entity.DistributorState{
		PendingSwap: uint128.Zero,
		Balances:    make(map[common.Address]uint128.Uint128),
	}
	model, err := r.queries.GetDistributorState(ctx)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
	case err != nil:
		return entity.DistributorState{}, errors.Wrap(err, "error during query")
	default:
		state.PendingSwap, err = uint128FromNumeric(model.PendingSwap)
		if err != nil {
			return entity.DistributorState{}, errors.Wrap(err, "failed to parse pending swap")
		}
		state.SwapCount = uint64(model.SwapCount)
	}

	balances, err := r.queries.GetDistributorBalances(ctx)
	if err != nil {
		return entity.DistributorState{}, errors.Wrap(err, "error during query")
	}
	for _, b := range balances {
		amount, err := uint128FromNumeric(b.Amount)
		if err != nil {
			return entity.DistributorState{}, errors.Wrapf(err, "failed to parse balance of %s", b.Address)
		}
		state.Balances[common.HexToAddress(b.Address)] = amount
	}
	return state, nil
}

func (r *Repository) SaveDistributorState(ctx context.Context, state entity.DistributorState) error {
	pending, err := numericFromUint128(state.PendingSwap)
	if err != nil {
		return errors.WithStack(err)
	}
	if err := r.queries.SetDistributorState(ctx, gen.SetDistributorStateParams{
		PendingSwap: pending,
		SwapCount:   int64(state.SwapCount),
	}); err != nil {
		return errors.Wrap(err, "error during exec")
	}
	for addr, amount := range state.Balances {
		numeric, err := numericFromUint128(amount)
		if err != nil {
			return errors.WithStack(err)
		}
		if err := r.queries.SetDistributorBalance(ctx, gen.SetDistributorBalanceParams{
			Address: addr.Hex(),
			Amount:  numeric,
		}); err != nil {
			return errors.Wrap(err, "error during exec")
		}
	}
	return nil
}
