package memory

import (
	"context"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/node-rewards/common/errs"
	"github.com/gaze-network/node-rewards/modules/noderewards/datagateway"
	"github.com/gaze-network/node-rewards/modules/noderewards/internal/entity"
	"github.com/gaze-network/uint128"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alice = common.HexToAddress("0x00000000000000000000000000000000000a11ce")
	bob   = common.HexToAddress("0x0000000000000000000000000000000000000b0b")
	pool  = common.HexToAddress("0x00000000000000000000000000000000000000d1")
)

var epoch = time.Unix(1_700_000_000, 0).UTC()

func axe() entity.NodeType {
	return entity.NodeType{
		Name:          "Axe",
		Price:         uint128.From64(10),
		ClaimInterval: time.Hour,
		RewardRate:    uint128.From64(1),
		NextTier:      "Sladar",
		LevelUpCount:  5,
	}
}

type snapshot struct {
	types       []entity.NodeType
	owners      []entity.Owner
	nodes       map[common.Address][]entity.Node
	deposits    map[common.Address]uint128.Uint128
	distributor entity.DistributorState
}

func takeSnapshot(t *testing.T, repo *Repository) snapshot {
	t.Helper()
	ctx := context.Background()
	types, err := repo.GetNodeTypes(ctx)
	require.NoError(t, err)
	owners, err := repo.GetOwners(ctx, datagateway.GetOwnersParams{})
	require.NoError(t, err)
	s := snapshot{
		types:    types,
		owners:   owners,
		nodes:    make(map[common.Address][]entity.Node),
		deposits: make(map[common.Address]uint128.Uint128),
	}
	for _, o := range owners {
		nodes, err := repo.GetNodesByOwner(ctx, datagateway.GetNodesByOwnerParams{Owner: o.Address})
		require.NoError(t, err)
		s.nodes[o.Address] = nodes
		s.deposits[o.Address], err = repo.GetDeposit(ctx, o.Address)
		require.NoError(t, err)
	}
	s.distributor, err = repo.GetDistributorState(ctx)
	require.NoError(t, err)
	return s
}

func seed(t *testing.T, repo *Repository) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, repo.CreateNodeType(ctx, axe()))
	for i := range 3 {
		_, err := repo.CreateNode(ctx, entity.Node{
			Owner:       alice,
			Type:        "Axe",
			CreatedAt:   epoch.Add(time.Duration(i) * time.Second),
			LastClaimAt: epoch.Add(time.Duration(i) * time.Second),
		})
		require.NoError(t, err)
	}
	require.NoError(t, repo.SetDeposit(ctx, alice, uint128.From64(50)))
	require.NoError(t, repo.SaveDistributorState(ctx, entity.DistributorState{
		PendingSwap: uint128.From64(7),
		Balances:    map[common.Address]uint128.Uint128{pool: uint128.From64(3)},
	}))
}

func TestRollbackRestoresEveryChange(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()
	seed(t, repo)
	before := takeSnapshot(t, repo)

	tx, err := repo.BeginNodeRewardsTx(ctx)
	require.NoError(t, err)

	require.NoError(t, tx.CreateNodeType(ctx, entity.NodeType{Name: "Sladar", RewardRate: uint128.From64(2)}))
	_, err = tx.UpdateNodeType(ctx, "Axe", entity.NodeTypeUpdate{Price: lo.ToPtr(uint128.From64(99))})
	require.NoError(t, err)
	require.NoError(t, tx.UpdateNodeLastClaim(ctx, 3, epoch.Add(time.Hour)))
	require.NoError(t, tx.DeleteNode(ctx, 1))
	require.NoError(t, tx.DeleteNode(ctx, 3))
	_, err = tx.CreateNode(ctx, entity.Node{Owner: alice, Type: "Sladar", CreatedAt: epoch, LastClaimAt: epoch})
	require.NoError(t, err)
	_, err = tx.CreateNode(ctx, entity.Node{Owner: bob, Type: "Axe", CreatedAt: epoch, LastClaimAt: epoch})
	require.NoError(t, err)
	require.NoError(t, tx.SetOwnerMigrated(ctx, alice))
	require.NoError(t, tx.SetDeposit(ctx, alice, uint128.Zero))
	require.NoError(t, tx.SetDeposit(ctx, bob, uint128.From64(1)))
	require.NoError(t, tx.SaveDistributorState(ctx, entity.DistributorState{SwapCount: 9}))

	require.NoError(t, tx.Rollback(ctx))
	assert.Equal(t, before, takeSnapshot(t, repo))

	// ids handed out inside the rolled back transaction are reused.
	tx, err = repo.BeginNodeRewardsTx(ctx)
	require.NoError(t, err)
	n, err := tx.CreateNode(ctx, entity.Node{Owner: bob, Type: "Axe", CreatedAt: epoch, LastClaimAt: epoch})
	require.NoError(t, err)
	assert.Equal(t, uint64(4), n.ID)
	require.NoError(t, tx.Commit(ctx))
	require.NoError(t, tx.Rollback(ctx), "rollback after commit is a no-op")

	count, err := repo.CountNodesByOwner(ctx, bob)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSingleActiveTransaction(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()

	tx, err := repo.BeginNodeRewardsTx(ctx)
	require.NoError(t, err)
	_, err = repo.BeginNodeRewardsTx(ctx)
	assert.ErrorIs(t, err, ErrTxAlreadyExists)

	require.NoError(t, tx.Commit(ctx))
	tx, err = repo.BeginNodeRewardsTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Rollback(ctx))
}

func TestDeleteNodeMovesLast(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()
	seed(t, repo)

	require.NoError(t, repo.DeleteNode(ctx, 1))
	nodes, err := repo.GetNodesByOwner(ctx, datagateway.GetNodesByOwnerParams{Owner: alice})
	require.NoError(t, err)
	assert.Equal(t, []uint64{3, 2}, lo.Map(nodes, func(n entity.Node, _ int) uint64 { return n.ID }))

	assert.ErrorIs(t, repo.DeleteNode(ctx, 1), errs.IndexOutOfRange)
	_, err = repo.GetNodeByID(ctx, 1)
	assert.ErrorIs(t, err, errs.IndexOutOfRange)
}

func TestGetOwner(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()
	seed(t, repo)

	owner, err := repo.GetOwner(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, entity.Owner{Address: alice, Position: 0, NodeCount: 3}, owner)

	_, err = repo.GetOwner(ctx, bob)
	assert.ErrorIs(t, err, errs.NotFound)
}

func TestDistributorStateIsCopied(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()
	seed(t, repo)

	state, err := repo.GetDistributorState(ctx)
	require.NoError(t, err)
	state.Balances[pool] = uint128.From64(1000)

	again, err := repo.GetDistributorState(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint128.From64(3), again.Balances[pool])
}
