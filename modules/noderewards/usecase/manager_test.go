package usecase

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/node-rewards/common/errs"
	"github.com/gaze-network/node-rewards/modules/noderewards/collaborator/mocks"
	"github.com/gaze-network/node-rewards/modules/noderewards/datagateway"
	"github.com/gaze-network/node-rewards/modules/noderewards/internal/distributor"
	"github.com/gaze-network/node-rewards/modules/noderewards/internal/entity"
	"github.com/gaze-network/node-rewards/modules/noderewards/repository/memory"
	"github.com/gaze-network/uint128"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	alice = common.HexToAddress("0x00000000000000000000000000000000000a11ce")
	bob   = common.HexToAddress("0x0000000000000000000000000000000000000b0b")

	futurePool  = common.HexToAddress("0x00000000000000000000000000000000000000f1")
	rewardsPool = common.HexToAddress("0x00000000000000000000000000000000000000d1")
	payeeA      = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	payeeB      = common.HexToAddress("0x00000000000000000000000000000000000000a2")
	payeeC      = common.HexToAddress("0x00000000000000000000000000000000000000a3")
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type fixture struct {
	manager *Manager
	dist    *distributor.Distributor
	token   *mocks.Token
	router  *mocks.SwapRouter
	legacy  *mocks.LegacySource
	clock   *fakeClock
}

func tier(name, next string) entity.NodeType {
	return entity.NodeType{
		Name:          name,
		Price:         uint128.From64(100),
		ClaimInterval: time.Hour,
		RewardRate:    uint128.From64(1),
		ClaimTax:      10,
		NextTier:      next,
		LevelUpCount:  lo.Ternary[uint32](next == "", 0, 5),
	}
}

func newFixture(t *testing.T, types ...entity.NodeType) *fixture {
	t.Helper()
	f := &fixture{
		token:  mocks.NewToken(t),
		router: mocks.NewSwapRouter(t),
		legacy: mocks.NewLegacySource(t),
		clock:  &fakeClock{now: time.Unix(1_700_000_000, 0).UTC()},
	}
	dist, err := distributor.New(distributor.Config{
		Fees: entity.Fees{
			FutureFee:        10,
			RewardsFee:       60,
			LiquidityPoolFee: 10,
			CashoutFee:       10,
		},
		FutureUsePool:    futurePool,
		DistributionPool: rewardsPool,
		Payees: []entity.Payee{
			{Address: payeeA, Share: 10},
			{Address: payeeB, Share: 10},
			{Address: payeeC, Share: 80},
		},
		SwapAmount: uint128.From64(1000),
	}, f.token, f.router)
	require.NoError(t, err)
	f.dist = dist

	f.manager = NewManager(memory.NewRepository(), dist, f.token, f.legacy, Options{
		DefaultNodeType: "Axe",
		Clock:           f.clock.Now,
	})
	for _, nodeType := range types {
		require.NoError(t, f.manager.AddNodeType(context.Background(), nodeType))
	}
	return f
}

func countByType(t *testing.T, m *Manager, owner common.Address) map[string]int {
	t.Helper()
	nodes, err := m.ListNodes(context.Background(), owner, 0, 0)
	require.NoError(t, err)
	return lo.CountValuesBy(nodes, func(n entity.Node) string { return n.Type })
}

func TestNodeTypes(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	empty, err := f.manager.GetNodeTypes(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	require.NoError(t, f.manager.AddNodeType(ctx, tier("Axe", "Sladar")))
	require.NoError(t, f.manager.AddNodeType(ctx, tier("Sladar", "")))
	before, err := f.manager.GetNodeTypes(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Axe#100#3600#1#10#Sladar#5-Sladar#100#3600#1#10##0", before)

	duplicate := tier("Axe", "")
	duplicate.Price = uint128.From64(1)
	err = f.manager.AddNodeType(ctx, duplicate)
	require.ErrorIs(t, err, errs.DuplicateKey)

	after, err := f.manager.GetNodeTypes(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestChangeNodeTypeKeepsUnsetFields(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, tier("Axe", "Sladar"))

	updated, err := f.manager.ChangeNodeType(ctx, "Axe", entity.NodeTypeUpdate{
		Price:      lo.ToPtr(uint128.From64(250)),
		RewardRate: lo.ToPtr(uint128.From64(7)),
	})
	require.NoError(t, err)

	stored, err := f.manager.GetNodeType(ctx, "Axe")
	require.NoError(t, err)
	assert.Equal(t, updated, stored)

	expected := tier("Axe", "Sladar")
	expected.Price = uint128.From64(250)
	expected.RewardRate = uint128.From64(7)
	assert.Equal(t, expected, stored)

	_, err = f.manager.ChangeNodeType(ctx, "Naix", entity.NodeTypeUpdate{Price: lo.ToPtr(uint128.From64(1))})
	require.ErrorIs(t, err, errs.NotFound)
}

func TestCreateNode(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, tier("Axe", ""))

	created, err := f.manager.CreateNode(ctx, alice, "Axe", 2)
	require.NoError(t, err)
	require.Len(t, created, 2)
	f.clock.Advance(time.Minute)
	_, err = f.manager.CreateNode(ctx, alice, "", 1)
	require.NoError(t, err)

	nodes, err := f.manager.ListNodes(ctx, alice, 0, 0)
	require.NoError(t, err)
	require.Len(t, nodes, 3)
	for i, node := range nodes {
		assert.Equal(t, "Axe", node.Type)
		assert.Equal(t, node.CreatedAt, node.LastClaimAt)
		if i > 0 {
			assert.False(t, node.CreatedAt.Before(nodes[i-1].CreatedAt))
		}
	}

	t.Run("unknown type", func(t *testing.T) {
		_, err := f.manager.CreateNode(ctx, alice, "Naix", 1)
		require.ErrorIs(t, err, errs.UnknownType)
		assert.True(t, errors.Is(err, errs.NotFound))
	})
	t.Run("zero count", func(t *testing.T) {
		_, err := f.manager.CreateNode(ctx, alice, "Axe", 0)
		require.ErrorIs(t, err, errs.InvalidArgument)
	})
	t.Run("zero owner", func(t *testing.T) {
		_, err := f.manager.CreateNode(ctx, common.Address{}, "Axe", 1)
		require.ErrorIs(t, err, errs.InvalidArgument)
	})
}

func TestCreateNodeWithTokens(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, tier("Axe", ""))
	f.token.EXPECT().TransferIn(mock.Anything, alice, uint128.From64(300)).Return(nil).Once()

	_, err := f.manager.CreateNodeWithTokens(ctx, alice, "Axe", 3)
	require.NoError(t, err)

	state, err := f.manager.DistributorState(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint128.From64(30), state.PendingSwap)
	assert.Equal(t, uint128.From64(30), state.Balances[futurePool])
	assert.Equal(t, uint128.From64(180), state.Balances[rewardsPool])
	assert.Equal(t, uint128.From64(6), state.Balances[payeeA])
	assert.Equal(t, uint128.From64(6), state.Balances[payeeB])
	assert.Equal(t, uint128.From64(48), state.Balances[payeeC])

	t.Run("rejected transfer creates nothing", func(t *testing.T) {
		f.token.EXPECT().TransferIn(mock.Anything, bob, uint128.From64(100)).Return(errs.TransferRejected).Once()

		_, err := f.manager.CreateNodeWithTokens(ctx, bob, "Axe", 1)
		require.ErrorIs(t, err, errs.TransferRejected)

		count, err := f.manager.GetNodeCount(ctx, bob)
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}

func TestCreateNodeWithDeposit(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, tier("Axe", ""))
	f.token.EXPECT().TransferIn(mock.Anything, alice, uint128.From64(150)).Return(nil).Once()

	balance, err := f.manager.Deposit(ctx, alice, uint128.From64(150))
	require.NoError(t, err)
	assert.Equal(t, uint128.From64(150), balance)

	_, err = f.manager.CreateNodeWithDeposit(ctx, alice, "Axe", 2)
	require.ErrorIs(t, err, errs.InsufficientFunds)
	assert.Empty(t, countByType(t, f.manager, alice))

	_, err = f.manager.CreateNodeWithDeposit(ctx, alice, "Axe", 1)
	require.NoError(t, err)

	deposit, err := f.manager.GetDepositAmount(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, uint128.From64(50), deposit)
	assert.Equal(t, map[string]int{"Axe": 1}, countByType(t, f.manager, alice))
}

func TestLeftTime(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, tier("Axe", ""))
	created, err := f.manager.CreateNode(ctx, alice, "Axe", 1)
	require.NoError(t, err)
	id := created[0].ID

	left, err := f.manager.GetLeftTimeFromReward(ctx, alice, id)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, left)

	f.clock.Advance(20 * time.Minute)
	left, err = f.manager.GetLeftTimeFromReward(ctx, alice, id)
	require.NoError(t, err)
	assert.Equal(t, 40*time.Minute, left)

	f.clock.Advance(2 * time.Hour)
	left, err = f.manager.GetLeftTimeFromReward(ctx, alice, id)
	require.NoError(t, err)
	assert.Zero(t, left)
}

func TestClaimReward(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, tier("Axe", ""))
	created, err := f.manager.CreateNode(ctx, alice, "Axe", 2)
	require.NoError(t, err)
	early, late := created[0].ID, created[1].ID

	f.clock.Advance(30 * time.Minute)
	preview, err := f.manager.GetRewardAmountOf(ctx, alice, early)
	require.NoError(t, err)
	assert.Equal(t, Reward{Gross: uint128.From64(1800), Tax: uint128.From64(180), Net: uint128.From64(1620)}, preview)

	reward, err := f.manager.ClaimReward(ctx, alice, early)
	require.NoError(t, err)
	assert.Equal(t, preview, reward)

	repeat, err := f.manager.ClaimReward(ctx, alice, early)
	require.NoError(t, err)
	assert.True(t, repeat.Net.IsZero())

	f.clock.Advance(30 * time.Minute)
	untaxed, err := f.manager.ClaimReward(ctx, alice, late)
	require.NoError(t, err)
	assert.Equal(t, uint128.From64(3600), untaxed.Net)
	assert.True(t, untaxed.Tax.IsZero())
	assert.Equal(t, 1, reward.Net.Cmp(uint128.Zero))
	assert.Equal(t, -1, reward.Net.Cmp(untaxed.Net))

	deposit, err := f.manager.GetDepositAmount(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, uint128.From64(1620+3600), deposit)

	state, err := f.manager.DistributorState(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint128.From64(180), state.Balances[rewardsPool])

	t.Run("not owner", func(t *testing.T) {
		_, err := f.manager.ClaimReward(ctx, bob, early)
		require.ErrorIs(t, err, errs.NotOwner)
	})
	t.Run("unknown node", func(t *testing.T) {
		_, err := f.manager.ClaimReward(ctx, alice, 999)
		require.ErrorIs(t, err, errs.IndexOutOfRange)
	})
}

func TestClaimAll(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, tier("Axe", ""))
	_, err := f.manager.CreateNode(ctx, alice, "Axe", 3)
	require.NoError(t, err)

	f.clock.Advance(2 * time.Hour)
	reward, err := f.manager.ClaimAll(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, uint128.From64(3*7200), reward.Net)

	nodes, err := f.manager.ListNodes(ctx, alice, 0, 0)
	require.NoError(t, err)
	for _, node := range nodes {
		assert.Equal(t, f.clock.Now(), node.LastClaimAt)
	}

	none, err := f.manager.ClaimAll(ctx, bob)
	require.NoError(t, err)
	assert.True(t, none.Net.IsZero())
}

func TestCashout(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, tier("Axe", ""))
	created, err := f.manager.CreateNode(ctx, alice, "Axe", 1)
	require.NoError(t, err)
	id := created[0].ID
	f.clock.Advance(time.Hour)

	t.Run("rejected transfer keeps everything", func(t *testing.T) {
		f.token.EXPECT().TransferOut(mock.Anything, alice, uint128.From64(3240)).Return(errs.TransferRejected).Once()

		_, err := f.manager.CashoutReward(ctx, alice, id)
		require.ErrorIs(t, err, errs.TransferRejected)

		reward, err := f.manager.GetRewardAmountOf(ctx, alice, id)
		require.NoError(t, err)
		assert.Equal(t, uint128.From64(3600), reward.Net)
		deposit, err := f.manager.GetDepositAmount(ctx, alice)
		require.NoError(t, err)
		assert.True(t, deposit.IsZero())
	})

	t.Run("pays out minus fee", func(t *testing.T) {
		f.token.EXPECT().TransferOut(mock.Anything, alice, uint128.From64(3240)).Return(nil).Once()

		result, err := f.manager.CashoutReward(ctx, alice, id)
		require.NoError(t, err)
		assert.Equal(t, uint128.From64(360), result.Fee)
		assert.Equal(t, uint128.From64(3240), result.Paid)

		deposit, err := f.manager.GetDepositAmount(ctx, alice)
		require.NoError(t, err)
		assert.True(t, deposit.IsZero())
		state, err := f.manager.DistributorState(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint128.From64(360), state.Balances[futurePool])
	})

	t.Run("nothing to withdraw", func(t *testing.T) {
		result, err := f.manager.CashoutAll(ctx, alice)
		require.NoError(t, err)
		assert.True(t, result.Paid.IsZero())
	})
}

func TestLevelUpNodes(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, tier("Axe", "Sladar"), tier("Sladar", "Naix"), tier("Balana", ""))

	_, err := f.manager.CreateNode(ctx, alice, "Axe", 4)
	require.NoError(t, err)

	t.Run("insufficient nodes leaves collection unchanged", func(t *testing.T) {
		before, err := f.manager.ListNodes(ctx, alice, 0, 0)
		require.NoError(t, err)

		_, err = f.manager.LevelUpNodes(ctx, alice, "Axe")
		require.ErrorIs(t, err, errs.InsufficientNodes)

		after, err := f.manager.ListNodes(ctx, alice, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("consumes the earliest created", func(t *testing.T) {
		f.clock.Advance(time.Minute)
		late, err := f.manager.CreateNode(ctx, alice, "Axe", 2)
		require.NoError(t, err)

		created, err := f.manager.LevelUpNodes(ctx, alice, "Axe")
		require.NoError(t, err)
		assert.Equal(t, "Sladar", created.Type)
		assert.Equal(t, f.clock.Now(), created.CreatedAt)

		nodes, err := f.manager.ListNodes(ctx, alice, 0, 0)
		require.NoError(t, err)
		remaining := lo.Filter(nodes, func(n entity.Node, _ int) bool { return n.Type == "Axe" })
		require.Len(t, remaining, 1)
		assert.Equal(t, late[1].ID, remaining[0].ID)
	})

	t.Run("terminal tier", func(t *testing.T) {
		_, err := f.manager.LevelUpNodes(ctx, alice, "Balana")
		require.ErrorIs(t, err, errs.TerminalTier)
	})
	t.Run("unresolved next tier", func(t *testing.T) {
		_, err := f.manager.CreateNode(ctx, alice, "Sladar", 5)
		require.NoError(t, err)
		_, err = f.manager.LevelUpNodes(ctx, alice, "Sladar")
		require.ErrorIs(t, err, errs.UnknownType)
	})
	t.Run("unknown type", func(t *testing.T) {
		_, err := f.manager.LevelUpNodes(ctx, alice, "Naix")
		require.ErrorIs(t, err, errs.UnknownType)
	})
}

func TestLevelUpScenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t,
		tier("Axe", "Sladar"),
		tier("Sladar", "Naix"),
		tier("Naix", "Sven"),
		tier("Sven", "Rikimaru"),
		tier("Rikimaru", "Balana"),
		tier("Balana", ""),
	)

	_, err := f.manager.CreateNode(ctx, alice, "Axe", 10)
	require.NoError(t, err)
	_, err = f.manager.CreateNode(ctx, bob, "Axe", 7)
	require.NoError(t, err)
	bobBefore, err := f.manager.GetNodes(ctx, bob, 0, 0)
	require.NoError(t, err)

	for range 2 {
		_, err := f.manager.LevelUpNodes(ctx, alice, "Axe")
		require.NoError(t, err)
	}
	assert.Equal(t, map[string]int{"Sladar": 2}, countByType(t, f.manager, alice))

	_, err = f.manager.LevelUpNodes(ctx, alice, "Axe")
	require.ErrorIs(t, err, errs.InsufficientNodes)

	bobAfter, err := f.manager.GetNodes(ctx, bob, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, bobBefore, bobAfter)
}

func TestMigrate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, tier("Axe", ""))
	createdAt := f.clock.Now().Add(-48 * time.Hour)
	f.legacy.EXPECT().LegacyNodes(mock.Anything, alice).Return([]entity.LegacyNode{
		{CreatedAt: createdAt},
		{CreatedAt: createdAt, LastClaimAt: createdAt.Add(time.Hour)},
	}, nil).Once()

	migrated, err := f.manager.Migrate(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, 2, migrated)

	nodes, err := f.manager.ListNodes(ctx, alice, 0, 0)
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.Equal(t, createdAt, nodes[0].CreatedAt)
	assert.Equal(t, createdAt, nodes[0].LastClaimAt)
	assert.Equal(t, createdAt.Add(time.Hour), nodes[1].LastClaimAt)

	owner, err := f.manager.GetOwner(ctx, alice)
	require.NoError(t, err)
	assert.True(t, owner.Migrated)

	_, err = f.manager.Migrate(ctx, alice)
	require.ErrorIs(t, err, errs.AlreadyMigrated)

	t.Run("failed read migrates nothing", func(t *testing.T) {
		f.legacy.EXPECT().LegacyNodes(mock.Anything, bob).Return(nil, errs.Timeout).Once()

		_, err := f.manager.Migrate(ctx, bob)
		require.ErrorIs(t, err, errs.Timeout)
		_, err = f.manager.GetOwner(ctx, bob)
		require.ErrorIs(t, err, errs.NotFound)
	})
}

func TestMigrateWithoutLegacySource(t *testing.T) {
	f := newFixture(t, tier("Axe", ""))
	f.manager.legacy = nil

	_, err := f.manager.Migrate(context.Background(), alice)
	require.ErrorIs(t, err, errs.Unsupported)
}

func TestQueries(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, tier("Axe", ""))
	_, err := f.manager.CreateNode(ctx, alice, "Axe", 2)
	require.NoError(t, err)
	_, err = f.manager.CreateNode(ctx, bob, "Axe", 1)
	require.NoError(t, err)

	owners, err := f.manager.GetNodeOwners(ctx, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, alice.Hex()+"#0#2-"+bob.Hex()+"#1#1", owners)

	page, err := f.manager.GetNodeOwners(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, bob.Hex()+"#1#1", page)

	nodes, err := f.manager.GetNodes(ctx, alice, 1, 0)
	require.NoError(t, err)
	unix := strconv.FormatInt(f.clock.Now().Unix(), 10)
	assert.Equal(t, "Axe#2#"+unix+"#"+unix, nodes)

	times, err := f.manager.GetNodesCreationTime(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, unix+"#"+unix, times)

	_, err = f.manager.ListOwners(ctx, -1, 0)
	require.ErrorIs(t, err, errs.InvalidArgument)
}

func TestRelease(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, tier("Axe", ""))
	f.token.EXPECT().TransferIn(mock.Anything, alice, uint128.From64(100)).Return(nil).Once()
	f.token.EXPECT().TransferOut(mock.Anything, payeeC, uint128.From64(16)).Return(nil).Once()

	_, err := f.manager.CreateNodeWithTokens(ctx, alice, "Axe", 1)
	require.NoError(t, err)

	released, err := f.manager.Release(ctx, payeeC)
	require.NoError(t, err)
	assert.Equal(t, uint128.From64(16), released)

	_, err = f.manager.Release(ctx, bob)
	require.ErrorIs(t, err, errs.NotFound)
}

func TestSwapTriggeredByPurchases(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, tier("Axe", ""))
	f.token.EXPECT().TransferIn(mock.Anything, alice, mock.Anything).Return(nil)
	f.router.EXPECT().SwapAndAddLiquidity(mock.Anything, uint128.From64(1000)).Return(nil).Once()

	// 10% of 110 nodes at 100 queues 1100 for liquidity.
	_, err := f.manager.CreateNodeWithTokens(ctx, alice, "Axe", 110)
	require.NoError(t, err)

	state, err := f.manager.DistributorState(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint128.From64(100), state.PendingSwap)
	assert.Equal(t, uint64(1), state.SwapCount)
}

var errInsertFailed = errors.New("insert failed")

// failingNodeInserts rejects every node insert made inside a transaction.
type failingNodeInserts struct {
	datagateway.NodeRewardsDataGateway
}

func (g failingNodeInserts) BeginNodeRewardsTx(ctx context.Context) (datagateway.NodeRewardsDataGatewayWithTx, error) {
	tx, err := g.NodeRewardsDataGateway.BeginNodeRewardsTx(ctx)
	if err != nil {
		return nil, err
	}
	return failingNodeInsertsTx{tx}, nil
}

type failingNodeInsertsTx struct {
	datagateway.NodeRewardsDataGatewayWithTx
}

func (failingNodeInsertsTx) CreateNode(context.Context, entity.Node) (entity.Node, error) {
	return entity.Node{}, errInsertFailed
}

func TestCreateNodeFailureSkipsSwap(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	manager := NewManager(failingNodeInserts{memory.NewRepository()}, f.dist, f.token, nil, Options{
		DefaultNodeType: "Axe",
		Clock:           f.clock.Now,
	})
	require.NoError(t, manager.Bootstrap(ctx, tier("Axe", "")))

	// 110 nodes would queue enough liquidity for a swap, but the router mock expects no call.
	f.token.EXPECT().TransferIn(mock.Anything, alice, uint128.From64(11000)).Return(nil).Once()
	f.token.EXPECT().TransferOut(mock.Anything, alice, uint128.From64(11000)).Return(nil).Once()
	_, err := manager.CreateNodeWithTokens(ctx, alice, "Axe", 110)
	require.ErrorIs(t, err, errInsertFailed)

	state, err := manager.DistributorState(ctx)
	require.NoError(t, err)
	assert.True(t, state.PendingSwap.IsZero())
	assert.Zero(t, state.SwapCount)
}

func TestBootstrap(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	require.NoError(t, f.manager.Bootstrap(ctx, tier("Axe", "Sladar"), tier("Sladar", "")))
	require.NoError(t, f.manager.Bootstrap(ctx, tier("Naix", "")))

	types, err := f.manager.ListNodeTypes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Axe", "Sladar"}, lo.Map(types, func(t entity.NodeType, _ int) string { return t.Name }))
}
