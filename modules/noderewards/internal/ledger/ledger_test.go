package ledger

import (
	"slices"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/node-rewards/common/errs"
	"github.com/gaze-network/node-rewards/modules/noderewards/internal/entity"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alice = common.HexToAddress("0x00000000000000000000000000000000000a11ce")
	bob   = common.HexToAddress("0x0000000000000000000000000000000000000b0b")
)

func node(typ string, created int64) entity.Node {
	ts := time.Unix(created, 0).UTC()
	return entity.Node{Type: typ, CreatedAt: ts, LastClaimAt: ts}
}

func ids(nodes []entity.Node) []uint64 {
	return lo.Map(nodes, func(n entity.Node, _ int) uint64 { return n.ID })
}

func TestLedgerPush(t *testing.T) {
	l := New()
	a1 := l.Push(alice, node("Axe", 1))
	a2 := l.Push(alice, node("Axe", 2))
	b1 := l.Push(bob, node("Sladar", 3))

	assert.Equal(t, uint64(1), a1.ID)
	assert.Equal(t, uint64(2), a2.ID)
	assert.Equal(t, uint64(3), b1.ID)
	assert.Equal(t, alice, a1.Owner)
	assert.Equal(t, 2, l.Count(alice))
	assert.Equal(t, 1, l.Count(bob))
	assert.Equal(t, 2, l.OwnerCount())

	got, err := l.Get(alice, 1)
	require.NoError(t, err)
	assert.Equal(t, a2, got)

	owner, index, ok := l.Lookup(b1.ID)
	require.True(t, ok)
	assert.Equal(t, bob, owner)
	assert.Equal(t, 0, index)
}

func TestLedgerRemoveAtSwapsLast(t *testing.T) {
	l := New()
	for i := range 4 {
		l.Push(alice, node("Axe", int64(i)))
	}

	removed, err := l.RemoveAt(alice, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), removed.ID)

	assert.Equal(t, []uint64{1, 4, 3}, ids(slices.Collect(l.Nodes(alice, 0, 0))))
	_, index, ok := l.Lookup(4)
	require.True(t, ok)
	assert.Equal(t, 1, index)
	_, _, ok = l.Lookup(2)
	assert.False(t, ok)

	_, err = l.RemoveAt(alice, 3)
	assert.ErrorIs(t, err, errs.IndexOutOfRange)
	_, err = l.RemoveAt(bob, 0)
	assert.ErrorIs(t, err, errs.IndexOutOfRange)
}

func TestLedgerReinsertAndSwapUndoRemoval(t *testing.T) {
	l := New()
	for i := range 3 {
		l.Push(alice, node("Axe", int64(i)))
	}
	before := slices.Collect(l.Nodes(alice, 0, 0))

	removed, err := l.RemoveAt(alice, 0)
	require.NoError(t, err)
	require.NoError(t, l.Reinsert(removed))
	require.NoError(t, l.Swap(alice, 0, l.Count(alice)-1))

	assert.Equal(t, before, slices.Collect(l.Nodes(alice, 0, 0)))
	for i, n := range before {
		_, index, ok := l.Lookup(n.ID)
		require.True(t, ok)
		assert.Equal(t, i, index)
	}
	assert.ErrorIs(t, l.Reinsert(removed), errs.DuplicateKey)
}

func TestLedgerSet(t *testing.T) {
	l := New()
	n := l.Push(alice, node("Axe", 1))

	n.LastClaimAt = n.LastClaimAt.Add(time.Hour)
	require.NoError(t, l.Set(alice, 0, n))
	got, err := l.Get(alice, 0)
	require.NoError(t, err)
	assert.Equal(t, n.LastClaimAt, got.LastClaimAt)

	n.ID = 99
	assert.ErrorIs(t, l.Set(alice, 0, n), errs.InvalidArgument)
	assert.ErrorIs(t, l.Set(alice, 5, n), errs.IndexOutOfRange)
}

func TestLedgerOwnersNeverPruned(t *testing.T) {
	l := New()
	l.Push(alice, node("Axe", 1))
	l.Push(bob, node("Axe", 2))
	_, err := l.RemoveAt(alice, 0)
	require.NoError(t, err)

	owners := slices.Collect(l.Owners(0, 0))
	require.Len(t, owners, 2)
	assert.Equal(t, entity.Owner{Address: alice, Position: 0, NodeCount: 0}, owners[0])
	assert.Equal(t, entity.Owner{Address: bob, Position: 1, NodeCount: 1}, owners[1])
}

func TestLedgerPopOwner(t *testing.T) {
	l := New()
	l.Push(alice, node("Axe", 1))
	require.True(t, l.EnsureOwner(bob))
	require.False(t, l.EnsureOwner(bob))

	assert.Error(t, l.PopOwner(alice), "alice is not the last owner")
	require.NoError(t, l.PopOwner(bob))
	assert.False(t, l.HasOwner(bob))
	assert.Error(t, l.PopOwner(alice), "alice still holds nodes")
}

func TestLedgerMigrated(t *testing.T) {
	l := New()
	l.SetMigrated(alice, true)
	owner, ok := l.Owner(alice)
	require.True(t, ok)
	assert.True(t, owner.Migrated)
	assert.Zero(t, owner.NodeCount)
}

func TestLedgerNodesPaging(t *testing.T) {
	l := New()
	for i := range 5 {
		l.Push(alice, node("Axe", int64(i)))
	}

	testCases := []struct {
		name   string
		offset int
		limit  int
		want   []uint64
	}{
		{name: "all", offset: 0, limit: 0, want: []uint64{1, 2, 3, 4, 5}},
		{name: "first page", offset: 0, limit: 2, want: []uint64{1, 2}},
		{name: "middle page", offset: 2, limit: 2, want: []uint64{3, 4}},
		{name: "short last page", offset: 4, limit: 2, want: []uint64{5}},
		{name: "past the end", offset: 9, limit: 2, want: []uint64{}},
		{name: "negative offset", offset: -1, limit: 1, want: []uint64{1}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ids(slices.Collect(l.Nodes(alice, tc.offset, tc.limit))))
		})
	}

	assert.Empty(t, slices.Collect(l.Nodes(bob, 0, 0)))
}

func TestLedgerPagingProperty(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("consecutive pages cover every node exactly once", prop.ForAll(
		func(total, pageSize int) bool {
			l := New()
			for i := range total {
				l.Push(alice, node("Axe", int64(i)))
			}
			var paged []entity.Node
			for offset := 0; offset < total; offset += pageSize {
				paged = slices.AppendSeq(paged, l.Nodes(alice, offset, pageSize))
			}
			return slices.Equal(paged, slices.Collect(l.Nodes(alice, 0, 0)))
		},
		gen.IntRange(0, 60),
		gen.IntRange(1, 10),
	))

	properties.Property("id table stays consistent under removals", prop.ForAll(
		func(total int, removals []int) bool {
			l := New()
			for i := range total {
				l.Push(alice, node("Axe", int64(i)))
			}
			for _, r := range removals {
				if l.Count(alice) == 0 {
					break
				}
				if _, err := l.RemoveAt(alice, r%l.Count(alice)); err != nil {
					return false
				}
			}
			for i, n := range slices.Collect(l.Nodes(alice, 0, 0)) {
				owner, index, ok := l.Lookup(n.ID)
				if !ok || owner != alice || index != i {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 40),
		gen.SliceOf(gen.IntRange(0, 100)),
	))

	properties.TestingRun(t)
}
