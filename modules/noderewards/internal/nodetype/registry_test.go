package nodetype

import (
	"fmt"
	"slices"
	"testing"
	"time"

	"github.com/gaze-network/node-rewards/common/errs"
	"github.com/gaze-network/node-rewards/modules/noderewards/internal/entity"
	"github.com/gaze-network/uint128"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testType(name string) entity.NodeType {
	return entity.NodeType{
		Name:          name,
		Price:         uint128.From64(10),
		ClaimInterval: time.Hour,
		RewardRate:    uint128.From64(1),
		ClaimTax:      10,
	}
}

func TestRegistryAddAndGet(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Add(testType("Axe")))

	got, err := r.Get("Axe")
	require.NoError(t, err)
	assert.Equal(t, testType("Axe"), got)
	assert.True(t, r.Has("Axe"))
	assert.Equal(t, 1, r.Len())

	_, err = r.Get("Sladar")
	assert.ErrorIs(t, err, errs.NotFound)
}

func TestRegistryAddDuplicate(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Add(testType("Axe")))

	dup := testType("Axe")
	dup.Price = uint128.From64(999)
	err := r.Add(dup)
	require.ErrorIs(t, err, errs.DuplicateKey)

	got, err := r.Get("Axe")
	require.NoError(t, err)
	assert.Equal(t, uint128.From64(10), got.Price, "existing entry must not change")
	assert.Equal(t, 1, r.Len())
}

func TestRegistryAddInvalid(t *testing.T) {
	testCases := []struct {
		name     string
		nodeType entity.NodeType
	}{
		{name: "empty name", nodeType: testType("")},
		{name: "field delimiter", nodeType: testType("A#B")},
		{name: "record delimiter", nodeType: testType("A-B")},
		{name: "tax above 100", nodeType: func() entity.NodeType { t := testType("A"); t.ClaimTax = 101; return t }()},
		{name: "next tier without count", nodeType: func() entity.NodeType { t := testType("A"); t.NextTier = "B"; return t }()},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := NewRegistry()
			err := r.Add(tc.nodeType)
			require.ErrorIs(t, err, errs.InvalidArgument)
			assert.Zero(t, r.Len())
		})
	}
}

func TestRegistryForwardReference(t *testing.T) {
	r := NewRegistry()
	axe := testType("Axe")
	axe.NextTier = "Sladar"
	axe.LevelUpCount = 5
	require.NoError(t, r.Add(axe))
	assert.False(t, r.Has("Sladar"))
}

func TestRegistryUpdate(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Add(testType("X")))

	old, err := r.Update("X", entity.NodeTypeUpdate{
		Price:      lo.ToPtr(uint128.From64(100)),
		RewardRate: lo.ToPtr(uint128.From64(100)),
	})
	require.NoError(t, err)
	assert.Equal(t, testType("X"), old)

	got, err := r.Get("X")
	require.NoError(t, err)
	expected := testType("X")
	expected.Price = uint128.From64(100)
	expected.RewardRate = uint128.From64(100)
	assert.Equal(t, expected, got)

	_, err = r.Update("missing", entity.NodeTypeUpdate{})
	assert.ErrorIs(t, err, errs.NotFound)

	_, err = r.Update("X", entity.NodeTypeUpdate{ClaimTax: lo.ToPtr[uint8](200)})
	assert.ErrorIs(t, err, errs.InvalidArgument)
	got, err = r.Get("X")
	require.NoError(t, err)
	assert.Equal(t, expected, got, "rejected update must not change the entry")
}

func TestRegistryRemovePreservesOrder(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"a", "b", "c", "d"} {
		require.NoError(t, r.Add(testType(name)))
	}
	require.NoError(t, r.Remove("b"))
	names := lo.Map(slices.Collect(r.All()), func(t entity.NodeType, _ int) string { return t.Name })
	assert.Equal(t, []string{"a", "c", "d"}, names)

	got, err := r.Get("d")
	require.NoError(t, err)
	assert.Equal(t, "d", got.Name)

	assert.ErrorIs(t, r.Remove("b"), errs.NotFound)
}

func TestRegistryAllRestartable(t *testing.T) {
	r := NewRegistry()
	assert.Empty(t, slices.Collect(r.All()))

	require.NoError(t, r.Add(testType("a")))
	require.NoError(t, r.Add(testType("b")))
	seq := r.All()
	assert.Equal(t, slices.Collect(seq), slices.Collect(seq))

	for range seq {
		break
	}
	assert.Len(t, slices.Collect(seq), 2)
}

func TestRegistryInsertionOrderProperty(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("distinct names enumerate in insertion order", prop.ForAll(
		func(n int) bool {
			r := NewRegistry()
			want := make([]string, 0, n)
			for i := range n {
				name := fmt.Sprintf("tier%d", (i*7919)%1000)
				if r.Has(name) {
					continue
				}
				if r.Add(testType(name)) != nil {
					return false
				}
				want = append(want, name)
			}
			got := lo.Map(slices.Collect(r.All()), func(t entity.NodeType, _ int) string { return t.Name })
			return slices.Equal(want, got)
		},
		gen.IntRange(0, 200),
	))

	properties.Property("duplicate add leaves the registry untouched", prop.ForAll(
		func(names []string) bool {
			r := NewRegistry()
			for _, name := range names {
				_ = r.Add(testType(name))
			}
			before := slices.Collect(r.All())
			for _, name := range names {
				if r.Has(name) && r.Add(testType(name)) == nil {
					return false
				}
			}
			return slices.Equal(before, slices.Collect(r.All()))
		},
		gen.SliceOf(gen.AlphaString()),
	))

	properties.TestingRun(t)
}
