package postgres

import (
	"math"
	"testing"
	"time"

	"github.com/gaze-network/node-rewards/modules/noderewards/internal/entity"
	"github.com/gaze-network/node-rewards/modules/noderewards/repository/postgres/gen"
	"github.com/gaze-network/uint128"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumericKeepsFullUint128Range(t *testing.T) {
	for _, v := range []uint128.Uint128{uint128.Zero, uint128.From64(1000), uint128.Max} {
		numeric, err := numericFromUint128(v)
		require.NoError(t, err)
		got, err := uint128FromNumeric(numeric)
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestClampInt32(t *testing.T) {
	testCases := []struct {
		in   int
		want int32
	}{
		{-1, 0},
		{0, 0},
		{50, 50},
		{math.MaxInt32, math.MaxInt32},
		{math.MaxInt32 + 1, math.MaxInt32},
		{1 << 40, math.MaxInt32},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, clampInt32(tc.in), tc.in)
	}
}

func TestMapNodeType(t *testing.T) {
	nodeType := entity.NodeType{
		Name:          "Axe",
		Price:         uint128.From64(10_000),
		ClaimInterval: 90 * time.Minute,
		RewardRate:    uint128.From64(3),
		ClaimTax:      15,
		NextTier:      "Sladar",
		LevelUpCount:  5,
	}
	params, err := mapNodeTypeTypeToParams(nodeType)
	require.NoError(t, err)
	assert.Equal(t, int64(5400), params.ClaimIntervalSeconds)

	got, err := mapNodeTypeModelToType(gen.NoderewardsNodeType{
		Seq:                  1,
		Name:                 params.Name,
		Price:                params.Price,
		ClaimIntervalSeconds: params.ClaimIntervalSeconds,
		RewardRate:           params.RewardRate,
		ClaimTax:             params.ClaimTax,
		NextTier:             params.NextTier,
		LevelUpCount:         params.LevelUpCount,
	})
	require.NoError(t, err)
	assert.Equal(t, nodeType, got)
}
