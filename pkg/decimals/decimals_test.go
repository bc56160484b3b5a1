package decimals

import (
	"testing"

	"github.com/gaze-network/node-rewards/common/errs"
	"github.com/gaze-network/uint128"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestString(t *testing.T) {
	testCases := []struct {
		amount   uint128.Uint128
		decimals uint8
		expected string
	}{
		{uint128.From64(1500), 3, "1.5"},
		{uint128.From64(1500), 0, "1500"},
		{uint128.From64(1), 18, "0.000000000000000001"},
		{uint128.Zero, 18, "0"},
		{uint128.Max, 0, "340282366920938463463374607431768211455"},
	}
	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, String(tc.amount, tc.decimals))
		})
	}
}

func TestParse(t *testing.T) {
	value, err := Parse("1.5", 18)
	require.NoError(t, err)
	assert.Equal(t, "1500000000000000000", value.String())

	value, err = Parse("42", 0)
	require.NoError(t, err)
	assert.Equal(t, uint128.From64(42), value)

	invalid := []struct {
		input    string
		decimals uint8
	}{
		{"-1", 3},
		{"0.0001", 3},
		{"abc", 3},
		{"340282366920938463463374607431768211456", 0},
	}
	for _, tc := range invalid {
		t.Run(tc.input, func(t *testing.T) {
			_, err := Parse(tc.input, tc.decimals)
			require.ErrorIs(t, err, errs.InvalidArgument)
		})
	}

	_, err = ToUint128(MustFromString("1"), MaxDecimals+1)
	require.ErrorIs(t, err, errs.InvalidArgument)
}
