// Package decimals converts base-unit token amounts to and from their decimal display form.
package decimals

import (
	"github.com/Cleverse/go-utilities/utils"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/node-rewards/common/errs"
	"github.com/gaze-network/uint128"
	"github.com/shopspring/decimal"
)

// MaxDecimals is the largest supported number of token decimals.
const MaxDecimals = 36

// MustFromString convert string to decimal.Decimal. Panic if error
// string must be a valid number, not NaN, Inf or empty string.
func MustFromString(s string) decimal.Decimal {
	return utils.Must(decimal.NewFromString(s))
}

// ToDecimal shifts a base-unit amount by decimals, e.g. 1500 with 3 decimals is 1.5.
func ToDecimal(amount uint128.Uint128, decimals uint8) decimal.Decimal {
	return decimal.NewFromBigInt(amount.Big(), -int32(decimals))
}

// ToUint128 converts a display amount back to base units.
// Amounts that are negative, too precise, or too large fail with errs.InvalidArgument.
func ToUint128(amount decimal.Decimal, decimals uint8) (uint128.Uint128, error) {
	if decimals > MaxDecimals {
		return uint128.Zero, errors.Wrapf(errs.InvalidArgument, "decimals %d exceeds %d", decimals, MaxDecimals)
	}
	if amount.IsNegative() {
		return uint128.Zero, errors.Wrapf(errs.InvalidArgument, "negative amount %s", amount)
	}
	shifted := amount.Shift(int32(decimals))
	if !shifted.Equal(shifted.Truncate(0)) {
		return uint128.Zero, errors.Wrapf(errs.InvalidArgument, "amount %s has more than %d decimals", amount, decimals)
	}
	value, err := uint128.FromBig(shifted.BigInt())
	if err != nil {
		return uint128.Zero, errors.Wrapf(errs.InvalidArgument, "amount %s overflows uint128", amount)
	}
	return value, nil
}

// Parse converts a display amount string to base units.
func Parse(s string, decimals uint8) (uint128.Uint128, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return uint128.Zero, errors.Wrapf(errs.InvalidArgument, "invalid amount %q", s)
	}
	value, err := ToUint128(amount, decimals)
	return value, errors.WithStack(err)
}

// String renders a base-unit amount in display form without trailing zeros.
func String(amount uint128.Uint128, decimals uint8) string {
	return ToDecimal(amount, decimals).String()
}
