package entity

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/node-rewards/common/errs"
	"github.com/gaze-network/uint128"
)

// Delimiters of the query serialization. Node type names must not contain them.
const (
	FieldSeparator  = "#"
	RecordSeparator = "-"
)

type NodeType struct {
	Name          string
	Price         uint128.Uint128
	ClaimInterval time.Duration
	RewardRate    uint128.Uint128 // accrued per second
	ClaimTax      uint8           // percent, applied when claimed before ClaimInterval
	NextTier      string          // empty for terminal tier
	LevelUpCount  uint32
}

func (t NodeType) Validate() error {
	if t.Name == "" {
		return errors.Wrap(errs.InvalidArgument, "node type name is empty")
	}
	if strings.ContainsAny(t.Name, FieldSeparator+RecordSeparator) {
		return errors.Wrapf(errs.InvalidArgument, "node type name %q contains a reserved delimiter", t.Name)
	}
	if strings.ContainsAny(t.NextTier, FieldSeparator+RecordSeparator) {
		return errors.Wrapf(errs.InvalidArgument, "next tier name %q contains a reserved delimiter", t.NextTier)
	}
	if t.ClaimTax > 100 {
		return errors.Wrapf(errs.InvalidArgument, "claim tax %d exceeds 100 percent", t.ClaimTax)
	}
	if t.ClaimInterval < 0 {
		return errors.Wrap(errs.InvalidArgument, "claim interval is negative")
	}
	if t.NextTier != "" && t.LevelUpCount == 0 {
		return errors.Wrapf(errs.InvalidArgument, "node type %q has next tier %q but level-up count is zero", t.Name, t.NextTier)
	}
	return nil
}

// IsTerminal reports whether the type has no next tier.
func (t NodeType) IsTerminal() bool {
	return t.NextTier == ""
}

// NodeTypeUpdate is a selective update. Nil fields leave the stored value unchanged.
type NodeTypeUpdate struct {
	Price         *uint128.Uint128
	ClaimInterval *time.Duration
	RewardRate    *uint128.Uint128
	ClaimTax      *uint8
	NextTier      *string
	LevelUpCount  *uint32
}

// Apply returns t with every set field of u applied.
func (u NodeTypeUpdate) Apply(t NodeType) NodeType {
	if u.Price != nil {
		t.Price = *u.Price
	}
	if u.ClaimInterval != nil {
		t.ClaimInterval = *u.ClaimInterval
	}
	if u.RewardRate != nil {
		t.RewardRate = *u.RewardRate
	}
	if u.ClaimTax != nil {
		t.ClaimTax = *u.ClaimTax
	}
	if u.NextTier != nil {
		t.NextTier = *u.NextTier
	}
	if u.LevelUpCount != nil {
		t.LevelUpCount = *u.LevelUpCount
	}
	return t
}

type Node struct {
	ID          uint64
	Owner       common.Address
	Type        string
	CreatedAt   time.Time
	LastClaimAt time.Time
}

type Owner struct {
	Address   common.Address
	Position  int
	NodeCount int
	Migrated  bool
}

// LegacyNode is a node record read from the legacy reward contract.
type LegacyNode struct {
	CreatedAt   time.Time
	LastClaimAt time.Time // zero when the legacy source does not expose it
}

type Payee struct {
	Address common.Address
	Share   uint32
}

type Fees struct {
	FutureFee        uint32 // percent of a funding event sent to the future-use pool
	RewardsFee       uint32 // percent of a funding event sent to the distribution pool
	LiquidityPoolFee uint32 // percent of a funding event queued for swap-and-liquify
	CashoutFee       uint32 // percent of a cash-out withdrawn to the future-use pool
}

// DistributorState is the persisted accounting of the fee distributor.
type DistributorState struct {
	PendingSwap uint128.Uint128
	SwapCount   uint64
	Balances    map[common.Address]uint128.Uint128
}

// PercentOf returns floor(amount * percent / 100) without intermediate overflow.
func PercentOf(amount uint128.Uint128, percent uint32) uint128.Uint128 {
	q, r := amount.QuoRem64(100)
	return q.Mul64(uint64(percent)).Add64(r * uint64(percent) / 100)
}

// Unix truncates t to whole seconds in UTC, the resolution used by every stored timestamp.
func Unix(t time.Time) time.Time {
	return time.Unix(t.Unix(), 0).UTC()
}
