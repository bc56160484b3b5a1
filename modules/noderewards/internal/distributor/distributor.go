// Package distributor splits incoming value across pools and payees and queues a
// share of it for the swap-and-liquify collaborator.
package distributor

import (
	"context"
	"maps"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/node-rewards/common/errs"
	"github.com/gaze-network/node-rewards/modules/noderewards/collaborator"
	"github.com/gaze-network/node-rewards/modules/noderewards/internal/entity"
	"github.com/gaze-network/node-rewards/pkg/logger"
	"github.com/gaze-network/node-rewards/pkg/logger/slogx"
	"github.com/gaze-network/uint128"
	"github.com/samber/lo"
)

const percentTotal = 100

// Store persists the distributor accounting. Calls run inside the caller's transaction.
type Store interface {
	GetDistributorState(ctx context.Context) (entity.DistributorState, error)
	SaveDistributorState(ctx context.Context, state entity.DistributorState) error
}

type Config struct {
	Fees             entity.Fees
	FutureUsePool    common.Address
	DistributionPool common.Address
	Payees           []entity.Payee
	SwapAmount       uint128.Uint128
}

func (c Config) Validate() error {
	fundingFees := c.Fees.FutureFee + c.Fees.RewardsFee + c.Fees.LiquidityPoolFee
	if fundingFees > percentTotal {
		return errors.Wrapf(errs.InvalidArgument, "funding fees sum to %d%%, must not exceed 100%%", fundingFees)
	}
	if c.Fees.CashoutFee > percentTotal {
		return errors.Wrapf(errs.InvalidArgument, "cashout fee %d%% exceeds 100%%", c.Fees.CashoutFee)
	}
	if c.FutureUsePool == (common.Address{}) {
		return errors.Wrap(errs.InvalidArgument, "future-use pool address is required")
	}
	if c.DistributionPool == (common.Address{}) {
		return errors.Wrap(errs.InvalidArgument, "distribution pool address is required")
	}
	if c.SwapAmount.IsZero() {
		return errors.Wrap(errs.InvalidArgument, "swap amount must be greater than zero")
	}

	seen := make(map[common.Address]struct{}, len(c.Payees))
	var shares uint32
	for _, p := range c.Payees {
		if p.Address == (common.Address{}) {
			return errors.Wrap(errs.InvalidArgument, "payee address is required")
		}
		if p.Share == 0 {
			return errors.Wrapf(errs.InvalidArgument, "payee %s has a zero share", p.Address)
		}
		if _, ok := seen[p.Address]; ok {
			return errors.Wrapf(errs.InvalidArgument, "payee %s is listed twice", p.Address)
		}
		seen[p.Address] = struct{}{}
		shares += p.Share
	}
	if fundingFees < percentTotal && shares != percentTotal {
		return errors.Wrapf(errs.InvalidArgument, "payee shares sum to %d, must be exactly 100", shares)
	}
	return nil
}

type Distributor struct {
	config Config
	token  collaborator.Token
	router collaborator.SwapRouter
}

func New(config Config, token collaborator.Token, router collaborator.SwapRouter) (*Distributor, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.WithStack(err)
	}
	return &Distributor{
		config: config,
		token:  token,
		router: router,
	}, nil
}

// Split is the outcome of a funding event.
type Split struct {
	Credits   map[common.Address]uint128.Uint128
	Liquidity uint128.Uint128
	Swapped   bool
}

// split divides amount by the fee table. Every unit is accounted for: the floor
// rounding remainder of all shares is credited to the distribution pool.
func (d *Distributor) split(amount uint128.Uint128) Split {
	fees := d.config.Fees
	credits := make(map[common.Address]uint128.Uint128, len(d.config.Payees)+2)
	assigned := uint128.Zero

	credit := func(addr common.Address, v uint128.Uint128) {
		if v.IsZero() {
			return
		}
		credits[addr] = credits[addr].Add(v)
		assigned = assigned.Add(v)
	}

	credit(d.config.FutureUsePool, entity.PercentOf(amount, fees.FutureFee))
	credit(d.config.DistributionPool, entity.PercentOf(amount, fees.RewardsFee))
	liquidity := entity.PercentOf(amount, fees.LiquidityPoolFee)
	assigned = assigned.Add(liquidity)

	payeeTotal := entity.PercentOf(amount, percentTotal-fees.FutureFee-fees.RewardsFee-fees.LiquidityPoolFee)
	for _, p := range d.config.Payees {
		credit(p.Address, entity.PercentOf(payeeTotal, p.Share))
	}
	credit(d.config.DistributionPool, amount.Sub(assigned))

	return Split{Credits: credits, Liquidity: liquidity}
}

func addBalance(state *entity.DistributorState, addr common.Address, amount uint128.Uint128) error {
	if state.Balances == nil {
		state.Balances = make(map[common.Address]uint128.Uint128)
	}
	sum, overflow := state.Balances[addr].AddOverflow(amount)
	if overflow {
		return errors.Wrapf(errs.OverflowUint128, "balance of %s", addr)
	}
	state.Balances[addr] = sum
	return nil
}

// Fund records a funding event and attempts at most one swap-and-liquify call.
// A failed swap leaves the pending balance queued for the next funding event.
func (d *Distributor) Fund(ctx context.Context, store Store, amount uint128.Uint128) (Split, error) {
	if amount.IsZero() {
		return Split{Credits: map[common.Address]uint128.Uint128{}}, nil
	}
	state, err := store.GetDistributorState(ctx)
	if err != nil {
		return Split{}, errors.Wrap(err, "failed to get distributor state")
	}
	state.Balances = maps.Clone(state.Balances)

	result := d.split(amount)
	for addr, v := range result.Credits {
		if err := addBalance(&state, addr, v); err != nil {
			return Split{}, errors.WithStack(err)
		}
	}
	pending, overflow := state.PendingSwap.AddOverflow(result.Liquidity)
	if overflow {
		return Split{}, errors.Wrap(errs.OverflowUint128, "pending swap balance")
	}
	state.PendingSwap = pending

	if state.PendingSwap.Cmp(d.config.SwapAmount) >= 0 {
		if err := d.router.SwapAndAddLiquidity(ctx, d.config.SwapAmount); err != nil {
			logger.WarnContext(ctx, "Swap and liquify failed, pending balance kept for the next funding event",
				slogx.Error(err),
				slogx.Stringer("pending", state.PendingSwap),
				slogx.Stringer("swapAmount", d.config.SwapAmount),
			)
		} else {
			state.PendingSwap = state.PendingSwap.Sub(d.config.SwapAmount)
			state.SwapCount++
			result.Swapped = true
		}
	}

	if err := store.SaveDistributorState(ctx, state); err != nil {
		return Split{}, errors.Wrap(err, "failed to save distributor state")
	}
	return result, nil
}

func (d *Distributor) collect(ctx context.Context, store Store, pool common.Address, amount uint128.Uint128) error {
	if amount.IsZero() {
		return nil
	}
	state, err := store.GetDistributorState(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get distributor state")
	}
	state.Balances = maps.Clone(state.Balances)
	if err := addBalance(&state, pool, amount); err != nil {
		return errors.WithStack(err)
	}
	if err := store.SaveDistributorState(ctx, state); err != nil {
		return errors.Wrap(err, "failed to save distributor state")
	}
	return nil
}

// CollectTax credits early-claim tax to the distribution pool.
func (d *Distributor) CollectTax(ctx context.Context, store Store, amount uint128.Uint128) error {
	return errors.WithStack(d.collect(ctx, store, d.config.DistributionPool, amount))
}

// CollectCashoutFee credits a cash-out fee to the future-use pool.
func (d *Distributor) CollectCashoutFee(ctx context.Context, store Store, amount uint128.Uint128) error {
	return errors.WithStack(d.collect(ctx, store, d.config.FutureUsePool, amount))
}

// CashoutFee returns the fee withheld from a cash-out of amount.
func (d *Distributor) CashoutFee(amount uint128.Uint128) uint128.Uint128 {
	return entity.PercentOf(amount, d.config.Fees.CashoutFee)
}

// IsDestination reports whether addr is a configured pool or payee.
func (d *Distributor) IsDestination(addr common.Address) bool {
	if addr == d.config.FutureUsePool || addr == d.config.DistributionPool {
		return true
	}
	return lo.ContainsBy(d.config.Payees, func(p entity.Payee) bool { return p.Address == addr })
}

// Release pays out the accrued balance of destination. A rejected transfer keeps the balance.
func (d *Distributor) Release(ctx context.Context, store Store, destination common.Address) (uint128.Uint128, error) {
	state, err := store.GetDistributorState(ctx)
	if err != nil {
		return uint128.Zero, errors.Wrap(err, "failed to get distributor state")
	}
	balance, ok := state.Balances[destination]
	if !ok && !d.IsDestination(destination) {
		return uint128.Zero, errors.Wrapf(errs.NotFound, "destination %s", destination)
	}
	if balance.IsZero() {
		return uint128.Zero, nil
	}
	if err := d.token.TransferOut(ctx, destination, balance); err != nil {
		return uint128.Zero, errors.Wrapf(err, "failed to release %s to %s", balance, destination)
	}
	state.Balances = maps.Clone(state.Balances)
	state.Balances[destination] = uint128.Zero
	if err := store.SaveDistributorState(ctx, state); err != nil {
		return uint128.Zero, errors.Wrap(err, "failed to save distributor state")
	}
	return balance, nil
}

func (d *Distributor) State(ctx context.Context, store Store) (entity.DistributorState, error) {
	state, err := store.GetDistributorState(ctx)
	if err != nil {
		return entity.DistributorState{}, errors.Wrap(err, "failed to get distributor state")
	}
	return state, nil
}

func (d *Distributor) Config() Config {
	return d.config
}
