package httphandler

import (
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gofiber/fiber/v2"
)

type balance struct {
	Address common.Address `json:"address"`
	Amount  amount         `json:"amount"`
}

type getDistributorResult struct {
	PendingSwap amount    `json:"pendingSwap"`
	SwapCount   uint64    `json:"swapCount"`
	Balances    []balance `json:"balances"`
}

func (h *HttpHandler) GetDistributor(ctx *fiber.Ctx) error {
	state, err := h.usecase.DistributorState(ctx.UserContext())
	if err != nil {
		return errors.Wrap(err, "error during DistributorState")
	}

	balances := make([]balance, 0, len(state.Balances))
	for address, value := range state.Balances {
		balances = append(balances, balance{Address: address, Amount: h.amount(value)})
	}
	slices.SortFunc(balances, func(i, j balance) int {
		return i.Address.Cmp(j.Address)
	})

	return ok(ctx, getDistributorResult{
		PendingSwap: h.amount(state.PendingSwap),
		SwapCount:   state.SwapCount,
		Balances:    balances,
	})
}

func (h *HttpHandler) Release(ctx *fiber.Ctx) error {
	address, err := h.parseAddressParam(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	released, err := h.usecase.Release(ctx.UserContext(), address)
	if err != nil {
		return errors.Wrap(err, "error during Release")
	}
	return ok(ctx, h.amount(released))
}
