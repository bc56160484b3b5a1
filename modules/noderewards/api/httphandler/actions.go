package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/node-rewards/common/errs"
	"github.com/gaze-network/node-rewards/modules/noderewards/internal/entity"
	"github.com/gaze-network/node-rewards/modules/noderewards/usecase"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

type createNodesRequest struct {
	Payment usecase.Payment `json:"payment"`
	Type    string          `json:"type"` // default node type when empty
	Count   uint32          `json:"count"`
}

func (r createNodesRequest) Validate() error {
	var errList []error
	if !r.Payment.Valid() {
		errList = append(errList, errors.Errorf("'payment' must be one of %q, %q or %q", usecase.PaymentGrant, usecase.PaymentTokens, usecase.PaymentDeposit))
	}
	if r.Count == 0 {
		errList = append(errList, errors.New("'count' must be positive"))
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

func (h *HttpHandler) CreateNodes(ctx *fiber.Ctx) error {
	address, err := h.parseAddressParam(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	var req createNodesRequest
	if err := parseBody(ctx, &req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}
	if req.Payment == usecase.PaymentGrant && !h.isAdmin(ctx) {
		return fiber.ErrUnauthorized
	}

	nodes, err := h.usecase.CreateNodes(ctx.UserContext(), req.Payment, address, req.Type, req.Count)
	if err != nil {
		return errors.Wrap(err, "error during CreateNodes")
	}
	return ok(ctx, lo.Map(nodes, func(n entity.Node, _ int) node { return mapNode(n) }))
}

type depositRequest struct {
	Amount string `json:"amount"`
}

func (h *HttpHandler) Deposit(ctx *fiber.Ctx) error {
	address, err := h.parseAddressParam(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	var req depositRequest
	if err := parseBody(ctx, &req); err != nil {
		return errors.WithStack(err)
	}
	value, err := h.parseAmount("amount", req.Amount)
	if err != nil {
		return errors.WithStack(err)
	}

	balance, err := h.usecase.Deposit(ctx.UserContext(), address, value)
	if err != nil {
		return errors.Wrap(err, "error during Deposit")
	}
	return ok(ctx, h.amount(balance))
}

func (h *HttpHandler) ClaimReward(ctx *fiber.Ctx) error {
	address, nodeID, err := h.parseNodeParams(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	reward, err := h.usecase.ClaimReward(ctx.UserContext(), address, nodeID)
	if err != nil {
		return errors.Wrap(err, "error during ClaimReward")
	}
	return ok(ctx, h.mapReward(reward))
}

func (h *HttpHandler) ClaimAll(ctx *fiber.Ctx) error {
	address, err := h.parseAddressParam(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	reward, err := h.usecase.ClaimAll(ctx.UserContext(), address)
	if err != nil {
		return errors.Wrap(err, "error during ClaimAll")
	}
	return ok(ctx, h.mapReward(reward))
}

type cashoutResult struct {
	Reward reward `json:"reward"`
	Fee    amount `json:"fee"`
	Paid   amount `json:"paid"`
}

func (h *HttpHandler) mapCashout(c usecase.Cashout) cashoutResult {
	return cashoutResult{
		Reward: h.mapReward(c.Reward),
		Fee:    h.amount(c.Fee),
		Paid:   h.amount(c.Paid),
	}
}

func (h *HttpHandler) CashoutReward(ctx *fiber.Ctx) error {
	address, nodeID, err := h.parseNodeParams(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	cashout, err := h.usecase.CashoutReward(ctx.UserContext(), address, nodeID)
	if err != nil {
		return errors.Wrap(err, "error during CashoutReward")
	}
	return ok(ctx, h.mapCashout(cashout))
}

func (h *HttpHandler) CashoutAll(ctx *fiber.Ctx) error {
	address, err := h.parseAddressParam(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	cashout, err := h.usecase.CashoutAll(ctx.UserContext(), address)
	if err != nil {
		return errors.Wrap(err, "error during CashoutAll")
	}
	return ok(ctx, h.mapCashout(cashout))
}

type levelUpRequest struct {
	Type string `json:"type"`
}

func (h *HttpHandler) LevelUp(ctx *fiber.Ctx) error {
	address, err := h.parseAddressParam(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	var req levelUpRequest
	if err := parseBody(ctx, &req); err != nil {
		return errors.WithStack(err)
	}
	if req.Type == "" {
		return errs.NewPublicError("'type' is required")
	}

	created, err := h.usecase.LevelUpNodes(ctx.UserContext(), address, req.Type)
	if err != nil {
		return errors.Wrap(err, "error during LevelUpNodes")
	}
	return ok(ctx, mapNode(created))
}

type migrateResult struct {
	Migrated int `json:"migrated"`
}

func (h *HttpHandler) Migrate(ctx *fiber.Ctx) error {
	address, err := h.parseAddressParam(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	migrated, err := h.usecase.Migrate(ctx.UserContext(), address)
	if err != nil {
		return errors.Wrap(err, "error during Migrate")
	}
	return ok(ctx, migrateResult{Migrated: migrated})
}
