package httphandler

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/node-rewards/common/errs"
	"github.com/gaze-network/node-rewards/modules/noderewards/internal/entity"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

type owner struct {
	Address   common.Address `json:"address"`
	Position  int            `json:"position"`
	NodeCount int            `json:"nodeCount"`
	Migrated  bool           `json:"migrated"`
}

func (h *HttpHandler) GetOwners(ctx *fiber.Ctx) error {
	var req pageRequest
	if err := parseQuery(ctx, &req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	if req.Format == formatRaw {
		raw, err := h.usecase.GetNodeOwners(ctx.UserContext(), req.Offset, req.Limit)
		if err != nil {
			return errors.Wrap(err, "error during GetNodeOwners")
		}
		return ok(ctx, raw)
	}

	owners, err := h.usecase.ListOwners(ctx.UserContext(), req.Offset, req.Limit)
	if err != nil {
		return errors.Wrap(err, "error during ListOwners")
	}
	return ok(ctx, lo.Map(owners, func(o entity.Owner, _ int) owner {
		return owner{
			Address:   o.Address,
			Position:  o.Position,
			NodeCount: o.NodeCount,
			Migrated:  o.Migrated,
		}
	}))
}

type addressRequest struct {
	Address string `params:"address"`
}

func (h *HttpHandler) parseAddressParam(ctx *fiber.Ctx) (common.Address, error) {
	var req addressRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return common.Address{}, errors.WithStack(err)
	}
	address, err := parseAddress(req.Address)
	return address, errors.WithStack(err)
}

type nodeRequest struct {
	Address string `params:"address"`
	NodeID  uint64 `params:"nodeId"`
}

func (h *HttpHandler) parseNodeParams(ctx *fiber.Ctx) (common.Address, uint64, error) {
	var req nodeRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return common.Address{}, 0, errs.WithPublicMessage(err, "invalid node id")
	}
	address, err := parseAddress(req.Address)
	if err != nil {
		return common.Address{}, 0, errors.WithStack(err)
	}
	return address, req.NodeID, nil
}

type getNodesResult struct {
	Nodes         []node `json:"nodes"`
	Total         int    `json:"total"`
	CreationTimes string `json:"creationTimes,omitempty"`
}

func (h *HttpHandler) GetNodes(ctx *fiber.Ctx) error {
	address, err := h.parseAddressParam(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	var req pageRequest
	if err := parseQuery(ctx, &req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	if req.Format == formatRaw {
		raw, err := h.usecase.GetNodes(ctx.UserContext(), address, req.Offset, req.Limit)
		if err != nil {
			return errors.Wrap(err, "error during GetNodes")
		}
		return ok(ctx, raw)
	}

	nodes, err := h.usecase.ListNodes(ctx.UserContext(), address, req.Offset, req.Limit)
	if err != nil {
		return errors.Wrap(err, "error during ListNodes")
	}
	total, err := h.usecase.GetNodeCount(ctx.UserContext(), address)
	if err != nil {
		return errors.Wrap(err, "error during GetNodeCount")
	}
	creationTimes, err := h.usecase.GetNodesCreationTime(ctx.UserContext(), address)
	if err != nil {
		return errors.Wrap(err, "error during GetNodesCreationTime")
	}
	return ok(ctx, getNodesResult{
		Nodes:         lo.Map(nodes, func(n entity.Node, _ int) node { return mapNode(n) }),
		Total:         total,
		CreationTimes: creationTimes,
	})
}

type getLeftTimeResult struct {
	Seconds int64 `json:"seconds"`
}

func (h *HttpHandler) GetLeftTime(ctx *fiber.Ctx) error {
	address, nodeID, err := h.parseNodeParams(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	left, err := h.usecase.GetLeftTimeFromReward(ctx.UserContext(), address, nodeID)
	if err != nil {
		return errors.Wrap(err, "error during GetLeftTimeFromReward")
	}
	return ok(ctx, getLeftTimeResult{Seconds: int64(left / time.Second)})
}

func (h *HttpHandler) GetReward(ctx *fiber.Ctx) error {
	address, nodeID, err := h.parseNodeParams(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	reward, err := h.usecase.GetRewardAmountOf(ctx.UserContext(), address, nodeID)
	if err != nil {
		return errors.Wrap(err, "error during GetRewardAmountOf")
	}
	return ok(ctx, h.mapReward(reward))
}

func (h *HttpHandler) GetDeposit(ctx *fiber.Ctx) error {
	address, err := h.parseAddressParam(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	balance, err := h.usecase.GetDepositAmount(ctx.UserContext(), address)
	if err != nil {
		return errors.Wrap(err, "error during GetDepositAmount")
	}
	return ok(ctx, h.amount(balance))
}
