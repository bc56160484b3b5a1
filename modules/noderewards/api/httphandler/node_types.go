package httphandler

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/node-rewards/common/errs"
	"github.com/gaze-network/node-rewards/modules/noderewards/internal/entity"
	"github.com/gaze-network/node-rewards/pkg/logger"
	"github.com/gaze-network/node-rewards/pkg/logger/slogx"
	"github.com/gaze-network/uint128"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

type getNodeTypesRequest struct {
	Format string `query:"format"`
}

func (h *HttpHandler) GetNodeTypes(ctx *fiber.Ctx) error {
	var req getNodeTypesRequest
	if err := parseQuery(ctx, &req); err != nil {
		return errors.WithStack(err)
	}

	if req.Format == formatRaw {
		var raw string
		var err error
		if h.cache != nil {
			raw, err = h.cache.GetOrLoad(ctx.UserContext(), cacheKeyNodeTypesRaw, h.usecase.GetNodeTypes)
		} else {
			raw, err = h.usecase.GetNodeTypes(ctx.UserContext())
		}
		if err != nil {
			return errors.Wrap(err, "error during GetNodeTypes")
		}
		return ok(ctx, raw)
	}

	types, err := h.usecase.ListNodeTypes(ctx.UserContext())
	if err != nil {
		return errors.Wrap(err, "error during ListNodeTypes")
	}
	return ok(ctx, lo.Map(types, func(t entity.NodeType, _ int) nodeType { return h.mapNodeType(t) }))
}

type addNodeTypeRequest struct {
	Name          string `json:"name"`
	Price         string `json:"price"`
	ClaimInterval int64  `json:"claimInterval"`
	RewardRate    string `json:"rewardRate"`
	ClaimTax      uint8  `json:"claimTax"`
	NextTier      string `json:"nextTier"`
	LevelUpCount  uint32 `json:"levelUpCount"`
}

func (r addNodeTypeRequest) Validate() error {
	var errList []error
	if r.Name == "" {
		errList = append(errList, errors.New("'name' is required"))
	}
	if r.ClaimInterval < 0 {
		errList = append(errList, errors.New("'claimInterval' must be non-negative"))
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

func (h *HttpHandler) AddNodeType(ctx *fiber.Ctx) error {
	var req addNodeTypeRequest
	if err := parseBody(ctx, &req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}
	price, err := h.parseAmount("price", req.Price)
	if err != nil {
		return errors.WithStack(err)
	}
	rate, err := h.parseAmount("rewardRate", req.RewardRate)
	if err != nil {
		return errors.WithStack(err)
	}

	nodeType := entity.NodeType{
		Name:          req.Name,
		Price:         price,
		ClaimInterval: time.Duration(req.ClaimInterval) * time.Second,
		RewardRate:    rate,
		ClaimTax:      req.ClaimTax,
		NextTier:      req.NextTier,
		LevelUpCount:  req.LevelUpCount,
	}
	if err := h.usecase.AddNodeType(ctx.UserContext(), nodeType); err != nil {
		return errors.Wrap(err, "error during AddNodeType")
	}
	h.invalidateNodeTypes(ctx.UserContext())
	return ok(ctx, h.mapNodeType(nodeType))
}

type changeNodeTypeRequest struct {
	Name          string  `params:"name"`
	Price         *string `json:"price"`
	ClaimInterval *int64  `json:"claimInterval"`
	RewardRate    *string `json:"rewardRate"`
	ClaimTax      *uint8  `json:"claimTax"`
	NextTier      *string `json:"nextTier"`
	LevelUpCount  *uint32 `json:"levelUpCount"`
}

func (h *HttpHandler) ChangeNodeType(ctx *fiber.Ctx) error {
	var req changeNodeTypeRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := parseBody(ctx, &req); err != nil {
		return errors.WithStack(err)
	}

	update := entity.NodeTypeUpdate{
		ClaimTax:     req.ClaimTax,
		NextTier:     req.NextTier,
		LevelUpCount: req.LevelUpCount,
	}
	if req.ClaimInterval != nil {
		if *req.ClaimInterval < 0 {
			return errs.NewPublicError("'claimInterval' must be non-negative")
		}
		update.ClaimInterval = lo.ToPtr(time.Duration(*req.ClaimInterval) * time.Second)
	}
	for _, field := range []struct {
		name   string
		input  *string
		output **uint128.Uint128
	}{
		{"price", req.Price, &update.Price},
		{"rewardRate", req.RewardRate, &update.RewardRate},
	} {
		if field.input == nil {
			continue
		}
		value, err := h.parseAmount(field.name, *field.input)
		if err != nil {
			return errors.WithStack(err)
		}
		*field.output = &value
	}

	updated, err := h.usecase.ChangeNodeType(ctx.UserContext(), req.Name, update)
	if err != nil {
		return errors.Wrap(err, "error during ChangeNodeType")
	}
	h.invalidateNodeTypes(ctx.UserContext())
	return ok(ctx, h.mapNodeType(updated))
}

func (h *HttpHandler) invalidateNodeTypes(ctx context.Context) {
	if h.cache == nil {
		return
	}
	if err := h.cache.Invalidate(ctx, cacheKeyNodeTypesRaw); err != nil {
		logger.WarnContext(ctx, "Failed to invalidate node types cache", slogx.Error(err))
	}
}
