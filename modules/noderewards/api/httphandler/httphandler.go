package httphandler

import (
	"crypto/subtle"
	"math"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/node-rewards/common/errs"
	"github.com/gaze-network/node-rewards/modules/noderewards/internal/entity"
	"github.com/gaze-network/node-rewards/modules/noderewards/usecase"
	"github.com/gaze-network/node-rewards/pkg/decimals"
	"github.com/gaze-network/node-rewards/pkg/querycache"
	"github.com/gaze-network/uint128"
	"github.com/gofiber/fiber/v2"
)

const cacheKeyNodeTypesRaw = "node-types:raw"

// HeaderCaller carries the owner address a service-token request acts for.
const HeaderCaller = "X-Caller-Address"

type Config struct {
	AdminToken   string // admin endpoints reject every request when empty
	ServiceToken string // token of the trusted gateway that forwards owner requests
	Decimals     uint8  // token decimals of display amounts
}

type HttpHandler struct {
	usecase *usecase.Manager
	cache   *querycache.Cache // optional
	config  Config
}

// New creates the handler. cache may be nil.
func New(usecase *usecase.Manager, cache *querycache.Cache, config Config) *HttpHandler {
	return &HttpHandler{
		usecase: usecase,
		cache:   cache,
		config:  config,
	}
}

type HttpResponse[T any] struct {
	Error  *string `json:"error"`
	Result *T      `json:"result,omitempty"`
}

func ok[T any](ctx *fiber.Ctx, result T) error {
	return errors.WithStack(ctx.JSON(HttpResponse[T]{Result: &result}))
}

func hasBearer(ctx *fiber.Ctx, want string) bool {
	token, found := strings.CutPrefix(ctx.Get(fiber.HeaderAuthorization), "Bearer ")
	return want != "" && found && subtle.ConstantTimeCompare([]byte(token), []byte(want)) == 1
}

func (h *HttpHandler) isAdmin(ctx *fiber.Ctx) bool {
	return hasBearer(ctx, h.config.AdminToken)
}

// requireAdmin checks the bearer token of admin endpoints.
func (h *HttpHandler) requireAdmin(ctx *fiber.Ctx) error {
	if !h.isAdmin(ctx) {
		return fiber.ErrUnauthorized
	}
	return ctx.Next()
}

// requireCaller authenticates owner-mutating endpoints. The admin token may act for any owner,
// the service token only for the owner named in the X-Caller-Address header.
func (h *HttpHandler) requireCaller(ctx *fiber.Ctx) error {
	if h.isAdmin(ctx) {
		return ctx.Next()
	}
	if !hasBearer(ctx, h.config.ServiceToken) {
		return fiber.ErrUnauthorized
	}
	caller, err := parseAddress(ctx.Get(HeaderCaller))
	if err != nil {
		return fiber.ErrUnauthorized
	}
	owner, err := h.parseAddressParam(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	if caller != owner {
		return errors.Wrapf(errs.NotOwner, "caller %s cannot act for %s", caller, owner)
	}
	return ctx.Next()
}

func invalidRequest(err error, message string) error {
	return errs.WithPublicMessage(errors.Wrap(errs.InvalidArgument, err.Error()), message)
}

func parseBody(ctx *fiber.Ctx, out any) error {
	if err := ctx.BodyParser(out); err != nil {
		return invalidRequest(err, "invalid request body")
	}
	return nil
}

func parseQuery(ctx *fiber.Ctx, out any) error {
	if err := ctx.QueryParser(out); err != nil {
		return invalidRequest(err, "invalid query")
	}
	return nil
}

func parseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, errs.WithPublicMessage(errors.Wrapf(errs.InvalidArgument, "%q", s), "invalid address")
	}
	address := common.HexToAddress(s)
	if address == (common.Address{}) {
		return common.Address{}, errs.NewPublicError("zero address is not allowed")
	}
	return address, nil
}

func (h *HttpHandler) parseAmount(field, s string) (uint128.Uint128, error) {
	amount, err := decimals.Parse(s, h.config.Decimals)
	if err != nil {
		return uint128.Zero, errs.WithPublicMessage(err, "invalid '"+field+"'")
	}
	return amount, nil
}

type amount struct {
	Value   uint128.Uint128 `json:"value"`
	Display string          `json:"display"`
}

func (h *HttpHandler) amount(v uint128.Uint128) amount {
	return amount{Value: v, Display: decimals.String(v, h.config.Decimals)}
}

type nodeType struct {
	Name          string `json:"name"`
	Price         amount `json:"price"`
	ClaimInterval int64  `json:"claimInterval"` // seconds
	RewardRate    amount `json:"rewardRate"`    // per second
	ClaimTax      uint8  `json:"claimTax"`
	NextTier      string `json:"nextTier,omitempty"`
	LevelUpCount  uint32 `json:"levelUpCount,omitempty"`
}

func (h *HttpHandler) mapNodeType(t entity.NodeType) nodeType {
	return nodeType{
		Name:          t.Name,
		Price:         h.amount(t.Price),
		ClaimInterval: int64(t.ClaimInterval / time.Second),
		RewardRate:    h.amount(t.RewardRate),
		ClaimTax:      t.ClaimTax,
		NextTier:      t.NextTier,
		LevelUpCount:  t.LevelUpCount,
	}
}

type node struct {
	ID          uint64 `json:"id"`
	Type        string `json:"type"`
	CreatedAt   int64  `json:"createdAt"`
	LastClaimAt int64  `json:"lastClaimAt"`
}

func mapNode(n entity.Node) node {
	return node{
		ID:          n.ID,
		Type:        n.Type,
		CreatedAt:   n.CreatedAt.Unix(),
		LastClaimAt: n.LastClaimAt.Unix(),
	}
}

type reward struct {
	Gross amount `json:"gross"`
	Tax   amount `json:"tax"`
	Net   amount `json:"net"`
}

func (h *HttpHandler) mapReward(r usecase.Reward) reward {
	return reward{
		Gross: h.amount(r.Gross),
		Tax:   h.amount(r.Tax),
		Net:   h.amount(r.Net),
	}
}

type pageRequest struct {
	Offset int    `query:"offset"`
	Limit  int    `query:"limit"`
	Format string `query:"format"`
}

const formatRaw = "raw"

func (r pageRequest) Validate() error {
	var errList []error
	if r.Offset < 0 || r.Offset > math.MaxInt32 {
		errList = append(errList, errors.Errorf("'offset' must be between 0 and %d", math.MaxInt32))
	}
	if r.Limit < 0 || r.Limit > math.MaxInt32 {
		errList = append(errList, errors.Errorf("'limit' must be between 0 and %d", math.MaxInt32))
	}
	if r.Format != "" && r.Format != formatRaw {
		errList = append(errList, errors.Errorf("unsupported 'format' %q", r.Format))
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}
