package httphandler

import (
	"github.com/gofiber/fiber/v2"
)

func (h *HttpHandler) Mount(router fiber.Router) error {
	r := router.Group("/noderewards/v1")

	r.Get("/node-types", h.GetNodeTypes)
	r.Post("/node-types", h.requireAdmin, h.AddNodeType)
	r.Patch("/node-types/:name", h.requireAdmin, h.ChangeNodeType)

	r.Get("/owners", h.GetOwners)
	r.Get("/owners/:address/nodes", h.GetNodes)
	r.Post("/owners/:address/nodes", h.requireCaller, h.CreateNodes)
	r.Get("/owners/:address/nodes/:nodeId/left-time", h.GetLeftTime)
	r.Get("/owners/:address/nodes/:nodeId/reward", h.GetReward)
	r.Post("/owners/:address/nodes/:nodeId/claim", h.requireCaller, h.ClaimReward)
	r.Post("/owners/:address/nodes/:nodeId/cashout", h.requireCaller, h.CashoutReward)
	r.Post("/owners/:address/claim", h.requireCaller, h.ClaimAll)
	r.Post("/owners/:address/cashout", h.requireCaller, h.CashoutAll)
	r.Get("/owners/:address/deposit", h.GetDeposit)
	r.Post("/owners/:address/deposit", h.requireCaller, h.Deposit)
	r.Post("/owners/:address/level-up", h.requireCaller, h.LevelUp)
	r.Post("/owners/:address/migrate", h.requireCaller, h.Migrate)

	r.Get("/distributor", h.GetDistributor)
	r.Post("/distributor/release/:address", h.requireAdmin, h.Release)
	return nil
}
