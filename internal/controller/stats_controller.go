package controller

import (
	"henna-assistant-be/internal/pkg/serverutils"
	"henna-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IStatsController interface {
	RegisterRoutes(r fiber.Router)
	GetStats(ctx *fiber.Ctx) error
}

type statsController struct {
	statsService service.IStatsService
}

func NewStatsController(statsService service.IStatsService) IStatsController {
	return &statsController{statsService: statsService}
}

func (c *statsController) RegisterRoutes(r fiber.Router) {
	r.Get("/stats/v1", c.GetStats)
}

func (c *statsController) GetStats(ctx *fiber.Ctx) error {
	res, err := c.statsService.GetStats(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Stats", res))
}
