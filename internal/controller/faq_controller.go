package controller

import (
	"henna-assistant-be/internal/dto"
	"henna-assistant-be/internal/pkg/serverutils"
	"henna-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IFAQController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Match(ctx *fiber.Ctx) error
}

type faqController struct {
	faqService service.IFAQService
}

func NewFAQController(faqService service.IFAQService) IFAQController {
	return &faqController{faqService: faqService}
}

func (c *faqController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/faq/v1")
	h.Get("", c.GetAll)
	h.Get("/match", c.Match)
}

func (c *faqController) GetAll(ctx *fiber.Ctx) error {
	res, err := c.faqService.GetAll(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("FAQs", res))
}

func (c *faqController) Match(ctx *fiber.Ctx) error {
	var req dto.MatchFAQRequest
	if err := ctx.QueryParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query parameters")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.faqService.Match(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("FAQ match", res))
}
