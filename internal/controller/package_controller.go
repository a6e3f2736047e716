package controller

import (
	"henna-assistant-be/internal/dto"
	"henna-assistant-be/internal/pkg/serverutils"
	"henna-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPackageController interface {
	RegisterRoutes(r fiber.Router)
	GetPackages(ctx *fiber.Ctx) error
	ShowMore(ctx *fiber.Ctx) error
}

type packageController struct {
	packageService service.IPackageService
}

func NewPackageController(packageService service.IPackageService) IPackageController {
	return &packageController{packageService: packageService}
}

func (c *packageController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/packages/v1")
	h.Use(serverutils.SessionMiddleware)
	h.Get("", c.GetPackages)
	h.Post("/show-more", c.ShowMore)
}

func (c *packageController) GetPackages(ctx *fiber.Ctx) error {
	var req dto.GetPackagesRequest
	if err := ctx.QueryParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query parameters")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.packageService.GetPackages(ctx.UserContext(), serverutils.SessionID(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Packages", res))
}

func (c *packageController) ShowMore(ctx *fiber.Ctx) error {
	res, err := c.packageService.ShowMore(ctx.UserContext(), serverutils.SessionID(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Packages", res))
}
