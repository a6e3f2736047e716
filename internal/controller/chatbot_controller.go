package controller

import (
	"context"

	"henna-assistant-be/internal/dto"
	"henna-assistant-be/internal/pkg/serverutils"
	"henna-assistant-be/internal/service"
	ws "henna-assistant-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
)

type IChatbotController interface {
	RegisterRoutes(r fiber.Router)
	SendChat(ctx *fiber.Ctx) error
	GetChatHistory(ctx *fiber.Ctx) error
	ResetSession(ctx *fiber.Ctx) error
}

type chatbotController struct {
	chatbotService service.IChatbotService
	hub            *ws.Hub
}

func NewChatbotController(chatbotService service.IChatbotService, hub *ws.Hub) IChatbotController {
	return &chatbotController{
		chatbotService: chatbotService,
		hub:            hub,
	}
}

func (c *chatbotController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Use(serverutils.SessionMiddleware)
	h.Post("", c.SendChat)
	h.Get("/history", c.GetChatHistory)
	h.Post("/reset", c.ResetSession)

	if c.hub != nil {
		h.Use("/ws", ws.RequireUpgrade)
		h.Get("/ws", ws.Handler(c.hub, serverutils.SessionLocal, c.answerFrame))
	}
}

func (c *chatbotController) SendChat(ctx *fiber.Ctx) error {
	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatbotService.SendChat(ctx.UserContext(), serverutils.SessionID(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Chat answered", res))
}

func (c *chatbotController) GetChatHistory(ctx *fiber.Ctx) error {
	res, err := c.chatbotService.GetChatHistory(ctx.UserContext(), serverutils.SessionID(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Chat history", res))
}

func (c *chatbotController) ResetSession(ctx *fiber.Ctx) error {
	res, err := c.chatbotService.ResetSession(ctx.UserContext(), serverutils.SessionID(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Conversation restarted", res))
}

func (c *chatbotController) answerFrame(ctx context.Context, sessionID, text string) (interface{}, error) {
	req := dto.SendChatRequest{Chat: text}
	if err := serverutils.ValidateRequest(req); err != nil {
		return nil, err
	}
	return c.chatbotService.SendChat(ctx, sessionID, &req)
}
