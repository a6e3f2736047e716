package websocket

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// RequireUpgrade rejects plain HTTP requests on a websocket route.
func RequireUpgrade(ctx *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(ctx) {
		return ctx.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Handler upgrades the connection and binds it to the session id stored in
// the request locals under sessionLocal.
func Handler(hub *Hub, sessionLocal string, handler MessageHandler) fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		sessionID, _ := conn.Locals(sessionLocal).(string)
		ServeWs(hub, conn, sessionID, handler)
	})
}

// ServeWs registers the connection and blocks until the peer goes away.
func ServeWs(hub *Hub, c *websocket.Conn, sessionID string, handler MessageHandler) {
	client := &Client{
		Hub:       hub,
		Conn:      c,
		SessionID: sessionID,
		Send:      make(chan []byte, 256),
		handler:   handler,
	}
	hub.register <- client

	go client.writePump()
	client.readPump()
}
