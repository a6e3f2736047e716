package serverutils

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	SessionHeader = "X-Session-Id"
	SessionCookie = "session_id"
	SessionLocal  = "session_id"
)

// SessionMiddleware resolves the caller's session id from the header or the
// cookie, creating one when neither is present, and echoes it back in both.
func SessionMiddleware(ctx *fiber.Ctx) error {
	id := ctx.Get(SessionHeader)
	if !validSessionID(id) {
		id = ctx.Cookies(SessionCookie)
	}
	if !validSessionID(id) {
		id = uuid.NewString()
	}

	ctx.Locals(SessionLocal, id)
	ctx.Set(SessionHeader, id)
	ctx.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(24 * time.Hour),
	})
	return ctx.Next()
}

// SessionID returns the id stored by SessionMiddleware.
func SessionID(ctx *fiber.Ctx) string {
	id, _ := ctx.Locals(SessionLocal).(string)
	return id
}

func validSessionID(id string) bool {
	if id == "" || len(id) > 64 {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}
