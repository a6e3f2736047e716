package serverutils

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Chat     string `json:"chat" validate:"required"`
	MaxPrice int    `json:"max_price" validate:"gte=0"`
}

func TestValidateRequest(t *testing.T) {
	assert.NoError(t, ValidateRequest(sampleRequest{Chat: "hi"}))

	err := ValidateRequest(sampleRequest{MaxPrice: -1})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Items, 2)
	assert.Equal(t, "chat", verr.Items[0].Field)
	assert.Equal(t, "is required", verr.Items[0].Message)
	assert.Equal(t, "max_price", verr.Items[1].Field)
}

func newApp() *fiber.App {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Use(SessionMiddleware)
	app.Get("/id", func(c *fiber.Ctx) error { return c.SendString(SessionID(c)) })
	app.Get("/fiber", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusNotFound, "nope") })
	app.Get("/validation", func(c *fiber.Ctx) error { return ValidateRequest(sampleRequest{}) })
	return app
}

func TestSessionMiddleware(t *testing.T) {
	app := newApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/id", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	created := string(body)
	_, parseErr := uuid.Parse(created)
	assert.NoError(t, parseErr)
	assert.Equal(t, created, resp.Header.Get(SessionHeader))

	known := uuid.NewString()
	req := httptest.NewRequest("GET", "/id", nil)
	req.Header.Set(SessionHeader, known)
	resp, err = app.Test(req)
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	assert.Equal(t, known, string(body))

	req = httptest.NewRequest("GET", "/id", nil)
	req.Header.Set("Cookie", SessionCookie+"="+known)
	resp, err = app.Test(req)
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	assert.Equal(t, known, string(body))

	req = httptest.NewRequest("GET", "/id", nil)
	req.Header.Set(SessionHeader, "../../etc/passwd")
	resp, err = app.Test(req)
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	assert.NotEqual(t, "../../etc/passwd", string(body))
}

func TestErrorHandlerMiddleware(t *testing.T) {
	app := newApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/fiber", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
	var out BaseResponse[any]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.False(t, out.Success)
	assert.Equal(t, "nope", out.Message)

	resp, err = app.Test(httptest.NewRequest("GET", "/validation", nil))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
	var vout BaseResponse[[]ValidationErrorItem]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&vout))
	require.Len(t, vout.Data, 1)
	assert.Equal(t, "chat", vout.Data[0].Field)
}
