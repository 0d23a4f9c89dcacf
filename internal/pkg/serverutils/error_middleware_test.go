package serverutils

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(handler fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware(nil))
	app.Get("/test", handler)
	return app
}

func TestErrorMiddlewareMapsAppErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", ErrNotFound("Contact"), 404},
		{"validation", ErrValidation("bad input"), 400},
		{"unauthorized", ErrUnauthorized(""), 401},
		{"too large", ErrContentTooLarge(""), 413},
		{"rate limited", ErrRateLimited(""), 429},
		{"upstream", ErrUpstream(""), 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(func(ctx *fiber.Ctx) error {
				return tt.err
			})

			resp, err := app.Test(httptest.NewRequest("GET", "/test", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestErrorMiddlewareHidesInternalDetail(t *testing.T) {
	app := newTestApp(func(ctx *fiber.Ctx) error {
		return errors.New("pq: connection refused on 10.0.0.5")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/test", nil))
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)

	var body APIError
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Internal server error", body.Message)
	assert.NotContains(t, body.Message, "10.0.0.5")
}

func TestErrorMiddlewarePassesThroughSuccess(t *testing.T) {
	app := newTestApp(func(ctx *fiber.Ctx) error {
		return ctx.JSON(SuccessResponse("ok", fiber.Map{"a": 1}))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/test", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}
