package auth

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupApp(key string) *fiber.App {
	app := fiber.New()
	app.Use(New(Config{ApiKey: key}))
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestAuth(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		sent       string
		status     int
	}{
		{"Disabled", "", "", 200},
		{"Valid Key", "secret", "secret", 200},
		{"Wrong Key", "secret", "nope", 401},
		{"Missing Key", "secret", "", 401},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			if tt.sent != "" {
				req.Header.Set(HeaderName, tt.sent)
			}

			resp, err := setupApp(tt.configured).Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestAuth_RejectsWithJSONBody(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(HeaderName, "Bearer secret")

	resp, err := setupApp("secret").Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "invalid or missing API key", body["error"])
}

func TestAuth_StoresKeyInLocals(t *testing.T) {
	app := fiber.New()
	app.Use(New(Config{ApiKey: "secret"}))
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("token").(string))
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(HeaderName, "secret")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}
