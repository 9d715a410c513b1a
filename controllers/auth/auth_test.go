package auth_test

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notHeisenberg/Parcel-Ease-Server/controllers/auth"
	"github.com/notHeisenberg/Parcel-Ease-Server/logger"
	"github.com/notHeisenberg/Parcel-Ease-Server/middleware"
)

func newApp(t *testing.T) *fiber.App {
	t.Helper()
	t.Setenv("ACCESS_TOKEN_SECRET", "test-access-token-secret")

	// The async logger only buffers entries here; its drain loop is never
	// started, so no store is needed.
	controller := auth.NewAuthController(logger.NewAsyncLogger(nil))

	app := fiber.New()
	app.Post("/jwt", controller.CreateToken)
	return app
}

func TestCreateToken_IssuesOneHourToken(t *testing.T) {
	app := newApp(t)

	req := httptest.NewRequest("POST", "/jwt", strings.NewReader(`{"email":"someone@example.com"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.NotEmpty(t, body.Token)

	claims := &middleware.Claims{}
	parsed, err := jwt.ParseWithClaims(body.Token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-access-token-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	assert.Equal(t, "someone@example.com", claims.Email)
	lifetime := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	assert.Equal(t, time.Hour, lifetime)
}

func TestCreateToken_MissingEmail(t *testing.T) {
	app := newApp(t)

	req := httptest.NewRequest("POST", "/jwt", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCreateToken_InvalidBody(t *testing.T) {
	app := newApp(t)

	req := httptest.NewRequest("POST", "/jwt", strings.NewReader("not-json"))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
