package user_test

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notHeisenberg/Parcel-Ease-Server/controllers/user"
	"github.com/notHeisenberg/Parcel-Ease-Server/logger"
	"github.com/notHeisenberg/Parcel-Ease-Server/middleware"
)

// The self-only check on the role probes runs before any store access, so a
// controller without stores is enough to exercise it.
func TestRoleProbe_RejectsOtherUsersEmail(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "test-access-token-secret")

	controller := user.NewUserController(nil, nil, nil, logger.NewAsyncLogger(nil))

	app := fiber.New()
	app.Get("/users/admin/:email", middleware.VerifyToken(), controller.IsAdmin)

	token, err := middleware.GenerateToken("alice@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/users/admin/bob@example.com", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRoleProbe_RejectsUnauthenticated(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "test-access-token-secret")

	controller := user.NewUserController(nil, nil, nil, logger.NewAsyncLogger(nil))

	app := fiber.New()
	app.Get("/users/admin/:email", middleware.VerifyToken(), controller.IsAdmin)

	req := httptest.NewRequest("GET", "/users/admin/alice@example.com", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
