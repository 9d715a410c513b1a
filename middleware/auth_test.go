package middleware_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notHeisenberg/Parcel-Ease-Server/constants"
	"github.com/notHeisenberg/Parcel-Ease-Server/middleware"
	"github.com/notHeisenberg/Parcel-Ease-Server/store/userstore"
)

const testSecret = "test-access-token-secret"

func newAuthedApp(t *testing.T, handlers ...fiber.Handler) *fiber.App {
	t.Helper()
	t.Setenv("ACCESS_TOKEN_SECRET", testSecret)

	app := fiber.New()
	chain := append([]fiber.Handler{middleware.VerifyToken()}, handlers...)
	chain = append(chain, func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/protected", chain...)
	return app
}

func request(t *testing.T, app *fiber.App, authHeader string) int {
	t.Helper()
	req := httptest.NewRequest("GET", "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	return resp.StatusCode
}

func TestVerifyToken_AcceptsFreshToken(t *testing.T) {
	app := newAuthedApp(t)

	token, err := middleware.GenerateToken("someone@example.com")
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, request(t, app, "Bearer "+token))
}

func TestVerifyToken_MissingHeader(t *testing.T) {
	app := newAuthedApp(t)
	assert.Equal(t, fiber.StatusUnauthorized, request(t, app, ""))
}

func TestVerifyToken_MalformedHeader(t *testing.T) {
	app := newAuthedApp(t)
	assert.Equal(t, fiber.StatusUnauthorized, request(t, app, "Token abc"))
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	app := newAuthedApp(t)

	claims := middleware.Claims{
		Email: "someone@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusUnauthorized, request(t, app, "Bearer "+forged))
}

func TestVerifyToken_Expired(t *testing.T) {
	app := newAuthedApp(t)

	claims := middleware.Claims{
		Email: "someone@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusUnauthorized, request(t, app, "Bearer "+expired))
}

// fakeRoleSource serves roles from a map; absent emails behave like a
// missing user record.
type fakeRoleSource struct {
	roles map[string]string
}

func (f *fakeRoleSource) RoleByEmail(ctx context.Context, email string) (string, error) {
	role, ok := f.roles[email]
	if !ok {
		return "", userstore.ErrNotFound
	}
	return role, nil
}

func TestRequireAdmin_AllowsAdmin(t *testing.T) {
	roles := &fakeRoleSource{roles: map[string]string{"boss@example.com": constants.RoleAdmin}}
	app := newAuthedApp(t, middleware.RequireAdmin(roles))

	token, err := middleware.GenerateToken("boss@example.com")
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, request(t, app, "Bearer "+token))
}

func TestRequireAdmin_RejectsRoleMismatch(t *testing.T) {
	roles := &fakeRoleSource{roles: map[string]string{"rider@example.com": constants.RoleDeliveryMan}}
	app := newAuthedApp(t, middleware.RequireAdmin(roles))

	token, err := middleware.GenerateToken("rider@example.com")
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusForbidden, request(t, app, "Bearer "+token))
}

func TestRequireAdmin_RejectsUnknownUser(t *testing.T) {
	roles := &fakeRoleSource{roles: map[string]string{}}
	app := newAuthedApp(t, middleware.RequireAdmin(roles))

	token, err := middleware.GenerateToken("ghost@example.com")
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusForbidden, request(t, app, "Bearer "+token))
}

func TestRequireDeliveryMan_AllowsDeliveryMan(t *testing.T) {
	roles := &fakeRoleSource{roles: map[string]string{"rider@example.com": constants.RoleDeliveryMan}}
	app := newAuthedApp(t, middleware.RequireDeliveryMan(roles))

	token, err := middleware.GenerateToken("rider@example.com")
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, request(t, app, "Bearer "+token))
}

func TestRequireRole_WithoutVerifyToken(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", testSecret)
	roles := &fakeRoleSource{roles: map[string]string{}}

	app := fiber.New()
	app.Get("/gated", middleware.RequireAdmin(roles), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	req := httptest.NewRequest("GET", "/gated", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	// Gate placed without VerifyToken in front: reject, don't panic.
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
