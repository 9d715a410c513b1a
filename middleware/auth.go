package middleware

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/notHeisenberg/Parcel-Ease-Server/constants"
	"github.com/notHeisenberg/Parcel-Ease-Server/logger"
	"github.com/notHeisenberg/Parcel-Ease-Server/store/userstore"
	"github.com/notHeisenberg/Parcel-Ease-Server/types"
)

// TokenLifetime is the fixed validity window of issued tokens.
const TokenLifetime = time.Hour

// Claims is the identity payload carried by every issued token.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// RoleSource resolves the role of the user registered under an email.
// Implementations signal a missing record with userstore.ErrNotFound.
type RoleSource interface {
	RoleByEmail(ctx context.Context, email string) (string, error)
}

func secret() []byte {
	return []byte(os.Getenv("ACCESS_TOKEN_SECRET"))
}

// GenerateToken signs a one-hour HS256 token for the given email.
func GenerateToken(email string) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenLifetime)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret())
}

// VerifyToken checks the Authorization bearer token and attaches the decoded
// claims to the request context. Every request re-verifies independently; no
// session state is kept.
func VerifyToken() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Message: "Authorization token missing",
				Status:  fiber.StatusUnauthorized,
			})
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Message: "Invalid authorization header format",
				Status:  fiber.StatusUnauthorized,
			})
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenParts[1], claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return secret(), nil
		})
		if err != nil || !token.Valid {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Message: "Invalid or expired token",
				Status:  fiber.StatusUnauthorized,
			})
		}

		c.Locals("user", claims)
		return c.Next()
	}
}

// RequireAdmin gates a route to admin users.
func RequireAdmin(roles RoleSource) fiber.Handler {
	return requireRole(roles, constants.RoleAdmin)
}

// RequireDeliveryMan gates a route to delivery-man users.
func RequireDeliveryMan(roles RoleSource) fiber.Handler {
	return requireRole(roles, constants.RoleDeliveryMan)
}

// requireRole resolves the caller's user record by the email in their token
// claims and compares its role to the target. Absent record and mismatched
// role both reject with 403; the gate must run after VerifyToken, so missing
// claims reject with 401 rather than panicking.
func requireRole(roles RoleSource, target string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals("user").(*Claims)
		if !ok || claims.Email == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Message: "Authorization token missing",
				Status:  fiber.StatusUnauthorized,
			})
		}

		role, err := roles.RoleByEmail(c.Context(), claims.Email)
		if err != nil {
			if errors.Is(err, userstore.ErrNotFound) {
				return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
					Message: "Forbidden access",
					Status:  fiber.StatusForbidden,
				})
			}
			logger.Error("Failed to resolve user role", err)
			return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
				Message: "Internal server error",
				Status:  fiber.StatusInternalServerError,
			})
		}

		if role != target {
			return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
				Message: "Forbidden access",
				Status:  fiber.StatusForbidden,
			})
		}

		return c.Next()
	}
}

// CurrentClaims returns the claims attached by VerifyToken, or nil when the
// request never passed through it.
func CurrentClaims(c *fiber.Ctx) *Claims {
	claims, _ := c.Locals("user").(*Claims)
	return claims
}
