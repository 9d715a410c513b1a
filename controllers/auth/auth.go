package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/notHeisenberg/Parcel-Ease-Server/logger"
	"github.com/notHeisenberg/Parcel-Ease-Server/middleware"
	"github.com/notHeisenberg/Parcel-Ease-Server/types"
	"github.com/notHeisenberg/Parcel-Ease-Server/utils"
)

// AuthController issues access tokens.
type AuthController struct {
	loggerInstance *logger.AsyncLogger
}

func NewAuthController(asyncLogger *logger.AsyncLogger) *AuthController {
	return &AuthController{loggerInstance: asyncLogger}
}

func (ac *AuthController) sendResponseWithLog(c *fiber.Ctx, status int, response types.ApiResponse) error {
	result := c.Status(status).JSON(response)
	ac.loggerInstance.Log(utils.CreateSanitizedLogEntry(c))
	return result
}

// CreateToken handles POST /jwt: signs a one-hour token for the identity in
// the request body. No credential check happens here; the token only names
// an email, and every role decision is re-resolved from the users collection
// per request.
func (ac *AuthController) CreateToken(c *fiber.Ctx) error {
	var identity struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&identity); err != nil {
		logger.Error("Failed to parse identity body", err)
		return ac.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Message: "Invalid request body",
			Status:  fiber.StatusBadRequest,
		})
	}

	if identity.Email == "" {
		return ac.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Message: "email is required",
			Status:  fiber.StatusBadRequest,
		})
	}

	token, err := middleware.GenerateToken(identity.Email)
	if err != nil {
		logger.Error("Failed to sign token", err)
		return ac.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Message: "Failed to generate token",
			Status:  fiber.StatusInternalServerError,
		})
	}

	result := c.Status(fiber.StatusOK).JSON(fiber.Map{"token": token})
	ac.loggerInstance.Log(utils.CreateSanitizedLogEntry(c))
	return result
}
