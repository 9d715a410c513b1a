package user

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/notHeisenberg/Parcel-Ease-Server/constants"
	"github.com/notHeisenberg/Parcel-Ease-Server/logger"
	"github.com/notHeisenberg/Parcel-Ease-Server/middleware"
	userModel "github.com/notHeisenberg/Parcel-Ease-Server/models/user"
	"github.com/notHeisenberg/Parcel-Ease-Server/store/bookingstore"
	"github.com/notHeisenberg/Parcel-Ease-Server/store/reviewstore"
	"github.com/notHeisenberg/Parcel-Ease-Server/store/userstore"
	"github.com/notHeisenberg/Parcel-Ease-Server/types"
	userTypes "github.com/notHeisenberg/Parcel-Ease-Server/types/user"
	"github.com/notHeisenberg/Parcel-Ease-Server/utils"
)

// UserController handles user-related HTTP requests.
type UserController struct {
	Users          *userstore.Store
	Bookings       *bookingstore.Store
	Reviews        *reviewstore.Store
	loggerInstance *logger.AsyncLogger
}

func NewUserController(users *userstore.Store, bookings *bookingstore.Store, reviews *reviewstore.Store, asyncLogger *logger.AsyncLogger) *UserController {
	return &UserController{
		Users:          users,
		Bookings:       bookings,
		Reviews:        reviews,
		loggerInstance: asyncLogger,
	}
}

func (uc *UserController) sendResponseWithLog(c *fiber.Ctx, status int, response types.ApiResponse) error {
	result := c.Status(status).JSON(response)
	uc.loggerInstance.Log(utils.CreateSanitizedLogEntry(c))
	return result
}

// annotatedUser is a user joined with the per-customer booking rollup.
type annotatedUser struct {
	userModel.User
	Bookings   int64   `json:"bookings"`
	TotalSpent float64 `json:"totalSpent"`
}

// List handles GET /users?role=<r>: returns users, annotated with each
// user's booking count and spend.
func (uc *UserController) List(c *fiber.Ctx) error {
	role := c.Query("role")

	users, err := uc.Users.List(c.Context(), role)
	if err != nil {
		logger.Error("Failed to list users", err)
		return uc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Message: "Internal server error",
			Status:  fiber.StatusInternalServerError,
		})
	}

	rollups, err := uc.Bookings.RollupByEmail(c.Context())
	if err != nil {
		logger.Error("Failed to roll up bookings by email", err)
		return uc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Message: "Internal server error",
			Status:  fiber.StatusInternalServerError,
		})
	}

	annotated := make([]annotatedUser, 0, len(users))
	for _, u := range users {
		r := rollups[u.Email]
		annotated = append(annotated, annotatedUser{
			User:       u,
			Bookings:   r.Bookings,
			TotalSpent: r.TotalSpent,
		})
	}

	result := c.Status(fiber.StatusOK).JSON(annotated)
	uc.loggerInstance.Log(utils.CreateSanitizedLogEntry(c))
	return result
}

// Upsert handles POST /users: registration idempotent by email. An existing
// email answers with a nil insertedId instead of a second record.
func (uc *UserController) Upsert(c *fiber.Ctx) error {
	var req userTypes.UpsertRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return uc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Message: "Invalid request body",
			Status:  fiber.StatusBadRequest,
		})
	}

	if err := req.Validate(); err != nil {
		return uc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Message: err.Error(),
			Status:  fiber.StatusBadRequest,
		})
	}

	_, err := uc.Users.GetByEmail(c.Context(), req.Email)
	if err == nil {
		result := c.Status(fiber.StatusOK).JSON(fiber.Map{
			"message":    "user already exists",
			"insertedId": nil,
		})
		uc.loggerInstance.Log(utils.CreateSanitizedLogEntry(c))
		return result
	}
	if !errors.Is(err, userstore.ErrNotFound) {
		logger.Error("Failed to look up user by email", err)
		return uc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Message: "Internal server error",
			Status:  fiber.StatusInternalServerError,
		})
	}

	id, err := uc.Users.Insert(c.Context(), userModel.User{
		Name:        req.Name,
		Email:       req.Email,
		Role:        req.Role,
		PhoneNumber: req.PhoneNumber,
		Image:       req.Image,
	})
	if err != nil {
		logger.Error("Failed to insert user", err)
		return uc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Message: "Internal server error",
			Status:  fiber.StatusInternalServerError,
		})
	}

	result := c.Status(fiber.StatusOK).JSON(fiber.Map{
		"acknowledged": true,
		"insertedId":   id.Hex(),
	})
	uc.loggerInstance.Log(utils.CreateSanitizedLogEntry(c))
	return result
}

// IsAdmin handles GET /users/admin/:email: self-only role probe.
func (uc *UserController) IsAdmin(c *fiber.Ctx) error {
	return uc.roleProbe(c, constants.RoleAdmin, "admin")
}

// IsDeliveryMan handles GET /users/deliveryman/:email: self-only role probe.
func (uc *UserController) IsDeliveryMan(c *fiber.Ctx) error {
	return uc.roleProbe(c, constants.RoleDeliveryMan, "deliveryman")
}

// roleProbe answers {<key>:bool} for the caller's own email. A caller asking
// about anyone else's email is rejected.
func (uc *UserController) roleProbe(c *fiber.Ctx, role, key string) error {
	email := c.Params("email")

	claims := middleware.CurrentClaims(c)
	if claims == nil || claims.Email != email {
		return uc.sendResponseWithLog(c, fiber.StatusForbidden, types.ApiResponse{
			Message: "Forbidden access",
			Status:  fiber.StatusForbidden,
		})
	}

	resolved, err := uc.Users.RoleByEmail(c.Context(), email)
	if err != nil && !errors.Is(err, userstore.ErrNotFound) {
		logger.Error("Failed to resolve user role", err)
		return uc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Message: "Internal server error",
			Status:  fiber.StatusInternalServerError,
		})
	}

	result := c.Status(fiber.StatusOK).JSON(fiber.Map{key: resolved == role})
	uc.loggerInstance.Log(utils.CreateSanitizedLogEntry(c))
	return result
}

// UpdateRole handles PATCH /users/:id/role.
func (uc *UserController) UpdateRole(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return uc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Message: "Invalid user id",
			Status:  fiber.StatusBadRequest,
		})
	}

	var req userTypes.RoleRequest
	if err := c.BodyParser(&req); err != nil || req.Role == "" {
		return uc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Message: "role is required",
			Status:  fiber.StatusBadRequest,
		})
	}
	if !constants.ValidRoles[req.Role] {
		return uc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Message: "unknown role",
			Status:  fiber.StatusBadRequest,
		})
	}

	if err := uc.Users.UpdateRole(c.Context(), id, req.Role); err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			return uc.sendResponseWithLog(c, fiber.StatusNotFound, types.ApiResponse{
				Message: "User not found",
				Status:  fiber.StatusNotFound,
			})
		}
		logger.Error("Failed to update user role", err)
		return uc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Message: "Internal server error",
			Status:  fiber.StatusInternalServerError,
		})
	}

	return uc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Message: "Role updated successfully",
		Status:  fiber.StatusOK,
	})
}

// deliveryManRow is a delivery-man joined with their review aggregates.
type deliveryManRow struct {
	userModel.User
	AverageRating float64 `json:"averageRating"`
	ReviewCount   int64   `json:"reviewCount"`
}

// DeliveryMen handles GET /users/deliverymen: delivery-men joined with their
// average rating and review count.
func (uc *UserController) DeliveryMen(c *fiber.Ctx) error {
	men, err := uc.Users.DeliveryMen(c.Context())
	if err != nil {
		logger.Error("Failed to list delivery men", err)
		return uc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Message: "Internal server error",
			Status:  fiber.StatusInternalServerError,
		})
	}

	aggregates, err := uc.Reviews.AggregateByDeliveryMan(c.Context())
	if err != nil {
		logger.Error("Failed to aggregate reviews", err)
		return uc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Message: "Internal server error",
			Status:  fiber.StatusInternalServerError,
		})
	}

	byId := make(map[string]int, len(aggregates))
	for i, a := range aggregates {
		byId[a.DeliveryMenId] = i
	}

	rows := make([]deliveryManRow, 0, len(men))
	for _, m := range men {
		row := deliveryManRow{User: m}
		if i, ok := byId[m.ID.Hex()]; ok {
			row.AverageRating = aggregates[i].AverageRating
			row.ReviewCount = aggregates[i].ReviewCount
		}
		rows = append(rows, row)
	}

	result := c.Status(fiber.StatusOK).JSON(rows)
	uc.loggerInstance.Log(utils.CreateSanitizedLogEntry(c))
	return result
}
