package delivery

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/notHeisenberg/Parcel-Ease-Server/constants"
	"github.com/notHeisenberg/Parcel-Ease-Server/logger"
	bookingModel "github.com/notHeisenberg/Parcel-Ease-Server/models/booking"
	userModel "github.com/notHeisenberg/Parcel-Ease-Server/models/user"
	"github.com/notHeisenberg/Parcel-Ease-Server/store/bookingstore"
	"github.com/notHeisenberg/Parcel-Ease-Server/store/userstore"
	"github.com/notHeisenberg/Parcel-Ease-Server/types"
	"github.com/notHeisenberg/Parcel-Ease-Server/utils"
)

// UserStore is the slice of the user store the controller uses.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*userModel.User, error)
	IncrementDelivered(ctx context.Context, id primitive.ObjectID) error
}

// BookingStore is the slice of the booking store the controller uses.
type BookingStore interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*bookingModel.Booking, error)
	ListAssigned(ctx context.Context, deliveryMenId string) ([]bookingModel.Booking, error)
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) error
}

// DeliveryController handles the delivery-man facing endpoints.
type DeliveryController struct {
	Users          UserStore
	Bookings       BookingStore
	loggerInstance *logger.AsyncLogger
}

func NewDeliveryController(users UserStore, bookings BookingStore, asyncLogger *logger.AsyncLogger) *DeliveryController {
	return &DeliveryController{
		Users:          users,
		Bookings:       bookings,
		loggerInstance: asyncLogger,
	}
}

func (dc *DeliveryController) sendResponseWithLog(c *fiber.Ctx, status int, response types.ApiResponse) error {
	result := c.Status(status).JSON(response)
	dc.loggerInstance.Log(utils.CreateSanitizedLogEntry(c))
	return result
}

// Assigned handles GET /deliveries/:email: the bookings assigned to the
// delivery-man registered under that email, cancelled ones excluded.
func (dc *DeliveryController) Assigned(c *fiber.Ctx) error {
	u, err := dc.Users.GetByEmail(c.Context(), c.Params("email"))
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			return dc.sendResponseWithLog(c, fiber.StatusNotFound, types.ApiResponse{
				Message: "User not found",
				Status:  fiber.StatusNotFound,
			})
		}
		logger.Error("Failed to look up delivery man", err)
		return dc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Message: "Internal server error",
			Status:  fiber.StatusInternalServerError,
		})
	}

	bookings, err := dc.Bookings.ListAssigned(c.Context(), u.ID.Hex())
	if err != nil {
		logger.Error("Failed to list assigned bookings", err)
		return dc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Message: "Internal server error",
			Status:  fiber.StatusInternalServerError,
		})
	}

	result := c.Status(fiber.StatusOK).JSON(bookings)
	dc.loggerInstance.Log(utils.CreateSanitizedLogEntry(c))
	return result
}

// UpdateStatus handles PATCH /deliveries/:id/:status: moves a booking to the
// given status. On "delivered" the assignee's delivered-parcels counter is
// incremented by one. Repeating the same delivered PATCH increments again;
// the transition is deliberately left unguarded (see DESIGN.md).
func (dc *DeliveryController) UpdateStatus(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return dc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Message: "Invalid booking id",
			Status:  fiber.StatusBadRequest,
		})
	}

	status := c.Params("status")
	if !constants.ValidStatuses[status] {
		return dc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Message: "Unknown status",
			Status:  fiber.StatusBadRequest,
		})
	}

	b, err := dc.Bookings.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, bookingstore.ErrNotFound) {
			return dc.sendResponseWithLog(c, fiber.StatusNotFound, types.ApiResponse{
				Message: "Booking not found",
				Status:  fiber.StatusNotFound,
			})
		}
		logger.Error("Failed to load booking", err)
		return dc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Message: "Internal server error",
			Status:  fiber.StatusInternalServerError,
		})
	}

	if err := dc.Bookings.Update(c.Context(), id, bson.M{"status": status}); err != nil {
		logger.Error("Failed to update booking status", err)
		return dc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Message: "Internal server error",
			Status:  fiber.StatusInternalServerError,
		})
	}

	if status == constants.StatusDelivered && b.DeliveryMenId != "" {
		assigneeID, err := primitive.ObjectIDFromHex(b.DeliveryMenId)
		if err == nil {
			if err := dc.Users.IncrementDelivered(c.Context(), assigneeID); err != nil {
				logger.Error("Failed to increment delivered counter", err)
				return dc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
					Message: "Internal server error",
					Status:  fiber.StatusInternalServerError,
				})
			}
		}
	}

	return dc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Message: "Status updated successfully",
		Status:  fiber.StatusOK,
	})
}
