package booking

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/notHeisenberg/Parcel-Ease-Server/constants"
	"github.com/notHeisenberg/Parcel-Ease-Server/logger"
	bookingModel "github.com/notHeisenberg/Parcel-Ease-Server/models/booking"
	"github.com/notHeisenberg/Parcel-Ease-Server/store/bookingstore"
	"github.com/notHeisenberg/Parcel-Ease-Server/types"
	bookingTypes "github.com/notHeisenberg/Parcel-Ease-Server/types/booking"
	"github.com/notHeisenberg/Parcel-Ease-Server/utils"
)

// BookingStore is the slice of the booking store the controller uses.
type BookingStore interface {
	Insert(ctx context.Context, b bookingModel.Booking) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*bookingModel.Booking, error)
	List(ctx context.Context) ([]bookingModel.Booking, error)
	ListByEmail(ctx context.Context, email string) ([]bookingModel.Booking, error)
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) error
}

// BookingController handles booking CRUD and status transitions.
type BookingController struct {
	Bookings       BookingStore
	loggerInstance *logger.AsyncLogger
}

func NewBookingController(bookings BookingStore, asyncLogger *logger.AsyncLogger) *BookingController {
	return &BookingController{
		Bookings:       bookings,
		loggerInstance: asyncLogger,
	}
}

func (bc *BookingController) sendResponseWithLog(c *fiber.Ctx, status int, response types.ApiResponse) error {
	result := c.Status(status).JSON(response)
	bc.loggerInstance.Log(utils.CreateSanitizedLogEntry(c))
	return result
}

func (bc *BookingController) sendJSONWithLog(c *fiber.Ctx, status int, body interface{}) error {
	result := c.Status(status).JSON(body)
	bc.loggerInstance.Log(utils.CreateSanitizedLogEntry(c))
	return result
}

// List handles GET /bookings: every booking, for the admin parcels table.
func (bc *BookingController) List(c *fiber.Ctx) error {
	bookings, err := bc.Bookings.List(c.Context())
	if err != nil {
		logger.Error("Failed to list bookings", err)
		return bc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Message: "Internal server error",
			Status:  fiber.StatusInternalServerError,
		})
	}
	return bc.sendJSONWithLog(c, fiber.StatusOK, bookings)
}

// ListByEmail handles GET /bookings/:email: the caller's own bookings.
func (bc *BookingController) ListByEmail(c *fiber.Ctx) error {
	bookings, err := bc.Bookings.ListByEmail(c.Context(), c.Params("email"))
	if err != nil {
		logger.Error("Failed to list bookings by email", err)
		return bc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Message: "Internal server error",
			Status:  fiber.StatusInternalServerError,
		})
	}
	return bc.sendJSONWithLog(c, fiber.StatusOK, bookings)
}

// Create handles POST /bookings. Status starts at pending and the booking
// date is stamped server-side with the current day. Field values such as the
// phone number are stored as sent; validation stops at presence.
func (bc *BookingController) Create(c *fiber.Ctx) error {
	var req bookingTypes.CreateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return bc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Message: "Invalid request body",
			Status:  fiber.StatusBadRequest,
		})
	}

	if err := req.Validate(); err != nil {
		return bc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Message: err.Error(),
			Status:  fiber.StatusBadRequest,
		})
	}

	b := bookingModel.Booking{
		Name:                  req.Name,
		Email:                 req.Email,
		PhoneNumber:           req.PhoneNumber,
		ParcelType:            req.ParcelType,
		ParcelWeight:          req.ParcelWeight,
		Price:                 req.Price,
		ReceiverName:          req.ReceiverName,
		ReceiverPhoneNumber:   req.ReceiverPhoneNumber,
		DeliveryAddress:       req.DeliveryAddress,
		Latitude:              req.Latitude,
		Longitude:             req.Longitude,
		RequestedDeliveryDate: req.RequestedDeliveryDate,
		BookingDate:           time.Now().Format("2006-01-02"),
		Status:                constants.StatusPending,
	}

	id, err := bc.Bookings.Insert(c.Context(), b)
	if err != nil {
		logger.Error("Failed to insert booking", err)
		return bc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Message: "Internal server error",
			Status:  fiber.StatusInternalServerError,
		})
	}

	return bc.sendJSONWithLog(c, fiber.StatusOK, fiber.Map{
		"acknowledged": true,
		"insertedId":   id.Hex(),
	})
}

// Update handles PATCH /bookings/update/:id: edits parcel details while the
// booking is still pending.
func (bc *BookingController) Update(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return bc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Message: "Invalid booking id",
			Status:  fiber.StatusBadRequest,
		})
	}

	var req bookingTypes.UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return bc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Message: "Invalid request body",
			Status:  fiber.StatusBadRequest,
		})
	}

	existing, err := bc.Bookings.GetByID(c.Context(), id)
	if err != nil {
		return bc.bookingLookupError(c, err)
	}
	if existing.Status != constants.StatusPending {
		return bc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Message: "Only pending bookings can be updated",
			Status:  fiber.StatusBadRequest,
		})
	}

	set := bson.M{}
	if req.PhoneNumber != "" {
		set["phoneNumber"] = req.PhoneNumber
	}
	if req.ParcelType != "" {
		set["parcelType"] = req.ParcelType
	}
	if req.ParcelWeight != 0 {
		set["parcelWeight"] = req.ParcelWeight
	}
	if req.Price != 0 {
		set["price"] = req.Price
	}
	if req.ReceiverName != "" {
		set["receiverName"] = req.ReceiverName
	}
	if req.ReceiverPhoneNumber != "" {
		set["receiverPhoneNumber"] = req.ReceiverPhoneNumber
	}
	if req.DeliveryAddress != "" {
		set["deliveryAddress"] = req.DeliveryAddress
	}
	if req.Latitude != 0 {
		set["latitude"] = req.Latitude
	}
	if req.Longitude != 0 {
		set["longitude"] = req.Longitude
	}
	if req.RequestedDeliveryDate != "" {
		set["requestedDeliveryDate"] = req.RequestedDeliveryDate
	}
	if len(set) == 0 {
		return bc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Message: "Nothing to update",
			Status:  fiber.StatusBadRequest,
		})
	}

	if err := bc.Bookings.Update(c.Context(), id, set); err != nil {
		return bc.bookingLookupError(c, err)
	}

	return bc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Message: "Booking updated successfully",
		Status:  fiber.StatusOK,
	})
}

// Cancel handles PATCH /bookings/cancel/:id. Only a pending booking can be
// cancelled; cancelled is terminal.
func (bc *BookingController) Cancel(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return bc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Message: "Invalid booking id",
			Status:  fiber.StatusBadRequest,
		})
	}

	existing, err := bc.Bookings.GetByID(c.Context(), id)
	if err != nil {
		return bc.bookingLookupError(c, err)
	}
	if existing.Status != constants.StatusPending {
		return bc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Message: "Only pending bookings can be cancelled",
			Status:  fiber.StatusBadRequest,
		})
	}

	if err := bc.Bookings.Update(c.Context(), id, bson.M{"status": constants.StatusCancelled}); err != nil {
		return bc.bookingLookupError(c, err)
	}

	return bc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Message: "Booking cancelled successfully",
		Status:  fiber.StatusOK,
	})
}

// Manage handles PATCH /bookings/manage/:id: an admin assigns a delivery-man
// and an approximate delivery date, moving the booking to "on the way". This
// is the only place deliveryMenId gets set, which keeps the invariant that
// an assignment exists exactly from "on the way" onward. When no approximate
// date is sent the end of the current week is used.
func (bc *BookingController) Manage(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return bc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Message: "Invalid booking id",
			Status:  fiber.StatusBadRequest,
		})
	}

	var req bookingTypes.ManageRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return bc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Message: "Invalid request body",
			Status:  fiber.StatusBadRequest,
		})
	}
	if err := req.Validate(); err != nil {
		return bc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Message: err.Error(),
			Status:  fiber.StatusBadRequest,
		})
	}
	if _, err := primitive.ObjectIDFromHex(req.DeliveryMenId); err != nil {
		return bc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Message: "Invalid delivery man id",
			Status:  fiber.StatusBadRequest,
		})
	}

	approximate := req.ApproximateDeliveryDate
	if approximate == "" {
		approximate = now.EndOfWeek().Format("2006-01-02")
	}

	set := bson.M{
		"deliveryMenId":           req.DeliveryMenId,
		"approximateDeliveryDate": approximate,
		"status":                  constants.StatusOnTheWay,
	}
	if err := bc.Bookings.Update(c.Context(), id, set); err != nil {
		return bc.bookingLookupError(c, err)
	}

	return bc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Message: "Delivery man assigned successfully",
		Status:  fiber.StatusOK,
	})
}

func (bc *BookingController) bookingLookupError(c *fiber.Ctx, err error) error {
	if errors.Is(err, bookingstore.ErrNotFound) {
		return bc.sendResponseWithLog(c, fiber.StatusNotFound, types.ApiResponse{
			Message: "Booking not found",
			Status:  fiber.StatusNotFound,
		})
	}
	logger.Error("Booking store error", err)
	return bc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
		Message: "Internal server error",
		Status:  fiber.StatusInternalServerError,
	})
}
