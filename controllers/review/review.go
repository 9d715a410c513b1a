package review

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/notHeisenberg/Parcel-Ease-Server/logger"
	reviewModel "github.com/notHeisenberg/Parcel-Ease-Server/models/review"
	"github.com/notHeisenberg/Parcel-Ease-Server/store/reviewstore"
	"github.com/notHeisenberg/Parcel-Ease-Server/types"
	reviewTypes "github.com/notHeisenberg/Parcel-Ease-Server/types/review"
	"github.com/notHeisenberg/Parcel-Ease-Server/utils"
)

// ReviewStore is the slice of the review store the controller uses.
type ReviewStore interface {
	ExistsForParcel(ctx context.Context, parcelId string) (bool, error)
	Insert(ctx context.Context, r reviewModel.Review) (primitive.ObjectID, error)
	ListByDeliveryMan(ctx context.Context, deliveryMenId string) ([]reviewModel.Review, error)
}

// ReviewController handles review creation and listing.
type ReviewController struct {
	Reviews        ReviewStore
	loggerInstance *logger.AsyncLogger
}

func NewReviewController(reviews ReviewStore, asyncLogger *logger.AsyncLogger) *ReviewController {
	return &ReviewController{
		Reviews:        reviews,
		loggerInstance: asyncLogger,
	}
}

func (rc *ReviewController) sendResponseWithLog(c *fiber.Ctx, status int, response types.ApiResponse) error {
	result := c.Status(status).JSON(response)
	rc.loggerInstance.Log(utils.CreateSanitizedLogEntry(c))
	return result
}

// Create handles POST /reviews. At most one review per booking: a review
// already referencing the same parcelId rejects with 400. The unique index
// on parcelId catches the race where two inserts pass the existence check
// concurrently.
func (rc *ReviewController) Create(c *fiber.Ctx) error {
	var req reviewTypes.CreateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return rc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Message: "Invalid request body",
			Status:  fiber.StatusBadRequest,
		})
	}

	if err := req.Validate(); err != nil {
		return rc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Message: err.Error(),
			Status:  fiber.StatusBadRequest,
		})
	}

	exists, err := rc.Reviews.ExistsForParcel(c.Context(), req.ParcelId)
	if err != nil {
		logger.Error("Failed to check existing review", err)
		return rc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Message: "Internal server error",
			Status:  fiber.StatusInternalServerError,
		})
	}
	if exists {
		return rc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Message: "review already exists for this parcel",
			Status:  fiber.StatusBadRequest,
		})
	}

	id, err := rc.Reviews.Insert(c.Context(), reviewModel.Review{
		UserName:      req.UserName,
		Image:         req.Image,
		Rating:        req.Rating,
		Feedback:      req.Feedback,
		DeliveryMenId: req.DeliveryMenId,
		ParcelId:      req.ParcelId,
		CreatedAt:     time.Now(),
	})
	if err != nil {
		if reviewstore.IsDuplicate(err) {
			return rc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
				Message: "review already exists for this parcel",
				Status:  fiber.StatusBadRequest,
			})
		}
		logger.Error("Failed to insert review", err)
		return rc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Message: "Internal server error",
			Status:  fiber.StatusInternalServerError,
		})
	}

	result := c.Status(fiber.StatusOK).JSON(fiber.Map{
		"acknowledged": true,
		"insertedId":   id.Hex(),
	})
	rc.loggerInstance.Log(utils.CreateSanitizedLogEntry(c))
	return result
}

// ListByDeliveryMan handles GET /reviews/:deliveryMenId.
func (rc *ReviewController) ListByDeliveryMan(c *fiber.Ctx) error {
	reviews, err := rc.Reviews.ListByDeliveryMan(c.Context(), c.Params("deliveryMenId"))
	if err != nil {
		logger.Error("Failed to list reviews", err)
		return rc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Message: "Internal server error",
			Status:  fiber.StatusInternalServerError,
		})
	}

	result := c.Status(fiber.StatusOK).JSON(reviews)
	rc.loggerInstance.Log(utils.CreateSanitizedLogEntry(c))
	return result
}
