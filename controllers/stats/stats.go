package stats

import (
	"github.com/gofiber/fiber/v2"

	"github.com/notHeisenberg/Parcel-Ease-Server/logger"
	"github.com/notHeisenberg/Parcel-Ease-Server/services/report"
	"github.com/notHeisenberg/Parcel-Ease-Server/types"
	"github.com/notHeisenberg/Parcel-Ease-Server/utils"
)

// StatsController exposes the reporting engine over HTTP.
type StatsController struct {
	Engine         *report.Engine
	loggerInstance *logger.AsyncLogger
}

func NewStatsController(engine *report.Engine, asyncLogger *logger.AsyncLogger) *StatsController {
	return &StatsController{
		Engine:         engine,
		loggerInstance: asyncLogger,
	}
}

func (sc *StatsController) sendResponseWithLog(c *fiber.Ctx, status int, response types.ApiResponse) error {
	result := c.Status(status).JSON(response)
	sc.loggerInstance.Log(utils.CreateSanitizedLogEntry(c))
	return result
}

// Statistics handles GET /statistics.
func (sc *StatsController) Statistics(c *fiber.Ctx) error {
	statistics, err := sc.Engine.Statistics(c.Context())
	if err != nil {
		logger.Error("Failed to compute statistics", err)
		return sc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Message: "Internal server error",
			Status:  fiber.StatusInternalServerError,
		})
	}

	result := c.Status(fiber.StatusOK).JSON(statistics)
	sc.loggerInstance.Log(utils.CreateSanitizedLogEntry(c))
	return result
}

// TopDeliveryMen handles GET /top-delivery-men.
func (sc *StatsController) TopDeliveryMen(c *fiber.Ctx) error {
	top, err := sc.Engine.TopDeliveryMen(c.Context())
	if err != nil {
		logger.Error("Failed to rank delivery men", err)
		return sc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Message: "Internal server error",
			Status:  fiber.StatusInternalServerError,
		})
	}

	result := c.Status(fiber.StatusOK).JSON(top)
	sc.loggerInstance.Log(utils.CreateSanitizedLogEntry(c))
	return result
}
