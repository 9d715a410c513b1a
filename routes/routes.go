package routes

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/notHeisenberg/Parcel-Ease-Server/controllers/auth"
	"github.com/notHeisenberg/Parcel-Ease-Server/controllers/booking"
	"github.com/notHeisenberg/Parcel-Ease-Server/controllers/delivery"
	"github.com/notHeisenberg/Parcel-Ease-Server/controllers/review"
	"github.com/notHeisenberg/Parcel-Ease-Server/controllers/stats"
	"github.com/notHeisenberg/Parcel-Ease-Server/controllers/user"
	"github.com/notHeisenberg/Parcel-Ease-Server/logger"
	"github.com/notHeisenberg/Parcel-Ease-Server/middleware"
	"github.com/notHeisenberg/Parcel-Ease-Server/services/report"
	"github.com/notHeisenberg/Parcel-Ease-Server/store/bookingstore"
	"github.com/notHeisenberg/Parcel-Ease-Server/store/logstore"
	"github.com/notHeisenberg/Parcel-Ease-Server/store/reviewstore"
	"github.com/notHeisenberg/Parcel-Ease-Server/store/userstore"
)

// SetupRoutes wires the stores, controllers and middleware onto the app.
func SetupRoutes(app *fiber.App, db *mongo.Database) {
	users := userstore.New(db)
	bookings := bookingstore.New(db)
	reviews := reviewstore.New(db)
	logs := logstore.New(db)

	asyncLogger := logger.NewAsyncLogger(logs)
	go asyncLogger.ProcessLog()

	reportEngine := report.NewEngine(users, bookings, reviews)

	authController := auth.NewAuthController(asyncLogger)
	userController := user.NewUserController(users, bookings, reviews, asyncLogger)
	bookingController := booking.NewBookingController(bookings, asyncLogger)
	deliveryController := delivery.NewDeliveryController(users, bookings, asyncLogger)
	reviewController := review.NewReviewController(reviews, asyncLogger)
	statsController := stats.NewStatsController(reportEngine, asyncLogger)

	verifyToken := middleware.VerifyToken()
	requireAdmin := middleware.RequireAdmin(users)
	requireDeliveryMan := middleware.RequireDeliveryMan(users)

	// Index route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("paecel ease is running")
	})

	/*=============================================================================
	| Auth
	===============================================================================*/
	app.Post("/jwt", authController.CreateToken)

	/*=============================================================================
	| Users
	===============================================================================*/
	// Static segments before the parameterized routes.
	app.Get("/users/deliverymen", verifyToken, requireAdmin, userController.DeliveryMen)
	app.Get("/users/admin/:email", verifyToken, userController.IsAdmin)
	app.Get("/users/deliveryman/:email", verifyToken, userController.IsDeliveryMan)
	app.Get("/users", verifyToken, requireAdmin, userController.List)
	app.Post("/users", userController.Upsert)
	app.Patch("/users/:id/role", verifyToken, requireAdmin, userController.UpdateRole)

	/*=============================================================================
	| Bookings
	===============================================================================*/
	app.Get("/bookings", verifyToken, requireAdmin, bookingController.List)
	app.Post("/bookings", verifyToken, bookingController.Create)
	app.Patch("/bookings/update/:id", verifyToken, bookingController.Update)
	app.Patch("/bookings/cancel/:id", verifyToken, bookingController.Cancel)
	app.Patch("/bookings/manage/:id", verifyToken, requireAdmin, bookingController.Manage)
	app.Get("/bookings/:email", verifyToken, bookingController.ListByEmail)

	/*=============================================================================
	| Deliveries
	===============================================================================*/
	app.Get("/deliveries/:email", verifyToken, requireDeliveryMan, deliveryController.Assigned)
	app.Patch("/deliveries/:id/:status", verifyToken, requireDeliveryMan, deliveryController.UpdateStatus)

	/*=============================================================================
	| Reviews
	===============================================================================*/
	app.Post("/reviews", verifyToken, reviewController.Create)
	app.Get("/reviews/:deliveryMenId", verifyToken, reviewController.ListByDeliveryMan)

	/*=============================================================================
	| Reporting
	===============================================================================*/
	app.Get("/statistics", verifyToken, requireAdmin, statsController.Statistics)
	app.Get("/top-delivery-men", statsController.TopDeliveryMen)
}
