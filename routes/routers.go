package routes

import (
	"hotelbooking/controllers"
	middlewares "hotelbooking/middleware"
	"hotelbooking/services"
	"hotelbooking/services/notification"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func SetupRoutes(router *gin.Engine, db *gorm.DB, redisCli *redis.Client, m *melody.Melody) {

	gateway := services.NewHTTPCheckoutGateway()
	notifier := notification.NewMelodyService(m)

	bookingController := controllers.NewBookingController(db, redisCli, gateway, notifier)
	paymentController := controllers.NewPaymentController(db, redisCli, gateway, notifier)

	v1 := router.Group("/api/v1")

	v1.GET("/hotel", controllers.GetAllHotels)
	v1.GET("/hotel/:id", controllers.GetHotelDetail)

	v1.GET("/booking", middlewares.AuthMiddleware(), bookingController.GetBookings)
	v1.POST("/booking", middlewares.AuthMiddleware(), bookingController.CreateBooking)
	v1.GET("/booking/:id", middlewares.AuthMiddleware(), bookingController.GetBookingDetail)
	v1.PUT("/bookingUpdate", middlewares.AuthMiddleware(), bookingController.UpdateBooking)
	v1.DELETE("/booking/:id", middlewares.AuthMiddleware(), bookingController.CancelBooking)

	v1.GET("/payment", middlewares.AuthMiddleware(), paymentController.GetPayments)
	v1.POST("/payment", middlewares.AuthMiddleware(), paymentController.CreatePayment)
	v1.GET("/payment/:id", middlewares.AuthMiddleware(), paymentController.GetPaymentDetail)

	// Callback từ cổng thanh toán, không qua auth
	v1.GET("/paymentSuccess", paymentController.PaymentSuccess)
	v1.GET("/paymentCancel", paymentController.PaymentCancel)

	v1.GET("/review", middlewares.AuthMiddleware(), controllers.GetReviews)
	v1.POST("/review", middlewares.AuthMiddleware(), controllers.CreateReview)
	v1.GET("/review/:id", middlewares.AuthMiddleware(), controllers.GetReviewDetail)
	v1.PUT("/reviewUpdate", middlewares.AuthMiddleware(), controllers.UpdateReview)
	v1.DELETE("/review/:id", middlewares.AuthMiddleware(), controllers.DeleteReview)
}
