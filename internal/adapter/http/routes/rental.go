package routes

import (
	"github.com/techcs7646/carRental-backend/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathBookings = "/bookings"
	PathCars     = "/cars"
	PathPayments = "/payments"
)

func addRentalRoutes(rg *gin.RouterGroup, bookingHandler *handlers.BookingHandler, carHandler *handlers.CarHandler, paymentHandler *handlers.PaymentHandler) {
	cars := rg.Group(PathCars)
	{
		cars.GET("/:id/availability", carHandler.CheckAvailability)
	}

	bookings := rg.Group(PathBookings)
	{
		bookings.POST("", bookingHandler.Create)
		bookings.GET("", bookingHandler.ListAll)
		bookings.GET("/my-bookings", bookingHandler.GetMyBookings)
		bookings.GET("/:id", bookingHandler.GetByID)
		bookings.PUT("/:id/status", bookingHandler.UpdateStatus)
		bookings.PUT("/:id/cancel", bookingHandler.Cancel)
	}

	payments := rg.Group(PathPayments)
	{
		payments.POST("/create-payment-intent", paymentHandler.CreateIntent)
		payments.POST("/confirm-payment", paymentHandler.Confirm)
	}
}
