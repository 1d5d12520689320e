package routes

import (
	"log"
	"os"
	"strconv"

	_ "github.com/techcs7646/carRental-backend/docs" // This will be auto-generated
	"github.com/techcs7646/carRental-backend/internal/adapter/http/handlers"
	"github.com/techcs7646/carRental-backend/internal/adapter/http/middleware"
	repository2 "github.com/techcs7646/carRental-backend/internal/adapter/persistence/repository"
	"github.com/techcs7646/carRental-backend/internal/infrastructure/database"
	"github.com/techcs7646/carRental-backend/internal/infrastructure/payments"
	"github.com/techcs7646/carRental-backend/internal/usecase"
	"github.com/techcs7646/carRental-backend/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

const PORT = 8080

// Run will start the server
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	err := router.Run(":" + strconv.Itoa(PORT))
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes() {
	ddb := database.ConnectDynamoDB()

	bookingRepo := repository2.NewBookingDynamoRepository(ddb)
	carRepo := repository2.NewCarDynamoRepository(ddb)
	userRepo := repository2.NewUserDynamoRepository(ddb)

	var paymentProvider interfaces.IPaymentProvider
	stripeGateway, err := payments.NewStripeGateway(os.Getenv("STRIPE_SECRET_KEY"))
	if err != nil {
		log.Printf("Stripe gateway not configured: %v", err)
	} else {
		paymentProvider = stripeGateway
	}

	bookingUseCase := usecase.NewBookingUseCase(bookingRepo, carRepo)
	paymentUseCase := usecase.NewPaymentUseCase(bookingRepo, carRepo, userRepo, paymentProvider)

	bookingHandler := handlers.NewBookingHandler(bookingUseCase)
	carHandler := handlers.NewCarHandler(bookingUseCase)
	paymentHandler := handlers.NewPaymentHandler(paymentUseCase)

	v1 := router.Group("/v1")
	v1.Use(middleware.Identity())
	addPingRoutes(v1)
	addRentalRoutes(v1, bookingHandler, carHandler, paymentHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
