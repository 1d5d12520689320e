package handlers

import (
	"log"
	"net/http"

	response "github.com/techcs7646/carRental-backend/internal/adapter/http/dto/response"
	"github.com/techcs7646/carRental-backend/internal/usecase"

	"github.com/gin-gonic/gin"
)

// CarHandler exposes the car-facing queries the booking core answers.

type CarHandler struct {
	usecase usecase.IBookingUseCase
}

func NewCarHandler(uc usecase.IBookingUseCase) *CarHandler {
	return &CarHandler{usecase: uc}
}

// CheckAvailability answers whether a car is free over
// ?startDate=YYYY-MM-DD&endDate=YYYY-MM-DD. A blocked car is a 200
// with available=false; only malformed input and missing cars fail.
func (h *CarHandler) CheckAvailability(c *gin.Context) {
	carID := c.Param("id")
	startDate := c.Query("startDate")
	endDate := c.Query("endDate")

	if startDate == "" || endDate == "" {
		c.JSON(http.StatusBadRequest, response.AvailabilityResponse{
			Available: false,
			Message:   "Please provide both start and end dates",
		})
		return
	}

	result, err := h.usecase.CheckAvailability(c.Request.Context(), carID, startDate, endDate)
	if err != nil {
		log.Printf("[car][handler] availability check failed car_id=%s err=%v", carID, err)
		appErr := mapBookingError(err)
		c.JSON(appErr.HTTPStatus, response.AvailabilityResponse{
			Available: false,
			Message:   appErr.Message,
		})
		return
	}

	c.JSON(http.StatusOK, response.AvailabilityResponse{
		Available: result.Available,
		Message:   result.Message,
	})
}
