package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	request "github.com/techcs7646/carRental-backend/internal/adapter/http/dto/request"
	response "github.com/techcs7646/carRental-backend/internal/adapter/http/dto/response"
	"github.com/techcs7646/carRental-backend/internal/adapter/http/middleware"
	"github.com/techcs7646/carRental-backend/internal/usecase"
	"github.com/techcs7646/carRental-backend/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidBookingPayload = pkg.NewDomainErrorSimple("INVALID_BOOKING_INPUT", "Invalid booking payload", http.StatusBadRequest)
	errMissingPrincipal      = pkg.NewDomainErrorSimple("UNAUTHORIZED", "Authentication required", http.StatusUnauthorized)
)

// BookingHandler handles HTTP requests for the booking lifecycle.

type BookingHandler struct {
	usecase usecase.IBookingUseCase
}

func NewBookingHandler(uc usecase.IBookingUseCase) *BookingHandler {
	return &BookingHandler{usecase: uc}
}

// Create places a new booking for a car and date range.
func (h *BookingHandler) Create(c *gin.Context) {
	var payload request.CreateBookingRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidBookingPayload.HTTPStatus, errInvalidBookingPayload.ToHTTPError())
		return
	}

	cmd := usecase.CreateBookingCommand{
		CarID:           payload.CarID,
		UserID:          payload.ResolveUserID(middleware.PrincipalID(c)),
		StartDate:       payload.StartDate,
		EndDate:         payload.EndDate,
		PickupTime:      payload.PickupTime,
		DropoffTime:     payload.DropoffTime,
		PickupLocation:  payload.PickupLocation,
		DropoffLocation: payload.DropoffLocation,
		TotalAmount:     payload.TotalAmount,
	}

	booking, err := h.usecase.Create(c.Request.Context(), cmd)
	if err != nil {
		log.Printf("[booking][handler] create failed car_id=%s err=%v", payload.CarID, err)
		appErr := mapBookingError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[booking][handler] create success booking_id=%s", booking.ID)

	c.JSON(http.StatusCreated, response.Success(response.FromBooking(booking)))
}

// UpdateStatus moves a booking through the status state machine.
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	id := c.Param("id")

	var payload request.UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidBookingPayload.HTTPStatus, errInvalidBookingPayload.ToHTTPError())
		return
	}

	booking, err := h.usecase.UpdateStatus(c.Request.Context(), id, payload.Status)
	if err != nil {
		log.Printf("[booking][handler] status update failed booking_id=%s err=%v", id, err)
		appErr := mapBookingError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.Success(response.FromBooking(booking)))
}

// Cancel cancels a non-terminal booking.
func (h *BookingHandler) Cancel(c *gin.Context) {
	id := c.Param("id")

	booking, err := h.usecase.Cancel(c.Request.Context(), id)
	if err != nil {
		log.Printf("[booking][handler] cancel failed booking_id=%s err=%v", id, err)
		appErr := mapBookingError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[booking][handler] cancel success booking_id=%s", id)

	c.JSON(http.StatusOK, response.Success(response.FromBooking(booking)))
}

// GetByID returns a single booking.
func (h *BookingHandler) GetByID(c *gin.Context) {
	booking, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapBookingError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.Success(response.FromBooking(booking)))
}

// GetMyBookings lists the authenticated renter's bookings.
func (h *BookingHandler) GetMyBookings(c *gin.Context) {
	userID := middleware.PrincipalID(c)
	if userID == "" {
		c.JSON(errMissingPrincipal.HTTPStatus, errMissingPrincipal.ToHTTPError())
		return
	}

	bookings, err := h.usecase.ListByUserID(c.Request.Context(), userID)
	if err != nil {
		appErr := mapBookingError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.Success(response.FromBookings(bookings)))
}

// ListAll lists bookings for the admin console, optionally filtered by
// status (?status=pending).
func (h *BookingHandler) ListAll(c *gin.Context) {
	bookings, err := h.usecase.ListAll(c.Request.Context(), c.Query("status"))
	if err != nil {
		appErr := mapBookingError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.Success(response.FromBookings(bookings)))
}

func mapBookingError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidDateFormat):
		return pkg.NewDomainErrorSimple("INVALID_DATE_FORMAT", "Invalid date format. Please use YYYY-MM-DD", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidDateRange):
		return pkg.NewDomainErrorSimple("INVALID_DATE_RANGE", "Start date must be before end date", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidStatus):
		return pkg.NewDomainErrorSimple("INVALID_STATUS", "Invalid status", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidCarID), errors.Is(err, usecase.ErrInvalidUserID), errors.Is(err, usecase.ErrInvalidBookingID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrCarNotFound):
		return pkg.NewDomainErrorSimple("CAR_NOT_FOUND", "Car not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrBookingNotFound):
		return pkg.NewDomainErrorSimple("BOOKING_NOT_FOUND", "Booking not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrCarUnavailable):
		return pkg.NewDomainErrorSimple("CAR_UNAVAILABLE", "Car is not available for rental", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrDatesConflict):
		return pkg.NewDomainErrorSimple("DATES_CONFLICT", "Car is already booked for these dates", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidTransition):
		return pkg.NewDomainErrorSimple("INVALID_TRANSITION", transitionMessage(err), http.StatusBadRequest)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

// transitionMessage surfaces the detail attached to the transition
// sentinel ("Booking cannot be cancelled as it is already completed")
// without the sentinel prefix.
func transitionMessage(err error) string {
	msg := strings.TrimPrefix(err.Error(), usecase.ErrInvalidTransition.Error())
	msg = strings.TrimPrefix(msg, ": ")
	if msg == "" {
		return "Invalid status transition"
	}
	return msg
}
