package handlers

import (
	"errors"
	"log"
	"net/http"

	request "github.com/techcs7646/carRental-backend/internal/adapter/http/dto/request"
	response "github.com/techcs7646/carRental-backend/internal/adapter/http/dto/response"
	"github.com/techcs7646/carRental-backend/internal/usecase"
	"github.com/techcs7646/carRental-backend/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidPaymentPayload = pkg.NewDomainErrorSimple("INVALID_PAYMENT_INPUT", "Invalid payment payload", http.StatusBadRequest)

// PaymentHandler handles HTTP requests for payment intents and the
// confirmation reconciliation flow.

type PaymentHandler struct {
	usecase usecase.IPaymentUseCase
}

func NewPaymentHandler(uc usecase.IPaymentUseCase) *PaymentHandler {
	return &PaymentHandler{usecase: uc}
}

// CreateIntent opens a provider payment intent for a booking.
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	var payload request.CreatePaymentIntentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPaymentPayload.HTTPStatus, errInvalidPaymentPayload.ToHTTPError())
		return
	}

	result, err := h.usecase.CreateIntent(c.Request.Context(), payload.BookingID)
	if err != nil {
		log.Printf("[payment][handler] create-intent failed booking_id=%s err=%v", payload.BookingID, err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[payment][handler] create-intent success booking_id=%s intent_id=%s", payload.BookingID, result.PaymentIntentID)

	c.JSON(http.StatusOK, response.CreatePaymentIntentResponse{
		PaymentIntentID: result.PaymentIntentID,
		ClientSecret:    result.ClientSecret,
	})
}

// Confirm reconciles the provider's intent state with the booking:
// 200 with booking+receipt on success, 202 while the provider is still
// processing, 400 when the payment needs another attempt or reports an
// unrecognized state.
func (h *PaymentHandler) Confirm(c *gin.Context) {
	var payload request.ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPaymentPayload.HTTPStatus, errInvalidPaymentPayload.ToHTTPError())
		return
	}

	result, err := h.usecase.Confirm(c.Request.Context(), payload.BookingID, payload.PaymentIntentID)
	if err != nil {
		log.Printf("[payment][handler] confirm failed booking_id=%s intent_id=%s err=%v", payload.BookingID, payload.PaymentIntentID, err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	switch result.Outcome {
	case usecase.PaymentOutcomeConfirmed:
		log.Printf("[payment][handler] confirm success booking_id=%s", result.Booking.ID)
		c.JSON(http.StatusOK, response.ConfirmPaymentResponse{
			Message: result.Message,
			Booking: response.FromBooking(result.Booking),
			Receipt: response.FromReceipt(*result.Receipt),
		})

	case usecase.PaymentOutcomeProcessing:
		c.JSON(http.StatusAccepted, response.Envelope{Success: false, Message: result.Message})

	default:
		// requires_payment_method and unrecognized provider states both
		// surface as a retryable client failure.
		c.JSON(http.StatusBadRequest, response.Envelope{Success: false, Message: result.Message})
	}
}

func mapPaymentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidBookingID), errors.Is(err, usecase.ErrInvalidIntentID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrBookingNotFound):
		return pkg.NewDomainErrorSimple("BOOKING_NOT_FOUND", "Booking not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrInvalidTransition):
		return pkg.NewDomainErrorSimple("INVALID_TRANSITION", transitionMessage(err), http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentProvider):
		return pkg.NewDomainError("PAYMENT_PROVIDER_UNAVAILABLE", "Payment provider unavailable, please retry", err, http.StatusInternalServerError)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
