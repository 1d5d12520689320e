package request

// CreatePaymentIntentRequest asks the provider to authorize a charge
// for the booking's stored amount.
type CreatePaymentIntentRequest struct {
	BookingID string `json:"bookingId" binding:"required"`
}

// ConfirmPaymentRequest reconciles a provider intent with a booking.
type ConfirmPaymentRequest struct {
	BookingID       string `json:"bookingId" binding:"required"`
	PaymentIntentID string `json:"paymentIntentId" binding:"required"`
}
