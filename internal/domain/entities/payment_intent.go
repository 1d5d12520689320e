package entities

import "time"

// Payment intent statuses the reconciliation flow distinguishes. Any
// other provider value is surfaced verbatim as an unknown state.
const (
	IntentStatusSucceeded             = "succeeded"
	IntentStatusProcessing            = "processing"
	IntentStatusRequiresPaymentMethod = "requires_payment_method"
)

// PaymentIntent is the provider's view of a charge attempt. The core
// only reads it; the provider owns the record and its transitions.
type PaymentIntent struct {
	ID           string    `json:"id"`
	Status       string    `json:"status"`
	Amount       float64   `json:"amount"`
	ClientSecret string    `json:"client_secret,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
