package interfaces

import (
	"context"

	"github.com/techcs7646/carRental-backend/internal/domain/entities"
)

// IPaymentProvider abstracts the external payment processor (Stripe).
//
// CreateIntent authorizes a charge attempt for the given amount in
// currency major units; GetIntent reads back the provider's current
// view of an attempt. Both honor ctx deadlines so callers can bound the
// network round trip.
type IPaymentProvider interface {
	CreateIntent(ctx context.Context, amount float64, currency string, metadata map[string]string) (entities.PaymentIntent, error)
	GetIntent(ctx context.Context, intentID string) (entities.PaymentIntent, error)
}
