package payments

import (
	"context"
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/techcs7646/carRental-backend/internal/domain/entities"
	"github.com/techcs7646/carRental-backend/internal/usecase/interfaces"

	stripe "github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

var ErrMissingStripeSecretKey = errors.New("missing STRIPE_SECRET_KEY")
var ErrStripeGatewayNotConfigured = errors.New("stripe gateway not configured")

// StripeGateway drives payment intents through the Stripe API.
//
// Mock mode (PAYMENT_GATEWAY_MOCK / STRIPE_MOCK) fabricates intents
// locally so the booking flow can be exercised without provider
// credentials; mocked intents always report succeeded on retrieval.
type StripeGateway struct {
	sc       *client.API
	mockMode bool
}

var _ interfaces.IPaymentProvider = (*StripeGateway)(nil)

func NewStripeGateway(secretKey string) (*StripeGateway, error) {
	if isPaymentGatewayMockEnabled() {
		log.Printf("[payment][gateway] mock mode enabled")
		return &StripeGateway{mockMode: true}, nil
	}

	if secretKey == "" {
		log.Printf("[payment][gateway] missing STRIPE_SECRET_KEY")
		return nil, ErrMissingStripeSecretKey
	}

	sc := &client.API{}
	sc.Init(secretKey, nil)
	log.Printf("[payment][gateway] Stripe client initialized")

	return &StripeGateway{sc: sc}, nil
}

func (g *StripeGateway) CreateIntent(ctx context.Context, amount float64, currency string, metadata map[string]string) (entities.PaymentIntent, error) {
	if g != nil && g.mockMode {
		id := "pi_mock_" + strconv.FormatInt(time.Now().UTC().UnixNano(), 10)
		log.Printf("[payment][gateway] mock create intent_id=%s amount=%.2f", id, amount)
		return entities.PaymentIntent{
			ID:           id,
			Status:       entities.IntentStatusRequiresPaymentMethod,
			Amount:       amount,
			ClientSecret: id + "_secret_mock",
			CreatedAt:    time.Now().UTC(),
		}, nil
	}
	if g == nil || g.sc == nil {
		return entities.PaymentIntent{}, ErrStripeGatewayNotConfigured
	}

	params := &stripe.PaymentIntentParams{
		Params:   stripe.Params{Context: ctx},
		Amount:   stripe.Int64(toMinorUnits(amount)),
		Currency: stripe.String(currency),
	}
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := g.sc.PaymentIntents.New(params)
	if err != nil {
		log.Printf("[payment][gateway] create failed err=%v", err)
		return entities.PaymentIntent{}, err
	}
	log.Printf("[payment][gateway] create success intent_id=%s status=%s", pi.ID, pi.Status)
	return fromStripeIntent(pi), nil
}

func (g *StripeGateway) GetIntent(ctx context.Context, intentID string) (entities.PaymentIntent, error) {
	if g != nil && g.mockMode {
		log.Printf("[payment][gateway] mock retrieve intent_id=%s", intentID)
		return entities.PaymentIntent{
			ID:        intentID,
			Status:    entities.IntentStatusSucceeded,
			CreatedAt: time.Now().UTC(),
		}, nil
	}
	if g == nil || g.sc == nil {
		return entities.PaymentIntent{}, ErrStripeGatewayNotConfigured
	}

	pi, err := g.sc.PaymentIntents.Get(intentID, &stripe.PaymentIntentParams{
		Params: stripe.Params{Context: ctx},
	})
	if err != nil {
		log.Printf("[payment][gateway] retrieve failed intent_id=%s err=%v", intentID, err)
		return entities.PaymentIntent{}, err
	}
	log.Printf("[payment][gateway] retrieve success intent_id=%s status=%s", pi.ID, pi.Status)
	return fromStripeIntent(pi), nil
}

func fromStripeIntent(pi *stripe.PaymentIntent) entities.PaymentIntent {
	return entities.PaymentIntent{
		ID:           pi.ID,
		Status:       string(pi.Status),
		Amount:       fromMinorUnits(pi.Amount),
		ClientSecret: pi.ClientSecret,
		CreatedAt:    time.Unix(pi.Created, 0).UTC(),
	}
}

// Stripe amounts travel in currency minor units.
func toMinorUnits(amount float64) int64 {
	return int64(amount*100 + 0.5)
}

func fromMinorUnits(amount int64) float64 {
	return float64(amount) / 100
}

func isPaymentGatewayMockEnabled() bool {
	for _, key := range []string{"PAYMENT_GATEWAY_MOCK", "STRIPE_MOCK"} {
		v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
		switch v {
		case "1", "true", "yes", "on", "mock":
			return true
		}
	}
	return false
}
