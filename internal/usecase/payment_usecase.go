package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/techcs7646/carRental-backend/internal/domain/entities"
	"github.com/techcs7646/carRental-backend/internal/usecase/interfaces"
)

var (
	ErrInvalidIntentID = errors.New("invalid payment intent id")
	ErrPaymentProvider = errors.New("payment provider unavailable")
)

const defaultProviderTimeout = 10 * time.Second

// PaymentOutcome classifies what the provider reported for an intent.
type PaymentOutcome string

const (
	PaymentOutcomeConfirmed             PaymentOutcome = "confirmed"
	PaymentOutcomeProcessing            PaymentOutcome = "processing"
	PaymentOutcomeRequiresPaymentMethod PaymentOutcome = "requires_payment_method"
	PaymentOutcomeUnknown               PaymentOutcome = "unknown"
)

// ConfirmPaymentResult is the reconciliation answer. Booking and
// Receipt are only populated on the confirmed outcome; ProviderStatus
// carries the raw provider value for the unknown outcome.
type ConfirmPaymentResult struct {
	Outcome        PaymentOutcome
	Message        string
	Booking        entities.Booking
	Receipt        *entities.Receipt
	ProviderStatus string
}

// CreateIntentResult is what the client needs to drive the provider's
// payment flow.
type CreateIntentResult struct {
	PaymentIntentID string
	ClientSecret    string
}

// IPaymentUseCase reconciles provider payment state with the booking
// state machine. Confirm is idempotent for succeeded intents: a
// redelivered confirmation returns the same booking state and an
// equivalent receipt without a second write.
type IPaymentUseCase interface {
	CreateIntent(ctx context.Context, bookingID string) (CreateIntentResult, error)
	Confirm(ctx context.Context, bookingID, intentID string) (ConfirmPaymentResult, error)
}

type PaymentUseCase struct {
	bookings interfaces.IBookingRepository
	cars     interfaces.ICarRepository
	users    interfaces.IUserRepository
	provider interfaces.IPaymentProvider

	providerTimeout time.Duration
}

var _ IPaymentUseCase = (*PaymentUseCase)(nil)

func NewPaymentUseCase(bookings interfaces.IBookingRepository, cars interfaces.ICarRepository, users interfaces.IUserRepository, provider interfaces.IPaymentProvider) *PaymentUseCase {
	return &PaymentUseCase{
		bookings:        bookings,
		cars:            cars,
		users:           users,
		provider:        provider,
		providerTimeout: defaultProviderTimeout,
	}
}

func (u *PaymentUseCase) CreateIntent(ctx context.Context, bookingID string) (CreateIntentResult, error) {
	bookingID = strings.TrimSpace(bookingID)
	log.Printf("[payment][usecase] create-intent start booking_id=%s", bookingID)
	if bookingID == "" {
		return CreateIntentResult{}, ErrInvalidBookingID
	}
	if u.provider == nil {
		return CreateIntentResult{}, errors.New("payment provider not configured")
	}

	b, err := u.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return CreateIntentResult{}, err
	}
	if b.ID == "" {
		return CreateIntentResult{}, ErrBookingNotFound
	}

	pctx, cancel := context.WithTimeout(ctx, u.providerTimeout)
	defer cancel()
	intent, err := u.provider.CreateIntent(pctx, b.TotalAmount, "usd", map[string]string{
		"booking_id": b.ID,
		"car_id":     b.CarID,
		"user_id":    b.UserID,
	})
	if err != nil {
		log.Printf("[payment][usecase] create-intent provider failed booking_id=%s err=%v", bookingID, err)
		return CreateIntentResult{}, fmt.Errorf("%w: %v", ErrPaymentProvider, err)
	}
	log.Printf("[payment][usecase] create-intent success booking_id=%s intent_id=%s", bookingID, intent.ID)
	return CreateIntentResult{PaymentIntentID: intent.ID, ClientSecret: intent.ClientSecret}, nil
}

func (u *PaymentUseCase) Confirm(ctx context.Context, bookingID, intentID string) (ConfirmPaymentResult, error) {
	bookingID = strings.TrimSpace(bookingID)
	intentID = strings.TrimSpace(intentID)
	log.Printf("[payment][usecase] confirm start booking_id=%s intent_id=%s", bookingID, intentID)
	if bookingID == "" {
		return ConfirmPaymentResult{}, ErrInvalidBookingID
	}
	if intentID == "" {
		return ConfirmPaymentResult{}, ErrInvalidIntentID
	}
	if u.provider == nil {
		return ConfirmPaymentResult{}, errors.New("payment provider not configured")
	}

	b, err := u.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return ConfirmPaymentResult{}, err
	}
	if b.ID == "" {
		return ConfirmPaymentResult{}, ErrBookingNotFound
	}

	// The booking is only mutated after the provider response has been
	// fetched and classified; a slow or failing provider round trip
	// must not leave partial state behind.
	pctx, cancel := context.WithTimeout(ctx, u.providerTimeout)
	defer cancel()
	intent, err := u.provider.GetIntent(pctx, intentID)
	if err != nil {
		log.Printf("[payment][usecase] intent fetch failed booking_id=%s intent_id=%s err=%v", bookingID, intentID, err)
		return ConfirmPaymentResult{}, fmt.Errorf("%w: %v", ErrPaymentProvider, err)
	}
	log.Printf("[payment][usecase] intent fetched booking_id=%s intent_id=%s provider_status=%s", bookingID, intentID, intent.Status)

	switch intent.Status {
	case entities.IntentStatusSucceeded:
		return u.settle(ctx, b, intent)

	case entities.IntentStatusProcessing:
		return ConfirmPaymentResult{
			Outcome: PaymentOutcomeProcessing,
			Message: "Payment is still processing",
		}, nil

	case entities.IntentStatusRequiresPaymentMethod:
		return ConfirmPaymentResult{
			Outcome: PaymentOutcomeRequiresPaymentMethod,
			Message: "Payment failed, please try again",
		}, nil

	default:
		return ConfirmPaymentResult{
			Outcome:        PaymentOutcomeUnknown,
			Message:        fmt.Sprintf("Payment status: %s. Please contact support.", intent.Status),
			ProviderStatus: intent.Status,
		}, nil
	}
}

// settle moves a booking to confirmed/paid for a succeeded intent and
// builds the receipt. Already-paid bookings take the no-op path so
// redelivered provider callbacks cannot double-apply.
func (u *PaymentUseCase) settle(ctx context.Context, b entities.Booking, intent entities.PaymentIntent) (ConfirmPaymentResult, error) {
	if b.PaymentStatus != entities.PaymentStatusPaid {
		if b.Status.IsTerminal() {
			return ConfirmPaymentResult{}, fmt.Errorf("%w: booking is already %s", ErrInvalidTransition, b.Status)
		}

		updated, err := u.bookings.UpdatePayment(ctx, b.ID, b.Status, entities.BookingStatusConfirmed, entities.PaymentStatusPaid)
		if err != nil {
			log.Printf("[payment][usecase] confirm write failed booking_id=%s err=%v", b.ID, err)
			return ConfirmPaymentResult{}, err
		}
		if updated.ID == "" {
			// Lost the compare-and-set; a concurrent confirmation may
			// already have settled the booking.
			current, err := u.bookings.GetByID(ctx, b.ID)
			if err != nil {
				return ConfirmPaymentResult{}, err
			}
			if current.ID == "" || current.PaymentStatus != entities.PaymentStatusPaid {
				return ConfirmPaymentResult{}, fmt.Errorf("%w: booking status changed concurrently", ErrInvalidTransition)
			}
			updated = current
		}
		b = updated
		log.Printf("[payment][usecase] confirm success booking_id=%s status=%s payment_status=%s", b.ID, b.Status, b.PaymentStatus)
	} else {
		log.Printf("[payment][usecase] confirm no-op booking_id=%s already paid", b.ID)
	}

	car, err := u.cars.GetByID(ctx, b.CarID)
	if err != nil {
		return ConfirmPaymentResult{}, err
	}
	renter, err := u.users.GetByID(ctx, b.UserID)
	if err != nil {
		return ConfirmPaymentResult{}, err
	}

	receipt := entities.BuildReceipt(b, car, renter, intent, time.Now().UTC())
	return ConfirmPaymentResult{
		Outcome: PaymentOutcomeConfirmed,
		Message: "Payment confirmed successfully",
		Booking: b,
		Receipt: &receipt,
	}, nil
}
