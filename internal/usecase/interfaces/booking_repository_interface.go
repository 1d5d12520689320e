package interfaces

import (
	"context"

	"github.com/techcs7646/carRental-backend/internal/domain/entities"
)

// IBookingRepository abstracts DynamoDB persistence for Booking.
//
// Contract notes:
//   - Insert must refuse to overwrite an existing id.
//   - Lookups return a zero-value Booking (empty ID) when absent, not
//     an error; transport/durability failures are returned as errors.
//   - UpdateStatus/UpdatePayment are compare-and-set on the previous
//     status and return the zero value when the guard fails.
//   - ListByStatus with a zero-value status lists every booking.
type IBookingRepository interface {
	Insert(ctx context.Context, b entities.Booking) (entities.Booking, error)
	GetByID(ctx context.Context, id string) (entities.Booking, error)
	FindOverlapping(ctx context.Context, carID, startDate, endDate string, excludeStatuses []entities.BookingStatus) ([]entities.Booking, error)
	UpdateStatus(ctx context.Context, id string, from, to entities.BookingStatus) (entities.Booking, error)
	UpdatePayment(ctx context.Context, id string, from entities.BookingStatus, to entities.BookingStatus, payment entities.PaymentStatus) (entities.Booking, error)
	ListByUserID(ctx context.Context, userID string) ([]entities.Booking, error)
	ListByStatus(ctx context.Context, status entities.BookingStatus) ([]entities.Booking, error)
}
