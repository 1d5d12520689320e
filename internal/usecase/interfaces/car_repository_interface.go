package interfaces

import (
	"context"

	"github.com/techcs7646/carRental-backend/internal/domain/entities"
)

// ICarRepository is the read-only view of the car catalog the booking
// core consumes. Absent cars come back as a zero-value Car.
type ICarRepository interface {
	GetByID(ctx context.Context, id string) (entities.Car, error)
}
