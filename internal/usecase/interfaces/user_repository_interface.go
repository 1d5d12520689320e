package interfaces

import (
	"context"

	"github.com/techcs7646/carRental-backend/internal/domain/entities"
)

// IUserRepository resolves renter profile fields for receipts. Absent
// users come back as a zero-value User.
type IUserRepository interface {
	GetByID(ctx context.Context, id string) (entities.User, error)
}
