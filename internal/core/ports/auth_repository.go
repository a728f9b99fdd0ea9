package ports

import (
	"context"
	"time"

	"github.com/propfinder/marketplace-api/internal/core/domain"
)

// AuthRepository defines the interface for user account persistence.
type AuthRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

// AccountReader is the narrow account-store view the verification gate needs.
// Returns domain.ErrAccountNotFound when no account exists for the id.
type AccountReader interface {
	CreatedAt(ctx context.Context, userID string) (time.Time, error)
}
