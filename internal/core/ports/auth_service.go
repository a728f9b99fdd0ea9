package ports

import (
	"context"

	"github.com/propfinder/marketplace-api/internal/core/domain"
)

// RegisterInput carries the data for a new account.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Role     string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
