package ports

import (
	"context"

	"github.com/house-hunt/rental-api/internal/core/domain"
)

// AuthService defines registration, login and profile use cases.
type AuthService interface {
	Signup(ctx context.Context, name, email, password, role, phone string) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Profile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID, name, phone, contactInfo string) (*domain.User, error)
}
