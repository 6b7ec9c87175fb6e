package ports

import (
	"context"

	"github.com/house-hunt/rental-api/internal/core/domain"
)

// ListUsersFilter carries the admin user-list query parameters.
type ListUsersFilter struct {
	Role   string // optional: tenant or owner
	Search string // optional: case-insensitive match on name or email
	Page   int
	Limit  int
}

// UserRepository defines persistence operations for accounts.
// Soft-deleted users are excluded from every lookup.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id string, name, phone, contactInfo string) (*domain.User, error)
	List(ctx context.Context, filter ListUsersFilter) ([]*domain.User, int64, error)

	// SetBlocked flips the block flag and, in the same store transaction,
	// unpublishes every listing the user owns when blocking. Unblocking
	// touches no listings.
	SetBlocked(ctx context.Context, id string, blocked bool) (*domain.User, error)
	// SoftDelete marks the user deleted and, in the same store transaction,
	// soft-deletes and unpublishes every listing they own.
	SoftDelete(ctx context.Context, id string) error

	Stats(ctx context.Context) (*UserStats, error)
}

// UserStats are the aggregate counts for the admin dashboard.
type UserStats struct {
	Total   int64 `json:"total"`
	Owners  int64 `json:"owners"`
	Tenants int64 `json:"tenants"`
	Blocked int64 `json:"blocked"`
}
