package ports

import (
	"context"

	"github.com/house-hunt/rental-api/internal/core/domain"
)

// ListPropertiesAdminInput carries the raw admin property-list parameters.
type ListPropertiesAdminInput struct {
	Status    string // "published" | "unpublished" | "" (all)
	Occupancy string // "available" | "occupied" | "" (all)
	Search    string // case-insensitive match on title or city
	Page      string
	Limit     string
}

// UserPage is one page of accounts plus pagination metadata.
type UserPage struct {
	Items      []*domain.User
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// UserDetail is the admin view of a single account. PropertiesCount is only
// populated for owners.
type UserDetail struct {
	User            *domain.User
	PropertiesCount int64
}

// DashboardStats aggregates the counts shown on the admin dashboard.
type DashboardStats struct {
	Users      UserStats     `json:"users"`
	Properties PropertyStats `json:"properties"`
}

// AdminService defines the moderation use cases. Every method requires an
// admin actor; role enforcement also happens at the routing layer.
type AdminService interface {
	ListUsers(ctx context.Context, role, search, page, limit string) (*UserPage, error)
	GetUser(ctx context.Context, id string) (*UserDetail, error)
	// ToggleBlock flips the block state with the unpublish cascade.
	// Blocking an already-blocked user unblocks them.
	ToggleBlock(ctx context.Context, actor domain.Actor, id string) (*domain.User, error)
	// DeleteUser soft-deletes the account with the delete cascade.
	DeleteUser(ctx context.Context, actor domain.Actor, id string) error

	ListProperties(ctx context.Context, input ListPropertiesAdminInput) (*PropertyPage, error)
	DeleteProperty(ctx context.Context, actor domain.Actor, id string) error

	Stats(ctx context.Context) (*DashboardStats, error)
}
