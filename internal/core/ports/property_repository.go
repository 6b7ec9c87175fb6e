package ports

import (
	"context"

	"github.com/house-hunt/rental-api/internal/core/domain"
)

// SortOrder enumerates the supported result orderings.
type SortOrder string

const (
	SortNewest    SortOrder = "newest"
	SortPriceAsc  SortOrder = "price_asc"
	SortPriceDesc SortOrder = "price_desc"
)

// GeoFilter restricts results to listings within RadiusMeters of a point.
// It never influences ordering.
type GeoFilter struct {
	Lat          float64
	Lng          float64
	RadiusMeters float64
}

// RangeFilter is an inclusive numeric range. A nil bound is unbounded.
type RangeFilter struct {
	Min *float64
	Max *float64
}

// SearchFilter is the fully typed search plan lowered into a store query by
// the repository. The service layer owns all parsing and coercion; by the
// time a filter reaches the repository every field is well formed.
type SearchFilter struct {
	// PublicOnly prepends the visibility rule: published, available, not
	// deleted, owner neither blocked nor deleted. Admin queries clear it.
	PublicOnly bool

	Text      string   // full-text match on title+description, empty = off
	City      string   // case-insensitive city match, empty = off
	OwnerID   string   // restrict to one owner, empty = off
	Price     RangeFilter
	Size      RangeFilter
	Bedrooms  []int    // OR semantics, empty = off
	Parking   *bool    // nil = off
	Balcony   *bool    // nil = off
	Amenities []string // ALL-of semantics, empty = off
	Geo       *GeoFilter

	// Admin-only filters.
	Published   *bool
	Occupancy   domain.OccupancyStatus // empty = off
	TitleOrCity string                 // case-insensitive match on either, empty = off

	Sort  SortOrder
	Page  int // 1-based, always >= 1
	Limit int // always in [1, maxPageLimit]
}

// Skip returns the number of rows to drop before the requested page.
func (f SearchFilter) Skip() int64 {
	return int64(f.Page-1) * int64(f.Limit)
}

// PropertyRepository defines persistence operations for listings.
type PropertyRepository interface {
	Create(ctx context.Context, p *domain.Property) error
	// FindByID retrieves a non-deleted property. When publicOnly is true the
	// visibility rule applies and hidden listings surface as not found.
	FindByID(ctx context.Context, id string, publicOnly bool) (*domain.Property, error)
	Update(ctx context.Context, p *domain.Property) error
	// Search returns one page of matches plus the total count ignoring
	// pagination.
	Search(ctx context.Context, filter SearchFilter) ([]*domain.Property, int64, error)
	SoftDelete(ctx context.Context, id string) error
	CountByOwner(ctx context.Context, ownerID string) (int64, error)
	Stats(ctx context.Context) (*PropertyStats, error)
}

// PropertyStats are the aggregate counts for the admin dashboard.
type PropertyStats struct {
	Total     int64 `json:"total"`
	Published int64 `json:"published"`
	Available int64 `json:"available"`
	Occupied  int64 `json:"occupied"`
}
