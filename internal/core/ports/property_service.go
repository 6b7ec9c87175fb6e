package ports

import (
	"context"

	"github.com/house-hunt/rental-api/internal/core/domain"
)

// SearchPropertiesInput carries the raw, untrusted query parameters of the
// public search endpoint. The service coerces them into a SearchFilter;
// unparseable values fall back to their defaults rather than erroring.
type SearchPropertiesInput struct {
	Query     string
	City      string
	MinPrice  string
	MaxPrice  string
	MinSize   string
	MaxSize   string
	Bedrooms  string // comma-separated integers, OR semantics
	Parking   string // "true"/"false", anything else = off
	Balcony   string
	Amenities string // comma-separated, ALL-of semantics
	Lat       string
	Lng       string
	Radius    string // meters; all three of lat/lng/radius required
	Sort      string
	Page      string
	Limit     string
}

// LocationInput holds a listing's address fields.
type LocationInput struct {
	Address string
	City    string
	Lat     *float64
	Lng     *float64
}

// CreatePropertyInput carries all data needed to create a listing.
type CreatePropertyInput struct {
	Title       string
	Description string
	Location    LocationInput
	Price       float64
	Size        float64
	Bedrooms    int
	Parking     bool
	Balcony     bool
	Amenities   []string
	Images      []string
	IsPublished bool
}

// UpdatePropertyInput carries a partial update; nil fields are unchanged.
type UpdatePropertyInput struct {
	Title       *string
	Description *string
	Address     *string
	City        *string
	Lat         *float64
	Lng         *float64
	Price       *float64
	Size        *float64
	Bedrooms    *int
	Parking     *bool
	Balcony     *bool
	Amenities   []string // nil = unchanged
	Images      []string // nil = unchanged, otherwise appended
}

// PropertyPage is one page of listings plus pagination metadata.
type PropertyPage struct {
	Items      []*domain.Property
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// PropertyService defines the listing use cases.
type PropertyService interface {
	// Search serves the public catalogue; the visibility rule always applies.
	Search(ctx context.Context, input SearchPropertiesInput) (*PropertyPage, error)
	// GetPublic returns a single visible listing or ErrPropertyNotFound.
	GetPublic(ctx context.Context, id string) (*domain.Property, error)
	// ListByOwner returns the public listings of one owner.
	ListByOwner(ctx context.Context, ownerID string, page, limit string) (*PropertyPage, error)
	// ListMine returns the actor's own listings regardless of visibility.
	ListMine(ctx context.Context, actor domain.Actor, page, limit string) (*PropertyPage, error)

	Create(ctx context.Context, actor domain.Actor, input CreatePropertyInput) (*domain.Property, error)
	Update(ctx context.Context, actor domain.Actor, id string, input UpdatePropertyInput) (*domain.Property, error)
	Delete(ctx context.Context, actor domain.Actor, id string) error
	TogglePublish(ctx context.Context, actor domain.Actor, id string) (*domain.Property, error)
	SetOccupancy(ctx context.Context, actor domain.Actor, id string, status string) (*domain.Property, error)
}
