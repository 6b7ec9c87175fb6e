package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type locationRequest struct {
	Address string   `json:"address" validate:"required"`
	City    string   `json:"city"    validate:"required"`
	Lat     *float64 `json:"lat,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Lng     *float64 `json:"lng,omitempty" validate:"omitempty,gte=-180,lte=180"`
}

type createPropertyRequest struct {
	Title       string          `json:"title"        validate:"required,min=5,max=200"`
	Description string          `json:"description"  validate:"required,min=20,max=2000"`
	Location    locationRequest `json:"location"     validate:"required"`
	Price       float64         `json:"price"        validate:"required,gte=0"`
	Size        float64         `json:"size"         validate:"required,gte=0"`
	Bedrooms    int             `json:"bedrooms"     validate:"required,gte=1"`
	Parking     bool            `json:"parking"`
	Balcony     bool            `json:"balcony"`
	Amenities   []string        `json:"amenities"`
	Images      []string        `json:"images"       validate:"omitempty,max=10,dive,url"`
	IsPublished bool            `json:"is_published"`
}

// updatePropertyRequest is a partial update; omitted fields stay unchanged.
// Images are appended to the existing sequence, never replaced.
type updatePropertyRequest struct {
	Title       *string  `json:"title,omitempty"       validate:"omitempty,min=5,max=200"`
	Description *string  `json:"description,omitempty" validate:"omitempty,min=20,max=2000"`
	Address     *string  `json:"address,omitempty"`
	City        *string  `json:"city,omitempty"`
	Lat         *float64 `json:"lat,omitempty"  validate:"omitempty,gte=-90,lte=90"`
	Lng         *float64 `json:"lng,omitempty"  validate:"omitempty,gte=-180,lte=180"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Size        *float64 `json:"size,omitempty"  validate:"omitempty,gte=0"`
	Bedrooms    *int     `json:"bedrooms,omitempty" validate:"omitempty,gte=1"`
	Parking     *bool    `json:"parking,omitempty"`
	Balcony     *bool    `json:"balcony,omitempty"`
	Amenities   []string `json:"amenities,omitempty"`
	Images      []string `json:"images,omitempty" validate:"omitempty,max=10,dive,url"`
}

type occupancyRequest struct {
	Status string `json:"status" validate:"required,oneof=available occupied"`
}

// --- Response types ---
// Owned by the transport layer so the JSON contract is not coupled to
// internal domain changes.

type locationResponse struct {
	Address string   `json:"address"`
	City    string   `json:"city"`
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
}

type propertyResponse struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	OwnerID         string           `json:"owner_id"`
	Location        locationResponse `json:"location"`
	Price           float64          `json:"price"`
	Size            float64          `json:"size"`
	Bedrooms        int              `json:"bedrooms"`
	Parking         bool             `json:"parking"`
	Balcony         bool             `json:"balcony"`
	Amenities       []string         `json:"amenities"`
	Images          []string         `json:"images"`
	IsPublished     bool             `json:"is_published"`
	OccupancyStatus string           `json:"occupancy_status"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listPropertiesResponse struct {
	Data       []propertyResponse `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}
