package domain

import (
	"errors"
	"time"
)

// OccupancyStatus reflects whether a listing is currently rentable.
type OccupancyStatus string

const (
	OccupancyAvailable OccupancyStatus = "available"
	OccupancyOccupied  OccupancyStatus = "occupied"
)

// ValidOccupancy reports whether s is one of the accepted occupancy values.
func ValidOccupancy(s OccupancyStatus) bool {
	return s == OccupancyAvailable || s == OccupancyOccupied
}

var ErrPropertyNotFound = errors.New("property not found")
var ErrForbidden = errors.New("access forbidden")
var ErrOwnerBlocked = errors.New("owner account is blocked")
var ErrInvalidOccupancy = errors.New("invalid occupancy status")

// GeoPoint is a GeoJSON Point. Coordinates are [longitude, latitude],
// matching MongoDB's 2dsphere index convention.
type GeoPoint struct {
	Type        string    `json:"type" bson:"type"`
	Coordinates []float64 `json:"coordinates" bson:"coordinates"`
}

// NewGeoPoint builds a GeoJSON point from a lat/lng pair.
func NewGeoPoint(lat, lng float64) *GeoPoint {
	return &GeoPoint{Type: "Point", Coordinates: []float64{lng, lat}}
}

// Location places a listing on the map. Geo is optional; listings without
// coordinates are simply never matched by radius searches.
type Location struct {
	Address string    `json:"address" bson:"address"`
	City    string    `json:"city" bson:"city"`
	Geo     *GeoPoint `json:"geo,omitempty" bson:"geo,omitempty"`
}

// Property is the listing aggregate. Records are soft-deleted only; every
// repository query excludes is_deleted documents.
type Property struct {
	ID              string          `json:"id" bson:"_id,omitempty"`
	Title           string          `json:"title" bson:"title"`
	Description     string          `json:"description" bson:"description"`
	OwnerID         string          `json:"owner_id" bson:"owner_id"`
	Location        Location        `json:"location" bson:"location"`
	Price           float64         `json:"price" bson:"price"`
	Size            float64         `json:"size" bson:"size"`
	Bedrooms        int             `json:"bedrooms" bson:"bedrooms"`
	Parking         bool            `json:"parking" bson:"parking"`
	Balcony         bool            `json:"balcony" bson:"balcony"`
	Amenities       []string        `json:"amenities" bson:"amenities"`
	Images          []string        `json:"images" bson:"images"`
	IsPublished     bool            `json:"is_published" bson:"is_published"`
	OccupancyStatus OccupancyStatus `json:"occupancy_status" bson:"occupancy_status"`
	IsDeleted       bool            `json:"-" bson:"is_deleted"`
	CreatedAt       time.Time       `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" bson:"updated_at"`
}

// IsPubliclyVisible is the single visibility rule for unauthenticated
// traffic: published, available, not deleted, and the owner in good standing.
func (p *Property) IsPubliclyVisible(owner *User) bool {
	if p == nil || owner == nil {
		return false
	}
	return p.IsPublished &&
		p.OccupancyStatus == OccupancyAvailable &&
		!p.IsDeleted &&
		!owner.IsBlocked &&
		!owner.IsDeleted
}
