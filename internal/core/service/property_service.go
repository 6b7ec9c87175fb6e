package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/house-hunt/rental-api/internal/core/domain"
	"github.com/house-hunt/rental-api/internal/core/ports"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxPageLimit = 100
)

type PropertyService struct {
	props  ports.PropertyRepository
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewPropertyService(props ports.PropertyRepository, users ports.UserRepository, logger zerolog.Logger) *PropertyService {
	return &PropertyService{props: props, users: users, logger: logger}
}

// Search serves the public catalogue. Untrusted query parameters are coerced
// into a typed filter; anything unparseable falls back to its default.
func (s *PropertyService) Search(ctx context.Context, input ports.SearchPropertiesInput) (*ports.PropertyPage, error) {
	filter := buildSearchFilter(input)

	items, total, err := s.props.Search(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("property search failed")
		return nil, err
	}
	return newPage(items, total, filter.Page, filter.Limit), nil
}

// GetPublic returns a single listing by id. Listings hidden by the visibility
// rule surface as not found so their existence is never leaked.
func (s *PropertyService) GetPublic(ctx context.Context, id string) (*domain.Property, error) {
	p, err := s.props.FindByID(ctx, id, true)
	if err != nil {
		return nil, err
	}

	// The block/delete cascades keep the stored flags consistent with the
	// owner's standing, but the detail view re-checks the full rule against
	// the live owner record rather than trusting denormalised state.
	owner, err := s.users.FindByID(ctx, p.OwnerID)
	if err != nil || !p.IsPubliclyVisible(owner) {
		return nil, domain.ErrPropertyNotFound
	}
	return p, nil
}

// ListByOwner returns the public listings of one owner. A missing, blocked,
// deleted, or non-owner account reads as not found.
func (s *PropertyService) ListByOwner(ctx context.Context, ownerID string, page, limit string) (*ports.PropertyPage, error) {
	owner, err := s.users.FindByID(ctx, ownerID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	if owner.Role != domain.RoleOwner || owner.IsBlocked {
		return nil, domain.ErrUserNotFound
	}

	filter := ports.SearchFilter{
		PublicOnly: true,
		OwnerID:    ownerID,
		Sort:       ports.SortNewest,
		Page:       parsePage(page),
		Limit:      parseLimit(limit),
	}
	items, total, err := s.props.Search(ctx, filter)
	if err != nil {
		return nil, err
	}
	return newPage(items, total, filter.Page, filter.Limit), nil
}

// ListMine returns the actor's own listings, published or not.
func (s *PropertyService) ListMine(ctx context.Context, actor domain.Actor, page, limit string) (*ports.PropertyPage, error) {
	filter := ports.SearchFilter{
		OwnerID: actor.ID,
		Sort:    ports.SortNewest,
		Page:    parsePage(page),
		Limit:   parseLimit(limit),
	}
	items, total, err := s.props.Search(ctx, filter)
	if err != nil {
		return nil, err
	}
	return newPage(items, total, filter.Page, filter.Limit), nil
}

// Create inserts a new listing for the acting owner. Blocked owners are
// denied; their standing is read fresh from the store, not from the token.
func (s *PropertyService) Create(ctx context.Context, actor domain.Actor, input ports.CreatePropertyInput) (*domain.Property, error) {
	owner, err := s.loadActor(ctx, actor)
	if err != nil {
		return nil, err
	}
	if owner.Role != domain.RoleOwner {
		return nil, domain.ErrForbidden
	}
	if owner.IsBlocked {
		return nil, domain.ErrOwnerBlocked
	}

	now := time.Now().UTC()
	p := &domain.Property{
		Title:       input.Title,
		Description: input.Description,
		OwnerID:     owner.ID,
		Location: domain.Location{
			Address: input.Location.Address,
			City:    input.Location.City,
		},
		Price:           input.Price,
		Size:            input.Size,
		Bedrooms:        input.Bedrooms,
		Parking:         input.Parking,
		Balcony:         input.Balcony,
		Amenities:       trimAll(input.Amenities),
		Images:          input.Images,
		IsPublished:     input.IsPublished,
		OccupancyStatus: domain.OccupancyAvailable,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if input.Location.Lat != nil && input.Location.Lng != nil {
		p.Location.Geo = domain.NewGeoPoint(*input.Location.Lat, *input.Location.Lng)
	}

	if err := s.props.Create(ctx, p); err != nil {
		s.logger.Error().Err(err).Str("owner_id", owner.ID).Msg("failed to create property")
		return nil, err
	}

	s.logger.Info().Str("property_id", p.ID).Str("owner_id", owner.ID).Msg("property created")
	return p, nil
}

// Update applies a partial update to a listing owned by the actor.
func (s *PropertyService) Update(ctx context.Context, actor domain.Actor, id string, input ports.UpdatePropertyInput) (*domain.Property, error) {
	p, err := s.authorize(ctx, actor, id, domain.ActionUpdate)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		p.Title = *input.Title
	}
	if input.Description != nil {
		p.Description = *input.Description
	}
	if input.Address != nil {
		p.Location.Address = *input.Address
	}
	if input.City != nil {
		p.Location.City = *input.City
	}
	if input.Lat != nil && input.Lng != nil {
		p.Location.Geo = domain.NewGeoPoint(*input.Lat, *input.Lng)
	}
	if input.Price != nil {
		p.Price = *input.Price
	}
	if input.Size != nil {
		p.Size = *input.Size
	}
	if input.Bedrooms != nil {
		p.Bedrooms = *input.Bedrooms
	}
	if input.Parking != nil {
		p.Parking = *input.Parking
	}
	if input.Balcony != nil {
		p.Balcony = *input.Balcony
	}
	if input.Amenities != nil {
		p.Amenities = trimAll(input.Amenities)
	}
	if len(input.Images) > 0 {
		p.Images = append(p.Images, input.Images...)
	}
	p.UpdatedAt = time.Now().UTC()

	if err := s.props.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete soft-deletes a listing. Owners delete their own; admins any.
func (s *PropertyService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	if _, err := s.authorize(ctx, actor, id, domain.ActionDelete); err != nil {
		return err
	}
	if err := s.props.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("property_id", id).Str("actor_id", actor.ID).Msg("property soft-deleted")
	return nil
}

// TogglePublish flips the published flag of the actor's listing.
func (s *PropertyService) TogglePublish(ctx context.Context, actor domain.Actor, id string) (*domain.Property, error) {
	p, err := s.authorize(ctx, actor, id, domain.ActionTogglePublish)
	if err != nil {
		return nil, err
	}
	p.IsPublished = !p.IsPublished
	p.UpdatedAt = time.Now().UTC()
	if err := s.props.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// SetOccupancy sets the occupancy status; values outside the enum are
// rejected outright.
func (s *PropertyService) SetOccupancy(ctx context.Context, actor domain.Actor, id string, status string) (*domain.Property, error) {
	next := domain.OccupancyStatus(status)
	if !domain.ValidOccupancy(next) {
		return nil, domain.ErrInvalidOccupancy
	}
	p, err := s.authorize(ctx, actor, id, domain.ActionSetOccupancy)
	if err != nil {
		return nil, err
	}
	p.OccupancyStatus = next
	p.UpdatedAt = time.Now().UTC()
	if err := s.props.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// authorize loads the listing and the actor's live account record and runs
// the mutation policy. The stored block flag wins over whatever the token
// said at issuance time.
func (s *PropertyService) authorize(ctx context.Context, actor domain.Actor, id string, action domain.PropertyAction) (*domain.Property, error) {
	p, err := s.props.FindByID(ctx, id, false)
	if err != nil {
		return nil, err
	}

	fresh, err := s.loadActor(ctx, actor)
	if err != nil {
		return nil, err
	}

	if !fresh.CanMutateProperty(p, action) {
		if fresh.IsBlocked && p.OwnerID == fresh.ID {
			return nil, domain.ErrOwnerBlocked
		}
		return nil, domain.ErrForbidden
	}
	return p, nil
}

func (s *PropertyService) loadActor(ctx context.Context, actor domain.Actor) (domain.Actor, error) {
	u, err := s.users.FindByID(ctx, actor.ID)
	if err != nil {
		return domain.Actor{}, domain.ErrForbidden
	}
	return domain.Actor{ID: u.ID, Role: u.Role, IsBlocked: u.IsBlocked}, nil
}

// --- Query parameter coercion ----------------------------------------------

// buildSearchFilter lowers the raw public search parameters into the typed
// plan. Every malformed value degrades to "filter off" or the default;
// searching never fails on bad input.
func buildSearchFilter(in ports.SearchPropertiesInput) ports.SearchFilter {
	f := ports.SearchFilter{
		PublicOnly: true,
		Text:       strings.TrimSpace(in.Query),
		City:       strings.TrimSpace(in.City),
		Price:      ports.RangeFilter{Min: parseFloat(in.MinPrice), Max: parseFloat(in.MaxPrice)},
		Size:       ports.RangeFilter{Min: parseFloat(in.MinSize), Max: parseFloat(in.MaxSize)},
		Bedrooms:   parseIntList(in.Bedrooms),
		Parking:    parseBool(in.Parking),
		Balcony:    parseBool(in.Balcony),
		Amenities:  parseCSV(in.Amenities),
		Geo:        parseGeo(in.Lat, in.Lng, in.Radius),
		Sort:       parseSort(in.Sort),
		Page:       parsePage(in.Page),
		Limit:      parseLimit(in.Limit),
	}
	return f
}

func parseSort(s string) ports.SortOrder {
	switch s {
	case string(ports.SortPriceAsc):
		return ports.SortPriceAsc
	case string(ports.SortPriceDesc):
		return ports.SortPriceDesc
	default: // "newest", empty, or unknown
		return ports.SortNewest
	}
}

func parsePage(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return defaultPage
	}
	return n
}

func parseLimit(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return defaultLimit
	}
	if n > maxPageLimit {
		return maxPageLimit
	}
	return n
}

func parseFloat(s string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseBool(s string) *bool {
	switch strings.TrimSpace(s) {
	case "true":
		v := true
		return &v
	case "false":
		v := false
		return &v
	default:
		return nil
	}
}

// parseIntList parses "2,3" into [2 3], dropping anything non-numeric.
func parseIntList(s string) []int {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []int
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		out = append(out, n)
	}
	return out
}

func parseCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// parseGeo returns a radius filter only when all three parameters parse.
func parseGeo(lat, lng, radius string) *ports.GeoFilter {
	la := parseFloat(lat)
	ln := parseFloat(lng)
	r := parseFloat(radius)
	if la == nil || ln == nil || r == nil || *r <= 0 {
		return nil
	}
	return &ports.GeoFilter{Lat: *la, Lng: *ln, RadiusMeters: *r}
}

func trimAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if v := strings.TrimSpace(it); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func newPage(items []*domain.Property, total int64, page, limit int) *ports.PropertyPage {
	return &ports.PropertyPage{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
