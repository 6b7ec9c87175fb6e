package mongo

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/house-hunt/rental-api/internal/core/domain"
	"github.com/house-hunt/rental-api/internal/core/ports"
)

const collectionProperties = "properties"

// earthRadiusMeters converts a radius in meters to the radians expected by
// $centerSphere (WGS84 equatorial radius).
const earthRadiusMeters = 6378137.0

type PropertyRepository struct {
	col *mongo.Collection
}

func NewPropertyRepository(db *mongo.Database) *PropertyRepository {
	return &PropertyRepository{col: db.Collection(collectionProperties)}
}

// Create inserts a new listing document with a fresh hex id.
func (r *PropertyRepository) Create(ctx context.Context, p *domain.Property) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if p.ID == "" {
		p.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.col.InsertOne(ctx, p)
	return err
}

// FindByID retrieves a non-deleted listing. With publicOnly set, unpublished
// or occupied listings read as not found.
func (r *PropertyRepository) FindByID(ctx context.Context, id string, publicOnly bool) (*domain.Property, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": id, "is_deleted": false}
	if publicOnly {
		filter["is_published"] = true
		filter["occupancy_status"] = domain.OccupancyAvailable
	}

	var p domain.Property
	err := r.col.FindOne(ctx, filter).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPropertyNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Update replaces the stored document.
func (r *PropertyRepository) Update(ctx context.Context, p *domain.Property) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": p.ID, "is_deleted": false}, p)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrPropertyNotFound
	}
	return nil
}

// Search lowers the typed filter into a Mongo query and returns one page of
// matches plus the total count ignoring pagination.
func (r *PropertyRepository) Search(ctx context.Context, f ports.SearchFilter) ([]*domain.Property, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := lowerFilter(f)

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(sortSpec(f.Sort)).
		SetSkip(f.Skip()).
		SetLimit(int64(f.Limit))

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var items []*domain.Property
	if err := cur.All(ctx, &items); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// lowerFilter translates the filter plan into bson. The PublicOnly flags are
// sufficient for the visibility rule because the moderation cascades keep
// is_published/is_deleted consistent with the owner's standing in the same
// transaction that changes it.
func lowerFilter(f ports.SearchFilter) bson.M {
	query := bson.M{"is_deleted": false}

	if f.PublicOnly {
		query["is_published"] = true
		query["occupancy_status"] = domain.OccupancyAvailable
	}
	if f.Text != "" {
		query["$text"] = bson.M{"$search": f.Text}
	}
	if f.TitleOrCity != "" {
		re := ciRegex(f.TitleOrCity)
		query["$or"] = bson.A{
			bson.M{"title": re},
			bson.M{"location.city": re},
		}
	}
	if f.City != "" {
		query["location.city"] = ciRegex(f.City)
	}
	if f.OwnerID != "" {
		query["owner_id"] = f.OwnerID
	}
	if rng := rangeQuery(f.Price); rng != nil {
		query["price"] = rng
	}
	if rng := rangeQuery(f.Size); rng != nil {
		query["size"] = rng
	}
	if len(f.Bedrooms) > 0 {
		query["bedrooms"] = bson.M{"$in": f.Bedrooms}
	}
	if f.Parking != nil {
		query["parking"] = *f.Parking
	}
	if f.Balcony != nil {
		query["balcony"] = *f.Balcony
	}
	if len(f.Amenities) > 0 {
		query["amenities"] = bson.M{"$all": f.Amenities}
	}
	if f.Geo != nil {
		// $geoWithin rather than $near: it composes with $text and count
		// queries and imposes no ordering, matching the order-free contract.
		query["location.geo"] = bson.M{
			"$geoWithin": bson.M{
				"$centerSphere": bson.A{
					bson.A{f.Geo.Lng, f.Geo.Lat},
					f.Geo.RadiusMeters / earthRadiusMeters,
				},
			},
		}
	}
	if f.Published != nil {
		query["is_published"] = *f.Published
	}
	if f.Occupancy != "" {
		query["occupancy_status"] = f.Occupancy
	}
	return query
}

func rangeQuery(r ports.RangeFilter) bson.M {
	if r.Min == nil && r.Max == nil {
		return nil
	}
	rng := bson.M{}
	if r.Min != nil {
		rng["$gte"] = *r.Min
	}
	if r.Max != nil {
		rng["$lte"] = *r.Max
	}
	return rng
}

func ciRegex(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}

func sortSpec(order ports.SortOrder) bson.D {
	switch order {
	case ports.SortPriceAsc:
		return bson.D{{Key: "price", Value: 1}}
	case ports.SortPriceDesc:
		return bson.D{{Key: "price", Value: -1}}
	default:
		return bson.D{{Key: "created_at", Value: -1}}
	}
}

// SoftDelete marks one listing deleted. No cascade runs upward.
func (r *PropertyRepository) SoftDelete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "is_deleted": false},
		bson.M{"$set": bson.M{"is_deleted": true, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrPropertyNotFound
	}
	return nil
}

// CountByOwner counts an owner's non-deleted listings.
func (r *PropertyRepository) CountByOwner(ctx context.Context, ownerID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.col.CountDocuments(ctx, bson.M{"owner_id": ownerID, "is_deleted": false})
}

// Stats returns the dashboard aggregates over non-deleted listings.
func (r *PropertyRepository) Stats(ctx context.Context) (*ports.PropertyStats, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	stats := &ports.PropertyStats{}
	counts := []struct {
		dst    *int64
		filter bson.M
	}{
		{&stats.Total, bson.M{"is_deleted": false}},
		{&stats.Published, bson.M{"is_deleted": false, "is_published": true}},
		{&stats.Available, bson.M{"is_deleted": false, "is_published": true, "occupancy_status": domain.OccupancyAvailable}},
		{&stats.Occupied, bson.M{"is_deleted": false, "occupancy_status": domain.OccupancyOccupied}},
	}
	for _, c := range counts {
		n, err := r.col.CountDocuments(ctx, c.filter)
		if err != nil {
			return nil, err
		}
		*c.dst = n
	}
	return stats, nil
}

// EnsureIndexes creates the indexes backing search, geo and sorting.
func (r *PropertyRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "title", Value: "text"}, {Key: "description", Value: "text"}}},
		{Keys: bson.D{{Key: "location.geo", Value: "2dsphere"}}},
		{Keys: bson.D{{Key: "location.city", Value: 1}}},
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		{Keys: bson.D{{Key: "bedrooms", Value: 1}, {Key: "price", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
