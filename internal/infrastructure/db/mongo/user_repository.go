package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/house-hunt/rental-api/internal/core/domain"
	"github.com/house-hunt/rental-api/internal/core/ports"
)

const collectionUsers = "users"

type UserRepository struct {
	db    *mongo.Database
	users *mongo.Collection
	props *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		db:    db,
		users: db.Collection(collectionUsers),
		props: db.Collection(collectionProperties),
	}
}

type mongoUser struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	Role         string             `bson:"role"`
	Phone        string             `bson:"phone,omitempty"`
	ContactInfo  string             `bson:"contact_info,omitempty"`
	IsBlocked    bool               `bson:"is_blocked"`
	IsDeleted    bool               `bson:"is_deleted"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func (mu mongoUser) toDomain() *domain.User {
	return &domain.User{
		ID:           mu.ID.Hex(),
		Name:         mu.Name,
		Email:        mu.Email,
		PasswordHash: mu.PasswordHash,
		Role:         mu.Role,
		Phone:        mu.Phone,
		ContactInfo:  mu.ContactInfo,
		IsBlocked:    mu.IsBlocked,
		IsDeleted:    mu.IsDeleted,
		CreatedAt:    mu.CreatedAt,
		UpdatedAt:    mu.UpdatedAt,
	}
}

// notDeleted is prepended to every user lookup; soft-deleted accounts are
// invisible through this repository.
func notDeleted(filter bson.M) bson.M {
	filter["is_deleted"] = false
	return filter
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoUser{
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Role:         user.Role,
		Phone:        user.Phone,
		ContactInfo:  user.ContactInfo,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}

	res, err := r.users.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.users.FindOne(ctx, notDeleted(bson.M{"_id": oid})).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain(), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.users.FindOne(ctx, notDeleted(bson.M{"email": email})).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain(), nil
}

// UpdateProfile sets the given contact fields; empty values leave the stored
// field untouched.
func (r *UserRepository) UpdateProfile(ctx context.Context, id string, name, phone, contactInfo string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"updated_at": time.Now().UTC()}
	if name != "" {
		set["name"] = name
	}
	if phone != "" {
		set["phone"] = phone
	}
	if contactInfo != "" {
		set["contact_info"] = contactInfo
	}

	var mu mongoUser
	err = r.users.FindOneAndUpdate(ctx,
		notDeleted(bson.M{"_id": oid}),
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&mu)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return mu.toDomain(), nil
}

func (r *UserRepository) List(ctx context.Context, f ports.ListUsersFilter) ([]*domain.User, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := notDeleted(bson.M{})
	if f.Role != "" {
		query["role"] = f.Role
	}
	if f.Search != "" {
		re := ciRegex(f.Search)
		query["$or"] = bson.A{
			bson.M{"name": re},
			bson.M{"email": re},
		}
	}

	total, err := r.users.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(f.Page-1) * int64(f.Limit)).
		SetLimit(int64(f.Limit))

	cur, err := r.users.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var docs []mongoUser
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, err
	}

	out := make([]*domain.User, len(docs))
	for i, mu := range docs {
		out[i] = mu.toDomain()
	}
	return out, total, nil
}

// SetBlocked flips the block flag. Blocking also unpublishes every listing
// the user owns, inside one transaction, so a concurrent reader never sees a
// blocked owner with published listings. Unblocking republishes nothing.
func (r *UserRepository) SetBlocked(ctx context.Context, id string, blocked bool) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	var updated mongoUser
	err = r.inTransaction(ctx, func(sc mongo.SessionContext) error {
		err := r.users.FindOneAndUpdate(sc,
			notDeleted(bson.M{"_id": oid}),
			bson.M{"$set": bson.M{"is_blocked": blocked, "updated_at": time.Now().UTC()}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updated)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return domain.ErrUserNotFound
			}
			return err
		}

		if blocked {
			_, err = r.props.UpdateMany(sc,
				bson.M{"owner_id": id},
				bson.M{"$set": bson.M{"is_published": false, "updated_at": time.Now().UTC()}},
			)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated.toDomain(), nil
}

// SoftDelete marks the user deleted and cascades soft delete plus unpublish
// to all their listings in the same transaction.
func (r *UserRepository) SoftDelete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	return r.inTransaction(ctx, func(sc mongo.SessionContext) error {
		res, err := r.users.UpdateOne(sc,
			notDeleted(bson.M{"_id": oid}),
			bson.M{"$set": bson.M{"is_deleted": true, "updated_at": time.Now().UTC()}},
		)
		if err != nil {
			return err
		}
		if res.MatchedCount == 0 {
			return domain.ErrUserNotFound
		}

		_, err = r.props.UpdateMany(sc,
			bson.M{"owner_id": id},
			bson.M{"$set": bson.M{"is_deleted": true, "is_published": false, "updated_at": time.Now().UTC()}},
		)
		return err
	})
}

func (r *UserRepository) inTransaction(ctx context.Context, fn func(sc mongo.SessionContext) error) error {
	session, err := r.db.Client().StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

// Stats returns the dashboard aggregates over non-deleted accounts.
func (r *UserRepository) Stats(ctx context.Context) (*ports.UserStats, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	stats := &ports.UserStats{}
	counts := []struct {
		dst    *int64
		filter bson.M
	}{
		{&stats.Total, notDeleted(bson.M{})},
		{&stats.Owners, notDeleted(bson.M{"role": domain.RoleOwner})},
		{&stats.Tenants, notDeleted(bson.M{"role": domain.RoleTenant})},
		{&stats.Blocked, notDeleted(bson.M{"is_blocked": true})},
	}
	for _, c := range counts {
		n, err := r.users.CountDocuments(ctx, c.filter)
		if err != nil {
			return nil, err
		}
		*c.dst = n
	}
	return stats, nil
}

// EnsureIndexes creates the unique email index and list-query indexes.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "role", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.users.Indexes().CreateMany(ctx, indexes)
	return err
}
