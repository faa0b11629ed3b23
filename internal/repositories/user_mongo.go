package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-social-network/internal/logger"
	"github.com/sbilibin2017/gw-social-network/internal/models"
	"github.com/sbilibin2017/gw-social-network/internal/services"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// UsersCollection is the MongoDB collection holding users.
const UsersCollection = "users"

// userDocument is the stored shape of a user in MongoDB.
type userDocument struct {
	ID           string     `bson:"_id"`
	Username     string     `bson:"username"`
	Email        string     `bson:"email"`
	FullName     string     `bson:"fullName"`
	Avatar       string     `bson:"avatar"`
	Gender       string     `bson:"gender"`
	Address      string     `bson:"address"`
	DOB          *time.Time `bson:"dob,omitempty"`
	PasswordHash string     `bson:"passwordHash"`
	PasswordSalt string     `bson:"passwordSalt"`
	Verified     bool       `bson:"verified"`
	EmailToken   string     `bson:"emailToken"`
	Since        time.Time  `bson:"since"`
	UpdatedAt    time.Time  `bson:"updatedAt"`
}

func newUserDocument(u *models.User) *userDocument {
	return &userDocument{
		ID:           u.ID.String(),
		Username:     u.Username,
		Email:        u.Email,
		FullName:     u.FullName,
		Avatar:       u.Avatar,
		Gender:       u.Gender,
		Address:      u.Address,
		DOB:          u.DOB,
		PasswordHash: u.PasswordHash,
		PasswordSalt: u.PasswordSalt,
		Verified:     u.Verified,
		EmailToken:   u.EmailToken,
		Since:        u.Since,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (d *userDocument) toUser() (*models.User, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("parse user id %q: %w", d.ID, err)
	}
	return &models.User{
		ID:           id,
		Username:     d.Username,
		Email:        d.Email,
		FullName:     d.FullName,
		Avatar:       d.Avatar,
		Gender:       d.Gender,
		Address:      d.Address,
		DOB:          d.DOB,
		PasswordHash: d.PasswordHash,
		PasswordSalt: d.PasswordSalt,
		Verified:     d.Verified,
		EmailToken:   d.EmailToken,
		Since:        d.Since,
		UpdatedAt:    d.UpdatedAt,
	}, nil
}

// UserMongoRepository stores users in a MongoDB collection.
// It serves both read and write sides of the account store.
type UserMongoRepository struct {
	coll *mongo.Collection
}

func NewUserMongoRepository(db *mongo.Database) *UserMongoRepository {
	return &UserMongoRepository{coll: db.Collection(UsersCollection)}
}

// EnsureIndexes creates the unique username and email indexes.
func (r *UserMongoRepository) EnsureIndexes(ctx context.Context) error {
	names, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	logger.FromContext(ctx).Infow("collection", UsersCollection, "indexes", names, "error", err)
	if err != nil {
		return fmt.Errorf("create user indexes: %w", err)
	}
	return nil
}

func (r *UserMongoRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.findOne(ctx, bson.D{{Key: "_id", Value: id.String()}})
}

func (r *UserMongoRepository) GetByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	identifier = models.NormalizeIdentifier(identifier)
	return r.findOne(ctx, bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "username", Value: identifier}},
		bson.D{{Key: "email", Value: identifier}},
	}}})
}

func (r *UserMongoRepository) findOne(ctx context.Context, filter bson.D) (*models.User, error) {
	var doc userDocument
	err := r.coll.FindOne(ctx, filter).Decode(&doc)

	logger.FromContext(ctx).Infow("collection", UsersCollection, "filter", filter, "result", doc.ID, "error", err)

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, services.ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toUser()
}

func (r *UserMongoRepository) Create(ctx context.Context, u *models.User) error {
	_, err := r.coll.InsertOne(ctx, newUserDocument(u))

	logger.FromContext(ctx).Infow("collection", UsersCollection, "insert", u.ID, "error", err)

	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return services.ErrDuplicateIdentifier
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// Update replaces the stored document; Since is kept from the caller's copy.
func (r *UserMongoRepository) Update(ctx context.Context, u *models.User) error {
	res, err := r.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: u.ID.String()}}, newUserDocument(u))

	var matched int64
	if res != nil {
		matched = res.MatchedCount
	}
	logger.FromContext(ctx).Infow("collection", UsersCollection, "replace", u.ID, "result", matched, "error", err)

	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return services.ErrDuplicateIdentifier
		}
		return fmt.Errorf("update user: %w", err)
	}
	if matched == 0 {
		return services.ErrNotFound
	}
	return nil
}

func (r *UserMongoRepository) MarkVerified(ctx context.Context, id uuid.UUID) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id.String()}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "verified", Value: true},
			{Key: "updatedAt", Value: time.Now().UTC()},
		}}},
	)

	var matched int64
	if res != nil {
		matched = res.MatchedCount
	}
	logger.FromContext(ctx).Infow("collection", UsersCollection, "verify", id, "result", matched, "error", err)

	if err != nil {
		return fmt.Errorf("mark user verified: %w", err)
	}
	if matched == 0 {
		return services.ErrNotFound
	}
	return nil
}
