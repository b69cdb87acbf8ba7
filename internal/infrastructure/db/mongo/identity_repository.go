package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/catconnect/cat-listing-api/internal/core/domain"
)

const collectionIdentities = "identities"

// IdentityRepository stores identity-provider accounts. Email uniqueness is
// enforced by a unique index.
type IdentityRepository struct {
	col     *mongo.Collection
	timeout time.Duration
}

func NewIdentityRepository(db *mongo.Database, timeout time.Duration) *IdentityRepository {
	return &IdentityRepository{col: db.Collection(collectionIdentities), timeout: opTimeout(timeout)}
}

type mongoIdentity struct {
	UID          string `bson:"_id"`
	Email        string `bson:"email"`
	PasswordHash string `bson:"password_hash"`
	Disabled     bool   `bson:"disabled"`
	CreatedAt    int64  `bson:"created_at"`
}

func (r *IdentityRepository) Create(ctx context.Context, identity *domain.Identity) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	doc := mongoIdentity{
		UID:          identity.UID,
		Email:        identity.Email,
		PasswordHash: identity.PasswordHash,
		Disabled:     identity.Disabled,
		CreatedAt:    identity.CreatedAt.Unix(),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("insert identity: %w", err)
	}
	return nil
}

func (r *IdentityRepository) FindByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *IdentityRepository) FindByUID(ctx context.Context, uid string) (*domain.Identity, error) {
	return r.findOne(ctx, bson.M{"_id": uid})
}

func (r *IdentityRepository) findOne(ctx context.Context, filter bson.M) (*domain.Identity, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var mi mongoIdentity
	if err := r.col.FindOne(ctx, filter).Decode(&mi); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find identity: %w", err)
	}

	return &domain.Identity{
		UID:          mi.UID,
		Email:        mi.Email,
		PasswordHash: mi.PasswordHash,
		Disabled:     mi.Disabled,
		CreatedAt:    unixToTime(mi.CreatedAt),
	}, nil
}

// EnsureIndexes creates the unique email index.
func (r *IdentityRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
