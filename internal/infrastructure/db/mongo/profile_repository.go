package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/catconnect/cat-listing-api/internal/core/domain"
)

const (
	collectionUsers       = "users"
	collectionSignUpCodes = "signUpCodes"
)

type ProfileRepository struct {
	col     *mongo.Collection
	timeout time.Duration
}

func NewProfileRepository(db *mongo.Database, timeout time.Duration) *ProfileRepository {
	return &ProfileRepository{col: db.Collection(collectionUsers), timeout: opTimeout(timeout)}
}

func (r *ProfileRepository) Create(ctx context.Context, p *domain.Profile) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

func (r *ProfileRepository) FindByID(ctx context.Context, id string) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var p domain.Profile
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &p, nil
}

// SignUpCodeRepository reads documents of the form {_id: <role>, code: <value>}.
type SignUpCodeRepository struct {
	col     *mongo.Collection
	timeout time.Duration
}

func NewSignUpCodeRepository(db *mongo.Database, timeout time.Duration) *SignUpCodeRepository {
	return &SignUpCodeRepository{col: db.Collection(collectionSignUpCodes), timeout: opTimeout(timeout)}
}

type signUpCodeDoc struct {
	Role string `bson:"_id"`
	Code string `bson:"code"`
}

func (r *SignUpCodeRepository) FindCode(ctx context.Context, role string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var doc signUpCodeDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": role}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("find sign-up code: %w", err)
	}
	return doc.Code, true, nil
}
