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

const collectionCats = "cats"

type CatRepository struct {
	col     *mongo.Collection
	timeout time.Duration
}

func NewCatRepository(db *mongo.Database, timeout time.Duration) *CatRepository {
	return &CatRepository{col: db.Collection(collectionCats), timeout: opTimeout(timeout)}
}

// Create inserts a new listing document.
func (r *CatRepository) Create(ctx context.Context, c *domain.Cat) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, c); err != nil {
		return fmt.Errorf("insert cat: %w", err)
	}
	return nil
}

func (r *CatRepository) FindByID(ctx context.Context, id string) (*domain.Cat, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var c domain.Cat
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCatNotFound
		}
		return nil, err
	}
	return &c, nil
}

// List returns every listing, or only those owned by userUID when set.
func (r *CatRepository) List(ctx context.Context, userUID string) ([]*domain.Cat, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	filter := bson.M{}
	if userUID != "" {
		filter["userUid"] = userUID
	}

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find cats: %w", err)
	}
	defer cur.Close(ctx)

	cats := make([]*domain.Cat, 0)
	if err := cur.All(ctx, &cats); err != nil {
		return nil, fmt.Errorf("decode cats: %w", err)
	}
	return cats, nil
}

// Update sets only the fields present in the update.
func (r *CatRepository) Update(ctx context.Context, id string, u domain.CatUpdate) error {
	set := bson.M{}
	if u.Breed != nil {
		set["breed"] = *u.Breed
	}
	if u.Name != nil {
		set["name"] = *u.Name
	}
	if u.Description != nil {
		set["description"] = *u.Description
	}
	if u.Location != nil {
		set["location"] = *u.Location
	}
	return r.updateOne(ctx, id, set)
}

func (r *CatRepository) SetImageURL(ctx context.Context, id, url string) error {
	return r.updateOne(ctx, id, bson.M{"imageUrl": url})
}

// Delete removes the listing. Deleting a missing listing is not an error.
func (r *CatRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if _, err := r.col.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete cat: %w", err)
	}
	return nil
}

func (r *CatRepository) updateOne(ctx context.Context, id string, set bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update cat: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrCatNotFound
	}
	return nil
}

// EnsureIndexes creates the owner index used by the filtered listing query.
func (r *CatRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "userUid", Value: 1}}})
	return err
}
