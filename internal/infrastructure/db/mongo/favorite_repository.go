package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/catconnect/cat-listing-api/internal/core/domain"
)

const collectionFavorites = "favorites"

// FavoriteRepository keeps favorites as free-form documents keyed by the
// listing id, so whatever listing payload the client sends round-trips.
type FavoriteRepository struct {
	col     *mongo.Collection
	timeout time.Duration
}

func NewFavoriteRepository(db *mongo.Database, timeout time.Duration) *FavoriteRepository {
	return &FavoriteRepository{col: db.Collection(collectionFavorites), timeout: opTimeout(timeout)}
}

// Upsert replaces the favorite stored under fav.ID, creating it if needed.
func (r *FavoriteRepository) Upsert(ctx context.Context, fav *domain.Favorite) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	doc := bson.M{}
	for k, v := range fav.Document() {
		doc[k] = v
	}
	doc["_id"] = fav.ID

	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": fav.ID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert favorite: %w", err)
	}
	return nil
}

func (r *FavoriteRepository) List(ctx context.Context, favouriteUID string) ([]map[string]any, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	filter := bson.M{}
	if favouriteUID != "" {
		filter[domain.FavoriteOwnerField] = favouriteUID
	}

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find favorites: %w", err)
	}
	defer cur.Close(ctx)

	out := make([]map[string]any, 0)
	for cur.Next(ctx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode favorite: %w", err)
		}
		out = append(out, favoriteView(doc))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate favorites: %w", err)
	}
	return out, nil
}

// favoriteView drops the storage key and exposes the id under "id".
func favoriteView(doc bson.M) map[string]any {
	view := make(map[string]any, len(doc))
	for k, v := range doc {
		if k == "_id" {
			continue
		}
		view[k] = v
	}
	if id, ok := doc["_id"]; ok {
		view["id"] = id
	}
	return view
}

func (r *FavoriteRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: domain.FavoriteOwnerField, Value: 1}}})
	return err
}
