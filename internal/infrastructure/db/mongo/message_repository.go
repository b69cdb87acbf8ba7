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

const collectionMessages = "messages"

type MessageRepository struct {
	col     *mongo.Collection
	timeout time.Duration
}

func NewMessageRepository(db *mongo.Database, timeout time.Duration) *MessageRepository {
	return &MessageRepository{col: db.Collection(collectionMessages), timeout: opTimeout(timeout)}
}

func (r *MessageRepository) Create(ctx context.Context, m *domain.Message) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, m); err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

func (r *MessageRepository) FindByID(ctx context.Context, id string) (*domain.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var m domain.Message
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMessageNotFound
		}
		return nil, err
	}
	return &m, nil
}

// ListByCat returns the listing's messages sorted by timestamp ascending.
func (r *MessageRepository) ListByCat(ctx context.Context, catID string) ([]*domain.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	filter, opts := catMessagesQuery(catID)
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find messages: %w", err)
	}
	defer cur.Close(ctx)

	msgs := make([]*domain.Message, 0)
	if err := cur.All(ctx, &msgs); err != nil {
		return nil, fmt.Errorf("decode messages: %w", err)
	}
	return msgs, nil
}

// catMessagesQuery selects one listing's messages, oldest first.
func catMessagesQuery(catID string) (bson.M, *options.FindOptions) {
	return bson.M{"catId": catID}, options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
}

func (r *MessageRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if _, err := r.col.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	return nil
}

// EnsureIndexes backs the per-listing, time-ordered chat query.
func (r *MessageRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "catId", Value: 1}, {Key: "timestamp", Value: 1}},
	})
	return err
}
