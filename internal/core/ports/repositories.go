package ports

import (
	"context"

	"github.com/catconnect/cat-listing-api/internal/core/domain"
)

// ProfileRepository stores per-user profiles.
type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	FindByID(ctx context.Context, id string) (*domain.Profile, error)
}

// SignUpCodeRepository reads the shared sign-up codes keyed by role name.
// found is false when no code exists for the role.
type SignUpCodeRepository interface {
	FindCode(ctx context.Context, role string) (code string, found bool, err error)
}

// CatRepository stores listings.
type CatRepository interface {
	Create(ctx context.Context, cat *domain.Cat) error
	FindByID(ctx context.Context, id string) (*domain.Cat, error)
	// List returns all listings, filtered by owner when userUID is non-empty.
	List(ctx context.Context, userUID string) ([]*domain.Cat, error)
	Update(ctx context.Context, id string, update domain.CatUpdate) error
	SetImageURL(ctx context.Context, id, url string) error
	Delete(ctx context.Context, id string) error
}

// MessageRepository stores chat messages.
type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) error
	FindByID(ctx context.Context, id string) (*domain.Message, error)
	// ListByCat returns the listing's messages ordered by timestamp ascending.
	ListByCat(ctx context.Context, catID string) ([]*domain.Message, error)
	Delete(ctx context.Context, id string) error
}

// FavoriteRepository stores favorites keyed by listing id.
type FavoriteRepository interface {
	Upsert(ctx context.Context, fav *domain.Favorite) error
	// List returns favorites, filtered by owner when favouriteUID is non-empty.
	List(ctx context.Context, favouriteUID string) ([]map[string]any, error)
}
