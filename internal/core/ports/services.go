package ports

import (
	"context"
	"io"

	"github.com/catconnect/cat-listing-api/internal/core/domain"
)

// RegisterInput carries the registration form.
type RegisterInput struct {
	Email      string
	Password   string
	SignUpCode string
}

// LoginResult is returned by a successful login. Token is empty when no
// password was supplied.
type LoginResult struct {
	User  *domain.Identity
	Token string
}

// AuthService covers registration, login, logout and profile lookups.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.Identity, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context, uid string) error
	Authenticate(ctx context.Context, token string) (*TokenClaims, error)
	Profile(ctx context.Context, uid string) (*domain.Profile, error)
}

// CreateCatInput carries a new listing and its image.
type CreateCatInput struct {
	Breed       string
	Name        string
	Description string
	Location    string
	UserUID     string
	FileName    string
	ContentType string
	Size        int64
	Image       io.Reader
}

// CatService covers listing CRUD.
type CatService interface {
	Create(ctx context.Context, in CreateCatInput) (*domain.Cat, error)
	Get(ctx context.Context, id string) (*domain.Cat, error)
	List(ctx context.Context, userUID string) ([]*domain.Cat, error)
	Update(ctx context.Context, id string, update domain.CatUpdate) error
	Delete(ctx context.Context, id string) error
}

// PostMessageInput carries a chat message for a listing.
type PostMessageInput struct {
	CatID     string
	UserID    string
	Text      string
	Timestamp int64
}

// ChatService covers listing chat.
type ChatService interface {
	Post(ctx context.Context, in PostMessageInput) (*domain.Message, error)
	List(ctx context.Context, catID string) ([]*domain.Message, error)
	Delete(ctx context.Context, catID, messageID string) error
}

// FavoriteService covers favorites.
type FavoriteService interface {
	Add(ctx context.Context, fav *domain.Favorite) error
	List(ctx context.Context, favouriteUID string) ([]map[string]any, error)
}

// TweetService relays posts to the social feed.
type TweetService interface {
	Post(ctx context.Context, text string) (string, error)
}
