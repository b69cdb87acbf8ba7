package ports

import (
	"context"

	"github.com/catconnect/cat-listing-api/internal/core/domain"
)

// TokenClaims is the decoded content of a verified ID token.
type TokenClaims struct {
	UID      string
	Email    string
	IssuedAt int64
}

// IdentityProvider is the identity service: it owns accounts and credentials
// and is the only component that issues or verifies ID tokens.
type IdentityProvider interface {
	CreateUser(ctx context.Context, email, password string) (*domain.Identity, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.Identity, error)
	VerifyPassword(ctx context.Context, identity *domain.Identity, password string) error
	IssueToken(ctx context.Context, identity *domain.Identity) (string, error)
	VerifyIDToken(ctx context.Context, token string) (*TokenClaims, error)
	RevokeTokens(ctx context.Context, uid string) error
}

// IdentityRepository persists identity-service accounts.
type IdentityRepository interface {
	Create(ctx context.Context, identity *domain.Identity) error
	FindByEmail(ctx context.Context, email string) (*domain.Identity, error)
	FindByUID(ctx context.Context, uid string) (*domain.Identity, error)
}

// RevocationStore records when a user's tokens were last revoked.
type RevocationStore interface {
	RevokedAt(ctx context.Context, uid string) (int64, bool, error)
	Revoke(ctx context.Context, uid string, at int64) error
}
