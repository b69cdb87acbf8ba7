// Package identity is the identity service used by the API: it owns user
// accounts and password credentials and issues and verifies HS256 ID tokens.
//
// Revocation is time based: RevokeTokens records "now" for a uid and every
// token for that uid issued earlier is rejected from then on.
package identity

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/catconnect/cat-listing-api/internal/core/domain"
	"github.com/catconnect/cat-listing-api/internal/core/ports"
)

const (
	issuer          = "cat-listing-api"
	defaultTokenTTL = time.Hour
)

var errUserDisabled = errors.New("user account is disabled")

// Claims is the ID token payload.
type Claims struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type Provider struct {
	repo        ports.IdentityRepository
	revocations ports.RevocationStore
	secret      []byte
	tokenTTL    time.Duration
	minPassword int
	now         func() time.Time
}

// NewProvider builds the identity service. minPassword below 1 still
// rejects empty passwords.
func NewProvider(repo ports.IdentityRepository, revocations ports.RevocationStore, secret string, tokenTTL time.Duration, minPassword int) *Provider {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	if minPassword < 1 {
		minPassword = 1
	}
	return &Provider{
		repo:        repo,
		revocations: revocations,
		secret:      []byte(secret),
		tokenTTL:    tokenTTL,
		minPassword: minPassword,
		now:         time.Now,
	}
}

// CreateUser validates the credentials and stores a new account.
func (p *Provider) CreateUser(ctx context.Context, email, password string) (*domain.Identity, error) {
	email = strings.TrimSpace(email)
	if !validEmail(email) {
		return nil, domain.ErrInvalidEmail
	}
	if len(password) < p.minPassword {
		return nil, fmt.Errorf("%w: at least %d characters required", domain.ErrWeakPassword, p.minPassword)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	identity := &domain.Identity{
		UID:          strings.ReplaceAll(uuid.NewString(), "-", ""),
		Email:        strings.ToLower(email),
		PasswordHash: string(hash),
		CreatedAt:    p.now().UTC(),
	}
	if err := p.repo.Create(ctx, identity); err != nil {
		return nil, err
	}
	return identity, nil
}

func (p *Provider) GetUserByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	return p.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

func (p *Provider) VerifyPassword(_ context.Context, identity *domain.Identity, password string) error {
	if identity.Disabled {
		return domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(password)) != nil {
		return domain.ErrInvalidCredentials
	}
	return nil
}

func (p *Provider) IssueToken(_ context.Context, identity *domain.Identity) (string, error) {
	now := p.now()
	claims := Claims{
		UID:   identity.UID,
		Email: identity.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   identity.UID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
}

// VerifyIDToken checks signature, issuer and expiry, then rejects tokens of
// disabled accounts and tokens issued before the last revocation.
func (p *Provider) VerifyIDToken(ctx context.Context, token string) (*ports.TokenClaims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return p.secret, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(p.now),
	)
	if err != nil {
		return nil, fmt.Errorf("parse id token: %w", err)
	}
	if claims.UID == "" || claims.IssuedAt == nil {
		return nil, fmt.Errorf("parse id token: %w", jwt.ErrTokenInvalidClaims)
	}

	identity, err := p.repo.FindByUID(ctx, claims.UID)
	if err != nil {
		return nil, fmt.Errorf("load token subject: %w", err)
	}
	if identity.Disabled {
		return nil, errUserDisabled
	}

	iat := claims.IssuedAt.Unix()
	if p.revocations != nil {
		revokedAt, found, err := p.revocations.RevokedAt(ctx, claims.UID)
		if err != nil {
			return nil, err
		}
		if found && iat < revokedAt {
			return nil, domain.ErrTokenRevoked
		}
	}

	return &ports.TokenClaims{UID: claims.UID, Email: claims.Email, IssuedAt: iat}, nil
}

// RevokeTokens invalidates every token issued to uid before now.
func (p *Provider) RevokeTokens(ctx context.Context, uid string) error {
	if p.revocations == nil {
		return errors.New("token revocation is not configured")
	}
	return p.revocations.Revoke(ctx, uid, p.now().Unix())
}

func validEmail(email string) bool {
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
