package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/catconnect/cat-listing-api/internal/core/domain"
	"github.com/catconnect/cat-listing-api/internal/core/ports"
)

// AuthService implements registration, login and token checks on top of the
// identity provider and the profile store.
type AuthService struct {
	identity ports.IdentityProvider
	profiles ports.ProfileRepository
	codes    ports.SignUpCodeRepository
	log      zerolog.Logger
}

func NewAuthService(
	identity ports.IdentityProvider,
	profiles ports.ProfileRepository,
	codes ports.SignUpCodeRepository,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{identity: identity, profiles: profiles, codes: codes, log: log}
}

// Register creates the account first, then the profile. A failed profile
// write leaves the account in place.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.Identity, error) {
	identity, err := s.identity.CreateUser(ctx, in.Email, in.Password)
	if err != nil {
		return nil, err
	}

	stored, found, err := s.codes.FindCode(ctx, domain.RoleEmployee)
	if err != nil {
		s.log.Error().Err(err).Str("uid", identity.UID).Msg("sign-up code lookup failed after account creation")
		return nil, fmt.Errorf("read sign-up code: %w", err)
	}

	profile := &domain.Profile{
		ID:    identity.UID,
		Name:  domain.DefaultDisplayName,
		Email: identity.Email,
		Role:  domain.RoleForCode(stored, found, in.SignUpCode),
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		s.log.Error().Err(err).Str("uid", identity.UID).Msg("profile write failed after account creation")
		return nil, fmt.Errorf("create profile: %w", err)
	}

	s.log.Info().Str("uid", identity.UID).Str("role", profile.Role).Msg("user registered")
	return identity, nil
}

// Login looks the account up by email. When a password is supplied it is
// verified and an ID token is issued; without one only the lookup happens.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	if email == "" {
		return nil, domain.ErrUserNotFound
	}

	identity, err := s.identity.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if password == "" {
		return &ports.LoginResult{User: identity}, nil
	}

	if err := s.identity.VerifyPassword(ctx, identity, password); err != nil {
		return nil, err
	}
	token, err := s.identity.IssueToken(ctx, identity)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &ports.LoginResult{User: identity, Token: token}, nil
}

// Logout revokes every token issued to uid so far.
func (s *AuthService) Logout(ctx context.Context, uid string) error {
	if err := s.identity.RevokeTokens(ctx, uid); err != nil {
		return fmt.Errorf("revoke tokens: %w", err)
	}
	s.log.Info().Str("uid", uid).Msg("tokens revoked")
	return nil
}

// Authenticate verifies a bearer credential. The concrete verification
// failure is logged; callers only ever see ErrMissingToken or ErrInvalidToken.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*ports.TokenClaims, error) {
	if token == "" {
		return nil, domain.ErrMissingToken
	}
	claims, err := s.identity.VerifyIDToken(ctx, token)
	if err != nil {
		s.log.Warn().Err(err).Msg("token verification failed")
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}

func (s *AuthService) Profile(ctx context.Context, uid string) (*domain.Profile, error) {
	profile, err := s.profiles.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return profile, nil
}
