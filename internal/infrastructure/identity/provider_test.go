package identity

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/catconnect/cat-listing-api/internal/core/domain"
)

type memRepo struct {
	byUID map[string]*domain.Identity
}

func newMemRepo() *memRepo {
	return &memRepo{byUID: make(map[string]*domain.Identity)}
}

func (r *memRepo) Create(_ context.Context, id *domain.Identity) error {
	for _, existing := range r.byUID {
		if existing.Email == id.Email {
			return domain.ErrUserExists
		}
	}
	clone := *id
	r.byUID[id.UID] = &clone
	return nil
}

func (r *memRepo) FindByEmail(_ context.Context, email string) (*domain.Identity, error) {
	for _, id := range r.byUID {
		if id.Email == email {
			clone := *id
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memRepo) FindByUID(_ context.Context, uid string) (*domain.Identity, error) {
	id, ok := r.byUID[uid]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *id
	return &clone, nil
}

type memRevocations struct {
	at map[string]int64
}

func (m *memRevocations) RevokedAt(_ context.Context, uid string) (int64, bool, error) {
	v, ok := m.at[uid]
	return v, ok, nil
}

func (m *memRevocations) Revoke(_ context.Context, uid string, at int64) error {
	m.at[uid] = at
	return nil
}

type fixture struct {
	provider *Provider
	repo     *memRepo
	clock    time.Time
}

func newFixture() *fixture {
	return newFixtureWithPolicy(6)
}

func newFixtureWithPolicy(minPassword int) *fixture {
	f := &fixture{repo: newMemRepo(), clock: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	f.provider = NewProvider(f.repo, &memRevocations{at: map[string]int64{}}, "test-secret", time.Hour, minPassword)
	f.provider.now = func() time.Time { return f.clock }
	return f
}

func TestProvider_CreateUserValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if _, err := f.provider.CreateUser(ctx, " ", "secret1"); !errors.Is(err, domain.ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
	if _, err := f.provider.CreateUser(ctx, "Tom <tom@x.com>", "secret1"); !errors.Is(err, domain.ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail for display-name form, got %v", err)
	}
	if _, err := f.provider.CreateUser(ctx, "tom@x.com", "123"); !errors.Is(err, domain.ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}

	id, err := f.provider.CreateUser(ctx, "Tom@X.com", "secret1")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if id.Email != "tom@x.com" || id.UID == "" {
		t.Fatalf("unexpected identity: %+v", id)
	}
	if id.PasswordHash == "secret1" {
		t.Fatalf("password stored in clear")
	}
	if _, err := f.provider.CreateUser(ctx, "tom@x.com", "another1"); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestProvider_PasswordPolicy(t *testing.T) {
	ctx := context.Background()

	lax := newFixtureWithPolicy(0)
	if _, err := lax.provider.CreateUser(ctx, "a@x.com", "p"); err != nil {
		t.Fatalf("single character password rejected by default policy: %v", err)
	}
	if _, err := lax.provider.CreateUser(ctx, "b@x.com", ""); !errors.Is(err, domain.ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword for empty password, got %v", err)
	}

	strict := newFixtureWithPolicy(8)
	_, err := strict.provider.CreateUser(ctx, "c@x.com", "short12")
	if !errors.Is(err, domain.ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
	if !strings.Contains(err.Error(), "at least 8") {
		t.Fatalf("expected configured minimum in message, got %q", err)
	}
}

func TestProvider_PasswordAndToken(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, _ := f.provider.CreateUser(ctx, "a@x.com", "secret1")
	found, err := f.provider.GetUserByEmail(ctx, "A@x.com")
	if err != nil || found.UID != created.UID {
		t.Fatalf("lookup failed: %+v %v", found, err)
	}

	if err := f.provider.VerifyPassword(ctx, found, "nope-nope"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if err := f.provider.VerifyPassword(ctx, found, "secret1"); err != nil {
		t.Fatalf("verify failed: %v", err)
	}

	token, err := f.provider.IssueToken(ctx, found)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	claims, err := f.provider.VerifyIDToken(ctx, token)
	if err != nil {
		t.Fatalf("verify token failed: %v", err)
	}
	if claims.UID != created.UID || claims.Email != "a@x.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestProvider_VerifyRejects(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	user, _ := f.provider.CreateUser(ctx, "a@x.com", "secret1")
	token, _ := f.provider.IssueToken(ctx, user)

	t.Run("malformed", func(t *testing.T) {
		if _, err := f.provider.VerifyIDToken(ctx, "not-a-token"); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		forged := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
			UID: user.UID,
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    issuer,
				IssuedAt:  jwt.NewNumericDate(f.clock),
				ExpiresAt: jwt.NewNumericDate(f.clock.Add(time.Hour)),
			},
		})
		signed, _ := forged.SignedString([]byte("other-secret"))
		if _, err := f.provider.VerifyIDToken(ctx, signed); err == nil {
			t.Fatalf("expected signature error")
		}
	})

	t.Run("expired", func(t *testing.T) {
		saved := f.clock
		f.clock = f.clock.Add(2 * time.Hour)
		defer func() { f.clock = saved }()
		if _, err := f.provider.VerifyIDToken(ctx, token); !errors.Is(err, jwt.ErrTokenExpired) {
			t.Fatalf("expected ErrTokenExpired, got %v", err)
		}
	})

	t.Run("disabled", func(t *testing.T) {
		f.repo.byUID[user.UID].Disabled = true
		defer func() { f.repo.byUID[user.UID].Disabled = false }()
		if _, err := f.provider.VerifyIDToken(ctx, token); !errors.Is(err, errUserDisabled) {
			t.Fatalf("expected errUserDisabled, got %v", err)
		}
	})
}

func TestProvider_RevokeTokens(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	user, _ := f.provider.CreateUser(ctx, "a@x.com", "secret1")
	old, _ := f.provider.IssueToken(ctx, user)

	f.clock = f.clock.Add(time.Minute)
	if err := f.provider.RevokeTokens(ctx, user.UID); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	if _, err := f.provider.VerifyIDToken(ctx, old); !errors.Is(err, domain.ErrTokenRevoked) {
		t.Fatalf("expected ErrTokenRevoked, got %v", err)
	}

	fresh, _ := f.provider.IssueToken(ctx, user)
	if _, err := f.provider.VerifyIDToken(ctx, fresh); err != nil {
		t.Fatalf("fresh token rejected: %v", err)
	}
}
