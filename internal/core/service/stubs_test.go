package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/catconnect/cat-listing-api/internal/core/domain"
	"github.com/catconnect/cat-listing-api/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// Identity provider stub
// ---------------------------------------------------------------------------

type stubIdentity struct {
	byEmail   map[string]*domain.Identity
	passwords map[string]string
	revoked   []string
	verifyFn  func(token string) (*ports.TokenClaims, error)
	nextUID   int
}

func newStubIdentity() *stubIdentity {
	return &stubIdentity{
		byEmail:   make(map[string]*domain.Identity),
		passwords: make(map[string]string),
	}
}

func (s *stubIdentity) CreateUser(_ context.Context, email, password string) (*domain.Identity, error) {
	if !strings.Contains(email, "@") {
		return nil, domain.ErrInvalidEmail
	}
	if len(password) < 6 {
		return nil, domain.ErrWeakPassword
	}
	if _, exists := s.byEmail[email]; exists {
		return nil, domain.ErrUserExists
	}
	s.nextUID++
	id := &domain.Identity{UID: fmt.Sprintf("uid-%d", s.nextUID), Email: email}
	s.byEmail[email] = id
	s.passwords[id.UID] = password
	clone := *id
	return &clone, nil
}

func (s *stubIdentity) GetUserByEmail(_ context.Context, email string) (*domain.Identity, error) {
	id, ok := s.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *id
	return &clone, nil
}

func (s *stubIdentity) VerifyPassword(_ context.Context, identity *domain.Identity, password string) error {
	if s.passwords[identity.UID] != password {
		return domain.ErrInvalidCredentials
	}
	return nil
}

func (s *stubIdentity) IssueToken(_ context.Context, identity *domain.Identity) (string, error) {
	return "token-" + identity.UID, nil
}

func (s *stubIdentity) VerifyIDToken(_ context.Context, token string) (*ports.TokenClaims, error) {
	if s.verifyFn != nil {
		return s.verifyFn(token)
	}
	return nil, errors.New("not implemented")
}

func (s *stubIdentity) RevokeTokens(_ context.Context, uid string) error {
	s.revoked = append(s.revoked, uid)
	return nil
}

// ---------------------------------------------------------------------------
// Profile / sign-up code stubs
// ---------------------------------------------------------------------------

type stubProfileRepo struct {
	profiles  map[string]*domain.Profile
	createErr error
	creates   int
}

func newStubProfileRepo() *stubProfileRepo {
	return &stubProfileRepo{profiles: make(map[string]*domain.Profile)}
}

func (r *stubProfileRepo) Create(_ context.Context, p *domain.Profile) error {
	r.creates++
	if r.createErr != nil {
		return r.createErr
	}
	clone := *p
	r.profiles[p.ID] = &clone
	return nil
}

func (r *stubProfileRepo) FindByID(_ context.Context, id string) (*domain.Profile, error) {
	p, ok := r.profiles[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	clone := *p
	return &clone, nil
}

type stubCodes struct {
	codes map[string]string
	err   error
}

func (c *stubCodes) FindCode(_ context.Context, role string) (string, bool, error) {
	if c.err != nil {
		return "", false, c.err
	}
	code, ok := c.codes[role]
	return code, ok, nil
}

// ---------------------------------------------------------------------------
// Cat repository / storage stubs
// ---------------------------------------------------------------------------

type stubCatRepo struct {
	cats      map[string]*domain.Cat
	createErr error
	calls     []string
}

func newStubCatRepo() *stubCatRepo {
	return &stubCatRepo{cats: make(map[string]*domain.Cat)}
}

func (r *stubCatRepo) Create(_ context.Context, c *domain.Cat) error {
	r.calls = append(r.calls, "create")
	if r.createErr != nil {
		return r.createErr
	}
	clone := *c
	r.cats[c.ID] = &clone
	return nil
}

func (r *stubCatRepo) FindByID(_ context.Context, id string) (*domain.Cat, error) {
	c, ok := r.cats[id]
	if !ok {
		return nil, domain.ErrCatNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCatRepo) List(_ context.Context, userUID string) ([]*domain.Cat, error) {
	out := []*domain.Cat{}
	for _, c := range r.cats {
		if userUID != "" && c.UserUID != userUID {
			continue
		}
		clone := *c
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubCatRepo) Update(_ context.Context, id string, u domain.CatUpdate) error {
	r.calls = append(r.calls, "update")
	c, ok := r.cats[id]
	if !ok {
		return domain.ErrCatNotFound
	}
	if u.Breed != nil {
		c.Breed = *u.Breed
	}
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.Description != nil {
		c.Description = *u.Description
	}
	if u.Location != nil {
		c.Location = *u.Location
	}
	return nil
}

func (r *stubCatRepo) SetImageURL(_ context.Context, id, url string) error {
	r.calls = append(r.calls, "set_image_url")
	c, ok := r.cats[id]
	if !ok {
		return domain.ErrCatNotFound
	}
	c.ImageURL = &url
	return nil
}

func (r *stubCatRepo) Delete(_ context.Context, id string) error {
	r.calls = append(r.calls, "delete")
	delete(r.cats, id)
	return nil
}

type stubStorage struct {
	objects   map[string][]byte
	uploadErr error
}

func newStubStorage() *stubStorage {
	return &stubStorage{objects: make(map[string][]byte)}
}

func (s *stubStorage) Upload(_ context.Context, key string, body io.Reader, _ int64, _ string) error {
	if s.uploadErr != nil {
		return s.uploadErr
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return err
	}
	s.objects[key] = buf.Bytes()
	return nil
}

func (s *stubStorage) URL(_ context.Context, key string) (string, error) {
	return "https://assets.example.com/" + key, nil
}

// ---------------------------------------------------------------------------
// Message / favorite stubs
// ---------------------------------------------------------------------------

type stubMessageRepo struct {
	msgs    map[string]*domain.Message
	deleted []string
}

func newStubMessageRepo() *stubMessageRepo {
	return &stubMessageRepo{msgs: make(map[string]*domain.Message)}
}

func (r *stubMessageRepo) Create(_ context.Context, m *domain.Message) error {
	clone := *m
	r.msgs[m.ID] = &clone
	return nil
}

func (r *stubMessageRepo) FindByID(_ context.Context, id string) (*domain.Message, error) {
	m, ok := r.msgs[id]
	if !ok {
		return nil, domain.ErrMessageNotFound
	}
	clone := *m
	return &clone, nil
}

// ListByCat mirrors the ascending timestamp sort of the real query.
func (r *stubMessageRepo) ListByCat(_ context.Context, catID string) ([]*domain.Message, error) {
	out := []*domain.Message{}
	for _, m := range r.msgs {
		if m.CatID == catID {
			clone := *m
			out = append(out, &clone)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp < out[j].Timestamp })
	return out, nil
}

func (r *stubMessageRepo) Delete(_ context.Context, id string) error {
	r.deleted = append(r.deleted, id)
	delete(r.msgs, id)
	return nil
}

type stubBroadcaster struct {
	published []string
}

func (b *stubBroadcaster) Publish(catID string, _ any) {
	b.published = append(b.published, catID)
}

type stubFavoriteRepo struct {
	docs map[string]map[string]any
}

func newStubFavoriteRepo() *stubFavoriteRepo {
	return &stubFavoriteRepo{docs: make(map[string]map[string]any)}
}

func (r *stubFavoriteRepo) Upsert(_ context.Context, f *domain.Favorite) error {
	r.docs[f.ID] = f.Document()
	return nil
}

func (r *stubFavoriteRepo) List(_ context.Context, uid string) ([]map[string]any, error) {
	out := []map[string]any{}
	for _, d := range r.docs {
		if uid != "" && d[domain.FavoriteOwnerField] != uid {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Notifier stub
// ---------------------------------------------------------------------------

type stubNotifier struct {
	postFn func(text string) (string, error)
	posted []string
}

func (n *stubNotifier) Post(_ context.Context, text string) (string, error) {
	n.posted = append(n.posted, text)
	return n.postFn(text)
}
