package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/catconnect/cat-listing-api/internal/core/domain"
	"github.com/catconnect/cat-listing-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*domain.Identity, error)
	loginFn    func(ctx context.Context, email, password string) (*ports.LoginResult, error)
	logoutFn   func(ctx context.Context, uid string) error
	profileFn  func(ctx context.Context, uid string) (*domain.Profile, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.Identity, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Logout(ctx context.Context, uid string) error {
	return s.logoutFn(ctx, uid)
}

func (s *stubAuthService) Authenticate(context.Context, string) (*ports.TokenClaims, error) {
	return nil, domain.ErrInvalidToken
}

func (s *stubAuthService) Profile(ctx context.Context, uid string) (*domain.Profile, error) {
	return s.profileFn(ctx, uid)
}

type stubCatService struct {
	createFn func(ctx context.Context, in ports.CreateCatInput) (*domain.Cat, error)
	getFn    func(ctx context.Context, id string) (*domain.Cat, error)
	listFn   func(ctx context.Context, userUID string) ([]*domain.Cat, error)
	updateFn func(ctx context.Context, id string, u domain.CatUpdate) error
	deleteFn func(ctx context.Context, id string) error
}

func (s *stubCatService) Create(ctx context.Context, in ports.CreateCatInput) (*domain.Cat, error) {
	return s.createFn(ctx, in)
}

func (s *stubCatService) Get(ctx context.Context, id string) (*domain.Cat, error) {
	return s.getFn(ctx, id)
}

func (s *stubCatService) List(ctx context.Context, userUID string) ([]*domain.Cat, error) {
	return s.listFn(ctx, userUID)
}

func (s *stubCatService) Update(ctx context.Context, id string, u domain.CatUpdate) error {
	return s.updateFn(ctx, id, u)
}

func (s *stubCatService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

type stubChatService struct {
	postFn   func(ctx context.Context, in ports.PostMessageInput) (*domain.Message, error)
	listFn   func(ctx context.Context, catID string) ([]*domain.Message, error)
	deleteFn func(ctx context.Context, catID, messageID string) error
}

func (s *stubChatService) Post(ctx context.Context, in ports.PostMessageInput) (*domain.Message, error) {
	return s.postFn(ctx, in)
}

func (s *stubChatService) List(ctx context.Context, catID string) ([]*domain.Message, error) {
	return s.listFn(ctx, catID)
}

func (s *stubChatService) Delete(ctx context.Context, catID, messageID string) error {
	return s.deleteFn(ctx, catID, messageID)
}

type stubFavoriteService struct {
	addFn  func(ctx context.Context, fav *domain.Favorite) error
	listFn func(ctx context.Context, uid string) ([]map[string]any, error)
}

func (s *stubFavoriteService) Add(ctx context.Context, fav *domain.Favorite) error {
	return s.addFn(ctx, fav)
}

func (s *stubFavoriteService) List(ctx context.Context, uid string) ([]map[string]any, error) {
	return s.listFn(ctx, uid)
}

type stubTweetService struct {
	postFn func(ctx context.Context, text string) (string, error)
}

func (s *stubTweetService) Post(ctx context.Context, text string) (string, error) {
	return s.postFn(ctx, text)
}

// newJSONContext builds an echo context for a JSON request. Path params are
// given as name/value pairs.
func newJSONContext(method, target, body string, params ...string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if len(params) > 0 {
		names := make([]string, 0, len(params)/2)
		values := make([]string, 0, len(params)/2)
		for i := 0; i+1 < len(params); i += 2 {
			names = append(names, params[i])
			values = append(values, params[i+1])
		}
		c.SetParamNames(names...)
		c.SetParamValues(values...)
	}
	return c, rec
}
