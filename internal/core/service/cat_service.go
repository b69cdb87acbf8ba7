package service

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/catconnect/cat-listing-api/internal/core/domain"
	"github.com/catconnect/cat-listing-api/internal/core/ports"
)

const defaultImageName = "image"

type CatService struct {
	repo    ports.CatRepository
	storage ports.AssetStorage
	log     zerolog.Logger
}

func NewCatService(repo ports.CatRepository, storage ports.AssetStorage, log zerolog.Logger) *CatService {
	return &CatService{repo: repo, storage: storage, log: log}
}

// Create stores the listing metadata, uploads the image and then patches the
// listing with the retrieval URL. An upload failure leaves the listing in
// place without an image URL.
func (s *CatService) Create(ctx context.Context, in ports.CreateCatInput) (*domain.Cat, error) {
	if in.Image == nil {
		return nil, domain.ErrMissingImage
	}

	cat := &domain.Cat{
		ID:          uuid.NewString(),
		Breed:       in.Breed,
		Name:        in.Name,
		Description: in.Description,
		Location:    in.Location,
		UserUID:     in.UserUID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, cat); err != nil {
		return nil, fmt.Errorf("create cat: %w", err)
	}

	key := domain.ImageKey(cat.ID, imageName(in.FileName))
	if err := s.storage.Upload(ctx, key, in.Image, in.Size, in.ContentType); err != nil {
		s.log.Error().Err(err).Str("cat_id", cat.ID).Str("key", key).Msg("image upload failed, listing left without image")
		return nil, fmt.Errorf("%w: %w", domain.ErrUploadFailed, err)
	}

	url, err := s.storage.URL(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%w: signed url: %w", domain.ErrUploadFailed, err)
	}
	if err := s.repo.SetImageURL(ctx, cat.ID, url); err != nil {
		return nil, fmt.Errorf("set image url: %w", err)
	}
	cat.ImageURL = &url

	s.log.Info().Str("cat_id", cat.ID).Str("user_uid", cat.UserUID).Msg("cat created")
	return cat, nil
}

func (s *CatService) Get(ctx context.Context, id string) (*domain.Cat, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CatService) List(ctx context.Context, userUID string) ([]*domain.Cat, error) {
	cats, err := s.repo.List(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("list cats: %w", err)
	}
	return cats, nil
}

// Update edits the mutable fields. Ownership is not checked.
func (s *CatService) Update(ctx context.Context, id string, update domain.CatUpdate) error {
	if update.Empty() {
		return domain.ErrNothingToSave
	}
	return s.repo.Update(ctx, id, update)
}

// Delete removes the listing. Ownership is not checked and the stored image
// is kept.
func (s *CatService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// imageName keeps only the base name of a client-supplied file name.
func imageName(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		return defaultImageName
	}
	return name
}
