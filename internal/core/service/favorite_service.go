package service

import (
	"context"
	"fmt"

	"github.com/catconnect/cat-listing-api/internal/core/domain"
	"github.com/catconnect/cat-listing-api/internal/core/ports"
)

type FavoriteService struct {
	repo ports.FavoriteRepository
}

func NewFavoriteService(repo ports.FavoriteRepository) *FavoriteService {
	return &FavoriteService{repo: repo}
}

// Add stores the favorite under its listing id, overwriting any previous copy.
func (s *FavoriteService) Add(ctx context.Context, fav *domain.Favorite) error {
	if fav == nil || fav.ID == "" {
		return domain.ErrMissingFavoriteID
	}
	if err := s.repo.Upsert(ctx, fav); err != nil {
		return fmt.Errorf("upsert favorite: %w", err)
	}
	return nil
}

// List filters on the caller-supplied owner id; it is not matched against
// the authenticated user.
func (s *FavoriteService) List(ctx context.Context, favouriteUID string) ([]map[string]any, error) {
	favs, err := s.repo.List(ctx, favouriteUID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return favs, nil
}
