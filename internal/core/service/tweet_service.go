package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/catconnect/cat-listing-api/internal/core/domain"
	"github.com/catconnect/cat-listing-api/internal/core/ports"
)

type TweetService struct {
	notifier ports.Notifier
	log      zerolog.Logger
}

func NewTweetService(notifier ports.Notifier, log zerolog.Logger) *TweetService {
	return &TweetService{notifier: notifier, log: log}
}

// Post forwards text verbatim and returns the remote post id.
func (s *TweetService) Post(ctx context.Context, text string) (string, error) {
	if text == "" {
		return "", domain.ErrEmptyTweet
	}
	id, err := s.notifier.Post(ctx, text)
	if err != nil {
		s.log.Error().Err(err).Msg("tweet relay failed")
		return "", fmt.Errorf("%w: %w", domain.ErrTweetFailed, err)
	}
	s.log.Info().Str("tweet_id", id).Msg("tweet posted")
	return id, nil
}
