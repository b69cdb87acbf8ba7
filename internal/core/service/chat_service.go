package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/catconnect/cat-listing-api/internal/core/domain"
	"github.com/catconnect/cat-listing-api/internal/core/ports"
)

type ChatService struct {
	repo        ports.MessageRepository
	broadcaster ports.MessageBroadcaster
	log         zerolog.Logger
}

// NewChatService returns a ChatService. broadcaster may be nil.
func NewChatService(repo ports.MessageRepository, broadcaster ports.MessageBroadcaster, log zerolog.Logger) *ChatService {
	return &ChatService{repo: repo, broadcaster: broadcaster, log: log}
}

func (s *ChatService) Post(ctx context.Context, in ports.PostMessageInput) (*domain.Message, error) {
	if strings.TrimSpace(in.Text) == "" {
		return nil, domain.ErrEmptyMessage
	}

	msg := &domain.Message{
		ID:        uuid.NewString(),
		CatID:     in.CatID,
		UserID:    in.UserID,
		Text:      in.Text,
		Timestamp: in.Timestamp,
	}
	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}

	if s.broadcaster != nil {
		s.broadcaster.Publish(msg.CatID, msg)
	}
	return msg, nil
}

func (s *ChatService) List(ctx context.Context, catID string) ([]*domain.Message, error) {
	msgs, err := s.repo.ListByCat(ctx, catID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return msgs, nil
}

// Delete removes the message only when it belongs to catID. A message of
// another listing is reported exactly like a missing one.
func (s *ChatService) Delete(ctx context.Context, catID, messageID string) error {
	msg, err := s.repo.FindByID(ctx, messageID)
	if err != nil {
		return err
	}
	if msg.CatID != catID {
		s.log.Warn().
			Str("message_id", messageID).
			Str("cat_id", catID).
			Str("stored_cat_id", msg.CatID).
			Msg("message delete rejected: parent mismatch")
		return domain.ErrMessageNotFound
	}
	return s.repo.Delete(ctx, messageID)
}
