package kvstore

import (
	"context"
	"strings"

	"github.com/nugabest/estatedb/internal/models"
	"github.com/nugabest/estatedb/internal/repository"
	"github.com/nugabest/estatedb/internal/tablestore"
)

type MessageStore struct {
	store *tablestore.Store
}

func NewMessageStore(store *tablestore.Store) *MessageStore {
	return &MessageStore{store: store}
}

func (s *MessageStore) ListForUser(ctx context.Context, userID string) ([]models.ChatMessage, error) {
	rows, err := load[models.ChatMessage](ctx, s.store, repository.TableMessages)
	if err != nil {
		return nil, err
	}
	return filter(rows, func(m models.ChatMessage) bool {
		return m.SenderID == userID || m.ReceiverID == userID
	}), nil
}

func (s *MessageStore) Create(ctx context.Context, msg models.ChatMessage) error {
	switch {
	case msg.ID == "":
		return invalid("message id is required")
	case msg.SenderID == "" || msg.ReceiverID == "":
		return invalid("message %s: sender and receiver are required", msg.ID)
	case strings.TrimSpace(msg.Text) == "":
		return invalid("message %s: text is required", msg.ID)
	}
	_, err := mutate(ctx, s.store, repository.TableMessages, func(rows []models.ChatMessage) ([]models.ChatMessage, bool, error) {
		return append(rows, msg), true, nil
	})
	return err
}
