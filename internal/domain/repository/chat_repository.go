package repository

import (
	"context"

	"sproutswap/internal/domain/entity"
)

type ChatRepository interface {
	Create(ctx context.Context, chat *entity.Chat) error
	GetByID(ctx context.Context, id string) (*entity.Chat, error)
	ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Chat, int64, error)
	LinkExchange(ctx context.Context, chatID, exchangeID string) error
	SetLastMessage(ctx context.Context, chatID string, last *entity.LastMessage) error

	// Message methods; messages are append-only, ordered by createdAt ascending.
	CreateMessage(ctx context.Context, message *entity.Message) error
	ListMessages(ctx context.Context, chatID string, limit, offset int) ([]*entity.Message, int64, error)
}
