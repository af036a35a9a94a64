package usecase

import (
	"context"
	"fmt"
	"html"

	"sproutswap/internal/domain/entity"
	"sproutswap/internal/domain/repository"
	"sproutswap/pkg/errors"
	"sproutswap/pkg/logger"
)

type ChatUseCase struct {
	chatRepo       repository.ChatRepository
	notificationUc *NotificationUseCase
	authClient     FirebaseAuthClient
	mailer         Mailer
}

func NewChatUseCase(
	chatRepo repository.ChatRepository,
	notificationUc *NotificationUseCase,
	authClient FirebaseAuthClient,
	mailer Mailer,
) *ChatUseCase {
	return &ChatUseCase{
		chatRepo:       chatRepo,
		notificationUc: notificationUc,
		authClient:     authClient,
		mailer:         mailer,
	}
}

// SendMessage appends a message and refreshes the chat's denormalized last
// message. The other participant gets a MESSAGE_RECEIVED notification and a
// best-effort email; the seed message copied from the initial offer bypasses
// this path entirely, since NEW_OFFER already announced it.
func (uc *ChatUseCase) SendMessage(ctx context.Context, senderID, chatID, text string) (*entity.Message, error) {
	if text == "" {
		return nil, errors.BadRequest("Message text is required", nil)
	}

	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}

	if !chat.HasParticipant(senderID) {
		return nil, errors.Forbidden("Not a participant in this chat", nil)
	}

	message := &entity.Message{
		ChatID:   chatID,
		SenderID: senderID,
		Text:     text,
	}
	if err := uc.chatRepo.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	if err := uc.chatRepo.SetLastMessage(ctx, chatID, &entity.LastMessage{
		Text:      message.Text,
		CreatedAt: message.CreatedAt,
	}); err != nil {
		return nil, err
	}

	// Notifications reference the owning exchange; pre-link orphan chats fall
	// back to the chat id.
	entityID := chat.ExchangeID
	if entityID == "" {
		entityID = chatID
	}

	recipient := chat.OtherParticipant(senderID)

	uc.notificationUc.notifyBestEffort(ctx, recipient, senderID, entity.NotificationMessageReceived, entityID, map[string]interface{}{
		"chatId":       chatID,
		"listingTitle": chat.ListingTitle,
		"snippet":      snippet(message.Text),
	})

	uc.emailBestEffort(ctx, recipient, chat.ListingTitle, message.Text)

	return message, nil
}

func (uc *ChatUseCase) emailBestEffort(ctx context.Context, recipientID, listingTitle, text string) {
	email, err := uc.authClient.GetUserEmail(ctx, recipientID)
	if err != nil {
		logger.Warn("Could not resolve email for user %s: %v", recipientID, err)
		return
	}

	subject := fmt.Sprintf("New message about %s", listingTitle)
	body := fmt.Sprintf("<p>You have a new message about <strong>%s</strong>:</p><p>%s</p>",
		html.EscapeString(listingTitle),
		html.EscapeString(snippet(text)))

	if err := uc.mailer.Send(email, subject, body, ""); err != nil {
		logger.Warn("Failed to email message notice to user %s: %v", recipientID, err)
	}
}

func (uc *ChatUseCase) GetByID(ctx context.Context, userID, chatID string) (*entity.Chat, error) {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}

	if !chat.HasParticipant(userID) {
		return nil, errors.Forbidden("Not a participant in this chat", nil)
	}

	return chat, nil
}

func (uc *ChatUseCase) List(ctx context.Context, userID string, limit, offset int) ([]*entity.Chat, int64, error) {
	return uc.chatRepo.ListByUserID(ctx, userID, limit, offset)
}

func (uc *ChatUseCase) ListMessages(ctx context.Context, userID, chatID string, limit, offset int) ([]*entity.Message, int64, error) {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, 0, err
	}

	if !chat.HasParticipant(userID) {
		return nil, 0, errors.Forbidden("Not a participant in this chat", nil)
	}

	return uc.chatRepo.ListMessages(ctx, chatID, limit, offset)
}

const snippetLimit = 80

func snippet(text string) string {
	runes := []rune(text)
	if len(runes) <= snippetLimit {
		return text
	}
	return string(runes[:snippetLimit]) + "…"
}
