package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sproutswap/internal/domain/entity"
	"sproutswap/pkg/errors"
)

type chatTestEnv struct {
	chatRepo         *fakeChatRepo
	notificationRepo *fakeNotificationRepo
	authClient       *fakeAuthClient
	mailer           *fakeMailer
	chatUc           *ChatUseCase
}

func newChatTestEnv() *chatTestEnv {
	env := &chatTestEnv{
		chatRepo:         newFakeChatRepo(),
		notificationRepo: newFakeNotificationRepo(),
		authClient:       &fakeAuthClient{},
		mailer:           &fakeMailer{},
	}
	notificationUc := NewNotificationUseCase(env.notificationRepo, &fakePusher{})
	env.chatUc = NewChatUseCase(env.chatRepo, notificationUc, env.authClient, env.mailer)
	return env
}

func (env *chatTestEnv) seedChat(t *testing.T, exchangeID string) *entity.Chat {
	t.Helper()
	chat := &entity.Chat{
		ExchangeID:   exchangeID,
		Participants: []string{"bob", "alice"},
		ListingID:    "tomatoes",
		ListingTitle: "Heirloom Tomatoes",
	}
	require.NoError(t, env.chatRepo.Create(context.Background(), chat))
	return chat
}

func TestSendMessageAppendsAndNotifies(t *testing.T) {
	env := newChatTestEnv()
	chat := env.seedChat(t, "exchange-7")
	ctx := context.Background()

	message, err := env.chatUc.SendMessage(ctx, "bob", chat.ID, "Still available?")
	require.NoError(t, err)
	assert.False(t, message.IsOfferMessage)

	stored, err := env.chatRepo.GetByID(ctx, chat.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.LastMessage)
	assert.Equal(t, "Still available?", stored.LastMessage.Text)

	received := env.notificationRepo.byType(entity.NotificationMessageReceived)
	require.Len(t, received, 1)
	assert.Equal(t, "alice", received[0].RecipientID)
	assert.Equal(t, "exchange-7", received[0].EntityID)
	assert.Equal(t, chat.ID, received[0].Metadata["chatId"])
	assert.Equal(t, "Still available?", received[0].Metadata["snippet"])
}

func TestSendMessageNotificationFallsBackToChatID(t *testing.T) {
	env := newChatTestEnv()
	chat := env.seedChat(t, "")

	_, err := env.chatUc.SendMessage(context.Background(), "bob", chat.ID, "hello")
	require.NoError(t, err)

	received := env.notificationRepo.byType(entity.NotificationMessageReceived)
	require.Len(t, received, 1)
	assert.Equal(t, chat.ID, received[0].EntityID)
}

func TestSendMessageEmailsCounterparty(t *testing.T) {
	env := newChatTestEnv()
	chat := env.seedChat(t, "exchange-7")

	_, err := env.chatUc.SendMessage(context.Background(), "bob", chat.ID, "Still available?")
	require.NoError(t, err)

	require.Len(t, env.mailer.sent, 1)
	mail := env.mailer.sent[0]
	assert.Equal(t, "alice@example.com", mail.To)
	assert.Contains(t, mail.Subject, "Heirloom Tomatoes")
	assert.Contains(t, mail.Body, "Still available?")
	assert.Empty(t, mail.ReplyTo)
}

func TestSendMessageMailerFailureIgnored(t *testing.T) {
	env := newChatTestEnv()
	env.mailer.sendErr = errors.Internal("relay down", nil)
	chat := env.seedChat(t, "exchange-7")

	_, err := env.chatUc.SendMessage(context.Background(), "bob", chat.ID, "hello")
	require.NoError(t, err)

	received := env.notificationRepo.byType(entity.NotificationMessageReceived)
	assert.Len(t, received, 1)
}

func TestSendMessageEmailLookupFailureIgnored(t *testing.T) {
	env := newChatTestEnv()
	env.authClient.emailErr = errors.Internal("identity provider down", nil)
	chat := env.seedChat(t, "exchange-7")

	_, err := env.chatUc.SendMessage(context.Background(), "bob", chat.ID, "hello")
	require.NoError(t, err)
	assert.Empty(t, env.mailer.sent)
}

func TestSendMessageSnippetTruncated(t *testing.T) {
	env := newChatTestEnv()
	chat := env.seedChat(t, "exchange-7")

	long := strings.Repeat("a", 200)
	_, err := env.chatUc.SendMessage(context.Background(), "alice", chat.ID, long)
	require.NoError(t, err)

	received := env.notificationRepo.byType(entity.NotificationMessageReceived)
	require.Len(t, received, 1)
	snippetValue := received[0].Metadata["snippet"].(string)
	assert.Equal(t, strings.Repeat("a", 80)+"…", snippetValue)
}

func TestSendMessageGuards(t *testing.T) {
	env := newChatTestEnv()
	chat := env.seedChat(t, "exchange-7")
	ctx := context.Background()

	_, err := env.chatUc.SendMessage(ctx, "mallory", chat.ID, "hi")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	_, err = env.chatUc.SendMessage(ctx, "bob", chat.ID, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	_, err = env.chatUc.SendMessage(ctx, "bob", "no-such-chat", "hi")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "NOT_FOUND"))

	assert.Empty(t, env.mailer.sent)
}

func TestListMessagesRestrictedToParticipants(t *testing.T) {
	env := newChatTestEnv()
	chat := env.seedChat(t, "exchange-7")
	ctx := context.Background()

	_, err := env.chatUc.SendMessage(ctx, "bob", chat.ID, "one")
	require.NoError(t, err)

	messages, total, err := env.chatUc.ListMessages(ctx, "alice", chat.ID, 50, 0)
	require.NoError(t, err)
	assert.Len(t, messages, 1)
	assert.EqualValues(t, 1, total)

	_, _, err = env.chatUc.ListMessages(ctx, "mallory", chat.ID, 50, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestGetChatRestrictedToParticipants(t *testing.T) {
	env := newChatTestEnv()
	chat := env.seedChat(t, "exchange-7")
	ctx := context.Background()

	_, err := env.chatUc.GetByID(ctx, "alice", chat.ID)
	require.NoError(t, err)

	_, err = env.chatUc.GetByID(ctx, "mallory", chat.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}
