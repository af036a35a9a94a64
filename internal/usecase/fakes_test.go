package usecase

import (
	"context"
	"fmt"
	"time"

	"sproutswap/internal/domain/entity"
	"sproutswap/pkg/errors"
)

// In-memory doubles for the repository and infrastructure interfaces, shared
// by the usecase tests.

type fakeExchangeRepo struct {
	exchanges map[string]*entity.Exchange
	seq       int
	failOn    map[string]error
}

func newFakeExchangeRepo() *fakeExchangeRepo {
	return &fakeExchangeRepo{
		exchanges: make(map[string]*entity.Exchange),
		failOn:    make(map[string]error),
	}
}

func (r *fakeExchangeRepo) Create(ctx context.Context, exchange *entity.Exchange) error {
	if err := r.failOn["Create"]; err != nil {
		return err
	}
	if exchange.ID == "" {
		r.seq++
		exchange.ID = fmt.Sprintf("exchange-%d", r.seq)
	}
	now := time.Now()
	exchange.CreatedAt = now
	exchange.UpdatedAt = now
	copied := *exchange
	r.exchanges[exchange.ID] = &copied
	return nil
}

func (r *fakeExchangeRepo) GetByID(ctx context.Context, id string) (*entity.Exchange, error) {
	exchange, ok := r.exchanges[id]
	if !ok {
		return nil, errors.NotFound("Exchange", nil)
	}
	copied := cloneExchange(exchange)
	return copied, nil
}

func (r *fakeExchangeRepo) ListByUserID(ctx context.Context, userID, role, status string, limit, offset int) ([]*entity.Exchange, int64, error) {
	var result []*entity.Exchange
	for _, exchange := range r.exchanges {
		matchesRole := (role == "" && exchange.IsParty(userID)) ||
			(role == "requester" && exchange.RequesterID == userID) ||
			(role == "owner" && exchange.OwnerID == userID)
		if !matchesRole {
			continue
		}
		if status != "" && exchange.Status != status {
			continue
		}
		result = append(result, cloneExchange(exchange))
	}
	return result, int64(len(result)), nil
}

func (r *fakeExchangeRepo) ListByStatus(ctx context.Context, status string) ([]*entity.Exchange, error) {
	if err := r.failOn["ListByStatus"]; err != nil {
		return nil, err
	}
	var result []*entity.Exchange
	for _, exchange := range r.exchanges {
		if exchange.Status == status {
			result = append(result, cloneExchange(exchange))
		}
	}
	return result, nil
}

func (r *fakeExchangeRepo) ListOpenByUserID(ctx context.Context, userID string) ([]*entity.Exchange, error) {
	var result []*entity.Exchange
	for _, exchange := range r.exchanges {
		if exchange.IsParty(userID) && !exchange.IsTerminal() {
			result = append(result, cloneExchange(exchange))
		}
	}
	return result, nil
}

func (r *fakeExchangeRepo) FindPending(ctx context.Context, requesterID, productID string) (*entity.Exchange, error) {
	for _, exchange := range r.exchanges {
		if exchange.RequesterID == requesterID && exchange.ProductID == productID && exchange.Status == entity.ExchangeStatusPending {
			return cloneExchange(exchange), nil
		}
	}
	return nil, errors.NotFound("Pending exchange", nil)
}

func (r *fakeExchangeRepo) UpdateStatusTx(ctx context.Context, id string, apply func(exchange *entity.Exchange) error) (*entity.Exchange, error) {
	exchange, ok := r.exchanges[id]
	if !ok {
		return nil, errors.NotFound("Exchange", nil)
	}
	working := cloneExchange(exchange)
	if err := apply(working); err != nil {
		return nil, err
	}
	working.UpdatedAt = time.Now()
	r.exchanges[id] = working
	return cloneExchange(working), nil
}

func (r *fakeExchangeRepo) SetReview(ctx context.Context, id, reviewerID string, review entity.Review) (*entity.Exchange, *entity.Exchange, error) {
	exchange, ok := r.exchanges[id]
	if !ok {
		return nil, nil, errors.NotFound("Exchange", nil)
	}
	before := cloneExchange(exchange)
	after := cloneExchange(exchange)
	if after.Reviews == nil {
		after.Reviews = make(map[string]entity.Review)
	}
	after.Reviews[reviewerID] = review
	after.UpdatedAt = time.Now()
	r.exchanges[id] = cloneExchange(after)
	return before, after, nil
}

func (r *fakeExchangeRepo) ForceRejectOpenByUser(ctx context.Context, userID, reason string) ([]*entity.Exchange, error) {
	var rejected []*entity.Exchange
	for _, exchange := range r.exchanges {
		if exchange.IsParty(userID) && !exchange.IsTerminal() {
			exchange.Status = entity.ExchangeStatusRejected
			exchange.RejectionReason = reason
			exchange.UpdatedAt = time.Now()
			rejected = append(rejected, cloneExchange(exchange))
		}
	}
	return rejected, nil
}

func cloneExchange(exchange *entity.Exchange) *entity.Exchange {
	copied := *exchange
	if exchange.Reviews != nil {
		copied.Reviews = make(map[string]entity.Review, len(exchange.Reviews))
		for k, v := range exchange.Reviews {
			copied.Reviews[k] = v
		}
	}
	return &copied
}

type fakeChatRepo struct {
	chats    map[string]*entity.Chat
	messages map[string][]*entity.Message
	seq      int
	failOn   map[string]error
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{
		chats:    make(map[string]*entity.Chat),
		messages: make(map[string][]*entity.Message),
		failOn:   make(map[string]error),
	}
}

func (r *fakeChatRepo) Create(ctx context.Context, chat *entity.Chat) error {
	if err := r.failOn["Create"]; err != nil {
		return err
	}
	r.seq++
	chat.ID = fmt.Sprintf("chat-%d", r.seq)
	now := time.Now()
	chat.CreatedAt = now
	chat.UpdatedAt = now
	copied := *chat
	r.chats[chat.ID] = &copied
	return nil
}

func (r *fakeChatRepo) GetByID(ctx context.Context, id string) (*entity.Chat, error) {
	chat, ok := r.chats[id]
	if !ok {
		return nil, errors.NotFound("Chat", nil)
	}
	copied := *chat
	return &copied, nil
}

func (r *fakeChatRepo) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Chat, int64, error) {
	var result []*entity.Chat
	for _, chat := range r.chats {
		if chat.HasParticipant(userID) {
			copied := *chat
			result = append(result, &copied)
		}
	}
	return result, int64(len(result)), nil
}

func (r *fakeChatRepo) LinkExchange(ctx context.Context, chatID, exchangeID string) error {
	if err := r.failOn["LinkExchange"]; err != nil {
		return err
	}
	chat, ok := r.chats[chatID]
	if !ok {
		return errors.NotFound("Chat", nil)
	}
	chat.ExchangeID = exchangeID
	chat.UpdatedAt = time.Now()
	return nil
}

func (r *fakeChatRepo) SetLastMessage(ctx context.Context, chatID string, last *entity.LastMessage) error {
	chat, ok := r.chats[chatID]
	if !ok {
		return errors.NotFound("Chat", nil)
	}
	chat.LastMessage = last
	chat.UpdatedAt = time.Now()
	return nil
}

func (r *fakeChatRepo) CreateMessage(ctx context.Context, message *entity.Message) error {
	r.seq++
	message.ID = fmt.Sprintf("message-%d", r.seq)
	message.CreatedAt = time.Now()
	copied := *message
	r.messages[message.ChatID] = append(r.messages[message.ChatID], &copied)
	return nil
}

func (r *fakeChatRepo) ListMessages(ctx context.Context, chatID string, limit, offset int) ([]*entity.Message, int64, error) {
	messages := r.messages[chatID]
	return messages, int64(len(messages)), nil
}

type fakeNotificationRepo struct {
	notifications []*entity.Notification
	seq           int
	failOn        map[string]error
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{failOn: make(map[string]error)}
}

func (r *fakeNotificationRepo) Create(ctx context.Context, notification *entity.Notification) error {
	if err := r.failOn["Create"]; err != nil {
		return err
	}
	r.seq++
	notification.ID = fmt.Sprintf("notification-%d", r.seq)
	notification.CreatedAt = time.Now()
	copied := *notification
	r.notifications = append(r.notifications, &copied)
	return nil
}

func (r *fakeNotificationRepo) GetByID(ctx context.Context, id string) (*entity.Notification, error) {
	for _, notification := range r.notifications {
		if notification.ID == id {
			copied := *notification
			return &copied, nil
		}
	}
	return nil, errors.NotFound("Notification", nil)
}

func (r *fakeNotificationRepo) ListByRecipient(ctx context.Context, recipientID string, unreadOnly bool, limit, offset int) ([]*entity.Notification, int64, error) {
	var result []*entity.Notification
	for _, notification := range r.notifications {
		if notification.RecipientID != recipientID {
			continue
		}
		if unreadOnly && notification.IsRead {
			continue
		}
		copied := *notification
		result = append(result, &copied)
	}
	return result, int64(len(result)), nil
}

func (r *fakeNotificationRepo) CountUnread(ctx context.Context, recipientID string) (int64, error) {
	var count int64
	for _, notification := range r.notifications {
		if notification.RecipientID == recipientID && !notification.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) MarkRead(ctx context.Context, id string) error {
	for _, notification := range r.notifications {
		if notification.ID == id {
			notification.IsRead = true
			return nil
		}
	}
	return errors.NotFound("Notification", nil)
}

func (r *fakeNotificationRepo) MarkAllRead(ctx context.Context, recipientID string) error {
	for _, notification := range r.notifications {
		if notification.RecipientID == recipientID {
			notification.IsRead = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) DeleteAllByRecipient(ctx context.Context, recipientID string) error {
	var kept []*entity.Notification
	for _, notification := range r.notifications {
		if notification.RecipientID != recipientID {
			kept = append(kept, notification)
		}
	}
	r.notifications = kept
	return nil
}

func (r *fakeNotificationRepo) byType(notifType string) []*entity.Notification {
	var result []*entity.Notification
	for _, notification := range r.notifications {
		if notification.Type == notifType {
			result = append(result, notification)
		}
	}
	return result
}

type fakeUserRepo struct {
	users  map[string]*entity.User
	failOn map[string]error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:  make(map[string]*entity.User),
		failOn: make(map[string]error),
	}
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) ApplyReputation(ctx context.Context, userID string, patch entity.ReputationPatch) error {
	if err := r.failOn["ApplyReputation"]; err != nil {
		return err
	}
	user, ok := r.users[userID]
	if !ok {
		return errors.NotFound("User", nil)
	}
	reputation := patch.Reputation
	user.Reputation = &reputation
	user.Points = patch.Points
	user.Level = patch.Level
	user.LastUpdated = patch.LastUpdated
	return nil
}

func (r *fakeUserRepo) EnsureReputationDefaults(ctx context.Context, userID string) error {
	user, ok := r.users[userID]
	if !ok {
		return errors.NotFound("User", nil)
	}
	if user.Reputation == nil {
		user.Reputation = &entity.Reputation{}
		user.Points = 0
	}
	if user.Level == "" {
		user.Level = entity.LevelSeed
	}
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id string) error {
	delete(r.users, id)
	return nil
}

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*entity.Product)}
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	product, ok := r.products[id]
	if !ok {
		return nil, errors.NotFound("Product", nil)
	}
	copied := *product
	return &copied, nil
}

func (r *fakeProductRepo) ListByOwnerID(ctx context.Context, ownerID string) ([]*entity.Product, error) {
	var result []*entity.Product
	for _, product := range r.products {
		if product.OwnerID == ownerID {
			copied := *product
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *fakeProductRepo) DeleteAll(ctx context.Context, ids []string) error {
	for _, id := range ids {
		delete(r.products, id)
	}
	return nil
}

type fakeArchiveRepo struct {
	archivedUsers    map[string]*entity.User
	archivedProducts map[string][]*entity.Product
	failOn           map[string]error
}

func newFakeArchiveRepo() *fakeArchiveRepo {
	return &fakeArchiveRepo{
		archivedUsers:    make(map[string]*entity.User),
		archivedProducts: make(map[string][]*entity.Product),
		failOn:           make(map[string]error),
	}
}

func (r *fakeArchiveRepo) ArchiveUser(ctx context.Context, user *entity.User, products []*entity.Product) error {
	if err := r.failOn["ArchiveUser"]; err != nil {
		return err
	}
	r.archivedUsers[user.ID] = user
	r.archivedProducts[user.ID] = products
	return nil
}

type fakeAuthClient struct {
	deletedUIDs []string
	deleteErr   error
	emailErr    error
}

func (c *fakeAuthClient) VerifyToken(ctx context.Context, token string) (string, error) {
	return token, nil
}

func (c *fakeAuthClient) GetUserEmail(ctx context.Context, uid string) (string, error) {
	if c.emailErr != nil {
		return "", c.emailErr
	}
	return uid + "@example.com", nil
}

func (c *fakeAuthClient) DeleteUser(ctx context.Context, uid string) error {
	if c.deleteErr != nil {
		return c.deleteErr
	}
	c.deletedUIDs = append(c.deletedUIDs, uid)
	return nil
}

type fakeFileStorage struct {
	deletedURLs []string
	failURLs    map[string]error
}

func newFakeFileStorage() *fakeFileStorage {
	return &fakeFileStorage{failURLs: make(map[string]error)}
}

func (s *fakeFileStorage) DeleteFile(ctx context.Context, fileURL string) error {
	if err := s.failURLs[fileURL]; err != nil {
		return err
	}
	s.deletedURLs = append(s.deletedURLs, fileURL)
	return nil
}

type sentMail struct {
	To      string
	Subject string
	Body    string
	ReplyTo string
}

type fakeMailer struct {
	sent    []sentMail
	sendErr error
}

func (m *fakeMailer) Send(to, subject, htmlBody, replyTo string) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: htmlBody, ReplyTo: replyTo})
	return nil
}

type pushedEvent struct {
	UserID  string
	Type    string
	Payload interface{}
}

type fakePusher struct {
	events []pushedEvent
}

func (p *fakePusher) PushToUser(userID, eventType string, payload interface{}) {
	p.events = append(p.events, pushedEvent{UserID: userID, Type: eventType, Payload: payload})
}
