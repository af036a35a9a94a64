package usecase

import (
	"context"

	"sproutswap/internal/domain/entity"
	"sproutswap/internal/domain/repository"
	"sproutswap/pkg/errors"
	"sproutswap/pkg/logger"
)

type NotificationUseCase struct {
	notificationRepo repository.NotificationRepository
	pusher           EventPusher
}

func NewNotificationUseCase(
	notificationRepo repository.NotificationRepository,
	pusher EventPusher,
) *NotificationUseCase {
	return &NotificationUseCase{
		notificationRepo: notificationRepo,
		pusher:           pusher,
	}
}

// Notify persists a notification and pushes it to the recipient if they are
// connected. Callers treat failures as best-effort: the triggering operation
// already succeeded.
func (uc *NotificationUseCase) Notify(ctx context.Context, recipientID, senderID, notifType, entityID string, metadata map[string]interface{}) error {
	notification := &entity.Notification{
		RecipientID: recipientID,
		SenderID:    senderID,
		Type:        notifType,
		EntityID:    entityID,
		Metadata:    metadata,
	}

	if err := uc.notificationRepo.Create(ctx, notification); err != nil {
		return err
	}

	if uc.pusher != nil {
		uc.pusher.PushToUser(recipientID, "notification", notification)
	}

	return nil
}

func (uc *NotificationUseCase) List(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]*entity.Notification, int64, error) {
	return uc.notificationRepo.ListByRecipient(ctx, userID, unreadOnly, limit, offset)
}

func (uc *NotificationUseCase) CountUnread(ctx context.Context, userID string) (int64, error) {
	return uc.notificationRepo.CountUnread(ctx, userID)
}

func (uc *NotificationUseCase) MarkRead(ctx context.Context, userID, notificationID string) error {
	notification, err := uc.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		return err
	}

	if notification.RecipientID != userID {
		return errors.Forbidden("Not your notification", nil)
	}

	return uc.notificationRepo.MarkRead(ctx, notificationID)
}

func (uc *NotificationUseCase) MarkAllRead(ctx context.Context, userID string) error {
	return uc.notificationRepo.MarkAllRead(ctx, userID)
}

func (uc *NotificationUseCase) ClearAll(ctx context.Context, userID string) error {
	return uc.notificationRepo.DeleteAllByRecipient(ctx, userID)
}

// notifyBestEffort wraps Notify for call sites where delivery must never fail
// the primary operation.
func (uc *NotificationUseCase) notifyBestEffort(ctx context.Context, recipientID, senderID, notifType, entityID string, metadata map[string]interface{}) {
	if err := uc.Notify(ctx, recipientID, senderID, notifType, entityID, metadata); err != nil {
		logger.Error("Failed to deliver %s notification to %s: %v", notifType, recipientID, err)
	}
}
