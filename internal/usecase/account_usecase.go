package usecase

import (
	"context"
	"fmt"

	"sproutswap/internal/domain/entity"
	"sproutswap/internal/domain/repository"
	"sproutswap/pkg/errors"
	"sproutswap/pkg/logger"
)

type AccountUseCase struct {
	userRepo         repository.UserRepository
	productRepo      repository.ProductRepository
	exchangeRepo     repository.ExchangeRepository
	notificationRepo repository.NotificationRepository
	archiveRepo      repository.ArchiveRepository
	fileStorage      FileStorage
	authClient       FirebaseAuthClient
	notificationUc   *NotificationUseCase
}

func NewAccountUseCase(
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	exchangeRepo repository.ExchangeRepository,
	notificationRepo repository.NotificationRepository,
	archiveRepo repository.ArchiveRepository,
	fileStorage FileStorage,
	authClient FirebaseAuthClient,
	notificationUc *NotificationUseCase,
) *AccountUseCase {
	return &AccountUseCase{
		userRepo:         userRepo,
		productRepo:      productRepo,
		exchangeRepo:     exchangeRepo,
		notificationRepo: notificationRepo,
		archiveRepo:      archiveRepo,
		fileStorage:      fileStorage,
		authClient:       authClient,
		notificationUc:   notificationUc,
	}
}

// DeleteAccount runs the full deletion cascade for the calling user. Every
// step before the identity deletion is idempotent, so a failure partway
// through leaves the account accessible and the whole cascade retryable. The
// identity-provider account goes last: deleting it first and failing later
// would lock the user out of their own cleanup.
func (uc *AccountUseCase) DeleteAccount(ctx context.Context, userID string) error {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	products, err := uc.productRepo.ListByOwnerID(ctx, userID)
	if err != nil {
		return uc.fail(userID, "list products", err)
	}

	// Archive copies exclude hosted media; the blobs are deleted next.
	archivedUser := *user
	archivedUser.AvatarURL = ""
	archivedProducts := make([]*entity.Product, 0, len(products))
	for _, product := range products {
		copied := *product
		copied.ImageURLs = nil
		archivedProducts = append(archivedProducts, &copied)
	}
	if err := uc.archiveRepo.ArchiveUser(ctx, &archivedUser, archivedProducts); err != nil {
		return uc.fail(userID, "archive", err)
	}

	uc.deleteBlobs(ctx, user, products)

	productIDs := make([]string, 0, len(products))
	for _, product := range products {
		productIDs = append(productIDs, product.ID)
	}
	if err := uc.productRepo.DeleteAll(ctx, productIDs); err != nil {
		return uc.fail(userID, "delete products", err)
	}
	if err := uc.userRepo.Delete(ctx, userID); err != nil {
		return uc.fail(userID, "delete user document", err)
	}

	rejected, err := uc.exchangeRepo.ForceRejectOpenByUser(ctx, userID, entity.RejectionReasonUserDeleted)
	if err != nil {
		return uc.fail(userID, "reject open exchanges", err)
	}
	for _, exchange := range rejected {
		uc.notificationUc.notifyBestEffort(ctx, exchange.Counterparty(userID), userID, entity.NotificationOfferRejected, exchange.ID, map[string]interface{}{
			"productName":     exchange.ProductName,
			"rejectionReason": entity.RejectionReasonUserDeleted,
		})
	}

	if err := uc.notificationRepo.DeleteAllByRecipient(ctx, userID); err != nil {
		return uc.fail(userID, "delete notifications", err)
	}

	if err := uc.authClient.DeleteUser(ctx, userID); err != nil {
		return uc.fail(userID, "delete auth account", err)
	}

	logger.Info("Account %s deleted", userID)
	return nil
}

// deleteBlobs removes the avatar and all product images. Already-gone objects
// count as deleted; other storage errors are logged and skipped so the
// cascade keeps going.
func (uc *AccountUseCase) deleteBlobs(ctx context.Context, user *entity.User, products []*entity.Product) {
	if user.AvatarURL != "" {
		if err := uc.fileStorage.DeleteFile(ctx, user.AvatarURL); err != nil {
			logger.Warn("Failed to delete avatar for user %s: %v", user.ID, err)
		}
	}

	for _, product := range products {
		for _, imageURL := range product.ImageURLs {
			if err := uc.fileStorage.DeleteFile(ctx, imageURL); err != nil {
				logger.Warn("Failed to delete image for product %s: %v", product.ID, err)
			}
		}
	}
}

func (uc *AccountUseCase) fail(userID, step string, err error) error {
	logger.Error("Account deletion for %s failed at step %q: %v", userID, step, err)
	return errors.Internal(fmt.Sprintf("Account deletion failed (%s); please retry", step), err)
}
