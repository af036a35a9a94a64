package usecase

import (
	"context"
	"fmt"
	"time"

	"sproutswap/internal/domain/entity"
	"sproutswap/internal/domain/repository"
	"sproutswap/pkg/errors"
	"sproutswap/pkg/logger"
)

type ExchangeUseCase struct {
	exchangeRepo   repository.ExchangeRepository
	chatRepo       repository.ChatRepository
	productRepo    repository.ProductRepository
	notificationUc *NotificationUseCase
	reputationUc   *ReputationUseCase
}

func NewExchangeUseCase(
	exchangeRepo repository.ExchangeRepository,
	chatRepo repository.ChatRepository,
	productRepo repository.ProductRepository,
	notificationUc *NotificationUseCase,
	reputationUc *ReputationUseCase,
) *ExchangeUseCase {
	return &ExchangeUseCase{
		exchangeRepo:   exchangeRepo,
		chatRepo:       chatRepo,
		productRepo:    productRepo,
		notificationUc: notificationUc,
		reputationUc:   reputationUc,
	}
}

type CreateOfferInput struct {
	ProductID        string
	OfferType        string
	OfferedProductID string
	Message          string
}

const (
	maxOfferMessageLen  = 500
	maxReviewCommentLen = 280
)

// CreateOffer opens a new exchange on a listing. The chat is created first so
// the exchange can reference it; if the exchange write then fails, the orphan
// chat is harmless since it has emitted no notifications yet.
func (uc *ExchangeUseCase) CreateOffer(ctx context.Context, requesterID string, input CreateOfferInput) (*entity.Exchange, error) {
	product, err := uc.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}

	if product.OwnerID == requesterID {
		return nil, errors.BadRequest("Cannot make an offer on your own listing", nil)
	}

	if len([]rune(input.Message)) > maxOfferMessageLen {
		return nil, errors.BadRequest(fmt.Sprintf("Offer message must be at most %d characters", maxOfferMessageLen), nil)
	}

	if _, err := uc.exchangeRepo.FindPending(ctx, requesterID, input.ProductID); err == nil {
		return nil, errors.Conflict("You already have a pending offer on this listing")
	} else if !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}

	offer := entity.Offer{
		Type:    input.OfferType,
		Message: input.Message,
	}

	switch input.OfferType {
	case entity.OfferTypeExchange:
		if input.OfferedProductID == "" {
			return nil, errors.BadRequest("Exchange offers must include an offered listing", nil)
		}
		offered, err := uc.productRepo.GetByID(ctx, input.OfferedProductID)
		if err != nil {
			return nil, err
		}
		if offered.OwnerID != requesterID {
			return nil, errors.Forbidden("Offered listing does not belong to you", nil)
		}
		offer.OfferedProductID = offered.ID
		offer.OfferedProductName = offered.Name
	case entity.OfferTypeChat:
		// Chat-only offers carry no counterpart listing.
	default:
		return nil, errors.BadRequest("Unknown offer type", nil)
	}

	chat := &entity.Chat{
		Participants: []string{requesterID, product.OwnerID},
		ListingID:    product.ID,
		ListingTitle: product.Name,
	}
	if err := uc.chatRepo.Create(ctx, chat); err != nil {
		return nil, err
	}

	exchange := &entity.Exchange{
		ProductID:   product.ID,
		ProductName: product.Name,
		RequesterID: requesterID,
		OwnerID:     product.OwnerID,
		Status:      entity.ExchangeStatusPending,
		ChatID:      chat.ID,
		Offer:       offer,
	}
	if err := uc.exchangeRepo.Create(ctx, exchange); err != nil {
		return nil, err
	}

	// Back-link so message notifications can reference the exchange. A failed
	// link only degrades those references to the chat id.
	if err := uc.chatRepo.LinkExchange(ctx, chat.ID, exchange.ID); err != nil {
		logger.Error("Failed to link chat %s to exchange %s: %v", chat.ID, exchange.ID, err)
	}

	if input.Message != "" {
		seed := &entity.Message{
			ChatID:         chat.ID,
			SenderID:       requesterID,
			Text:           input.Message,
			IsOfferMessage: true,
		}
		if err := uc.chatRepo.CreateMessage(ctx, seed); err != nil {
			logger.Error("Failed to append offer message to chat %s: %v", chat.ID, err)
		} else if err := uc.chatRepo.SetLastMessage(ctx, chat.ID, &entity.LastMessage{
			Text:      seed.Text,
			CreatedAt: seed.CreatedAt,
		}); err != nil {
			logger.Error("Failed to update last message on chat %s: %v", chat.ID, err)
		}
	}

	uc.notificationUc.notifyBestEffort(ctx, product.OwnerID, requesterID, entity.NotificationNewOffer, exchange.ID, map[string]interface{}{
		"productId":          product.ID,
		"productName":        product.Name,
		"offerType":          offer.Type,
		"offeredProductName": offer.OfferedProductName,
	})

	return exchange, nil
}

// UpdateStatus moves an exchange through its state machine inside a single
// transaction, so concurrent transitions on the same document cannot race.
// The owner decides on pending offers; either party may complete an accepted
// one. The counterparty is notified best-effort after the commit.
func (uc *ExchangeUseCase) UpdateStatus(ctx context.Context, callerID, exchangeID, newStatus string) (*entity.Exchange, error) {
	switch newStatus {
	case entity.ExchangeStatusAccepted, entity.ExchangeStatusRejected, entity.ExchangeStatusCompleted:
	default:
		return nil, errors.BadRequest("Invalid target status", nil)
	}

	updated, err := uc.exchangeRepo.UpdateStatusTx(ctx, exchangeID, func(exchange *entity.Exchange) error {
		if !exchange.IsParty(callerID) {
			return errors.Forbidden("Not a participant in this exchange", nil)
		}

		switch {
		case exchange.Status == entity.ExchangeStatusPending &&
			(newStatus == entity.ExchangeStatusAccepted || newStatus == entity.ExchangeStatusRejected):
			if callerID != exchange.OwnerID {
				return errors.Forbidden("Only the listing owner can decide on a pending offer", nil)
			}
		case exchange.Status == entity.ExchangeStatusAccepted && newStatus == entity.ExchangeStatusCompleted:
			// Either party may complete.
		default:
			return errors.BadRequest("Invalid status transition", nil)
		}

		exchange.Status = newStatus
		if newStatus == entity.ExchangeStatusCompleted {
			now := time.Now()
			exchange.CompletedAt = &now
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	notifType := map[string]string{
		entity.ExchangeStatusAccepted:  entity.NotificationOfferAccepted,
		entity.ExchangeStatusRejected:  entity.NotificationOfferRejected,
		entity.ExchangeStatusCompleted: entity.NotificationExchangeCompleted,
	}[newStatus]

	uc.notificationUc.notifyBestEffort(ctx, updated.Counterparty(callerID), callerID, notifType, updated.ID, map[string]interface{}{
		"productId":   updated.ProductID,
		"productName": updated.ProductName,
	})

	return updated, nil
}

type SubmitReviewInput struct {
	Rating  int
	Comment string
}

// SubmitReview attaches the caller's review to a completed exchange and runs
// the reputation aggregation for the reviewed user. Resubmitting overwrites
// the caller's previous review; points are only awarded the first time.
func (uc *ExchangeUseCase) SubmitReview(ctx context.Context, reviewerID, exchangeID string, input SubmitReviewInput) (*entity.Exchange, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, errors.BadRequest("Rating must be between 1 and 5", nil)
	}
	if len([]rune(input.Comment)) > maxReviewCommentLen {
		return nil, errors.BadRequest(fmt.Sprintf("Comment must be at most %d characters", maxReviewCommentLen), nil)
	}

	exchange, err := uc.exchangeRepo.GetByID(ctx, exchangeID)
	if err != nil {
		return nil, err
	}

	if !exchange.IsParty(reviewerID) {
		return nil, errors.Forbidden("Not a participant in this exchange", nil)
	}
	if exchange.Status != entity.ExchangeStatusCompleted {
		return nil, errors.BadRequest("Reviews can only be submitted on completed exchanges", nil)
	}

	review := entity.Review{
		Rating:         input.Rating,
		Comment:        input.Comment,
		ReviewerID:     reviewerID,
		ReviewedUserID: exchange.Counterparty(reviewerID),
		CreatedAt:      time.Now(),
	}

	before, after, err := uc.exchangeRepo.SetReview(ctx, exchangeID, reviewerID, review)
	if err != nil {
		return nil, err
	}

	// The review write is committed; aggregation failures self-heal on the
	// next review event thanks to the full rescan.
	if err := uc.reputationUc.ApplyExchangeChange(ctx, before, after); err != nil {
		logger.Error("Reputation aggregation failed for exchange %s: %v", exchangeID, err)
	}

	return after, nil
}

func (uc *ExchangeUseCase) GetByID(ctx context.Context, userID, exchangeID string) (*entity.Exchange, error) {
	exchange, err := uc.exchangeRepo.GetByID(ctx, exchangeID)
	if err != nil {
		return nil, err
	}

	if !exchange.IsParty(userID) {
		return nil, errors.Forbidden("Not a participant in this exchange", nil)
	}

	return exchange, nil
}

func (uc *ExchangeUseCase) List(ctx context.Context, userID, role, status string, limit, offset int) ([]*entity.Exchange, int64, error) {
	return uc.exchangeRepo.ListByUserID(ctx, userID, role, status, limit, offset)
}

// HasPendingExchange reports whether the user already has a pending offer on
// the listing, so clients can disable the offer button up front.
func (uc *ExchangeUseCase) HasPendingExchange(ctx context.Context, requesterID, productID string) (bool, error) {
	_, err := uc.exchangeRepo.FindPending(ctx, requesterID, productID)
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
