package repository

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"sproutswap/internal/domain/entity"
	"sproutswap/internal/domain/repository"
	"sproutswap/pkg/errors"
	"sproutswap/pkg/logger"
)

type firestoreExchangeRepository struct {
	client *firestore.Client
}

func NewFirestoreExchangeRepository(client *firestore.Client) repository.ExchangeRepository {
	return &firestoreExchangeRepository{
		client: client,
	}
}

func (r *firestoreExchangeRepository) Create(ctx context.Context, exchange *entity.Exchange) error {
	if exchange.ID == "" {
		exchange.ID = uuid.New().String()
	}

	now := time.Now()
	exchange.CreatedAt = now
	exchange.UpdatedAt = now

	_, err := r.client.Collection("exchanges").Doc(exchange.ID).Set(ctx, exchange)
	if err != nil {
		return errors.Internal("Failed to create exchange", err)
	}

	return nil
}

func (r *firestoreExchangeRepository) GetByID(ctx context.Context, id string) (*entity.Exchange, error) {
	doc, err := r.client.Collection("exchanges").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Exchange", err)
		}
		return nil, errors.Internal("Failed to get exchange", err)
	}

	var exchange entity.Exchange
	if err := doc.DataTo(&exchange); err != nil {
		return nil, errors.Internal("Failed to parse exchange data", err)
	}

	return &exchange, nil
}

func (r *firestoreExchangeRepository) ListByUserID(ctx context.Context, userID, role, status string, limit, offset int) ([]*entity.Exchange, int64, error) {
	var queries []firestore.Query

	base := r.client.Collection("exchanges").Query
	switch role {
	case "requester":
		queries = append(queries, base.Where("requesterId", "==", userID))
	case "owner":
		queries = append(queries, base.Where("ownerId", "==", userID))
	default:
		queries = append(queries,
			base.Where("requesterId", "==", userID),
			base.Where("ownerId", "==", userID))
	}

	seen := make(map[string]bool)
	var exchanges []*entity.Exchange

	for _, query := range queries {
		if status != "" {
			query = query.Where("status", "==", status)
		}

		docs, err := query.Documents(ctx).GetAll()
		if err != nil {
			logger.Error("Firestore error while fetching exchanges for user %s: %v", userID, err)
			return nil, 0, errors.Internal("Failed to fetch exchanges", err)
		}

		for _, doc := range docs {
			if seen[doc.Ref.ID] {
				continue
			}
			seen[doc.Ref.ID] = true

			var exchange entity.Exchange
			if err := doc.DataTo(&exchange); err != nil {
				logger.Warn("Skipping malformed exchange %s: %v", doc.Ref.ID, err)
				continue
			}
			exchanges = append(exchanges, &exchange)
		}
	}

	sort.Slice(exchanges, func(i, j int) bool {
		return exchanges[i].CreatedAt.After(exchanges[j].CreatedAt)
	})

	total := int64(len(exchanges))

	// Paginate in memory; the merged two-query result cannot be paginated
	// server-side.
	start := offset
	if start > len(exchanges) {
		start = len(exchanges)
	}
	end := len(exchanges)
	if limit > 0 && start+limit < end {
		end = start + limit
	}

	return exchanges[start:end], total, nil
}

func (r *firestoreExchangeRepository) ListByStatus(ctx context.Context, statusFilter string) ([]*entity.Exchange, error) {
	docs, err := r.client.Collection("exchanges").Where("status", "==", statusFilter).Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to query exchanges by status", err)
	}

	var exchanges []*entity.Exchange
	for _, doc := range docs {
		var exchange entity.Exchange
		if err := doc.DataTo(&exchange); err != nil {
			logger.Warn("Skipping malformed exchange %s: %v", doc.Ref.ID, err)
			continue
		}
		exchanges = append(exchanges, &exchange)
	}

	return exchanges, nil
}

func (r *firestoreExchangeRepository) ListOpenByUserID(ctx context.Context, userID string) ([]*entity.Exchange, error) {
	open := []string{entity.ExchangeStatusPending, entity.ExchangeStatusAccepted}

	queries := []firestore.Query{
		r.client.Collection("exchanges").Where("requesterId", "==", userID).Where("status", "in", open),
		r.client.Collection("exchanges").Where("ownerId", "==", userID).Where("status", "in", open),
	}

	seen := make(map[string]bool)
	var exchanges []*entity.Exchange

	for _, query := range queries {
		docs, err := query.Documents(ctx).GetAll()
		if err != nil {
			return nil, errors.Internal("Failed to query open exchanges", err)
		}

		for _, doc := range docs {
			if seen[doc.Ref.ID] {
				continue
			}
			seen[doc.Ref.ID] = true

			var exchange entity.Exchange
			if err := doc.DataTo(&exchange); err != nil {
				logger.Warn("Skipping malformed exchange %s: %v", doc.Ref.ID, err)
				continue
			}
			exchanges = append(exchanges, &exchange)
		}
	}

	return exchanges, nil
}

func (r *firestoreExchangeRepository) FindPending(ctx context.Context, requesterID, productID string) (*entity.Exchange, error) {
	query := r.client.Collection("exchanges").
		Where("requesterId", "==", requesterID).
		Where("productId", "==", productID).
		Where("status", "==", entity.ExchangeStatusPending).
		Limit(1)

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to query pending exchange", err)
	}
	if len(docs) == 0 {
		return nil, errors.NotFound("Pending exchange", nil)
	}

	var exchange entity.Exchange
	if err := docs[0].DataTo(&exchange); err != nil {
		return nil, errors.Internal("Failed to parse exchange data", err)
	}

	return &exchange, nil
}

func (r *firestoreExchangeRepository) UpdateStatusTx(ctx context.Context, id string, apply func(exchange *entity.Exchange) error) (*entity.Exchange, error) {
	docRef := r.client.Collection("exchanges").Doc(id)

	var updated *entity.Exchange
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Exchange", err)
			}
			return errors.Internal("Failed to get exchange", err)
		}

		var exchange entity.Exchange
		if err := doc.DataTo(&exchange); err != nil {
			return errors.Internal("Failed to parse exchange data", err)
		}

		if err := apply(&exchange); err != nil {
			return err
		}

		exchange.UpdatedAt = time.Now()
		updated = &exchange

		return tx.Set(docRef, &exchange)
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (r *firestoreExchangeRepository) SetReview(ctx context.Context, id, reviewerID string, review entity.Review) (*entity.Exchange, *entity.Exchange, error) {
	docRef := r.client.Collection("exchanges").Doc(id)

	var before, after *entity.Exchange
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Exchange", err)
			}
			return errors.Internal("Failed to get exchange", err)
		}

		var prev entity.Exchange
		if err := doc.DataTo(&prev); err != nil {
			return errors.Internal("Failed to parse exchange data", err)
		}

		next := prev
		next.Reviews = make(map[string]entity.Review, len(prev.Reviews)+1)
		for k, v := range prev.Reviews {
			next.Reviews[k] = v
		}
		next.Reviews[reviewerID] = review
		next.UpdatedAt = time.Now()

		before = &prev
		after = &next

		return tx.Set(docRef, &next)
	})
	if err != nil {
		return nil, nil, err
	}

	return before, after, nil
}

func (r *firestoreExchangeRepository) ForceRejectOpenByUser(ctx context.Context, userID, reason string) ([]*entity.Exchange, error) {
	open, err := r.ListOpenByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(open) == 0 {
		return nil, nil
	}

	now := time.Now()
	writer := NewBatchWriter(r.client)

	for _, exchange := range open {
		exchange.Status = entity.ExchangeStatusRejected
		exchange.RejectionReason = reason
		exchange.UpdatedAt = now

		err := writer.Update(ctx, r.client.Collection("exchanges").Doc(exchange.ID), []firestore.Update{
			{Path: "status", Value: entity.ExchangeStatusRejected},
			{Path: "rejectionReason", Value: reason},
			{Path: "updatedAt", Value: now},
		})
		if err != nil {
			return nil, err
		}
	}

	if err := writer.Finalize(ctx); err != nil {
		return nil, err
	}

	return open, nil
}
