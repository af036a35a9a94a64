package repository

import (
	"context"

	"sproutswap/internal/domain/entity"
)

type ExchangeRepository interface {
	Create(ctx context.Context, exchange *entity.Exchange) error
	GetByID(ctx context.Context, id string) (*entity.Exchange, error)
	ListByUserID(ctx context.Context, userID, role, status string, limit, offset int) ([]*entity.Exchange, int64, error)
	ListByStatus(ctx context.Context, status string) ([]*entity.Exchange, error)
	ListOpenByUserID(ctx context.Context, userID string) ([]*entity.Exchange, error)
	FindPending(ctx context.Context, requesterID, productID string) (*entity.Exchange, error)

	// UpdateStatusTx runs apply inside a store transaction: the exchange is
	// re-read, apply validates and mutates it, and the write only commits if
	// no concurrent writer got there first.
	UpdateStatusTx(ctx context.Context, id string, apply func(exchange *entity.Exchange) error) (*entity.Exchange, error)

	// SetReview merges a single reviewer's entry into the reviews map and
	// returns the document states before and after the write.
	SetReview(ctx context.Context, id, reviewerID string, review entity.Review) (before, after *entity.Exchange, err error)

	// ForceRejectOpenByUser moves every pending or accepted exchange of the
	// user to rejected with the given reason, batched, and returns the
	// affected exchanges so callers can notify counterparties.
	ForceRejectOpenByUser(ctx context.Context, userID, reason string) ([]*entity.Exchange, error)
}
