package repository

import (
	"context"

	"sproutswap/internal/domain/entity"
)

type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	ListByOwnerID(ctx context.Context, ownerID string) ([]*entity.Product, error)
	DeleteAll(ctx context.Context, ids []string) error
}
