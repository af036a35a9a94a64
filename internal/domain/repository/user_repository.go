package repository

import (
	"context"

	"sproutswap/internal/domain/entity"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
	ApplyReputation(ctx context.Context, userID string, patch entity.ReputationPatch) error

	// EnsureReputationDefaults zeroes reputation, points and level the first
	// time none of them exist on the document; it never overwrites values.
	EnsureReputationDefaults(ctx context.Context, userID string) error

	Delete(ctx context.Context, id string) error
}
