package repository

import (
	"context"

	"sproutswap/internal/domain/entity"
)

// ArchiveRepository retains a copy of deleted account data for compliance.
// Archive writes are upserts so a retried cascade is a no-op.
type ArchiveRepository interface {
	ArchiveUser(ctx context.Context, user *entity.User, products []*entity.Product) error
}
