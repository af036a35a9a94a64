package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"sproutswap/internal/domain/entity"
	"sproutswap/internal/domain/repository"
)

type firestoreArchiveRepository struct {
	client *firestore.Client
}

func NewFirestoreArchiveRepository(client *firestore.Client) repository.ArchiveRepository {
	return &firestoreArchiveRepository{
		client: client,
	}
}

// ArchiveUser copies the user document and its product listings into the
// archive collection. Writes are plain Sets so a retried cascade overwrites
// the same archive documents instead of failing.
func (r *firestoreArchiveRepository) ArchiveUser(ctx context.Context, user *entity.User, products []*entity.Product) error {
	archiveRef := r.client.Collection("archived_users").Doc(user.ID)

	writer := NewBatchWriter(r.client)

	archived := map[string]interface{}{
		"user":       user,
		"archivedAt": time.Now(),
	}
	if err := writer.Set(ctx, archiveRef, archived); err != nil {
		return err
	}

	for _, product := range products {
		err := writer.Set(ctx, archiveRef.Collection("products").Doc(product.ID), product)
		if err != nil {
			return err
		}
	}

	return writer.Finalize(ctx)
}
