package repository

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"cloud.google.com/go/firestore"

	"sproutswap/internal/domain/entity"
	"sproutswap/internal/domain/repository"
	"sproutswap/pkg/errors"
	"sproutswap/pkg/logger"
)

type firestoreProductRepository struct {
	client *firestore.Client
}

func NewFirestoreProductRepository(client *firestore.Client) repository.ProductRepository {
	return &firestoreProductRepository{
		client: client,
	}
}

func (r *firestoreProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	doc, err := r.client.Collection("products").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Product", err)
		}
		return nil, errors.Internal("Failed to get product", err)
	}

	var product entity.Product
	if err := doc.DataTo(&product); err != nil {
		return nil, errors.Internal("Failed to parse product data", err)
	}
	product.ID = doc.Ref.ID

	return &product, nil
}

func (r *firestoreProductRepository) ListByOwnerID(ctx context.Context, ownerID string) ([]*entity.Product, error) {
	docs, err := r.client.Collection("products").
		Where("ownerId", "==", ownerID).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to fetch products", err)
	}

	var products []*entity.Product
	for _, doc := range docs {
		var product entity.Product
		if err := doc.DataTo(&product); err != nil {
			logger.Warn("Skipping malformed product %s: %v", doc.Ref.ID, err)
			continue
		}
		product.ID = doc.Ref.ID
		products = append(products, &product)
	}

	return products, nil
}

func (r *firestoreProductRepository) DeleteAll(ctx context.Context, ids []string) error {
	writer := NewBatchWriter(r.client)
	for _, id := range ids {
		if err := writer.Delete(ctx, r.client.Collection("products").Doc(id)); err != nil {
			return err
		}
	}

	return writer.Finalize(ctx)
}
