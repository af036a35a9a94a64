package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"sproutswap/internal/domain/entity"
	"sproutswap/internal/domain/repository"
	"sproutswap/pkg/errors"
)

type firestoreUserRepository struct {
	client *firestore.Client
}

func NewFirestoreUserRepository(client *firestore.Client) repository.UserRepository {
	return &firestoreUserRepository{
		client: client,
	}
}

func (r *firestoreUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	doc, err := r.client.Collection("users").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("User", err)
		}
		return nil, errors.Internal("Failed to get user", err)
	}

	var user entity.User
	if err := doc.DataTo(&user); err != nil {
		return nil, errors.Internal("Failed to parse user data", err)
	}
	user.ID = doc.Ref.ID

	return &user, nil
}

func (r *firestoreUserRepository) ApplyReputation(ctx context.Context, userID string, patch entity.ReputationPatch) error {
	_, err := r.client.Collection("users").Doc(userID).Update(ctx, []firestore.Update{
		{Path: "reputation", Value: patch.Reputation},
		{Path: "points", Value: patch.Points},
		{Path: "level", Value: patch.Level},
		{Path: "lastUpdated", Value: patch.LastUpdated},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("User", err)
		}
		return errors.Internal("Failed to update user reputation", err)
	}

	return nil
}

func (r *firestoreUserRepository) EnsureReputationDefaults(ctx context.Context, userID string) error {
	docRef := r.client.Collection("users").Doc(userID)

	return r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("User", err)
			}
			return errors.Internal("Failed to get user", err)
		}

		var user entity.User
		if err := doc.DataTo(&user); err != nil {
			return errors.Internal("Failed to parse user data", err)
		}

		// Only seed fields that have never been written. Existing values,
		// including legitimate zeroes, stay untouched.
		if user.Reputation != nil && user.Level != "" {
			return nil
		}

		updates := []firestore.Update{}
		if user.Reputation == nil {
			updates = append(updates, firestore.Update{
				Path:  "reputation",
				Value: &entity.Reputation{AverageRating: 0, TotalReviews: 0},
			})
			updates = append(updates, firestore.Update{Path: "points", Value: 0})
		}
		if user.Level == "" {
			updates = append(updates, firestore.Update{Path: "level", Value: entity.LevelSeed})
		}
		updates = append(updates, firestore.Update{Path: "lastUpdated", Value: time.Now()})

		return tx.Update(docRef, updates)
	})
}

func (r *firestoreUserRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("users").Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete user", err)
	}

	return nil
}
