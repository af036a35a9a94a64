package usecase

import (
	"context"
	"math"
	"sync"
	"time"

	"sproutswap/internal/domain/entity"
	"sproutswap/internal/domain/repository"
	"sproutswap/pkg/logger"
)

type ReputationUseCase struct {
	exchangeRepo repository.ExchangeRepository
	userRepo     repository.UserRepository
}

func NewReputationUseCase(
	exchangeRepo repository.ExchangeRepository,
	userRepo repository.UserRepository,
) *ReputationUseCase {
	return &ReputationUseCase{
		exchangeRepo: exchangeRepo,
		userRepo:     userRepo,
	}
}

// PointsForRating returns the points awarded for one newly submitted review.
func PointsForRating(rating int) int {
	points := 15
	switch rating {
	case 5:
		points += 10
	case 4:
		points += 5
	}
	return points
}

// LevelForPoints maps an accumulated point total to a gardener level.
func LevelForPoints(points int) string {
	switch {
	case points < 51:
		return entity.LevelSeed
	case points <= 150:
		return entity.LevelSprout
	case points <= 300:
		return entity.LevelGardener
	case points <= 500:
		return entity.LevelHarvester
	default:
		return entity.LevelMasterGrower
	}
}

// ApplyExchangeChange reacts to an exchange document changing. It diffs the
// review map, and for every reviewer whose entry is new or modified,
// recomputes the reviewed user's aggregate reputation. Per-reviewer updates
// run concurrently; one failing update is logged and does not block the rest.
func (uc *ReputationUseCase) ApplyExchangeChange(ctx context.Context, before, after *entity.Exchange) error {
	if after == nil {
		return nil
	}

	changed := changedReviewers(before, after)
	if len(changed) == 0 {
		return nil
	}

	var wg sync.WaitGroup
	for _, reviewerID := range changed {
		review := after.Reviews[reviewerID]
		if review.ReviewedUserID == "" {
			logger.Warn("Review by %s on exchange %s has no reviewed user, skipping", reviewerID, after.ID)
			continue
		}

		isNew := true
		if before != nil {
			_, existed := before.Reviews[reviewerID]
			isNew = !existed
		}

		wg.Add(1)
		go func(reviewedUserID string, rating int, isNew bool) {
			defer wg.Done()
			if err := uc.recompute(ctx, reviewedUserID, rating, isNew); err != nil {
				logger.Error("Failed to update reputation for user %s: %v", reviewedUserID, err)
			}
		}(review.ReviewedUserID, review.Rating, isNew)
	}
	wg.Wait()

	return nil
}

// EnsureDefaults seeds zeroed reputation fields on a user document the first
// time none of them exist. Safe to call on every user update.
func (uc *ReputationUseCase) EnsureDefaults(ctx context.Context, userID string) error {
	return uc.userRepo.EnsureReputationDefaults(ctx, userID)
}

// recompute rescans every completed exchange to rebuild the user's average
// rating and review count from ground truth, then applies the point award for
// a brand-new review. The full rescan keeps the aggregate consistent no
// matter how trigger invocations are coalesced or retried.
func (uc *ReputationUseCase) recompute(ctx context.Context, reviewedUserID string, newRating int, isNewReview bool) error {
	completed, err := uc.exchangeRepo.ListByStatus(ctx, entity.ExchangeStatusCompleted)
	if err != nil {
		return err
	}

	seen := make(map[string]bool)
	totalRating := 0
	reviewCount := 0

	for _, exchange := range completed {
		for reviewerID, review := range exchange.Reviews {
			if review.ReviewedUserID != reviewedUserID {
				continue
			}
			key := exchange.ID + ":" + reviewerID
			if seen[key] {
				continue
			}
			seen[key] = true

			totalRating += review.Rating
			reviewCount++
		}
	}

	averageRating := 0.0
	if reviewCount > 0 {
		averageRating = math.Round(float64(totalRating)/float64(reviewCount)*10) / 10
	}

	user, err := uc.userRepo.GetByID(ctx, reviewedUserID)
	if err != nil {
		return err
	}

	newPoints := user.Points
	if isNewReview {
		newPoints += PointsForRating(newRating)
	}

	patch := entity.ReputationPatch{
		Reputation: entity.Reputation{
			AverageRating: averageRating,
			TotalReviews:  reviewCount,
		},
		Points:      newPoints,
		Level:       LevelForPoints(newPoints),
		LastUpdated: time.Now(),
	}

	return uc.userRepo.ApplyReputation(ctx, reviewedUserID, patch)
}

// changedReviewers lists reviewer ids whose entry is absent in before or
// differs in rating, comment or timestamp.
func changedReviewers(before, after *entity.Exchange) []string {
	var changed []string
	for reviewerID, review := range after.Reviews {
		if before == nil {
			changed = append(changed, reviewerID)
			continue
		}
		prev, ok := before.Reviews[reviewerID]
		if !ok || prev.Rating != review.Rating || prev.Comment != review.Comment || !prev.CreatedAt.Equal(review.CreatedAt) {
			changed = append(changed, reviewerID)
		}
	}
	return changed
}
