package services

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/hackagra/mindverse-api/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrInvalidRating  = errors.New("rating must be between 1 and 5")
	ErrCommentMissing = errors.New("comment is required")
	ErrCommentTooLong = errors.New("comment cannot be more than 500 characters")
	ErrSelfReview     = errors.New("you cannot review your own profile")
	ErrSeniorNotFound = errors.New("senior profile not found or not active")
)

// MaxCommentLength is the maximum length of a review comment in characters
const MaxCommentLength = 500

// ReviewService owns the review ledger and keeps each senior's average
// rating in sync with it.
type ReviewService struct {
	db *gorm.DB
}

// NewReviewService creates a new review service
func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

// SubmitReview validates and persists a review, then recomputes the senior's
// average rating. The insert and the recompute run in one transaction with
// the senior row locked, so two concurrent submissions for the same senior
// cannot overwrite each other's mean.
func (s *ReviewService) SubmitReview(ctx context.Context, reviewerID, seniorID uint, rating int, comment string) (*model.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}
	if comment == "" {
		return nil, ErrCommentMissing
	}
	if utf8.RuneCountInString(comment) > MaxCommentLength {
		return nil, ErrCommentTooLong
	}
	if reviewerID == seniorID {
		return nil, ErrSelfReview
	}

	var review model.Review

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock the senior row so concurrent submissions serialize
		var senior model.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&senior, seniorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSeniorNotFound
			}
			return err
		}
		if !senior.IsSeniorProfileActive {
			return ErrSeniorNotFound
		}

		review = model.Review{
			SeniorID:   seniorID,
			ReviewerID: reviewerID,
			Rating:     rating,
			Comment:    comment,
		}
		if err := tx.Create(&review).Error; err != nil {
			return err
		}

		var ratings []int
		if err := tx.Model(&model.Review{}).
			Where("senior_id = ?", seniorID).
			Pluck("rating", &ratings).Error; err != nil {
			return err
		}

		return tx.Model(&model.User{}).
			Where("id = ?", seniorID).
			UpdateColumn("average_rating", MeanRating(ratings)).Error
	})
	if err != nil {
		return nil, err
	}

	// Attach the reviewer projection for the response
	if err := s.db.WithContext(ctx).Preload("Reviewer").First(&review, review.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload review: %w", err)
	}

	return &review, nil
}

// ReviewsForSenior returns all reviews for a senior, newest first, with the
// reviewer relation preloaded.
func (s *ReviewService) ReviewsForSenior(ctx context.Context, seniorID uint) ([]model.Review, error) {
	var reviews []model.Review
	err := s.db.WithContext(ctx).
		Preload("Reviewer").
		Where("senior_id = ?", seniorID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

// ReconcileAverageRatings re-derives every senior's average rating from the
// ledger. The transactional path keeps ratings exact; this sweep repairs any
// drift left behind by historical data.
func (s *ReviewService) ReconcileAverageRatings(ctx context.Context) (int64, error) {
	result := s.db.WithContext(ctx).Exec(`
		UPDATE users SET average_rating = COALESCE(sub.avg_rating, 0)
		FROM (
			SELECT u.id, AVG(r.rating) AS avg_rating
			FROM users u
			LEFT JOIN reviews r ON r.senior_id = u.id
			WHERE u.is_senior_profile_active = true
			GROUP BY u.id
		) sub
		WHERE users.id = sub.id
		AND users.average_rating IS DISTINCT FROM COALESCE(sub.avg_rating, 0)
	`)
	return result.RowsAffected, result.Error
}

// MeanRating returns the arithmetic mean of the ratings, or 0 when there are
// none.
func MeanRating(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	total := 0
	for _, r := range ratings {
		total += r
	}
	return float64(total) / float64(len(ratings))
}
