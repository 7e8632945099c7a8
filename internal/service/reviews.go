package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"gamereviews/backend/internal/models"

	"gorm.io/gorm"
)

// ReviewInput is a review as submitted by a reviewer.
type ReviewInput struct {
	Reviewer    string
	GameName    string
	Score       int
	Description string
	Tags        string // comma-separated
}

// ValidScore reports whether score is within the accepted range.
func ValidScore(score int) bool {
	return score >= models.MinScore && score <= models.MaxScore
}

// SubmitReview stores a review and its tags.
//
// The user is created if unknown, but the game must already have been stored
// by a search. A second review for the same user and game is rejected.
// Everything after validation runs in one transaction.
func SubmitReview(ctx context.Context, db *gorm.DB, in ReviewInput) (*models.Review, error) {
	if !ValidScore(in.Score) {
		return nil, ErrScoreOutOfRange
	}
	if NormalizeName(in.Reviewer) == "" {
		return nil, ErrReviewerRequired
	}
	if utf8.RuneCountInString(NormalizeName(in.Reviewer)) > models.MaxNameLength {
		return nil, ErrReviewerTooLong
	}
	for _, tag := range SplitTags(in.Tags) {
		if utf8.RuneCountInString(tag) > models.MaxTagLength {
			return nil, fmt.Errorf("%w: %q", ErrTagTooLong, tag)
		}
	}
	gameName := strings.TrimSpace(in.GameName)
	if gameName == "" {
		return nil, ErrGameNameRequired
	}

	description := strings.TrimSpace(in.Description)
	if description == "" {
		description = models.DefaultDescription
	}

	var review models.Review
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := FindOrCreateUser(ctx, tx, in.Reviewer)
		if err != nil {
			return err
		}

		game, err := FindGameByName(ctx, tx, gameName)
		if err != nil {
			return err
		}

		var existing models.Review
		err = tx.Where("user_id = ? AND game_id = ?", user.ID, game.ID).First(&existing).Error
		if err == nil {
			return ErrDuplicateReview
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("look up existing review: %w", err)
		}

		review = models.Review{
			GameID:      game.ID,
			UserID:      user.ID,
			Score:       in.Score,
			Description: description,
		}
		if err := tx.Omit("Game", "User", "Tags").Create(&review).Error; err != nil {
			// Lost a race with a concurrent submission.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateReview
			}
			return fmt.Errorf("insert review: %w", err)
		}

		tags, err := AddTags(ctx, tx, review.ID, in.Tags)
		if err != nil {
			return err
		}

		review.Game = *game
		review.User = *user
		review.Tags = tags
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// ListReviews returns one page of reviews, newest first, with game, user and
// tags loaded, plus the total number of reviews.
func ListReviews(ctx context.Context, db *gorm.DB, page, limit int) ([]models.Review, int64, error) {
	db = db.WithContext(ctx)

	var total int64
	if err := db.Model(&models.Review{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count reviews: %w", err)
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	// Pages whose offset does not fit are past the end.
	if page-1 > math.MaxInt32/limit {
		return []models.Review{}, total, nil
	}

	var reviews []models.Review
	err := db.Preload("Game").Preload("User").Preload("Tags").
		Order("id DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, total, nil
}
