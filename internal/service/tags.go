package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gamereviews/backend/internal/models"

	"gorm.io/gorm"
)

// SplitTags splits a comma-separated tag string into trimmed, non-empty,
// distinct tokens in first-seen order.
func SplitTags(raw string) []string {
	var tags []string
	seen := make(map[string]struct{})
	for _, part := range strings.Split(raw, ",") {
		tag := strings.TrimSpace(part)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}

// ParseTagQuery flattens repeated, comma-separated query values into distinct tags.
func ParseTagQuery(values []string) []string {
	return SplitTags(strings.Join(values, ","))
}

// AddTags attaches each tag in raw to the review, skipping tags the review already has.
func AddTags(ctx context.Context, db *gorm.DB, reviewID uint, raw string) ([]models.Tag, error) {
	db = db.WithContext(ctx)

	var stored []models.Tag
	for _, text := range SplitTags(raw) {
		var existing models.Tag
		err := db.Where("review_id = ? AND text = ?", reviewID, text).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("look up tag %q: %w", text, err)
		}

		tag := models.Tag{ReviewID: reviewID, Text: text}
		if err := db.Omit("Review").Create(&tag).Error; err != nil {
			return nil, fmt.Errorf("insert tag %q: %w", text, err)
		}
		stored = append(stored, tag)
	}
	return stored, nil
}

// TagMatch is one row of a tag lookup.
type TagMatch struct {
	UserName string `json:"user_name"`
	GameName string `json:"game_name"`
	Score    int    `json:"score"`
	Tag      string `json:"tag"`
}

// FindReviewsByTags resolves every review carrying one of tags. Identical
// matches are reported once.
func FindReviewsByTags(ctx context.Context, db *gorm.DB, tags []string) ([]TagMatch, error) {
	db = db.WithContext(ctx)

	matches := []TagMatch{}
	seen := make(map[TagMatch]struct{})
	for _, text := range tags {
		var rows []models.Tag
		err := db.Preload("Review.Game").Preload("Review.User").
			Where("text = ?", text).
			Order("id").
			Find(&rows).Error
		if err != nil {
			return nil, fmt.Errorf("find tag %q: %w", text, err)
		}

		for _, row := range rows {
			m := TagMatch{
				UserName: row.Review.User.Name,
				GameName: row.Review.Game.Name,
				Score:    row.Review.Score,
				Tag:      row.Text,
			}
			if _, dup := seen[m]; dup {
				continue
			}
			seen[m] = struct{}{}
			matches = append(matches, m)
		}
	}
	return matches, nil
}
