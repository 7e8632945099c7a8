package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gamereviews/backend/internal/models"

	"gorm.io/gorm"
)

// NormalizeName trims surrounding whitespace from a reviewer name.
func NormalizeName(name string) string {
	return strings.TrimSpace(name)
}

// FindOrCreateUser resolves a reviewer by name, creating the user on first sight.
// Names match case-insensitively after trimming; the first spelling seen is kept.
func FindOrCreateUser(ctx context.Context, db *gorm.DB, name string) (*models.User, error) {
	name = NormalizeName(name)
	if name == "" {
		return nil, ErrReviewerRequired
	}
	db = db.WithContext(ctx)

	var user models.User
	err := db.Where("LOWER(name) = LOWER(?)", name).Order("id").First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("look up user %q: %w", name, err)
	}

	user = models.User{Name: name}
	if err := db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("create user %q: %w", name, err)
	}
	return &user, nil
}

// ListUsers returns every reviewer in creation order.
func ListUsers(ctx context.Context, db *gorm.DB) ([]models.User, error) {
	var users []models.User
	if err := db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
