// Package service holds the review board's read and insert flows. Every
// function takes the *gorm.DB to run against, so callers can pass
// database.DB or a transaction.
package service

import (
	"context"
	"errors"
	"fmt"

	"gamereviews/backend/internal/catalog"
	"gamereviews/backend/internal/models"

	"gorm.io/gorm"
)

// SaveGames stores each catalog record whose name is not yet in the games
// table. Existing rows are left untouched. It returns the number inserted.
func SaveGames(ctx context.Context, db *gorm.DB, games []catalog.Game) (int, error) {
	db = db.WithContext(ctx)

	inserted := 0
	for _, g := range games {
		if g.Name == "" {
			continue
		}

		var existing models.Game
		err := db.Where("name = ?", g.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return inserted, fmt.Errorf("look up game %q: %w", g.Name, err)
		}

		row := g.Model()
		if err := db.Create(&row).Error; err != nil {
			return inserted, fmt.Errorf("insert game %q: %w", g.Name, err)
		}
		inserted++
	}
	return inserted, nil
}

// FindGameByName returns the earliest stored game with the given name, ignoring case.
func FindGameByName(ctx context.Context, db *gorm.DB, name string) (*models.Game, error) {
	var game models.Game
	err := db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?)", name).
		Order("id").
		First(&game).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("look up game %q: %w", name, err)
	}
	return &game, nil
}

// ListGames returns every stored game ordered by name.
func ListGames(ctx context.Context, db *gorm.DB) ([]models.Game, error) {
	var games []models.Game
	if err := db.WithContext(ctx).Order("name, id").Find(&games).Error; err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	return games, nil
}

// RecentGames returns the most recently stored games, newest first.
func RecentGames(ctx context.Context, db *gorm.DB, limit int) ([]models.Game, error) {
	var games []models.Game
	if err := db.WithContext(ctx).Order("id DESC").Limit(limit).Find(&games).Error; err != nil {
		return nil, fmt.Errorf("list recent games: %w", err)
	}
	return games, nil
}
