package models

import "gorm.io/gorm"

const (
	// MinScore and MaxScore bound a review score, inclusive.
	MinScore = 1
	MaxScore = 10

	// DefaultDescription is stored when a reviewer gives no text.
	DefaultDescription = "No rationale given."
)

// Review is a user's score and description for a game.
// The composite index on (UserID, GameID) backs the one-review-per-game rule.
type Review struct {
	gorm.Model
	GameID      uint   `gorm:"not null;uniqueIndex:idx_review_user_game"`
	UserID      uint   `gorm:"not null;uniqueIndex:idx_review_user_game"`
	Score       int    `gorm:"not null"`
	Description string `gorm:"type:text"`

	Game Game  `gorm:"foreignKey:GameID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	User User  `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	Tags []Tag `gorm:"foreignKey:ReviewID"`
}
