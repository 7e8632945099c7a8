package models

import "gorm.io/gorm"

// RatingUnavailable is stored when the catalog lists no original game rating.
const RatingUnavailable = "Unavailable"

// Game represents a game captured from a catalog search.
// Rows are written once and never refreshed.
type Game struct {
	gorm.Model
	// Catalog text has no length guarantee.
	Name      string `gorm:"type:text;not null;index"`
	Tagline   string `gorm:"type:text"`
	Rating    string `gorm:"type:text"`
	Platforms string `gorm:"type:text"` // Human-readable, e.g. "PC | Mac"

	Reviews []Review `gorm:"foreignKey:GameID"`
}
