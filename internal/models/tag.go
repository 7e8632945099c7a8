package models

import "gorm.io/gorm"

// MaxTagLength is the longest tag, in characters, a review may carry.
const MaxTagLength = 64

// Tag is a free-text label attached to a review (e.g. "funny", "short").
type Tag struct {
	gorm.Model
	ReviewID uint   `gorm:"not null;index:idx_tag_text_review,priority:2"`
	Text     string `gorm:"size:64;not null;index:idx_tag_text_review,priority:1"`

	Review Review `gorm:"foreignKey:ReviewID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
