package models

import "gorm.io/gorm"

// MaxNameLength is the longest reviewer name, in characters.
const MaxNameLength = 64

// User represents a reviewer. A user is created the first time a name is seen.
type User struct {
	gorm.Model
	Name string `gorm:"size:64;not null;index"`

	Reviews []Review `gorm:"foreignKey:UserID"`
}
