package models

import (
	"gorm.io/gorm"
)

// PreferenceLedger stores a user's standing avoid/limit/goal lists as
// comma-separated values, one row per user.
type PreferenceLedger struct {
	gorm.Model
	UserID uint `gorm:"uniqueIndex;not null"`
	Avoid  string
	Limit  string
	Goals  string
}
