package models

import "gorm.io/gorm"

// User represents a registered account
type User struct {
	gorm.Model
	Email        string `gorm:"unique;not null;size:255" json:"email"`
	PasswordHash string `gorm:"not null;size:255" json:"-"`
	FullName     string `gorm:"size:255" json:"full_name"`
	IsActive     bool   `gorm:"default:true;not null" json:"is_active"`

	FlashcardSets []FlashcardSet `gorm:"foreignKey:UserID" json:"-"`
	Quizzes       []Quiz         `gorm:"foreignKey:UserID" json:"-"`
}
