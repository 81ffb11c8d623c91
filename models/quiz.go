package models

import "gorm.io/gorm"

// Quiz represents a multiple-choice quiz
type Quiz struct {
	gorm.Model
	Topic    string `gorm:"not null;size:255;index" json:"topic"`
	Title    string `gorm:"not null;size:255" json:"title"`
	PublicID string `gorm:"size:100;uniqueIndex" json:"public_id"`

	UserID uint `gorm:"not null;index" json:"-"`
	User   User `gorm:"foreignKey:UserID" json:"-"`

	Questions []QuizQuestion `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
}
