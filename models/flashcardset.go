package models

import "gorm.io/gorm"

// FlashcardSet represents a generated or imported collection of flashcards
type FlashcardSet struct {
	gorm.Model
	Topic       string `gorm:"not null;size:255;index" json:"topic"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	PublicID    string `gorm:"size:100;uniqueIndex" json:"public_id"`

	UserID uint `gorm:"not null;index" json:"-"`
	User   User `gorm:"foreignKey:UserID" json:"-"`

	Flashcards []Flashcard `gorm:"foreignKey:SetID;constraint:OnDelete:CASCADE" json:"flashcards,omitempty"`
}
