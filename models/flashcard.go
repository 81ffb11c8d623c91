package models

import "gorm.io/gorm"

// Flashcard represents an individual question/answer card
type Flashcard struct {
	gorm.Model
	Question string `gorm:"not null;type:text" json:"question"`
	Answer   string `gorm:"not null;type:text" json:"answer"`

	SetID        uint         `gorm:"not null;index" json:"-"`
	FlashcardSet FlashcardSet `gorm:"foreignKey:SetID" json:"-"`
}
