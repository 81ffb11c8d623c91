package models

import "gorm.io/gorm"

// QuizQuestion represents a single multiple-choice question.
// CorrectIndex maps 0=A, 1=B, 2=C, 3=D.
type QuizQuestion struct {
	gorm.Model
	Question     string `gorm:"not null;type:text" json:"question"`
	OptionA      string `gorm:"type:text" json:"option_a"`
	OptionB      string `gorm:"type:text" json:"option_b"`
	OptionC      string `gorm:"type:text" json:"option_c"`
	OptionD      string `gorm:"type:text" json:"option_d"`
	CorrectIndex int    `gorm:"not null;default:0" json:"correct_index"`

	QuizID uint `gorm:"not null;index" json:"-"`
	Quiz   Quiz `gorm:"foreignKey:QuizID" json:"-"`
}

// Options returns the four option columns as a slice indexed by CorrectIndex
// convention.
func (q *QuizQuestion) Options() [4]string {
	return [4]string{q.OptionA, q.OptionB, q.OptionC, q.OptionD}
}
