package models

import "gorm.io/gorm"

// UnitAll marks a quiz that covers a whole subject rather than a single unit.
const UnitAll = "All Units"

// Quiz is unique per grade+subject+unit combination.
type Quiz struct {
	gorm.Model
	Grade         string         `gorm:"index;not null" json:"grade"`
	Subject       string         `gorm:"not null" json:"subject"`
	Unit          string         `gorm:"not null;default:'All Units'" json:"unit"`
	Title         string         `gorm:"not null" json:"title"`
	Description   string         `json:"description"`
	QuestionLimit int            `gorm:"default:1" json:"limit"`
	Questions     []QuizQuestion `json:"questions"`
}

// QuizQuestion holds four labeled choices and the label of the correct one.
type QuizQuestion struct {
	gorm.Model
	QuizID        uint   `gorm:"index" json:"quizId"`
	Text          string `gorm:"not null" json:"text"`
	OptionA       string `json:"a"`
	OptionB       string `json:"b"`
	OptionC       string `json:"c"`
	OptionD       string `json:"d"`
	Correct       string `json:"correct"` // one of "a".."d"
	SequenceOrder int    `json:"order"`
}

// Option returns the choice text for a label, or "" for an unknown label.
func (q *QuizQuestion) Option(label string) string {
	switch label {
	case "a":
		return q.OptionA
	case "b":
		return q.OptionB
	case "c":
		return q.OptionC
	case "d":
		return q.OptionD
	}
	return ""
}
