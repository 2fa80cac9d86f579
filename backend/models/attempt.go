package models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// QuizAttempt stores one scored run of a quiz, with the quiz metadata
// denormalized so history survives quiz deletion, and a full per-question
// transcript for review mode.
type QuizAttempt struct {
	gorm.Model
	StudentID uint           `gorm:"index" json:"studentId"`
	QuizID    uint           `json:"quizId"`
	QuizTitle string         `json:"title"`
	Grade     string         `json:"grade"`
	Subject   string         `json:"subject"`
	Unit      string         `json:"unit"`
	Score     int            `json:"score"` // rounded percentage
	Correct   int            `json:"correct"`
	Total     int            `json:"total"`
	Answers   datatypes.JSON `gorm:"type:jsonb" json:"-"`
}

// AnswerRecord is one transcript row. Selected is empty when the question
// was left unanswered. The option texts are denormalized in so review still
// works after the quiz or its questions change.
type AnswerRecord struct {
	QuestionID   uint   `json:"questionId"`
	Question     string `json:"question"`
	Selected     string `json:"selected"`
	SelectedText string `json:"selectedText"`
	Correct      string `json:"correct"`
	CorrectText  string `json:"correctText"`
	IsCorrect    bool   `json:"isCorrect"`
}

func (a *QuizAttempt) Transcript() ([]AnswerRecord, error) {
	if len(a.Answers) == 0 {
		return []AnswerRecord{}, nil
	}
	var records []AnswerRecord
	if err := json.Unmarshal(a.Answers, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (a *QuizAttempt) SetTranscript(records []AnswerRecord) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return err
	}
	a.Answers = datatypes.JSON(raw)
	return nil
}

// UnitProgress marks a unit as completed by a student. Toggling off deletes
// the row, so existence is the whole state.
type UnitProgress struct {
	gorm.Model
	StudentID uint   `gorm:"index:idx_student_unit,unique" json:"studentId"`
	SubjectID uint   `json:"subjectId"`
	UnitID    uint   `gorm:"index:idx_student_unit,unique" json:"unitId"`
	Grade     string `json:"grade"`
	Subject   string `json:"subject"`
	UnitName  string `json:"unitName"`
}
