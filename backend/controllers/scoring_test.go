package controllers

import (
	"testing"

	"easyquiz/backend/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func twoQuestionQuiz() []models.QuizQuestion {
	return []models.QuizQuestion{
		{Model: gorm.Model{ID: 1}, Text: "Q1", OptionA: "1", OptionB: "2", Correct: "a"},
		{Model: gorm.Model{ID: 2}, Text: "Q2", OptionA: "3", OptionB: "4", Correct: "a"},
	}
}

func TestScoreAttemptHalfCorrect(t *testing.T) {
	questions := twoQuestionQuiz()
	answers := []AttemptAnswer{
		{QuestionID: 1, Selected: "a"},
		{QuestionID: 2, Selected: "b"},
	}

	score, correct, transcript := scoreAttempt(questions, answers)

	assert.Equal(t, 50, score)
	assert.Equal(t, 1, correct)
	assert.Len(t, transcript, 2)
	assert.True(t, transcript[0].IsCorrect)
	assert.False(t, transcript[1].IsCorrect)
	assert.Equal(t, "1", transcript[0].SelectedText)
	assert.Equal(t, "3", transcript[1].CorrectText)
}

func TestScoreAttemptMissingAnswersCountAsIncorrect(t *testing.T) {
	questions := twoQuestionQuiz()

	score, correct, transcript := scoreAttempt(questions, []AttemptAnswer{
		{QuestionID: 1, Selected: "a"},
	})

	assert.Equal(t, 50, score)
	assert.Equal(t, 1, correct)
	assert.Equal(t, "", transcript[1].Selected)
	assert.False(t, transcript[1].IsCorrect)
}

func TestScoreAttemptAllMissing(t *testing.T) {
	score, correct, transcript := scoreAttempt(twoQuestionQuiz(), nil)

	assert.Equal(t, 0, score)
	assert.Equal(t, 0, correct)
	assert.Len(t, transcript, 2)
}

func TestScoreAttemptRoundsPercentage(t *testing.T) {
	questions := []models.QuizQuestion{
		{Model: gorm.Model{ID: 1}, Correct: "a"},
		{Model: gorm.Model{ID: 2}, Correct: "a"},
		{Model: gorm.Model{ID: 3}, Correct: "a"},
	}
	answers := []AttemptAnswer{{QuestionID: 1, Selected: "a"}}

	score, correct, _ := scoreAttempt(questions, answers)

	// 1/3 rounds to 33, not truncates to 33.33
	assert.Equal(t, 33, score)
	assert.Equal(t, 1, correct)

	answers = append(answers, AttemptAnswer{QuestionID: 2, Selected: "a"})
	score, _, _ = scoreAttempt(questions, answers)
	assert.Equal(t, 67, score)
}

func TestScoreAttemptIgnoresUnknownQuestionIDs(t *testing.T) {
	questions := twoQuestionQuiz()
	answers := []AttemptAnswer{
		{QuestionID: 99, Selected: "a"},
		{QuestionID: 1, Selected: "a"},
	}

	score, correct, transcript := scoreAttempt(questions, answers)

	assert.Equal(t, 50, score)
	assert.Equal(t, 1, correct)
	assert.Len(t, transcript, 2)
}
