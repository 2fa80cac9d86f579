package controllers

import (
	"errors"
	"math"
	"strconv"

	"easyquiz/backend/config"
	"easyquiz/backend/middleware"
	"easyquiz/backend/models"
	"easyquiz/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// The history endpoint defaults to the four newest attempts, the display cap
// the dashboard was built around. Full history stays queryable via ?limit=.
const defaultRecentAttempts = 4

type AttemptController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewAttemptController(db *gorm.DB, cfg *config.Config) *AttemptController {
	return &AttemptController{DB: db, Cfg: cfg}
}

type AttemptAnswer struct {
	QuestionID uint   `json:"questionId"`
	Selected   string `json:"selected"`
}

type SubmitAttemptInput struct {
	Answers []AttemptAnswer `json:"answers"`
}

// scoreAttempt grades the chosen labels against the answer key. Questions
// without a submitted answer count as incorrect, never as errors.
func scoreAttempt(questions []models.QuizQuestion, answers []AttemptAnswer) (score, correct int, transcript []models.AnswerRecord) {
	selected := make(map[uint]string, len(answers))
	for _, a := range answers {
		selected[a.QuestionID] = a.Selected
	}

	transcript = make([]models.AnswerRecord, 0, len(questions))
	for _, q := range questions {
		chosen := selected[q.ID]
		isCorrect := chosen != "" && chosen == q.Correct
		if isCorrect {
			correct++
		}
		transcript = append(transcript, models.AnswerRecord{
			QuestionID:   q.ID,
			Question:     q.Text,
			Selected:     chosen,
			SelectedText: q.Option(chosen),
			Correct:      q.Correct,
			CorrectText:  q.Option(q.Correct),
			IsCorrect:    isCorrect,
		})
	}

	total := len(questions)
	if total > 0 {
		score = int(math.Round(float64(correct) / float64(total) * 100))
	}
	return score, correct, transcript
}

// SubmitAttempt godoc
// @Summary Submit a quiz attempt
// @Description Scores the submitted answers and stores the attempt with a review transcript
// @Tags attempts
// @Accept json
// @Produce json
// @Param input body SubmitAttemptInput true "Chosen option labels per question"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /std/quizzes/{id}/attempts [post]
func (ac *AttemptController) SubmitAttempt(c *fiber.Ctx) error {
	quizID, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "Invalid quiz ID")
	}

	var input SubmitAttemptInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse request body")
	}

	var quiz models.Quiz
	err = ac.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("sequence_order")
	}).First(&quiz, quizID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Quiz not found")
		}
		return utils.ServerError(c, "Could not query database")
	}

	if len(quiz.Questions) == 0 {
		return utils.BadRequest(c, "Quiz has no questions yet")
	}

	score, correct, transcript := scoreAttempt(quiz.Questions, input.Answers)

	attempt := models.QuizAttempt{
		StudentID: middleware.UserID(c),
		QuizID:    quiz.ID,
		QuizTitle: quiz.Title,
		Grade:     quiz.Grade,
		Subject:   quiz.Subject,
		Unit:      quiz.Unit,
		Score:     score,
		Correct:   correct,
		Total:     len(quiz.Questions),
	}
	if err := attempt.SetTranscript(transcript); err != nil {
		return utils.ServerError(c, "Failed to save attempt")
	}
	if err := ac.DB.Create(&attempt).Error; err != nil {
		return utils.ServerError(c, "Failed to save attempt")
	}

	return utils.Success(c, fiber.StatusOK, "Attempt scored", fiber.Map{
		"attempt": fiber.Map{
			"id":      attempt.ID,
			"quizId":  attempt.QuizID,
			"title":   attempt.QuizTitle,
			"grade":   attempt.Grade,
			"subject": attempt.Subject,
			"unit":    attempt.Unit,
			"score":   attempt.Score,
			"correct": attempt.Correct,
			"total":   attempt.Total,
			"takenAt": attempt.CreatedAt,
		},
	})
}

// GetAttempts returns the caller's attempts, newest first.
func (ac *AttemptController) GetAttempts(c *fiber.Ctx) error {
	limit := defaultRecentAttempts
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return utils.BadRequest(c, "Invalid limit")
		}
		limit = parsed
	}

	var attempts []models.QuizAttempt
	err := ac.DB.Where("student_id = ?", middleware.UserID(c)).
		Order("created_at DESC").
		Limit(limit).
		Find(&attempts).Error
	if err != nil {
		return utils.ServerError(c, "Failed to load attempts")
	}

	result := make([]fiber.Map, 0, len(attempts))
	for i := range attempts {
		result = append(result, fiber.Map{
			"id":      attempts[i].ID,
			"quizId":  attempts[i].QuizID,
			"title":   attempts[i].QuizTitle,
			"grade":   attempts[i].Grade,
			"subject": attempts[i].Subject,
			"unit":    attempts[i].Unit,
			"score":   attempts[i].Score,
			"correct": attempts[i].Correct,
			"total":   attempts[i].Total,
			"takenAt": attempts[i].CreatedAt,
		})
	}

	return utils.Success(c, fiber.StatusOK, "", fiber.Map{"attempts": result})
}

// GetAttemptReview returns the stored transcript of one of the caller's
// attempts. Review is a pure read-over; nothing is re-scored.
func (ac *AttemptController) GetAttemptReview(c *fiber.Ctx) error {
	attemptID, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "Invalid attempt ID")
	}

	var attempt models.QuizAttempt
	err = ac.DB.Where("student_id = ?", middleware.UserID(c)).First(&attempt, attemptID).Error
	if err != nil {
		return utils.NotFound(c, "Attempt not found")
	}

	transcript, err := attempt.Transcript()
	if err != nil {
		return utils.ServerError(c, "Failed to load attempt")
	}

	return utils.Success(c, fiber.StatusOK, "", fiber.Map{
		"attempt": fiber.Map{
			"id":      attempt.ID,
			"title":   attempt.QuizTitle,
			"score":   attempt.Score,
			"correct": attempt.Correct,
			"total":   attempt.Total,
			"takenAt": attempt.CreatedAt,
			"answers": transcript,
		},
	})
}
