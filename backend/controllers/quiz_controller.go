package controllers

import (
	"errors"

	"easyquiz/backend/config"
	"easyquiz/backend/models"
	"easyquiz/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type QuizController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewQuizController(db *gorm.DB, cfg *config.Config) *QuizController {
	return &QuizController{DB: db, Cfg: cfg}
}

// GetQuizzes lists quizzes with questions for authoring. Filters: ?grade=,
// ?subject=, ?unit=.
func (qc *QuizController) GetQuizzes(c *fiber.Ctx) error {
	query := qc.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("sequence_order")
	})
	if grade := c.Query("grade"); grade != "" {
		query = query.Where("grade = ?", grade)
	}
	if subject := c.Query("subject"); subject != "" {
		query = query.Where("subject = ?", subject)
	}
	if unit := c.Query("unit"); unit != "" {
		query = query.Where("unit = ?", unit)
	}

	var quizzes []models.Quiz
	if err := query.Order("grade, subject, unit").Find(&quizzes).Error; err != nil {
		return utils.ServerError(c, "Failed to load quizzes")
	}

	return utils.Success(c, fiber.StatusOK, "", fiber.Map{"quizzes": quizzes})
}

// GetStudentQuizzes serves quizzes with the correct labels stripped, so the
// answer key never reaches the client taking the quiz.
func (qc *QuizController) GetStudentQuizzes(c *fiber.Ctx) error {
	query := qc.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("sequence_order")
	})
	if grade := c.Query("grade"); grade != "" {
		query = query.Where("grade = ?", grade)
	}
	if subject := c.Query("subject"); subject != "" {
		query = query.Where("subject = ?", subject)
	}
	if unit := c.Query("unit"); unit != "" {
		query = query.Where("unit = ?", unit)
	}

	var quizzes []models.Quiz
	if err := query.Order("grade, subject, unit").Find(&quizzes).Error; err != nil {
		return utils.ServerError(c, "Failed to load quizzes")
	}

	result := make([]fiber.Map, 0, len(quizzes))
	for i := range quizzes {
		questions := make([]fiber.Map, 0, len(quizzes[i].Questions))
		for _, q := range quizzes[i].Questions {
			questions = append(questions, fiber.Map{
				"id":    q.ID,
				"text":  q.Text,
				"a":     q.OptionA,
				"b":     q.OptionB,
				"c":     q.OptionC,
				"d":     q.OptionD,
				"order": q.SequenceOrder,
			})
		}
		result = append(result, fiber.Map{
			"id":          quizzes[i].ID,
			"grade":       quizzes[i].Grade,
			"subject":     quizzes[i].Subject,
			"unit":        quizzes[i].Unit,
			"title":       quizzes[i].Title,
			"description": quizzes[i].Description,
			"limit":       quizzes[i].QuestionLimit,
			"questions":   questions,
		})
	}

	return utils.Success(c, fiber.StatusOK, "", fiber.Map{"quizzes": result})
}

type AddQuizInput struct {
	Grade       string `json:"grade" validate:"required"`
	Subject     string `json:"subject" validate:"required"`
	Unit        string `json:"unit"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Limit       int    `json:"limit" validate:"required,min=1"`
}

// AddQuiz godoc
// @Summary Create a quiz
// @Description One quiz per grade+subject+unit combination
// @Tags quizzes
// @Accept json
// @Produce json
// @Param input body AddQuizInput true "Quiz data"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /adm/quizzes/add [post]
func (qc *QuizController) AddQuiz(c *fiber.Ctx) error {
	var input AddQuizInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse request body")
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	if input.Unit == "" {
		input.Unit = models.UnitAll
	}

	var existing models.Quiz
	err := qc.DB.Where("grade = ? AND subject = ? AND unit = ?",
		input.Grade, input.Subject, input.Unit).First(&existing).Error
	if err == nil {
		return utils.Conflict(c, "Quiz for this grade, subject and unit already exists")
	}

	quiz := models.Quiz{
		Grade:         input.Grade,
		Subject:       input.Subject,
		Unit:          input.Unit,
		Title:         input.Title,
		Description:   input.Description,
		QuestionLimit: input.Limit,
	}
	if err := qc.DB.Create(&quiz).Error; err != nil {
		return utils.ServerError(c, "Failed to add quiz")
	}

	return utils.Success(c, fiber.StatusOK, "Quiz added", fiber.Map{"quiz": quiz})
}

type RemoveQuizInput struct {
	ID uint `json:"id" validate:"required"`
}

func (qc *QuizController) RemoveQuiz(c *fiber.Ctx) error {
	var input RemoveQuizInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse request body")
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.BadRequest(c, "Quiz id is required")
	}

	var quiz models.Quiz
	if err := qc.DB.First(&quiz, input.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Quiz not found")
		}
		return utils.ServerError(c, "Failed to remove quiz")
	}

	txErr := qc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("quiz_id = ?", quiz.ID).Delete(&models.QuizQuestion{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&quiz).Error
	})
	if txErr != nil {
		return utils.ServerError(c, "Failed to remove quiz")
	}

	return utils.Success(c, fiber.StatusOK, "Quiz removed", nil)
}

type QuestionInput struct {
	Text    string `json:"text" validate:"required"`
	OptionA string `json:"a" validate:"required"`
	OptionB string `json:"b" validate:"required"`
	OptionC string `json:"c" validate:"required"`
	OptionD string `json:"d" validate:"required"`
	Correct string `json:"correct" validate:"required,oneof=a b c d"`
}

// AddQuestion appends a question, enforcing the quiz's question limit.
func (qc *QuizController) AddQuestion(c *fiber.Ctx) error {
	quizID, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "Invalid quiz ID")
	}

	var input QuestionInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse request body")
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	var quiz models.Quiz
	if err := qc.DB.First(&quiz, quizID).Error; err != nil {
		return utils.NotFound(c, "Quiz not found")
	}

	var count int64
	qc.DB.Model(&models.QuizQuestion{}).Where("quiz_id = ?", quiz.ID).Count(&count)
	if int(count) >= quiz.QuestionLimit {
		return utils.Conflict(c, "Question limit reached for this quiz")
	}

	question := models.QuizQuestion{
		QuizID:        quiz.ID,
		Text:          input.Text,
		OptionA:       input.OptionA,
		OptionB:       input.OptionB,
		OptionC:       input.OptionC,
		OptionD:       input.OptionD,
		Correct:       input.Correct,
		SequenceOrder: int(count) + 1,
	}
	if err := qc.DB.Create(&question).Error; err != nil {
		return utils.ServerError(c, "Failed to add question")
	}

	return utils.Success(c, fiber.StatusOK, "Question added", fiber.Map{"question": question})
}

func (qc *QuizController) UpdateQuestion(c *fiber.Ctx) error {
	quizID, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "Invalid quiz ID")
	}
	questionID, err := c.ParamsInt("questionId")
	if err != nil {
		return utils.BadRequest(c, "Invalid question ID")
	}

	var input QuestionInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse request body")
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	var question models.QuizQuestion
	err = qc.DB.Where("quiz_id = ?", quizID).First(&question, questionID).Error
	if err != nil {
		return utils.NotFound(c, "Question not found")
	}

	question.Text = input.Text
	question.OptionA = input.OptionA
	question.OptionB = input.OptionB
	question.OptionC = input.OptionC
	question.OptionD = input.OptionD
	question.Correct = input.Correct

	if err := qc.DB.Save(&question).Error; err != nil {
		return utils.ServerError(c, "Failed to update question")
	}

	return utils.Success(c, fiber.StatusOK, "Question updated", fiber.Map{"question": question})
}

func (qc *QuizController) RemoveQuestion(c *fiber.Ctx) error {
	quizID, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "Invalid quiz ID")
	}
	questionID, err := c.ParamsInt("questionId")
	if err != nil {
		return utils.BadRequest(c, "Invalid question ID")
	}

	var question models.QuizQuestion
	if err := qc.DB.Where("quiz_id = ?", quizID).First(&question, questionID).Error; err != nil {
		return utils.NotFound(c, "Question not found")
	}

	if err := qc.DB.Unscoped().Delete(&question).Error; err != nil {
		return utils.ServerError(c, "Failed to remove question")
	}

	return utils.Success(c, fiber.StatusOK, "Question removed", nil)
}
