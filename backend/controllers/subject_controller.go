package controllers

import (
	"errors"

	"easyquiz/backend/config"
	"easyquiz/backend/middleware"
	"easyquiz/backend/models"
	"easyquiz/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SubjectController manages the grade -> subject -> unit content hierarchy.
type SubjectController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewSubjectController(db *gorm.DB, cfg *config.Config) *SubjectController {
	return &SubjectController{DB: db, Cfg: cfg}
}

// GetSubjects lists subjects with their units, optionally narrowed to one
// grade via ?grade=.
func (sc *SubjectController) GetSubjects(c *fiber.Ctx) error {
	query := sc.DB.Preload("Units", func(db *gorm.DB) *gorm.DB {
		return db.Order("sequence_order")
	})
	if grade := c.Query("grade"); grade != "" {
		query = query.Where("grade = ?", grade)
	}

	var subjects []models.Subject
	if err := query.Order("grade, name").Find(&subjects).Error; err != nil {
		return utils.ServerError(c, "Failed to load subjects")
	}

	return utils.Success(c, fiber.StatusOK, "", fiber.Map{"subjects": subjects})
}

// GetStudentSubjects serves the caller's own grade when no ?grade= override
// is given.
func (sc *SubjectController) GetStudentSubjects(c *fiber.Ctx) error {
	grade := c.Query("grade")
	if grade == "" {
		var student models.Student
		if err := sc.DB.First(&student, middleware.UserID(c)).Error; err != nil {
			return utils.NotFound(c, "Student not found")
		}
		grade = student.Grade
	}

	var subjects []models.Subject
	err := sc.DB.Preload("Units", func(db *gorm.DB) *gorm.DB {
		return db.Order("sequence_order")
	}).Where("grade = ?", grade).Order("name").Find(&subjects).Error
	if err != nil {
		return utils.ServerError(c, "Failed to load subjects")
	}

	return utils.Success(c, fiber.StatusOK, "", fiber.Map{
		"grade":    grade,
		"subjects": subjects,
	})
}

type AddSubjectInput struct {
	Grade string `json:"grade" validate:"required"`
	Name  string `json:"name" validate:"required"`
}

func (sc *SubjectController) AddSubject(c *fiber.Ctx) error {
	var input AddSubjectInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse request body")
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.BadRequest(c, "Grade and subject name are required")
	}

	var existing models.Subject
	err := sc.DB.Where("grade = ? AND name = ?", input.Grade, input.Name).First(&existing).Error
	if err == nil {
		return utils.Conflict(c, "Subject already exists for this grade")
	}

	subject := models.Subject{Grade: input.Grade, Name: input.Name}
	if err := sc.DB.Create(&subject).Error; err != nil {
		return utils.ServerError(c, "Failed to add subject")
	}

	return utils.Success(c, fiber.StatusOK, "Subject added", fiber.Map{"subject": subject})
}

type RemoveSubjectInput struct {
	ID uint `json:"id" validate:"required"`
}

// RemoveSubject deletes the subject and its units.
func (sc *SubjectController) RemoveSubject(c *fiber.Ctx) error {
	var input RemoveSubjectInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse request body")
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.BadRequest(c, "Subject id is required")
	}

	var subject models.Subject
	if err := sc.DB.First(&subject, input.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Subject not found")
		}
		return utils.ServerError(c, "Failed to remove subject")
	}

	txErr := sc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("subject_id = ?", subject.ID).Delete(&models.Unit{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&subject).Error
	})
	if txErr != nil {
		return utils.ServerError(c, "Failed to remove subject")
	}

	return utils.Success(c, fiber.StatusOK, "Subject removed", nil)
}

type AddUnitInput struct {
	Name    string `json:"name" validate:"required"`
	Content string `json:"content"`
}

func (sc *SubjectController) AddUnit(c *fiber.Ctx) error {
	subjectID, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "Invalid subject ID")
	}

	var input AddUnitInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse request body")
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.BadRequest(c, "Unit name is required")
	}

	var subject models.Subject
	if err := sc.DB.First(&subject, subjectID).Error; err != nil {
		return utils.NotFound(c, "Subject not found")
	}

	var count int64
	sc.DB.Model(&models.Unit{}).Where("subject_id = ?", subject.ID).Count(&count)

	unit := models.Unit{
		SubjectID:     subject.ID,
		Name:          input.Name,
		Content:       input.Content,
		SequenceOrder: int(count) + 1,
	}
	if err := sc.DB.Create(&unit).Error; err != nil {
		return utils.ServerError(c, "Failed to add unit")
	}

	return utils.Success(c, fiber.StatusOK, "Unit added", fiber.Map{"unit": unit})
}

func (sc *SubjectController) UpdateUnit(c *fiber.Ctx) error {
	subjectID, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "Invalid subject ID")
	}
	unitID, err := c.ParamsInt("unitId")
	if err != nil {
		return utils.BadRequest(c, "Invalid unit ID")
	}

	var input struct {
		Name    *string `json:"name"`
		Content *string `json:"content"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse request body")
	}

	var unit models.Unit
	err = sc.DB.Where("subject_id = ?", subjectID).First(&unit, unitID).Error
	if err != nil {
		return utils.NotFound(c, "Unit not found")
	}

	if input.Name != nil {
		unit.Name = *input.Name
	}
	if input.Content != nil {
		unit.Content = *input.Content
	}

	if err := sc.DB.Save(&unit).Error; err != nil {
		return utils.ServerError(c, "Failed to update unit")
	}

	return utils.Success(c, fiber.StatusOK, "Unit updated", fiber.Map{"unit": unit})
}

func (sc *SubjectController) RemoveUnit(c *fiber.Ctx) error {
	subjectID, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "Invalid subject ID")
	}
	unitID, err := c.ParamsInt("unitId")
	if err != nil {
		return utils.BadRequest(c, "Invalid unit ID")
	}

	var unit models.Unit
	if err := sc.DB.Where("subject_id = ?", subjectID).First(&unit, unitID).Error; err != nil {
		return utils.NotFound(c, "Unit not found")
	}

	if err := sc.DB.Unscoped().Delete(&unit).Error; err != nil {
		return utils.ServerError(c, "Failed to remove unit")
	}

	return utils.Success(c, fiber.StatusOK, "Unit removed", nil)
}
