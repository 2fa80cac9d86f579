package controllers

import (
	"errors"
	"strconv"

	"easyquiz/backend/config"
	"easyquiz/backend/middleware"
	"easyquiz/backend/models"
	"easyquiz/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const defaultRecentUnits = 5

// ProgressController tracks which units a student has marked as done.
type ProgressController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewProgressController(db *gorm.DB, cfg *config.Config) *ProgressController {
	return &ProgressController{DB: db, Cfg: cfg}
}

type ToggleProgressInput struct {
	SubjectID uint `json:"subjectId" validate:"required"`
	UnitID    uint `json:"unitId" validate:"required"`
}

// ToggleProgress flips a unit between done and not-done for the caller.
func (pc *ProgressController) ToggleProgress(c *fiber.Ctx) error {
	var input ToggleProgressInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse request body")
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.BadRequest(c, "Subject and unit ids are required")
	}

	studentID := middleware.UserID(c)

	var existing models.UnitProgress
	err := pc.DB.Where("student_id = ? AND unit_id = ?", studentID, input.UnitID).
		First(&existing).Error
	if err == nil {
		if err := pc.DB.Unscoped().Delete(&existing).Error; err != nil {
			return utils.ServerError(c, "Failed to update progress")
		}
		return utils.Success(c, fiber.StatusOK, "Unit unmarked", fiber.Map{"completed": false})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.ServerError(c, "Failed to update progress")
	}

	var unit models.Unit
	if err := pc.DB.Where("subject_id = ?", input.SubjectID).First(&unit, input.UnitID).Error; err != nil {
		return utils.NotFound(c, "Unit not found")
	}
	var subject models.Subject
	if err := pc.DB.First(&subject, input.SubjectID).Error; err != nil {
		return utils.NotFound(c, "Subject not found")
	}

	progress := models.UnitProgress{
		StudentID: studentID,
		SubjectID: subject.ID,
		UnitID:    unit.ID,
		Grade:     subject.Grade,
		Subject:   subject.Name,
		UnitName:  unit.Name,
	}
	if err := pc.DB.Create(&progress).Error; err != nil {
		return utils.ServerError(c, "Failed to update progress")
	}

	return utils.Success(c, fiber.StatusOK, "Unit marked as done", fiber.Map{"completed": true})
}

// GetProgress returns the completed unit ids plus per-subject counts.
func (pc *ProgressController) GetProgress(c *fiber.Ctx) error {
	studentID := middleware.UserID(c)

	var entries []models.UnitProgress
	if err := pc.DB.Where("student_id = ?", studentID).Find(&entries).Error; err != nil {
		return utils.ServerError(c, "Failed to load progress")
	}

	completedUnits := make([]uint, 0, len(entries))
	perSubject := map[string]int{}
	for _, e := range entries {
		completedUnits = append(completedUnits, e.UnitID)
		perSubject[e.Subject]++
	}

	return utils.Success(c, fiber.StatusOK, "", fiber.Map{
		"completedUnits": completedUnits,
		"bySubject":      perSubject,
		"totalCompleted": len(entries),
	})
}

// GetRecent lists the most recently completed units, newest first.
func (pc *ProgressController) GetRecent(c *fiber.Ctx) error {
	limit := defaultRecentUnits
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return utils.BadRequest(c, "Invalid limit")
		}
		limit = parsed
	}

	var entries []models.UnitProgress
	err := pc.DB.Where("student_id = ?", middleware.UserID(c)).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return utils.ServerError(c, "Failed to load progress")
	}

	result := make([]fiber.Map, 0, len(entries))
	for _, e := range entries {
		result = append(result, fiber.Map{
			"unitId":      e.UnitID,
			"unitName":    e.UnitName,
			"subject":     e.Subject,
			"grade":       e.Grade,
			"completedAt": e.CreatedAt,
		})
	}

	return utils.Success(c, fiber.StatusOK, "", fiber.Map{"recent": result})
}
