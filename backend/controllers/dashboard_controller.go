package controllers

import (
	"easyquiz/backend/config"
	"easyquiz/backend/models"
	"easyquiz/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// DashboardController serves the counters shown on the admin home page.
type DashboardController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewDashboardController(db *gorm.DB, cfg *config.Config) *DashboardController {
	return &DashboardController{DB: db, Cfg: cfg}
}

func (dc *DashboardController) GetOverview(c *fiber.Ctx) error {
	var students, grades, subjects, quizzes, attempts int64

	if err := dc.DB.Model(&models.Student{}).Count(&students).Error; err != nil {
		return utils.ServerError(c, "Failed to load dashboard")
	}
	dc.DB.Model(&models.Grade{}).Count(&grades)
	dc.DB.Model(&models.Subject{}).Count(&subjects)
	dc.DB.Model(&models.Quiz{}).Count(&quizzes)
	dc.DB.Model(&models.QuizAttempt{}).Count(&attempts)

	var avgScore float64
	if attempts > 0 {
		dc.DB.Model(&models.QuizAttempt{}).Select("AVG(score)").Scan(&avgScore)
	}

	return utils.Success(c, fiber.StatusOK, "", fiber.Map{
		"students":     students,
		"grades":       grades,
		"subjects":     subjects,
		"quizzes":      quizzes,
		"attempts":     attempts,
		"averageScore": avgScore,
	})
}
