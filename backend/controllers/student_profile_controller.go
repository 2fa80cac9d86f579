package controllers

import (
	"easyquiz/backend/config"
	"easyquiz/backend/middleware"
	"easyquiz/backend/models"
	"easyquiz/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type StudentProfileController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewStudentProfileController(db *gorm.DB, cfg *config.Config) *StudentProfileController {
	return &StudentProfileController{DB: db, Cfg: cfg}
}

// GetProfile godoc
// @Summary Get student profile
// @Tags student-profile
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /std/profile [get]
func (pc *StudentProfileController) GetProfile(c *fiber.Ctx) error {
	var student models.Student
	if err := pc.DB.First(&student, middleware.UserID(c)).Error; err != nil {
		return utils.NotFound(c, "Student not found")
	}

	return utils.Success(c, fiber.StatusOK, "Student profile fetched", fiber.Map{"user": student})
}

type UpdateStudentInput struct {
	Name  *string `json:"name"`
	Grade *string `json:"grade"`
}

// UpdateProfile applies a partial update of the whitelisted fields. Absent
// fields are left untouched, which is why the pointers.
func (pc *StudentProfileController) UpdateProfile(c *fiber.Ctx) error {
	var input UpdateStudentInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse request body")
	}

	var student models.Student
	if err := pc.DB.First(&student, middleware.UserID(c)).Error; err != nil {
		return utils.NotFound(c, "Student not found")
	}

	if input.Name != nil {
		student.Name = *input.Name
	}
	if input.Grade != nil {
		student.Grade = *input.Grade
	}

	if err := pc.DB.Save(&student).Error; err != nil {
		return utils.ServerError(c, "Update failed")
	}

	return utils.Success(c, fiber.StatusOK, "Profile updated", fiber.Map{"user": student})
}

func (pc *StudentProfileController) UpdateImage(c *fiber.Ctx) error {
	var student models.Student
	if err := pc.DB.First(&student, middleware.UserID(c)).Error; err != nil {
		return utils.NotFound(c, "Student not found")
	}

	file, err := c.FormFile("profileImage")
	if err != nil {
		return utils.BadRequest(c, "profileImage file is required")
	}

	path, err := utils.SaveProfileImage(c, file, pc.Cfg)
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	student.ProfileImage = path
	if err := pc.DB.Save(&student).Error; err != nil {
		return utils.ServerError(c, "Image update failed")
	}

	return utils.Success(c, fiber.StatusOK, "Image updated", fiber.Map{
		"user":         student,
		"profileImage": student.ProfileImage,
	})
}

func (pc *StudentProfileController) RemoveImage(c *fiber.Ctx) error {
	var student models.Student
	if err := pc.DB.First(&student, middleware.UserID(c)).Error; err != nil {
		return utils.NotFound(c, "Student not found")
	}

	student.ProfileImage = ""
	if err := pc.DB.Save(&student).Error; err != nil {
		return utils.ServerError(c, "Failed to remove image")
	}

	return utils.Success(c, fiber.StatusOK, "Profile image removed", fiber.Map{"user": student})
}

func (pc *StudentProfileController) ChangePassword(c *fiber.Ctx) error {
	var input ChangePasswordInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse request body")
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	var student models.Student
	if err := pc.DB.First(&student, middleware.UserID(c)).Error; err != nil {
		return utils.NotFound(c, "Student not found")
	}

	if !utils.CheckPassword(student.PasswordHash, input.CurrentPassword) {
		return utils.BadRequest(c, "Incorrect current password")
	}

	hashed, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		return utils.ServerError(c, "Failed to change password")
	}

	student.PasswordHash = hashed
	if err := pc.DB.Save(&student).Error; err != nil {
		return utils.ServerError(c, "Failed to change password")
	}

	return utils.Success(c, fiber.StatusOK, "Password updated", nil)
}

// DeleteAccount permanently deletes the student row. The embedded roster of
// the student's grade is not rewritten here; admin reads recompute rosters
// from the students table, so the entry disappears from listings anyway.
func (pc *StudentProfileController) DeleteAccount(c *fiber.Ctx) error {
	if err := pc.DB.Unscoped().Delete(&models.Student{}, middleware.UserID(c)).Error; err != nil {
		return utils.ServerError(c, "Failed to delete account")
	}

	return utils.Success(c, fiber.StatusOK, "Account deleted", nil)
}
