package controllers

import (
	"easyquiz/backend/config"
	"easyquiz/backend/middleware"
	"easyquiz/backend/models"
	"easyquiz/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AdminProfileController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewAdminProfileController(db *gorm.DB, cfg *config.Config) *AdminProfileController {
	return &AdminProfileController{DB: db, Cfg: cfg}
}

// GetProfile godoc
// @Summary Get admin profile
// @Tags admin-profile
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /adm/profile [get]
func (pc *AdminProfileController) GetProfile(c *fiber.Ctx) error {
	var admin models.Admin
	if err := pc.DB.First(&admin, middleware.UserID(c)).Error; err != nil {
		return utils.NotFound(c, "Admin not found")
	}

	return utils.Success(c, fiber.StatusOK, "Admin profile fetched", fiber.Map{"user": admin})
}

// UpdateProfile updates the name and, when a profileImage file is attached,
// the image reference in one call.
func (pc *AdminProfileController) UpdateProfile(c *fiber.Ctx) error {
	var admin models.Admin
	if err := pc.DB.First(&admin, middleware.UserID(c)).Error; err != nil {
		return utils.NotFound(c, "Admin not found")
	}

	if name := c.FormValue("name"); name != "" {
		admin.Name = name
	} else {
		var input struct {
			Name string `json:"name"`
		}
		if err := c.BodyParser(&input); err == nil && input.Name != "" {
			admin.Name = input.Name
		}
	}

	if file, err := c.FormFile("profileImage"); err == nil {
		path, err := utils.SaveProfileImage(c, file, pc.Cfg)
		if err != nil {
			return utils.BadRequest(c, err.Error())
		}
		admin.ProfileImage = path
	}

	if err := pc.DB.Save(&admin).Error; err != nil {
		return utils.ServerError(c, "Update failed")
	}

	return utils.Success(c, fiber.StatusOK, "Profile updated", fiber.Map{"user": admin})
}

func (pc *AdminProfileController) UpdateImage(c *fiber.Ctx) error {
	var admin models.Admin
	if err := pc.DB.First(&admin, middleware.UserID(c)).Error; err != nil {
		return utils.NotFound(c, "Admin not found")
	}

	file, err := c.FormFile("profileImage")
	if err != nil {
		return utils.BadRequest(c, "profileImage file is required")
	}

	path, err := utils.SaveProfileImage(c, file, pc.Cfg)
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	admin.ProfileImage = path
	if err := pc.DB.Save(&admin).Error; err != nil {
		return utils.ServerError(c, "Image update failed")
	}

	return utils.Success(c, fiber.StatusOK, "Image updated", fiber.Map{
		"user":         admin,
		"profileImage": admin.ProfileImage,
	})
}

func (pc *AdminProfileController) RemoveImage(c *fiber.Ctx) error {
	var admin models.Admin
	if err := pc.DB.First(&admin, middleware.UserID(c)).Error; err != nil {
		return utils.NotFound(c, "Admin not found")
	}

	admin.ProfileImage = ""
	if err := pc.DB.Save(&admin).Error; err != nil {
		return utils.ServerError(c, "Failed to remove image")
	}

	return utils.Success(c, fiber.StatusOK, "Profile image removed", fiber.Map{"user": admin})
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// ChangePassword godoc
// @Summary Change admin password
// @Tags admin-profile
// @Accept json
// @Produce json
// @Param input body ChangePasswordInput true "Current and new password"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /adm/profile/change-password [put]
func (pc *AdminProfileController) ChangePassword(c *fiber.Ctx) error {
	var input ChangePasswordInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse request body")
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	var admin models.Admin
	if err := pc.DB.First(&admin, middleware.UserID(c)).Error; err != nil {
		return utils.NotFound(c, "Admin not found")
	}

	if !utils.CheckPassword(admin.PasswordHash, input.CurrentPassword) {
		return utils.BadRequest(c, "Incorrect current password")
	}

	hashed, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		return utils.ServerError(c, "Failed to change password")
	}

	admin.PasswordHash = hashed
	if err := pc.DB.Save(&admin).Error; err != nil {
		return utils.ServerError(c, "Failed to change password")
	}

	return utils.Success(c, fiber.StatusOK, "Password updated", nil)
}

// DeleteAccount permanently deletes the admin row. Grades the admin created
// are left in place.
func (pc *AdminProfileController) DeleteAccount(c *fiber.Ctx) error {
	if err := pc.DB.Unscoped().Delete(&models.Admin{}, middleware.UserID(c)).Error; err != nil {
		return utils.ServerError(c, "Failed to delete account")
	}

	return utils.Success(c, fiber.StatusOK, "Account deleted", nil)
}
