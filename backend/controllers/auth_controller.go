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

type AuthController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewAuthController(db *gorm.DB, cfg *config.Config) *AuthController {
	return &AuthController{DB: db, Cfg: cfg}
}

type RegisterInput struct {
	Name     string `json:"name" form:"name" validate:"required"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,min=6"`
	AdminKey string `json:"adminKey" form:"adminKey"`
	Grade    string `json:"grade" form:"grade"`
}

// [+] Register godoc
// @Summary Register a new account
// @Description Creates a student account, or an admin account when the shared admin key matches
// @Tags auth
// @Accept json
// @Produce json
// @Param user body RegisterInput true "Registration data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /auth/register [post]
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var input RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse request body")
	}

	if err := utils.ValidateStruct(input); err != nil {
		return utils.BadRequest(c, "All fields are required")
	}

	role := models.RoleStudent
	if input.AdminKey != "" {
		if ac.Cfg.AdminKey == "" || input.AdminKey != ac.Cfg.AdminKey {
			return utils.Unauthorized(c, "Invalid admin key")
		}
		role = models.RoleAdmin
	}

	// Uniqueness is only checked inside the chosen role's table; the two
	// collections are fully independent.
	if role == models.RoleAdmin {
		var existing models.Admin
		if err := ac.DB.Where("email = ?", input.Email).First(&existing).Error; err == nil {
			return utils.Conflict(c, "Email already registered")
		}
	} else {
		var existing models.Student
		if err := ac.DB.Where("email = ?", input.Email).First(&existing).Error; err == nil {
			return utils.Conflict(c, "Email already registered")
		}
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return utils.ServerError(c, "Could not hash password")
	}

	profileImage := ""
	if file, err := c.FormFile("profileImage"); err == nil {
		if path, err := utils.SaveProfileImage(c, file, ac.Cfg); err == nil {
			profileImage = path
		}
	}

	if role == models.RoleAdmin {
		admin := models.Admin{
			Name:         input.Name,
			Email:        input.Email,
			PasswordHash: hashed,
			Role:         models.RoleAdmin,
			ProfileImage: profileImage,
		}
		if err := ac.DB.Create(&admin).Error; err != nil {
			return utils.ServerError(c, "Could not create account")
		}
	} else {
		student := models.Student{
			Name:         input.Name,
			Email:        input.Email,
			PasswordHash: hashed,
			Role:         models.RoleStudent,
			ProfileImage: profileImage,
			Grade:        input.Grade,
		}
		if err := ac.DB.Create(&student).Error; err != nil {
			return utils.ServerError(c, "Could not create account")
		}
	}

	return utils.Success(c, fiber.StatusCreated, role+" registered successfully", nil)
}

type LoginInput struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

// [+] Login godoc
// @Summary Log in
// @Description Checks the admin table first, then students, and issues a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginInput true "Login credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /auth/login [post]
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var input LoginInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse request body")
	}

	if err := utils.ValidateStruct(input); err != nil {
		return utils.BadRequest(c, "Missing fields")
	}

	// Admins win when the same email exists in both tables.
	var admin models.Admin
	err := ac.DB.Where("email = ?", input.Email).First(&admin).Error
	if err == nil {
		return ac.finishLogin(c, input.Password, admin.ID, models.RoleAdmin, admin.PasswordHash, fiber.Map{
			"id":           admin.ID,
			"name":         admin.Name,
			"email":        admin.Email,
			"role":         admin.Role,
			"profileImage": admin.ProfileImage,
		})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.ServerError(c, "Could not query database")
	}

	var student models.Student
	err = ac.DB.Where("email = ?", input.Email).First(&student).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.NotFound(c, "Invalid email or user not found")
	}
	if err != nil {
		return utils.ServerError(c, "Could not query database")
	}

	return ac.finishLogin(c, input.Password, student.ID, models.RoleStudent, student.PasswordHash, fiber.Map{
		"id":           student.ID,
		"name":         student.Name,
		"email":        student.Email,
		"role":         student.Role,
		"profileImage": student.ProfileImage,
		"grade":        student.Grade,
	})
}

func (ac *AuthController) finishLogin(c *fiber.Ctx, password string, id uint, role, hash string, user fiber.Map) error {
	if !utils.CheckPassword(hash, password) {
		return utils.Unauthorized(c, "Incorrect password")
	}

	token, err := utils.GenerateJWTToken(id, role, ac.Cfg)
	if err != nil {
		return utils.ServerError(c, "Could not generate token")
	}

	return utils.Success(c, fiber.StatusOK, role+" login successful", fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Me godoc
// @Summary Resolve the current identity
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /auth/me [get]
func (ac *AuthController) Me(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	if middleware.Role(c) == models.RoleAdmin {
		var admin models.Admin
		if err := ac.DB.First(&admin, userID).Error; err != nil {
			return utils.NotFound(c, "User not found")
		}
		return utils.Success(c, fiber.StatusOK, "", fiber.Map{
			"user": fiber.Map{
				"id":           admin.ID,
				"name":         admin.Name,
				"email":        admin.Email,
				"role":         admin.Role,
				"profileImage": admin.ProfileImage,
			},
		})
	}

	var student models.Student
	if err := ac.DB.First(&student, userID).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}
	return utils.Success(c, fiber.StatusOK, "", fiber.Map{
		"user": fiber.Map{
			"id":           student.ID,
			"name":         student.Name,
			"email":        student.Email,
			"role":         student.Role,
			"profileImage": student.ProfileImage,
			"grade":        student.Grade,
		},
	})
}
