package controllers

import (
	"errors"
	"time"

	"easyquiz/backend/config"
	"easyquiz/backend/models"
	"easyquiz/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GradeController keeps the two representations of the grade/student
// relationship in sync: the scalar students.grade column and the roster list
// embedded in the grade row. Every cross-table write runs in one transaction
// so a partial failure cannot leave them disagreeing.
type GradeController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewGradeController(db *gorm.DB, cfg *config.Config) *GradeController {
	return &GradeController{DB: db, Cfg: cfg}
}

// GetGrades godoc
// @Summary List grades with their rosters
// @Tags grades
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security ApiKeyAuth
// @Router /adm/grades [get]
func (gc *GradeController) GetGrades(c *fiber.Ctx) error {
	var grades []models.Grade
	if err := gc.DB.Order("name").Find(&grades).Error; err != nil {
		return utils.ServerError(c, "Failed to load grades")
	}

	var students []models.Student
	if err := gc.DB.Find(&students).Error; err != nil {
		return utils.ServerError(c, "Failed to load grades")
	}

	// The roster shown to admins is recomputed from the authoritative
	// students table on every read, so deletions that bypassed the roster
	// (self-service account deletion) never show stale entries.
	result := make([]fiber.Map, 0, len(grades))
	for i := range grades {
		roster := []models.RosterEntry{}
		for _, s := range students {
			if s.Grade == grades[i].Name {
				roster = append(roster, models.RosterEntry{
					StudentID:    s.ID,
					Name:         s.Name,
					Email:        s.Email,
					RegisteredAt: s.CreatedAt,
				})
			}
		}
		result = append(result, fiber.Map{
			"id":        grades[i].ID,
			"name":      grades[i].Name,
			"students":  roster,
			"createdAt": grades[i].CreatedAt,
		})
	}

	return utils.Success(c, fiber.StatusOK, "", fiber.Map{"grades": result})
}

// GetGradeSummary returns {grade, studentCount} rows grouped from the
// authoritative students table, without touching the embedded rosters.
func (gc *GradeController) GetGradeSummary(c *fiber.Ctx) error {
	type row struct {
		Grade        string `json:"grade"`
		StudentCount int64  `json:"studentCount"`
	}

	var rows []row
	err := gc.DB.Model(&models.Student{}).
		Select("grade, COUNT(*) AS student_count").
		Where("grade <> ''").
		Group("grade").
		Order("grade").
		Scan(&rows).Error
	if err != nil {
		return utils.ServerError(c, "Failed to load grades")
	}

	return utils.Success(c, fiber.StatusOK, "", fiber.Map{"grades": rows})
}

// GetStudentsByGrade returns the sanitized students of one grade straight
// from the students table. The grade is passed as ?grade= because grade
// names contain spaces.
func (gc *GradeController) GetStudentsByGrade(c *fiber.Ctx) error {
	grade := c.Query("grade")
	if grade == "" {
		return utils.BadRequest(c, "Grade is required")
	}

	var students []models.Student
	if err := gc.DB.Where("grade = ?", grade).Find(&students).Error; err != nil {
		return utils.ServerError(c, "Failed to fetch students")
	}

	return utils.Success(c, fiber.StatusOK, "", fiber.Map{
		"grade":    grade,
		"students": students,
	})
}

type AddGradeInput struct {
	Name string `json:"name" validate:"required"`
}

// AddGrade godoc
// @Summary Create an empty grade
// @Tags grades
// @Accept json
// @Produce json
// @Param input body AddGradeInput true "Grade name"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /adm/grades/add [post]
func (gc *GradeController) AddGrade(c *fiber.Ctx) error {
	var input AddGradeInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse request body")
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.BadRequest(c, "Grade name is required")
	}

	var existing models.Grade
	if err := gc.DB.Where("name = ?", input.Name).First(&existing).Error; err == nil {
		return utils.Conflict(c, "Grade already exists")
	}

	grade := models.Grade{Name: input.Name}
	if err := grade.SetRoster([]models.RosterEntry{}); err != nil {
		return utils.ServerError(c, "Failed to add grade")
	}
	if err := gc.DB.Create(&grade).Error; err != nil {
		return utils.ServerError(c, "Failed to add grade")
	}

	return utils.Success(c, fiber.StatusOK, "Grade added", fiber.Map{"grade": grade})
}

type RemoveGradeInput struct {
	Name string `json:"name" validate:"required"`
}

// RemoveGrade deletes the grade row only. Students whose scalar grade still
// points at the removed name are left untouched.
func (gc *GradeController) RemoveGrade(c *fiber.Ctx) error {
	var input RemoveGradeInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse request body")
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.BadRequest(c, "Grade name is required")
	}

	var grade models.Grade
	if err := gc.DB.Where("name = ?", input.Name).First(&grade).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Grade not found")
		}
		return utils.ServerError(c, "Failed to remove grade")
	}

	if err := gc.DB.Unscoped().Delete(&grade).Error; err != nil {
		return utils.ServerError(c, "Failed to remove grade")
	}

	return utils.Success(c, fiber.StatusOK, "Grade removed", nil)
}

type AddStudentInput struct {
	GradeName string `json:"gradeName" validate:"required"`
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
}

// AddStudent godoc
// @Summary Issue a student account inside a grade
// @Description Creates the student row and appends a roster entry to the grade in one transaction. The generated password is returned exactly once.
// @Tags grades
// @Accept json
// @Produce json
// @Param input body AddStudentInput true "Student data"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /adm/grades/add-student [post]
func (gc *GradeController) AddStudent(c *fiber.Ctx) error {
	var input AddStudentInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse request body")
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.BadRequest(c, "Missing fields")
	}

	plainPassword, err := utils.RandomPassword(8)
	if err != nil {
		return utils.ServerError(c, "Failed to add student")
	}
	hashed, err := utils.HashPassword(plainPassword)
	if err != nil {
		return utils.ServerError(c, "Failed to add student")
	}

	var grade models.Grade
	var student models.Student

	txErr := gc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("name = ?", input.GradeName).First(&grade).Error; err != nil {
			return err
		}

		// Duplicate check spans the whole students table, not just this grade.
		var existing models.Student
		if err := tx.Where("email = ?", input.Email).First(&existing).Error; err == nil {
			return errDuplicateEmail
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		student = models.Student{
			Name:         input.Name,
			Email:        input.Email,
			PasswordHash: hashed,
			Role:         models.RoleStudent,
			Grade:        input.GradeName,
		}
		if err := tx.Create(&student).Error; err != nil {
			return err
		}

		roster, err := grade.Roster()
		if err != nil {
			return err
		}
		roster = append(roster, models.RosterEntry{
			StudentID:    student.ID,
			Name:         student.Name,
			Email:        student.Email,
			RegisteredAt: time.Now(),
		})
		if err := grade.SetRoster(roster); err != nil {
			return err
		}
		return tx.Save(&grade).Error
	})

	if txErr != nil {
		if errors.Is(txErr, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Grade not found")
		}
		if errors.Is(txErr, errDuplicateEmail) {
			return utils.Conflict(c, "Email already registered")
		}
		return utils.ServerError(c, "Failed to add student")
	}

	return utils.Success(c, fiber.StatusOK, "Student created successfully", fiber.Map{
		"student": student,
		"grade":   grade,
		"login": fiber.Map{
			"email":    student.Email,
			"password": plainPassword,
		},
	})
}

type RemoveStudentInput struct {
	GradeName string `json:"gradeName" validate:"required"`
	StudentID uint   `json:"studentId" validate:"required"`
}

// RemoveStudent filters the roster entry out of the grade and deletes the
// student row, both inside one transaction.
func (gc *GradeController) RemoveStudent(c *fiber.Ctx) error {
	var input RemoveStudentInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse request body")
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.BadRequest(c, "Missing fields")
	}

	var grade models.Grade

	txErr := gc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("name = ?", input.GradeName).First(&grade).Error; err != nil {
			return err
		}

		roster, err := grade.Roster()
		if err != nil {
			return err
		}
		kept := roster[:0]
		for _, entry := range roster {
			if entry.StudentID != input.StudentID {
				kept = append(kept, entry)
			}
		}
		if err := grade.SetRoster(kept); err != nil {
			return err
		}
		if err := tx.Save(&grade).Error; err != nil {
			return err
		}

		// Hard delete frees the email for re-registration.
		return tx.Unscoped().Delete(&models.Student{}, input.StudentID).Error
	})

	if txErr != nil {
		if errors.Is(txErr, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Grade not found")
		}
		return utils.ServerError(c, "Failed to remove student")
	}

	return utils.Success(c, fiber.StatusOK, "Student removed", fiber.Map{"grade": grade})
}

var errDuplicateEmail = errors.New("email already registered")
