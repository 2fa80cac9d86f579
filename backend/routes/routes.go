package routes

import (
	"easyquiz/backend/config"
	"easyquiz/backend/controllers"
	"easyquiz/backend/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	auth := middleware.Auth(cfg)
	adminOnly := middleware.AdminOnly()
	studentOnly := middleware.StudentOnly()

	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)
	app.Get("/api/auth/me", auth, authController.Me)

	// Grade / roster routes (admin)
	gradeController := controllers.NewGradeController(db, cfg)
	grades := app.Group("/api/adm/grades", auth, adminOnly)
	grades.Get("/", gradeController.GetGrades)
	grades.Get("/summary", gradeController.GetGradeSummary)
	grades.Get("/students", gradeController.GetStudentsByGrade)
	grades.Post("/add", gradeController.AddGrade)
	grades.Post("/remove", gradeController.RemoveGrade)
	grades.Post("/add-student", gradeController.AddStudent)
	grades.Post("/remove-student", gradeController.RemoveStudent)

	// Admin profile routes
	adminProfile := controllers.NewAdminProfileController(db, cfg)
	admProfile := app.Group("/api/adm/profile", auth, adminOnly)
	admProfile.Get("/", adminProfile.GetProfile)
	admProfile.Put("/update", adminProfile.UpdateProfile)
	admProfile.Put("/update-image", adminProfile.UpdateImage)
	admProfile.Put("/remove-image", adminProfile.RemoveImage)
	admProfile.Put("/change-password", adminProfile.ChangePassword)
	admProfile.Delete("/delete-account", adminProfile.DeleteAccount)

	// Student profile routes
	studentProfile := controllers.NewStudentProfileController(db, cfg)
	stdProfile := app.Group("/api/std/profile", auth, studentOnly)
	stdProfile.Get("/", studentProfile.GetProfile)
	stdProfile.Put("/update", studentProfile.UpdateProfile)
	stdProfile.Put("/update-image", studentProfile.UpdateImage)
	stdProfile.Delete("/remove-image", studentProfile.RemoveImage)
	stdProfile.Put("/change-password", studentProfile.ChangePassword)
	stdProfile.Delete("/delete-account", studentProfile.DeleteAccount)

	// Subject / unit content routes
	subjectController := controllers.NewSubjectController(db, cfg)
	admSubjects := app.Group("/api/adm/subjects", auth, adminOnly)
	admSubjects.Get("/", subjectController.GetSubjects)
	admSubjects.Post("/add", subjectController.AddSubject)
	admSubjects.Post("/remove", subjectController.RemoveSubject)
	admSubjects.Post("/:id/units", subjectController.AddUnit)
	admSubjects.Put("/:id/units/:unitId", subjectController.UpdateUnit)
	admSubjects.Delete("/:id/units/:unitId", subjectController.RemoveUnit)
	app.Get("/api/std/subjects", auth, studentOnly, subjectController.GetStudentSubjects)

	// Quiz authoring routes
	quizController := controllers.NewQuizController(db, cfg)
	admQuizzes := app.Group("/api/adm/quizzes", auth, adminOnly)
	admQuizzes.Get("/", quizController.GetQuizzes)
	admQuizzes.Post("/add", quizController.AddQuiz)
	admQuizzes.Post("/remove", quizController.RemoveQuiz)
	admQuizzes.Post("/:id/questions", quizController.AddQuestion)
	admQuizzes.Put("/:id/questions/:questionId", quizController.UpdateQuestion)
	admQuizzes.Delete("/:id/questions/:questionId", quizController.RemoveQuestion)

	// Quiz taking routes
	attemptController := controllers.NewAttemptController(db, cfg)
	app.Get("/api/std/quizzes", auth, studentOnly, quizController.GetStudentQuizzes)
	app.Post("/api/std/quizzes/:id/attempts", auth, studentOnly, attemptController.SubmitAttempt)
	app.Get("/api/std/attempts", auth, studentOnly, attemptController.GetAttempts)
	app.Get("/api/std/attempts/:id", auth, studentOnly, attemptController.GetAttemptReview)

	// Unit progress routes
	progressController := controllers.NewProgressController(db, cfg)
	progress := app.Group("/api/std/progress", auth, studentOnly)
	progress.Get("/", progressController.GetProgress)
	progress.Get("/recent", progressController.GetRecent)
	progress.Post("/toggle", progressController.ToggleProgress)

	// Admin dashboard
	dashboardController := controllers.NewDashboardController(db, cfg)
	app.Get("/api/adm/dashboard", auth, adminOnly, dashboardController.GetOverview)
}
