package routes_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func createSubject(t *testing.T, token, grade, name string) float64 {
	t.Helper()

	status, result := request(t, http.MethodPost, "/api/adm/subjects/add", token, map[string]string{
		"grade": grade,
		"name":  name,
	})
	if status != fiber.StatusOK {
		t.Fatalf("create subject %q: status %d (%v)", name, status, result)
	}
	subject, _ := result["subject"].(map[string]interface{})
	id, _ := subject["ID"].(float64)
	return id
}

func createUnit(t *testing.T, token string, subjectID float64, name string) float64 {
	t.Helper()

	status, result := request(t, http.MethodPost, fmt.Sprintf("/api/adm/subjects/%.0f/units", subjectID), token, map[string]string{
		"name":    name,
		"content": "unit content",
	})
	if status != fiber.StatusOK {
		t.Fatalf("create unit %q: status %d (%v)", name, status, result)
	}
	unit, _ := result["unit"].(map[string]interface{})
	id, _ := unit["ID"].(float64)
	return id
}

func TestSubjectDuplicatePerGrade(t *testing.T) {
	token := registerAdmin(t, "Content Admin", "content-dup@example.com", "password1")

	createSubject(t, token, "Grade 6", "History")

	status, _ := request(t, http.MethodPost, "/api/adm/subjects/add", token, map[string]string{
		"grade": "Grade 6",
		"name":  "History",
	})
	assert.Equal(t, fiber.StatusBadRequest, status)

	// Same subject name under another grade is fine.
	status, _ = request(t, http.MethodPost, "/api/adm/subjects/add", token, map[string]string{
		"grade": "Grade 7",
		"name":  "History",
	})
	assert.Equal(t, fiber.StatusOK, status)
}

func TestStudentSubjectsFollowOwnGrade(t *testing.T) {
	adminToken := registerAdmin(t, "Content Admin", "content-grade@example.com", "password1")
	subjectID := createSubject(t, adminToken, "Grade 6", "Geography")
	createUnit(t, adminToken, subjectID, "Maps")

	studentToken := registerStudent(t, "Geo Student", "geo-student@example.com", "password1")
	request(t, http.MethodPut, "/api/std/profile/update", studentToken, map[string]string{
		"grade": "Grade 6",
	})

	status, result := request(t, http.MethodGet, "/api/std/subjects", studentToken, nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Grade 6", result["grade"])

	subjects, _ := result["subjects"].([]interface{})
	found := false
	for _, raw := range subjects {
		s, _ := raw.(map[string]interface{})
		if s["name"] == "Geography" {
			found = true
			units, _ := s["units"].([]interface{})
			assert.NotEmpty(t, units)
		}
	}
	assert.True(t, found)
}

func TestUnitProgressToggle(t *testing.T) {
	adminToken := registerAdmin(t, "Content Admin", "content-progress@example.com", "password1")
	subjectID := createSubject(t, adminToken, "Grade 8", "Chemistry")
	unitID := createUnit(t, adminToken, subjectID, "Atoms")

	studentToken := registerStudent(t, "Chem Student", "chem-student@example.com", "password1")

	toggle := map[string]interface{}{"subjectId": subjectID, "unitId": unitID}

	status, result := request(t, http.MethodPost, "/api/std/progress/toggle", studentToken, toggle)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, result["completed"])

	status, result = request(t, http.MethodGet, "/api/std/progress", studentToken, nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, float64(1), result["totalCompleted"])

	status, result = request(t, http.MethodGet, "/api/std/progress/recent", studentToken, nil)
	assert.Equal(t, fiber.StatusOK, status)
	recent, _ := result["recent"].([]interface{})
	assert.Len(t, recent, 1)

	// Toggling again unmarks.
	status, result = request(t, http.MethodPost, "/api/std/progress/toggle", studentToken, toggle)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, false, result["completed"])

	status, result = request(t, http.MethodGet, "/api/std/progress", studentToken, nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, float64(0), result["totalCompleted"])
}

func TestRemoveSubjectRemovesUnits(t *testing.T) {
	token := registerAdmin(t, "Content Admin", "content-remove@example.com", "password1")
	subjectID := createSubject(t, token, "Grade 9", "Biology")
	unitID := createUnit(t, token, subjectID, "Cells")

	status, _ := request(t, http.MethodPost, "/api/adm/subjects/remove", token, map[string]interface{}{
		"id": subjectID,
	})
	assert.Equal(t, fiber.StatusOK, status)

	status, _ = request(t, http.MethodPut, fmt.Sprintf("/api/adm/subjects/%.0f/units/%.0f", subjectID, unitID), token, map[string]string{
		"name": "Renamed",
	})
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestDashboardCounters(t *testing.T) {
	token := registerAdmin(t, "Dash Admin", "dash-admin@example.com", "password1")

	status, result := request(t, http.MethodGet, "/api/adm/dashboard", token, nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, result["success"])
	assert.Contains(t, result, "students")
	assert.Contains(t, result, "averageScore")
}
