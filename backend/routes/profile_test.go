package routes_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestStudentProfilePartialUpdate(t *testing.T) {
	token := registerStudent(t, "Original Name", "profile-update@example.com", "password1")

	// Only grade changes; name must survive.
	status, result := request(t, http.MethodPut, "/api/std/profile/update", token, map[string]string{
		"grade": "Grade 20",
	})
	assert.Equal(t, fiber.StatusOK, status)
	user, _ := result["user"].(map[string]interface{})
	assert.Equal(t, "Original Name", user["name"])
	assert.Equal(t, "Grade 20", user["grade"])

	status, result = request(t, http.MethodPut, "/api/std/profile/update", token, map[string]string{
		"name": "Renamed",
	})
	assert.Equal(t, fiber.StatusOK, status)
	user, _ = result["user"].(map[string]interface{})
	assert.Equal(t, "Renamed", user["name"])
	assert.Equal(t, "Grade 20", user["grade"])
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	token := registerStudent(t, "Pw Holder", "pw-holder@example.com", "oldpassword")

	status, result := request(t, http.MethodPut, "/api/std/profile/change-password", token, map[string]string{
		"currentPassword": "not-the-password",
		"newPassword":     "newpassword",
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Incorrect current password", result["message"])

	// The stored hash is unchanged: old password still logs in, new one doesn't.
	login(t, "pw-holder@example.com", "oldpassword")
	status, _ = request(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "pw-holder@example.com",
		"password": "newpassword",
	})
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestChangePasswordSuccess(t *testing.T) {
	token := registerStudent(t, "Pw Changer", "pw-changer@example.com", "oldpassword")

	status, _ := request(t, http.MethodPut, "/api/std/profile/change-password", token, map[string]string{
		"currentPassword": "oldpassword",
		"newPassword":     "newpassword",
	})
	assert.Equal(t, fiber.StatusOK, status)

	login(t, "pw-changer@example.com", "newpassword")
	status, _ = request(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "pw-changer@example.com",
		"password": "oldpassword",
	})
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestAdminChangePassword(t *testing.T) {
	token := registerAdmin(t, "Adm Pw", "adm-pw@example.com", "oldpassword")

	status, _ := request(t, http.MethodPut, "/api/adm/profile/change-password", token, map[string]string{
		"currentPassword": "wrong",
		"newPassword":     "newpassword",
	})
	assert.Equal(t, fiber.StatusBadRequest, status)

	login(t, "adm-pw@example.com", "oldpassword")
}

func TestDeleteAccountFreesNothingButRemovesLogin(t *testing.T) {
	token := registerStudent(t, "Doomed", "doomed@example.com", "password1")

	status, _ := request(t, http.MethodDelete, "/api/std/profile/delete-account", token, nil)
	assert.Equal(t, fiber.StatusOK, status)

	// The account is gone for login and for /me.
	status, _ = request(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "doomed@example.com",
		"password": "password1",
	})
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = request(t, http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestRemoveProfileImageClearsReference(t *testing.T) {
	token := registerStudent(t, "Pic Holder", "pic-holder@example.com", "password1")

	status, result := request(t, http.MethodDelete, "/api/std/profile/remove-image", token, nil)
	assert.Equal(t, fiber.StatusOK, status)
	user, _ := result["user"].(map[string]interface{})
	assert.Equal(t, "", user["profileImage"])
}
