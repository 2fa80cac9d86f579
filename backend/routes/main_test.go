package routes_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"easyquiz/backend/config"
	"easyquiz/backend/models"
	"easyquiz/backend/routes"
	"easyquiz/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const testAdminKey = "test-admin-key"

var (
	app *fiber.App
	db  *gorm.DB
	cfg *config.Config
)

func TestMain(m *testing.M) {
	// Setup
	setup()
	// Run tests
	code := m.Run()
	// Cleanup
	teardown()
	os.Exit(code)
}

func setup() {
	cfg = &config.Config{
		DBHost:     envOr("TEST_DB_HOST", "localhost"),
		DBPort:     envOr("TEST_DB_PORT", "5432"),
		DBUser:     envOr("TEST_DB_USER", "postgres"),
		DBPassword: envOr("TEST_DB_PASSWORD", "postgres"),
		DBName:     envOr("TEST_DB_NAME", "easyquiz_test"),
		JWTSecret:  "testsecret",
		AdminKey:   testAdminKey,
		ServerPort: "8000",
		UploadsDir: os.TempDir(),
		ClientURL:  "*",
	}

	var err error
	db, err = utils.InitDB(cfg)
	if err != nil {
		panic(err)
	}

	app = fiber.New()
	routes.SetupRoutes(app, db, cfg)
}

func teardown() {
	db.Migrator().DropTable(
		&models.Admin{},
		&models.Student{},
		&models.Grade{},
		&models.Subject{},
		&models.Unit{},
		&models.Quiz{},
		&models.QuizQuestion{},
		&models.QuizAttempt{},
		&models.UnitProgress{},
	)
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

// request fires a JSON request through the fiber app and decodes the
// envelope. token may be empty for unauthenticated calls.
func request(t *testing.T, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("%s %s: decode response: %v", method, path, err)
	}
	return resp.StatusCode, result
}

// registerStudent creates a student account and returns a session token.
func registerStudent(t *testing.T, name, email, password string) string {
	t.Helper()

	status, _ := request(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
	if status != fiber.StatusCreated {
		t.Fatalf("register student %s: status %d", email, status)
	}
	return login(t, email, password)
}

// registerAdmin creates an admin account using the shared key and returns a
// session token.
func registerAdmin(t *testing.T, name, email, password string) string {
	t.Helper()

	status, _ := request(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
		"adminKey": testAdminKey,
	})
	if status != fiber.StatusCreated {
		t.Fatalf("register admin %s: status %d", email, status)
	}
	return login(t, email, password)
}

func login(t *testing.T, email, password string) string {
	t.Helper()

	status, result := request(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if status != fiber.StatusOK {
		t.Fatalf("login %s: status %d", email, status)
	}
	token, _ := result["token"].(string)
	if token == "" {
		t.Fatalf("login %s: empty token", email)
	}
	return token
}
