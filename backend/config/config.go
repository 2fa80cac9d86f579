package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	JWTSecret  string
	AdminKey   string
	ServerPort string
	UploadsDir string
	ClientURL  string
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "easyquiz"),
		JWTSecret:  getEnv("JWT_SECRET", "secret"),
		AdminKey:   getEnv("ADMIN_KEY", ""),
		ServerPort: getEnv("SERVER_PORT", "8000"),
		UploadsDir: getEnv("UPLOADS_DIR", "./uploads"),
		ClientURL:  getEnv("CLIENT_URL", "*"),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
