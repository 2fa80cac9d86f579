package utils

import (
	"errors"
	"strings"
	"time"

	"easyquiz/backend/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// Session tokens carry the subject id and role for seven days, matching the
// lifetime the frontend assumes before forcing a re-login.
const tokenLifetime = 7 * 24 * time.Hour

func GenerateJWTToken(userID uint, role string, cfg *config.Config) (string, error) {
	claims := jwt.MapClaims{
		"id":   userID,
		"role": role,
		"exp":  time.Now().Add(tokenLifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// ParseJWTToken verifies the signature and expiry and returns the embedded
// identity.
func ParseJWTToken(tokenString string, cfg *config.Config) (uint, string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, "", errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", errors.New("invalid token claims")
	}

	idFloat, ok := claims["id"].(float64)
	if !ok {
		return 0, "", errors.New("invalid user ID in token")
	}

	role, ok := claims["role"].(string)
	if !ok {
		return 0, "", errors.New("invalid role in token")
	}

	return uint(idFloat), role, nil
}

// ExtractIdentity reads the Authorization header. A "Bearer " prefix is
// accepted but not required, matching the original clients.
func ExtractIdentity(c *fiber.Ctx, cfg *config.Config) (uint, string, error) {
	header := c.Get("Authorization")
	if header == "" {
		return 0, "", errors.New("missing authorization token")
	}

	tokenString := strings.TrimPrefix(header, "Bearer ")
	return ParseJWTToken(tokenString, cfg)
}
