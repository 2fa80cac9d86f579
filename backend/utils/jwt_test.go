package utils

import (
	"testing"

	"easyquiz/backend/config"

	"github.com/stretchr/testify/assert"
)

func testConfig() *config.Config {
	return &config.Config{JWTSecret: "testsecret"}
}

func TestTokenRoundTrip(t *testing.T) {
	cfg := testConfig()

	token, err := GenerateJWTToken(42, "student", cfg)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	id, role, err := ParseJWTToken(token, cfg)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), id)
	assert.Equal(t, "student", role)
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateJWTToken(1, "admin", testConfig())
	assert.NoError(t, err)

	_, _, err = ParseJWTToken(token, &config.Config{JWTSecret: "other"})
	assert.Error(t, err)
}

func TestTokenRejectsGarbage(t *testing.T) {
	_, _, err := ParseJWTToken("not.a.token", testConfig())
	assert.Error(t, err)
}
