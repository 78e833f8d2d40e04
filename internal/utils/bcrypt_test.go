package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	password := "pw12345678"
	hashedPassword, err := HashPasswordWithCost(password, bcrypt.MinCost)

	assert.NoError(t, err)
	assert.NotEmpty(t, hashedPassword)
	assert.NotEqual(t, password, hashedPassword)
}

func TestCheckPasswordHash(t *testing.T) {
	password := "pw12345678"
	hashedPassword, _ := HashPasswordWithCost(password, bcrypt.MinCost)

	assert.True(t, CheckPasswordHash(password, hashedPassword))
	assert.False(t, CheckPasswordHash("wrongpassword", hashedPassword))
}

func TestCheckPasswordHash_InvalidHash(t *testing.T) {
	assert.False(t, CheckPasswordHash("pw12345678", "invalidhash"))
}

func TestCheckPasswordHash_PlainTextIsNotAHash(t *testing.T) {
	assert.False(t, CheckPasswordHash("pw12345678", "pw12345678"))
}
