package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/barnhand/stable-api/internal/models"
)

func TestGenerateAndParseToken(t *testing.T) {
	secret := []byte("test-secret")
	employee := &models.Employee{
		ID:          42,
		Email:       "groom@stable.local",
		Designation: "Groom",
	}

	token, err := GenerateToken(employee, secret)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), claims.EmployeeID)
	assert.Equal(t, "groom@stable.local", claims.Email)
	assert.Equal(t, "Groom", claims.Designation)
}

func TestParseToken_WrongSecret(t *testing.T) {
	employee := &models.Employee{ID: 1, Email: "a@stable.local", Designation: "Groom"}

	token, err := GenerateToken(employee, []byte("secret-a"))
	require.NoError(t, err)

	_, err = ParseToken(token, []byte("secret-b"))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := ParseToken("not-a-token", []byte("secret"))
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ParseToken("", []byte("secret"))
	assert.ErrorIs(t, err, ErrInvalidToken)
}
