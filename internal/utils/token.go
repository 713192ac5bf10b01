package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/barnhand/stable-api/internal/models"
)

// TokenTTL is the credential lifetime.
const TokenTTL = 7 * 24 * time.Hour

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the payload carried by a bearer credential. Designation is a
// snapshot from issue time; handlers that need the live role re-fetch the
// employee record.
type Claims struct {
	EmployeeID  uint64 `json:"id"`
	Email       string `json:"email"`
	Designation string `json:"designation"`
	jwt.RegisteredClaims
}

// GenerateToken issues a signed 7-day bearer credential for an employee.
func GenerateToken(employee *models.Employee, secret []byte) (string, error) {
	now := time.Now()
	claims := Claims{
		EmployeeID:  employee.ID,
		Email:       employee.Email,
		Designation: employee.Designation,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseToken verifies a bearer credential and extracts its claims. Expired,
// malformed, or wrongly signed tokens all return ErrInvalidToken.
func ParseToken(raw string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
