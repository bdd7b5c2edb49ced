package services

import (
	"time"

	"github.com/golang-jwt/jwt/v4"

	"shop-service/models"
)

// GenerateJWT signs a token carrying user ID and role
func GenerateJWT(secret []byte, user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    string(user.Role),
		"exp":     time.Now().Add(time.Hour * 24).Unix(), // Token expires in 24 hours
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}
