package utils

import (
	"time"

	"parfumerie_back_end/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateJWT signe un jeton HS256 avec le secret injecté au démarrage.
// Pas de secret de repli : un secret vide est refusé en amont par config.
func GenerateJWT(user models.User, secret []byte) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID.Hex(),
		"email":   user.Email,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}
