package utils

import (
	"strings"
	"testing"
	"time"

	"parfumerie_back_end/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestHashEtVerifyPassword(t *testing.T) {
	hash, err := HashPassword("Correct-Horse-Battery-Staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

	ok, err := VerifyPassword("Correct-Horse-Battery-Staple", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("mauvais-mot-de-passe", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPassword_SelUnique(t *testing.T) {
	h1, err := HashPassword("identique")
	require.NoError(t, err)
	h2, err := HashPassword("identique")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2, "deux hash du même mot de passe diffèrent par leur sel")
}

func TestVerifyPassword_HashCorrompu(t *testing.T) {
	_, err := VerifyPassword("peu importe", "pas-un-hash")
	assert.Error(t, err)
}

func TestGenerateJWT(t *testing.T) {
	secret := []byte("secret-de-test")
	user := models.User{ID: primitive.NewObjectID(), Email: "client@test.fr"}

	signed, err := GenerateJWT(user, secret)
	require.NoError(t, err)

	token, err := jwt.Parse(signed, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, user.ID.Hex(), claims["user_id"])
	assert.Equal(t, "client@test.fr", claims["email"])

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), exp.Time, time.Minute)
}
