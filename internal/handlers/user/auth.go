package user

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"parfumerie_back_end/internal/apperrors"
	"parfumerie_back_end/internal/config"
	"parfumerie_back_end/internal/models"
	"parfumerie_back_end/internal/store"
	"parfumerie_back_end/internal/utils"

	"github.com/gin-gonic/gin"
)

//
// 🔑 POST /api/auth/register
//
func Register(c *gin.Context) {
	var input struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.Respond(c, apperrors.Validationf("Données invalides"))
		return
	}
	if input.Email == "" || input.Password == "" || input.Username == "" {
		apperrors.Respond(c, apperrors.Validationf("Email, mot de passe et nom d'utilisateur requis"))
		return
	}

	ctx := c.Request.Context()

	if _, err := store.Users.ByEmail(ctx, input.Email); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Un compte avec cet email existe déjà"})
		return
	} else if !errors.Is(err, store.ErrUserNotFound) {
		apperrors.Respond(c, apperrors.Internalf(err, "Échec vérification de l'email"))
		return
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		apperrors.Respond(c, apperrors.Internalf(err, "Échec création utilisateur"))
		return
	}

	newUser := models.User{
		Username:  input.Username,
		Email:     input.Email,
		Password:  hashed,
		CreatedAt: time.Now(),
	}

	id, err := store.Users.Insert(ctx, &newUser)
	if err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "Un compte avec cet email existe déjà"})
			return
		}
		apperrors.Respond(c, apperrors.Internalf(err, "Échec création utilisateur"))
		return
	}
	newUser.ID = id

	token, err := utils.GenerateJWT(newUser, config.C.JWTSecret)
	if err != nil {
		apperrors.Respond(c, apperrors.Internalf(err, "Échec génération du jeton"))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user": gin.H{
			"_id":      newUser.ID.Hex(),
			"email":    newUser.Email,
			"username": newUser.Username,
		},
	})
}

//
// 🔑 POST /api/auth/login
//
func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Email == "" || input.Password == "" {
		apperrors.Respond(c, apperrors.Validationf("Veuillez fournir email et mot de passe"))
		return
	}

	account, err := store.Users.ByEmail(c.Request.Context(), input.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			// Même message que pour un mauvais mot de passe : on ne révèle
			// pas quels emails existent.
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Identifiants invalides"})
			return
		}
		apperrors.Respond(c, apperrors.Internalf(err, "Échec lecture utilisateur"))
		return
	}

	match, err := utils.VerifyPassword(input.Password, account.Password)
	if err != nil || !match {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Identifiants invalides"})
		return
	}

	token, err := utils.GenerateJWT(*account, config.C.JWTSecret)
	if err != nil {
		apperrors.Respond(c, apperrors.Internalf(err, "Échec génération du jeton"))
		return
	}

	username := account.Username
	if username == "" {
		username = strings.Split(account.Email, "@")[0]
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"_id":      account.ID.Hex(),
			"email":    account.Email,
			"username": username,
		},
	})
}
