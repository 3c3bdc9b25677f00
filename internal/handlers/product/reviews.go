package product

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"parfumerie_back_end/internal/apperrors"
	"parfumerie_back_end/internal/cache"
	"parfumerie_back_end/internal/middleware"
	"parfumerie_back_end/internal/models"
	"parfumerie_back_end/internal/services"
	"parfumerie_back_end/internal/store"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

//
// ⭐ POST /api/products/:id/reviews
//
// Un seul avis par utilisateur et par produit ; l'avis et la nouvelle
// moyenne partent dans la même mise à jour atomique.
func CreateReview(c *gin.Context) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		apperrors.Respond(c, apperrors.Authf("Utilisateur non authentifié"))
		return
	}

	var req struct {
		Rating  int    `json:"rating" binding:"required,min=1,max=5"`
		Comment string `json:"comment" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.Validationf("Données invalides"))
		return
	}

	productID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		apperrors.Respond(c, apperrors.NotFoundf("Produit introuvable"))
		return
	}

	ctx := c.Request.Context()

	prod, err := store.Products.Get(ctx, productID)
	if err != nil {
		if errors.Is(err, store.ErrProductNotFound) {
			apperrors.Respond(c, apperrors.NotFoundf("Produit introuvable"))
			return
		}
		apperrors.Respond(c, apperrors.Internalf(err, "Échec lecture produit"))
		return
	}

	for _, r := range prod.Reviews {
		if r.UserID == userID {
			apperrors.Respond(c, apperrors.Validationf("Vous avez déjà donné votre avis sur ce produit"))
			return
		}
	}

	review := models.Review{
		UserID:    userID,
		Username:  reviewerName(c),
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: time.Now(),
	}

	newAverage := services.AverageRating(append(prod.Reviews, review))

	if err := store.Products.AddReview(ctx, productID, review, newAverage); err != nil {
		if errors.Is(err, store.ErrAlreadyReviewed) {
			apperrors.Respond(c, apperrors.Validationf("Vous avez déjà donné votre avis sur ce produit"))
			return
		}
		apperrors.Respond(c, apperrors.Internalf(err, "Échec création de l'avis"))
		return
	}

	cache.InvalidateProduct(ctx, c.Param("id"))
	log.Printf("⭐ Avis créé pour produit %s (note: %d/5)", c.Param("id"), req.Rating)

	c.JSON(http.StatusCreated, review)
}

//
// 🟢 GET /api/products/:id/reviews
//
func GetProductReviews(c *gin.Context) {
	productID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		apperrors.Respond(c, apperrors.NotFoundf("Produit introuvable"))
		return
	}

	prod, err := store.Products.Get(c.Request.Context(), productID)
	if err != nil {
		if errors.Is(err, store.ErrProductNotFound) {
			apperrors.Respond(c, apperrors.NotFoundf("Produit introuvable"))
			return
		}
		apperrors.Respond(c, apperrors.Internalf(err, "Échec lecture des avis"))
		return
	}

	reviews := prod.Reviews
	if reviews == nil {
		reviews = []models.Review{}
	}
	c.JSON(http.StatusOK, reviews)
}

// reviewerName dérive le nom d'affichage de l'avis depuis le compte, à
// défaut depuis la partie locale de l'email du jeton.
func reviewerName(c *gin.Context) string {
	email := c.GetString("email")
	if email == "" {
		return "Anonyme"
	}
	if account, err := store.Users.ByEmail(c.Request.Context(), email); err == nil && account.Username != "" {
		return account.Username
	}
	return strings.Split(email, "@")[0]
}
