package product

import (
	"errors"
	"log"
	"net/http"

	"parfumerie_back_end/internal/apperrors"
	"parfumerie_back_end/internal/cache"
	"parfumerie_back_end/internal/config"
	"parfumerie_back_end/internal/services"
	"parfumerie_back_end/internal/store"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

//
// 🖼️ POST /api/products/:id/images
//
// Upload multipart vers MinIO puis ajout de l'URL au produit.
func UploadProductImage(c *gin.Context) {
	productID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		apperrors.Respond(c, apperrors.NotFoundf("Produit introuvable"))
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		apperrors.Respond(c, apperrors.Validationf("Fichier image requis"))
		return
	}

	url, err := services.UploadProductImage(config.C.MinioBucket, file)
	if err != nil {
		apperrors.Respond(c, apperrors.Internalf(err, "Échec upload de l'image"))
		return
	}

	if err := store.Products.AppendImage(c.Request.Context(), productID, url); err != nil {
		if errors.Is(err, store.ErrProductNotFound) {
			apperrors.Respond(c, apperrors.NotFoundf("Produit introuvable"))
			return
		}
		apperrors.Respond(c, apperrors.Internalf(err, "Échec enregistrement de l'image"))
		return
	}

	cache.InvalidateProduct(c.Request.Context(), c.Param("id"))
	log.Printf("🖼️ Image ajoutée au produit %s", c.Param("id"))

	c.JSON(http.StatusOK, gin.H{"url": url})
}
