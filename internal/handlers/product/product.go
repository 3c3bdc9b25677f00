package product

import (
	"errors"
	"log"
	"net/http"

	"parfumerie_back_end/internal/apperrors"
	"parfumerie_back_end/internal/cache"
	"parfumerie_back_end/internal/services"
	"parfumerie_back_end/internal/store"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

//
// 🟢 GET /api/products
//
func GetProducts(c *gin.Context) {
	ctx := c.Request.Context()

	if products, ok := cache.GetProducts(ctx); ok {
		c.JSON(http.StatusOK, products)
		return
	}

	products, err := store.Products.List(ctx)
	if err != nil {
		apperrors.Respond(c, apperrors.Internalf(err, "Échec lecture des produits"))
		return
	}

	cache.SetProducts(ctx, products)
	c.JSON(http.StatusOK, products)
}

//
// 🟢 GET /api/products/:id
//
func GetProduct(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	if product, ok := cache.GetProduct(ctx, id); ok {
		c.JSON(http.StatusOK, product)
		return
	}

	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		apperrors.Respond(c, apperrors.NotFoundf("Produit introuvable"))
		return
	}

	product, err := store.Products.Get(ctx, productID)
	if err != nil {
		if errors.Is(err, store.ErrProductNotFound) {
			apperrors.Respond(c, apperrors.NotFoundf("Produit introuvable"))
			return
		}
		apperrors.Respond(c, apperrors.Internalf(err, "Échec lecture produit"))
		return
	}

	// Réparation opportuniste de la moyenne dénormalisée avant de servir.
	if err := services.RepairRating(ctx, product); err != nil {
		log.Printf("⚠️ Échec réparation note moyenne pour %s: %v", id, err)
	}

	cache.SetProduct(ctx, product)
	c.JSON(http.StatusOK, product)
}
