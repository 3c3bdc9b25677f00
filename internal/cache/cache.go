// Cache de lecture Redis pour le catalogue : le front martèle la liste
// produits, la base n'a pas à suivre.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"parfumerie_back_end/internal/database"
	"parfumerie_back_end/internal/models"
)

const ProductCacheTTL = 10 * time.Minute

const productListKey = "products:all"

func productKey(id string) string { return "product:" + id }

// GetProducts retourne la liste produits en cache, ok=false si absente.
func GetProducts(ctx context.Context) ([]models.Product, bool) {
	data, err := database.Redis.Get(ctx, productListKey).Result()
	if err != nil {
		return nil, false
	}
	var products []models.Product
	if json.Unmarshal([]byte(data), &products) != nil {
		return nil, false
	}
	return products, true
}

func SetProducts(ctx context.Context, products []models.Product) {
	data, err := json.Marshal(products)
	if err != nil {
		return
	}
	database.Redis.Set(ctx, productListKey, data, ProductCacheTTL)
}

// GetProduct retourne un produit en cache, ok=false si absent.
func GetProduct(ctx context.Context, id string) (*models.Product, bool) {
	data, err := database.Redis.Get(ctx, productKey(id)).Result()
	if err != nil {
		return nil, false
	}
	var product models.Product
	if json.Unmarshal([]byte(data), &product) != nil {
		return nil, false
	}
	return &product, true
}

func SetProduct(ctx context.Context, product *models.Product) {
	data, err := json.Marshal(product)
	if err != nil {
		return
	}
	database.Redis.Set(ctx, productKey(product.ID.Hex()), data, ProductCacheTTL)
}

// InvalidateProduct purge le produit et la liste : appelé à chaque ajout
// d'avis ou d'image pour que la moyenne affichée ne traîne jamais.
func InvalidateProduct(ctx context.Context, id string) {
	database.Redis.Del(ctx, productKey(id), productListKey)
}
