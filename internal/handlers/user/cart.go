package user

import (
	"errors"
	"net/http"

	"parfumerie_back_end/internal/apperrors"
	"parfumerie_back_end/internal/middleware"
	"parfumerie_back_end/internal/models"
	"parfumerie_back_end/internal/services"
	"parfumerie_back_end/internal/store"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Toutes les opérations panier sont bornées au panier de l'appelant
// authentifié : l'identifiant vient du jeton, jamais de la requête.

func respondCart(c *gin.Context, cart *models.Cart) {
	resolved, err := services.ResolveCart(c.Request.Context(), cart)
	if err != nil {
		apperrors.Respond(c, apperrors.Internalf(err, "Échec résolution du panier"))
		return
	}
	c.JSON(http.StatusOK, resolved)
}

//
// 🟢 GET /api/cart
//
func GetCart(c *gin.Context) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		apperrors.Respond(c, apperrors.Authf("Utilisateur non authentifié"))
		return
	}

	cart, err := store.Carts.Get(c.Request.Context(), userID)
	if err != nil {
		apperrors.Respond(c, apperrors.Internalf(err, "Échec lecture du panier"))
		return
	}
	respondCart(c, cart)
}

//
// 🟢 POST /api/cart/add
//
func AddToCart(c *gin.Context) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		apperrors.Respond(c, apperrors.Authf("Utilisateur non authentifié"))
		return
	}

	var input struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.Respond(c, apperrors.Validationf("Données invalides"))
		return
	}
	if input.ProductID == "" || input.Quantity < 1 {
		apperrors.Respond(c, apperrors.Validationf("productId ou quantité invalide"))
		return
	}

	productID, err := primitive.ObjectIDFromHex(input.ProductID)
	if err != nil {
		apperrors.Respond(c, apperrors.Validationf("ID produit invalide"))
		return
	}

	// Le produit doit exister au moment de l'ajout.
	if _, err := store.Products.Get(c.Request.Context(), productID); err != nil {
		if errors.Is(err, store.ErrProductNotFound) {
			apperrors.Respond(c, apperrors.NotFoundf("Produit introuvable"))
			return
		}
		apperrors.Respond(c, apperrors.Internalf(err, "Échec lecture produit"))
		return
	}

	cart, err := store.Carts.AddItem(c.Request.Context(), userID, models.CartItem{
		ProductID: productID,
		Quantity:  input.Quantity,
	})
	if err != nil {
		apperrors.Respond(c, apperrors.Internalf(err, "Échec ajout au panier"))
		return
	}
	respondCart(c, cart)
}

//
// 🟢 PUT /api/cart/update
//
func UpdateCartItem(c *gin.Context) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		apperrors.Respond(c, apperrors.Authf("Utilisateur non authentifié"))
		return
	}

	var input struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.Respond(c, apperrors.Validationf("Données invalides"))
		return
	}
	if input.ProductID == "" || input.Quantity < 1 {
		apperrors.Respond(c, apperrors.Validationf("productId ou quantité invalide"))
		return
	}

	productID, err := primitive.ObjectIDFromHex(input.ProductID)
	if err != nil {
		apperrors.Respond(c, apperrors.Validationf("ID produit invalide"))
		return
	}

	// Remplacement exact de la quantité, pas d'addition.
	cart, err := store.Carts.SetQuantity(c.Request.Context(), userID, productID, input.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrCartNotFound):
			apperrors.Respond(c, apperrors.NotFoundf("Panier introuvable"))
		case errors.Is(err, store.ErrItemNotFound):
			apperrors.Respond(c, apperrors.NotFoundf("Article absent du panier"))
		default:
			apperrors.Respond(c, apperrors.Internalf(err, "Échec mise à jour du panier"))
		}
		return
	}
	respondCart(c, cart)
}

//
// ❌ DELETE /api/cart/remove
//
func RemoveFromCart(c *gin.Context) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		apperrors.Respond(c, apperrors.Authf("Utilisateur non authentifié"))
		return
	}

	var input struct {
		ProductID string `json:"productId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.ProductID == "" {
		apperrors.Respond(c, apperrors.Validationf("Product ID requis"))
		return
	}

	productID, err := primitive.ObjectIDFromHex(input.ProductID)
	if err != nil {
		apperrors.Respond(c, apperrors.Validationf("ID produit invalide"))
		return
	}

	// Retrait par filtre : une ligne absente est un no-op, pas une erreur.
	cart, err := store.Carts.RemoveItem(c.Request.Context(), userID, productID)
	if err != nil {
		if errors.Is(err, store.ErrCartNotFound) {
			apperrors.Respond(c, apperrors.NotFoundf("Panier introuvable"))
			return
		}
		apperrors.Respond(c, apperrors.Internalf(err, "Échec retrait du panier"))
		return
	}
	respondCart(c, cart)
}

//
// ❌ DELETE /api/cart/clear
//
func ClearCart(c *gin.Context) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		apperrors.Respond(c, apperrors.Authf("Utilisateur non authentifié"))
		return
	}

	if err := store.Carts.Clear(c.Request.Context(), userID); err != nil {
		if errors.Is(err, store.ErrCartNotFound) {
			apperrors.Respond(c, apperrors.NotFoundf("Panier introuvable"))
			return
		}
		apperrors.Respond(c, apperrors.Internalf(err, "Échec vidage du panier"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Panier vidé avec succès"})
}

//
// 🔁 POST /api/cart/sync
//
// Écrase le panier serveur avec l'état tenu par le client. Les références
// produit et quantités fournies sont écrites telles quelles (comportement
// historique assumé) ; la vue résolue omet simplement les lignes dont le
// produit ne se résout plus.
func SyncCart(c *gin.Context) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		apperrors.Respond(c, apperrors.Authf("Utilisateur non authentifié"))
		return
	}

	var input struct {
		Items []struct {
			ID       string `json:"_id"`
			Quantity int    `json:"quantity"`
		} `json:"items"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.Respond(c, apperrors.Validationf("Données invalides"))
		return
	}

	items := make([]models.CartItem, 0, len(input.Items))
	for _, item := range input.Items {
		productID, err := primitive.ObjectIDFromHex(item.ID)
		if err != nil {
			apperrors.Respond(c, apperrors.Validationf("ID produit invalide: %s", item.ID))
			return
		}
		items = append(items, models.CartItem{ProductID: productID, Quantity: item.Quantity})
	}

	cart, err := store.Carts.ReplaceItems(c.Request.Context(), userID, items)
	if err != nil {
		apperrors.Respond(c, apperrors.Internalf(err, "Échec synchronisation du panier"))
		return
	}
	respondCart(c, cart)
}
