package user

import (
	"errors"
	"log"
	"net/http"
	"time"

	"parfumerie_back_end/internal/apperrors"
	"parfumerie_back_end/internal/config"
	"parfumerie_back_end/internal/middleware"
	"parfumerie_back_end/internal/models"
	"parfumerie_back_end/internal/services"
	"parfumerie_back_end/internal/store"
	"parfumerie_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

//
// ✅ POST /api/orders
//
// Fige un instantané {produit, quantité, prix} tel que soumis : le prix
// n'est pas re-dérivé du catalogue au placement (frontière de confiance
// assumée, cf. DESIGN.md). Les changements de prix ultérieurs ne touchent
// jamais cet instantané.
func PlaceOrder(c *gin.Context) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		apperrors.Respond(c, apperrors.Authf("Utilisateur non authentifié"))
		return
	}

	var input struct {
		Items []struct {
			ID       string  `json:"_id"`
			Quantity int     `json:"quantity"`
			Price    float64 `json:"price"`
		} `json:"items"`
		Total float64 `json:"total"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.Respond(c, apperrors.Validationf("Données invalides"))
		return
	}
	if len(input.Items) == 0 || input.Total == 0 {
		apperrors.Respond(c, apperrors.Validationf("Articles et total requis"))
		return
	}

	items := make([]models.OrderItem, 0, len(input.Items))
	for _, item := range input.Items {
		productID, err := primitive.ObjectIDFromHex(item.ID)
		if err != nil {
			apperrors.Respond(c, apperrors.Validationf("ID produit invalide: %s", item.ID))
			return
		}
		items = append(items, models.OrderItem{
			ProductID: productID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	order := models.Order{
		UserID:    userID,
		Items:     items,
		Total:     input.Total, // stocké tel quel
		CreatedAt: time.Now(),
	}

	orderID, err := store.Orders.Insert(c.Request.Context(), &order)
	if err != nil {
		apperrors.Respond(c, apperrors.Internalf(err, "Échec enregistrement de la commande"))
		return
	}
	order.ID = orderID

	// Confirmation par e-mail en best-effort : la réponse n'attend pas.
	if email := c.GetString("email"); email != "" {
		go func(to string, o models.Order) {
			if err := utils.SendOrderConfirmation(config.C, to, o); err != nil {
				log.Printf("⚠️ Échec e-mail de confirmation pour %s: %v", o.ID.Hex(), err)
			}
		}(email, order)
	}

	log.Printf("🧾 Commande %s enregistrée pour %s (total %.2f)", orderID.Hex(), userID.Hex(), order.Total)
	c.JSON(http.StatusCreated, gin.H{
		"message": "Commande enregistrée avec succès",
		"orderId": orderID.Hex(),
	})
}

//
// ✅ GET /api/orders
//
func GetMyOrders(c *gin.Context) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		apperrors.Respond(c, apperrors.Authf("Utilisateur non authentifié"))
		return
	}

	orders, err := store.Orders.ListByUser(c.Request.Context(), userID)
	if err != nil {
		apperrors.Respond(c, apperrors.Internalf(err, "Échec lecture des commandes"))
		return
	}

	if err := services.ResolveOrderItems(c.Request.Context(), orders); err != nil {
		apperrors.Respond(c, apperrors.Internalf(err, "Échec résolution des produits"))
		return
	}

	if orders == nil {
		orders = []models.Order{}
	}
	c.JSON(http.StatusOK, orders)
}

//
// ❌ DELETE /api/orders/:id
//
// Supprimable uniquement dans les 24 heures suivant la création ; passé ce
// délai le refus est définitif.
func DeleteOrder(c *gin.Context) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		apperrors.Respond(c, apperrors.Authf("Utilisateur non authentifié"))
		return
	}

	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		apperrors.Respond(c, apperrors.NotFoundf("Commande introuvable"))
		return
	}

	order, err := store.Orders.GetOwned(c.Request.Context(), orderID, userID)
	if err != nil {
		if errors.Is(err, store.ErrOrderNotFound) {
			apperrors.Respond(c, apperrors.NotFoundf("Commande introuvable"))
			return
		}
		apperrors.Respond(c, apperrors.Internalf(err, "Échec lecture de la commande"))
		return
	}

	if !order.Deletable(time.Now()) {
		apperrors.Respond(c, apperrors.Forbiddenf("Trop tard, nous ne pouvons plus la supprimer"))
		return
	}

	if err := store.Orders.Delete(c.Request.Context(), orderID, userID); err != nil {
		if errors.Is(err, store.ErrOrderNotFound) {
			apperrors.Respond(c, apperrors.NotFoundf("Commande introuvable"))
			return
		}
		apperrors.Respond(c, apperrors.Internalf(err, "Échec suppression de la commande"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Commande supprimée avec succès"})
}
