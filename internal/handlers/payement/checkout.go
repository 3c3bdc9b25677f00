package payement

import (
	"log"
	"net/http"
	"strings"

	"parfumerie_back_end/internal/apperrors"
	"parfumerie_back_end/internal/config"
	"parfumerie_back_end/internal/services"

	"github.com/gin-gonic/gin"
)

//
// 💳 POST /api/payment/create-checkout-session
//
// Délègue la création de session au prestataire et ne retourne que son
// identifiant opaque. Pas de retry automatique : un second appel créerait
// une seconde session.
func CreateCheckoutSession(c *gin.Context) {
	var req struct {
		Items []struct {
			ID       string  `json:"_id"`
			Name     string  `json:"name"`
			Quantity int     `json:"quantity"`
			Price    float64 `json:"price"`
		} `json:"items"`
		User struct {
			ID    string `json:"_id"`
			Email string `json:"email"`
		} `json:"user"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.Validationf("Requête invalide : utilisateur et articles requis"))
		return
	}
	if req.User.ID == "" || len(req.Items) == 0 {
		apperrors.Respond(c, apperrors.Validationf("Requête invalide : utilisateur et articles requis"))
		return
	}

	items := make([]services.CheckoutItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, services.CheckoutItem{
			ProductID: item.ID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	urls := services.CheckoutURLs{
		Success: config.C.StripeSuccessURL,
		Cancel:  config.C.StripeCancelURL,
	}

	sessionID, err := services.CreateCheckoutSession(services.Checkout, urls, req.User.ID, req.User.Email, items)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	log.Printf("💳 Session de paiement créée : %s pour user %s", sessionID, req.User.ID)
	c.JSON(http.StatusOK, gin.H{"id": sessionID})
}

//
// ✅ GET /api/payment/verify-session/:sessionId
//
// Recoupe l'identité embarquée dans la session avec l'appelant
// authentifié avant de libérer la confirmation. Répétable sans effet de
// bord : la création de commande est un pas séparé, piloté par le client.
func VerifySession(c *gin.Context) {
	callerID := strings.TrimSpace(c.GetString("user_id"))
	if callerID == "" {
		apperrors.Respond(c, apperrors.Authf("Utilisateur non authentifié"))
		return
	}

	sessionID := c.Param("sessionId")

	metadata, paymentStatus, err := services.VerifySession(services.Checkout, callerID, sessionID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"metadata":       metadata,
		"payment_status": paymentStatus,
	})
}
