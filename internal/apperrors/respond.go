package apperrors

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

func statusOf(kind Kind) int {
	switch kind {
	case Validation, PaymentNotCompleted:
		return http.StatusBadRequest
	case Auth:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case PaymentProvider:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Respond traduit une erreur en réponse JSON {"error": ...} avec le statut
// correspondant. Les erreurs internes sont loggées avec leur cause mais le
// client ne voit jamais le détail.
func Respond(c *gin.Context, err error) {
	var ae *Error
	if !errors.As(err, &ae) {
		log.Printf("❌ Erreur inattendue: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur interne du serveur"})
		return
	}

	msg := ae.Message
	if ae.Kind == Internal {
		log.Printf("❌ %v", ae)
	} else if ae.Kind == PaymentProvider {
		// Le message amont du prestataire est rattaché, jamais re-tenté ici.
		log.Printf("❌ Prestataire de paiement: %v", ae)
		if ae.Err != nil {
			msg = ae.Message + ": " + ae.Err.Error()
		}
	}

	c.JSON(statusOf(ae.Kind), gin.H{"error": msg})
}
