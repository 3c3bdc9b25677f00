package middleware

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CallerID retourne l'identifiant du porteur résolu par AuthRequired.
// ok=false si le contexte ne porte pas d'identité exploitable.
func CallerID(c *gin.Context) (primitive.ObjectID, bool) {
	userID := c.GetString("user_id")
	if userID == "" {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}
