package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderItem est un instantané pris au moment de la commande : le prix est
// copié, jamais re-dérivé du catalogue. Les changements de prix ultérieurs
// ne touchent donc jamais les commandes passées.
type OrderItem struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Price     float64            `bson:"price" json:"price"`
	// Projection produit résolue à la lecture, jamais persistée.
	Product *ProductSummary `bson:"-" json:"product,omitempty"`
}

// Order est immuable après création ; seule la suppression est permise,
// et uniquement dans les 24 heures.
type Order struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Items     []OrderItem        `bson:"items" json:"items"`
	Total     float64            `bson:"total" json:"total"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// DeleteWindow : délai après lequel une commande ne peut plus être supprimée.
const DeleteWindow = 24 * time.Hour

// Deletable indique si la commande peut encore être supprimée à l'instant now.
func (o Order) Deletable(now time.Time) bool {
	return now.Sub(o.CreatedAt) <= DeleteWindow
}
