package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem référence un produit par son id ; l'unicité du produit dans le
// panier est garantie par CartStore (ajout = fusion des quantités).
type CartItem struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Quantity  int                `bson:"quantity" json:"quantity"`
}

// Cart : un seul panier par utilisateur, créé paresseusement au premier
// accès, jamais détruit (seulement vidé).
type Cart struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Items     []CartItem         `bson:"items" json:"items"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ResolvedCartItem est la ligne de panier renvoyée au client, avec le
// produit résolu (join-on-read) pour éviter un second aller-retour.
type ResolvedCartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

type ResolvedCart struct {
	ID     primitive.ObjectID `json:"_id"`
	UserID primitive.ObjectID `json:"userId"`
	Items  []ResolvedCartItem `json:"items"`
}
