package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review est embarqué dans le document produit (collection "perfume").
// Un avis est immuable une fois créé.
type Review struct {
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Username  string             `bson:"username" json:"username"`
	Rating    int                `bson:"rating" json:"rating"` // 1-5
	Comment   string             `bson:"comment" json:"comment"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price"`
	Images      []string           `bson:"images" json:"images"`
	Brand       string             `bson:"brand" json:"brand"`
	Gender      string             `bson:"gender" json:"gender"`
	Size        string             `bson:"size" json:"size"`
	Notes       string             `bson:"notes" json:"notes"`
	Longevity   string             `bson:"longevity" json:"longevity"`
	Reviews     []Review           `bson:"reviews" json:"reviews"`
	// Moyenne dénormalisée des notes, arrondie à une décimale.
	// Recalculée à chaque ajout d'avis et réparée à la lecture.
	AverageRating float64 `bson:"averageRating" json:"averageRating"`
}

// ProductSummary est la projection minimale renvoyée dans les commandes.
type ProductSummary struct {
	ID     primitive.ObjectID `bson:"_id" json:"_id"`
	Name   string             `bson:"name" json:"name"`
	Price  float64            `bson:"price" json:"price"`
	Images []string           `bson:"images" json:"images"`
}
