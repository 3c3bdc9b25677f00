package services

import (
	"context"
	"math"

	"parfumerie_back_end/internal/models"
	"parfumerie_back_end/internal/store"
)

// AverageRating calcule la moyenne des notes arrondie à une décimale,
// 0 si aucun avis. Fonction pure : c'est l'unique endroit où la moyenne
// est calculée, tous les chemins de code passent par ici.
func AverageRating(reviews []models.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	avg := float64(sum) / float64(len(reviews))
	return math.Round(avg*10) / 10
}

// RepairRating recalcule la moyenne dénormalisée à la lecture et la
// persiste si la valeur stockée a dérivé (réparation opportuniste).
func RepairRating(ctx context.Context, product *models.Product) error {
	computed := AverageRating(product.Reviews)
	if computed == product.AverageRating {
		return nil
	}
	if err := store.Products.SetAverageRating(ctx, product.ID, computed); err != nil {
		return err
	}
	product.AverageRating = computed
	return nil
}
