package store

import (
	"context"
	"errors"
	"fmt"

	"parfumerie_back_end/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type mongoProducts struct {
	col *mongo.Collection
}

func (m *mongoProducts) List(ctx context.Context) ([]models.Product, error) {
	cursor, err := m.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("échec lecture produits: %w", err)
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("échec décodage produits: %w", err)
	}
	return products, nil
}

func (m *mongoProducts) Get(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := m.col.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("échec lecture produit: %w", err)
	}
	return &product, nil
}

func (m *mongoProducts) ByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Product, error) {
	result := make(map[primitive.ObjectID]models.Product, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	cursor, err := m.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("échec résolution produits: %w", err)
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("échec décodage produits: %w", err)
	}
	for _, p := range products {
		result[p.ID] = p
	}
	return result, nil
}

func (m *mongoProducts) AddReview(ctx context.Context, productID primitive.ObjectID, review models.Review, newAverage float64) error {
	// Le filtre exclut les produits déjà notés par cet utilisateur : l'ajout
	// et l'unicité par auteur tiennent dans une seule mise à jour atomique.
	res, err := m.col.UpdateOne(ctx,
		bson.M{"_id": productID, "reviews.userId": bson.M{"$ne": review.UserID}},
		bson.M{
			"$push": bson.M{"reviews": review},
			"$set":  bson.M{"averageRating": newAverage},
		},
	)
	if err != nil {
		return fmt.Errorf("échec ajout avis: %w", err)
	}
	if res.MatchedCount == 0 {
		// Produit absent ou déjà noté ; l'appelant a vérifié l'existence.
		return ErrAlreadyReviewed
	}
	return nil
}

func (m *mongoProducts) SetAverageRating(ctx context.Context, productID primitive.ObjectID, average float64) error {
	_, err := m.col.UpdateOne(ctx,
		bson.M{"_id": productID},
		bson.M{"$set": bson.M{"averageRating": average}},
	)
	if err != nil {
		return fmt.Errorf("échec mise à jour note moyenne: %w", err)
	}
	return nil
}

func (m *mongoProducts) AppendImage(ctx context.Context, productID primitive.ObjectID, url string) error {
	res, err := m.col.UpdateOne(ctx,
		bson.M{"_id": productID},
		bson.M{"$push": bson.M{"images": url}},
	)
	if err != nil {
		return fmt.Errorf("échec ajout image: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}
