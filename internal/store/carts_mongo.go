package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"parfumerie_back_end/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoCarts struct {
	col *mongo.Collection
}

// Get matérialise le panier au premier accès via un upsert $setOnInsert :
// création paresseuse et lecture tiennent dans une seule opération.
func (m *mongoCarts) Get(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var cart models.Cart
	err := m.col.FindOneAndUpdate(ctx,
		bson.M{"userId": userID},
		bson.M{"$setOnInsert": bson.M{
			"userId":    userID,
			"items":     []models.CartItem{},
			"updatedAt": time.Now(),
		}},
		opts,
	).Decode(&cart)
	if err != nil {
		return nil, fmt.Errorf("échec lecture panier: %w", err)
	}
	return &cart, nil
}

// AddItem fusionne la quantité via $inc sur l'élément positionnel, sinon
// pousse une nouvelle ligne gardée par un filtre $ne. Deux ajouts
// concurrents ne perdent donc jamais de mise à jour ; en cas de course sur
// la toute première ligne d'un produit, on retente le $inc.
func (m *mongoCarts) AddItem(ctx context.Context, userID primitive.ObjectID, item models.CartItem) (*models.Cart, error) {
	if _, err := m.Get(ctx, userID); err != nil {
		return nil, err
	}

	for attempt := 0; attempt < 3; attempt++ {
		res, err := m.col.UpdateOne(ctx,
			bson.M{"userId": userID, "items.productId": item.ProductID},
			bson.M{
				"$inc": bson.M{"items.$.quantity": item.Quantity},
				"$set": bson.M{"updatedAt": time.Now()},
			},
		)
		if err != nil {
			return nil, fmt.Errorf("échec ajout au panier: %w", err)
		}
		if res.MatchedCount > 0 {
			return m.current(ctx, userID)
		}

		// Pas encore de ligne pour ce produit : $push gardé contre les doublons.
		res, err = m.col.UpdateOne(ctx,
			bson.M{"userId": userID, "items.productId": bson.M{"$ne": item.ProductID}},
			bson.M{
				"$push": bson.M{"items": item},
				"$set":  bson.M{"updatedAt": time.Now()},
			},
		)
		if err != nil {
			return nil, fmt.Errorf("échec ajout au panier: %w", err)
		}
		if res.MatchedCount > 0 {
			return m.current(ctx, userID)
		}
		// Un ajout concurrent a créé la ligne entre-temps : on repart sur $inc.
	}
	return nil, errors.New("panier trop disputé, ajout abandonné")
}

func (m *mongoCarts) SetQuantity(ctx context.Context, userID, productID primitive.ObjectID, quantity int) (*models.Cart, error) {
	res, err := m.col.UpdateOne(ctx,
		bson.M{"userId": userID, "items.productId": productID},
		bson.M{
			"$set": bson.M{"items.$.quantity": quantity, "updatedAt": time.Now()},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("échec mise à jour quantité: %w", err)
	}
	if res.MatchedCount == 0 {
		// Distinguer panier absent / ligne absente pour le message client.
		if err := m.col.FindOne(ctx, bson.M{"userId": userID}).Err(); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, ErrCartNotFound
			}
			return nil, fmt.Errorf("échec lecture panier: %w", err)
		}
		return nil, ErrItemNotFound
	}
	return m.current(ctx, userID)
}

func (m *mongoCarts) RemoveItem(ctx context.Context, userID, productID primitive.ObjectID) (*models.Cart, error) {
	res, err := m.col.UpdateOne(ctx,
		bson.M{"userId": userID},
		bson.M{
			"$pull": bson.M{"items": bson.M{"productId": productID}},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("échec retrait du panier: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, ErrCartNotFound
	}
	return m.current(ctx, userID)
}

func (m *mongoCarts) Clear(ctx context.Context, userID primitive.ObjectID) error {
	res, err := m.col.UpdateOne(ctx,
		bson.M{"userId": userID},
		bson.M{"$set": bson.M{"items": []models.CartItem{}, "updatedAt": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("échec vidage panier: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrCartNotFound
	}
	return nil
}

func (m *mongoCarts) ReplaceItems(ctx context.Context, userID primitive.ObjectID, items []models.CartItem) (*models.Cart, error) {
	if items == nil {
		items = []models.CartItem{}
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var cart models.Cart
	err := m.col.FindOneAndUpdate(ctx,
		bson.M{"userId": userID},
		bson.M{
			"$set":         bson.M{"items": items, "updatedAt": time.Now()},
			"$setOnInsert": bson.M{"userId": userID},
		},
		opts,
	).Decode(&cart)
	if err != nil {
		return nil, fmt.Errorf("échec synchronisation panier: %w", err)
	}
	return &cart, nil
}

func (m *mongoCarts) current(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	var cart models.Cart
	if err := m.col.FindOne(ctx, bson.M{"userId": userID}).Decode(&cart); err != nil {
		return nil, fmt.Errorf("échec relecture panier: %w", err)
	}
	return &cart, nil
}
