package store

import (
	"context"
	"errors"
	"fmt"

	"parfumerie_back_end/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoOrders struct {
	col *mongo.Collection
}

func (m *mongoOrders) Insert(ctx context.Context, order *models.Order) (primitive.ObjectID, error) {
	res, err := m.col.InsertOne(ctx, order)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("échec enregistrement commande: %w", err)
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("identifiant de commande inattendu")
	}
	return id, nil
}

func (m *mongoOrders) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := m.col.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("échec lecture commandes: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("échec décodage commandes: %w", err)
	}
	return orders, nil
}

func (m *mongoOrders) GetOwned(ctx context.Context, orderID, userID primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := m.col.FindOne(ctx, bson.M{"_id": orderID, "userId": userID}).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("échec lecture commande: %w", err)
	}
	return &order, nil
}

func (m *mongoOrders) Delete(ctx context.Context, orderID, userID primitive.ObjectID) error {
	res, err := m.col.DeleteOne(ctx, bson.M{"_id": orderID, "userId": userID})
	if err != nil {
		return fmt.Errorf("échec suppression commande: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrOrderNotFound
	}
	return nil
}
