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

type mongoUsers struct {
	col *mongo.Collection
}

func (m *mongoUsers) ByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := m.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("échec lecture utilisateur: %w", err)
	}
	return &user, nil
}

func (m *mongoUsers) Insert(ctx context.Context, user *models.User) (primitive.ObjectID, error) {
	res, err := m.col.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, ErrEmailTaken
		}
		return primitive.NilObjectID, fmt.Errorf("échec création utilisateur: %w", err)
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("identifiant utilisateur inattendu")
	}
	return id, nil
}
