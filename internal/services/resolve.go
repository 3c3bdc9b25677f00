package services

import (
	"context"

	"parfumerie_back_end/internal/models"
	"parfumerie_back_end/internal/store"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ResolveCart joint les détails produits aux lignes du panier avant de
// répondre au client (join-on-read) : jamais de second aller-retour côté
// front. Les lignes dont le produit ne se résout plus (sync confiant,
// produit retiré du catalogue) sont omises de la vue résolue.
func ResolveCart(ctx context.Context, cart *models.Cart) (*models.ResolvedCart, error) {
	ids := make([]primitive.ObjectID, 0, len(cart.Items))
	for _, item := range cart.Items {
		ids = append(ids, item.ProductID)
	}

	products, err := store.Products.ByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	resolved := &models.ResolvedCart{
		ID:     cart.ID,
		UserID: cart.UserID,
		Items:  make([]models.ResolvedCartItem, 0, len(cart.Items)),
	}
	for _, item := range cart.Items {
		product, ok := products[item.ProductID]
		if !ok {
			continue
		}
		resolved.Items = append(resolved.Items, models.ResolvedCartItem{
			Product:  product,
			Quantity: item.Quantity,
		})
	}
	return resolved, nil
}

// ResolveOrderItems attache la projection produit minimale (nom, prix,
// images) aux lignes de commandes. Le prix affiché reste celui du
// catalogue courant ; le prix payé est l'instantané stocké dans la ligne.
func ResolveOrderItems(ctx context.Context, orders []models.Order) error {
	idSet := make(map[primitive.ObjectID]struct{})
	for _, order := range orders {
		for _, item := range order.Items {
			idSet[item.ProductID] = struct{}{}
		}
	}
	ids := make([]primitive.ObjectID, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	products, err := store.Products.ByIDs(ctx, ids)
	if err != nil {
		return err
	}

	for i := range orders {
		for j := range orders[i].Items {
			if product, ok := products[orders[i].Items[j].ProductID]; ok {
				orders[i].Items[j].Product = &models.ProductSummary{
					ID:     product.ID,
					Name:   product.Name,
					Price:  product.Price,
					Images: product.Images,
				}
			}
		}
	}
	return nil
}
