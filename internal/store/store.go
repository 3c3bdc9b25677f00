// Package store : accès aux documents MongoDB derrière des interfaces,
// instanciées au démarrage et remplaçables dans les tests.
package store

import (
	"context"
	"errors"

	"parfumerie_back_end/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrProductNotFound = errors.New("produit introuvable")
	ErrCartNotFound    = errors.New("panier introuvable")
	ErrItemNotFound    = errors.New("article absent du panier")
	ErrOrderNotFound   = errors.New("commande introuvable")
	ErrUserNotFound    = errors.New("utilisateur introuvable")
	ErrAlreadyReviewed = errors.New("avis déjà déposé pour ce produit")
	ErrEmailTaken      = errors.New("email déjà utilisé")
)

type ProductStore interface {
	List(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	// ByIDs résout un lot de produits en une seule requête ($in).
	ByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Product, error)
	// AddReview pousse l'avis et fixe la moyenne dénormalisée dans la même
	// mise à jour ; refuse si l'utilisateur a déjà noté ce produit.
	AddReview(ctx context.Context, productID primitive.ObjectID, review models.Review, newAverage float64) error
	// SetAverageRating répare la moyenne dénormalisée (repair-on-read).
	SetAverageRating(ctx context.Context, productID primitive.ObjectID, average float64) error
	AppendImage(ctx context.Context, productID primitive.ObjectID, url string) error
}

// CartStore : toutes les mutations sont des mises à jour atomiques d'un
// seul document — jamais de lecture-modification-écriture non gardée.
type CartStore interface {
	// Get matérialise un panier vide au premier accès (et le persiste).
	Get(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error)
	// AddItem fusionne la quantité si le produit est déjà une ligne du
	// panier, sinon ajoute une nouvelle ligne.
	AddItem(ctx context.Context, userID primitive.ObjectID, item models.CartItem) (*models.Cart, error)
	// SetQuantity remplace exactement la quantité (pas d'addition).
	SetQuantity(ctx context.Context, userID, productID primitive.ObjectID, quantity int) (*models.Cart, error)
	// RemoveItem est idempotent : retirer une ligne absente n'est pas une erreur.
	RemoveItem(ctx context.Context, userID, productID primitive.ObjectID) (*models.Cart, error)
	Clear(ctx context.Context, userID primitive.ObjectID) error
	// ReplaceItems écrase toutes les lignes (réconciliation client).
	ReplaceItems(ctx context.Context, userID primitive.ObjectID, items []models.CartItem) (*models.Cart, error)
}

type OrderStore interface {
	Insert(ctx context.Context, order *models.Order) (primitive.ObjectID, error)
	// ListByUser retourne les commandes de l'utilisateur, plus récentes d'abord.
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
	// GetOwned filtre toujours par propriétaire : une commande d'un autre
	// utilisateur est introuvable, jamais exposée.
	GetOwned(ctx context.Context, orderID, userID primitive.ObjectID) (*models.Order, error)
	Delete(ctx context.Context, orderID, userID primitive.ObjectID) error
}

type UserStore interface {
	ByEmail(ctx context.Context, email string) (*models.User, error)
	Insert(ctx context.Context, user *models.User) (primitive.ObjectID, error)
}

// --- Instances globales, câblées au démarrage ---
var (
	Products ProductStore
	Carts    CartStore
	Orders   OrderStore
	Users    UserStore
)

// Init branche les implémentations MongoDB sur la base connectée.
func Init(db *mongo.Database) {
	// La collection produits garde son nom historique "perfume".
	Products = &mongoProducts{col: db.Collection("perfume")}
	Carts = &mongoCarts{col: db.Collection("carts")}
	Orders = &mongoOrders{col: db.Collection("orders")}
	Users = &mongoUsers{col: db.Collection("users")}
}
