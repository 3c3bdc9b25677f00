package services

import (
	"encoding/json"
	"math"
	"strings"

	"parfumerie_back_end/internal/apperrors"

	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/checkout/session"
)

// CheckoutClient isole les appels Stripe pour les tests.
type CheckoutClient interface {
	CreateSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
	RetrieveSession(sessionID string) (*stripe.CheckoutSession, error)
}

type stripeCheckout struct{}

func (stripeCheckout) CreateSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	return session.New(params)
}

func (stripeCheckout) RetrieveSession(sessionID string) (*stripe.CheckoutSession, error) {
	return session.Get(sessionID, nil)
}

// Checkout est le client Stripe réel ; remplacé par un faux dans les tests.
var Checkout CheckoutClient = stripeCheckout{}

// CheckoutItem est une ligne de panier telle que soumise au checkout.
type CheckoutItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// CheckoutURLs : pages de retour après paiement, résolues au démarrage.
type CheckoutURLs struct {
	Success string
	Cancel  string
}

// metadataItem est la forme sérialisée dans les métadonnées de session ;
// le nom d'affichage n'y figure pas.
type metadataItem struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// MinorUnits convertit un prix en unités mineures du prestataire
// (arrondi standard à l'entier le plus proche après multiplication par 100).
func MinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}

// SerializeItems produit la chaîne unique embarquée dans les métadonnées.
func SerializeItems(items []CheckoutItem) (string, error) {
	metaItems := make([]metadataItem, 0, len(items))
	for _, item := range items {
		metaItems = append(metaItems, metadataItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}
	data, err := json.Marshal(metaItems)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// CreateCheckoutSession construit la session de paiement : une ligne
// prestataire par article, métadonnées {userId, cartItems} pour que le
// règlement puisse être rattaché à l'appelant authentifié sans table de
// session locale. Retourne uniquement l'identifiant opaque de session.
// Jamais re-tenté automatiquement : un retry créerait une seconde session.
func CreateCheckoutSession(client CheckoutClient, urls CheckoutURLs, userID, email string, items []CheckoutItem) (string, error) {
	if userID == "" || len(items) == 0 {
		return "", apperrors.Validationf("Requête invalide : utilisateur et articles requis")
	}

	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(items))
	for _, item := range items {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String("inr"),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(item.Name),
				},
				UnitAmount: stripe.Int64(MinorUnits(item.Price)),
			},
			Quantity: stripe.Int64(int64(item.Quantity)),
		})
	}

	serialized, err := SerializeItems(items)
	if err != nil {
		return "", apperrors.Internalf(err, "Échec sérialisation du panier")
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems:          lineItems,
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:         stripe.String(urls.Success),
		CancelURL:          stripe.String(urls.Cancel),
	}
	if email != "" {
		params.CustomerEmail = stripe.String(email)
	}
	// Identité stringifiée pour le transport, quelle que soit sa forme native.
	params.AddMetadata("userId", userID)
	params.AddMetadata("cartItems", serialized)

	sess, err := client.CreateSession(params)
	if err != nil {
		return "", apperrors.PaymentProviderErr("Échec création de la session de paiement", err)
	}
	return sess.ID, nil
}

// VerifySession récupère la session réglée et recoupe son identité
// embarquée avec l'appelant authentifié avant de libérer la confirmation.
// Sans ce contrôle, tout utilisateur authentifié connaissant l'identifiant
// de session d'un autre pourrait lire sa confirmation de paiement.
// Aucun effet de bord : l'appel est répétable à l'identique.
func VerifySession(client CheckoutClient, callerID, sessionID string) (map[string]string, string, error) {
	sess, err := client.RetrieveSession(sessionID)
	if err != nil {
		return nil, "", apperrors.PaymentProviderErr("Échec vérification de la session de paiement", err)
	}

	if sess.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
		return nil, "", apperrors.PaymentNotCompletedf("Paiement non complété")
	}

	// Identité fournie par le prestataire = entrée non fiable : comparaison
	// canonique (espaces retirés), jamais de confiance implicite.
	sessionUserID := strings.TrimSpace(sess.Metadata["userId"])
	requestUserID := strings.TrimSpace(callerID)
	if sessionUserID == "" || sessionUserID != requestUserID {
		return nil, "", apperrors.Forbiddenf("Accès non autorisé à la session de paiement")
	}

	return sess.Metadata, string(sess.PaymentStatus), nil
}
