package payement

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"parfumerie_back_end/internal/config"
	"parfumerie_back_end/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v83"
)

func init() {
	gin.SetMode(gin.TestMode)
	config.C = &config.Config{
		StripeSuccessURL: "http://localhost:3000/success",
		StripeCancelURL:  "http://localhost:3000/cancel",
	}
}

// fakeCheckout rejoue des sessions préparées à la place de Stripe.
type fakeCheckout struct {
	created   *stripe.CheckoutSessionParams
	createErr error
	sessions  map[string]*stripe.CheckoutSession
}

func (f *fakeCheckout) CreateSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	f.created = params
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &stripe.CheckoutSession{ID: "cs_test_123"}, nil
}

func (f *fakeCheckout) RetrieveSession(sessionID string) (*stripe.CheckoutSession, error) {
	sess, ok := f.sessions[sessionID]
	if !ok {
		return nil, errors.New("no such session")
	}
	return sess, nil
}

func swapCheckout(t *testing.T, fake services.CheckoutClient) {
	t.Helper()
	prev := services.Checkout
	services.Checkout = fake
	t.Cleanup(func() { services.Checkout = prev })
}

func newRouter(callerID string) *gin.Engine {
	r := gin.New()
	api := r.Group("/api/payment")
	api.POST("/create-checkout-session", CreateCheckoutSession)
	api.GET("/verify-session/:sessionId", func(c *gin.Context) {
		if callerID != "" {
			c.Set("user_id", callerID)
		}
		VerifySession(c)
	})
	return r
}

func TestCreateCheckoutSession_HTTP(t *testing.T) {
	fake := &fakeCheckout{}
	swapCheckout(t, fake)
	r := newRouter("")

	body := `{
		"items": [{"_id": "prod1", "name": "Oud Intense", "quantity": 2, "price": 10.00}],
		"user": {"_id": "user42", "email": "client@test.fr"}
	}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/payment/create-checkout-session", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id": "cs_test_123"}`, w.Body.String())

	require.NotNil(t, fake.created)
	assert.Equal(t, "user42", fake.created.Metadata["userId"])
	assert.Equal(t, "http://localhost:3000/success", *fake.created.SuccessURL)
}

func TestCreateCheckoutSession_Validation(t *testing.T) {
	fake := &fakeCheckout{}
	swapCheckout(t, fake)
	r := newRouter("")

	cases := []struct {
		name string
		body string
	}{
		{"corps illisible", `{{{`},
		{"utilisateur manquant", `{"items":[{"_id":"p","quantity":1,"price":5}]}`},
		{"articles vides", `{"items":[],"user":{"_id":"user42"}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/payment/create-checkout-session", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Nil(t, fake.created, "aucun appel prestataire sur requête invalide")
		})
	}
}

func TestCreateCheckoutSession_PannePrestaire(t *testing.T) {
	fake := &fakeCheckout{createErr: errors.New("stripe indisponible")}
	swapCheckout(t, fake)
	r := newRouter("")

	body := `{"items":[{"_id":"p","name":"X","quantity":1,"price":5}],"user":{"_id":"user42"}}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/payment/create-checkout-session", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func paidSession(userID string) *stripe.CheckoutSession {
	return &stripe.CheckoutSession{
		ID:            "cs_test_paid",
		PaymentStatus: stripe.CheckoutSessionPaymentStatusPaid,
		Metadata: map[string]string{
			"userId":    userID,
			"cartItems": `[{"productId":"p1","quantity":2,"price":10}]`,
		},
	}
}

func TestVerifySession_HTTP(t *testing.T) {
	fake := &fakeCheckout{sessions: map[string]*stripe.CheckoutSession{
		"cs_test_paid": paidSession("user42"),
	}}
	swapCheckout(t, fake)
	r := newRouter("user42")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/payment/verify-session/cs_test_paid", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Metadata      map[string]string `json:"metadata"`
		PaymentStatus string            `json:"payment_status"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "paid", resp.PaymentStatus)
	assert.Equal(t, "user42", resp.Metadata["userId"])
	assert.Contains(t, resp.Metadata["cartItems"], `"productId":"p1"`)
}

func TestVerifySession_AutreUtilisateur(t *testing.T) {
	fake := &fakeCheckout{sessions: map[string]*stripe.CheckoutSession{
		"cs_test_paid": paidSession("userA"),
	}}
	swapCheckout(t, fake)
	// userB tente de lire la confirmation de userA.
	r := newRouter("userB")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/payment/verify-session/cs_test_paid", nil))

	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Accès non autorisé")
}

func TestVerifySession_NonPaye(t *testing.T) {
	sess := paidSession("user42")
	sess.PaymentStatus = stripe.CheckoutSessionPaymentStatusUnpaid
	fake := &fakeCheckout{sessions: map[string]*stripe.CheckoutSession{"cs_test_paid": sess}}
	swapCheckout(t, fake)
	r := newRouter("user42")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/payment/verify-session/cs_test_paid", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerifySession_SansAuthentification(t *testing.T) {
	fake := &fakeCheckout{}
	swapCheckout(t, fake)
	r := newRouter("")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/payment/verify-session/cs_whatever", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestVerifySession_SessionInconnue(t *testing.T) {
	fake := &fakeCheckout{sessions: map[string]*stripe.CheckoutSession{}}
	swapCheckout(t, fake)
	r := newRouter("user42")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/payment/verify-session/%s", "cs_absente"), nil))

	assert.Equal(t, http.StatusBadGateway, w.Code)
}
