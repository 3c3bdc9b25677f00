package user

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"parfumerie_back_end/internal/config"
	"parfumerie_back_end/internal/models"
	"parfumerie_back_end/internal/store"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func init() {
	gin.SetMode(gin.TestMode)
	// SMTP absent : l'e-mail de confirmation est ignoré.
	config.C = &config.Config{JWTSecret: []byte("secret-de-test")}
}

// --- Doubles en mémoire respectant le contrat des stores ---

type fakeProducts struct {
	products map[primitive.ObjectID]models.Product
}

func newFakeProducts() *fakeProducts {
	return &fakeProducts{products: make(map[primitive.ObjectID]models.Product)}
}

func (f *fakeProducts) List(context.Context) ([]models.Product, error) {
	out := make([]models.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProducts) Get(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, store.ErrProductNotFound
	}
	return &p, nil
}

func (f *fakeProducts) ByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Product, error) {
	out := make(map[primitive.ObjectID]models.Product)
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (f *fakeProducts) AddReview(_ context.Context, id primitive.ObjectID, review models.Review, newAverage float64) error {
	p, ok := f.products[id]
	if !ok {
		return store.ErrProductNotFound
	}
	p.Reviews = append(p.Reviews, review)
	p.AverageRating = newAverage
	f.products[id] = p
	return nil
}

func (f *fakeProducts) SetAverageRating(_ context.Context, id primitive.ObjectID, average float64) error {
	p := f.products[id]
	p.AverageRating = average
	f.products[id] = p
	return nil
}

func (f *fakeProducts) AppendImage(_ context.Context, id primitive.ObjectID, url string) error {
	p, ok := f.products[id]
	if !ok {
		return store.ErrProductNotFound
	}
	p.Images = append(p.Images, url)
	f.products[id] = p
	return nil
}

type fakeCarts struct {
	mu    sync.Mutex
	carts map[primitive.ObjectID]*models.Cart
}

func newFakeCarts() *fakeCarts {
	return &fakeCarts{carts: make(map[primitive.ObjectID]*models.Cart)}
}

func (f *fakeCarts) Get(_ context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cart, ok := f.carts[userID]
	if !ok {
		cart = &models.Cart{ID: primitive.NewObjectID(), UserID: userID, Items: []models.CartItem{}}
		f.carts[userID] = cart
	}
	copied := *cart
	return &copied, nil
}

func (f *fakeCarts) AddItem(ctx context.Context, userID primitive.ObjectID, item models.CartItem) (*models.Cart, error) {
	if _, err := f.Get(ctx, userID); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	cart := f.carts[userID]
	for i := range cart.Items {
		if cart.Items[i].ProductID == item.ProductID {
			cart.Items[i].Quantity += item.Quantity
			copied := *cart
			return &copied, nil
		}
	}
	cart.Items = append(cart.Items, item)
	copied := *cart
	return &copied, nil
}

func (f *fakeCarts) SetQuantity(_ context.Context, userID, productID primitive.ObjectID, quantity int) (*models.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cart, ok := f.carts[userID]
	if !ok {
		return nil, store.ErrCartNotFound
	}
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity = quantity
			copied := *cart
			return &copied, nil
		}
	}
	return nil, store.ErrItemNotFound
}

func (f *fakeCarts) RemoveItem(_ context.Context, userID, productID primitive.ObjectID) (*models.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cart, ok := f.carts[userID]
	if !ok {
		return nil, store.ErrCartNotFound
	}
	kept := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	cart.Items = kept
	copied := *cart
	return &copied, nil
}

func (f *fakeCarts) Clear(_ context.Context, userID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cart, ok := f.carts[userID]
	if !ok {
		return store.ErrCartNotFound
	}
	cart.Items = []models.CartItem{}
	return nil
}

func (f *fakeCarts) ReplaceItems(_ context.Context, userID primitive.ObjectID, items []models.CartItem) (*models.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cart, ok := f.carts[userID]
	if !ok {
		cart = &models.Cart{ID: primitive.NewObjectID(), UserID: userID}
		f.carts[userID] = cart
	}
	cart.Items = items
	copied := *cart
	return &copied, nil
}

type fakeOrders struct {
	mu     sync.Mutex
	orders map[primitive.ObjectID]models.Order
}

func newFakeOrders() *fakeOrders {
	return &fakeOrders{orders: make(map[primitive.ObjectID]models.Order)}
}

func (f *fakeOrders) Insert(_ context.Context, order *models.Order) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := primitive.NewObjectID()
	order.ID = id
	f.orders[id] = *order
	return id, nil
}

func (f *fakeOrders) ListByUser(_ context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Order
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeOrders) GetOwned(_ context.Context, orderID, userID primitive.ObjectID) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[orderID]
	if !ok || o.UserID != userID {
		return nil, store.ErrOrderNotFound
	}
	return &o, nil
}

func (f *fakeOrders) Delete(_ context.Context, orderID, userID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[orderID]
	if !ok || o.UserID != userID {
		return store.ErrOrderNotFound
	}
	delete(f.orders, orderID)
	return nil
}

type fakeUsers struct {
	byEmail map[string]models.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byEmail: make(map[string]models.User)}
}

func (f *fakeUsers) ByEmail(_ context.Context, email string) (*models.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return &u, nil
}

func (f *fakeUsers) Insert(_ context.Context, u *models.User) (primitive.ObjectID, error) {
	if _, ok := f.byEmail[u.Email]; ok {
		return primitive.NilObjectID, store.ErrEmailTaken
	}
	id := primitive.NewObjectID()
	u.ID = id
	f.byEmail[u.Email] = *u
	return id, nil
}

// --- Montage du routeur de test ---

type testEnv struct {
	products *fakeProducts
	carts    *fakeCarts
	orders   *fakeOrders
	users    *fakeUsers
	caller   primitive.ObjectID
	router   *gin.Engine
}

// newTestEnv branche les doubles sur les stores globaux et monte les
// routes panier/commandes derrière une identité de test.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		products: newFakeProducts(),
		carts:    newFakeCarts(),
		orders:   newFakeOrders(),
		users:    newFakeUsers(),
		caller:   primitive.NewObjectID(),
	}

	prevP, prevC, prevO, prevU := store.Products, store.Carts, store.Orders, store.Users
	store.Products, store.Carts, store.Orders, store.Users = env.products, env.carts, env.orders, env.users
	t.Cleanup(func() {
		store.Products, store.Carts, store.Orders, store.Users = prevP, prevC, prevO, prevU
	})

	authStub := func(c *gin.Context) {
		c.Set("user_id", env.caller.Hex())
		c.Set("email", "client@test.fr")
	}

	r := gin.New()
	api := r.Group("/api", authStub)
	api.GET("/cart", GetCart)
	api.POST("/cart/add", AddToCart)
	api.PUT("/cart/update", UpdateCartItem)
	api.DELETE("/cart/remove", RemoveFromCart)
	api.DELETE("/cart/clear", ClearCart)
	api.POST("/cart/sync", SyncCart)
	api.POST("/orders", PlaceOrder)
	api.GET("/orders", GetMyOrders)
	api.DELETE("/orders/:id", DeleteOrder)
	env.router = r

	return env
}

func (env *testEnv) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func (env *testEnv) addProduct(name string, price float64) models.Product {
	p := models.Product{
		ID:     primitive.NewObjectID(),
		Name:   name,
		Price:  price,
		Images: []string{"http://img/" + name + ".jpg"},
	}
	env.products.products[p.ID] = p
	return p
}

func (env *testEnv) addOrder(userID primitive.ObjectID, createdAt time.Time) models.Order {
	o := models.Order{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Items:     []models.OrderItem{},
		Total:     20.00,
		CreatedAt: createdAt,
	}
	env.orders.orders[o.ID] = o
	return o
}
