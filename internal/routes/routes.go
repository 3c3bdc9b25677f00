package routes

import (
	"parfumerie_back_end/internal/config"
	"parfumerie_back_end/internal/handlers/payement"
	"parfumerie_back_end/internal/handlers/product"
	"parfumerie_back_end/internal/handlers/user"
	"parfumerie_back_end/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, cfg *config.Config) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	auth := middleware.AuthRequired(cfg.JWTSecret)

	api := r.Group("/api")
	{
		// Auth
		api.POST("/auth/register", middleware.RegisterRateLimit(), user.Register)
		api.POST("/auth/login", middleware.LoginRateLimit(), user.Login)

		// Catalogue (public)
		api.GET("/products", product.GetProducts)
		api.GET("/products/:id", product.GetProduct)
		api.GET("/products/:id/reviews", product.GetProductReviews)

		// Avis & images (authentifié)
		api.POST("/products/:id/reviews", auth, product.CreateReview)
		api.POST("/products/:id/images", auth, product.UploadProductImage)

		// Panier (authentifié)
		api.GET("/cart", auth, user.GetCart)
		api.POST("/cart/add", auth, user.AddToCart)
		api.PUT("/cart/update", auth, user.UpdateCartItem)
		api.DELETE("/cart/remove", auth, user.RemoveFromCart)
		api.DELETE("/cart/clear", auth, user.ClearCart)
		api.POST("/cart/sync", auth, user.SyncCart)

		// Commandes (authentifié)
		api.POST("/orders", auth, user.PlaceOrder)
		api.GET("/orders", auth, user.GetMyOrders)
		api.DELETE("/orders/:id", auth, user.DeleteOrder)

		// Paiement : création publique (comme le front l'appelle avant
		// redirection Stripe), vérification authentifiée.
		api.POST("/payment/create-checkout-session", payement.CreateCheckoutSession)
		api.GET("/payment/verify-session/:sessionId", auth, payement.VerifySession)
	}
}
