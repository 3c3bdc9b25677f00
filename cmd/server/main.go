package main

import (
	"log"

	"parfumerie_back_end/internal/config"
	"parfumerie_back_end/internal/database"
	"parfumerie_back_end/internal/routes"
	"parfumerie_back_end/internal/services"
	"parfumerie_back_end/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v83"
)

func main() {
	cfg := config.Load()

	stripe.Key = cfg.StripeSecretKey
	log.Println("✅ Stripe initialisé")

	database.ConnectDatabases(cfg)
	defer database.CloseDatabases()

	store.Init(database.Mongo)

	services.ConnectMinio(cfg)

	r := gin.Default()
	routes.RegisterRoutes(r, cfg)

	log.Println("🚀 Serveur Parfumerie lancé sur le port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("❌ Erreur serveur:", err)
	}
}
