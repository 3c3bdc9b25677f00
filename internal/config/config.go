package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config est résolue une seule fois au démarrage puis injectée ; aucun
// composant ne relit les secrets via os.Getenv en cours de route.
type Config struct {
	Port string

	MongoURI  string
	MongoDB   string
	RedisAddr string
	RedisPass string

	JWTSecret []byte

	StripeSecretKey  string
	StripeSuccessURL string
	StripeCancelURL  string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string

	SMTPHost     string
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// C est l'instance résolue au démarrage par Load.
var C *Config

// Load charge .env puis construit la configuration. Un secret manquant
// (JWT ou Stripe) est une erreur fatale : pas de valeur de repli codée en
// dur.
func Load() *Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  Aucun fichier .env trouvé — on continue avec les variables d'environnement du système")
	} else {
		log.Println("✅ Fichier .env chargé avec succès")
	}

	cfg := &Config{
		Port:             getenv("PORT", "8080"),
		MongoURI:         getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:          getenv("MONGO_DB", "parfumerie"),
		RedisAddr:        getenv("REDIS_HOST", "localhost:6379"),
		RedisPass:        os.Getenv("REDIS_PASSWORD"),
		StripeSecretKey:  os.Getenv("STRIPE_SECRET_KEY"),
		StripeSuccessURL: getenv("STRIPE_SUCCESS_URL", "http://localhost:3000/success?session_id={CHECKOUT_SESSION_ID}"),
		StripeCancelURL:  getenv("STRIPE_CANCEL_URL", "http://localhost:3000/checkout"),
		MinioEndpoint:    os.Getenv("MINIO_ENDPOINT"),
		MinioAccessKey:   os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey:   os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:      getenv("MINIO_BUCKET", "produits"),
		SMTPHost:         os.Getenv("SMTP_HOST"),
		SMTPUsername:     os.Getenv("SMTP_USERNAME"),
		SMTPPassword:     os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:         getenv("SMTP_FROM", "noreply@parfumerie.local"),
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("❌ JWT_SECRET manquant — impossible de démarrer sans secret de signature")
	}
	cfg.JWTSecret = []byte(secret)

	if cfg.StripeSecretKey == "" {
		log.Fatal("❌ Impossible d'initialiser Stripe : clé manquante")
	}

	C = cfg
	return cfg
}
