package database

import (
	"context"
	"log"
	"time"

	"parfumerie_back_end/internal/config"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// --- Variables Globales ---
var (
	Mongo *mongo.Database
	Redis *redis.Client

	mongoClient *mongo.Client
)

// ConnectDatabases initialise MongoDB et Redis. Échec = fatal : le serveur
// ne démarre pas sans ses bases.
func ConnectDatabases(cfg *config.Config) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	connectMongo(ctx, cfg)
	connectRedis(ctx, cfg)

	log.Println("✅ Toutes les bases de données sont connectées")
}

func connectMongo(ctx context.Context, cfg *config.Config) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("❌ Erreur connexion MongoDB:", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		log.Fatal("❌ MongoDB injoignable:", err)
	}

	mongoClient = client
	Mongo = client.Database(cfg.MongoDB)
	log.Println("✅ Connecté à MongoDB :", cfg.MongoDB)
}

func connectRedis(ctx context.Context, cfg *config.Config) {
	Redis = redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       0,
	})

	if err := Redis.Ping(ctx).Err(); err != nil {
		log.Fatal("❌ Erreur connexion Redis:", err)
	}
	log.Println("✅ Connecté à Redis")
}

// CloseDatabases ferme proprement les connexions.
func CloseDatabases() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if mongoClient != nil {
		if err := mongoClient.Disconnect(ctx); err != nil {
			log.Println("⚠️ Erreur fermeture MongoDB:", err)
		}
	}
	if Redis != nil {
		_ = Redis.Close()
	}
	log.Println("🔌 Connexions bases de données fermées")
}
