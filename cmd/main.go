package main

import (
	"context"
	"fmt"
	"os"

	"bakery-cart-backend/configs"
	"bakery-cart-backend/internal/handlers"
	"bakery-cart-backend/internal/middleware"
	"bakery-cart-backend/internal/repositories"
	"bakery-cart-backend/internal/services"
	"bakery-cart-backend/pkg/cache"
	"bakery-cart-backend/pkg/database"
	"bakery-cart-backend/pkg/logger"
	"bakery-cart-backend/pkg/messaging"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	config := configs.LoadConfig()

	log := logger.New(logger.Options{
		ServiceName: "bakery-cart",
		Level:       logger.ParseLevel(config.Log.Level),
		Format:      config.Log.Format,
	})
	ctx := log.WithField(context.Background(), "storage_backend", config.Storage.Backend)

	// Set Gin mode
	gin.SetMode(config.Server.Mode)

	// Initialize cart storage
	storage, closeStorage, err := openStorage(ctx, config)
	if err != nil {
		log.Error(ctx, "storage.open_failed", err)
		os.Exit(1)
	}
	defer closeStorage()

	// Optional cart event stream
	var observers []services.CartObserver
	if config.Kafka.Enabled {
		kafkaProducer := messaging.NewKafkaProducer(config.Kafka.Brokers, config.Kafka.Topic)
		defer kafkaProducer.Close()
		observers = append(observers, services.NewCartEventPublisher(kafkaProducer, log))
		log.Info(log.WithField(ctx, "topic", config.Kafka.Topic), "kafka.enabled")
	}

	// Initialize services
	stores := services.NewCartStoreFactory(storage, config.Storage.CartKey, log, observers...)
	cartService := services.NewCartService(stores, config.Checkout)

	router := handlers.NewRouter(handlers.RouterOptions{
		Logger:      log,
		CartService: cartService,
		Session: middleware.SessionOptions{
			CookieName: config.Session.CookieName,
			MaxAgeDays: config.Session.MaxAgeDays,
			Secure:     config.Session.Secure,
		},
		StaticDir: config.Server.StaticDir,
	})

	addr := config.Server.Host + ":" + config.Server.Port
	log.Info(log.WithField(ctx, "addr", addr), "server.starting")
	if err := router.Run(addr); err != nil {
		log.Error(ctx, "server.stopped", err)
		os.Exit(1)
	}
}

// openStorage connects the configured cart backend and returns a func that
// releases it.
func openStorage(ctx context.Context, config *configs.Config) (repositories.CartStorage, func(), error) {
	switch config.Storage.Backend {
	case configs.StorageMemory:
		return repositories.NewMemoryCartStorage(), func() {}, nil

	case configs.StorageRedis:
		redisCache, err := cache.NewRedisCache(ctx, config.Redis.URL, config.Redis.Password, config.Redis.DB)
		if err != nil {
			return nil, nil, err
		}
		return repositories.NewRedisCartStorage(redisCache), func() { _ = redisCache.Close() }, nil

	case configs.StoragePostgres:
		db, err := database.OpenPostgres(config.Database.PostgresURL)
		if err != nil {
			return nil, nil, err
		}
		if err := repositories.AutoMigrate(db.Postgres); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("failed to migrate cart table: %w", err)
		}
		return repositories.NewPostgresCartStorage(db.Postgres), func() { _ = db.Close() }, nil

	case configs.StorageMongo:
		db, err := database.OpenMongo(ctx, config.Database.MongoURL, config.Database.MongoDBName)
		if err != nil {
			return nil, nil, err
		}
		return repositories.NewMongoCartStorage(db.MongoDB), func() { _ = db.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("%w: %q", repositories.ErrUnsupportedBackend, config.Storage.Backend)
	}
}
