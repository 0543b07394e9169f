package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/bazaarika/storefront-service/config"
	"github.com/bazaarika/storefront-service/internal/auth"
	"github.com/bazaarika/storefront-service/internal/cart"
	"github.com/bazaarika/storefront-service/internal/pkg/broker"
	"github.com/bazaarika/storefront-service/internal/pkg/cache"
	"github.com/bazaarika/storefront-service/internal/pkg/database/postgres"
	"github.com/bazaarika/storefront-service/internal/pkg/logger"
	"github.com/bazaarika/storefront-service/internal/pkg/search"

	catH "github.com/bazaarika/storefront-service/internal/catalog/handler"
	catRepoPkg "github.com/bazaarika/storefront-service/internal/catalog/repository"
	catUCPkg "github.com/bazaarika/storefront-service/internal/catalog/usecase"

	categoryH "github.com/bazaarika/storefront-service/internal/category/handler"
	categoryRepoPkg "github.com/bazaarika/storefront-service/internal/category/repository"
	categoryUCPkg "github.com/bazaarika/storefront-service/internal/category/usecase"

	cartH "github.com/bazaarika/storefront-service/internal/cart/handler"
	cartUCPkg "github.com/bazaarika/storefront-service/internal/cart/usecase"

	checkoutH "github.com/bazaarika/storefront-service/internal/checkout/handler"
	checkoutRepoPkg "github.com/bazaarika/storefront-service/internal/checkout/repository"
	checkoutUCPkg "github.com/bazaarika/storefront-service/internal/checkout/usecase"

	invH "github.com/bazaarika/storefront-service/internal/inventory/handler"
	invListenerPkg "github.com/bazaarika/storefront-service/internal/inventory/listener"
	invRepoPkg "github.com/bazaarika/storefront-service/internal/inventory/repository"
	invUCPkg "github.com/bazaarika/storefront-service/internal/inventory/usecase"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             "info",
		DisableCaller:     false,
		DisableStacktrace: false,
	}

	if cfg.Server.AppEnv == "dev" || cfg.Server.AppEnv == "development" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = cfg.Logger.Encoding
		logConfig.Level = cfg.Logger.Level
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Connect to Database
	db, err := postgres.NewPostgres(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	// 4. Initialize Repositories
	catalogRepo := catRepoPkg.NewPGRepository(db)
	categoryRepo := categoryRepoPkg.NewPGRepository(db)
	invRepo := invRepoPkg.NewPGRepository(db)
	orderRepo := checkoutRepoPkg.NewPGRepository(db)

	// 5. Initialize Redis
	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))

	// 5.5 Initialize Kafka
	kafkaConsumer := broker.NewConsumer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
		GroupID: cfg.Kafka.GroupID,
	})
	defer kafkaConsumer.Close()

	kafkaProducer := broker.NewProducer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
	})
	defer kafkaProducer.Close()
	appLogger.Info("Connected to Kafka", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))

	// 5.8 Initialize Elasticsearch
	esClient, err := search.NewClient(&search.Config{
		Addresses: cfg.Elastic.Addresses,
		Username:  cfg.Elastic.Username,
		Password:  cfg.Elastic.Password,
	})
	if err != nil {
		appLogger.Warn("Could not connect to Elasticsearch (Search features might be limited)", zap.Error(err))
		esClient = nil
	} else {
		appLogger.Info("Connected to Elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
	}

	// 6. Initialize UseCases
	cartStore := cart.NewStore()
	catalogUC := catUCPkg.NewCatalogUseCase(catalogRepo, redisClient, esClient, appLogger)
	categoryUC := categoryUCPkg.NewCategoryUseCase(categoryRepo, appLogger)
	invUC := invUCPkg.NewInventoryUseCase(invRepo, redisClient, appLogger)
	cartUC := cartUCPkg.NewCartUseCase(cartStore, catalogRepo, invUC, cfg.Checkout.ShippingFlatFee, appLogger)
	checkoutUC := checkoutUCPkg.NewCheckoutUseCase(orderRepo, cartStore, catalogRepo, kafkaProducer, cfg.Checkout.ShippingFlatFee, appLogger)

	// 6.5 Initialize Listeners
	invListener := invListenerPkg.NewInventoryListener(kafkaConsumer, invUC, appLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go invListener.Start(ctx)

	// 7. Initialize Handlers and Router
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", auth.SessionHeader},
	}))
	r.Use(auth.SessionMiddleware)

	r.Route("/api/v1", func(r chi.Router) {
		catH.NewCatalogHandler(catalogUC, appLogger).RegisterRoutes(r)
		categoryH.NewCategoryHandler(categoryUC, appLogger).RegisterRoutes(r)
		cartH.NewCartHandler(cartUC, appLogger).RegisterRoutes(r)
		checkoutH.NewCheckoutHandler(checkoutUC, appLogger).RegisterRoutes(r)
		invH.NewInventoryHandler(invUC, appLogger).RegisterRoutes(r)
	})

	// 8. Start HTTP Server
	port := cfg.Server.HTTPPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:    port,
		Handler: r,
	}

	appLogger.Info("Starting HTTP server", zap.String("port", port))

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("forced shutdown", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}
