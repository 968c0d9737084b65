package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"clinic-cart-service/apperrors"
	"clinic-cart-service/catalog"
	"clinic-cart-service/config"
	"clinic-cart-service/database"
	"clinic-cart-service/kafka"
	"clinic-cart-service/logger"
	"clinic-cart-service/pricing"
	"clinic-cart-service/repository"
	"clinic-cart-service/routes"
	"clinic-cart-service/services"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	zlog := logger.Initialize(cfg.AppEnv)
	defer func() { _ = zlog.Sync() }()

	// Catalog: file-based when configured, built-in clinic set otherwise
	var cat catalog.Catalog
	if cfg.CatalogPath != "" {
		loaded, err := catalog.LoadFile(cfg.CatalogPath)
		if err != nil {
			log.Fatalf("failed to load catalog: %v", err)
		}
		cat = loaded
	} else {
		cat = catalog.Default()
	}

	redisClient := database.NewRedisClient(cfg.RedisURL)

	cartRepo := repository.NewRedisCartRepository(redisClient, cfg.CartTTL, zlog)
	orderLog := repository.NewRedisOrderLog(redisClient, zlog)
	feedbackLog := repository.NewRedisFeedbackLog(redisClient, zlog)

	policy := pricing.NewPolicy(cfg.TaxRate)
	store := services.NewCartStore(context.Background(), cartRepo, cat, policy, zlog)

	// Kafka is optional; without brokers orders are only written to the log
	var publisher services.OrderEventPublisher
	if cfg.KafkaBrokers != "" {
		producer := kafka.NewProducer(strings.Split(cfg.KafkaBrokers, ","), cfg.KafkaTopic, zlog)
		defer producer.Close()
		publisher = producer
	}

	orderSvc := services.NewOrderService(store, orderLog, publisher, zlog)
	feedbackSvc := services.NewFeedbackService(feedbackLog, zlog)

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.RequestLogger(zlog))
	router.Use(cors.Default())
	router.Use(apperrors.ErrorMiddleware())

	routes.Register(router, store, orderSvc, feedbackSvc, zlog)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		zlog.Info("Clinic cart service is running", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	zlog.Info("Shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Shutdown error: %v", err)
	}
	zlog.Info("Server shutdown complete.")
}
