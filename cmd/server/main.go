package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"robe-backend/internal/api"
	"robe-backend/internal/repository"
	"robe-backend/internal/service"
	"robe-backend/pkg/config"
	"robe-backend/pkg/database"
	"robe-backend/pkg/media"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg := config.Load()

	// Connect to MongoDB
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mongoDB, err := database.Connect(ctx, cfg.MongoURI, cfg.DBName)
	if err != nil {
		logger.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := mongoDB.Disconnect(context.Background()); err != nil {
			logger.Error("error disconnecting from MongoDB", zap.Error(err))
		}
	}()

	logger.Info("connected to MongoDB", zap.String("database", cfg.DBName))

	// Initialize repositories
	productRepo := repository.NewProductRepository(mongoDB.Database)
	userRepo := repository.NewUserRepository(mongoDB.Database)
	slideRepo := repository.NewSlideRepository(mongoDB.Database)
	couponRepo := repository.NewCouponRepository(mongoDB.Database)
	orderRepo := repository.NewOrderRepository(mongoDB.Database)

	// Initialize services
	uow := database.NewUnitOfWork(mongoDB.Client)
	couponSvc := service.NewCouponService(couponRepo, userRepo)
	orderSvc := service.NewOrderService(orderRepo, couponRepo, uow)

	uploader, err := media.NewCloudinaryClient(
		cfg.CloudinaryCloud,
		cfg.CloudinaryKey,
		cfg.CloudinarySecret,
		cfg.CloudinaryFolder,
	)
	if err != nil {
		logger.Fatal("failed to configure media gateway", zap.Error(err))
	}

	// Setup Gin router
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(api.Deps{
		Logger:         logger,
		Products:       productRepo,
		Users:          userRepo,
		Slides:         slideRepo,
		Coupons:        couponSvc,
		Orders:         orderSvc,
		Uploader:       uploader,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	// Graceful shutdown
	ctx, cancel = context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited")
}
