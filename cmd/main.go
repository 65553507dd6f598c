package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	configs "github.com/khabar-digital/newsroom/config"
	"github.com/khabar-digital/newsroom/internal/handler"
	"github.com/khabar-digital/newsroom/internal/middleware"
	"github.com/khabar-digital/newsroom/internal/repository"
	"github.com/khabar-digital/newsroom/internal/router"
	"github.com/khabar-digital/newsroom/internal/service"
	"github.com/khabar-digital/newsroom/pkg/database"
	"github.com/khabar-digital/newsroom/pkg/logger"
	pkgredis "github.com/khabar-digital/newsroom/pkg/redis"
)

func main() {
	config, err := configs.LoadConfig()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	if err := logger.InitLogger(config.App.Environment); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	logger.GetLogger().Info("Application starting",
		zap.String("app_name", config.App.Name),
		zap.String("environment", config.App.Environment),
	)

	db, err := database.NewPostgresDB(database.Config{
		Host:            config.Database.Host,
		Port:            config.Database.Port,
		User:            config.Database.User,
		Password:        config.Database.Password,
		Database:        config.Database.Name,
		SSLMode:         config.Database.SSLMode,
		MaxIdleConns:    config.Database.MaxIdleConns,
		MaxOpenConns:    config.Database.MaxOpenConns,
		ConnMaxLifetime: int(config.Database.ConnMaxLifetime.Minutes()),
		ConnMaxIdleTime: int(config.Database.ConnMaxIdleTime.Minutes()),
	})
	if err != nil {
		logger.GetLogger().Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.CloseDB(db)

	if err := database.AutoMigrate(db); err != nil {
		logger.GetLogger().Fatal("Failed to run database migrations", zap.Error(err))
	}
	logger.GetLogger().Info("Database migrated successfully")

	if err := database.Seed(db); err != nil {
		// Seed data may already exist, keep starting
		logger.GetLogger().Error("Failed to seed database", zap.Error(err))
	}

	redisClient, err := pkgredis.NewClient(pkgredis.Config{
		Host:         config.Redis.Host,
		Port:         config.Redis.Port,
		Password:     config.Redis.Password,
		DB:           config.Redis.Database,
		PoolSize:     config.Redis.PoolSize,
		MinIdleConns: config.Redis.MinIdleConns,
		DialTimeout:  config.Redis.DialTimeout,
		ReadTimeout:  config.Redis.ReadTimeout,
		WriteTimeout: config.Redis.WriteTimeout,
	})
	if err != nil {
		// The listing cache degrades to pass-through without redis
		logger.GetLogger().Warn("Redis unavailable, continuing without cache", zap.Error(err))
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	userRepo := repository.NewUserRepository(db)
	newsRepo := repository.NewNewsRepository(db)
	breakingRepo := repository.NewBreakingNewsRepository(db)

	cacheService := service.NewCacheService(redisClient)
	tokenService := service.NewTokenService(config.JWT, userRepo)
	userService := service.NewUserService(userRepo, tokenService)
	newsService := service.NewNewsService(newsRepo, cacheService)
	breakingService := service.NewBreakingNewsService(breakingRepo, cacheService)

	authHandler := handler.NewAuthHandler(userService, tokenService)
	userHandler := handler.NewUserHandler(userService)
	newsHandler := handler.NewNewsHandler(newsService)
	breakingHandler := handler.NewBreakingNewsHandler(breakingService)
	healthHandler := handler.NewHealthHandler(db, redisClient)

	authMiddleware := middleware.NewAuthMiddleware(tokenService, userService)

	engine := router.NewRouter(
		authHandler,
		userHandler,
		newsHandler,
		breakingHandler,
		healthHandler,
		authMiddleware,
		config,
	).SetupRoutes()

	srv := &http.Server{
		Addr:    ":" + config.App.Port,
		Handler: engine,
	}

	go func() {
		logger.GetLogger().Info("Server starting",
			zap.String("port", config.App.Port),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.GetLogger().Fatal("Failed to start server",
				zap.Error(err),
				zap.String("port", config.App.Port),
			)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.GetLogger().Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.GetLogger().Error("Forced shutdown", zap.Error(err))
	}
	logger.GetLogger().Info("Server stopped")
}
