package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alanluk2226/Workoutapp/internal/config"
	"github.com/alanluk2226/Workoutapp/internal/database"
	"github.com/alanluk2226/Workoutapp/internal/logger"
	"github.com/alanluk2226/Workoutapp/internal/middleware"
	"github.com/alanluk2226/Workoutapp/internal/routes"
	"github.com/alanluk2226/Workoutapp/internal/services"
	coursews "github.com/alanluk2226/Workoutapp/internal/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog/log"
)

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	appLogger := logger.New(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Connect to Database
	db, err := database.ConnectDB(ctx, cfg.DBUrl, appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	redisClient, err := database.ConnectRedis(ctx, cfg.RedisURL, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect to redis")
	}
	if redisClient != nil {
		defer redisClient.Close()
	} else {
		appLogger.Warn().Msg("REDIS_URL not set, revoked tokens are kept in memory")
	}

	var storage services.StorageService
	if cfg.StorageEnabled() {
		s3Storage, err := services.NewS3StorageService(ctx, services.S3StorageConfig{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
		if err != nil {
			appLogger.Fatal().Err(err).Msg("failed to configure object storage")
		}
		storage = s3Storage
	}

	hub := coursews.NewHub(appLogger)
	go hub.Run()
	defer hub.Stop()

	deps := routes.Dependencies{
		DB:      db,
		Redis:   redisClient,
		Storage: storage,
		Hub:     hub,
		Logger:  appLogger,
	}
	svc := routes.NewServices(cfg, deps)

	if err := svc.Auth.EnsureAdmin(ctx, cfg.DefaultAdminUsername, cfg.DefaultAdminEmail, cfg.DefaultAdminPassword); err != nil {
		appLogger.Fatal().Err(err).Msg("failed to ensure admin account")
	}

	// 3. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName:      "workoutapp",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins(),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.RequestLogger(appLogger))

	if err := routes.RegisterRoutes(app, cfg, deps, svc); err != nil {
		appLogger.Fatal().Err(err).Msg("failed to register routes")
	}

	// 4. Start Server
	go func() {
		<-ctx.Done()
		appLogger.Info().Msg("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			appLogger.Error().Err(err).Msg("shutdown")
		}
	}()

	appLogger.Info().Str("port", cfg.Port).Str("env", cfg.AppEnv).Msg("server starting")
	if err := app.Listen(":" + cfg.Port); err != nil {
		appLogger.Fatal().Err(err).Msg("server failed to start")
	}
}
