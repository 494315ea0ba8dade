package main

import (
	"log"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/tuanvm/social-network/backend/internal/auth"
	"github.com/tuanvm/social-network/backend/internal/events"
	"github.com/tuanvm/social-network/backend/internal/mailer"
	"github.com/tuanvm/social-network/backend/internal/router"
	"github.com/tuanvm/social-network/backend/pkg/config"
	"github.com/tuanvm/social-network/backend/pkg/logger"
	"github.com/tuanvm/social-network/backend/pkg/mediastore"
)

func main() {
	// Load configuration
	cfg := config.Load()

	zlog, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		zlog.Fatal("failed to initialize database", zap.Error(err))
	}
	defer db.CloseDB()

	// Redis backs presence tracking; without it presence degrades to the
	// per-document flag.
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	}

	media, err := mediastore.New(mediastore.Config{
		Endpoint:       cfg.MinioEndpoint,
		PublicEndpoint: cfg.MinioPublicEndpoint,
		AccessKey:      cfg.MinioAccessKey,
		SecretKey:      cfg.MinioSecretKey,
		UseSSL:         cfg.MinioUseSSL,
		PresignedURLs:  cfg.MinioPresignedURLs,
	})
	if err != nil {
		zlog.Fatal("failed to connect to object store", zap.Error(err))
	}

	broker := events.NewBroker(zlog)
	defer broker.Close()

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	err = router.SetupRoutes(e, router.Dependencies{
		DB:     db.Mongo.Database(cfg.DBName),
		Media:  media,
		Broker: broker,
		Redis:  redisClient,
		Auth:   auth.NewManager(cfg.JWTSecret),
		Mailer: mailer.New(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass),
		Log:    zlog,

		FrontendURL: cfg.FrontendURL,
	})
	if err != nil {
		zlog.Fatal("failed to set up routes", zap.Error(err))
	}

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
