package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/tuanvm/social-network/backend/internal/auth"
	"github.com/tuanvm/social-network/backend/internal/events"
	"github.com/tuanvm/social-network/backend/internal/graph"
	"github.com/tuanvm/social-network/backend/internal/middleware"
	"github.com/tuanvm/social-network/backend/internal/presence"
	"github.com/tuanvm/social-network/backend/internal/repositories"
)

// Dependencies are the shared services the routes resolve against.
type Dependencies struct {
	DB     *mongo.Database
	Media  graph.MediaStore
	Broker *events.Broker
	Redis  *redis.Client
	Auth   *auth.Manager
	Mailer graph.Mailer
	Log    *zap.Logger

	FrontendURL string
}

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
}

// SetupRoutes wires the repositories, the GraphQL schema and the HTTP and
// WebSocket endpoints.
func SetupRoutes(e *echo.Echo, deps Dependencies) error {
	// Health check - always accessible
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// --- Initialize Repositories ---
	userRepo := repositories.NewMongoUserRepository(deps.DB)
	postRepo := repositories.NewMongoPostRepository(deps.DB)
	commentRepo := repositories.NewMongoCommentRepository(deps.DB)
	likeRepo := repositories.NewMongoLikeRepository(deps.DB)
	followRepo := repositories.NewMongoFollowRepository(deps.DB)
	messageRepo := repositories.NewMongoMessageRepository(deps.DB)
	notificationRepo := repositories.NewMongoNotificationRepository(deps.DB)

	tracker := presence.NewTracker(deps.Redis, userRepo, deps.Broker, deps.Log)

	resolver := &graph.Resolver{
		Users:         userRepo,
		Posts:         postRepo,
		Comments:      commentRepo,
		Likes:         likeRepo,
		Follows:       followRepo,
		Messages:      messageRepo,
		Notifications: notificationRepo,

		Media:    deps.Media,
		Broker:   deps.Broker,
		Presence: tracker,
		Auth:     deps.Auth,
		Mailer:   deps.Mailer,
		Validate: validator.New(),
		Log:      deps.Log,

		FrontendURL: deps.FrontendURL,
	}

	schema, err := graph.NewSchema(resolver)
	if err != nil {
		return err
	}

	e.POST("/graphql", graph.Handler(schema), middleware.JWTAuthMiddleware(deps.Auth))
	e.GET("/subscriptions", graph.SubscriptionHandler(schema, deps.Auth, tracker, deps.Log))

	deps.Log.Info("routes configured")
	return nil
}
