package di

import (
	"context"
	"fmt"

	"chat-powered-ecommerce/backend/ai"
	"chat-powered-ecommerce/backend/internal/repository"
	"chat-powered-ecommerce/backend/internal/service"
	"chat-powered-ecommerce/backend/pkg/config"
	"chat-powered-ecommerce/backend/pkg/health"
	"chat-powered-ecommerce/backend/pkg/jwt"
	"chat-powered-ecommerce/backend/pkg/logger"
	"chat-powered-ecommerce/backend/pkg/redis"
	"chat-powered-ecommerce/backend/pkg/secrets"

	"gorm.io/gorm"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *logger.Logger
	DB     *gorm.DB
	Redis  *redis.Client

	JWTService       *jwt.Service
	CompletionClient *ai.Client

	UserService    *service.UserService
	SessionService *service.SessionService
	ChatService    *service.ChatService
	ProductService *service.ProductService
	OrderService   *service.OrderService

	HealthChecker *health.Checker
}

// NewContainer wires the full dependency graph. Secrets are resolved before
// anything that needs credentials is constructed.
func NewContainer(cfg *config.Config, log *logger.Logger, db *gorm.DB) (*Container, error) {
	c := &Container{
		Config: cfg,
		Logger: log,
		DB:     db,
	}

	ctx := context.Background()

	jwtSecret := secrets.GetSecretWithDefault(ctx, "JWT_SECRET", cfg.JWT.Secret)
	c.JWTService = jwt.NewService(jwtSecret, cfg.JWT.Expiry)

	apiKey := secrets.GetSecretWithDefault(ctx, "OPENAI_API_KEY", cfg.OpenAI.APIKey)
	completion, err := ai.NewClient(ai.ClientConfig{
		BaseURL:     cfg.OpenAI.BaseURL,
		APIKey:      apiKey,
		Model:       cfg.OpenAI.Model,
		Temperature: cfg.OpenAI.Temperature,
		MaxTokens:   cfg.OpenAI.MaxTokens,
		Timeout:     cfg.OpenAI.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create completion client: %w", err)
	}
	c.CompletionClient = completion

	if cfg.Redis.Enabled {
		c.Redis = redis.NewClient(cfg.Redis.Addr, cfg.Redis.TTL)
		if err := c.Redis.Ping(); err != nil {
			log.Warn("redis unreachable, continuing without cache", "addr", cfg.Redis.Addr, "error", err.Error())
			c.Redis = nil
		}
	}

	sessionRepo := repository.NewGormSessionRepository(db)
	messageRepo := repository.NewGormMessageRepository(db)

	c.UserService = service.NewUserService(db, c.JWTService)
	c.SessionService = service.NewSessionService(sessionRepo, log)
	c.ChatService = service.NewChatService(messageRepo, c.SessionService, completion, service.ChatConfig{
		HistoryDepth: cfg.Chat.HistoryDepth,
		SystemPrompt: cfg.Chat.SystemPrompt,
	}, log)
	c.ProductService = service.NewProductService(db, c.Redis, log)
	c.OrderService = service.NewOrderService(db)

	c.HealthChecker = health.NewChecker(log)
	c.registerHealthChecks()

	return c, nil
}

func (c *Container) registerHealthChecks() {
	c.HealthChecker.RegisterCheck("database", func() (health.Status, string, error) {
		if err := config.TestConnection(c.DB); err != nil {
			return health.StatusDown, "database unreachable", err
		}
		return health.StatusUp, "database connection ok", nil
	})

	c.HealthChecker.RegisterCheck("redis", func() (health.Status, string, error) {
		if c.Redis == nil {
			return health.StatusUp, "redis disabled", nil
		}
		if err := c.Redis.Ping(); err != nil {
			return health.StatusDegraded, "redis unreachable, caching disabled", err
		}
		return health.StatusUp, "redis connection ok", nil
	})
}
