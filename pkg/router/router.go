package router

import (
	"net/http"
	"time"

	"chat-powered-ecommerce/backend/internal/api"
	"chat-powered-ecommerce/backend/pkg/config"
	"chat-powered-ecommerce/backend/pkg/di"
	"chat-powered-ecommerce/backend/pkg/errors"
	"chat-powered-ecommerce/backend/pkg/logger"
	"chat-powered-ecommerce/backend/pkg/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// Router is the main router for the application
type Router struct {
	Engine    *gin.Engine
	Container *di.Container
	Logger    *logger.Logger
	Config    *config.Config
}

// New creates a new router with the given container
func New(container *di.Container) *Router {
	logger.SetGlobal(container.Logger)
	cfg := config.Get()

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(logger.Middleware(container.Logger))
	engine.Use(errors.ErrorHandler())
	engine.Use(errors.RecoveryWithLogger())

	limiterOpts := middleware.DefaultRateLimiterOptions()
	limiterOpts.Limit = rate.Limit(cfg.Security.RateLimit)
	limiterOpts.Burst = cfg.Security.RateLimitBurst
	rateLimiter := middleware.NewRateLimiter(container.Logger, limiterOpts)
	engine.Use(rateLimiter.Middleware())

	return &Router{
		Engine:    engine,
		Container: container,
		Logger:    container.Logger,
		Config:    cfg,
	}
}

// SetupRoutes registers all application routes
func (r *Router) SetupRoutes() {
	r.Engine.Use(corsMiddleware(r.Config.Security.AllowedOrigins))

	jwtAuth := middleware.JWTAuthMiddleware(r.Container.JWTService, r.Logger)

	authHandler := api.NewAuthHandler(r.Container.UserService, r.Container.SessionService, r.Logger)
	chatHandler := api.NewChatHandler(r.Container.ChatService, r.Logger)
	productHandler := api.NewProductHandler(r.Container.ProductService, r.Logger)
	orderHandler := api.NewOrderHandler(r.Container.OrderService, r.Logger)

	v1 := r.Engine.Group("/api/v1")

	// Public routes (no auth required)
	publicRoutes := v1.Group("/")
	{
		publicRoutes.GET("/health", r.healthCheckHandler())

		authRoutes := publicRoutes.Group("/auth")
		{
			authRoutes.POST("/signup", authHandler.Signup)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/logout", jwtAuth, authHandler.Logout)
			authRoutes.GET("/me", jwtAuth, authHandler.Me)
		}

		publicRoutes.GET("/products", productHandler.ListProducts)
		publicRoutes.GET("/products/:id", productHandler.GetProduct)
		publicRoutes.GET("/colors", productHandler.ListColors)
	}

	// Protected routes (require authentication)
	protectedRoutes := v1.Group("/")
	protectedRoutes.Use(jwtAuth)
	{
		protectedRoutes.POST("/chat_messages", chatHandler.SendMessage)
		protectedRoutes.GET("/chat_messages/last", chatHandler.LastConversation)

		protectedRoutes.POST("/products", productHandler.CreateProduct)
		protectedRoutes.PATCH("/products/:id", productHandler.UpdateProduct)
		protectedRoutes.DELETE("/products/:id", productHandler.DeleteProduct)

		protectedRoutes.POST("/orders", orderHandler.CreateOrder)
		protectedRoutes.GET("/orders", orderHandler.ListOrders)
		protectedRoutes.GET("/orders/:id", orderHandler.GetOrder)
	}

	// Legacy routes kept for the original client's paths
	r.Engine.POST("/chat_messages", jwtAuth, chatHandler.SendMessage)
	r.Engine.GET("/chat_messages/last", jwtAuth, chatHandler.LastConversation)

	// Prometheus metrics
	r.Engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// healthCheckHandler runs the registered health checks
func (r *Router) healthCheckHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		components := r.Container.HealthChecker.RunChecks()
		overall := r.Container.HealthChecker.Overall(components)

		status := http.StatusOK
		if overall != "up" {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{
			"status":     overall,
			"components": components,
			"time":       time.Now().Format(time.RFC3339),
		})
	}
}

func corsMiddleware(allowedOrigins ...[]string) gin.HandlerFunc {
	allowed := []string{"*"}
	if len(allowedOrigins) > 0 && len(allowedOrigins[0]) > 0 {
		allowed = allowedOrigins[0]
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		c.Writer.Header().Set("Access-Control-Allow-Origin", resolveOrigin(allowed, origin))
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept, Accept-Encoding, X-CSRF-Token, Authorization, Origin")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// resolveOrigin echoes the request origin when it is allowed, otherwise the
// first configured origin.
func resolveOrigin(allowed []string, origin string) string {
	for _, a := range allowed {
		if a == "*" {
			if origin != "" {
				return origin
			}
			return "*"
		}
		if a == origin {
			return origin
		}
	}
	return allowed[0]
}
