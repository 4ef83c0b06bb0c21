package handler

import (
	"realty-backoffice/internal/adapter/http/middleware"
	redisStore "realty-backoffice/internal/adapter/storage/redis"
	"realty-backoffice/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	AuthSvc        ports.AuthService
	PortalSvc      ports.PortalService
	PropertySvc    ports.PropertyService
	ContactSvc     ports.ContactService
	ClientSvc      ports.ClientService
	DispatchSvc    ports.DispatchService
	TokenSvc       ports.TokenService
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep — verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Rate limit rules
	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	// API v1 routes
	v1 := r.Group("/api/v1")

	// --- Public routes (no auth) ---
	authHandler := NewAuthHandler(deps.AuthSvc)
	v1.POST("/auth/login", rl("auth_login"), authHandler.Login)

	portalHandler := NewPortalHandler(deps.PortalSvc)
	v1.POST("/portal/login", rl("portal_login"), portalHandler.Login)

	propertyHandler := NewPropertyHandler(deps.PropertySvc)
	v1.GET("/properties", propertyHandler.List)
	v1.GET("/properties/:id", propertyHandler.Get)

	contactHandler := NewContactHandler(deps.ContactSvc)
	v1.POST("/contact", rl("contact"), contactHandler.Submit)

	// --- JWT-authenticated routes (back office) ---
	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)

	properties := v1.Group("/properties", jwtAuth)
	{
		properties.POST("", rl("admin"), propertyHandler.Create)
		properties.PUT("/:id", rl("admin"), propertyHandler.Update)
		properties.DELETE("/:id", rl("admin"), propertyHandler.Delete)
	}

	contacts := v1.Group("/contacts", jwtAuth)
	{
		contacts.GET("", rl("admin"), contactHandler.List)
	}

	clientHandler := NewClientHandler(deps.ClientSvc)
	dispatchHandler := NewDispatchHandler(deps.DispatchSvc, deps.ClientSvc)

	clients := v1.Group("/clients", jwtAuth)
	{
		clients.GET("/lookup", rl("admin"), clientHandler.Lookup)
		clients.GET("/:id/invoices", rl("admin"), clientHandler.ListInvoices)
		clients.POST("/:id/invoices/send-pending", rl("dispatch"), dispatchHandler.SendAllPending)
	}

	invoices := v1.Group("/invoices", jwtAuth)
	{
		invoices.POST("/:id/send", rl("dispatch"), dispatchHandler.SendOne)
		invoices.GET("/:id/attempts", rl("admin"), dispatchHandler.ListAttempts)
	}

	return r
}
