package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"realty-backoffice/config"
	"realty-backoffice/internal/adapter/channel/whatsapp"
	httpHandler "realty-backoffice/internal/adapter/http/handler"
	pgStorage "realty-backoffice/internal/adapter/storage/postgres"
	redisStorage "realty-backoffice/internal/adapter/storage/redis"
	"realty-backoffice/internal/core/ports"
	"realty-backoffice/internal/service"
	"realty-backoffice/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Realty Backoffice")

	ctx := context.Background()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// Initialize repositories
	invoiceRepo := pgStorage.NewInvoiceRepo(pool)
	clientRepo := pgStorage.NewClientRepo(pool)
	projectRepo := pgStorage.NewProjectRepo(pool)
	propertyRepo := pgStorage.NewPropertyRepo(pool)
	contactRepo := pgStorage.NewContactRepo(pool)
	dispatchLogRepo := pgStorage.NewDispatchLogRepo(pool)

	// Initialize core services
	hashSvc := service.NewArgon2HashService()
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)

	// Select the outbound WhatsApp channel
	var channel ports.NotificationChannel
	switch cfg.WhatsApp.Mode {
	case "gateway":
		channel = whatsapp.NewGateway(cfg.WhatsApp.APIURL, cfg.WhatsApp.APIToken, cfg.WhatsApp.Timeout, log)
		log.Info().Str("api_url", cfg.WhatsApp.APIURL).Msg("WhatsApp gateway channel enabled")
	default:
		channel = whatsapp.NewSimulator(cfg.WhatsApp.FailureRate, 500*time.Millisecond, log)
		log.Info().Float64("failure_rate", cfg.WhatsApp.FailureRate).Msg("WhatsApp simulator channel enabled")
	}

	// Initialize business services
	authSvc := service.NewAuthService(cfg.Admin.PasswordHash, hashSvc, tokenSvc, log)
	portalSvc := service.NewPortalService(clientRepo, projectRepo, invoiceRepo, log)
	propertySvc := service.NewPropertyService(propertyRepo, log)
	contactSvc := service.NewContactService(contactRepo, log)
	clientSvc := service.NewClientService(clientRepo, invoiceRepo, dispatchLogRepo)
	dispatchSvc := service.NewDispatchService(
		invoiceRepo, clientRepo, dispatchLogRepo, channel,
		cfg.Dispatch.SendInterval, log,
	)

	// Initialize rate limit store
	rateLimitStore := redisStorage.NewRateLimitStore(rdb)

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		AuthSvc:        authSvc,
		PortalSvc:      portalSvc,
		PropertySvc:    propertySvc,
		ContactSvc:     contactSvc,
		ClientSvc:      clientSvc,
		DispatchSvc:    dispatchSvc,
		TokenSvc:       tokenSvc,
		RateLimitStore: rateLimitStore,
		HealthCheckers: []ports.HealthChecker{pgHealth, redisHealth},
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
