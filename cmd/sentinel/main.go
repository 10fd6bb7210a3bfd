package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/sentinelhq/sentinel/pkg/app/analytics"
	"github.com/sentinelhq/sentinel/pkg/app/completion"
	"github.com/sentinelhq/sentinel/pkg/cache"
	"github.com/sentinelhq/sentinel/pkg/config"
	handlers "github.com/sentinelhq/sentinel/pkg/handlers/http"
	"github.com/sentinelhq/sentinel/pkg/infra/database"
	infraLogger "github.com/sentinelhq/sentinel/pkg/infra/logger"
	_ "github.com/sentinelhq/sentinel/pkg/infra/migrations"
	"github.com/sentinelhq/sentinel/pkg/infra/providers/factory"
	"github.com/sentinelhq/sentinel/pkg/infra/recognizer"
	"github.com/sentinelhq/sentinel/pkg/infra/repository"
	"github.com/sentinelhq/sentinel/pkg/middleware"
	"github.com/sentinelhq/sentinel/pkg/redaction"
	"github.com/sentinelhq/sentinel/pkg/server"
	"github.com/sentinelhq/sentinel/pkg/server/router"
)

func main() {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	logger := infraLogger.NewLogger()

	if err := config.Load("./config"); err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	cfg := config.GetConfig()

	db, err := database.NewDB(logger, &database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	var cacheInstance *cache.Cache
	if cfg.Redis.Enabled {
		cacheInstance, err = cache.NewCache(cache.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			logger.Fatalf("Failed to initialize cache: %v", err)
		}
		defer cacheInstance.Close()
	}

	// repository
	mappingTTL := time.Duration(cfg.Redaction.MappingTTLHours) * time.Hour
	redactionLogRepository := repository.NewRedactionLogRepository(db.DB, cacheInstance, logger, mappingTTL)
	auditEventRepository := repository.NewAuditEventRepository(db.DB)

	// service
	var entityRecognizer recognizer.Recognizer
	if cfg.Recognizer.URL != "" {
		entityRecognizer = recognizer.NewPresidioRecognizer(
			cfg.Recognizer.URL,
			time.Duration(cfg.Recognizer.TimeoutSeconds)*time.Second,
		)
	} else {
		logger.Info("no analyzer url configured, using built-in pattern recognizer")
		entityRecognizer = recognizer.NewPatternRecognizer()
	}
	resolver := redaction.NewResolver(cfg.Redaction.ExcludedEntities)
	providerLocator := factory.NewProviderLocator()
	completionService := completion.NewService(
		logger, entityRecognizer, resolver, redactionLogRepository, auditEventRepository, providerLocator, cfg,
	)
	analyticsFinder := analytics.NewFinder(auditEventRepository, logger)

	// middleware
	middlewareTransport := middleware.Transport{
		AdminAuthMiddleware: middleware.NewAdminAuthMiddleware(logger, cfg.Admin.Token),
		MetricsMiddleware:   middleware.NewMetricsMiddleware(logger),
	}

	// Handler Transport
	handlerTransport := handlers.HandlerTransport{
		CompletionHandler:   handlers.NewCompletionHandler(logger, completionService),
		RevealHandler:       handlers.NewRevealHandler(logger, redactionLogRepository),
		StatsHandler:        handlers.NewStatsHandler(logger, analyticsFinder),
		RecentEventsHandler: handlers.NewRecentEventsHandler(logger, analyticsFinder),
		TrendHandler:        handlers.NewTrendHandler(logger, analyticsFinder),
		DistributionHandler: handlers.NewDistributionHandler(logger, analyticsFinder),
		GetVersionHandler:   handlers.NewGetVersionHandler(logger),
	}

	srv := server.NewProxyServer(server.ProxyServerDI{
		Config:              cfg,
		Logger:              logger,
		MiddlewareTransport: middlewareTransport,
		Routers: []router.ServerRouter{
			router.NewProxyRouter(middlewareTransport, handlerTransport),
		},
	})

	go func() {
		if err := srv.Run(); err != nil {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	fmt.Println("shutting down server...")
	if err := srv.Shutdown(); err != nil {
		fmt.Println("error shutting down server:", err)
		os.Exit(1)
	}
	fmt.Println("server gracefully stopped")
}
