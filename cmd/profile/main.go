package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"go-usersync/internal/profile/adapters"
	"go-usersync/internal/profile/application"
	"go-usersync/internal/profile/infrastructure"
	"go-usersync/internal/profile/ports"
	"go-usersync/pkg/bus"
	"go-usersync/pkg/config"
	"go-usersync/pkg/db"
	"go-usersync/pkg/logger"
	"go-usersync/pkg/middleware"
	"go-usersync/pkg/rabbitmq"
)

func main() {
	// Load configuration
	cfg := config.LoadForService("PROFILE")
	if os.Getenv("PROFILE_HTTP_PORT") == "" && os.Getenv("HTTP_PORT") == "" {
		cfg.HTTPPort = "8082"
	}

	// Initialize logger
	log := logger.New("profile-service", cfg.LogLevel)
	defer log.Sync()

	log.Info("starting profile service")

	// Select repository adapter
	repo := newRepository(cfg, log)

	// Initialize use case
	useCase := application.NewProfileUseCase(repo, log)

	// Context governing the event subscription
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Subscribe to identity events. The service still serves reads if the
	// bus is down; its projection just stops growing.
	subscriber, closeBus := newSubscriber(cfg, log)
	if closeBus != nil {
		defer closeBus()
	}
	if subscriber != nil {
		useCase.RegisterHandlers(subscriber)
		if err := subscriber.Start(ctx); err != nil {
			log.Warn("failed to start subscriber, projections will not update: " + err.Error())
		}
	}

	// Start HTTP server
	httpHandler := infrastructure.NewHTTPHandler(useCase)
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(middleware.TraceID())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.ErrorHandler(log))
	router.Use(middleware.CORS())

	api := router.Group("/api/v1")
	httpHandler.RegisterRoutes(api)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	httpServer := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  cfg.HTTPTimeout,
		WriteTimeout: cfg.HTTPTimeout,
	}

	go func() {
		log.Info("HTTP server listening on :" + cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error: " + err.Error())
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP shutdown error: " + err.Error())
	}

	log.Info("server stopped")
}

func newRepository(cfg *config.Config, log *logger.Logger) ports.ProfileRepository {
	if cfg.StoreDriver != "postgres" {
		log.Info("using in-memory profile store")
		return adapters.NewMemoryProfileRepository()
	}

	dbConn, err := db.NewConnection(db.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
		Timeout:  cfg.DBTimeout,
	})
	if err != nil {
		log.Fatal("failed to connect to database: " + err.Error())
	}

	repo := adapters.NewPostgresProfileRepository(dbConn)
	if err := repo.Migrate(); err != nil {
		log.Fatal("failed to migrate database: " + err.Error())
	}

	log.Info("connected to database")
	return repo
}

func newSubscriber(cfg *config.Config, log *logger.Logger) (ports.EventSubscriber, func() error) {
	if cfg.BusDriver == "rabbit" {
		conn, err := rabbitmq.NewConnection(cfg.RabbitMQURL, log)
		if err != nil {
			log.Warn("failed to connect to RabbitMQ, projections will not update: " + err.Error())
			return nil, nil
		}
		return adapters.NewRabbitMQSubscriber(conn, log), conn.Close
	}

	conn, err := bus.NewConnection(cfg.RedisAddr, cfg.RedisPassword, log)
	if err != nil {
		log.Warn("failed to connect to message bus, projections will not update: " + err.Error())
		return nil, nil
	}
	return adapters.NewBusSubscriber(conn, log), conn.Close
}
