package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"go-usersync/internal/identity/adapters"
	"go-usersync/internal/identity/application"
	"go-usersync/internal/identity/infrastructure"
	"go-usersync/internal/identity/ports"
	"go-usersync/pkg/bus"
	"go-usersync/pkg/config"
	"go-usersync/pkg/db"
	"go-usersync/pkg/logger"
	"go-usersync/pkg/middleware"
	"go-usersync/pkg/rabbitmq"
	"go-usersync/pkg/token"
)

func main() {
	// Load configuration
	cfg := config.LoadForService("IDENTITY")
	if os.Getenv("IDENTITY_HTTP_PORT") == "" && os.Getenv("HTTP_PORT") == "" {
		cfg.HTTPPort = "8081"
	}

	// Initialize logger
	log := logger.New("identity-service", cfg.LogLevel)
	defer log.Sync()

	log.Info("starting identity service")

	// Select repository adapter
	repo := newRepository(cfg, log)

	// Select event publisher adapter; the service runs without one if the
	// bus is unreachable
	publisher, closeBus := newPublisher(cfg, log)
	if closeBus != nil {
		defer closeBus()
	}

	// Select token issuer
	var tokens token.Issuer
	if cfg.TokenDriver == "jwt" {
		tokens = token.NewJWTIssuer(cfg.TokenSecret, cfg.TokenTTL)
	} else {
		tokens = token.NewOpaqueIssuer()
	}

	// Initialize use case
	useCase := application.NewIdentityUseCase(repo, publisher, tokens, log)

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

func newRepository(cfg *config.Config, log *logger.Logger) ports.UserRepository {
	if cfg.StoreDriver != "postgres" {
		log.Info("using in-memory user store")
		return adapters.NewMemoryUserRepository()
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

	repo := adapters.NewPostgresUserRepository(dbConn)
	if err := repo.Migrate(); err != nil {
		log.Fatal("failed to migrate database: " + err.Error())
	}

	log.Info("connected to database")
	return repo
}

func newPublisher(cfg *config.Config, log *logger.Logger) (ports.EventPublisher, func() error) {
	if cfg.BusDriver == "rabbit" {
		conn, err := rabbitmq.NewConnection(cfg.RabbitMQURL, log)
		if err != nil {
			log.Warn("failed to connect to RabbitMQ, events will be disabled: " + err.Error())
			return nil, nil
		}
		return adapters.NewRabbitMQPublisher(rabbitmq.NewPublisher(conn, log), log), conn.Close
	}

	conn, err := bus.NewConnection(cfg.RedisAddr, cfg.RedisPassword, log)
	if err != nil {
		log.Warn("failed to connect to message bus, events will be disabled: " + err.Error())
		return nil, nil
	}
	return adapters.NewBusPublisher(bus.NewPublisher(conn, log), log), conn.Close
}
