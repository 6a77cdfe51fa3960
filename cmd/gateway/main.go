package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"go-usersync/internal/gateway/proxy"
	"go-usersync/pkg/config"
	"go-usersync/pkg/logger"
	"go-usersync/pkg/middleware"
)

func main() {
	// Load configuration
	cfg := config.LoadForService("GATEWAY")

	// Initialize logger
	log := logger.New("gateway", cfg.LogLevel)
	defer log.Sync()

	log.Info("starting gateway")
	log.Info("identity backend: " + cfg.IdentityAddr)
	log.Info("profile backend: " + cfg.ProfileAddr)

	router, err := proxy.New(cfg.IdentityAddr, cfg.ProfileAddr, log)
	if err != nil {
		log.Fatal("failed to create router: " + err.Error())
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(middleware.TraceID())
	engine.Use(middleware.RequestLogger(log))
	engine.Use(middleware.ErrorHandler(log))
	engine.Use(middleware.CORS())

	api := engine.Group("/api/v1")
	router.RegisterRoutes(api)

	// Health check
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	httpServer := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      engine,
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
