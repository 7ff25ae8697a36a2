package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/agriance/contractgen/config"
	"github.com/agriance/contractgen/contract"
	"github.com/agriance/contractgen/document"
	"github.com/agriance/contractgen/handler"
	"github.com/agriance/contractgen/middleware"
	"github.com/agriance/contractgen/pkg/logger"
	"github.com/agriance/contractgen/service"
	"github.com/gin-gonic/gin"
)

func main() {
	configPath := os.Getenv("CONTRACTGEN_CONFIG")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		slog.Error("failed to load config", "path", configPath, "error", err)
		os.Exit(1)
	}

	logger.Init(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	slog.Info("configuration loaded", "path", configPath, "variant", cfg.Document.Variant)

	gen, err := newGenerator(&cfg.Document)
	if err != nil {
		slog.Error("failed to initialize generator", "error", err)
		os.Exit(1)
	}

	var archive handler.Archiver
	if cfg.Minio.Enabled() {
		minioSvc, err := service.NewMinioService(&cfg.Minio)
		if err != nil {
			slog.Error("failed to initialize MINIO service", "error", err)
			os.Exit(1)
		}
		if err := minioSvc.EnsureBucket(context.Background()); err != nil {
			slog.Error("failed to ensure MINIO bucket", "error", err)
			os.Exit(1)
		}
		archive = minioSvc
		slog.Info("archiving contracts to MINIO", "endpoint", cfg.Minio.Endpoint, "bucket", cfg.Minio.Bucket)
	} else {
		slog.Info("MINIO not configured, contracts are kept in memory only")
	}

	service.InitContractStore(&cfg.Store)

	gin.SetMode(gin.ReleaseMode)
	router := setupRouter(cfg, gen, archive)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited gracefully")
}

func newGenerator(cfg *config.DocumentConfig) (*document.Generator, error) {
	variant, err := contract.ParseVariant(cfg.Variant)
	if err != nil {
		return nil, err
	}
	return document.NewGenerator(document.Options{
		Platform:     cfg.Platform,
		Variant:      variant,
		Installments: cfg.Installments,
	})
}

// setupRouter wires the public form, the login endpoint and the
// authenticated contract API.
func setupRouter(cfg *config.Config, gen *document.Generator, archive handler.Archiver) *gin.Engine {
	authHandler := handler.NewAuthHandler(cfg)
	formHandler := handler.NewFormHandler(gen)
	contractHandler := handler.NewContractHandler(gen, archive)

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(corsMiddleware())
	router.Use(cacheMiddleware())
	router.Use(middleware.RateLimit(cfg.Server.RateLimit, time.Minute, middleware.ByClientIP))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"contracts": service.GetContractStore().Count(),
		})
	})

	generateLimit := middleware.RateLimit(cfg.Server.GenerateRateLimit, time.Minute, middleware.ByTenant)

	router.GET("/", formHandler.Form)
	router.POST("/generate", generateLimit, formHandler.Generate)

	api := router.Group("/api")
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(&cfg.Auth))
	{
		protected.GET("/auth/me", authHandler.GetCurrentUser)
		protected.POST("/contracts", generateLimit, contractHandler.Generate)
		protected.GET("/contracts", contractHandler.List)
		protected.GET("/contracts/:id", contractHandler.Get)
		protected.GET("/contracts/:id/status", contractHandler.GetStatus)
		protected.GET("/contracts/:id/pdf", contractHandler.Download)
		protected.GET("/contracts/:id/summary.xlsx", contractHandler.Summary)
		protected.DELETE("/contracts/:id", contractHandler.Delete)
	}

	return router
}

// corsMiddleware handles CORS headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, DELETE")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Request-ID, Content-Disposition")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// cacheMiddleware keeps generated documents and API responses out of caches
// and lets browsers cache the form page briefly.
func cacheMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		if strings.HasPrefix(path, "/api") || path == "/generate" {
			c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
			c.Header("Pragma", "no-cache")
			c.Header("Expires", "0")
			c.Next()
			return
		}

		if path == "/" {
			c.Header("Cache-Control", "public, max-age=300, must-revalidate")
		}

		c.Next()
	}
}
