package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/labstack/gommon/random"

	"flexgestor/internal/caching"
	"flexgestor/internal/common"
	"flexgestor/internal/config"
	"flexgestor/internal/handlers"
	"flexgestor/internal/jobs/background"
	"flexgestor/internal/middleware"
	"flexgestor/internal/repositories"
	"flexgestor/internal/services"
	"flexgestor/pkg/database"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.SetLevel(parseLevel(cfg.Server.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The listener never starts without a verified pool
	pool, err := database.NewPool(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	jwtSecret := cfg.Auth.JWTSecret
	if jwtSecret == "" {
		jwtSecret = random.String(32) // Generate random secret for development
		log.Warn("JWT_SECRET not set, using a generated secret; tokens will not survive a restart")
	}

	cacheSvc := caching.NewRedisCacheService(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	defer cacheSvc.Close()

	minioSvc, err := services.NewMinioService(cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.UseSSL, cfg.Minio.Bucket)
	if err != nil {
		log.Fatalf("Failed to initialize MinIO service: %v", err)
	}

	dbHealth := database.NewHealth()
	cacheHealth := database.NewHealth()
	scheduler, err := background.NewJobScheduler(cfg.Jobs.HealthProbeInterval, pool, dbHealth)
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}
	scheduler.WithProbe("redis", cacheSvc, cacheHealth)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}
	defer scheduler.Stop()

	// Repositories
	txManager := database.NewTxManager(pool)
	productRepo := repositories.NewProductRepo(pool)
	customerRepo := repositories.NewCustomerRepo(pool)
	orderRepo := repositories.NewOrderRepo(pool)
	orderItemRepo := repositories.NewOrderItemRepo(pool)
	environmentRepo := repositories.NewEnvironmentRepo(pool)
	userRepo := repositories.NewUserRepo(pool)
	dashboardRepo := repositories.NewDashboardRepo(pool)

	// Services
	authSvc := services.NewAuthService(userRepo, cacheSvc, jwtSecret, cfg.Auth.TokenTTL, services.LoginLimits{
		Attempts: cfg.Auth.LoginRateLimit,
		Window:   cfg.Auth.LoginRateWindow,
	})
	productSvc := services.NewProductService(productRepo, minioSvc)
	customerSvc := services.NewCustomerService(customerRepo)
	orderSvc := services.NewOrderService(txManager, orderRepo, orderItemRepo, productRepo)
	environmentSvc := services.NewEnvironmentService(environmentRepo)
	userSvc := services.NewUserService(txManager, userRepo)
	dashboardSvc := services.NewDashboardService(dashboardRepo)

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(parseLevel(cfg.Server.LogLevel))
	e.HTTPErrorHandler = common.NewHTTPErrorHandler()
	e.Validator = common.NewRequestValidator()

	// Global middleware; trailing slashes are stripped before routing
	e.Pre(echoMiddleware.RemoveTrailingSlash())
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(middleware.VersionHeader(middleware.APIVersion))

	handlers.RegisterRoutes(e, handlers.Handlers{
		Auth:         handlers.NewAuthHandlers(authSvc),
		Health:       handlers.NewHealthHandlers(dbHealth, cacheHealth),
		Products:     handlers.NewProductHandlers(productSvc),
		Customers:    handlers.NewCustomerHandlers(customerSvc),
		Orders:       handlers.NewOrderHandlers(orderSvc),
		Environments: handlers.NewEnvironmentHandlers(environmentSvc),
		Users:        handlers.NewUserHandlers(userSvc),
		Dashboard:    handlers.NewDashboardHandlers(dashboardSvc),
	}, authSvc, dbHealth)

	go func() {
		log.Infof("Flexgestor server v%s starting on port %d", version, cfg.Server.Port)
		if err := e.Start(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server stopped: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Graceful shutdown failed: %v", err)
	}
}

func parseLevel(level string) log.Lvl {
	switch strings.ToLower(level) {
	case "debug":
		return log.DEBUG
	case "warn":
		return log.WARN
	case "error":
		return log.ERROR
	case "off":
		return log.OFF
	default:
		return log.INFO
	}
}
