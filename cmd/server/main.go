package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fintrack/internal/config"
	"fintrack/internal/database"
	"fintrack/internal/handlers"
	"fintrack/internal/middleware"
	"fintrack/internal/render"
	"fintrack/internal/repositories"
	"fintrack/internal/services"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// .env is optional, real deployments set the environment directly
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()

	db, err := database.Initialize(cfg)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Repositories
	transactionRepo := repositories.NewTransactionRepository(db.DB)
	userRepo := repositories.NewUserRepository(db.DB)

	// Services
	metrics := services.NewPrometheusMetrics()
	transactionService := services.NewTransactionService(transactionRepo, metrics)
	reportService := services.NewReportService(transactionRepo)
	tokenService := services.NewTokenService(&cfg.Session)
	authService := services.NewAuthService(userRepo, metrics, cfg.Security.BCryptCost, cfg.Security.PasswordMinLength)

	// Handlers
	transactionHandler := handlers.NewTransactionHandler(transactionService, reportService)
	authHandler := handlers.NewAuthHandler(authService, tokenService, cfg.Session.CookieName, cfg.IsProduction())
	healthHandler := handlers.NewHealthCheckHandler(db)

	renderer, err := render.New()
	if err != nil {
		slog.Error("Failed to load templates", "error", err)
		os.Exit(1)
	}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler

	e.Use(middleware.RequestID())
	e.Use(middleware.PanicRecovery())
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.RateLimiterWithConfig(cfg.Security.RateLimitPerSecond, cfg.Security.RateLimitBurst))

	registerRoutes(e, cfg, transactionHandler, authHandler, healthHandler, tokenService)

	srv := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		slog.Info("Starting server", "addr", srv.Addr, "environment", cfg.Server.Environment)
		if err := e.StartServer(srv); err != nil && err != http.ErrServerClosed {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop
	slog.Info("Shutdown signal received", "signal", sig.String())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}
	slog.Info("Server stopped")
}

func registerRoutes(
	e *echo.Echo,
	cfg *config.Config,
	transactionHandler *handlers.TransactionHandler,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthCheckHandler,
	tokenService services.TokenServiceInterface,
) {
	e.GET("/health", healthHandler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.GET("/login", authHandler.LoginPage)
	e.POST("/login", authHandler.Login)
	e.GET("/register", authHandler.RegisterPage)
	e.POST("/register", authHandler.Register)
	e.GET("/logout", authHandler.Logout)

	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusSeeOther, "/transact")
	})

	transact := e.Group("/transact", middleware.RequireAuth(tokenService, cfg.Session.CookieName))
	transact.GET("", transactionHandler.List)
	transact.POST("", transactionHandler.Create)
	transact.GET("/delete/:id", transactionHandler.Delete)
	transact.GET("/edit/:id", transactionHandler.Edit)
	transact.POST("/updateTransaction", transactionHandler.Update)
	transact.GET("/byCategory", transactionHandler.ByCategory)
	transact.GET("/report", transactionHandler.Report)
}
