package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventdeck/config"
	_ "eventdeck/docs"
	"eventdeck/internal/adapters/auth"
	"eventdeck/internal/adapters/email"
	deliveryhttp "eventdeck/internal/delivery/http"
	"eventdeck/internal/delivery/http/controllers"
	"eventdeck/internal/delivery/http/middleware"
	"eventdeck/internal/repository/postgres"
	"eventdeck/internal/services"
)

// @title EventDeck API
// @version 1.0
// @description Event management API: accounts, events, and similar-event discovery.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger := config.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	gateway := postgres.NewGateway(cfg.DBUrl)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := gateway.Connect(ctx)
	cancel()
	if err != nil {
		logger.Error("failed to connect to database", "err", err)
		os.Exit(1)
	}
	defer gateway.Close()
	logger.Info("database connection established")

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:          cfg.Email.SESRegion,
			AccessKeyID:     cfg.Email.SESAccessKeyID,
			SecretAccessKey: cfg.Email.SESSecretAccessKey,
		},
	})
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}

	userRepo := postgres.NewUserRepository(db)
	eventRepo := postgres.NewEventRepository(db)

	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())
	authService := services.NewAuthService(
		userRepo,
		auth.NewBcryptHasher(0),
		auth.NewJWTIssuer(cfg.JWTSecret),
		cfg.TokenExpiry,
		emailService,
		logger,
		cfg.PublicBaseURL,
	)
	eventService := services.NewEventService(eventRepo, 5*time.Second)

	verifier := auth.NewJWTVerifier(cfg.JWTSecret)
	authController := controllers.NewAuthController(logger, authService)
	eventController := controllers.NewEventController(logger, eventService)

	mux := deliveryhttp.NewRouter(authController, eventController, verifier, logger)
	handler := middleware.CORS(cfg.AllowedOrigins, middleware.LoggingMiddleware(logger, mux))

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutdown signal received")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
		return
	}
	logger.Info("server stopped")
}
