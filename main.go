package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hvisser/gatehouse/internal/api"
	"github.com/hvisser/gatehouse/internal/auth"
	"github.com/hvisser/gatehouse/internal/config"
	"github.com/hvisser/gatehouse/internal/database"
	"github.com/hvisser/gatehouse/internal/logger"
	"github.com/hvisser/gatehouse/internal/monitoring"
	"github.com/hvisser/gatehouse/internal/services"
	"github.com/hvisser/gatehouse/internal/store"
	"github.com/rs/zerolog/log"
)

func main() {
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Set up services
	userStore := store.NewUserStore(db)
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)
	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.SessionTTL)
	authService := services.NewAuthService(userStore, hasher)

	// Set up and run the background stats reporter
	statsReporter, err := monitoring.NewStatsReporter(userStore, cfg.StatsInterval)
	if err != nil {
		log.Fatal().Err(err).Str("spec", cfg.StatsInterval).Msg("Invalid stats interval")
	}
	go statsReporter.Run()

	// Set up router
	router := api.NewRouter(authService, issuer, api.RouterOptions{
		SessionTTL:   cfg.SessionTTL,
		SecureCookie: cfg.Production,
		CORSOrigin:   cfg.CORSOrigin,
	})

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	statsReporter.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
