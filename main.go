package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/affirmly/affirmly-be/internal/api"
	"github.com/affirmly/affirmly-be/internal/auth"
	"github.com/affirmly/affirmly-be/internal/config"
	"github.com/affirmly/affirmly-be/internal/database"
	"github.com/affirmly/affirmly-be/internal/logger"
	"github.com/affirmly/affirmly-be/internal/media"
	"github.com/affirmly/affirmly-be/internal/monitoring"
	"github.com/affirmly/affirmly-be/internal/services"
	"github.com/affirmly/affirmly-be/internal/websocket"
)

func main() {
	// A .env file is optional; real environments set variables directly.
	_ = godotenv.Load()

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

	// Set up the media store for profile images
	mediaStore, err := media.NewStore(cfg.MediaDir)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize media store")
	}

	// Set up the live feed hub
	hub := websocket.NewHub()
	go hub.Run()

	// Set up services
	authenticator := auth.New(cfg.JWTSecret)
	eventService := services.NewEventService(db)
	userService := services.NewUserService(db, eventService)
	postService := services.NewPostService(db, hub, eventService)
	profileService := services.NewProfileService(db, mediaStore)

	// Set up and run the background media sweeper
	sweeper, err := monitoring.NewMediaSweeper(db, mediaStore, cfg.SweepSchedule)
	if err != nil {
		log.Fatal().Err(err).Str("schedule", cfg.SweepSchedule).Msg("Invalid media sweep schedule")
	}
	go sweeper.Run()

	// Set up router
	router := api.NewRouter(authenticator, hub, postService, userService, profileService, eventService, cfg.MediaDir, cfg.AllowedOrigin)

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

	sweeper.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
