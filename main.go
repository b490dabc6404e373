package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/taskmaster/taskboard/internal/api"
	"github.com/taskmaster/taskboard/internal/api/handlers"
	"github.com/taskmaster/taskboard/internal/config"
	"github.com/taskmaster/taskboard/internal/database"
	"github.com/taskmaster/taskboard/internal/logger"
	"github.com/taskmaster/taskboard/internal/render"
	"github.com/taskmaster/taskboard/internal/services"
	"github.com/taskmaster/taskboard/internal/session"
)

func main() {
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Set up the document store
	connectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	client, err := database.Connect(connectCtx, cfg.MongoURI)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to the document store")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("Failed to disconnect from the document store")
		}
	}()

	db := client.Database(cfg.MongoDBName)

	indexCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	err = database.EnsureIndexes(indexCtx, db)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to ensure indexes")
	}

	// Set up sessions and the template renderer
	sessions := session.NewManager(cfg.SessionSecret)

	renderer, err := render.New(sessions)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to parse templates")
	}

	// Set up services
	userService := services.NewUserService(db)
	taskService := services.NewTaskService(db)
	categoryService := services.NewCategoryService(db)

	// Set up handlers and router
	authHandler := handlers.NewAuthHandler(userService, sessions, renderer)
	taskHandler := handlers.NewTaskHandler(taskService, categoryService, sessions, renderer)
	categoryHandler := handlers.NewCategoryHandler(categoryService, renderer)

	router := api.NewRouter(authHandler, taskHandler, categoryHandler)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
