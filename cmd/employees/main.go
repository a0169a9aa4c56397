package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deppfellow/employee-app/internal/config"
	"github.com/deppfellow/employee-app/internal/database"
	"github.com/deppfellow/employee-app/internal/handler"
	"github.com/deppfellow/employee-app/internal/logger"
	"github.com/deppfellow/employee-app/internal/repository"
	"github.com/deppfellow/employee-app/internal/router"
	"github.com/deppfellow/employee-app/internal/server"
	"github.com/deppfellow/employee-app/internal/service"
	"github.com/rs/zerolog/log"
)

const (
	DefaultContextTimeout = 30
	ShutdownTimeout       = 10 * time.Second
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	loggerService, err := logger.NewLoggerService(cfg.Observability)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize New Relic")
	}
	defer loggerService.Shutdown()

	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	// The employees table must exist before the first request is accepted.
	migrateCtx, cancel := context.WithTimeout(context.Background(), DefaultContextTimeout*time.Second)
	err = database.Migrate(migrateCtx, &log, cfg.Database.DSN())
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize server")
	}

	repos := repository.NewRepositories(srv)
	services := service.NewServices(srv, repos)
	handlers := handler.NewHandlers(srv, services)
	r := router.NewRouter(srv, handlers)

	srv.SetupHTTPServer(r)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
