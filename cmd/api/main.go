package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/petermazzocco/movie-catalog-api/internal/config"
	"github.com/petermazzocco/movie-catalog-api/internal/database"
	"github.com/petermazzocco/movie-catalog-api/internal/handlers"
	"github.com/petermazzocco/movie-catalog-api/internal/imagehost"
	"github.com/petermazzocco/movie-catalog-api/internal/observability"
	"github.com/petermazzocco/movie-catalog-api/internal/repository"
	"github.com/petermazzocco/movie-catalog-api/internal/router"
	"github.com/petermazzocco/movie-catalog-api/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := observability.NewLogger(cfg.Env)
	slog.SetDefault(logger)

	// Database connection
	db, err := database.Connect(cfg.Database.DSN, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.Error("close database", slog.String("error", err.Error()))
		}
	}()

	// Image host
	metrics := observability.NewMetrics()
	httpClient := imagehost.NewHTTPClient()
	store, err := imagehost.NewS3Store(context.Background(), cfg.ImageHost, httpClient)
	if err != nil {
		return err
	}
	images := imagehost.New(store, cfg.ImageHost,
		imagehost.WithHTTPClient(httpClient),
		imagehost.WithUploadObserver(metrics.ObserveUpload),
	)

	users := repository.NewUserRepository(db)
	movies := repository.NewMovieRepository(db)
	genres := repository.NewGenreRepository(db)

	r := router.New(cfg, logger, metrics, router.Handlers{
		Users:  handlers.NewUserHandler(service.NewUserService(users, images)),
		Movies: handlers.NewMovieHandler(service.NewMovieService(movies, genres, users, images)),
		Genres: handlers.NewGenreHandler(service.NewGenreService(genres, movies)),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting API server", slog.String("addr", srv.Addr), slog.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
