package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vytor/wordflow/internal/api"
	"github.com/vytor/wordflow/internal/cron"
	"github.com/vytor/wordflow/internal/jobs"
	"github.com/vytor/wordflow/internal/logger"
	"github.com/vytor/wordflow/internal/worker"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the nightly session builder",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, database, err := setup()
	if err != nil {
		return err
	}
	log := logger.Default()
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	log.Info("===========================================")
	log.Info("Wordflow Server Starting")
	log.Info("===========================================")

	repos := newRepositories(database)
	a := newApp(cfg, repos)

	sessionPool := worker.NewPool(cfg.SessionWorkerCount, cfg.SessionQueueSize)
	queue := jobs.NewWorkerQueue(sessionPool, a.sessions)
	nightly, err := cron.New(cfg.Location(), cfg.SessionBuildTime, repos.progress, queue)
	if err != nil {
		return err
	}

	srv := &api.Server{
		DB:                database,
		CatalogService:    a.catalog,
		ReviewService:     a.reviews,
		SessionService:    a.sessions,
		AssessmentService: a.assessment,
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	sessionPool.Start(ctx)
	nightly.Start()

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-stop:
		log.Info("received signal %v, initiating graceful shutdown", sig)
	case err = <-serverErr:
		log.Error("HTTP server error: %v", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("stopping nightly scheduler")
	nightly.Stop()

	log.Debug("shutting down HTTP server")
	if shutdownErr := httpServer.Shutdown(shutdownCtx); shutdownErr != nil {
		log.Error("HTTP server shutdown error: %v", shutdownErr)
	}

	log.Debug("stopping session pool")
	cancel()
	sessionPool.Stop()

	log.Info("===========================================")
	log.Info("Wordflow Server Stopped")
	log.Info("===========================================")
	return err
}
