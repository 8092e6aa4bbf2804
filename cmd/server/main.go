package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vytor/wordflow/internal/config"
	"github.com/vytor/wordflow/internal/db"
	"github.com/vytor/wordflow/internal/logger"
	"github.com/vytor/wordflow/internal/repository"
	"github.com/vytor/wordflow/internal/repository/sqlite"
	"github.com/vytor/wordflow/internal/review"
	"github.com/vytor/wordflow/internal/services"
	"github.com/vytor/wordflow/internal/wordlist"
)

func main() {
	root := &cobra.Command{
		Use:           "wordflow",
		Short:         "Vocabulary assessment and spaced-repetition service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}
	root.AddCommand(newServeCommand(), newImportCommand())

	if err := root.Execute(); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}

// setup loads and validates configuration, installs the default logger and opens the database.
func setup() (config.Config, *db.DB, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return cfg, nil, err
	}

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("spelling_enabled=%t", cfg.SpellingEnabled)
	log.Debug("default_mode_id=%d", cfg.DefaultModeID)
	log.Debug("session_worker_count=%d", cfg.SessionWorkerCount)
	log.Debug("session_queue_size=%d", cfg.SessionQueueSize)
	log.Debug("session_build_time=%s", cfg.SessionBuildTime)
	log.Debug("timezone=%s", cfg.Timezone)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, database, nil
}

type repositories struct {
	progress   repository.ProgressRepository
	history    repository.HistoryRepository
	strategies repository.StrategyRepository
	sessions   repository.SessionRepository
	words      repository.WordRepository
	modes      repository.ModeRepository
}

func newRepositories(database *db.DB) repositories {
	return repositories{
		progress:   sqlite.NewProgressRepository(database.DB),
		history:    sqlite.NewHistoryRepository(database.DB),
		strategies: sqlite.NewStrategyRepository(database.DB),
		sessions:   sqlite.NewSessionRepository(database.DB),
		words:      sqlite.NewWordRepository(database.DB),
		modes:      sqlite.NewModeRepository(database.DB),
	}
}

type app struct {
	catalog    services.CatalogService
	reviews    services.ReviewService
	sessions   services.SessionService
	assessment services.AssessmentService
}

func newApp(cfg config.Config, repos repositories) app {
	clock := services.ClockIn(cfg.Location())
	reviews := services.NewReviewService(repos.progress, repos.history, repos.words, review.NewScheduler(repos.strategies), clock)
	generator := wordlist.NewGenerator(repos.modes, repos.progress, repos.words).WithClock(clock)

	return app{
		catalog:    services.NewCatalogService(repos.words, repos.modes, repos.strategies),
		reviews:    reviews,
		sessions:   services.NewSessionService(repos.sessions, repos.modes, generator, cfg.DefaultModeID, clock),
		assessment: services.NewAssessmentService(repos.history, repos.words, reviews, cfg.SpellingEnabled),
	}
}
