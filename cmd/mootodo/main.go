package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/xrjjing/moo-todo/internal/api"
	"github.com/xrjjing/moo-todo/internal/config"
	"github.com/xrjjing/moo-todo/internal/repository"
	"github.com/xrjjing/moo-todo/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fallback := zerolog.New(os.Stderr)
		fallback.Fatal().Err(err).Msg("config")
	}

	logger := newLogger(cfg.LogLevel)

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("open database")
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	taskRepo := repository.NewTaskRepository(db)
	subtaskRepo := repository.NewSubtaskRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	pomodoroRepo := repository.NewPomodoroRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	taskSvc := service.NewTaskService(taskRepo, subtaskRepo)
	categorySvc := service.NewCategoryService(categoryRepo, taskRepo)
	recurSvc := service.NewRecurrenceService(taskRepo, logger.With().Str("component", "recurrence").Logger())
	pomodoroSvc := service.NewPomodoroService(pomodoroRepo, taskRepo)
	settingsSvc := service.NewSettingsService(settingRepo)
	statsSvc := service.NewStatsService(taskRepo, categoryRepo, pomodoroRepo)
	dataSvc := service.NewDataService(taskRepo, categoryRepo, pomodoroRepo, settingsSvc)

	if err := categorySvc.SeedDefaults(ctx); err != nil {
		logger.Fatal().Err(err).Msg("seed categories")
	}

	runDuePass := func() {
		passCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		created, err := recurSvc.RunDuePass(passCtx, time.Now())
		if err != nil {
			logger.Error().Err(err).Msg("due pass")
			return
		}
		if len(created) > 0 {
			logger.Info().Int("occurrences", len(created)).Msg("due pass materialized occurrences")
		}
	}

	// One pass at startup covers anything that came due while we were down.
	runDuePass()

	scheduler := service.NewSchedulerService(time.Local)
	if _, err := scheduler.ScheduleInterval(cfg.GenerateInterval, runDuePass); err != nil {
		logger.Fatal().Err(err).Msg("schedule due pass")
	}
	if cfg.GenerateAt != "" {
		if _, err := scheduler.ScheduleDaily(cfg.GenerateAt, runDuePass); err != nil {
			logger.Fatal().Err(err).Msg("schedule daily due pass")
		}
	}
	scheduler.Start()
	defer scheduler.Stop()

	server := api.NewServer(taskSvc, categorySvc, recurSvc, pomodoroSvc, settingsSvc, statsSvc, dataSvc,
		logger.With().Str("component", "api").Logger())

	httpServer := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", cfg.ListenAddr).Msg("moo-todo started")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("http server")
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown")
	}
	logger.Info().Msg("shutdown complete")
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	return zerolog.New(writer).Level(lvl).With().Timestamp().Logger()
}
