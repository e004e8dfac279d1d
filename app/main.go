package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lysyi3m/feed-comb/app/api"
	"github.com/lysyi3m/feed-comb/app/batch"
	"github.com/lysyi3m/feed-comb/app/cfg"
	"github.com/lysyi3m/feed-comb/app/database"
	"github.com/lysyi3m/feed-comb/app/filter"
	"github.com/lysyi3m/feed-comb/app/pattern"
	"github.com/lysyi3m/feed-comb/app/session"
	"github.com/lysyi3m/feed-comb/app/settings"
	"github.com/lysyi3m/feed-comb/app/tasks"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown
		return
	}

	level := slog.LevelInfo
	if appCfg.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	slog.Info("Starting Feed Comb server", "version", appCfg.Version)

	db, err := database.Open(appCfg.DBPath)
	if err != nil {
		slog.Error("Failed to open database", "path", appCfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "path", appCfg.DBPath, "schema_version", version, "dirty", dirty)

	settingsRepo := database.NewSettingsRepository(db)
	suppressionRepo := database.NewSuppressionRepository(db)

	initial, err := settings.LoadFile(appCfg.SettingsFile)
	if err != nil {
		slog.Error("Failed to load settings", "path", appCfg.SettingsFile, "error", err)
		os.Exit(1)
	}
	manager := settings.NewManager(initial)

	ctx := context.Background()
	if err := manager.Restore(ctx, settingsRepo); err != nil {
		slog.Warn("Failed to restore stored settings, using file settings", "error", err)
	}

	scheduler := tasks.NewScheduler(appCfg.WorkerCount)
	if appCfg.RetentionDays > 0 {
		retention := time.Duration(appCfg.RetentionDays) * 24 * time.Hour
		scheduler.Every(time.Hour, func() tasks.TaskInterface {
			return tasks.NewPruneSuppressionsTask(retention, suppressionRepo)
		})
	}
	scheduler.Start()
	defer scheduler.Stop()

	manager.OnChange(tasks.NewSettingsPersister(manager, settingsRepo, scheduler).Notify)

	patterns := pattern.NewCache(pattern.DefaultVariants())
	journals := func(id string) filter.Journal {
		return tasks.NewJournal(id, scheduler, suppressionRepo)
	}

	registry, err := session.NewRegistry(manager, patterns, journals, session.Options{
		Size:       appCfg.SessionCacheSize,
		Batch:      batch.OptionsFromConfig(appCfg),
		IdleWindow: appCfg.IdleWindow,
	})
	if err != nil {
		slog.Error("Failed to create session registry", "error", err)
		os.Exit(1)
	}
	defer registry.Close()

	feeds := session.NewFeedFilter(manager, patterns, tasks.NewJournal("feeds", scheduler, suppressionRepo))

	handler := api.NewHandler(registry, feeds, manager, suppressionRepo)
	server := api.NewServer(handler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", appCfg.Port, "workers", appCfg.WorkerCount, "session_cache", appCfg.SessionCacheSize)
		if appCfg.APIAccessKey == "" {
			slog.Info("Settings API disabled", "reason", "API_ACCESS_KEY not set")
		}

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}

	slog.Info("Feed Comb server shutdown complete")
}
