package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/sandeepkv93/questd/internal/bus"
	"github.com/sandeepkv93/questd/internal/config"
	"github.com/sandeepkv93/questd/internal/events"
	"github.com/sandeepkv93/questd/internal/focus"
	"github.com/sandeepkv93/questd/internal/kv"
	"github.com/sandeepkv93/questd/internal/quest"
	"github.com/sandeepkv93/questd/internal/storage"
)

// app holds the services shared by every subcommand.
type app struct {
	cfg    *config.Config
	repo   *storage.SQLiteRepository
	hub    *bus.Hub
	events *events.Dispatcher
	sync   *focus.Synchronizer
	ledger *quest.Ledger
	log    *slog.Logger
}

type globalFlags struct {
	configPath string
	dbPath     string
}

func loadConfig(flags *globalFlags) (*config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}
	if flags.dbPath != "" {
		cfg.Database.Path = flags.dbPath
	}
	return cfg, nil
}

func openApp(cfg *config.Config, logger *slog.Logger) (*app, error) {
	dbPath := config.ExpandHome(cfg.Database.Path)
	repo, err := storage.OpenSQLite(dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	logger.Debug("database opened", "path", dbPath)

	store := kv.New(repo, logger)
	keys := kv.NewKeys(cfg.Storage.KeyPrefix)
	dispatcher := events.NewDispatcher()
	hub := bus.NewHub(bus.DefaultApp, 64, logger)
	return &app{
		cfg:    cfg,
		repo:   repo,
		hub:    hub,
		events: dispatcher,
		sync: focus.NewSynchronizer(focus.Options{
			Hub:          hub,
			Store:        store,
			Keys:         keys,
			Events:       dispatcher,
			Blocklist:    cfg.Focus.Blocklist,
			ProbeTimeout: cfg.Focus.ProbeTimeout,
			Logger:       logger,
		}),
		ledger: quest.NewLedger(quest.Options{
			Store:  store,
			Keys:   keys,
			Events: dispatcher,
			Logger: logger,
		}),
		log: logger,
	}, nil
}

func (a *app) Close() error {
	return a.repo.Close()
}

// setupLogging builds the JSON logger. console is stdout for headless
// commands and io.Discard under the TUI so log lines never reach the screen.
// The returned func closes the log file, if one was opened.
func setupLogging(cfg *config.Config, console io.Writer) (*slog.Logger, func()) {
	var level slog.Level
	switch cfg.Log.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	writers := []io.Writer{console}
	closeLog := func() {}
	if cfg.Log.File != "" {
		path := config.ExpandHome(cfg.Log.File)
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file %s: %v\n", path, err)
		} else {
			writers = append(writers, f)
			closeLog = func() { _ = f.Close() }
		}
	}

	logger := slog.New(slog.NewJSONHandler(io.MultiWriter(writers...), &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger, closeLog
}
