package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sandeepkv93/questd/internal/config"
)

func TestSetupLoggingWritesAndClosesLogFile(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	cfg := config.Defaults()
	cfg.Log.Level = "debug"
	cfg.Log.File = filepath.Join(t.TempDir(), "questd.log")

	var console bytes.Buffer
	logger, closeLog := setupLogging(cfg, &console)
	logger.Debug("session logged", "minutes", 25)
	closeLog()
	closeLog()

	raw, err := os.ReadFile(cfg.Log.File)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(raw), `"msg":"session logged"`) {
		t.Fatalf("expected log line in file, got %q", raw)
	}
	if !strings.Contains(console.String(), `"minutes":25`) {
		t.Fatalf("expected log line on console, got %q", console.String())
	}
	if err := os.Remove(cfg.Log.File); err != nil {
		t.Fatalf("remove closed log file: %v", err)
	}
}

func TestSetupLoggingWithoutFile(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	cfg := config.Defaults()
	var console bytes.Buffer
	logger, closeLog := setupLogging(cfg, &console)
	defer closeLog()

	logger.Debug("hidden")
	logger.Info("shown")
	if strings.Contains(console.String(), "hidden") || !strings.Contains(console.String(), "shown") {
		t.Fatalf("unexpected console output %q", console.String())
	}
}
