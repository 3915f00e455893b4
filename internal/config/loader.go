package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("config: invalid configuration")

// searchPaths returns the config file locations tried when no explicit path
// is given. Later files override earlier ones.
func searchPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "questd", "questd.yaml"))
	}
	paths = append(paths, "questd.yaml")
	if envPath := os.Getenv("QUESTD_CONFIG"); envPath != "" {
		paths = append(paths, envPath)
	}
	return paths
}

// Load builds the configuration from defaults, YAML files and QUESTD_*
// environment variables, in that order of precedence. A non-empty path must
// exist and replaces the search paths.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("loading config %s: %w", path, err)
		}
		if err := loadFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config %s: %w", path, err)
		}
	} else {
		for _, p := range searchPaths() {
			if err := loadFile(cfg, p); err != nil {
				return nil, fmt.Errorf("loading config %s: %w", p, err)
			}
		}
	}

	ApplyEnv(cfg)

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}

	slog.Debug("loading config file", "path", path)

	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return fmt.Errorf("parsing YAML: %w", err)
	}
	return nil
}

// ApplyEnv overrides cfg with QUESTD_* environment variables. Unparseable
// values are ignored.
func ApplyEnv(cfg *Config) {
	if v, ok := getEnvString("QUESTD_DB_PATH"); ok {
		cfg.Database.Path = v
	}
	if v, ok := getEnvString("QUESTD_KEY_PREFIX"); ok {
		cfg.Storage.KeyPrefix = v
	}
	if v, ok := getEnvInt("QUESTD_FOCUS_WORK_MINUTES"); ok && v > 0 {
		cfg.Focus.WorkMinutes = v
	}
	if v, ok := getEnvInt("QUESTD_FOCUS_BREAK_MINUTES"); ok && v > 0 {
		cfg.Focus.BreakMinutes = v
	}
	if v, ok := getEnvDuration("QUESTD_POLL_INTERVAL"); ok && v > 0 {
		cfg.Focus.PollInterval = v
	}
	if v, ok := getEnvDuration("QUESTD_PROBE_TIMEOUT"); ok && v > 0 {
		cfg.Focus.ProbeTimeout = v
	}
	if v, ok := getEnvString("QUESTD_BLOCKLIST"); ok {
		cfg.Focus.Blocklist = splitList(v)
	}
	if v, ok := getEnvBool("QUESTD_BRIDGE_ENABLED"); ok {
		cfg.Bridge.Enabled = v
	}
	if v, ok := getEnvString("QUESTD_BRIDGE_ADDR"); ok {
		cfg.Bridge.Addr = v
	}
	if v, ok := getEnvString("QUESTD_BRIDGE_TOKEN"); ok {
		cfg.Bridge.Token = v
	}
	if v, ok := getEnvBool("QUESTD_DESKTOP_NOTIFICATIONS"); ok {
		cfg.Notifications.Desktop = v
	}
	if v, ok := getEnvString("QUESTD_LOG_LEVEL"); ok {
		cfg.Log.Level = strings.ToLower(v)
	}
	if v, ok := getEnvString("QUESTD_LOG_FILE"); ok {
		cfg.Log.File = v
	}
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

func validate(cfg *Config) error {
	if cfg.Focus.WorkMinutes < 1 || cfg.Focus.WorkMinutes > 240 {
		return fmt.Errorf("%w: focus.work_minutes must be between 1 and 240, got %d", ErrInvalid, cfg.Focus.WorkMinutes)
	}
	if cfg.Focus.BreakMinutes < 1 || cfg.Focus.BreakMinutes > 120 {
		return fmt.Errorf("%w: focus.break_minutes must be between 1 and 120, got %d", ErrInvalid, cfg.Focus.BreakMinutes)
	}
	if cfg.Focus.PollInterval < time.Second {
		return fmt.Errorf("%w: focus.poll_interval must be at least 1s", ErrInvalid)
	}
	if cfg.Focus.ProbeTimeout <= 0 {
		return fmt.Errorf("%w: focus.probe_timeout must be positive", ErrInvalid)
	}
	if strings.TrimSpace(cfg.Storage.KeyPrefix) == "" {
		return fmt.Errorf("%w: storage.key_prefix is required", ErrInvalid)
	}
	if cfg.Simulator.Speed < 1 {
		return fmt.Errorf("%w: simulator.speed must be at least 1", ErrInvalid)
	}
	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log.level must be debug, info, warn or error, got %q", ErrInvalid, cfg.Log.Level)
	}
	if cfg.Bridge.Enabled {
		host, _, err := net.SplitHostPort(cfg.Bridge.Addr)
		if err != nil {
			return fmt.Errorf("%w: bridge.addr: %v", ErrInvalid, err)
		}
		if !isLoopback(host) {
			return fmt.Errorf("%w: bridge.addr must listen on localhost only, got %q", ErrInvalid, host)
		}
	}

	cfg.Database.Path = ExpandHome(cfg.Database.Path)
	cfg.Log.File = ExpandHome(cfg.Log.File)
	return nil
}

func isLoopback(host string) bool {
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

func splitList(raw string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	return raw, raw != ""
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvDuration(name string) (time.Duration, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
