package config

import (
	"time"

	"github.com/sandeepkv93/questd/internal/model"
)

type Config struct {
	Database      DatabaseConfig      `yaml:"database"`
	Storage       StorageConfig       `yaml:"storage"`
	Focus         FocusConfig         `yaml:"focus"`
	Bridge        BridgeConfig        `yaml:"bridge"`
	Simulator     SimulatorConfig     `yaml:"simulator"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Profile       model.Profile       `yaml:"profile"`
	Log           LogConfig           `yaml:"log"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type StorageConfig struct {
	KeyPrefix string `yaml:"key_prefix"`
}

type FocusConfig struct {
	WorkMinutes  int           `yaml:"work_minutes"`
	BreakMinutes int           `yaml:"break_minutes"`
	PollInterval time.Duration `yaml:"poll_interval"`
	ProbeTimeout time.Duration `yaml:"probe_timeout"`
	Blocklist    []string      `yaml:"blocklist"`
}

type BridgeConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Token   string `yaml:"token"`
}

type SimulatorConfig struct {
	Speed float64 `yaml:"speed"`
}

type NotificationsConfig struct {
	Desktop bool `yaml:"desktop"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

func Defaults() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: "~/.local/share/questd/questd.db",
		},
		Storage: StorageConfig{
			KeyPrefix: "questd",
		},
		Focus: FocusConfig{
			WorkMinutes:  25,
			BreakMinutes: 5,
			PollInterval: 20 * time.Second,
			ProbeTimeout: 3 * time.Second,
			Blocklist:    []string{},
		},
		Bridge: BridgeConfig{
			Enabled: true,
			Addr:    "127.0.0.1:7373",
		},
		Simulator: SimulatorConfig{
			Speed: 1,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
