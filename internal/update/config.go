package update

import (
	"time"

	"github.com/sandeepkv93/questd/internal/config"
	"github.com/sandeepkv93/questd/internal/model"
)

type RuntimeConfig struct {
	DesktopNotifications bool
	FocusWorkMinutes     int
	FocusBreakMinutes    int
	PollInterval         time.Duration
	Profile              model.Profile
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		DesktopNotifications: false,
		FocusWorkMinutes:     25,
		FocusBreakMinutes:    5,
		PollInterval:         20 * time.Second,
	}
}

// RuntimeConfigFrom picks the TUI settings out of the loaded configuration,
// keeping defaults for anything unset.
func RuntimeConfigFrom(cfg *config.Config) RuntimeConfig {
	out := DefaultRuntimeConfig()
	if cfg == nil {
		return out
	}
	out.DesktopNotifications = cfg.Notifications.Desktop
	if cfg.Focus.WorkMinutes > 0 {
		out.FocusWorkMinutes = cfg.Focus.WorkMinutes
	}
	if cfg.Focus.BreakMinutes > 0 {
		out.FocusBreakMinutes = cfg.Focus.BreakMinutes
	}
	if cfg.Focus.PollInterval > 0 {
		out.PollInterval = cfg.Focus.PollInterval
	}
	out.Profile = cfg.Profile
	return out
}
