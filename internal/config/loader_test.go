package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "questd.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaults_SetsExpectedValues(t *testing.T) {
	t.Parallel()

	cfg := Defaults()

	assert.Equal(t, 25, cfg.Focus.WorkMinutes)
	assert.Equal(t, 5, cfg.Focus.BreakMinutes)
	assert.Equal(t, 20*time.Second, cfg.Focus.PollInterval)
	assert.Equal(t, 3*time.Second, cfg.Focus.ProbeTimeout)
	assert.Equal(t, "questd", cfg.Storage.KeyPrefix)
	assert.Equal(t, "127.0.0.1:7373", cfg.Bridge.Addr)
	assert.True(t, cfg.Bridge.Enabled)
	assert.False(t, cfg.Notifications.Desktop)
	assert.Equal(t, "info", cfg.Log.Level)
	require.NoError(t, validate(Defaults()))
}

func TestLoad_ParsesYAML(t *testing.T) {
	path := writeConfig(t, `
database:
  path: /tmp/questd-test.db
storage:
  key_prefix: fq
focus:
  work_minutes: 50
  break_minutes: 10
  poll_interval: 30s
  probe_timeout: 2s
  blocklist:
    - news.example
    - social.example
bridge:
  addr: "localhost:9999"
  token: "${QUESTD_TEST_TOKEN}"
notifications:
  desktop: true
profile:
  mbti: INTP
  name: Ada
log:
  level: debug
`)
	t.Setenv("QUESTD_TEST_TOKEN", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/questd-test.db", cfg.Database.Path)
	assert.Equal(t, "fq", cfg.Storage.KeyPrefix)
	assert.Equal(t, 50, cfg.Focus.WorkMinutes)
	assert.Equal(t, 10, cfg.Focus.BreakMinutes)
	assert.Equal(t, 30*time.Second, cfg.Focus.PollInterval)
	assert.Equal(t, 2*time.Second, cfg.Focus.ProbeTimeout)
	assert.Equal(t, []string{"news.example", "social.example"}, cfg.Focus.Blocklist)
	assert.Equal(t, "localhost:9999", cfg.Bridge.Addr)
	assert.Equal(t, "from-env", cfg.Bridge.Token)
	assert.True(t, cfg.Notifications.Desktop)
	assert.Equal(t, "INTP", cfg.Profile.MBTI)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "focus:\n  work_minutes: 50\n")
	t.Setenv("QUESTD_FOCUS_WORK_MINUTES", "45")
	t.Setenv("QUESTD_FOCUS_BREAK_MINUTES", "not-a-number")
	t.Setenv("QUESTD_POLL_INTERVAL", "1m")
	t.Setenv("QUESTD_BLOCKLIST", " a.example, ,b.example ")
	t.Setenv("QUESTD_DESKTOP_NOTIFICATIONS", "yes")
	t.Setenv("QUESTD_BRIDGE_ENABLED", "off")
	t.Setenv("QUESTD_LOG_LEVEL", "WARN")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 45, cfg.Focus.WorkMinutes)
	assert.Equal(t, 5, cfg.Focus.BreakMinutes)
	assert.Equal(t, time.Minute, cfg.Focus.PollInterval)
	assert.Equal(t, []string{"a.example", "b.example"}, cfg.Focus.Blocklist)
	assert.True(t, cfg.Notifications.Desktop)
	assert.False(t, cfg.Bridge.Enabled)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Parallel()
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"work minutes": "focus:\n  work_minutes: 0\n",
		"poll":         "focus:\n  poll_interval: 10ms\n",
		"public bind":  "bridge:\n  addr: \"0.0.0.0:7373\"\n",
		"bad addr":     "bridge:\n  addr: \"nope\"\n",
		"log level":    "log:\n  level: loud\n",
		"prefix":       "storage:\n  key_prefix: \"  \"\n",
		"yaml":         "focus: [\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := Load(writeConfig(t, content))
			assert.Error(t, err)
		})
	}
}

func TestExpandHome(t *testing.T) {
	t.Parallel()
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "data/questd.db"), ExpandHome("~/data/questd.db"))
	assert.Equal(t, "/abs/path", ExpandHome("/abs/path"))
}
