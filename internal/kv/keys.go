package kv

import "strings"

const DefaultPrefix = "questd"

// Keys names every storage key this application reads or writes.
type Keys struct {
	prefix string
}

func NewKeys(prefix string) Keys {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return Keys{prefix: prefix}
}

func (k Keys) Prefix() string { return k.prefix }

func (k Keys) name(parts ...string) string {
	return k.prefix + "_" + strings.Join(parts, "_")
}

func (k Keys) SessionTotalMs() string    { return k.name("session_total_ms") }
func (k Keys) SessionMode() string       { return k.name("session_mode") }
func (k Keys) SessionStopped() string    { return k.name("session_stopped") }
func (k Keys) SessionID() string         { return k.name("session_id") }
func (k Keys) LastLoggedSession() string { return k.name("last_logged_session") }
func (k Keys) FocusSessions() string     { return k.name("focus_sessions") }
func (k Keys) Points() string            { return k.name("points") }
func (k Keys) Streak() string            { return k.name("streak") }
func (k Keys) LastActiveDate() string    { return k.name("last_active_date") }
func (k Keys) Blocklist() string         { return k.name("blocklist") }

func (k Keys) Quests(day string) string       { return k.name("quests", day) }
func (k Keys) CustomQuests(day string) string { return k.name("custom_quests", day) }
func (k Keys) CompletedAny(day string) string { return k.name("completed_any", day) }

// QuestsPrefix matches every per-day quest state key.
func (k Keys) QuestsPrefix() string { return k.name("quests") + "_" }
