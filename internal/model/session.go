package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidMode    = errors.New("model: invalid session mode")
	ErrInvalidMinutes = errors.New("model: invalid session minutes")
)

type Mode string

const (
	ModeIdle   Mode = "idle"
	ModeFocus  Mode = "focus"
	ModeBreak  Mode = "break"
	ModePaused Mode = "paused"
)

func (m Mode) IsValid() bool {
	switch m {
	case ModeIdle, ModeFocus, ModeBreak, ModePaused:
		return true
	default:
		return false
	}
}

// ParseMode maps an inbound mode string to a Mode. Unknown values become idle.
func ParseMode(raw string) Mode {
	m := Mode(strings.ToLower(strings.TrimSpace(raw)))
	if !m.IsValid() {
		return ModeIdle
	}
	return m
}

type SessionStatus struct {
	Active          bool
	Mode            Mode
	RemainingMs     int64
	Domains         []string
	LastDurationMin int
}

func DefaultSessionStatus() SessionStatus {
	return SessionStatus{Mode: ModeIdle}
}

type SessionHistoryEntry struct {
	Date    string `json:"date"`
	Minutes int    `json:"minutes"`
}

func (e SessionHistoryEntry) Validate() error {
	if _, err := ParseDay(e.Date); err != nil {
		return err
	}
	if e.Minutes < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMinutes, e.Minutes)
	}
	return nil
}

type Profile struct {
	MBTI   string `json:"mbti" yaml:"mbti"`
	Gender string `json:"gender" yaml:"gender"`
	Name   string `json:"name" yaml:"name"`
}

func (p Profile) IsZero() bool {
	return strings.TrimSpace(p.MBTI) == "" && strings.TrimSpace(p.Gender) == "" && strings.TrimSpace(p.Name) == ""
}
