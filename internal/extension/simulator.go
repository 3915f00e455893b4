// Package extension provides an in-process stand-in for the blocker browser
// extension. It answers the same commands over the bus and runs the session
// timer itself.
package extension

import (
	"context"
	"encoding/json"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/sandeepkv93/questd/internal/bus"
	"github.com/sandeepkv93/questd/internal/model"
)

const (
	DefaultFocusMinutes = 25
	DefaultBreakMinutes = 5
)

type Options struct {
	// Tick is the wall-clock interval between countdown steps in Run.
	Tick time.Duration
	// Speed multiplies simulated time per tick. Values below 1 are treated as 1.
	Speed  float64
	Logger *slog.Logger
}

type Simulator struct {
	hub   *bus.Hub
	tick  time.Duration
	speed float64
	log   *slog.Logger

	mu         sync.Mutex
	active     bool
	mode       model.Mode
	resumeMode model.Mode
	remaining  time.Duration
	total      time.Duration
	lastMin    *int
	domains    []string
	profile    model.Profile
	handled    int
}

func NewSimulator(hub *bus.Hub, opts Options) *Simulator {
	if opts.Tick <= 0 {
		opts.Tick = time.Second
	}
	if opts.Speed < 1 {
		opts.Speed = 1
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Simulator{
		hub:   hub,
		tick:  opts.Tick,
		speed: opts.Speed,
		log:   opts.Logger.With("component", "simulator"),
		mode:  model.ModeIdle,
	}
}

// Run serves bus requests and advances the timer until ctx is done.
func (s *Simulator) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()
	step := time.Duration(float64(s.tick) * s.speed)

	for {
		select {
		case <-ctx.Done():
			return nil
		case req, ok := <-s.hub.Requests():
			if !ok {
				return nil
			}
			s.Handle(req)
		case <-ticker.C:
			s.Advance(step)
		}
	}
}

// Handle applies one command and publishes the resulting status. Requests
// with a foreign type or unknown action are ignored.
func (s *Simulator) Handle(req bus.Request) {
	if req.Type != s.hub.RequestType() {
		return
	}
	s.mu.Lock()
	s.handled++
	switch req.Action {
	case bus.ActionGetStatus:
	case bus.ActionStartSession:
		var p bus.StartSessionPayload
		s.decode(req, &p)
		if len(p.Domains) > 0 {
			s.domains = slices.Clone(p.Domains)
		}
		s.startLocked(model.ModeFocus, minutesOr(p.DurationMinutes, DefaultFocusMinutes))
	case bus.ActionStartBreak:
		var p bus.StartBreakPayload
		s.decode(req, &p)
		s.startLocked(model.ModeBreak, minutesOr(p.DurationMinutes, DefaultBreakMinutes))
	case bus.ActionPauseSession:
		if s.active {
			s.resumeMode = s.mode
			s.active = false
			s.mode = model.ModePaused
		}
	case bus.ActionResumeSession:
		if s.mode == model.ModePaused && s.remaining > 0 {
			s.active = true
			s.mode = s.resumeMode
		}
	case bus.ActionStopSession:
		s.active = false
		s.mode = model.ModeIdle
		s.remaining = 0
		s.total = 0
	case bus.ActionUpdateBlocklist:
		var p bus.BlocklistPayload
		s.decode(req, &p)
		s.domains = slices.Clone(p.Domains)
	case bus.ActionSetProfile:
		var p bus.ProfilePayload
		s.decode(req, &p)
		s.profile = model.Profile{MBTI: p.MBTI, Gender: p.Gender, Name: p.Name}
	default:
		s.log.Debug("unknown action ignored", "action", req.Action)
		s.mu.Unlock()
		return
	}
	status := s.snapshotLocked()
	s.mu.Unlock()

	s.hub.Publish(status)
}

// Advance runs the timer forward by d. When it runs out the session ends and
// a final idle status carrying the session length is published.
func (s *Simulator) Advance(d time.Duration) {
	s.mu.Lock()
	if !s.active || d <= 0 {
		s.mu.Unlock()
		return
	}
	s.remaining -= d
	if s.remaining > 0 {
		s.mu.Unlock()
		return
	}
	minutes := int(s.total / time.Minute)
	s.lastMin = &minutes
	s.active = false
	s.mode = model.ModeIdle
	s.remaining = 0
	s.total = 0
	status := s.snapshotLocked()
	s.mu.Unlock()

	s.log.Debug("simulated session finished", "minutes", minutes)
	s.hub.Publish(status)
}

func (s *Simulator) Snapshot() bus.StatusPayload {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Simulator) Profile() model.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

func (s *Simulator) Handled() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handled
}

func (s *Simulator) startLocked(mode model.Mode, minutes int) {
	s.active = true
	s.mode = mode
	s.total = time.Duration(minutes) * time.Minute
	s.remaining = s.total
}

func (s *Simulator) snapshotLocked() bus.StatusPayload {
	out := bus.StatusPayload{
		Active:      s.active,
		Mode:        string(s.mode),
		RemainingMs: s.remaining.Milliseconds(),
		Domains:     slices.Clone(s.domains),
	}
	if s.lastMin != nil {
		v := *s.lastMin
		out.LastDurationMin = &v
	}
	return out
}

func (s *Simulator) decode(req bus.Request, v any) {
	if len(req.Payload) == 0 {
		return
	}
	if err := json.Unmarshal(req.Payload, v); err != nil {
		s.log.Debug("bad payload", "action", req.Action, "error", err)
	}
}

func minutesOr(minutes, def int) int {
	if minutes <= 0 {
		return def
	}
	return minutes
}
