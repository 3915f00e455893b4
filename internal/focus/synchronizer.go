package focus

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/sandeepkv93/questd/internal/bus"
	"github.com/sandeepkv93/questd/internal/events"
	"github.com/sandeepkv93/questd/internal/kv"
	"github.com/sandeepkv93/questd/internal/model"
)

const DefaultProbeTimeout = 3 * time.Second

type ExtensionState string

const (
	ExtensionUnknown ExtensionState = "unknown"
	ExtensionPresent ExtensionState = "present"
	ExtensionAbsent  ExtensionState = "absent"
)

type Options struct {
	Hub          *bus.Hub
	Store        *kv.Adapter
	Keys         kv.Keys
	Events       *events.Dispatcher
	Blocklist    []string
	ProbeTimeout time.Duration
	Now          func() time.Time
	Logger       *slog.Logger
}

// Synchronizer issues session commands to the peer and folds the peer's
// status messages back into local state. It is not safe for concurrent
// mutation; one goroutine owns it.
type Synchronizer struct {
	hub      *bus.Hub
	status   *StatusModel
	markers  *Markers
	history  *History
	detector *Detector
	events   *events.Dispatcher
	now      func() time.Time
	log      *slog.Logger

	probeTimeout time.Duration
	probeStarted time.Time
	present      bool
}

func NewSynchronizer(opts Options) *Synchronizer {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Events == nil {
		opts.Events = events.NewDispatcher()
	}
	if opts.ProbeTimeout <= 0 {
		opts.ProbeTimeout = DefaultProbeTimeout
	}
	logger := opts.Logger.With("component", "focus")
	markers := NewMarkers(opts.Store, opts.Keys)
	history := NewHistory(opts.Store, opts.Keys)
	return &Synchronizer{
		hub:          opts.Hub,
		status:       NewStatusModel(opts.Store, opts.Keys, opts.Blocklist),
		markers:      markers,
		history:      history,
		detector:     NewDetector(markers, history, opts.Events, opts.Now, logger),
		events:       opts.Events,
		now:          opts.Now,
		log:          logger,
		probeTimeout: opts.ProbeTimeout,
	}
}

func (s *Synchronizer) Status() model.SessionStatus { return s.status.Status() }
func (s *Synchronizer) Blocklist() []string         { return s.status.Blocklist() }
func (s *Synchronizer) History() *History           { return s.history }
func (s *Synchronizer) Events() *events.Dispatcher  { return s.events }
func (s *Synchronizer) Ticking() bool               { return s.status.Ticking() }
func (s *Synchronizer) Tick() bool                  { return s.status.Tick() }

// RequestStatus asks the peer for its status. The first call starts the
// presence probe window.
func (s *Synchronizer) RequestStatus() {
	if s.probeStarted.IsZero() {
		s.probeStarted = s.now()
	}
	s.hub.Send(bus.ActionGetStatus, nil)
}

// Reprobe restarts the presence probe window and asks for a status again.
func (s *Synchronizer) Reprobe() {
	if !s.present {
		s.probeStarted = s.now()
	}
	s.hub.Send(bus.ActionGetStatus, nil)
}

// SessionTotalMs is the length of the session in flight, or zero when no
// session was started from here.
func (s *Synchronizer) SessionTotalMs() int64 {
	return s.markers.Read().TotalMs
}

func (s *Synchronizer) StartSession(minutes int, domains []string) error {
	if minutes <= 0 {
		return fmt.Errorf("%w: %d", model.ErrInvalidMinutes, minutes)
	}
	domains = NormalizeDomains(domains)
	if len(domains) == 0 {
		domains = s.status.Blocklist()
	} else {
		domains = s.status.SetBlocklist(domains)
	}
	id := s.markers.Begin(model.ModeFocus, int64(minutes)*int64(time.Minute/time.Millisecond))
	s.log.Debug("focus session requested", "minutes", minutes, "domains", len(domains), "session_id", id)
	s.hub.Send(bus.ActionStartSession, bus.StartSessionPayload{DurationMinutes: minutes, Domains: domains})
	return nil
}

func (s *Synchronizer) StartBreak(minutes int) error {
	if minutes <= 0 {
		return fmt.Errorf("%w: %d", model.ErrInvalidMinutes, minutes)
	}
	s.markers.Begin(model.ModeBreak, int64(minutes)*int64(time.Minute/time.Millisecond))
	s.hub.Send(bus.ActionStartBreak, bus.StartBreakPayload{DurationMinutes: minutes})
	return nil
}

func (s *Synchronizer) Pause() {
	s.hub.Send(bus.ActionPauseSession, nil)
}

func (s *Synchronizer) Resume() {
	s.hub.Send(bus.ActionResumeSession, nil)
}

// Stop marks the session as manually stopped before asking the peer to stop,
// so the terminal status that follows is never logged.
func (s *Synchronizer) Stop() {
	s.markers.MarkStopped()
	s.hub.Send(bus.ActionStopSession, nil)
}

func (s *Synchronizer) UpdateBlocklist(domains []string) []string {
	list := s.status.SetBlocklist(domains)
	s.hub.Send(bus.ActionUpdateBlocklist, bus.BlocklistPayload{Domains: list})
	return list
}

func (s *Synchronizer) SetProfile(p model.Profile) {
	if p.IsZero() {
		return
	}
	s.hub.Send(bus.ActionSetProfile, bus.ProfilePayload{MBTI: p.MBTI, Gender: p.Gender, Name: p.Name})
}

// HandleStatus applies an inbound status and runs completion detection.
func (s *Synchronizer) HandleStatus(p bus.StatusPayload) Completion {
	s.present = true
	prev, curr := s.status.Apply(p)
	return s.detector.Observe(prev, curr)
}

// ProbeTimeout is how long a first status request may go unanswered before
// the extension counts as absent.
func (s *Synchronizer) ProbeTimeout() time.Duration { return s.probeTimeout }

// Extension is CheckExtension at the synchronizer's own clock.
func (s *Synchronizer) Extension() ExtensionState {
	return s.CheckExtension(s.now())
}

func (s *Synchronizer) CheckExtension(now time.Time) ExtensionState {
	if s.present {
		return ExtensionPresent
	}
	if s.probeStarted.IsZero() || now.Sub(s.probeStarted) < s.probeTimeout {
		return ExtensionUnknown
	}
	return ExtensionAbsent
}
