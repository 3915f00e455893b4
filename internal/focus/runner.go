package focus

import (
	"context"
	"log/slog"
	"time"

	"github.com/sandeepkv93/questd/internal/bus"
	"github.com/sandeepkv93/questd/internal/scheduler"
)

const DefaultPollInterval = 20 * time.Second

type RunnerConfig struct {
	PollInterval time.Duration
	ProbeTimeout time.Duration
}

// Runner drives a Synchronizer without a UI: it forwards bus statuses to it,
// ticks the countdown and re-polls the peer on a timer.
type Runner struct {
	sync   *Synchronizer
	hub    *bus.Hub
	engine *scheduler.Engine
	cfg    RunnerConfig
	log    *slog.Logger
	onDone func(Completion)
}

func NewRunner(s *Synchronizer, hub *bus.Hub, cfg RunnerConfig, logger *slog.Logger) *Runner {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.ProbeTimeout <= 0 {
		cfg.ProbeTimeout = DefaultProbeTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		sync:   s,
		hub:    hub,
		engine: scheduler.NewEngine(16),
		cfg:    cfg,
		log:    logger.With("component", "runner"),
	}
}

// OnCompletion registers a callback for every ended session.
func (r *Runner) OnCompletion(fn func(Completion)) {
	r.onDone = fn
}

func (r *Runner) Run(ctx context.Context) error {
	statuses := make(chan bus.StatusPayload, 32)
	unsubscribe := r.hub.OnStatus(func(p bus.StatusPayload) {
		select {
		case statuses <- p:
		default:
			r.log.Warn("status dropped, runner busy")
		}
	})
	defer unsubscribe()

	r.engine.Start()
	defer r.engine.Stop()

	r.sync.RequestStatus()
	r.schedule(scheduler.KindProbe, r.cfg.ProbeTimeout)
	r.schedule(scheduler.KindPoll, r.cfg.PollInterval)

	for {
		select {
		case <-ctx.Done():
			return nil
		case p := <-statuses:
			r.handle(p)
		case ev, ok := <-r.engine.C():
			if !ok {
				return nil
			}
			r.fire(ev)
		}
	}
}

func (r *Runner) handle(p bus.StatusPayload) {
	done := r.sync.HandleStatus(p)
	if done.Ended && r.onDone != nil {
		r.onDone(done)
	}
	if r.sync.Ticking() {
		if r.engine.Pending(scheduler.KindTick) == 0 {
			r.schedule(scheduler.KindTick, time.Second)
		}
		return
	}
	r.engine.Cancel(scheduler.KindTick)
}

func (r *Runner) fire(ev scheduler.Event) {
	switch ev.Kind {
	case scheduler.KindTick:
		if r.sync.Tick() {
			r.schedule(scheduler.KindTick, time.Second)
		}
	case scheduler.KindPoll:
		r.sync.RequestStatus()
		r.schedule(scheduler.KindPoll, r.cfg.PollInterval)
	case scheduler.KindProbe:
		state := r.sync.Extension()
		if state == ExtensionAbsent {
			r.log.Warn("no blocker extension answered, enable blocking to use focus sessions")
			return
		}
		r.log.Info("extension state", "state", state)
	}
}

func (r *Runner) schedule(kind scheduler.Kind, d time.Duration) {
	if err := r.engine.After(kind, d); err != nil {
		r.log.Debug("schedule failed", "kind", kind, "error", err)
	}
}
