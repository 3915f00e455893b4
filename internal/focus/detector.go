package focus

import (
	"log/slog"
	"math"
	"time"

	"github.com/sandeepkv93/questd/internal/events"
	"github.com/sandeepkv93/questd/internal/model"
)

// Ended reports whether the transition from prev to curr is the end of a
// session: it was running, it no longer is, and the timer hit zero on
// either side of the transition.
func Ended(prev, curr model.SessionStatus) bool {
	if !prev.Active {
		return false
	}
	if curr.Active && curr.Mode != model.ModeIdle {
		return false
	}
	return prev.RemainingMs == 0 || curr.RemainingMs == 0
}

// MinutesFor rounds a duration to whole minutes, never below one.
func MinutesFor(totalMs int64) int {
	minutes := int(math.Round(float64(totalMs) / 60000))
	if minutes < 1 {
		return 1
	}
	return minutes
}

type Completion struct {
	Ended   bool
	Logged  bool
	Minutes int
	Day     string
	Reason  string
}

type Detector struct {
	markers *Markers
	history *History
	events  *events.Dispatcher
	now     func() time.Time
	log     *slog.Logger
}

func NewDetector(markers *Markers, history *History, dispatcher *events.Dispatcher, now func() time.Time, logger *slog.Logger) *Detector {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Detector{markers: markers, history: history, events: dispatcher, now: now, log: logger}
}

// Observe inspects a status transition and logs a naturally completed focus
// session. Markers are cleared on every ended transition.
func (d *Detector) Observe(prev, curr model.SessionStatus) Completion {
	if !Ended(prev, curr) {
		return Completion{}
	}
	marks := d.markers.Read()
	defer d.markers.Clear()

	out := Completion{Ended: true}
	switch {
	case marks.Stopped:
		out.Reason = "stopped"
	case marks.Mode != model.ModeFocus:
		out.Reason = "not focus"
	case marks.TotalMs <= 0:
		out.Reason = "no duration"
	case marks.ID != "" && marks.ID == d.markers.LastLogged():
		out.Reason = "already logged"
	}
	if out.Reason != "" {
		d.log.Debug("session ended without logging", "reason", out.Reason, "session_id", marks.ID)
		return out
	}

	out.Minutes = MinutesFor(marks.TotalMs)
	out.Day = model.DayKey(d.now())
	d.history.Add(out.Day, out.Minutes)
	if marks.ID != "" {
		d.markers.SetLastLogged(marks.ID)
	}
	out.Logged = true
	d.log.Info("focus session completed", "minutes", out.Minutes, "day", out.Day, "session_id", marks.ID)

	d.events.Dispatch(events.FocusDataChanged())
	d.events.Dispatch(events.SessionCompleted(out.Minutes))
	return out
}
