// Package quest keeps the daily quest checklist and the points and streak
// counters it feeds.
package quest

import (
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/sandeepkv93/questd/internal/events"
	"github.com/sandeepkv93/questd/internal/kv"
	"github.com/sandeepkv93/questd/internal/model"
)

type Options struct {
	Store   *kv.Adapter
	Keys    kv.Keys
	Events  *events.Dispatcher
	Catalog []model.Quest
	Now     func() time.Time
	Logger  *slog.Logger
}

// Ledger owns quest completion state, points and the streak. Every day key is
// a separate namespace, so a new day starts with nothing completed.
type Ledger struct {
	store   *kv.Adapter
	keys    kv.Keys
	events  *events.Dispatcher
	catalog []model.Quest
	now     func() time.Time
	log     *slog.Logger
}

func NewLedger(opts Options) *Ledger {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Catalog == nil {
		opts.Catalog = DefaultCatalog()
	} else if err := ValidateCatalog(opts.Catalog); err != nil {
		opts.Logger.Warn("invalid quest catalog, using the default", "error", err)
		opts.Catalog = DefaultCatalog()
	}
	return &Ledger{
		store:   opts.Store,
		keys:    opts.Keys,
		events:  opts.Events,
		catalog: slices.Clone(opts.Catalog),
		now:     opts.Now,
		log:     opts.Logger.With("component", "quest"),
	}
}

func (l *Ledger) Today() string {
	return model.DayKey(l.now())
}

func (l *Ledger) Points() int {
	return l.store.GetInt(l.keys.Points(), 0)
}

func (l *Ledger) Streak() int {
	return l.store.GetInt(l.keys.Streak(), 0)
}

func (l *Ledger) LastActiveDate() string {
	return l.store.Get(l.keys.LastActiveDate(), "")
}

func (l *Ledger) Catalog() []model.Quest {
	return slices.Clone(l.catalog)
}

func (l *Ledger) CustomQuests() []model.CustomQuest {
	return kv.GetJSON(l.store, l.keys.CustomQuests(l.Today()), []model.CustomQuest(nil))
}

// Quests lists the catalog followed by today's custom quests.
func (l *Ledger) Quests() []model.Quest {
	out := slices.Clone(l.catalog)
	for _, c := range l.CustomQuests() {
		out = append(out, c.Quest())
	}
	return out
}

func (l *Ledger) Find(id string) (model.Quest, bool) {
	for _, q := range l.Quests() {
		if q.ID == id {
			return q, true
		}
	}
	return model.Quest{}, false
}

func (l *Ledger) state(day string) map[string]bool {
	state := kv.GetJSON(l.store, l.keys.Quests(day), map[string]bool(nil))
	if state == nil {
		state = make(map[string]bool)
	}
	return state
}

func (l *Ledger) Completed(id string) bool {
	return l.state(l.Today())[id]
}

// ActiveDays counts the days with at least one quest still marked complete.
func (l *Ledger) ActiveDays() int {
	prefix := l.keys.QuestsPrefix()
	days := 0
	for _, key := range l.store.List(prefix) {
		if _, err := model.ParseDay(strings.TrimPrefix(key, prefix)); err != nil {
			continue
		}
		state := kv.GetJSON(l.store, key, map[string]bool{})
		for _, done := range state {
			if done {
				days++
				break
			}
		}
	}
	return days
}

// EarnedToday sums the points of the quests completed today.
func (l *Ledger) EarnedToday() (count, points int) {
	state := l.state(l.Today())
	for _, q := range l.Quests() {
		if state[q.ID] {
			count++
			points += q.Points
		}
	}
	return count, points
}

// ToggleQuest flips today's completion flag for q and returns the new state.
// Completing awards q.Points and counts today toward the streak; undoing
// takes the same points back without going below zero. The streak is never
// reversed.
func (l *Ledger) ToggleQuest(q model.Quest) bool {
	today := l.Today()
	state := l.state(today)
	completed := !state[q.ID]
	if completed {
		state[q.ID] = true
	} else {
		delete(state, q.ID)
	}
	l.store.SetJSON(l.keys.Quests(today), state)

	if completed {
		l.store.SetInt(l.keys.Points(), l.Points()+q.Points)
		l.touchStreak(today)
	} else {
		l.store.SetInt(l.keys.Points(), max(0, l.Points()-q.Points))
	}
	l.log.Debug("quest toggled", "quest", q.ID, "completed", completed, "points", l.Points())
	l.notify()
	return completed
}

// ToggleByID toggles a catalog quest or one of today's custom quests.
func (l *Ledger) ToggleByID(id string) (completed, ok bool) {
	q, found := l.Find(id)
	if !found {
		return false, false
	}
	return l.ToggleQuest(q), true
}

func (l *Ledger) touchStreak(today string) {
	flag := l.keys.CompletedAny(today)
	if l.store.GetBool(flag) {
		return
	}
	l.store.SetBool(flag, true)
	next := NextStreak(l.Streak(), l.LastActiveDate(), today)
	l.store.SetInt(l.keys.Streak(), next)
	l.store.Set(l.keys.LastActiveDate(), today)
}

// AddCustomQuest appends a quest to today's list. It is not completed and
// awards nothing until toggled.
func (l *Ledger) AddCustomQuest(title string, points int) (model.CustomQuest, bool) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.CustomQuest{}, false
	}
	cq := model.CustomQuest{
		ID:     ulid.Make().String(),
		Title:  title,
		Points: model.ClampPoints(points),
	}
	key := l.keys.CustomQuests(l.Today())
	list := kv.GetJSON(l.store, key, []model.CustomQuest(nil))
	l.store.SetJSON(key, append(list, cq))
	return cq, true
}

// ResetToday takes back the points of everything completed today and clears
// today's flags, including the daily streak flag.
func (l *Ledger) ResetToday() {
	today := l.Today()
	state := l.state(today)
	refund := 0
	for _, q := range l.Quests() {
		if state[q.ID] {
			refund += q.Points
		}
	}
	l.store.SetInt(l.keys.Points(), max(0, l.Points()-refund))
	l.store.Remove(l.keys.Quests(today))
	l.store.Remove(l.keys.CompletedAny(today))
	l.log.Info("quests reset", "day", today, "refund", refund)
	l.notify()
}

func (l *Ledger) notify() {
	l.events.Dispatch(events.CountersChanged(l.Points(), l.Streak()))
}
