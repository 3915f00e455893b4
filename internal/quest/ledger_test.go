package quest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/questd/internal/events"
	"github.com/sandeepkv93/questd/internal/kv"
	"github.com/sandeepkv93/questd/internal/model"
	"github.com/sandeepkv93/questd/internal/storage"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newLedger(t *testing.T, day string) (*Ledger, *kv.Adapter, *clock) {
	t.Helper()
	start, err := model.ParseDay(day)
	require.NoError(t, err)
	c := &clock{t: start.Add(9 * time.Hour)}
	store := kv.New(storage.NewMemoryRepository(), nil)
	l := NewLedger(Options{Store: store, Keys: kv.NewKeys(""), Events: events.NewDispatcher(), Now: c.now})
	return l, store, c
}

var stretch = model.Quest{ID: "stretch", Title: "Stretch", Points: 5, Category: model.CategoryWellness}

func TestToggleQuest_NetDeltaMatchesTransitions(t *testing.T) {
	t.Parallel()
	l, _, _ := newLedger(t, "2026-02-09")

	completes, undos := 0, 0
	for i := 0; i < 7; i++ {
		if l.ToggleQuest(stretch) {
			completes++
		} else {
			undos++
		}
		assert.GreaterOrEqual(t, l.Points(), 0)
	}
	assert.Equal(t, (completes-undos)*stretch.Points, l.Points())
}

func TestToggleQuest_CompleteUndoCompleteAwardsOnce(t *testing.T) {
	t.Parallel()
	l, store, _ := newLedger(t, "2026-02-09")
	store.SetInt("questd_points", 40)

	assert.True(t, l.ToggleQuest(stretch))
	assert.False(t, l.ToggleQuest(stretch))
	assert.True(t, l.ToggleQuest(stretch))
	assert.Equal(t, 45, l.Points())
	assert.True(t, l.Completed("stretch"))
}

func TestToggleQuest_UndoClampsAtZero(t *testing.T) {
	t.Parallel()
	l, store, _ := newLedger(t, "2026-02-09")

	l.ToggleQuest(stretch)
	store.SetInt("questd_points", 2)
	l.ToggleQuest(stretch)
	assert.Equal(t, 0, l.Points())
}

func TestToggleQuest_StreakAcrossMonthBoundary(t *testing.T) {
	t.Parallel()
	l, store, _ := newLedger(t, "2024-02-01")
	store.Set("questd_last_active_date", "2024-01-31")
	store.SetInt("questd_streak", 6)

	l.ToggleQuest(stretch)
	assert.Equal(t, 7, l.Streak())
	assert.Equal(t, "2024-02-01", l.LastActiveDate())

	l.ToggleQuest(stretch)
	l.ToggleQuest(stretch)
	assert.Equal(t, 7, l.Streak(), "streak counts once per day and is never reversed")
}

func TestToggleQuest_FirstCompletionStartsStreak(t *testing.T) {
	t.Parallel()
	l, _, _ := newLedger(t, "2026-02-09")

	l.ToggleQuest(stretch)
	assert.Equal(t, 1, l.Streak())
}

func TestToggleQuest_GapResetsStreak(t *testing.T) {
	t.Parallel()
	l, store, _ := newLedger(t, "2026-02-09")
	store.Set("questd_last_active_date", "2026-02-07")
	store.SetInt("questd_streak", 12)

	l.ToggleQuest(stretch)
	assert.Equal(t, 1, l.Streak())
}

func TestToggleQuest_NewDayIsFreshNamespace(t *testing.T) {
	t.Parallel()
	l, _, c := newLedger(t, "2026-02-09")

	l.ToggleQuest(stretch)
	cq, ok := l.AddCustomQuest("Read a chapter", 30)
	require.True(t, ok)

	c.t = c.t.AddDate(0, 0, 1)
	assert.False(t, l.Completed("stretch"))
	assert.Empty(t, l.CustomQuests())
	_, found := l.Find(cq.ID)
	assert.False(t, found)

	l.ToggleQuest(stretch)
	assert.Equal(t, 2, l.Streak())
	assert.Equal(t, 10, l.Points())
}

func TestNextStreak(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name    string
		current int
		last    string
		today   string
		want    int
	}{
		{"absent", 9, "", "2024-03-01", 1},
		{"same day", 4, "2024-03-01", "2024-03-01", 4},
		{"same day zero", 0, "2024-03-01", "2024-03-01", 1},
		{"yesterday", 4, "2024-02-29", "2024-03-01", 5},
		{"year boundary", 2, "2023-12-31", "2024-01-01", 3},
		{"gap", 4, "2024-02-27", "2024-03-01", 1},
		{"future", 4, "2024-03-05", "2024-03-01", 1},
		{"garbage", 4, "yesterday", "2024-03-01", 1},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NextStreak(tc.current, tc.last, tc.today), tc.name)
	}
}

func TestAddCustomQuest(t *testing.T) {
	t.Parallel()
	l, _, _ := newLedger(t, "2026-02-09")

	_, ok := l.AddCustomQuest("", 5)
	assert.False(t, ok)
	_, ok = l.AddCustomQuest("   ", 5)
	assert.False(t, ok)
	assert.Empty(t, l.CustomQuests())

	big, ok := l.AddCustomQuest("  Valid  ", 99999)
	require.True(t, ok)
	assert.Equal(t, "Valid", big.Title)
	assert.Equal(t, 1000, big.Points)
	assert.Len(t, big.ID, 26)

	small, ok := l.AddCustomQuest("Tiny", 0)
	require.True(t, ok)
	assert.Equal(t, 1, small.Points)
	assert.Equal(t, 0, l.Points(), "adding awards nothing")

	completed, ok := l.ToggleByID(big.ID)
	assert.True(t, ok)
	assert.True(t, completed)
	assert.Equal(t, 1000, l.Points())

	_, ok = l.ToggleByID("missing")
	assert.False(t, ok)
	assert.Len(t, l.Quests(), len(DefaultCatalog())+2)
}

func TestResetToday(t *testing.T) {
	t.Parallel()
	l, store, _ := newLedger(t, "2026-02-09")
	store.SetInt("questd_points", 100)

	cq, _ := l.AddCustomQuest("Walk", 25)
	l.ToggleQuest(stretch)
	l.ToggleByID(cq.ID)
	l.ToggleByID("plan-day")
	assert.Equal(t, 140, l.Points())
	count, earned := l.EarnedToday()
	assert.Equal(t, 3, count)
	assert.Equal(t, 40, earned)

	l.ResetToday()
	assert.Equal(t, 100, l.Points())
	assert.False(t, l.Completed("plan-day"))
	assert.False(t, store.Has("questd_completed_any_2026-02-09"))
	assert.Len(t, l.CustomQuests(), 1, "custom quests survive a reset")
}

func TestLedger_DispatchesCounters(t *testing.T) {
	t.Parallel()
	d := events.NewDispatcher()
	var got []events.Event
	d.Subscribe(events.KindCountersChanged, func(ev events.Event) { got = append(got, ev) })
	l := NewLedger(Options{Store: kv.New(storage.NewMemoryRepository(), nil), Keys: kv.NewKeys(""), Events: d})

	l.ToggleQuest(stretch)
	l.ResetToday()
	require.Len(t, got, 2)
	assert.Equal(t, events.CountersChanged(5, 1), got[0])
	assert.Equal(t, 0, got[1].Points)
}

type brokenBackend struct{}

func (brokenBackend) Get(context.Context, string) (string, error) { return "", assert.AnError }
func (brokenBackend) Put(context.Context, string, string) error   { return assert.AnError }
func (brokenBackend) Delete(context.Context, string) error        { return assert.AnError }

func TestLedger_FailingStorageNeverPanics(t *testing.T) {
	t.Parallel()
	l := NewLedger(Options{Store: kv.New(brokenBackend{}, nil), Keys: kv.NewKeys("")})

	assert.NotPanics(t, func() {
		assert.True(t, l.ToggleQuest(stretch))
		_, _ = l.ToggleByID("plan-day")
		_, ok := l.AddCustomQuest("Valid", 5)
		assert.True(t, ok)
		l.ResetToday()
		assert.Equal(t, 0, l.Points())
		assert.Equal(t, 0, l.Streak())
	})
}

func TestValidateCatalog(t *testing.T) {
	t.Parallel()
	require.NoError(t, ValidateCatalog(DefaultCatalog()))
	dup := append(DefaultCatalog(), DefaultCatalog()[0])
	assert.ErrorIs(t, ValidateCatalog(dup), ErrDuplicateQuest)
	assert.Error(t, ValidateCatalog([]model.Quest{{ID: "x", Title: "x", Points: 0, Category: model.CategoryFocus}}))
}

func TestLedger_ActiveDaysCountsDaysWithCompletions(t *testing.T) {
	t.Parallel()
	l, store, c := newLedger(t, "2026-02-07")
	assert.Equal(t, 0, l.ActiveDays())

	l.ToggleQuest(stretch)
	c.t = c.t.Add(24 * time.Hour)
	l.ToggleQuest(stretch)
	l.ToggleQuest(stretch)
	c.t = c.t.Add(24 * time.Hour)
	_, ok := l.ToggleByID("reflect")
	require.True(t, ok)
	store.Set("questd_quests_not-a-day", `{"stretch":true}`)

	assert.Equal(t, 2, l.ActiveDays())

	l.ResetToday()
	assert.Equal(t, 1, l.ActiveDays())
}

func TestNewLedger_InvalidCatalogFallsBackToDefault(t *testing.T) {
	t.Parallel()
	store := kv.New(storage.NewMemoryRepository(), nil)
	l := NewLedger(Options{
		Store:   store,
		Keys:    kv.NewKeys(""),
		Events:  events.NewDispatcher(),
		Catalog: []model.Quest{stretch, stretch},
	})
	assert.Equal(t, DefaultCatalog(), l.Catalog())

	custom := []model.Quest{stretch}
	l = NewLedger(Options{Store: store, Keys: kv.NewKeys(""), Events: events.NewDispatcher(), Catalog: custom})
	assert.Equal(t, custom, l.Catalog())
}
