package focus

import (
	"slices"
	"strings"

	"github.com/sandeepkv93/questd/internal/kv"
	"github.com/sandeepkv93/questd/internal/model"
)

// History is the per-day focus minute log, one entry per date.
type History struct {
	store *kv.Adapter
	keys  kv.Keys
}

func NewHistory(store *kv.Adapter, keys kv.Keys) *History {
	return &History{store: store, keys: keys}
}

// Entries returns the valid entries sorted by date. Invalid rows written by
// other processes are skipped.
func (h *History) Entries() []model.SessionHistoryEntry {
	raw := kv.GetJSON(h.store, h.keys.FocusSessions(), []model.SessionHistoryEntry(nil))
	out := make([]model.SessionHistoryEntry, 0, len(raw))
	for _, e := range raw {
		if e.Validate() != nil {
			continue
		}
		out = append(out, e)
	}
	slices.SortStableFunc(out, func(a, b model.SessionHistoryEntry) int {
		return strings.Compare(a.Date, b.Date)
	})
	return out
}

// Add adds minutes to day's entry, creating it when absent, and returns the
// new total for that day.
func (h *History) Add(day string, minutes int) int {
	entries := kv.GetJSON(h.store, h.keys.FocusSessions(), []model.SessionHistoryEntry(nil))
	total := minutes
	found := false
	for i := range entries {
		if entries[i].Date == day {
			entries[i].Minutes += minutes
			total = entries[i].Minutes
			found = true
			break
		}
	}
	if !found {
		entries = append(entries, model.SessionHistoryEntry{Date: day, Minutes: minutes})
	}
	h.store.SetJSON(h.keys.FocusSessions(), entries)
	return total
}

func (h *History) Day(day string) int {
	for _, e := range h.Entries() {
		if e.Date == day {
			return e.Minutes
		}
	}
	return 0
}

func (h *History) TotalMinutes() int {
	total := 0
	for _, e := range h.Entries() {
		total += e.Minutes
	}
	return total
}

// Recent returns the latest n entries, oldest first.
func (h *History) Recent(n int) []model.SessionHistoryEntry {
	entries := h.Entries()
	if n <= 0 || n >= len(entries) {
		return entries
	}
	return entries[len(entries)-n:]
}
