package focus

import (
	"slices"
	"strings"
	"sync"

	"github.com/sandeepkv93/questd/internal/bus"
	"github.com/sandeepkv93/questd/internal/kv"
	"github.com/sandeepkv93/questd/internal/model"
)

const tickMs = 1000

// StatusModel mirrors the peer's session timer. Inbound status messages
// overwrite it wholesale; local ticks only smooth the countdown in between.
type StatusModel struct {
	mu        sync.Mutex
	status    model.SessionStatus
	blocklist []string
	store     *kv.Adapter
	keys      kv.Keys
}

func NewStatusModel(store *kv.Adapter, keys kv.Keys, defaultBlocklist []string) *StatusModel {
	var blocklist []string
	if store.Has(keys.Blocklist()) {
		blocklist = kv.GetJSON(store, keys.Blocklist(), []string(nil))
	}
	if len(blocklist) == 0 {
		blocklist = NormalizeDomains(defaultBlocklist)
	}
	return &StatusModel{
		status:    model.DefaultSessionStatus(),
		blocklist: blocklist,
		store:     store,
		keys:      keys,
	}
}

func (m *StatusModel) Status() model.SessionStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneStatus(m.status)
}

// Apply overwrites the status with an inbound payload and returns the status
// before and after. A non-empty domain list also replaces the blocklist.
func (m *StatusModel) Apply(p bus.StatusPayload) (prev, curr model.SessionStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()

	prev = cloneStatus(m.status)
	remaining := p.RemainingMs
	if remaining < 0 {
		remaining = 0
	}
	next := model.SessionStatus{
		Active:      p.Active,
		Mode:        model.ParseMode(p.Mode),
		RemainingMs: remaining,
		Domains:     slices.Clone(p.Domains),
	}
	if p.LastDurationMin != nil {
		next.LastDurationMin = *p.LastDurationMin
	}
	m.status = next

	if domains := NormalizeDomains(p.Domains); len(domains) > 0 {
		m.setBlocklistLocked(domains)
	}
	return prev, cloneStatus(m.status)
}

// Tick decrements the remaining time by one second, floored at zero, and
// reports whether ticking should continue.
func (m *StatusModel) Tick() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.tickingLocked() {
		return false
	}
	m.status.RemainingMs -= tickMs
	if m.status.RemainingMs < 0 {
		m.status.RemainingMs = 0
	}
	return m.tickingLocked()
}

func (m *StatusModel) Ticking() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tickingLocked()
}

func (m *StatusModel) tickingLocked() bool {
	return m.status.Active && m.status.RemainingMs > 0
}

func (m *StatusModel) Blocklist() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.blocklist)
}

func (m *StatusModel) SetBlocklist(domains []string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setBlocklistLocked(NormalizeDomains(domains))
	return slices.Clone(m.blocklist)
}

func (m *StatusModel) setBlocklistLocked(domains []string) {
	m.blocklist = domains
	m.store.SetJSON(m.keys.Blocklist(), domains)
}

// NormalizeDomains lowercases, trims and de-duplicates a domain list,
// keeping first-seen order.
func NormalizeDomains(domains []string) []string {
	out := make([]string, 0, len(domains))
	seen := make(map[string]struct{}, len(domains))
	for _, d := range domains {
		d = strings.ToLower(strings.TrimSpace(d))
		d = strings.TrimPrefix(strings.TrimPrefix(d, "https://"), "http://")
		d = strings.TrimSuffix(d, "/")
		if d == "" {
			continue
		}
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	return out
}

func cloneStatus(s model.SessionStatus) model.SessionStatus {
	s.Domains = slices.Clone(s.Domains)
	return s
}
