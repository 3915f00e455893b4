package focus

import (
	"github.com/oklog/ulid/v2"

	"github.com/sandeepkv93/questd/internal/kv"
	"github.com/sandeepkv93/questd/internal/model"
)

// Markers are the persisted breadcrumbs of the session in flight. They
// survive restarts so a completion can still be attributed after one.
type Markers struct {
	store *kv.Adapter
	keys  kv.Keys
}

type MarkerSet struct {
	Mode    model.Mode
	TotalMs int64
	Stopped bool
	ID      string
}

func NewMarkers(store *kv.Adapter, keys kv.Keys) *Markers {
	return &Markers{store: store, keys: keys}
}

// Begin records a new session and returns its id.
func (m *Markers) Begin(mode model.Mode, totalMs int64) string {
	id := ulid.Make().String()
	m.store.Set(m.keys.SessionMode(), string(mode))
	m.store.SetInt(m.keys.SessionTotalMs(), int(totalMs))
	m.store.Set(m.keys.SessionID(), id)
	m.store.Remove(m.keys.SessionStopped())
	return id
}

func (m *Markers) MarkStopped() {
	m.store.SetBool(m.keys.SessionStopped(), true)
}

func (m *Markers) Read() MarkerSet {
	return MarkerSet{
		Mode:    model.ParseMode(m.store.Get(m.keys.SessionMode(), "")),
		TotalMs: int64(m.store.GetInt(m.keys.SessionTotalMs(), 0)),
		Stopped: m.store.GetBool(m.keys.SessionStopped()),
		ID:      m.store.Get(m.keys.SessionID(), ""),
	}
}

func (m *Markers) Clear() {
	m.store.Remove(m.keys.SessionMode())
	m.store.Remove(m.keys.SessionTotalMs())
	m.store.Remove(m.keys.SessionStopped())
	m.store.Remove(m.keys.SessionID())
}

func (m *Markers) LastLogged() string {
	return m.store.Get(m.keys.LastLoggedSession(), "")
}

func (m *Markers) SetLastLogged(id string) {
	m.store.Set(m.keys.LastLoggedSession(), id)
}
